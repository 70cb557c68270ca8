package font_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	font_catalog "LocalFontsBrowserApi/font-catalog"
)

func newTestBrowser(t *testing.T, store FavoritesStore, providers ...IFontProvider) *Browser {
	t.Helper()
	b, err := NewBrowser(context.Background(), NewFontProviderService(providers...), store, font_catalog.DefaultPreviewConfig())
	require.NoError(t, err)
	return b
}

func loadedBrowser(t *testing.T, favorites ...string) (*Browser, *MemoryFavoritesStore) {
	t.Helper()
	store := NewMemoryFavoritesStore(favorites...)
	p := &fakeProvider{id: "fake", styles: []font_catalog.StyleRecord{
		rec("A", "Bold"), rec("B", "Regular"), rec("A", "Italic"), rec("C", "Regular"), rec("Helvetica", "Light"),
	}}
	b := newTestBrowser(t, store, p)
	require.NoError(t, b.LoadFonts(context.Background()))
	return b, store
}

func TestBrowserStartsEmpty(t *testing.T) {
	b := newTestBrowser(t, NewMemoryFavoritesStore("A"))

	status, err := b.Status()
	assert.Equal(t, LoadStatusIdle, status)
	assert.NoError(t, err)
	assert.Empty(t, b.Families())
	assert.Empty(t, b.Favorites())
	assert.Equal(t, []string{"A"}, b.FavoritesOrder())
}

func TestBrowserLoadFonts(t *testing.T) {
	b, _ := loadedBrowser(t, "B")

	families := b.Families()
	assert.Equal(t, []string{"A", "B", "C", "Helvetica"}, familyNames(families))
	assert.Equal(t, "Italic", families[0].Styles[0].Style)
	assert.Equal(t, "fake", families[0].Styles[0].Provider)
	assert.True(t, families[1].Favorited)
	assert.Equal(t, 5, b.FontCount())
}

func TestBrowserLoadFontsSkipsFailingProvider(t *testing.T) {
	broken := &fakeProvider{id: "broken", err: errors.New("unsupported platform")}
	ok := &fakeProvider{id: "ok", styles: []font_catalog.StyleRecord{rec("A", "Regular")}}
	b := newTestBrowser(t, NewMemoryFavoritesStore(), broken, ok)

	require.NoError(t, b.LoadFonts(context.Background()))
	assert.Equal(t, []string{"A"}, familyNames(b.Families()))
}

func TestBrowserLoadFontsPermissionDenied(t *testing.T) {
	p := &fakeProvider{id: "fake", styles: []font_catalog.StyleRecord{rec("A", "Regular")}}
	b := newTestBrowser(t, NewMemoryFavoritesStore(), p)
	require.NoError(t, b.LoadFonts(context.Background()))

	p.set(nil, ErrPermissionDenied)
	err := b.LoadFonts(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	status, statusErr := b.Status()
	assert.Equal(t, LoadStatusError, status)
	assert.ErrorIs(t, statusErr, ErrPermissionDenied)
	assert.Equal(t, []string{"A"}, familyNames(b.Families()))

	p.set([]font_catalog.StyleRecord{rec("B", "Regular")}, nil)
	require.NoError(t, b.LoadFonts(context.Background()))
	status, _ = b.Status()
	assert.Equal(t, LoadStatusIdle, status)
	assert.Equal(t, []string{"B"}, familyNames(b.Families()))
}

func TestBrowserLoadFontsRejectsConcurrentLoad(t *testing.T) {
	p := &fakeProvider{id: "slow", styles: []font_catalog.StyleRecord{rec("A", "Regular")}, release: make(chan struct{})}
	b := newTestBrowser(t, NewMemoryFavoritesStore(), p)

	done := make(chan error, 1)
	go func() { done <- b.LoadFonts(context.Background()) }()

	require.Eventually(t, func() bool {
		status, _ := b.Status()
		return status == LoadStatusLoading
	}, time.Second, time.Millisecond)

	assert.ErrorIs(t, b.LoadFonts(context.Background()), ErrLoadInProgress)

	close(p.release)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"A"}, familyNames(b.Families()))
}

func TestBrowserSearch(t *testing.T) {
	b, _ := loadedBrowser(t)

	b.SetSearch("  HEL")
	assert.Equal(t, []string{"Helvetica"}, familyNames(b.Families()))
	assert.Equal(t, []string{"Helvetica"}, familyNames(b.List()))

	b.SetSearch("italic")
	assert.Equal(t, []string{"A"}, familyNames(b.Families()))

	b.SetSearch(" ")
	assert.Len(t, b.Families(), 4)
}

func TestBrowserToggleFavorite(t *testing.T) {
	b, store := loadedBrowser(t)

	order, err := b.ToggleFavorite(context.Background(), "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, order)

	order, err = b.ToggleFavorite(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, order)
	assert.Equal(t, []string{"C", "A"}, familyNames(b.Favorites()))

	families := b.Families()
	assert.True(t, families[0].Favorited)
	assert.False(t, families[1].Favorited)

	saved, _ := store.Load(context.Background())
	assert.Equal(t, []string{"C", "A"}, saved)

	order, err = b.ToggleFavorite(context.Background(), "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, order)
	assert.Equal(t, 3, store.Saves())
}

func TestBrowserToggleFavoriteUnknownFamily(t *testing.T) {
	b, store := loadedBrowser(t, "Gone")

	_, err := b.ToggleFavorite(context.Background(), "Nope")
	assert.ErrorIs(t, err, ErrFamilyNotFound)

	order, err := b.ToggleFavorite(context.Background(), "Gone")
	require.NoError(t, err)
	assert.Empty(t, order)
	assert.Equal(t, 1, store.Saves())
}

func TestBrowserKeepsStaleFavorites(t *testing.T) {
	b, _ := loadedBrowser(t, "Gone", "B", "A")

	assert.Equal(t, []string{"B", "A"}, familyNames(b.Favorites()))
	assert.Equal(t, []string{"Gone", "B", "A"}, b.FavoritesOrder())
}

func TestBrowserViews(t *testing.T) {
	b, _ := loadedBrowser(t, "C", "A")
	assert.Equal(t, ViewAll, b.View())

	b.SetView(ViewFavorites)
	b.SetSearch("hel")
	assert.Equal(t, []string{"C", "A"}, familyNames(b.List()))

	_, err := ParseView("grid")
	assert.Error(t, err)
	v, err := ParseView("favorites")
	require.NoError(t, err)
	assert.Equal(t, ViewFavorites, v)
}

func TestBrowserToggleExpanded(t *testing.T) {
	b, _ := loadedBrowser(t)

	assert.True(t, b.ToggleExpanded("A"))
	assert.True(t, b.IsExpanded("A"))
	assert.False(t, b.ToggleExpanded("A"))
	assert.False(t, b.IsExpanded("A"))
}

func TestBrowserPreview(t *testing.T) {
	b, _ := loadedBrowser(t)

	stored := b.SetPreview(font_catalog.PreviewConfig{Text: "Hi", Size: 9})
	assert.Equal(t, font_catalog.PreviewConfig{Text: "Hi", Size: 5}, stored)
	assert.Equal(t, stored, b.Preview())
}

func TestBrowserDragReorder(t *testing.T) {
	b, store := loadedBrowser(t, "A", "B", "C")

	require.NoError(t, b.StartDrag("A"))
	b.DragOver("C")
	assert.Equal(t, DragSnapshot{State: "dragging", Dragged: "A", Hover: "C"}, b.Drag())

	order, moved, err := b.Drop(context.Background())
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"B", "A", "C"}, order)
	assert.Equal(t, []string{"B", "A", "C"}, familyNames(b.Favorites()))
	assert.Equal(t, DragSnapshot{State: "idle"}, b.Drag())

	saved, _ := store.Load(context.Background())
	assert.Equal(t, []string{"B", "A", "C"}, saved)
}

func TestBrowserDropOnSelf(t *testing.T) {
	b, store := loadedBrowser(t, "A", "B")

	require.NoError(t, b.StartDrag("A"))
	b.DragOver("A")
	order, moved, err := b.Drop(context.Background())
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{"A", "B"}, order)
	assert.Equal(t, 0, store.Saves())
}

func TestBrowserDragFreezesDisplayOrder(t *testing.T) {
	b, _ := loadedBrowser(t, "A", "B", "C")

	require.NoError(t, b.StartDrag("A"))
	_, err := b.ToggleFavorite(context.Background(), "B")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, familyNames(b.Favorites()))

	b.DragOver("C")
	order, moved, err := b.Drop(context.Background())
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"A", "C"}, order)
	assert.Equal(t, []string{"A", "C"}, familyNames(b.Favorites()))
}

func TestBrowserStartDragRequiresFavorite(t *testing.T) {
	b, _ := loadedBrowser(t, "A")

	assert.ErrorIs(t, b.StartDrag("B"), ErrFamilyNotFound)
	assert.Equal(t, "idle", b.Drag().State)

	require.NoError(t, b.StartDrag("A"))
	b.EndDrag()
	assert.Equal(t, "idle", b.Drag().State)
}

type failingStore struct{ MemoryFavoritesStore }

func (s *failingStore) Save(context.Context, []string) error { return errors.New("disk full") }

func TestBrowserSaveFailureKeepsOrder(t *testing.T) {
	p := &fakeProvider{id: "fake", styles: []font_catalog.StyleRecord{rec("A", "Regular"), rec("B", "Regular")}}
	store := &failingStore{}
	store.order = []string{"A", "B"}
	b := newTestBrowser(t, store, p)
	require.NoError(t, b.LoadFonts(context.Background()))

	_, err := b.ToggleFavorite(context.Background(), "A")
	assert.Error(t, err)
	assert.Equal(t, []string{"A", "B"}, b.FavoritesOrder())

	require.NoError(t, b.StartDrag("A"))
	b.DragOver("B")
	order, moved, err := b.Drop(context.Background())
	assert.Error(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{"A", "B"}, order)
}
