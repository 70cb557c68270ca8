package font_service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	font_catalog "LocalFontsBrowserApi/font-catalog"
	"LocalFontsBrowserApi/logger"
)

type LoadStatus string

const (
	LoadStatusIdle    LoadStatus = "idle"
	LoadStatusLoading LoadStatus = "loading"
	LoadStatusError   LoadStatus = "error"
)

type View string

const (
	ViewAll       View = "all"
	ViewFavorites View = "favorites"
)

func ParseView(v string) (View, error) {
	switch View(v) {
	case ViewAll, ViewFavorites:
		return View(v), nil
	}
	return "", fmt.Errorf("unknown view %q", v)
}

type DragSnapshot struct {
	State   string `json:"state"`
	Dragged string `json:"dragged,omitempty"`
	Hover   string `json:"hover,omitempty"`
}

// Browser is the session state of the font browser: the loaded fonts, the
// persisted favorites order and the preview settings, plus the transient UI
// state derived views depend on.
type Browser struct {
	mu sync.Mutex

	providers *FontProviderService
	store     FavoritesStore

	fonts     []font_catalog.StyleRecord
	favorites []string
	preview   font_catalog.PreviewConfig

	status  LoadStatus
	loadErr error

	search   string
	view     View
	expanded map[string]bool
	drag     font_catalog.DragController

	// grouped is recomputed whenever revision moves past groupedAt.
	revision  uint64
	groupedAt uint64
	grouped   []font_catalog.GroupedFamily
}

// NewBrowser reads the persisted favorites order. Fonts are not loaded until
// LoadFonts is called.
func NewBrowser(ctx context.Context, providers *FontProviderService, store FavoritesStore, preview font_catalog.PreviewConfig) (*Browser, error) {
	favorites, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	return &Browser{
		providers: providers,
		store:     store,
		favorites: favorites,
		preview:   preview.Clamp(),
		status:    LoadStatusIdle,
		view:      ViewAll,
		expanded:  map[string]bool{},
		revision:  1,
	}, nil
}

// LoadFonts enumerates every provider. Only one load may run at a time.
// A provider failing for any reason other than permission contributes no
// fonts; a permission failure aborts the load and keeps the previous fonts.
func (b *Browser) LoadFonts(ctx context.Context) error {
	b.mu.Lock()
	if b.status == LoadStatusLoading {
		b.mu.Unlock()
		return ErrLoadInProgress
	}
	b.status = LoadStatusLoading
	b.loadErr = nil
	b.mu.Unlock()

	startedAt := time.Now()
	defer func() { logger.Debug("[Browser.LoadFonts]: %v", time.Since(startedAt)) }()

	var fonts []font_catalog.StyleRecord
	var loadErr error
	for _, p := range b.providers.Providers() {
		styles, err := p.ListFonts(ctx)
		if err == nil {
			fonts = append(fonts, styles...)
			continue
		}
		if errors.Is(err, ErrPermissionDenied) || ctx.Err() != nil {
			loadErr = fmt.Errorf("provider %s: %w", p.GetId(), err)
			break
		}
		logger.Error("Failed to list fonts from provider %s: %v", p.GetId(), err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if loadErr != nil {
		b.status = LoadStatusError
		b.loadErr = loadErr
		return loadErr
	}

	b.fonts = fonts
	b.status = LoadStatusIdle
	b.revision++
	logger.Info("Loaded %d font styles", len(fonts))
	return nil
}

func (b *Browser) Status() (LoadStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.status, b.loadErr
}

// FontCount is the number of raw style records currently loaded.
func (b *Browser) FontCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.fonts)
}

func (b *Browser) groupedLocked() []font_catalog.GroupedFamily {
	if b.groupedAt != b.revision {
		b.grouped = font_catalog.GroupFonts(b.fonts, b.favorites)
		b.groupedAt = b.revision
	}
	return b.grouped
}

func (b *Browser) favoritesLocked() []font_catalog.GroupedFamily {
	live := font_catalog.ResolveFavoritesOrder(b.favorites, b.groupedLocked())
	return b.drag.Display(live)
}

// Families returns every family matching the current search.
func (b *Browser) Families() []font_catalog.GroupedFamily {
	b.mu.Lock()
	defer b.mu.Unlock()

	return font_catalog.FilterFamilies(b.groupedLocked(), b.search)
}

// Favorites returns the favorite families in their persisted order, or in
// the order frozen at drag start while a drag is active.
func (b *Browser) Favorites() []font_catalog.GroupedFamily {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.favoritesLocked()
}

// List returns what the current view displays.
func (b *Browser) List() []font_catalog.GroupedFamily {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.view == ViewFavorites {
		return b.favoritesLocked()
	}
	return font_catalog.FilterFamilies(b.groupedLocked(), b.search)
}

func (b *Browser) Family(name string) (font_catalog.GroupedFamily, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, f := range b.groupedLocked() {
		if f.Family == name {
			return f, nil
		}
	}
	return font_catalog.GroupedFamily{}, fmt.Errorf("%w: %s", ErrFamilyNotFound, name)
}

func (b *Browser) FavoritesOrder() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.favorites)
}

// ToggleFavorite adds or removes family and persists the new order. A family
// that is neither loaded nor already a favorite is rejected.
func (b *Browser) ToggleFavorite(ctx context.Context, family string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	known := slices.Contains(b.favorites, family) ||
		slices.ContainsFunc(b.groupedLocked(), func(f font_catalog.GroupedFamily) bool { return f.Family == family })
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrFamilyNotFound, family)
	}

	return b.commitFavoritesLocked(ctx, font_catalog.ToggleFavorite(b.favorites, family))
}

func (b *Browser) commitFavoritesLocked(ctx context.Context, order []string) ([]string, error) {
	if err := b.store.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save favorites: %w", err)
	}
	b.favorites = order
	b.revision++
	return slices.Clone(order), nil
}

// ToggleExpanded flips the expanded flag of family and returns the new value.
func (b *Browser) ToggleExpanded(family string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.expanded[family] {
		delete(b.expanded, family)
		return false
	}
	b.expanded[family] = true
	return true
}

func (b *Browser) IsExpanded(family string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.expanded[family]
}

func (b *Browser) SetSearch(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.search = query
}

func (b *Browser) Search() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.search
}

func (b *Browser) SetView(v View) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.view = v
}

func (b *Browser) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.view
}

// SetPreview stores cfg with its size clamped and returns what was stored.
func (b *Browser) SetPreview(cfg font_catalog.PreviewConfig) font_catalog.PreviewConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.preview = cfg.Clamp()
	return b.preview
}

func (b *Browser) Preview() font_catalog.PreviewConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.preview
}

// StartDrag begins reordering family, freezing the favorites display order.
func (b *Browser) StartDrag(family string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.drag.EndDrag()
	resolved := b.favoritesLocked()
	if !slices.ContainsFunc(resolved, func(f font_catalog.GroupedFamily) bool { return f.Family == family }) {
		return fmt.Errorf("%w: %s is not a favorite", ErrFamilyNotFound, family)
	}

	b.drag.StartDrag(family, resolved)
	return nil
}

func (b *Browser) DragOver(family string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.drag.DragOver(family)
}

func (b *Browser) DragLeave(intoChild bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.drag.DragLeave(intoChild)
}

func (b *Browser) EndDrag() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.drag.EndDrag()
}

// Drop finishes the drag. When the drop is valid the new order is persisted
// and returned with true; otherwise the order is returned unchanged.
func (b *Browser) Drop(ctx context.Context) ([]string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	order, moved := b.drag.Drop(b.favorites)
	if !moved {
		return slices.Clone(b.favorites), false, nil
	}

	committed, err := b.commitFavoritesLocked(ctx, order)
	if err != nil {
		return slices.Clone(b.favorites), false, err
	}
	return committed, true, nil
}

func (b *Browser) Drag() DragSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return DragSnapshot{
		State:   b.drag.State().String(),
		Dragged: b.drag.Dragged(),
		Hover:   b.drag.Hover(),
	}
}
