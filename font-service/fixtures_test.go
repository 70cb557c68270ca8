package font_service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	font_catalog "LocalFontsBrowserApi/font-catalog"
)

// writeGoFonts lays out a font directory with real Go fonts plus noise.
func writeGoFonts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string][]byte{
		"1-regular.ttf":    goregular.TTF,
		"2-bold.TTF":       gobold.TTF,
		"sub/3-italic.ttf": goitalic.TTF,
		"sub/4-mono.ttf":   gomono.TTF,
		"5-broken.ttf":     []byte("not a font"),
		"notes.txt":        []byte("hello"),
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	return dir
}

type fakeProvider struct {
	mu      sync.Mutex
	id      string
	styles  []font_catalog.StyleRecord
	err     error
	release chan struct{}
	fonts   map[string][]byte
}

func (f *fakeProvider) GetId() string          { return f.id }
func (f *fakeProvider) GetDisplayName() string { return "Fake " + f.id }

func (f *fakeProvider) ListFonts(ctx context.Context) ([]font_catalog.StyleRecord, error) {
	f.mu.Lock()
	release, styles, err := f.release, f.styles, f.err
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	out := make([]font_catalog.StyleRecord, len(styles))
	for i, s := range styles {
		s.Provider = f.id
		out[i] = s
	}
	return out, nil
}

func (f *fakeProvider) OpenFont(_ context.Context, style font_catalog.StyleRecord) ([]byte, error) {
	data, ok := f.fonts[style.Location]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (f *fakeProvider) set(styles []font_catalog.StyleRecord, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.styles, f.err = styles, err
}

func rec(family, style string) font_catalog.StyleRecord {
	return font_catalog.StyleRecord{Family: family, Style: style, FullName: family + " " + style}
}

func familyNames(families []font_catalog.GroupedFamily) []string {
	out := make([]string, len(families))
	for i, f := range families {
		out[i] = f.Family
	}
	return out
}
