package font_service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"

	"github.com/goccy/go-json"

	font_catalog "LocalFontsBrowserApi/font-catalog"
	"LocalFontsBrowserApi/utils"
)

// FavoritesKey is the storage key holding the favorites order.
const FavoritesKey = "font-favorites"

type FavoritesStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, order []string) error
}

// FileFavoritesStore keeps a small JSON key-value document on disk. Keys other
// than FavoritesKey are preserved on save.
type FileFavoritesStore struct {
	mu   sync.Mutex
	path string
}

func NewFileFavoritesStore(path string) *FileFavoritesStore {
	return &FileFavoritesStore{path: path}
}

func (s *FileFavoritesStore) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}

	raw, ok := doc[FavoritesKey]
	if !ok {
		return []string{}, nil
	}

	var order []string
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("invalid %s in %s: %w", FavoritesKey, s.path, err)
	}
	return font_catalog.UniqueOrder(order), nil
}

func (s *FileFavoritesStore) Save(_ context.Context, order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}

	if order == nil {
		order = []string{}
	}
	raw, err := json.MarshalWithOption(order, json.DisableHTMLEscape())
	if err != nil {
		return err
	}
	doc[FavoritesKey] = raw

	body, err := json.MarshalWithOption(doc, json.DisableHTMLEscape())
	if err != nil {
		return err
	}

	if err := utils.WriteFileAtomic(s.path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileFavoritesStore) readDocument() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}

	body, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("invalid storage file %s: %w", s.path, err)
	}
	return doc, nil
}

// MemoryFavoritesStore keeps the order in memory only.
type MemoryFavoritesStore struct {
	mu    sync.Mutex
	order []string
	saves int
}

func NewMemoryFavoritesStore(order ...string) *MemoryFavoritesStore {
	return &MemoryFavoritesStore{order: order}
}

func (s *MemoryFavoritesStore) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return font_catalog.UniqueOrder(s.order), nil
}

func (s *MemoryFavoritesStore) Save(_ context.Context, order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = slices.Clone(order)
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *MemoryFavoritesStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saves
}
