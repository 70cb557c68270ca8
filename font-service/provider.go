package font_service

import (
	"context"
	"errors"
	"sync"

	font_catalog "LocalFontsBrowserApi/font-catalog"
)

var (
	// ErrPermissionDenied means the fonts exist but may not be read; the user
	// has to grant access and retry.
	ErrPermissionDenied = errors.New("font access permission denied")
	ErrLoadInProgress   = errors.New("font load already in progress")
	ErrProviderNotFound = errors.New("font provider not found")
	ErrFamilyNotFound   = errors.New("font family not found")
	ErrStyleNotFound    = errors.New("font style not found")
)

// IFontProvider enumerates fonts and hands out their raw bytes.
type IFontProvider interface {
	GetId() string
	GetDisplayName() string
	ListFonts(ctx context.Context) ([]font_catalog.StyleRecord, error)
	OpenFont(ctx context.Context, style font_catalog.StyleRecord) ([]byte, error)
}

type FontProviderService struct {
	sync.Mutex

	providers []IFontProvider
}

func NewFontProviderService(providers ...IFontProvider) *FontProviderService {
	s := &FontProviderService{}
	for _, p := range providers {
		s.AddProvider(p)
	}
	return s
}

// AddProvider registers p, replacing any provider with the same id.
func (s *FontProviderService) AddProvider(p IFontProvider) {
	s.Lock()
	defer s.Unlock()

	for i, existing := range s.providers {
		if existing.GetId() == p.GetId() {
			s.providers[i] = p
			return
		}
	}
	s.providers = append(s.providers, p)
}

func (s *FontProviderService) GetProviderById(id string) IFontProvider {
	s.Lock()
	defer s.Unlock()

	for _, p := range s.providers {
		if p.GetId() == id {
			return p
		}
	}
	return nil
}

// Providers returns the registered providers in registration order.
func (s *FontProviderService) Providers() []IFontProvider {
	s.Lock()
	defer s.Unlock()

	return append([]IFontProvider(nil), s.providers...)
}
