package font_service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/webfonts/v1"

	font_catalog "LocalFontsBrowserApi/font-catalog"
	"LocalFontsBrowserApi/logger"
)

// GoogleFontsProvider lists the Google Fonts catalogue as style records, one
// per family variant.
type GoogleFontsProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGoogleFontsProvider queries the public API unless endpoint overrides it.
func NewGoogleFontsProvider(apiKey, endpoint string) *GoogleFontsProvider {
	return &GoogleFontsProvider{apiKey: apiKey, endpoint: endpoint, client: http.DefaultClient}
}

func (g *GoogleFontsProvider) GetId() string          { return "google" }
func (g *GoogleFontsProvider) GetDisplayName() string { return "Google Fonts" }

func (g *GoogleFontsProvider) ListFonts(ctx context.Context) ([]font_catalog.StyleRecord, error) {
	startedAt := time.Now()
	defer func() { logger.Debug("[Google.ListFonts]: %v", time.Since(startedAt)) }()

	opts := []option.ClientOption{option.WithAPIKey(g.apiKey)}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}

	svc, err := webfonts.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create webfonts client: %w", err)
	}

	list, err := svc.Webfonts.List().Sort("popularity").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fonts: %w", err)
	}

	return webfontStyles(g.GetId(), list.Items), nil
}

func (g *GoogleFontsProvider) OpenFont(ctx context.Context, style font_catalog.StyleRecord) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, style.Location, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", style.FullName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response downloading %s: %v", style.FullName, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func webfontStyles(providerId string, items []*webfonts.Webfont) []font_catalog.StyleRecord {
	var styles []font_catalog.StyleRecord
	for _, item := range items {
		for _, variant := range item.Variants {
			url, ok := item.Files[variant]
			if !ok {
				continue
			}

			label := webfontVariantStyle(variant)
			styles = append(styles, font_catalog.StyleRecord{
				Family:   item.Family,
				Style:    label,
				FullName: item.Family + " " + font_catalog.WeightDescription(label),
				Provider: providerId,
				Location: url,
			})
		}
	}
	return styles
}

// webfontVariantStyle turns API variant ids ("regular", "700italic") into
// style labels ("Regular", "700 Italic").
func webfontVariantStyle(variant string) string {
	switch variant {
	case "regular":
		return "Regular"
	case "italic":
		return "Italic"
	}

	digits := strings.IndexFunc(variant, func(r rune) bool { return r < '0' || r > '9' })
	if digits == -1 {
		return variant
	}
	if digits > 0 && variant[digits:] == "italic" {
		return variant[:digits] + " Italic"
	}
	return variant
}
