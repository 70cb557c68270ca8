package font_service

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"LocalFontsBrowserApi/cache"
	font_catalog "LocalFontsBrowserApi/font-catalog"
	"LocalFontsBrowserApi/logger"
)

type FontPreviewResultType string

const (
	FontPreviewResultTypeBase64 FontPreviewResultType = "base64"
	FontPreviewResultTypePng    FontPreviewResultType = "png"
)

const (
	pxPerRem        = 16
	previewPadding  = 12
	maxPreviewWidth = 4000
)

// faceSource builds sized faces from a parsed font file.
type faceSource interface {
	NewFace(sizePx float64) (font.Face, error)
}

type truetypeSource struct{ f *truetype.Font }

func (s truetypeSource) NewFace(sizePx float64) (font.Face, error) {
	return truetype.NewFace(s.f, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

type opentypeSource struct{ f *opentype.Font }

func (s opentypeSource) NewFace(sizePx float64) (font.Face, error) {
	return opentype.NewFace(s.f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// PreviewRenderer draws preview text in a given style. Parsed fonts are
// cached per file and face index.
type PreviewRenderer struct {
	providers *FontProviderService
	faces     *cache.TTLCache[string, faceSource]
}

func NewPreviewRenderer(ctx context.Context, providers *FontProviderService, ttl time.Duration) *PreviewRenderer {
	faces := cache.NewTTL[string, faceSource](ttl)
	faces.StartJanitor(ctx, time.Minute)
	return &PreviewRenderer{providers: providers, faces: faces}
}

func faceCacheKey(style font_catalog.StyleRecord) string {
	return style.Provider + "|" + style.Location + "#" + strconv.Itoa(style.Index)
}

func (r *PreviewRenderer) faceSource(ctx context.Context, style font_catalog.StyleRecord) (faceSource, error) {
	return r.faces.GetOrLoad(faceCacheKey(style), func() (faceSource, error) {
		p := r.providers.GetProviderById(style.Provider)
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, style.Provider)
		}

		data, err := p.OpenFont(ctx, style)
		if err != nil {
			return nil, err
		}
		return parseFaceSource(data, style)
	})
}

// parseFaceSource prefers freetype for plain TrueType files and falls back
// to x/image's opentype parser for CFF outlines and collection members.
func parseFaceSource(data []byte, style font_catalog.StyleRecord) (faceSource, error) {
	if style.Index == 0 && !isCollectionFile(style.Location) {
		if ft, err := truetype.Parse(data); err == nil {
			return truetypeSource{ft}, nil
		}
	}

	if isCollectionFile(style.Location) {
		collection, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", style.FullName, err)
		}
		f, err := collection.Font(style.Index)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", style.FullName, err)
		}
		return opentypeSource{f}, nil
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", style.FullName, err)
	}
	return opentypeSource{f}, nil
}

// Render draws the preview text of cfg in style, sized cfg.Size rem.
func (r *PreviewRenderer) Render(ctx context.Context, style font_catalog.StyleRecord, cfg font_catalog.PreviewConfig) (*gg.Context, error) {
	src, err := r.faceSource(ctx, style)
	if err != nil {
		logger.Error("Failed to get font %s: %v", style.FullName, err)
		return nil, err
	}

	cfg = cfg.Clamp()
	sizePx := cfg.Size * pxPerRem
	face, err := src.NewFace(sizePx)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	text := cfg.TextFor(style.Family)

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	textWidth, _ := measure.MeasureString(text)

	width := int(math.Min(math.Ceil(textWidth)+2*previewPadding, maxPreviewWidth))
	height := int(math.Ceil(sizePx*1.5)) + 2*previewPadding

	dc := gg.NewContext(width, height)
	dc.SetColor(color.Transparent)
	dc.Clear()

	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(text, previewPadding, float64(height)/2, 0, 0.5)

	return dc, nil
}
