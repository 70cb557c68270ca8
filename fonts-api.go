package main

import (
	"bytes"
	"context"
	b64 "encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/wandb/parallel"

	font_catalog "LocalFontsBrowserApi/font-catalog"
	font_service "LocalFontsBrowserApi/font-service"
	"LocalFontsBrowserApi/logger"
	"LocalFontsBrowserApi/utils"
)

var apiLog = logger.Category("api")

type FontsApi struct {
	ctx      context.Context
	browser  *font_service.Browser
	renderer *font_service.PreviewRenderer
}

type styleView struct {
	font_catalog.StyleRecord
	Weight      int    `json:"weight"`
	WeightLabel string `json:"weightLabel"`
	Slant       string `json:"slant"`
	Description string `json:"description"`
}

type familyView struct {
	Family       string      `json:"family"`
	Favorited    bool        `json:"favorited"`
	Expanded     bool        `json:"expanded"`
	StyleCount   int         `json:"styleCount"`
	PreviewStyle *styleView  `json:"previewStyle,omitempty"`
	Styles       []styleView `json:"styles"`
}

type familyRequest struct {
	Family string `json:"family"`
}

type dragLeaveRequest struct {
	IntoChild bool `json:"intoChild"`
}

func NewFontsApi(ctx context.Context, api fiber.Router, browser *font_service.Browser, renderer *font_service.PreviewRenderer) *FontsApi {
	inst := &FontsApi{
		ctx:      ctx,
		browser:  browser,
		renderer: renderer,
	}

	fonts := api.Group("/fonts")
	fonts.Get("/", inst.All)
	fonts.Post("/load", inst.Load)
	fonts.Get("/status", inst.Status)
	fonts.Get("/preview", inst.Preview)
	fonts.Get("/preview/multi", inst.PreviewMulti)
	fonts.Post("/:family/expand", inst.ToggleExpanded)

	api.Get("/preview", inst.GetPreviewConfig)
	api.Put("/preview", inst.SetPreviewConfig)

	favorites := api.Group("/favorites")
	favorites.Get("/", inst.Favorites)
	favorites.Post("/:family/toggle", inst.ToggleFavorite)

	drag := favorites.Group("/drag")
	drag.Get("/", inst.DragState)
	drag.Post("/start", inst.DragStart)
	drag.Post("/over", inst.DragOver)
	drag.Post("/leave", inst.DragLeave)
	drag.Post("/drop", inst.Drop)
	drag.Post("/end", inst.DragEnd)

	return inst
}

func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, font_service.ErrLoadInProgress):
		code = fiber.StatusConflict
	case errors.Is(err, font_service.ErrPermissionDenied):
		code = fiber.StatusForbidden
	case errors.Is(err, font_service.ErrFamilyNotFound),
		errors.Is(err, font_service.ErrStyleNotFound),
		errors.Is(err, font_service.ErrProviderNotFound):
		code = fiber.StatusNotFound
	}

	if code >= fiber.StatusInternalServerError {
		apiLog.Error("[%s %s]: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(map[string]any{
		"error": err.Error(),
	})
}

func familyParam(c fiber.Ctx) (string, error) {
	family, err := url.PathUnescape(fiber.Params[string](c, "family"))
	if err != nil || family == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid family")
	}
	return family, nil
}

func hasQuery(c fiber.Ctx, key string) bool {
	return c.Request().URI().QueryArgs().Has(key)
}

func newStyleView(s font_catalog.StyleRecord) styleView {
	w := font_catalog.InferWeight(s.Style)
	return styleView{
		StyleRecord: s,
		Weight:      w.Value,
		WeightLabel: w.Label,
		Slant:       font_catalog.ClassifySlant(s.Style).String(),
		Description: font_catalog.WeightDescription(s.Style),
	}
}

func (a *FontsApi) newFamilyView(f font_catalog.GroupedFamily) familyView {
	view := familyView{
		Family:     f.Family,
		Favorited:  f.Favorited,
		Expanded:   a.browser.IsExpanded(f.Family),
		StyleCount: len(f.Styles),
		Styles:     make([]styleView, len(f.Styles)),
	}
	for i, s := range f.Styles {
		view.Styles[i] = newStyleView(s)
	}
	if s, ok := font_catalog.PreviewStyle(f); ok {
		sv := newStyleView(s)
		view.PreviewStyle = &sv
	}
	return view
}

func (a *FontsApi) familyViews(families []font_catalog.GroupedFamily) []familyView {
	views := make([]familyView, len(families))
	for i, f := range families {
		views[i] = a.newFamilyView(f)
	}
	return views
}

// All lists the families of the current view. Passing search or view updates
// the session before listing.
func (a *FontsApi) All(c fiber.Ctx) error {
	startedAt := time.Now()
	defer func() { logger.Debug("[/Fonts/All]: %v", time.Since(startedAt)) }()

	if hasQuery(c, "search") {
		a.browser.SetSearch(c.Query("search"))
	}
	if hasQuery(c, "view") {
		v, err := font_service.ParseView(c.Query("view"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		a.browser.SetView(v)
	}

	return c.JSON(map[string]any{
		"view":   a.browser.View(),
		"search": a.browser.Search(),
		"items":  a.familyViews(a.browser.List()),
	})
}

func (a *FontsApi) Load(c fiber.Ctx) error {
	if err := a.browser.LoadFonts(a.ctx); err != nil {
		return err
	}
	return a.Status(c)
}

func (a *FontsApi) Status(c fiber.Ctx) error {
	status, err := a.browser.Status()
	body := map[string]any{
		"status": status,
		"styles": a.browser.FontCount(),
	}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.JSON(body)
}

func (a *FontsApi) ToggleExpanded(c fiber.Ctx) error {
	family, err := familyParam(c)
	if err != nil {
		return err
	}
	if _, err := a.browser.Family(family); err != nil {
		return err
	}
	return c.JSON(map[string]any{
		"family":   family,
		"expanded": a.browser.ToggleExpanded(family),
	})
}

type fontPreviewQuery struct {
	Family     string `query:"family"`
	Style      string `query:"style"`
	ResultType string `query:"resultType"`
}

func (a *FontsApi) previewConfig(c fiber.Ctx) (font_catalog.PreviewConfig, error) {
	cfg := a.browser.Preview()
	if hasQuery(c, "text") {
		cfg.Text = c.Query("text")
	}
	if hasQuery(c, "size") {
		size, err := strconv.ParseFloat(c.Query("size"), 64)
		if err != nil {
			return cfg, fiber.NewError(fiber.StatusBadRequest, "invalid size")
		}
		cfg.Size = size
	}
	return cfg.Clamp(), nil
}

func (a *FontsApi) Preview(c fiber.Ctx) error {
	r := new(fontPreviewQuery)
	if err := c.Bind().Query(r); err != nil {
		return err
	}

	family, err := a.browser.Family(r.Family)
	if err != nil {
		return err
	}

	var style font_catalog.StyleRecord
	var ok bool
	if r.Style == "" {
		style, ok = font_catalog.PreviewStyle(family)
	} else {
		style, ok = family.FindStyle(r.Style)
	}
	if !ok {
		return fmt.Errorf("%w: %s %s", font_service.ErrStyleNotFound, r.Family, r.Style)
	}

	cfg, err := a.previewConfig(c)
	if err != nil {
		return err
	}

	dctx, err := a.renderer.Render(a.ctx, style, cfg)
	if err != nil {
		return err
	}

	// Encode once so the image can go out either as base64 or raw png.
	var buf bytes.Buffer
	if err := dctx.EncodePNG(&buf); err != nil {
		return err
	}

	switch font_service.FontPreviewResultType(r.ResultType) {
	case font_service.FontPreviewResultTypeBase64:
		c.Set("Content-Type", "text/plain")
		return c.SendString(b64.StdEncoding.EncodeToString(buf.Bytes()))
	case font_service.FontPreviewResultTypePng, "":
		c.Set("Content-Type", "image/png")
		c.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q",
			utils.GetPathSafeName(style.Family)+"-"+utils.GetPathSafeName(style.Style)+".png"))
		return c.SendStream(&buf)
	}

	return fiber.NewError(fiber.StatusBadRequest, "unknown result type")
}

type renderedStyle struct {
	style string
	image string
}

// PreviewMulti renders every style of a family and returns them base64
// encoded, keyed by style label.
func (a *FontsApi) PreviewMulti(c fiber.Ctx) error {
	r := new(fontPreviewQuery)
	if err := c.Bind().Query(r); err != nil {
		return err
	}
	if r.ResultType == string(font_service.FontPreviewResultTypePng) {
		return fiber.NewError(fiber.StatusBadRequest, "result type png not supported for multi preview")
	}

	family, err := a.browser.Family(r.Family)
	if err != nil {
		return err
	}
	cfg, err := a.previewConfig(c)
	if err != nil {
		return err
	}

	group := parallel.Collect[renderedStyle](parallel.Limited(a.ctx, 8))
	for _, style := range family.Styles {
		group.Go(func(ctx context.Context) (renderedStyle, error) {
			dctx, err := a.renderer.Render(ctx, style, cfg)
			if err != nil {
				return renderedStyle{}, err
			}

			var buf bytes.Buffer
			if err := dctx.EncodePNG(&buf); err != nil {
				return renderedStyle{}, err
			}
			return renderedStyle{style: style.Style, image: b64.StdEncoding.EncodeToString(buf.Bytes())}, nil
		})
	}

	rendered, err := group.Wait()
	if err != nil {
		return err
	}

	results := make(map[string]string, len(rendered))
	for _, r := range rendered {
		results[r.style] = r.image
	}
	return c.JSON(results)
}

func (a *FontsApi) GetPreviewConfig(c fiber.Ctx) error {
	return c.JSON(a.browser.Preview())
}

func (a *FontsApi) SetPreviewConfig(c fiber.Ctx) error {
	cfg := a.browser.Preview()
	if err := c.Bind().Body(&cfg); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(a.browser.SetPreview(cfg))
}

func (a *FontsApi) favoritesBody() map[string]any {
	return map[string]any{
		"order": a.browser.FavoritesOrder(),
		"items": a.familyViews(a.browser.Favorites()),
		"drag":  a.browser.Drag(),
	}
}

func (a *FontsApi) Favorites(c fiber.Ctx) error {
	return c.JSON(a.favoritesBody())
}

func (a *FontsApi) ToggleFavorite(c fiber.Ctx) error {
	family, err := familyParam(c)
	if err != nil {
		return err
	}
	if _, err := a.browser.ToggleFavorite(a.ctx, family); err != nil {
		return err
	}
	return c.JSON(a.favoritesBody())
}

func (a *FontsApi) bindFamily(c fiber.Ctx) (string, error) {
	req := new(familyRequest)
	if err := c.Bind().Body(req); err != nil || req.Family == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "family is required")
	}
	return req.Family, nil
}

func (a *FontsApi) DragState(c fiber.Ctx) error {
	return c.JSON(a.browser.Drag())
}

func (a *FontsApi) DragStart(c fiber.Ctx) error {
	family, err := a.bindFamily(c)
	if err != nil {
		return err
	}
	if err := a.browser.StartDrag(family); err != nil {
		return err
	}
	return c.JSON(a.favoritesBody())
}

func (a *FontsApi) DragOver(c fiber.Ctx) error {
	family, err := a.bindFamily(c)
	if err != nil {
		return err
	}
	a.browser.DragOver(family)
	return c.JSON(a.browser.Drag())
}

func (a *FontsApi) DragLeave(c fiber.Ctx) error {
	req := new(dragLeaveRequest)
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	a.browser.DragLeave(req.IntoChild)
	return c.JSON(a.browser.Drag())
}

func (a *FontsApi) Drop(c fiber.Ctx) error {
	_, moved, err := a.browser.Drop(a.ctx)
	if err != nil {
		return err
	}
	body := a.favoritesBody()
	body["moved"] = moved
	return c.JSON(body)
}

func (a *FontsApi) DragEnd(c fiber.Ctx) error {
	a.browser.EndDrag()
	return c.JSON(a.favoritesBody())
}
