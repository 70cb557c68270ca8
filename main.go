package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	gofiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	recover2 "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	_ "github.com/joho/godotenv/autoload"

	"LocalFontsBrowserApi/conf"
	font_catalog "LocalFontsBrowserApi/font-catalog"
	fontservice "LocalFontsBrowserApi/font-service"
	"LocalFontsBrowserApi/logger"
)

func main() {
	settings, err := conf.Load("conf/app.json")
	if err != nil {
		panic(err)
	}
	if err := logger.Init(conf.Config); err != nil {
		panic(err)
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providers := fontservice.NewFontProviderService(
		fontservice.NewLocalFontsProvider(settings.FontDirs, settings.Workers, settings.ShowProgress),
	)
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		providers.AddProvider(fontservice.NewGoogleFontsProvider(key, os.Getenv("GOOGLE_FONTS_ENDPOINT")))
	}

	store := fontservice.NewFileFavoritesStore(filepath.Join(settings.DataDir, "storage.json"))
	browser, err := fontservice.NewBrowser(ctx, providers, store, font_catalog.PreviewConfig{
		Text: settings.PreviewText,
		Size: settings.PreviewSize,
	})
	if err != nil {
		panic(err)
	}
	renderer := fontservice.NewPreviewRenderer(ctx, providers, settings.FaceCacheTTL)

	app := newApp(ctx, providers, browser, renderer)

	logger.Debug("Starting server on %s", settings.Host)

	log.Fatal(app.Listen(settings.Host))
}

func newApp(ctx context.Context, providers *fontservice.FontProviderService, browser *fontservice.Browser, renderer *fontservice.PreviewRenderer) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
	app.Use(recover2.New(recover2.Config{
		EnableStackTrace: true,
	}))
	app.Use(requestid.New())
	app.Use(gofiberlogger.New(gofiberlogger.Config{
		Format: "${pid} ${locals:requestid} ${status} - ${method} ${path}\n",
	}))

	api := app.Group("/api")

	api.Get("/providers", func(c fiber.Ctx) error {
		var data []map[string]any
		for _, provider := range providers.Providers() {
			data = append(data, map[string]any{
				"id":          provider.GetId(),
				"displayName": provider.GetDisplayName(),
			})
		}
		return c.JSON(map[string]any{
			"items": data,
		})
	})

	NewFontsApi(ctx, api, browser, renderer)

	return app
}
