package conf

import (
	"fmt"
	"os"
	"time"

	config "github.com/go-ozzo/ozzo-config"
)

var Config = config.New()

const defaultHost = ":3000"

// Settings is the typed view over the "App" section of app.json.
type Settings struct {
	Host         string
	DataDir      string
	FontDirs     []string
	Workers      int
	ShowProgress bool
	FaceCacheTTL time.Duration
	PreviewText  string
	PreviewSize  float64
}

// Load reads the config file into Config and extracts Settings. HOST from the
// environment wins over the file.
func Load(path string) (*Settings, error) {
	if err := Config.Load(path); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return FromConfig(Config)
}

func FromConfig(c *config.Config) (*Settings, error) {
	s := &Settings{
		Host:         c.GetString("App.Host", defaultHost),
		DataDir:      c.GetString("App.DataDir", "data"),
		Workers:      c.GetInt("App.Workers", 16),
		ShowProgress: c.GetBool("App.ShowProgress", true),
		PreviewText:  c.GetString("App.Preview.Text", ""),
		PreviewSize:  c.GetFloat("App.Preview.Size", 2),
	}

	if host := os.Getenv("HOST"); host != "" {
		s.Host = host
	}

	ttl, err := time.ParseDuration(c.GetString("App.FaceCacheTTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid App.FaceCacheTTL: %w", err)
	}
	s.FaceCacheTTL = ttl

	dirs, err := stringList(c.Get("App.FontDirs"))
	if err != nil {
		return nil, fmt.Errorf("invalid App.FontDirs: %w", err)
	}
	s.FontDirs = dirs

	if s.Workers < 1 {
		s.Workers = 1
	}

	return s, nil
}

func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
}
