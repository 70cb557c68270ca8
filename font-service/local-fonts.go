package font_service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/flopp/go-findfont"
	"github.com/schollz/progressbar/v3"
	"github.com/wandb/parallel"
	"golang.org/x/image/font/sfnt"

	font_catalog "LocalFontsBrowserApi/font-catalog"
	"LocalFontsBrowserApi/logger"
)

var fontFileExtensions = []string{".ttf", ".otf", ".ttc", ".otc"}

// LocalFontsProvider lists the font files installed on this machine.
type LocalFontsProvider struct {
	dirs         []string
	workers      int
	showProgress bool
}

// NewLocalFontsProvider scans dirs, or the platform font directories known to
// go-findfont when dirs is empty.
func NewLocalFontsProvider(dirs []string, workers int, showProgress bool) *LocalFontsProvider {
	if workers < 1 {
		workers = 1
	}
	return &LocalFontsProvider{dirs: dirs, workers: workers, showProgress: showProgress}
}

func (p *LocalFontsProvider) GetId() string          { return "local" }
func (p *LocalFontsProvider) GetDisplayName() string { return "Installed fonts" }

type parsedFontFile struct {
	index  int
	styles []font_catalog.StyleRecord
}

func (p *LocalFontsProvider) ListFonts(ctx context.Context) ([]font_catalog.StyleRecord, error) {
	startedAt := time.Now()
	defer func() { logger.Debug("[Local.ListFonts]: %v", time.Since(startedAt)) }()

	paths, err := p.candidates()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		logger.Info("No font files found, treating platform as unsupported")
		return []font_catalog.StyleRecord{}, nil
	}

	var bar *progressbar.ProgressBar
	if p.showProgress {
		bar = progressbar.Default(int64(len(paths)), "Reading font files")
	} else {
		bar = progressbar.DefaultSilent(int64(len(paths)), "Reading font files")
	}
	defer bar.Finish()

	var denied atomic.Int64
	group := parallel.Collect[parsedFontFile](parallel.Limited(ctx, p.workers))
	for i, path := range paths {
		group.Go(func(ctx context.Context) (parsedFontFile, error) {
			defer bar.Add(1)

			data, err := os.ReadFile(path)
			if err != nil {
				if errors.Is(err, fs.ErrPermission) {
					denied.Add(1)
				}
				logger.Warning("Skipping font file %s: %v", path, err)
				return parsedFontFile{index: i}, nil
			}

			styles, err := describeFontFile(path, data)
			if err != nil {
				logger.Warning("Skipping font file %s: %v", path, err)
			}
			for j := range styles {
				styles[j].Provider = p.GetId()
			}
			return parsedFontFile{index: i, styles: styles}, nil
		})
	}

	files, err := group.Wait()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if int(denied.Load()) == len(paths) {
		return nil, fmt.Errorf("%w: none of %d font files is readable", ErrPermissionDenied, len(paths))
	}

	slices.SortFunc(files, func(a, b parsedFontFile) int { return a.index - b.index })

	styles := make([]font_catalog.StyleRecord, 0, len(files))
	for _, f := range files {
		styles = append(styles, f.styles...)
	}
	return styles, nil
}

func (p *LocalFontsProvider) OpenFont(_ context.Context, style font_catalog.StyleRecord) ([]byte, error) {
	data, err := os.ReadFile(style.Location)
	if errors.Is(err, fs.ErrPermission) {
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, style.Location)
	}
	return data, err
}

// candidates returns every font file path, sorted, without duplicates.
func (p *LocalFontsProvider) candidates() ([]string, error) {
	var paths []string
	if len(p.dirs) == 0 {
		for _, path := range findfont.List() {
			if isFontFile(path) {
				paths = append(paths, path)
			}
		}
	} else {
		for _, dir := range p.dirs {
			found, err := walkFontDir(dir)
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
		}
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func walkFontDir(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			switch {
			case path == root && errors.Is(err, fs.ErrNotExist):
				return nil
			case path == root && errors.Is(err, fs.ErrPermission):
				return fmt.Errorf("%w: %s", ErrPermissionDenied, root)
			default:
				logger.Warning("Skipping %s: %v", path, err)
				return nil
			}
		}
		if !d.IsDir() && isFontFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func isFontFile(path string) bool {
	return slices.Contains(fontFileExtensions, strings.ToLower(filepath.Ext(path)))
}

func isCollectionFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".ttc" || ext == ".otc"
}

// describeFontFile reads the name table of every face in a font file.
func describeFontFile(path string, data []byte) ([]font_catalog.StyleRecord, error) {
	if !isCollectionFile(path) {
		f, err := sfnt.Parse(data)
		if err != nil {
			return nil, err
		}
		style, err := describeFace(f, path, 0)
		if err != nil {
			return nil, err
		}
		return []font_catalog.StyleRecord{style}, nil
	}

	collection, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, err
	}

	var styles []font_catalog.StyleRecord
	var errs []error
	for i := 0; i < collection.NumFonts(); i++ {
		f, err := collection.Font(i)
		if err != nil {
			errs = append(errs, fmt.Errorf("face %d: %w", i, err))
			continue
		}
		style, err := describeFace(f, path, i)
		if err != nil {
			errs = append(errs, fmt.Errorf("face %d: %w", i, err))
			continue
		}
		styles = append(styles, style)
	}
	return styles, errors.Join(errs...)
}

func describeFace(f *sfnt.Font, path string, index int) (font_catalog.StyleRecord, error) {
	var buf sfnt.Buffer
	name := func(ids ...sfnt.NameID) string {
		for _, id := range ids {
			if s, err := f.Name(&buf, id); err == nil && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return ""
	}

	style := font_catalog.StyleRecord{
		Family:         name(sfnt.NameIDTypographicFamily, sfnt.NameIDFamily),
		Style:          name(sfnt.NameIDTypographicSubfamily, sfnt.NameIDSubfamily),
		FullName:       name(sfnt.NameIDFull),
		PostscriptName: name(sfnt.NameIDPostScript),
		Location:       path,
		Index:          index,
	}
	if style.Family == "" {
		return style, errors.New("font has no family name")
	}
	if style.Style == "" {
		style.Style = "Regular"
	}
	if style.FullName == "" {
		style.FullName = style.Family + " " + style.Style
	}
	return style, nil
}
