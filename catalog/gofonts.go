package catalog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

var goFontData = []struct {
	name string
	ttf  []byte
}{
	{"go-regular", goregular.TTF},
	{"go-bold", gobold.TTF},
	{"go-italic", goitalic.TTF},
	{"go-bold-italic", gobolditalic.TTF},
	{"go-medium", gomedium.TTF},
	{"go-mono", gomono.TTF},
	{"go-mono-bold", gomonobold.TTF},
	{"go-smallcaps", gosmallcaps.TTF},
}

// GoFonts is a built-in catalog of the Go font family. Fonts are rendered on
// first access and kept in memory.
type GoFonts struct {
	opts RenderOptions

	mu    sync.Mutex
	fonts map[string]*Font
}

// NewGoFonts creates the built-in catalog, rendering glyphs with opts.
func NewGoFonts(opts RenderOptions) *GoFonts {
	return &GoFonts{
		opts:  opts,
		fonts: make(map[string]*Font),
	}
}

// Index lists the Go fonts.
func (g *GoFonts) Index(ctx context.Context) ([]string, error) {
	index := make([]string, len(goFontData))
	for i, f := range goFontData {
		index[i] = f.name
	}
	return index, nil
}

// Font renders (or returns the already rendered) named Go font.
func (g *GoFonts) Font(ctx context.Context, name string) (*Font, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if f, ok := g.fonts[name]; ok {
		return f, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, fd := range goFontData {
		if fd.name != name {
			continue
		}
		ttf, err := ParseTTF(fd.ttf)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, name, err)
		}
		f, err := NewFont(name, ttf, g.opts)
		if err != nil {
			return nil, err
		}
		f.Meta["uri"] = "https://go.dev/blog/go-fonts"
		tracer().Debugf("rendered built-in font %q with %d glyphs", name, len(f.Alpha))
		g.fonts[name] = f
		return f, nil
	}
	return nil, fmt.Errorf("%w: no built-in font %q", ErrFetch, name)
}
