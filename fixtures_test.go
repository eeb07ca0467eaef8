package typefont

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wbrown/typefont/catalog"
	"github.com/wbrown/typefont/imageutil"
)

var (
	fontsOnce   sync.Once
	goRegular   *truetype.Font
	goMono      *truetype.Font
	errFixtures error
)

func testFonts(t *testing.T) (regular, mono *truetype.Font) {
	t.Helper()
	fontsOnce.Do(func() {
		if goRegular, errFixtures = catalog.ParseTTF(goregular.TTF); errFixtures != nil {
			return
		}
		goMono, errFixtures = catalog.ParseTTF(gomono.TTF)
	})
	if errFixtures != nil {
		t.Fatalf("Failed to parse Go fonts: %v", errFixtures)
	}
	return goRegular, goMono
}

func testRenderOptions() catalog.RenderOptions {
	opts := catalog.DefaultRenderOptions()
	opts.Size = 32
	return opts
}

// renderGlyph renders r as a test glyph image.
func renderGlyph(t *testing.T, ttf *truetype.Font, r rune) *imageutil.RGBAImage {
	t.Helper()
	img, ok := catalog.RenderGlyph(ttf, r, testRenderOptions())
	if !ok {
		t.Fatalf("Font has no glyph for %q", r)
	}
	return img
}

// renderMapping renders every rune of symbols into a glyph mapping.
func renderMapping(t *testing.T, ttf *truetype.Font, symbols string) GlyphMapping {
	t.Helper()
	m := make(GlyphMapping)
	for _, r := range symbols {
		m[string(r)] = GlyphFromImage(renderGlyph(t, ttf, r))
	}
	return m
}

// memSource is an in-memory catalog.
type memSource struct {
	fonts []*catalog.Font
}

func (s *memSource) Index(ctx context.Context) ([]string, error) {
	index := make([]string, len(s.fonts))
	for i, f := range s.fonts {
		index[i] = f.Name
	}
	return index, nil
}

func (s *memSource) Font(ctx context.Context, name string) (*catalog.Font, error) {
	for _, f := range s.fonts {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s does not exist", catalog.ErrFetch, name)
}
