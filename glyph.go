package typefont

import (
	"fmt"
	"slices"
	"sync"

	"github.com/wbrown/typefont/imageutil"
)

// Glyph is the image of a single symbol, held either as a decoded raster or
// as an image data URI that is decoded on first use. A Glyph is immutable and
// may be shared by concurrent comparisons.
type Glyph struct {
	uri string

	once sync.Once
	img  *imageutil.RGBAImage
	err  error
}

// GlyphFromImage wraps a decoded raster.
func GlyphFromImage(img *imageutil.RGBAImage) *Glyph {
	g := &Glyph{img: img}
	g.once.Do(func() {
		if img.Empty() {
			g.err = fmt.Errorf("%w: empty glyph image", ErrDecode)
		}
	})
	return g
}

// GlyphFromURI wraps an image data URI such as "data:image/png;base64,...".
func GlyphFromURI(uri string) *Glyph {
	return &Glyph{uri: uri}
}

// Image returns the decoded raster. Callers must not modify it.
func (g *Glyph) Image() (*imageutil.RGBAImage, error) {
	g.once.Do(func() {
		g.img, g.err = imageutil.DecodeDataURI(g.uri)
		if g.err == nil && g.img.Empty() {
			g.err = fmt.Errorf("%w: empty glyph image", ErrDecode)
		}
	})
	return g.img, g.err
}

// DataURI returns the glyph as a PNG data URI.
func (g *Glyph) DataURI() (string, error) {
	if g.uri != "" {
		return g.uri, nil
	}
	img, err := g.Image()
	if err != nil {
		return "", err
	}
	return imageutil.EncodeDataURI(img)
}

// GlyphMapping maps symbol text to its glyph.
type GlyphMapping map[string]*Glyph

// Keys returns the symbols of m in sorted order.
func (m GlyphMapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// GlyphMappingFromURIs builds a mapping from symbol to data URI pairs, the
// form glyphs take in a catalog font.
func GlyphMappingFromURIs(uris map[string]string) GlyphMapping {
	m := make(GlyphMapping, len(uris))
	for symbol, uri := range uris {
		m[normalizeSymbol(symbol)] = GlyphFromURI(uri)
	}
	return m
}
