package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wbrown/typefont/imageutil"
)

func TestRenderGlyph(t *testing.T) {
	ttf, err := ParseTTF(goregular.TTF)
	require.NoError(t, err)

	opts := DefaultRenderOptions()
	glyph, ok := RenderGlyph(ttf, 'A', opts)
	require.True(t, ok)

	// Cropped to the ink plus padding, so smaller than the em square but
	// not degenerate.
	assert.Greater(t, glyph.Width(), 10)
	assert.Greater(t, glyph.Height(), 10)
	assert.Less(t, glyph.Height(), int(opts.Size*2))

	// Padding is white, the glyph itself has dark ink.
	assert.Equal(t, imageutil.RGB{R: 255, G: 255, B: 255}, glyph.GetRGB(0, 0))
	ink := glyph.InkBounds(128)
	assert.Equal(t, opts.Padding, ink.Min.X)
	assert.Equal(t, opts.Padding, ink.Min.Y)

	_, ok = RenderGlyph(ttf, ' ', opts)
	assert.False(t, ok, "space leaves no ink")
}

func TestRenderGlyphTallerThanWide(t *testing.T) {
	ttf, err := ParseTTF(goregular.TTF)
	require.NoError(t, err)

	l, ok := RenderGlyph(ttf, 'l', DefaultRenderOptions())
	require.True(t, ok)
	assert.Greater(t, l.Height(), 2*l.Width())
}

func TestRenderFont(t *testing.T) {
	ttf, err := ParseTTF(goregular.TTF)
	require.NoError(t, err)

	opts := DefaultRenderOptions()
	opts.Symbols = "abc 1"
	glyphs := RenderFont(ttf, opts)
	assert.Len(t, glyphs, 4)
	for _, s := range []string{"a", "b", "c", "1"} {
		assert.Contains(t, glyphs, s)
	}

	meta := FontMeta(ttf)
	assert.Equal(t, "Go Regular", meta["name"])
	assert.Equal(t, "Go", meta["family"])
}

func TestGoFonts(t *testing.T) {
	opts := DefaultRenderOptions()
	opts.Size = 24
	opts.Symbols = "ab"
	g := NewGoFonts(opts)
	ctx := context.Background()

	index, err := g.Index(ctx)
	require.NoError(t, err)
	assert.Contains(t, index, "go-regular")
	assert.Contains(t, index, "go-mono")

	f, err := g.Font(ctx, "go-mono")
	require.NoError(t, err)
	assert.Equal(t, "Go Mono", f.Meta["name"])
	assert.Len(t, f.Alpha, 2)

	img, err := imageutil.DecodeDataURI(f.Alpha["a"])
	require.NoError(t, err)
	assert.False(t, img.Empty())

	same, err := g.Font(ctx, "go-mono")
	require.NoError(t, err)
	assert.Same(t, f, same)

	_, err = g.Font(ctx, "comic-sans")
	assert.ErrorIs(t, err, ErrFetch)
}
