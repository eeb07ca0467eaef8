package typefont

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/typefont/imageutil"
)

func TestIdentity(t *testing.T) {
	regular, _ := testFonts(t)
	for _, r := range "aBg7" {
		g := GlyphFromImage(renderGlyph(t, regular, r))
		for _, threshold := range []float64{0, 0.1, 0.5, 1} {
			for _, sameSize := range []bool{false, true} {
				v, err := AnalyticSimilarity(g, g, threshold, sameSize)
				require.NoError(t, err)
				assert.Equal(t, 100.0, v, "analytic %q threshold=%v sameSize=%v", r, threshold, sameSize)
			}
		}
		v, err := ShapeSimilarity(g, g)
		require.NoError(t, err)
		assert.Equal(t, 100.0, v, "shape %q", r)
	}
}

func TestIdentityThroughDataURI(t *testing.T) {
	regular, _ := testFonts(t)
	img := renderGlyph(t, regular, 'k')
	uri, err := imageutil.EncodeDataURI(img)
	require.NoError(t, err)

	a, err := AnalyticSimilarity(GlyphFromImage(img), GlyphFromURI(uri), 0.1, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, a)

	s, err := ShapeSimilarity(GlyphFromURI(uri), GlyphFromImage(img))
	require.NoError(t, err)
	assert.Equal(t, 100.0, s)
}

func TestOppositeImages(t *testing.T) {
	white := GlyphFromImage(imageutil.CreateSolidImage(10, 10, imageutil.RGB{R: 255, G: 255, B: 255}))
	black := GlyphFromImage(imageutil.CreateSolidImage(10, 10, imageutil.RGB{}))

	a, err := AnalyticSimilarity(white, black, 0.1, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, a)

	s, err := ShapeSimilarity(white, black)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
}

func TestAnalyticCountsSinglePixel(t *testing.T) {
	img := imageutil.CreateSolidImage(10, 10, imageutil.RGB{R: 255, G: 255, B: 255})
	other := img.Clone()
	other.SetRGB(5, 5, imageutil.RGB{})

	v, err := AnalyticSimilarity(GlyphFromImage(img), GlyphFromImage(other), 0.1, false)
	require.NoError(t, err)
	assert.InDelta(t, 99.0, v, 1e-9)
}

func TestAnalyticIgnoresAntialiasing(t *testing.T) {
	// A black bar on white. The second image has a gray pixel on the bar's
	// edge, which has a darker and a brighter neighbor that both sit in
	// solid areas: an anti-aliasing artifact.
	img := imageutil.CreateGlyphImage(12, 12, image.Rect(0, 0, 6, 12))
	other := img.Clone()
	other.SetRGB(6, 6, imageutil.RGB{R: 128, G: 128, B: 128})

	v, err := AnalyticSimilarity(GlyphFromImage(img), GlyphFromImage(other), 0.1, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)
}

func TestAnalyticThreshold(t *testing.T) {
	img := imageutil.CreateSolidImage(8, 8, imageutil.RGB{R: 255, G: 255, B: 255})
	light := imageutil.CreateSolidImage(8, 8, imageutil.RGB{R: 230, G: 230, B: 230})

	strict, err := AnalyticSimilarity(GlyphFromImage(img), GlyphFromImage(light), 0.05, false)
	require.NoError(t, err)
	lenient, err := AnalyticSimilarity(GlyphFromImage(img), GlyphFromImage(light), 0.5, false)
	require.NoError(t, err)

	assert.Equal(t, 0.0, strict)
	assert.Equal(t, 100.0, lenient)
}

func TestAnalyticDifferentSizes(t *testing.T) {
	regular, _ := testFonts(t)
	img := renderGlyph(t, regular, 'o')
	big := imageutil.Resize(img, img.Width()*2, img.Height()*2, imageutil.InterpolationLinear)

	v, err := AnalyticSimilarity(GlyphFromImage(img), GlyphFromImage(big), 0.5, false)
	require.NoError(t, err)
	assert.Greater(t, v, 90.0)
	assert.LessOrEqual(t, v, 100.0)

	// Argument order does not matter for the size matching.
	w, err := AnalyticSimilarity(GlyphFromImage(big), GlyphFromImage(img), 0.5, false)
	require.NoError(t, err)
	assert.InDelta(t, v, w, 5)
}

func TestSimilarityRange(t *testing.T) {
	regular, mono := testFonts(t)
	glyphs := []*Glyph{
		GlyphFromImage(renderGlyph(t, regular, 'a')),
		GlyphFromImage(renderGlyph(t, mono, 'a')),
		GlyphFromImage(renderGlyph(t, regular, 'W')),
		GlyphFromImage(imageutil.CreateCheckerboardImage(30, 17, 3)),
		GlyphFromImage(imageutil.CreateGradientImage(5, 40)),
		GlyphFromImage(imageutil.NewRGBAImage(9, 9)), // transparent
	}
	for i, a := range glyphs {
		for j, b := range glyphs {
			for _, sameSize := range []bool{false, true} {
				v, err := AnalyticSimilarity(a, b, 0.1, sameSize)
				require.NoError(t, err)
				assert.True(t, v >= 0 && v <= 100, "analytic(%d,%d)=%v", i, j, v)
			}
			v, err := ShapeSimilarity(a, b)
			require.NoError(t, err)
			assert.True(t, v >= 0 && v <= 100, "shape(%d,%d)=%v", i, j, v)
		}
	}
}

func TestShapeDistinguishesSymbols(t *testing.T) {
	regular, _ := testFonts(t)
	a := GlyphFromImage(renderGlyph(t, regular, 'g'))
	same := GlyphFromImage(renderGlyph(t, regular, 'g'))
	other := GlyphFromImage(renderGlyph(t, regular, 'x'))

	s1, err := ShapeSimilarity(a, same)
	require.NoError(t, err)
	s2, err := ShapeSimilarity(a, other)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s1)
	assert.Less(t, s2, s1)
}

func TestDecodeErrors(t *testing.T) {
	good := GlyphFromImage(imageutil.CreateSolidImage(4, 4, imageutil.RGB{}))
	for name, bad := range map[string]*Glyph{
		"garbage": GlyphFromURI("data:image/png;base64,bm90IGFuIGltYWdl"),
		"no uri":  GlyphFromURI("hello"),
		"empty":   GlyphFromImage(imageutil.NewRGBAImage(0, 0)),
		"nil":     GlyphFromImage(nil),
	} {
		_, err := AnalyticSimilarity(good, bad, 0.1, false)
		assert.ErrorIs(t, err, ErrDecode, "analytic %s", name)
		_, err = ShapeSimilarity(bad, good)
		assert.ErrorIs(t, err, ErrDecode, "shape %s", name)
	}
}

func TestMatrixCache(t *testing.T) {
	regular, _ := testFonts(t)
	a := GlyphFromImage(renderGlyph(t, regular, 'a'))
	b := GlyphFromImage(renderGlyph(t, regular, 'b'))
	cache := newMatrixCache()

	for i := 0; i < 3; i++ {
		v, err := shapeSimilarity(a, b, cache)
		require.NoError(t, err)
		plain, err := ShapeSimilarity(a, b)
		require.NoError(t, err)
		assert.Equal(t, plain, v)
	}
	hits, misses := cache.stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)

	cache.retain(GlyphMapping{"b": b})
	assert.Empty(t, cache.entries)
}
