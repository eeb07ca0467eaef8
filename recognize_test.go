package typefont

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/typefont/catalog"
	"github.com/wbrown/typefont/imageutil"
	"github.com/wbrown/typefont/ocr"
)

// textImage lays out glyphs of the regular Go font next to each other on a
// white canvas and returns the symbols an OCR engine would report for it.
func textImage(t *testing.T, text string) (*imageutil.RGBAImage, []ocr.Symbol) {
	t.Helper()
	regular, _ := testFonts(t)
	canvas := imageutil.CreateSolidImage(60*len(text), 80, imageutil.RGB{R: 255, G: 255, B: 255})
	var symbols []ocr.Symbol
	x := 10
	for _, r := range text {
		g := renderGlyph(t, regular, r)
		box := image.Rect(x, 10, x+g.Width(), 10+g.Height())
		draw.Draw(canvas.RGBA, box, g.RGBA, image.Point{}, draw.Src)
		symbols = append(symbols, ocr.Symbol{Text: string(r), Confidence: 90, BBox: box})
		x += g.Width() + 10
	}
	return canvas, symbols
}

func testCatalog(t *testing.T) *memSource {
	t.Helper()
	regular, mono := testFonts(t)
	opts := testRenderOptions()
	opts.Symbols = "abcdefghij"
	f1, err := catalog.NewFont("go-regular", regular, opts)
	require.NoError(t, err)
	f2, err := catalog.NewFont("go-mono", mono, opts)
	require.NoError(t, err)
	f1.Meta["name"], f2.Meta["name"] = "Go Regular", "Go Mono"
	return &memSource{fonts: []*catalog.Font{f2, f1}}
}

func TestRecognize(t *testing.T) {
	img, symbols := textImage(t, "gafe")
	symbols = append(symbols, ocr.Symbol{Text: "j", Confidence: 3, BBox: image.Rect(0, 0, 5, 5)})

	var seen ocr.Options
	rec := ocr.RecognizerFunc(func(ctx context.Context, img image.Image, opts ocr.Options) (ocr.Result, error) {
		seen = opts
		return ocr.Result{Symbols: symbols}, nil
	})
	m := NewMatcher(WithCatalog(testCatalog(t)), WithRecognizer(rec))

	results, err := m.Recognize(context.Background(), img)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, ocr.DefaultWhitelist, seen.Whitelist)
	assert.Equal(t, "eng", seen.Language)

	assert.Equal(t, "Go Regular", results[0].Name)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
	assert.Len(t, results[0].Symbols, 4, "low confidence symbol is ignored")
	assert.NotContains(t, results[0].Symbols, "j")
}

func TestRecognizeReversesDarkImages(t *testing.T) {
	img, symbols := textImage(t, "ab")
	dark := imageutil.Reverse(img)

	var background imageutil.RGB
	rec := ocr.RecognizerFunc(func(ctx context.Context, img image.Image, opts ocr.Options) (ocr.Result, error) {
		background = imageutil.RGBAImageFromImage(img).GetRGB(0, 0)
		return ocr.Result{Symbols: symbols}, nil
	})
	m := NewMatcher(WithCatalog(testCatalog(t)), WithRecognizer(rec))

	results, err := m.Recognize(context.Background(), dark)
	require.NoError(t, err)
	assert.Equal(t, imageutil.RGB{R: 255, G: 255, B: 255}, background, "recognizer should see dark text on white")
	assert.Equal(t, "Go Regular", results[0].Name)
}

func TestRecognizeTimeout(t *testing.T) {
	img, _ := textImage(t, "a")
	release := make(chan struct{})
	defer close(release)

	rec := ocr.RecognizerFunc(func(ctx context.Context, img image.Image, opts ocr.Options) (ocr.Result, error) {
		<-release // ignores ctx
		return ocr.Result{}, nil
	})
	opts := DefaultOptions()
	opts.RecognitionTimeout = 20 * time.Millisecond
	m := NewMatcher(WithOptions(opts), WithCatalog(testCatalog(t)), WithRecognizer(rec))

	_, err := m.Recognize(context.Background(), img)
	assert.ErrorIs(t, err, ErrRecognitionTimeout)
}

func TestRecognizeErrors(t *testing.T) {
	img, symbols := textImage(t, "a")
	ok := ocr.RecognizerFunc(func(ctx context.Context, img image.Image, opts ocr.Options) (ocr.Result, error) {
		return ocr.Result{Symbols: symbols}, nil
	})

	_, err := NewMatcher(WithRecognizer(ok)).Recognize(context.Background(), img)
	assert.Error(t, err, "no catalog")

	_, err = NewMatcher(WithCatalog(testCatalog(t))).Recognize(context.Background(), img)
	assert.Error(t, err, "no recognizer")

	failing := ocr.RecognizerFunc(func(ctx context.Context, img image.Image, opts ocr.Options) (ocr.Result, error) {
		return ocr.Result{}, errors.New("engine exploded")
	})
	_, err = NewMatcher(WithCatalog(testCatalog(t)), WithRecognizer(failing)).Recognize(context.Background(), img)
	assert.ErrorContains(t, err, "engine exploded")

	missing := &memSource{fonts: nil}
	src := &indexOnlySource{memSource: missing, index: []string{"ghost"}}
	_, err = NewMatcher(WithCatalog(src), WithRecognizer(ok)).Recognize(context.Background(), img)
	assert.ErrorIs(t, err, ErrFetch)

	_, err = NewMatcher(WithCatalog(testCatalog(t)), WithRecognizer(ok)).
		RecognizeDataURI(context.Background(), "data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, ErrDecode)
}

// indexOnlySource lists fonts it cannot deliver.
type indexOnlySource struct {
	*memSource
	index []string
}

func (s *indexOnlySource) Index(ctx context.Context) ([]string, error) {
	return s.index, nil
}
