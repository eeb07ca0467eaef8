package catalog

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/wbrown/typefont/imageutil"
	"github.com/wbrown/typefont/ocr"
)

// RenderOptions control glyph rasterization.
type RenderOptions struct {
	Size    float64 // font size in points
	DPI     float64
	Symbols string // characters to render
	Padding int    // white border around the ink, in pixels
}

// DefaultRenderOptions renders the recognizable symbols at 64pt/72dpi with a
// one pixel border, close to the size of text in a typical screenshot crop.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Size:    64,
		DPI:     72,
		Symbols: ocr.DefaultWhitelist,
		Padding: 1,
	}
}

// LoadTTF loads a TrueType font from file.
func LoadTTF(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTTF(fontBytes)
}

// ParseTTF parses TrueType font data.
func ParseTTF(data []byte) (*truetype.Font, error) {
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}

// RenderGlyph renders r black on white and crops the result to the ink.
// It returns false if the font has no glyph for r or the glyph leaves no ink
// (e.g. a space).
func RenderGlyph(ttf *truetype.Font, r rune, opts RenderOptions) (*imageutil.RGBAImage, bool) {
	if ttf.Index(r) == 0 {
		return nil, false
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.Size,
		DPI:     opts.DPI,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	// Size the canvas from the font metrics so descenders and wide glyphs
	// are never clipped.
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	advance, ok := face.GlyphAdvance(r)
	if !ok {
		return nil, false
	}
	margin := int(opts.Size / 2)
	width := advance.Ceil() + 2*margin
	height := ascent + descent + 2*margin

	canvas := imageutil.CreateSolidImage(width, height, imageutil.RGB{R: 255, G: 255, B: 255})

	ctx := freetype.NewContext()
	ctx.SetDPI(opts.DPI)
	ctx.SetFont(ttf)
	ctx.SetFontSize(opts.Size)
	ctx.SetClip(canvas.Bounds())
	ctx.SetDst(canvas.RGBA)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingFull)

	pt := fixed.Point26_6{
		X: fixed.I(margin),
		Y: fixed.I(margin + ascent),
	}
	if _, err := ctx.DrawString(string(r), pt); err != nil {
		return nil, false
	}

	ink := canvas.InkBounds(128)
	if ink.Empty() {
		return nil, false
	}
	glyph := canvas.CropRect(ink.Inset(-opts.Padding))
	if opts.Padding > 0 && glyph.Bounds().Size() != ink.Inset(-opts.Padding).Size() {
		// Ink touched the canvas edge; pad onto a fresh white image.
		padded := imageutil.CreateSolidImage(ink.Dx()+2*opts.Padding, ink.Dy()+2*opts.Padding,
			imageutil.RGB{R: 255, G: 255, B: 255})
		draw.Draw(padded.RGBA, image.Rect(opts.Padding, opts.Padding,
			opts.Padding+ink.Dx(), opts.Padding+ink.Dy()), canvas.RGBA, ink.Min, draw.Src)
		glyph = padded
	}
	return glyph, true
}

// RenderFont renders every symbol of opts.Symbols the font can display.
func RenderFont(ttf *truetype.Font, opts RenderOptions) map[string]*imageutil.RGBAImage {
	glyphs := make(map[string]*imageutil.RGBAImage, len(opts.Symbols))
	for _, r := range opts.Symbols {
		if g, ok := RenderGlyph(ttf, r, opts); ok {
			glyphs[string(r)] = g
		} else {
			tracer().Debugf("font %q has no glyph for %q", ttf.Name(truetype.NameIDFontFullName), r)
		}
	}
	return glyphs
}

// FontMeta collects catalog metadata from the font's name table. Entries the
// font does not carry are left out.
func FontMeta(ttf *truetype.Font) map[string]any {
	meta := make(map[string]any)
	for key, id := range map[string]truetype.NameID{
		"name":      truetype.NameIDFontFullName,
		"family":    truetype.NameIDFontFamily,
		"author":    truetype.NameIDDesignerName,
		"uri":       truetype.NameIDFontVendorURL,
		"copyright": truetype.NameIDCopyright,
		"license":   truetype.NameIDFontLicense,
	} {
		if v := ttf.Name(id); v != "" {
			meta[key] = v
		}
	}
	return meta
}

// NewFont renders a TrueType font into a catalog entry.
func NewFont(name string, ttf *truetype.Font, opts RenderOptions) (*Font, error) {
	f := &Font{
		Name:  name,
		Meta:  FontMeta(ttf),
		Alpha: make(map[string]string),
	}
	if _, ok := f.Meta["name"]; !ok {
		f.Meta["name"] = name
	}
	for symbol, glyph := range RenderFont(ttf, opts) {
		uri, err := imageutil.EncodeDataURI(glyph)
		if err != nil {
			return nil, err
		}
		f.Alpha[symbol] = uri
	}
	return f, nil
}
