/*
Package typefont identifies the font used to render text in a bitmap image.

The input image is binarized and handed to an OCR engine, which reports the
symbols it recognized together with their bounding boxes. The crops of these
symbols (the recognized glyphs) are compared against the glyphs of every font
in a catalog. Two metrics are computed per symbol:

  - analytic similarity: the share of pixels whose perceptual color
    difference stays below a threshold, ignoring anti-aliasing artifacts
  - shape similarity: the share of agreeing cells of two 48×48 binarized
    bit matrices (one minus the normalized Hamming distance)

A symbol's score is the mean of both metrics, a font's similarity is the mean
of its symbol scores. Fonts are compared concurrently and ranked by
similarity.

Only symbols both sides know are compared. A font sharing no symbol with the
recognized text cannot be scored; it is reported with Scored == false and a
similarity of 0 and ranks below every scored font.

Basic usage:

	m := typefont.NewMatcher(
		typefont.WithCatalog(catalog.NewStorage(catalog.DefaultOptions())),
		typefont.WithRecognizer(myOCR),
	)
	results, err := m.Recognize(ctx, img)

MatchFonts is the lower level entry point for callers that bring their own
recognized glyphs and font entries.
*/
package typefont

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'typefont'.
func tracer() tracing.Trace {
	return tracing.Select("typefont")
}
