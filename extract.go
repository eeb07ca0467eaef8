package typefont

import (
	"golang.org/x/text/unicode/norm"

	"github.com/wbrown/typefont/imageutil"
	"github.com/wbrown/typefont/ocr"
)

// normalizeSymbol brings symbol text to NFC, so recognized text and catalog
// keys compare equal regardless of how a character was composed.
func normalizeSymbol(s string) string {
	return norm.NFC.String(s)
}

// ExtractSymbols crops the glyph of every recognized symbol with a confidence
// of at least minConfidence out of src. When the same text was recognized more
// than once, the last occurrence wins. Symbols without text or with a bounding
// box outside of src are skipped.
func ExtractSymbols(symbols []ocr.Symbol, src *imageutil.RGBAImage, minConfidence float64) GlyphMapping {
	glyphs := make(GlyphMapping)
	for _, s := range symbols {
		if s.Confidence < minConfidence {
			tracer().Debugf("dropping %q, confidence %.1f < %.1f", s.Text, s.Confidence, minConfidence)
			continue
		}
		key := normalizeSymbol(s.Text)
		if key == "" {
			continue
		}
		crop := src.CropRect(s.BBox.Canon())
		if crop.Empty() {
			tracer().Debugf("dropping %q, bounding box %v lies outside the image", s.Text, s.BBox)
			continue
		}
		glyphs[key] = GlyphFromImage(crop)
	}
	return glyphs
}
