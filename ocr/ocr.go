// Package ocr describes the optical character recognition collaborator of the
// font matcher. It carries no engine of its own: a Recognizer is plugged in by
// the caller (the typefont command wires Tesseract).
package ocr

import (
	"context"
	"image"
)

// DefaultLanguage is the recognition language used unless configured otherwise.
const DefaultLanguage = "eng"

// DefaultWhitelist restricts recognition to ASCII letters and digits, the
// symbols a font catalog carries glyphs for.
const DefaultWhitelist = "aAbBcCdDeEfFgGhHiIjJkKlLmMnNoOpPqQrRsStTuUvVwWxXyYzZ0123456789"

// Symbol is a single recognized character.
type Symbol struct {
	Text       string          // recognized text, usually one character
	Confidence float64         // confidence in [0,100]
	BBox       image.Rectangle // bounding box in source image coordinates
}

// Result is the output of one recognition pass.
type Result struct {
	Symbols []Symbol
}

// Options parameterize a recognition pass.
type Options struct {
	Language  string
	Whitelist string
}

// DefaultOptions returns the language and whitelist used by the matcher.
func DefaultOptions() Options {
	return Options{
		Language:  DefaultLanguage,
		Whitelist: DefaultWhitelist,
	}
}

// Recognizer recognizes the symbols in an image. Implementations should
// return promptly once ctx is done; the matcher enforces its recognition
// timeout regardless.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image, opts Options) (Result, error)
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, img image.Image, opts Options) (Result, error)

// Recognize calls f.
func (f RecognizerFunc) Recognize(ctx context.Context, img image.Image, opts Options) (Result, error) {
	return f(ctx, img, opts)
}
