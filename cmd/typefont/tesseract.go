package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/wbrown/typefont/ocr"
)

// tesseract recognizes single symbols with the Tesseract engine.
// A gosseract client is not safe for concurrent use.
type tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

func newTesseract() *tesseract {
	return &tesseract{client: gosseract.NewClient()}
}

func (t *tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}

// Recognize implements ocr.Recognizer. Tesseract cannot be interrupted, the
// context is only checked before the engine is started.
func (t *tesseract) Recognize(ctx context.Context, img image.Image, opts ocr.Options) (ocr.Result, error) {
	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ocr.Result{}, fmt.Errorf("encode image for tesseract: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.client.SetLanguage(opts.Language); err != nil {
		return ocr.Result{}, err
	}
	if err := t.client.SetWhitelist(opts.Whitelist); err != nil {
		return ocr.Result{}, err
	}
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return ocr.Result{}, err
	}
	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return ocr.Result{}, fmt.Errorf("tesseract: %w", err)
	}
	res := ocr.Result{Symbols: make([]ocr.Symbol, 0, len(boxes))}
	for _, b := range boxes {
		res.Symbols = append(res.Symbols, ocr.Symbol{
			Text:       b.Word,
			Confidence: b.Confidence,
			BBox:       b.Box,
		})
	}
	tracer().Debugf("tesseract found %d symbols", len(res.Symbols))
	return res, nil
}
