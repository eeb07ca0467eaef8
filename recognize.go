package typefont

import (
	"context"
	"errors"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/wbrown/typefont/imageutil"
	"github.com/wbrown/typefont/ocr"
)

// Recognize identifies the font of the text in img. The image is binarized
// (and reversed if it shows light text on a dark background), recognized by
// the matcher's OCR engine, and the recognized glyphs are matched against
// every font of the matcher's catalog. The fonts index is fetched while
// recognition runs.
func (m *Matcher) Recognize(ctx context.Context, img image.Image) ([]FontResult, error) {
	if m.recognizer == nil {
		return nil, errNoRecognizer
	}
	if m.source == nil {
		return nil, errNoCatalog
	}
	recognized, index, err := m.prepare(ctx, img)
	if err != nil {
		return nil, err
	}
	return m.run(ctx, recognized, len(index), func(ctx context.Context, i int) (FontEntry, error) {
		f, err := m.source.Font(ctx, index[i])
		if err != nil {
			return FontEntry{}, err
		}
		return FontEntryFromCatalog(f), nil
	})
}

// RecognizeFile is Recognize for an image file.
func (m *Matcher) RecognizeFile(ctx context.Context, path string) ([]FontResult, error) {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return m.Recognize(ctx, img)
}

// RecognizeDataURI is Recognize for an image data URI.
func (m *Matcher) RecognizeDataURI(ctx context.Context, uri string) ([]FontResult, error) {
	img, err := imageutil.DecodeDataURI(uri)
	if err != nil {
		return nil, err
	}
	return m.Recognize(ctx, img)
}

// prepare runs recognition and fetches the fonts index concurrently.
func (m *Matcher) prepare(ctx context.Context, img image.Image) (GlyphMapping, []string, error) {
	src := imageutil.Normalize(imageutil.RGBAImageFromImage(img), imageutil.DefaultBinarizeThreshold)

	var recognized GlyphMapping
	var index []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := m.recognize(gctx, src)
		if err != nil {
			return err
		}
		recognized = ExtractSymbols(res.Symbols, src, m.opts.MinSymbolConfidence)
		tracer().Infof("recognized %d of %d symbols: %v", len(recognized), len(res.Symbols), recognized.Keys())
		return nil
	})
	g.Go(func() error {
		var err error
		index, err = m.source.Index(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return recognized, index, nil
}

// recognize runs the OCR engine, giving up after the recognition timeout.
// An engine that ignores its context is abandoned, its late result dropped.
func (m *Matcher) recognize(ctx context.Context, img *imageutil.RGBAImage) (ocr.Result, error) {
	cancel := context.CancelFunc(func() {})
	if m.opts.RecognitionTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.opts.RecognitionTimeout)
	}
	defer cancel()

	type outcome struct {
		res ocr.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := m.recognizer.Recognize(ctx, img, m.opts.OCR)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		if o.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ocr.Result{}, fmt.Errorf("%w after %v: %v", ErrRecognitionTimeout, m.opts.RecognitionTimeout, o.err)
		}
		return o.res, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ocr.Result{}, fmt.Errorf("%w after %v", ErrRecognitionTimeout, m.opts.RecognitionTimeout)
		}
		return ocr.Result{}, ctx.Err()
	}
}
