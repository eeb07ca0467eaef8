package typefont

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wbrown/typefont/catalog"
	"github.com/wbrown/typefont/ocr"
)

// ProgressFunc is called after each font has been compared, with the font's
// name, its symbol scores and the fraction of fonts completed so far.
// Calls are serialized.
type ProgressFunc func(name string, scores map[string]SymbolScore, fraction float64)

// Matcher compares recognized glyphs against font catalogs. A Matcher may be
// used by several goroutines at once.
type Matcher struct {
	opts       Options
	progress   ProgressFunc
	source     catalog.Source
	recognizer ocr.Recognizer
	matrices   *matrixCache
}

// MatcherOption is a functional option for configuring a Matcher.
type MatcherOption func(*Matcher)

// WithOptions replaces the matcher's options.
func WithOptions(opts Options) MatcherOption {
	return func(m *Matcher) {
		m.opts = opts
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) MatcherOption {
	return func(m *Matcher) {
		m.progress = fn
	}
}

// WithConcurrency limits the number of fonts compared at the same time.
func WithConcurrency(n int) MatcherOption {
	return func(m *Matcher) {
		m.opts.Concurrency = n
	}
}

// WithCatalog sets the font catalog Recognize matches against.
func WithCatalog(src catalog.Source) MatcherOption {
	return func(m *Matcher) {
		m.source = src
	}
}

// WithRecognizer sets the OCR engine used by Recognize.
func WithRecognizer(r ocr.Recognizer) MatcherOption {
	return func(m *Matcher) {
		m.recognizer = r
	}
}

// NewMatcher creates a new Matcher with the given options.
// Without options it uses DefaultOptions and has neither catalog nor
// recognizer, which is enough for MatchFonts.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{
		opts:     DefaultOptions(),
		matrices: newMatrixCache(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.opts.Concurrency < 1 {
		m.opts.Concurrency = 1
	}
	return m
}

// Options returns the matcher's options.
func (m *Matcher) Options() Options {
	return m.opts
}

// CacheStats reports how often the shape matrix of a recognized glyph was
// reused and how often it had to be computed.
func (m *Matcher) CacheStats() (hits, misses int) {
	return m.matrices.stats()
}

// MatchFonts compares the recognized glyphs with every font and returns the
// ranked results (see Rank). Fonts are compared concurrently. The first
// failing comparison cancels all others and its error is returned; there are
// no partial results.
func (m *Matcher) MatchFonts(ctx context.Context, recognized GlyphMapping, fonts []FontEntry) ([]FontResult, error) {
	return m.run(ctx, recognized, len(fonts), func(ctx context.Context, i int) (FontEntry, error) {
		return fonts[i], nil
	})
}

// run drives the comparison of recognized against n fonts, the i-th of which
// is produced by load.
func (m *Matcher) run(ctx context.Context, recognized GlyphMapping, n int,
	load func(ctx context.Context, i int) (FontEntry, error)) ([]FontResult, error) {
	//
	m.matrices.retain(recognized)
	tracer().Infof("matching %d recognized symbols against %d fonts", len(recognized), n)

	results := make([]FontResult, n)
	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			font, err := load(gctx, i)
			if err != nil {
				return err
			}
			res, err := m.matchFont(gctx, recognized, font)
			if err != nil {
				tracer().Errorf("font %q: %v", font.Name, err)
				return err
			}
			results[i] = res

			mu.Lock()
			defer mu.Unlock()
			completed++
			if m.progress != nil {
				m.progress(font.Name, res.Symbols, float64(completed)/float64(n))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	Rank(results)
	return results, nil
}

// matchFont compares the symbols recognized and font have in common, running
// both metrics of every symbol concurrently.
func (m *Matcher) matchFont(ctx context.Context, recognized GlyphMapping, font FontEntry) (FontResult, error) {
	mine, theirs := Reconcile(recognized, font.Glyphs)
	keys := mine.Keys()
	analytic := make([]float64, len(keys))
	shape := make([]float64, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := AnalyticSimilarity(mine[key], theirs[key], m.opts.AnalyticThreshold, m.opts.SameSizeComparison)
			if err != nil {
				return fmt.Errorf("font %s, symbol %q: %w", font.Name, key, err)
			}
			analytic[i] = v
			return nil
		})
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := shapeSimilarity(mine[key], theirs[key], m.matrices)
			if err != nil {
				return fmt.Errorf("font %s, symbol %q: %w", font.Name, key, err)
			}
			shape[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FontResult{}, err
	}

	scores := make(map[string]SymbolScore, len(keys))
	for i, key := range keys {
		scores[key] = SymbolScore{Analytic: analytic[i], Shape: shape[i]}
	}
	res := newFontResult(font, scores)
	if res.Scored {
		tracer().Infof("font %q: similarity %.2f over %d symbols", res.Name, res.Similarity, len(scores))
	} else {
		tracer().Infof("%v", res.Warning)
	}
	return res, nil
}
