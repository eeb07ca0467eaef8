package typefont

import (
	"sync"

	"github.com/wbrown/typefont/imageutil"
)

const (
	// shapePrecision is the edge length of the grid glyph shapes are
	// compared on.
	shapePrecision = 48

	// shapeThreshold is the luminance at or above which a grid cell counts
	// as background.
	shapeThreshold = 200
)

// ShapeSimilarity compares the shapes of two glyphs and returns the percentage
// of agreeing cells, in [0,100]. Both glyphs are scaled to a 48×48 grid and
// binarized; the result is 100 minus the normalized Hamming distance of the
// two bit matrices.
func ShapeSimilarity(first, second *Glyph) (float64, error) {
	return shapeSimilarity(first, second, nil)
}

// shapeSimilarity takes the matrix of first from cache, the one of second is
// always computed.
func shapeSimilarity(first, second *Glyph, cache *matrixCache) (float64, error) {
	m1, err := cache.matrix(first)
	if err != nil {
		return 0, err
	}
	m2, err := shapeMatrix(second)
	if err != nil {
		return 0, err
	}
	dist, err := imageutil.Hamming(m1, m2)
	if err != nil {
		return 0, err
	}
	return clampPercent(100 - float64(dist)/float64(m1.Cells())*100), nil
}

// shapeMatrix scales g onto the comparison grid and binarizes it.
func shapeMatrix(g *Glyph) (*imageutil.BitMatrix, error) {
	img, err := g.Image()
	if err != nil {
		return nil, err
	}
	grid := imageutil.Resize(img, shapePrecision, shapePrecision, imageutil.InterpolationLinear)
	return imageutil.BitMatrixFromBinarized(imageutil.Binarize(grid, shapeThreshold)), nil
}

// matrixCache keeps the shape matrices of recognized glyphs, which are compared
// against every font of a catalog. With the cache each of them is scaled and
// binarized once per match. A nil cache computes every matrix afresh.
type matrixCache struct {
	mu      sync.Mutex
	entries map[*Glyph]*imageutil.BitMatrix
	hits    int
	misses  int
}

func newMatrixCache() *matrixCache {
	return &matrixCache{entries: make(map[*Glyph]*imageutil.BitMatrix)}
}

func (c *matrixCache) matrix(g *Glyph) (*imageutil.BitMatrix, error) {
	if c == nil {
		return shapeMatrix(g)
	}
	c.mu.Lock()
	if m, ok := c.entries[g]; ok {
		c.hits++
		c.mu.Unlock()
		return m, nil
	}
	c.misses++
	c.mu.Unlock()

	m, err := shapeMatrix(g)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[g] = m
	c.mu.Unlock()
	return m, nil
}

// retain drops the matrices of every glyph not in glyphs.
func (c *matrixCache) retain(glyphs GlyphMapping) {
	live := make(map[*Glyph]bool, len(glyphs))
	for _, g := range glyphs {
		live[g] = true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for g := range c.entries {
		if !live[g] {
			delete(c.entries, g)
		}
	}
}

func (c *matrixCache) stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
