package typefont

import (
	"github.com/wbrown/typefont/imageutil"
)

// DefaultAnalyticThreshold is the color distance threshold used by
// AnalyticSimilarity when called with a negative threshold.
const DefaultAnalyticThreshold = 0.1

// analyticSize is the edge length glyphs are scaled to for a same-size
// analytic comparison.
const analyticSize = 64

// AnalyticSimilarity compares two glyphs pixel by pixel and returns the
// percentage of pixels that match, in [0,100]. Two pixels match if their
// perceptual color distance is at most threshold (in [0,1]) or if the
// difference is caused by anti-aliasing.
//
// With sameSize set both glyphs are scaled to 64×64 first. Otherwise glyphs of
// different sizes are compared after scaling the larger one down to the size
// of the smaller one.
func AnalyticSimilarity(first, second *Glyph, threshold float64, sameSize bool) (float64, error) {
	img1, err := first.Image()
	if err != nil {
		return 0, err
	}
	img2, err := second.Image()
	if err != nil {
		return 0, err
	}
	if threshold < 0 {
		threshold = DefaultAnalyticThreshold
	}
	if sameSize {
		img1 = imageutil.Resize(img1, analyticSize, analyticSize, imageutil.InterpolationLinear)
		img2 = imageutil.Resize(img2, analyticSize, analyticSize, imageutil.InterpolationLinear)
	}
	img1, img2 = matchSizes(img1, img2)

	diff := countDiffPixels(img1, img2, threshold)
	ratio := float64(diff) / float64(img1.Width()*img1.Height())
	return clampPercent(100 - ratio*100), nil
}

// matchSizes scales the image with more pixels to the dimensions of the other.
// On a tie, the second image is scaled.
func matchSizes(img1, img2 *imageutil.RGBAImage) (*imageutil.RGBAImage, *imageutil.RGBAImage) {
	w1, h1 := img1.Width(), img1.Height()
	w2, h2 := img2.Width(), img2.Height()
	if w1 == w2 && h1 == h2 {
		return img1, img2
	}
	if w1*h1 > w2*h2 {
		return imageutil.Resize(img1, w2, h2, imageutil.InterpolationLinear), img2
	}
	return img1, imageutil.Resize(img2, w1, h1, imageutil.InterpolationLinear)
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
