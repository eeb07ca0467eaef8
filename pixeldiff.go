package typefont

import (
	"github.com/wbrown/typefont/imageutil"
)

// maxYIQDelta is the largest possible value of colorDelta.
const maxYIQDelta = 35215

// countDiffPixels counts the pixels of two equally sized images whose
// perceptual color difference exceeds threshold (in [0,1]). A differing pixel
// that looks like anti-aliasing in either image is not counted.
//
// Colors are compared in YIQ space after blending against white. The
// anti-aliasing test follows "Anti-aliased Pixel and Intensity Slope Detector"
// (V. Vysniauskas, 2009).
func countDiffPixels(img1, img2 *imageutil.RGBAImage, threshold float64) int {
	width, height := img1.Width(), img1.Height()
	maxDelta := maxYIQDelta * threshold * threshold
	diff := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			delta := colorDelta(img1, img2, x, y, x, y, false)
			if delta <= maxDelta {
				continue
			}
			if antialiased(img1, x, y, img2) || antialiased(img2, x, y, img1) {
				continue
			}
			diff++
		}
	}
	return diff
}

// antialiased reports whether the pixel at (x1, y1) of img is likely part of
// an anti-aliased edge: it has both darker and brighter neighbors, at most two
// neighbors of equal brightness, and its darkest or brightest neighbor is a
// solid area in both images.
func antialiased(img *imageutil.RGBAImage, x1, y1 int, img2 *imageutil.RGBAImage) bool {
	width, height := img.Width(), img.Height()
	x0, y0 := max(x1-1, 0), max(y1-1, 0)
	x2, y2 := min(x1+1, width-1), min(y1+1, height-1)
	zeroes, positives, negatives := 0, 0, 0
	var minDelta, maxDelta float64
	minX, minY, maxX, maxY := 0, 0, 0, 0

	for x := x0; x <= x2; x++ {
		for y := y0; y <= y2; y++ {
			if x == x1 && y == y1 {
				continue
			}
			delta := colorDelta(img, img, x1, y1, x, y, true)
			switch {
			case delta == 0:
				zeroes++
			case delta < 0:
				negatives++
			default:
				positives++
			}
			if zeroes > 2 {
				return false
			}
			if delta < minDelta {
				minDelta, minX, minY = delta, x, y
			}
			if delta > maxDelta {
				maxDelta, maxX, maxY = delta, x, y
			}
		}
	}
	if negatives == 0 || positives == 0 {
		return false
	}
	return (hasManySiblings(img, minX, minY) && hasManySiblings(img2, minX, minY)) ||
		(hasManySiblings(img, maxX, maxY) && hasManySiblings(img2, maxX, maxY))
}

// hasManySiblings reports whether more than two neighbors of (x1, y1) have
// exactly its brightness.
func hasManySiblings(img *imageutil.RGBAImage, x1, y1 int) bool {
	width, height := img.Width(), img.Height()
	x0, y0 := max(x1-1, 0), max(y1-1, 0)
	x2, y2 := min(x1+1, width-1), min(y1+1, height-1)
	zeroes := 0
	for x := x0; x <= x2; x++ {
		for y := y0; y <= y2; y++ {
			if x == x1 && y == y1 {
				continue
			}
			if colorDelta(img, img, x1, y1, x, y, true) == 0 {
				zeroes++
			}
			if zeroes > 2 {
				return true
			}
		}
	}
	return false
}

// colorDelta returns the squared YIQ distance between pixel (x1, y1) of img1
// and pixel (x2, y2) of img2, or only the signed brightness difference if
// yOnly is set.
func colorDelta(img1, img2 *imageutil.RGBAImage, x1, y1, x2, y2 int, yOnly bool) float64 {
	r1, g1, b1 := blendWhite(img1, x1, y1)
	r2, g2, b2 := blendWhite(img2, x2, y2)

	y := rgb2y(r1, g1, b1) - rgb2y(r2, g2, b2)
	if yOnly {
		return y
	}
	i := rgb2i(r1, g1, b1) - rgb2i(r2, g2, b2)
	q := rgb2q(r1, g1, b1) - rgb2q(r2, g2, b2)
	return 0.5053*y*y + 0.299*i*i + 0.1957*q*q
}

// blendWhite composes a pixel over a white background. image.RGBA stores
// alpha-premultiplied channels, so blending c·a over white is 255 + c·a − 255·a.
func blendWhite(img *imageutil.RGBAImage, x, y int) (r, g, b float64) {
	off := img.PixOffset(x, y)
	p := img.Pix[off : off+4 : off+4]
	a := float64(p[3]) / 255
	return 255 + float64(p[0]) - 255*a,
		255 + float64(p[1]) - 255*a,
		255 + float64(p[2]) - 255*a
}

func rgb2y(r, g, b float64) float64 { return r*0.29889531 + g*0.58662247 + b*0.11448223 }
func rgb2i(r, g, b float64) float64 { return r*0.59597799 - g*0.27417610 - b*0.32180189 }
func rgb2q(r, g, b float64) float64 { return r*0.21147017 - g*0.52261711 + b*0.31114694 }
