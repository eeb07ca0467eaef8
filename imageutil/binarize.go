package imageutil

import "image/color"

// DefaultBinarizeThreshold is the luminance threshold used when binarizing a
// whole input image before recognition.
const DefaultBinarizeThreshold = 127

// Binarize returns a two-tone copy of img. Pixels whose luminance is at least
// threshold become white, all others black. Alpha is preserved, so a fully
// transparent pixel (which carries no color) ends up black.
func Binarize(img *RGBAImage, threshold uint8) *RGBAImage {
	out := NewRGBAImage(img.Width(), img.Height())
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.RGBAAt(x, y)
			v := uint8(0)
			if Luminance(c.R, c.G, c.B) >= threshold {
				v = 255
			}
			out.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: c.A})
		}
	}
	return out
}

// Reverse returns a copy of img with inverted color channels.
func Reverse(img *RGBAImage) *RGBAImage {
	out := img.Clone()
	for i := 0; i+3 < len(out.Pix); i += 4 {
		out.Pix[i] = 255 - out.Pix[i]
		out.Pix[i+1] = 255 - out.Pix[i+1]
		out.Pix[i+2] = 255 - out.Pix[i+2]
	}
	return out
}

// NeedsReverse reports whether a binarized image has more black than white
// pixels, i.e. it shows light text on a dark background and should be
// reversed before recognition and comparison.
func NeedsReverse(img *RGBAImage) bool {
	black, white := 0, 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0 {
			black++
		} else {
			white++
		}
	}
	return black > white
}

// Normalize binarizes img and reverses it if necessary, so the result is
// always dark ink on a light background.
func Normalize(img *RGBAImage, threshold uint8) *RGBAImage {
	bin := Binarize(img, threshold)
	if NeedsReverse(bin) {
		return Reverse(bin)
	}
	return bin
}
