package imageutil

import (
	"image"
	"image/color"
)

// Luminance computes the BT.601 luminance of an RGB triple:
// Y = 0.299*R + 0.587*G + 0.114*B, rounded to the nearest integer.
// This matches OpenCV's COLOR_BGR2GRAY.
func Luminance(r, g, b uint8) uint8 {
	// Integer math, scaled by 1000
	lum := (299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}

// ToGrayscale converts an RGBA image to grayscale using Luminance.
func ToGrayscale(img *RGBAImage) *image.Gray {
	width, height := img.Width(), img.Height()
	gray := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			gray.SetGray(x, y, color.Gray{Y: Luminance(c.R, c.G, c.B)})
		}
	}

	return gray
}

// GrayscaleToRGBA converts a grayscale image back to an opaque RGBA image.
func GrayscaleToRGBA(gray *image.Gray) *RGBAImage {
	bounds := gray.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			v := gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			rgba.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}

	return rgba
}
