// Package imageutil provides the pure Go image capability used by the glyph
// matcher: decoding, cropping, resizing, binarization, polarity reversal and
// bit matrices for structural comparison.
//
// Every operation returns a new image. Images handed to a comparison are never
// modified in place, so the same glyph can be compared against many fonts
// concurrently.
package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to an opaque color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
// The wrapped image always has its origin at (0, 0).
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new, fully transparent RGBAImage with the specified
// dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to an RGBAImage anchored at the
// origin.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(rgba.RGBA, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// Empty reports whether the image has no pixels.
func (img *RGBAImage) Empty() bool {
	return img == nil || img.RGBA == nil || img.Bounds().Empty()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets an opaque RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.ToColor())
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}

// Crop copies the region spanned by (x0, y0) and (x1, y1) into a new image.
// The region is clipped to the image bounds; a region that lies completely
// outside the image yields an empty image.
func (img *RGBAImage) Crop(x0, y0, x1, y1 int) *RGBAImage {
	r := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	if r.Empty() {
		return NewRGBAImage(0, 0)
	}
	dst := NewRGBAImage(r.Dx(), r.Dy())
	draw.Draw(dst.RGBA, dst.Bounds(), img.RGBA, r.Min, draw.Src)
	return dst
}

// CropRect is Crop for an image.Rectangle.
func (img *RGBAImage) CropRect(r image.Rectangle) *RGBAImage {
	return img.Crop(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// InkBounds returns the smallest rectangle containing every opaque pixel whose
// luminance is below threshold, i.e. the dark "ink" of a glyph on a light
// background. An image without ink yields an empty rectangle.
func (img *RGBAImage) InkBounds(threshold uint8) image.Rectangle {
	var ink image.Rectangle
	found := false
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 || Luminance(c.R, c.G, c.B) >= threshold {
				continue
			}
			p := image.Rect(x, y, x+1, y+1)
			if !found {
				ink, found = p, true
				continue
			}
			ink = ink.Union(p)
		}
	}
	return ink
}
