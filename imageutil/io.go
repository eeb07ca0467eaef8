package imageutil

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// PNGDataURIPrefix is prepended to base64 encoded PNG data to form a data URI.
const PNGDataURIPrefix = "data:image/png;base64,"

// ErrDecode is returned when image data cannot be turned into a raster.
var ErrDecode = errors.New("image decode failed")

// Decode reads an image in any registered format from r.
func Decode(r io.Reader) (*RGBAImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return RGBAImageFromImage(img), nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*RGBAImage, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeDataURI decodes a base64 data URI such as
// "data:image/png;base64,iVBOR...". Any registered image format is accepted.
func DecodeDataURI(uri string) (*RGBAImage, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("%w: not a data URI", ErrDecode)
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 || !strings.HasSuffix(uri[:comma], ";base64") {
		return nil, fmt.Errorf("%w: data URI is not base64 encoded", ErrDecode)
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return DecodeBytes(data)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64PNG encodes img as base64 PNG without a data URI prefix, the
// form glyphs take in catalog font files.
func EncodeBase64PNG(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeDataURI encodes img as a PNG data URI.
func EncodeDataURI(img image.Image) (string, error) {
	b64, err := EncodeBase64PNG(img)
	if err != nil {
		return "", err
	}
	return PNGDataURIPrefix + b64, nil
}

// LoadImage loads an image from the specified path.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP formats.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return png.Encode(f, img)
}
