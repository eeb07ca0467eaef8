package typefont

import (
	"errors"

	"github.com/wbrown/typefont/catalog"
	"github.com/wbrown/typefont/imageutil"
)

// Error kinds. Errors returned by this package wrap one of these and can be
// tested with errors.Is.
var (
	// ErrFetch: the fonts index or a font's data could not be retrieved.
	ErrFetch = catalog.ErrFetch

	// ErrParse: retrieved catalog data has the wrong shape.
	ErrParse = catalog.ErrParse

	// ErrDecode: a glyph could not be decoded into a raster.
	ErrDecode = imageutil.ErrDecode

	// ErrRecognitionTimeout: the OCR engine exceeded the recognition timeout.
	ErrRecognitionTimeout = errors.New("recognition timed out")

	// ErrEmptyDomain is never returned as an error. It is attached as a
	// warning to results of fonts sharing no symbol with the recognized text.
	ErrEmptyDomain = errors.New("no symbols in common")
)

var (
	errNoCatalog    = errors.New("typefont: matcher has no font catalog")
	errNoRecognizer = errors.New("typefont: matcher has no recognizer")
)
