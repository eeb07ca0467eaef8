/*
Package catalog stores and retrieves reference fonts for the font matcher.

A catalog consists of a fonts index and one data file per font:

	storage/index.json            {"index": ["font-name", ...]}
	storage/fonts/<name>/data.json {"meta": {...}, "alpha": {"a": "<base64 png>", ...}}

The "meta" object is arbitrary and is handed to the caller unchanged. The
"alpha" values are base64 encoded PNG images of single glyphs; Storage turns
them into data URIs before handing them out.

Catalogs may live in a local directory or behind an HTTP(S) base URL. They are
produced by rendering TrueType fonts, see RenderFont and Writer. GoFonts is a
built-in catalog of the Go font family that needs no storage at all.
*/
package catalog

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'typefont.catalog'.
func tracer() tracing.Trace {
	return tracing.Select("typefont.catalog")
}
