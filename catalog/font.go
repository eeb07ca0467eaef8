package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/wbrown/typefont/imageutil"
)

var (
	// ErrFetch is returned when a fonts index or font data file cannot be
	// retrieved, including when it does not exist.
	ErrFetch = errors.New("catalog fetch failed")

	// ErrParse is returned when retrieved data does not have the shape of a
	// fonts index or a font data file.
	ErrParse = errors.New("catalog parse failed")
)

// Font is one catalog entry. Alpha maps symbol text to a glyph image data URI.
type Font struct {
	Name  string
	Meta  map[string]any
	Alpha map[string]string
}

// Symbols returns the symbols the font carries glyphs for, sorted.
func (f *Font) Symbols() []string {
	symbols := make([]string, 0, len(f.Alpha))
	for s := range f.Alpha {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Source is anything that can list fonts and hand out their data.
// Storage and GoFonts are sources.
type Source interface {
	Index(ctx context.Context) ([]string, error)
	Font(ctx context.Context, name string) (*Font, error)
}

// ParseIndex decodes a fonts index file. The "index" member must be present
// and must be an array of strings.
func ParseIndex(data []byte) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: fonts index: %v", ErrParse, err)
	}
	raw, ok := doc["index"]
	if !ok {
		return nil, fmt.Errorf("%w: fonts index has no index array", ErrParse)
	}
	var index []string
	if err := json.Unmarshal(raw, &index); err != nil || index == nil {
		return nil, fmt.Errorf("%w: fonts index member is not an array of names", ErrParse)
	}
	return index, nil
}

// ParseFont decodes a font data file. Both "meta" and "alpha" must be JSON
// objects; alpha values must be strings holding base64 encoded PNG data. The
// returned font carries data URIs in Alpha.
func ParseFont(name string, data []byte) (*Font, error) {
	var doc struct {
		Meta  map[string]any    `json:"meta"`
		Alpha map[string]string `json:"alpha"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: font %q: %v", ErrParse, name, err)
	}
	if doc.Meta == nil {
		return nil, fmt.Errorf("%w: font %q has no meta object", ErrParse, name)
	}
	if doc.Alpha == nil {
		return nil, fmt.Errorf("%w: font %q has no alpha object", ErrParse, name)
	}
	font := &Font{
		Name:  name,
		Meta:  doc.Meta,
		Alpha: make(map[string]string, len(doc.Alpha)),
	}
	for symbol, b64 := range doc.Alpha {
		font.Alpha[symbol] = imageutil.PNGDataURIPrefix + b64
	}
	return font, nil
}
