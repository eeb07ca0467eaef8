package typefont

import (
	"cmp"
	"encoding/json"
	"maps"
	"slices"

	"github.com/wbrown/typefont/catalog"
)

// FontEntry is a catalog font as the matcher sees it.
type FontEntry struct {
	Name   string
	Meta   map[string]any
	Glyphs GlyphMapping
}

// FontEntryFromCatalog converts a catalog font. The catalog's meta map is
// shared, not copied; the matcher never writes to it.
func FontEntryFromCatalog(f *catalog.Font) FontEntry {
	return FontEntry{
		Name:   f.Name,
		Meta:   f.Meta,
		Glyphs: GlyphMappingFromURIs(f.Alpha),
	}
}

// SymbolScore holds both similarity metrics of one symbol, each in [0,100].
type SymbolScore struct {
	Analytic float64 `json:"analytic"`
	Shape    float64 `json:"shape"`
}

// Average is the symbol's score, the mean of both metrics.
func (s SymbolScore) Average() float64 {
	return (s.Analytic + s.Shape) / 2
}

// FontResult is the outcome of comparing the recognized glyphs with one font.
type FontResult struct {
	// Name is meta["name"] if the font's metadata carries one, the catalog
	// identifier otherwise.
	Name string

	// Meta is a copy of the font's metadata with "name" and "similarity"
	// filled in.
	Meta map[string]any

	// Similarity is the mean symbol score, in [0,100]. It is 0 for a font
	// that could not be scored.
	Similarity float64

	// Scored is false if the font shares no symbol with the recognized text.
	Scored bool

	// Warning is set (wrapping ErrEmptyDomain) for fonts that were not
	// scored.
	Warning error

	Symbols map[string]SymbolScore
}

// newFontResult builds the result for font from its symbol scores. The mean of
// an empty score set is undefined; such a font is reported as unscored.
func newFontResult(font FontEntry, scores map[string]SymbolScore) FontResult {
	res := FontResult{
		Name:    font.Name,
		Meta:    make(map[string]any, len(font.Meta)+2),
		Symbols: scores,
	}
	maps.Copy(res.Meta, font.Meta)
	if name, ok := font.Meta["name"].(string); ok && name != "" {
		res.Name = name
	}
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s.Average()
		}
		res.Similarity = sum / float64(len(scores))
		res.Scored = true
	} else {
		res.Warning = &emptyDomainWarning{font: font.Name}
	}
	res.Meta["name"] = res.Name
	res.Meta["similarity"] = res.Similarity
	return res
}

type emptyDomainWarning struct {
	font string
}

func (w *emptyDomainWarning) Error() string {
	return "font " + w.font + ": " + ErrEmptyDomain.Error()
}

func (w *emptyDomainWarning) Unwrap() error {
	return ErrEmptyDomain
}

// MarshalJSON encodes the result as its metadata object, extended by a
// "scored" flag.
func (r FontResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Meta)+1)
	maps.Copy(out, r.Meta)
	out["name"] = r.Name
	out["similarity"] = r.Similarity
	out["scored"] = r.Scored
	return json.Marshal(out)
}

// Rank sorts results best first: scored fonts before unscored ones, then by
// descending similarity. Equal similarities are ordered by name, so the
// ranking does not depend on the order in which comparisons completed.
func Rank(results []FontResult) {
	slices.SortStableFunc(results, func(a, b FontResult) int {
		if a.Scored != b.Scored {
			if a.Scored {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
