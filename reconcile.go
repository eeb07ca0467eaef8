package typefont

// Reconcile restricts a and b to the symbols both of them contain. The inputs
// are left untouched; the returned mappings share their glyphs.
func Reconcile(a, b GlyphMapping) (GlyphMapping, GlyphMapping) {
	ra := make(GlyphMapping)
	rb := make(GlyphMapping)
	for key, g := range a {
		if other, ok := b[key]; ok {
			ra[key] = g
			rb[key] = other
		}
	}
	return ra, rb
}
