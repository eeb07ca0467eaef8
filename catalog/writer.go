package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Writer produces a catalog in the file system layout read by Storage.
// Fonts are written as they come in, the index is written by Flush and keeps
// the names already listed in an existing index.
type Writer struct {
	opts  Options
	index []string
}

// NewWriter creates a writer for the catalog at opts. An existing fonts index
// is loaded so that Flush extends it rather than replacing it.
func NewWriter(opts Options) (*Writer, error) {
	opts = NewStorage(opts).Options()
	if isRemote(opts.Index) || isRemote(opts.Directory) {
		return nil, fmt.Errorf("cannot write catalog to remote location %s", opts.Index)
	}
	w := &Writer{opts: opts}
	data, err := os.ReadFile(opts.Index)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	default:
		if w.index, err = ParseIndex(data); err != nil {
			return nil, fmt.Errorf("%s: %w", opts.Index, err)
		}
	}
	return w, nil
}

// WriteFont stores f under its name. Alpha values may be data URIs or plain
// base64; they are stored as plain base64.
func (w *Writer) WriteFont(f *Font) error {
	loc, err := NewStorage(w.opts).FontLocation(f.Name)
	if err != nil {
		return err
	}
	alpha := make(map[string]string, len(f.Alpha))
	for symbol, v := range f.Alpha {
		if i := strings.Index(v, ";base64,"); strings.HasPrefix(v, "data:") && i >= 0 {
			v = v[i+len(";base64,"):]
		}
		alpha[symbol] = v
	}
	meta := f.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	data, err := json.MarshalIndent(map[string]any{
		"meta":  meta,
		"alpha": alpha,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode font %q: %w", f.Name, err)
	}
	if err := os.MkdirAll(filepath.Dir(loc), 0o755); err != nil {
		return fmt.Errorf("failed to create font directory: %w", err)
	}
	if err := os.WriteFile(loc, data, 0o644); err != nil {
		return fmt.Errorf("failed to write font %q: %w", f.Name, err)
	}
	if !slices.Contains(w.index, f.Name) {
		w.index = append(w.index, f.Name)
	}
	tracer().Infof("wrote font %q with %d glyphs to %s", f.Name, len(alpha), loc)
	return nil
}

// Index returns the names the index will list.
func (w *Writer) Index() []string {
	return slices.Clone(w.index)
}

// Flush writes the fonts index.
func (w *Writer) Flush() error {
	index := w.index
	if index == nil {
		index = []string{}
	}
	data, err := json.MarshalIndent(map[string]any{"index": index}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode fonts index: %w", err)
	}
	if dir := filepath.Dir(w.opts.Index); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create index directory: %w", err)
		}
	}
	if err := os.WriteFile(w.opts.Index, data, 0o644); err != nil {
		return fmt.Errorf("failed to write fonts index: %w", err)
	}
	return nil
}
