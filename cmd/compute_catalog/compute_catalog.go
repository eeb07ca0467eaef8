package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"

	"github.com/wbrown/typefont/catalog"
)

// catalogName derives the catalog identifier of a font file:
// "Fira Sans Bold.ttf" becomes "fira-sans-bold".
func catalogName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.ToLower(strings.TrimSpace(base))
	return strings.Join(strings.FieldsFunc(base, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '/' || r == '\\'
	}), "-")
}

// fontFiles expands the arguments into TrueType files. Directories are
// searched recursively.
func fontFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".ttf") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// computeFont renders all catalog symbols of the font file at path.
func computeFont(path string, opts catalog.RenderOptions) (*catalog.Font, error) {
	ttf, err := catalog.LoadTTF(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	f, err := catalog.NewFont(catalogName(path), ttf, opts)
	if err != nil {
		return nil, err
	}
	if len(f.Alpha) == 0 {
		return nil, fmt.Errorf("font %s (%s) has none of the symbols %q",
			path, ttf.Name(truetype.NameIDFontFullName), opts.Symbols)
	}
	return f, nil
}

func main() {
	defaults := catalog.DefaultOptions()
	render := catalog.DefaultRenderOptions()
	index := flag.String("index", defaults.Index,
		"Path of the fonts index to create or extend")
	directory := flag.String("fonts", defaults.Directory,
		"Directory receiving the font folders")
	data := flag.String("data", defaults.Data,
		"Name of the glyph file within a font folder")
	size := flag.Float64("size", render.Size,
		"Font size in points used for rendering glyphs")
	symbols := flag.String("symbols", render.Symbols,
		"Symbols to render")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: compute_catalog [flags] font.ttf|directory ...")
		flag.PrintDefaults()
		os.Exit(1)
	}
	render.Size = *size
	render.Symbols = *symbols

	files, err := fontFiles(flag.Args())
	if err != nil {
		log.Fatalf("Failed to collect fonts: %v", err)
	}
	w, err := catalog.NewWriter(catalog.Options{
		Index:     *index,
		Directory: *directory,
		Data:      *data,
	})
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}

	failed := 0
	for _, path := range files {
		f, err := computeFont(path, render)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			failed++
			continue
		}
		if err := w.WriteFont(f); err != nil {
			log.Fatalf("Failed to save font: %v", err)
		}
		log.Printf("Computed %d glyphs for %s", len(f.Alpha), f.Name)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("Failed to write index: %v", err)
	}
	log.Printf("Catalog %s lists %d fonts (%d files skipped)", *index, len(w.Index()), failed)
}
