package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/wbrown/typefont"
	"github.com/wbrown/typefont/catalog"
)

// tracer traces with key 'typefont.cli'
func tracer() tracing.Trace {
	return tracing.Select("typefont.cli")
}

// flagKeys maps command line flags onto configuration keys. Flags given on
// the command line override values from the configuration file.
var flagKeys = map[string]string{
	"confidence":  typefont.ConfMinSymbolConfidence,
	"threshold":   typefont.ConfAnalyticThreshold,
	"samesize":    typefont.ConfSameSize,
	"timeout":     typefont.ConfRecognitionTimeout,
	"concurrency": typefont.ConfConcurrency,
	"lang":        typefont.ConfLanguage,
	"index":       typefont.ConfFontsIndex,
	"fonts":       typefont.ConfFontsDirectory,
	"data":        typefont.ConfFontsData,
	"fetch":       typefont.ConfFetchTimeout,
}

func main() {
	initDisplay()

	defaults := typefont.DefaultOptions()
	inputFile := flag.String("input", "",
		"Path to the image showing the text to identify (required)")
	flag.Float64("confidence", defaults.MinSymbolConfidence,
		"Ignore recognized symbols below this OCR confidence")
	flag.Float64("threshold", defaults.AnalyticThreshold,
		"Pixel color distance threshold of the analytic comparison [0,1]")
	flag.Bool("samesize", defaults.SameSizeComparison,
		"Scale glyphs to 64x64 before the analytic comparison")
	flag.Duration("timeout", defaults.RecognitionTimeout,
		"Upper bound for text recognition")
	flag.Int("concurrency", defaults.Concurrency,
		"Number of fonts compared at the same time")
	flag.String("lang", defaults.OCR.Language,
		"Tesseract language")
	flag.String("index", defaults.Catalog.Index,
		"Location of the fonts index (file or http URL)")
	flag.String("fonts", defaults.Catalog.Directory,
		"Directory holding the font folders (file or http URL)")
	flag.String("data", defaults.Catalog.Data,
		"Name of the glyph file within a font folder")
	flag.Duration("fetch", defaults.Catalog.Timeout,
		"Timeout for a single catalog request")
	builtin := flag.Bool("builtin", false,
		"Match against the embedded Go fonts instead of a catalog")
	top := flag.Int("top", 10,
		"Number of fonts to show, 0 for all")
	asJSON := flag.Bool("json", false,
		"Print the ranked fonts as JSON")
	tlevel := flag.String("trace", "Error",
		"Trace level [Debug|Info|Error]")
	flag.Parse()

	if *inputFile == "" && flag.NArg() > 0 {
		*inputFile = flag.Arg(0)
	}
	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	conf := koanfadapter.New(nil, "typefont", []string{".nt"})
	conf.InitDefaults()
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			conf.Set(key, f.Value.String())
		}
	})
	if err := initTracing(conf, *tlevel); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	opts, err := typefont.OptionsFromConfig(conf)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	var source catalog.Source
	if *builtin {
		source = catalog.NewGoFonts(catalog.DefaultRenderOptions())
	} else {
		source = catalog.NewStorage(opts.Catalog)
	}

	rec := newTesseract()
	defer rec.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interactive := !*asJSON && term.IsTerminal(int(os.Stdout.Fd()))
	var bar *progress
	if interactive {
		bar = newProgress()
		defer bar.stop()
	}
	m := typefont.NewMatcher(
		typefont.WithOptions(opts),
		typefont.WithCatalog(source),
		typefont.WithRecognizer(rec),
		typefont.WithProgress(bar.update),
	)

	begin := time.Now()
	results, err := m.RecognizeFile(ctx, *inputFile)
	bar.stop()
	if err != nil {
		reportError(err)
		os.Exit(3)
	}
	tracer().Infof("matched %d fonts in %v", len(results), time.Since(begin))
	if hits, misses := m.CacheStats(); hits+misses > 0 {
		tracer().Debugf("glyph matrix cache: %d hits, %d misses", hits, misses)
	}

	if *top > 0 && len(results) > *top {
		results = results[:*top]
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			pterm.Error.Println(err)
			os.Exit(4)
		}
		return
	}
	if err := printResults(results); err != nil {
		pterm.Error.Println(err)
		os.Exit(4)
	}
}

func initTracing(conf *koanfadapter.KConf, level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	l := tracing.TraceLevelFromString(level)
	for _, name := range []string{"typefont", "typefont.catalog", "typefont.cli"} {
		tracing.Select(name).SetTraceLevel(l)
	}
	return nil
}

func reportError(err error) {
	switch {
	case errors.Is(err, typefont.ErrRecognitionTimeout):
		pterm.Error.Println("text recognition took too long, try a smaller image or a longer -timeout")
	case errors.Is(err, typefont.ErrFetch):
		pterm.Error.Printfln("cannot read the fonts catalog: %v", err)
	case errors.Is(err, context.Canceled):
		pterm.Warning.Println("interrupted")
	default:
		pterm.Error.Println(err)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func printResults(results []typefont.FontResult) error {
	if len(results) == 0 {
		pterm.Warning.Println("no fonts in catalog")
		return nil
	}
	data := [][]string{{"#", "Font", "Similarity", "Symbols", "Author"}}
	for i, r := range results {
		similarity := fmt.Sprintf("%6.2f%%", r.Similarity)
		if !r.Scored {
			similarity = "-"
		}
		author, _ := r.Meta["author"].(string)
		data = append(data, []string{
			fmt.Sprint(i + 1),
			r.Name,
			similarity,
			strings.Join(symbolKeys(r), " "),
			author,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	if best := results[0]; best.Scored {
		pterm.Success.Printfln("best match: %s (%.2f%%)", best.Name, best.Similarity)
	} else {
		pterm.Warning.Println("none of the recognized symbols occurs in any font")
	}
	return nil
}
