package typefont

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/schuko"

	"github.com/wbrown/typefont/catalog"
	"github.com/wbrown/typefont/ocr"
)

// Options holds the tunables of a Matcher.
type Options struct {
	// Recognized symbols with a confidence below this value are ignored.
	MinSymbolConfidence float64

	// Per pixel color distance threshold of the analytic comparison, in
	// [0,1]. Smaller values make the comparison more sensitive.
	AnalyticThreshold float64

	// Scale both glyphs to 64×64 before the analytic comparison.
	SameSizeComparison bool

	// Upper bound for a single OCR pass.
	RecognitionTimeout time.Duration

	// Maximum number of fonts compared at the same time.
	Concurrency int

	OCR     ocr.Options
	Catalog catalog.Options
}

// DefaultOptions returns the default matcher options.
func DefaultOptions() Options {
	return Options{
		MinSymbolConfidence: 15,
		AnalyticThreshold:   0.5,
		SameSizeComparison:  false,
		RecognitionTimeout:  60 * time.Second,
		Concurrency:         runtime.GOMAXPROCS(0),
		OCR:                 ocr.DefaultOptions(),
		Catalog:             catalog.DefaultOptions(),
	}
}

// Configuration keys read by OptionsFromConfig.
const (
	ConfMinSymbolConfidence = "typefont.min-symbol-confidence"
	ConfAnalyticThreshold   = "typefont.analytic-threshold"
	ConfSameSize            = "typefont.same-size"
	ConfRecognitionTimeout  = "typefont.recognition-timeout"
	ConfConcurrency         = "typefont.concurrency"
	ConfLanguage            = "typefont.language"
	ConfFontsIndex          = "typefont.fonts-index"
	ConfFontsDirectory      = "typefont.fonts-directory"
	ConfFontsData           = "typefont.fonts-data"
	ConfFetchTimeout        = "typefont.fetch-timeout"
)

// OptionsFromConfig overlays the configured values onto DefaultOptions.
// Durations are given either as a Go duration ("90s", "1m30s") or as a plain
// number of seconds.
func OptionsFromConfig(conf schuko.Configuration) (Options, error) {
	opts := DefaultOptions()
	var err error
	if conf.IsSet(ConfMinSymbolConfidence) {
		if opts.MinSymbolConfidence, err = confFloat(conf, ConfMinSymbolConfidence); err != nil {
			return opts, err
		}
	}
	if conf.IsSet(ConfAnalyticThreshold) {
		if opts.AnalyticThreshold, err = confFloat(conf, ConfAnalyticThreshold); err != nil {
			return opts, err
		}
	}
	if conf.IsSet(ConfSameSize) {
		opts.SameSizeComparison = conf.GetBool(ConfSameSize)
	}
	if conf.IsSet(ConfRecognitionTimeout) {
		if opts.RecognitionTimeout, err = confDuration(conf, ConfRecognitionTimeout); err != nil {
			return opts, err
		}
	}
	if conf.IsSet(ConfConcurrency) {
		if n := conf.GetInt(ConfConcurrency); n > 0 {
			opts.Concurrency = n
		}
	}
	if conf.IsSet(ConfLanguage) {
		opts.OCR.Language = conf.GetString(ConfLanguage)
	}
	if conf.IsSet(ConfFontsIndex) {
		opts.Catalog.Index = conf.GetString(ConfFontsIndex)
	}
	if conf.IsSet(ConfFontsDirectory) {
		opts.Catalog.Directory = conf.GetString(ConfFontsDirectory)
	}
	if conf.IsSet(ConfFontsData) {
		opts.Catalog.Data = conf.GetString(ConfFontsData)
	}
	if conf.IsSet(ConfFetchTimeout) {
		if opts.Catalog.Timeout, err = confDuration(conf, ConfFetchTimeout); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func confFloat(conf schuko.Configuration, key string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(conf.GetString(key)), 64)
	if err != nil {
		return 0, fmt.Errorf("configuration %s: %w", key, err)
	}
	return v, nil
}

func confDuration(conf schuko.Configuration, key string) (time.Duration, error) {
	s := strings.TrimSpace(conf.GetString(key))
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("configuration %s: %w", key, err)
	}
	return d, nil
}
