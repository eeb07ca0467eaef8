package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Options locate a catalog. Index is the location of the fonts index, the data
// of font <name> lives at Directory/<name>/Data. Locations starting with
// http:// or https:// are fetched over HTTP, all others are read from the
// file system.
type Options struct {
	Index     string
	Directory string
	Data      string
	Timeout   time.Duration // per request, HTTP only
}

// DefaultOptions returns the default storage layout relative to the working
// directory.
func DefaultOptions() Options {
	return Options{
		Index:     "storage/index.json",
		Directory: "storage/fonts/",
		Data:      "data.json",
		Timeout:   2 * time.Second,
	}
}

// Storage fetches fonts from a catalog location. Fonts are fetched at most
// once and kept in memory afterwards. A Storage is safe for concurrent use.
type Storage struct {
	opts   Options
	client *http.Client

	mu         sync.Mutex
	fonts      map[string]*Font
	fontHits   int
	fontMisses int
}

// StorageOption is a functional option for configuring a Storage.
type StorageOption func(*Storage)

// WithHTTPClient sets the client used for HTTP locations.
func WithHTTPClient(client *http.Client) StorageOption {
	return func(s *Storage) {
		s.client = client
	}
}

// NewStorage creates a storage for the catalog described by opts. Empty
// options fall back to DefaultOptions.
func NewStorage(opts Options, options ...StorageOption) *Storage {
	def := DefaultOptions()
	if opts.Index == "" {
		opts.Index = def.Index
	}
	if opts.Directory == "" {
		opts.Directory = def.Directory
	}
	if opts.Data == "" {
		opts.Data = def.Data
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	s := &Storage{
		opts:   opts,
		client: http.DefaultClient,
		fonts:  make(map[string]*Font),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Options returns the storage's (defaulted) options.
func (s *Storage) Options() Options {
	return s.opts
}

// Index fetches the fonts index.
func (s *Storage) Index(ctx context.Context) ([]string, error) {
	data, err := s.fetch(ctx, s.opts.Index)
	if err != nil {
		return nil, err
	}
	index, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.opts.Index, err)
	}
	tracer().Debugf("fonts index %s lists %d fonts", s.opts.Index, len(index))
	return index, nil
}

// Font fetches the data of the named font. Callers must treat the returned
// font as read-only, it is shared by every caller asking for the same name.
func (s *Storage) Font(ctx context.Context, name string) (*Font, error) {
	s.mu.Lock()
	if f, ok := s.fonts[name]; ok {
		s.fontHits++
		s.mu.Unlock()
		tracer().Debugf("font %q served from memory", name)
		return f, nil
	}
	s.fontMisses++
	s.mu.Unlock()

	loc, err := s.FontLocation(name)
	if err != nil {
		return nil, err
	}
	data, err := s.fetch(ctx, loc)
	if err != nil {
		return nil, err
	}
	f, err := ParseFont(name, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}

	s.mu.Lock()
	s.fonts[name] = f
	s.mu.Unlock()
	return f, nil
}

// Stats returns the number of font requests served from memory and the number
// that went to the catalog location.
func (s *Storage) Stats() (hits, misses int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fontHits, s.fontMisses
}

// FontLocation returns where the data file of the named font lives.
func (s *Storage) FontLocation(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid font name %q", ErrFetch, name)
	}
	if isRemote(s.opts.Directory) {
		loc, err := url.JoinPath(s.opts.Directory, name, s.opts.Data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFetch, err)
		}
		return loc, nil
	}
	return filepath.Join(s.opts.Directory, name, s.opts.Data), nil
}

func isRemote(loc string) bool {
	return strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://")
}

func (s *Storage) fetch(ctx context.Context, loc string) ([]byte, error) {
	tracer().Debugf("fetching %s", loc)
	if isRemote(loc) {
		return s.fetchHTTP(ctx, loc)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(loc)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrFetch, loc)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return data, nil
}

func (s *Storage) fetchHTTP(ctx context.Context, loc string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open %s: %v", ErrFetch, loc, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s does not exist", ErrFetch, loc)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s: %s", ErrFetch, loc, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, loc, err)
	}
	return data, nil
}
