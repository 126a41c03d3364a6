package imagelib

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/AlanRace/go-imagelib/image"
)

// ErrUnknownFormat is returned when no backend is registered for an
// extension.
var ErrUnknownFormat = errors.New("imagelib: unknown format")

// Registry maps file extensions to format backends.
type Registry struct {
	mu      sync.RWMutex
	readers map[string]Reader
	writers map[string]Writer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[string]Reader),
		writers: make(map[string]Writer),
	}
}

var defaultRegistry = NewRegistry()

// Register adds a backend to the default registry. Backends call it from
// init, so importing a backend package enables its format.
func Register(f any) {
	defaultRegistry.Register(f)
}

// LookupReader returns the reader registered for ext in the default
// registry.
func LookupReader(ext string) (Reader, error) {
	return defaultRegistry.LookupReader(ext)
}

// LookupWriter returns the writer registered for ext in the default
// registry.
func LookupWriter(ext string) (Writer, error) {
	return defaultRegistry.LookupWriter(ext)
}

// Formats lists the extensions known to the default registry.
func Formats() []string {
	return defaultRegistry.Formats()
}

// Decode parses an image of the format named by ext from r.
func Decode(ext string, r io.Reader) (*image.Image, error) {
	return defaultRegistry.Decode(ext, r)
}

// DecodeSize reports the dimensions of an image without decoding its pixels.
func DecodeSize(ext string, r io.Reader) (width, height int, err error) {
	return defaultRegistry.DecodeSize(ext, r)
}

// DecodeFrames calls fn with every image of a stream in order.
func DecodeFrames(ext string, r io.Reader, fn func(*StreamResult) error) error {
	return defaultRegistry.DecodeFrames(ext, r, fn)
}

// Encode writes img to w in the format named by ext.
func Encode(ext string, w io.Writer, img *image.Image) error {
	return defaultRegistry.Encode(ext, w, img)
}

// normalize folds case and strips a leading dot, so ".JPG" and "jpg" name
// the same format.
func normalize(ext string) string {
	// A Caser holds state and is not safe for concurrent use.
	return cases.Fold().String(strings.TrimPrefix(ext, "."))
}

// Register adds f under each of its extensions. f must implement Reader,
// Writer or both; a later registration for an extension replaces an earlier
// one.
func (r *Registry) Register(f any) {
	rd, isReader := f.(Reader)
	wr, isWriter := f.(Writer)
	if !isReader && !isWriter {
		panic(fmt.Sprintf("imagelib: Register of %T, which is neither a Reader nor a Writer", f))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if isReader {
		for _, ext := range rd.Extensions() {
			r.readers[normalize(ext)] = rd
		}
	}
	if isWriter {
		for _, ext := range wr.Extensions() {
			r.writers[normalize(ext)] = wr
		}
	}
}

func (r *Registry) LookupReader(ext string) (Reader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rd, ok := r.readers[normalize(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: no reader for %q", ErrUnknownFormat, ext)
	}
	return rd, nil
}

func (r *Registry) LookupWriter(ext string) (Writer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wr, ok := r.writers[normalize(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: no writer for %q", ErrUnknownFormat, ext)
	}
	return wr, nil
}

// Formats returns the sorted, deduplicated extensions that have a reader or
// a writer.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	exts := make([]string, 0, len(r.readers)+len(r.writers))
	for ext := range r.readers {
		seen[ext] = true
		exts = append(exts, ext)
	}
	for ext := range r.writers {
		if !seen[ext] {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

func (r *Registry) Decode(ext string, src io.Reader) (*image.Image, error) {
	rd, err := r.LookupReader(ext)
	if err != nil {
		return nil, err
	}
	return rd.Parse(NewChunkReader(src))
}

func (r *Registry) DecodeSize(ext string, src io.Reader) (width, height int, err error) {
	rd, err := r.LookupReader(ext)
	if err != nil {
		return 0, 0, err
	}
	return rd.Size(NewChunkReader(src))
}

// DecodeFrames calls fn with each image of the stream. Formats without a
// StreamingReader yield a single frame. Iteration stops at the first error
// from the reader or fn.
func (r *Registry) DecodeFrames(ext string, src io.Reader, fn func(*StreamResult) error) error {
	rd, err := r.LookupReader(ext)
	if err != nil {
		return err
	}
	cr := NewChunkReader(src)

	sr, ok := rd.(StreamingReader)
	if !ok {
		img, err := rd.Parse(cr)
		if err != nil {
			return err
		}
		return fn(&StreamResult{Image: img})
	}

	var state StreamState
	for {
		res, err := sr.ReadStreaming(cr, state)
		if err != nil {
			return err
		}
		if err := fn(res); err != nil {
			return err
		}
		if res.Next == nil {
			return nil
		}
		state = res.Next
	}
}

func (r *Registry) Encode(ext string, dst io.Writer, img *image.Image) error {
	wr, err := r.LookupWriter(ext)
	if err != nil {
		return err
	}
	if err := img.Validate(); err != nil {
		return err
	}

	cw := NewChunkWriter(dst)
	if err := wr.Write(cw, img); err != nil {
		return err
	}
	return cw.Flush()
}
