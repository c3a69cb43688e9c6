package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/de-tools/text-atlas/pkg/models/domain"
)

const (
	SchemeFile  = "file"
	SchemeS3    = "s3"
	SchemeStdin = "stdin"
)

var (
	errIsDirectory   = errors.New("is a directory")
	errStdinConsumed = errors.New("standard input already consumed")
)

// Registry dispatches document URIs to the source registered for their scheme
type Registry interface {
	// Register adds a source for a URI scheme
	Register(scheme string, src Source) error
	// Open loads the document addressed by uri
	Open(ctx context.Context, uri string) (*domain.Document, error)
	// ListSchemes returns the registered schemes in alphabetical order
	ListSchemes() []string
}

type registry struct {
	mu      sync.RWMutex
	sources map[string]Source
}

// NewRegistry creates an empty source registry
func NewRegistry() Registry {
	return &registry{
		sources: make(map[string]Source),
	}
}

func (r *registry) Register(scheme string, src Source) error {
	if scheme == "" {
		return fmt.Errorf("scheme cannot be empty")
	}
	if src == nil {
		return fmt.Errorf("source cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[scheme]; exists {
		return fmt.Errorf("scheme %q is already registered", scheme)
	}

	r.sources[scheme] = src
	return nil
}

func (r *registry) Open(ctx context.Context, uri string) (*domain.Document, error) {
	if uri == "" {
		return nil, unavailable(uri, errors.New("empty input name"))
	}
	scheme := Scheme(uri)

	r.mu.RLock()
	src, exists := r.sources[scheme]
	r.mu.RUnlock()

	if !exists {
		return nil, unavailable(uri, fmt.Errorf("scheme %q is not supported", scheme))
	}

	return src.Open(ctx, uri)
}

func (r *registry) ListSchemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.sources))
	for scheme := range r.sources {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}

// Scheme returns the scheme of uri. Bare paths are files and "-" is standard input.
func Scheme(uri string) string {
	if uri == stdinName {
		return SchemeStdin
	}
	if i := strings.Index(uri, "://"); i > 0 {
		return uri[:i]
	}
	return SchemeFile
}

func trimScheme(uri, scheme string) string {
	return strings.TrimPrefix(uri, scheme+"://")
}
