package source

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/de-tools/text-atlas/pkg/models/domain"
)

const stdinName = "-"

// StdinSource reads a single document from a stream, usually os.Stdin.
// The stream can be consumed only once.
type StdinSource struct {
	mu     sync.Mutex
	reader io.Reader
	used   bool
}

func NewStdinSource(r io.Reader) *StdinSource {
	if r == nil {
		r = os.Stdin
	}
	return &StdinSource{reader: r}
}

func (s *StdinSource) Open(_ context.Context, _ string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.used {
		return nil, unavailable(stdinName, errStdinConsumed)
	}
	s.used = true

	return ReadDocument(stdinName, s.reader)
}
