package source

import (
	"context"
	"os"

	"github.com/de-tools/text-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// FileSource reads documents from the local file system
type FileSource struct{}

func NewFileSource() *FileSource {
	return &FileSource{}
}

// Open accepts a plain path or a file:// URI.
func (s *FileSource) Open(ctx context.Context, uri string) (*domain.Document, error) {
	path := trimScheme(uri, SchemeFile)
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("opening file")

	f, err := os.Open(path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, unavailable(path, err)
	}
	if info.IsDir() {
		return nil, unavailable(path, errIsDirectory)
	}

	return ReadDocument(path, f)
}
