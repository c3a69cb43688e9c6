// Package source obtains documents from local files, standard input and S3.
package source

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/de-tools/text-atlas/pkg/models/domain"
)

// Source loads a whole document addressed by uri
type Source interface {
	Open(ctx context.Context, uri string) (*domain.Document, error)
}

// ReadDocument reads r line by line into a document called name.
// Read failures are reported as InputUnavailableError.
func ReadDocument(name string, r io.Reader) (*domain.Document, error) {
	reader := bufio.NewReader(r)
	doc := &domain.Document{Name: name}

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			doc.Lines = append(doc.Lines, line)
		}
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		if err != nil {
			return nil, unavailable(name, err)
		}
	}
}
