package dataset

import (
	"context"
	"errors"
	"io"

	"github.com/kittclouds/atmkit/pkg/annotations"
)

// Load reads, decodes and normalizes the document behind src.
// Any failure is a *LoadError and no rows are returned.
func Load(ctx context.Context, src Source, opts Options) ([]*Row, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		op := "open"
		var se *StatusError
		if errors.As(err, &se) {
			op = "status"
		}
		return nil, &LoadError{Source: src.Name(), Op: op, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Op: "read", Err: err}
	}

	doc, err := annotations.Decode(data)
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Op: "decode", Err: err}
	}

	return Normalize(doc, opts), nil
}
