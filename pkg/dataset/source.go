package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hack-pad/hackpadfs"
)

// DefaultFile is the canonical annotation file name.
const DefaultFile = "ATM_annotations.json"

// Source yields the raw annotation document.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads the document from a hackpadfs filesystem.
type FileSource struct {
	FS   hackpadfs.FS
	Path string
}

func (s FileSource) Name() string {
	return s.Path
}

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.FS.Open(s.Path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// HTTPSource fetches the document with a GET request.
// Under js/wasm the net/http transport is the browser's fetch.
type HTTPSource struct {
	Client *http.Client
	URL    string
}

func (s HTTPSource) Name() string {
	return s.URL
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return resp.Body, nil
}

// ErrLoad matches every *LoadError via errors.Is.
var ErrLoad = errors.New("dataset load failed")

// LoadError describes a failed load. Op is one of "open", "status", "read", "decode".
type LoadError struct {
	Source string
	Op     string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
