package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "PaperA": {"Title": "T1", "Cancer": {"Types": ["Breast", "Ovarian"]}, "Risk": {"Percentages": {"Breast": "45%"}}},
  "PaperB": {"Title": "T2", "Cancer": {"Types": ["Pancreatic"]}}
}`

func newMemFS(t *testing.T, files map[string]string) hackpadfs.FS {
	t.Helper()
	fs, err := mem.NewFS()
	require.NoError(t, err)
	for name, content := range files {
		require.NoError(t, hackpadfs.WriteFullFile(fs, name, []byte(content), 0644))
	}
	return fs
}

func TestLoad_FileSource(t *testing.T) {
	fs := newMemFS(t, map[string]string{DefaultFile: sample})

	rows, err := Load(context.Background(), FileSource{FS: fs, Path: DefaultFile}, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "PaperA", rows[0].PaperID)
	assert.Equal(t, "Ovarian", rows[1].Condition)
	assert.Equal(t, "PaperB", rows[2].PaperID)
}

func TestLoad_MissingFile(t *testing.T) {
	fs := newMemFS(t, nil)

	rows, err := Load(context.Background(), FileSource{FS: fs, Path: DefaultFile}, Options{})
	assert.Nil(t, rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "open", le.Op)
	assert.Equal(t, DefaultFile, le.Source)
}

func TestLoad_MalformedJSON(t *testing.T) {
	fs := newMemFS(t, map[string]string{DefaultFile: `{"PaperA": {`})

	_, err := Load(context.Background(), FileSource{FS: fs, Path: DefaultFile}, Options{})
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "decode", le.Op)
}

func TestLoad_HTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+DefaultFile {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sample))
	}))
	t.Cleanup(srv.Close)

	rows, err := Load(context.Background(), HTTPSource{URL: srv.URL + "/" + DefaultFile}, Options{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = Load(context.Background(), HTTPSource{Client: srv.Client(), URL: srv.URL + "/missing.json"}, Options{})
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "status", le.Op)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestLoad_CanceledContext(t *testing.T) {
	fs := newMemFS(t, map[string]string{DefaultFile: sample})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, FileSource{FS: fs, Path: DefaultFile}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrLoad)
}
