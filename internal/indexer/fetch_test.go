package indexer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveIndex(t *testing.T, ci *CorpusIndex) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			assert.NoError(t, ci.Save(w))
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchIndex(t *testing.T) {
	ctx := context.Background()
	ci, err := New(Options{}).Index(ctx, testArchive(t))
	require.NoError(t, err)
	srv := serveIndex(t, ci)

	fetched, err := FetchIndex(ctx, srv.URL+"/index.json")
	require.NoError(t, err)
	assert.Equal(t, ci.Docs, fetched.Docs)
}

func TestFetchIndex_Errors(t *testing.T) {
	ctx := context.Background()
	ci, err := New(Options{}).Index(ctx, testArchive(t))
	require.NoError(t, err)
	srv := serveIndex(t, ci)

	t.Run("not found", func(t *testing.T) {
		url := srv.URL + "/missing.json"
		_, err := FetchIndex(ctx, url)

		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, http.StatusNotFound, fe.StatusCode)
		assert.Equal(t, "failed to fetch corpus data from "+url+": 404 Not Found", err.Error())
	})

	t.Run("not json", func(t *testing.T) {
		url := srv.URL + "/page.html"
		_, err := FetchIndex(ctx, url)

		assert.ErrorIs(t, err, ErrNotJSON)
		assert.Equal(t, "corpus data from "+url+" is not JSON", err.Error())
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := FetchIndex(cctx, srv.URL+"/index.json")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOpen_File(t *testing.T) {
	ctx := context.Background()
	ci, err := New(Options{}).Index(ctx, testArchive(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "index.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, ci.Save(f))
	require.NoError(t, f.Close())

	loaded, err := Open(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, ci.Docs, loaded.Docs)

	_, err = Open(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHolder_Reload(t *testing.T) {
	ctx := context.Background()
	ci, err := New(Options{}).Index(ctx, testArchive(t))
	require.NoError(t, err)
	srv := serveIndex(t, ci)

	h := NewHolder(&CorpusIndex{}, srv.URL+"/index.json")
	assert.Empty(t, h.Index().Docs)

	reloaded, err := h.Reload(ctx)
	require.NoError(t, err)
	assert.Same(t, reloaded, h.Index())
	assert.Len(t, h.Index().Docs, 3)
}

func TestHolder_ReloadKeepsIndexOnInvalidSource(t *testing.T) {
	ctx := context.Background()
	ci, err := New(Options{}).Index(ctx, testArchive(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "index.json")
	bad := `{"docs":[{"doc":{"id":2},"contentID":"a","chunks":[{"text":"alpha","range":{"start":0,"end":5}}]}],` +
		`"tfidf":{"termFrequency":{"1":[{"alpha":1}]},"termLength":{"1":[1]},"chunkFrequency":{"alpha":1},"totalChunks":1}}`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o600))

	h := NewHolder(ci, path)
	_, err = h.Reload(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Same(t, ci, h.Index())
}

func TestHolder_ReloadInProgress(t *testing.T) {
	h := NewHolder(&CorpusIndex{}, "unused")
	require.True(t, h.lock.tryAcquire())
	defer h.lock.release()

	_, err := h.Reload(context.Background())
	assert.ErrorIs(t, err, ErrReloadInProgress)
}
