package haste

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return New(baseURL, slog.NewTextHandler(io.Discard, nil))
}

func TestUpload(t *testing.T) {
	t.Parallel()

	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/documents", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(b)
		w.Write([]byte(`{"key":"abc123"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	link, err := c.Upload(context.Background(), "some output")

	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/abc123", link)
	assert.Equal(t, "some output", gotBody)
	assert.Contains(t, gotContentType, "text/plain")
}

func TestUploadNoKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Upload(context.Background(), "far too much output")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestUploadServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Upload(context.Background(), "output")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoKey)
	assert.Contains(t, err.Error(), "502")
}

func TestUploadTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	c := newTestClient(t, srv.URL)
	_, err := c.Upload(context.Background(), "output")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoKey)
	assert.Contains(t, err.Error(), "paste service request failed")
}

func TestUploadBadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Upload(context.Background(), "output")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoKey)
}

func TestNewDefaultsBaseURL(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "")
	assert.Equal(t, DefaultBaseURL, c.baseURL)

	c = newTestClient(t, "https://paste.example.com/")
	assert.Equal(t, "https://paste.example.com", c.baseURL)
}
