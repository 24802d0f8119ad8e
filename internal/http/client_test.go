package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cover":
			assert.Equal(t, "SpotifyPlaylistCoverDownloader", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("jpegdata"))
		case "/created":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("ok"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	ctx := context.Background()

	resp, err := client.Get(ctx, srv.URL+"/cover")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.ContentType())
	assert.Equal(t, "jpegdata", string(resp.Body))

	resp, err = client.Get(ctx, srv.URL+"/created")
	require.NoError(t, err, "any 2xx status is a success")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	_, err = client.Get(ctx, srv.URL+"/missing")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(50 * time.Millisecond)
	_, err := client.Get(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client := NewClient(0)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}
