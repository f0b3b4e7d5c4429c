package transfer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut(t *testing.T) {
	var received []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		received, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	err := c.Put(context.Background(), srv.URL, []byte("ciphertext"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext"), received)
}

func TestPut_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the store rejects expired capabilities with 403
		http.Error(w, "expired", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	err := c.Put(context.Background(), srv.URL, []byte("ciphertext"))
	assert.ErrorIs(t, err, common.ErrUploadTransferFailed)
}

func TestPut_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(time.Second)
	err := c.Put(context.Background(), srv.URL, []byte("x"))
	assert.ErrorIs(t, err, common.ErrUploadTransferFailed)
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("ciphertext"))
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext"), body)
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	_, err := c.Get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, common.ErrDownloadTransferFailed)
}
