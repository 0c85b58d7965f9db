package files

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove_EnviaDeleteConToken(t *testing.T) {
	var gotPath, gotAuth, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotAuth = r.Method, r.URL.Path, r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", time.Second)
	require.NoError(t, c.Remove(context.Background(), "/contacts/rut.pdf"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/contacts/rut.pdf", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)

	require.NoError(t, c.Remove(context.Background(), srv.URL+"/contacts/otro.pdf"))
	assert.Equal(t, "/contacts/otro.pdf", gotPath)
}

func TestRemove_NotFoundEsExito(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, "", time.Second).Remove(context.Background(), "a.pdf"))
}

func TestRemove_ReintentaErroresDelServidor(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "", time.Second).Remove(context.Background(), "a.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRemove_URLAjena(t *testing.T) {
	c := NewClient("https://files.example.com", "", time.Second)
	err := c.Remove(context.Background(), "https://otro.example.com/a.pdf")
	assert.Error(t, err)

	err = NewClient("", "", time.Second).Remove(context.Background(), "a.pdf")
	assert.Error(t, err)
}
