package capability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPNetwork_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	n := NewHTTPNetwork()
	status, snippet, err := n.Get(context.Background(), srv.URL, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, status)
	assert.Equal(t, "short and stout", snippet)
}

func TestHTTPNetwork_GetSnippetCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", snippetCap*3)))
	}))
	defer srv.Close()

	n := NewHTTPNetwork()
	_, snippet, err := n.Get(context.Background(), srv.URL, 5*time.Second)
	require.NoError(t, err)
	assert.Len(t, snippet, snippetCap)
}

func TestHTTPNetwork_GetTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	n := NewHTTPNetwork()
	_, _, err := n.Get(context.Background(), srv.URL, 50*time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestHTTPNetwork_GetConnectionRefused(t *testing.T) {
	// Reserve a port, then close it so the GET has nothing to talk to.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := NewHTTPNetwork()
	_, _, err := n.Get(context.Background(), url, time.Second)
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestHTTPNetwork_ResolveLocalhost(t *testing.T) {
	n := NewHTTPNetwork()
	addrs, err := n.Resolve(context.Background(), "localhost")
	require.NoError(t, err)
	assert.NotEmpty(t, addrs)
}

func TestHTTPNetwork_ResolveFailure(t *testing.T) {
	n := NewHTTPNetwork()
	_, err := n.Resolve(context.Background(), "definitely-not-a-real-host.invalid")
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}
