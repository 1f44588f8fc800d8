// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/anthology-mirror/pkg/types"
)

func testHTTPConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   5 * time.Second,
		UserAgent: "anthology-mirror-test/0.1",
	}
}

func TestDownloadWritesBody(t *testing.T) {
	var gotUA atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "P", "P95", "P95-1001.pdf")
	err := Download(context.Background(), ts.Client(), ts.URL+"/P95-1001.pdf", dest, testHTTPConfig())
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.Equal(t, "anthology-mirror-test/0.1", gotUA.Load())
}

func TestDownloadNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "missing.pdf")
	err := Download(context.Background(), ts.Client(), ts.URL+"/missing.pdf", dest, testHTTPConfig())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "HTTP 404")

	// Nothing written on a status failure.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloadTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close() // connection refused

	dest := filepath.Join(t.TempDir(), "x.pdf")
	err := Download(context.Background(), http.DefaultClient, ts.URL+"/x.pdf", dest, testHTTPConfig())
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "transport failure must not be a StatusError")
}
