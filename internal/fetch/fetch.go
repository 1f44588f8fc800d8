// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads remote files to the local mirror.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/anthology-mirror/pkg/types"
)

// StatusError reports a non-200 response, distinct from transport
// failures so callers can tell a missing remote file from a broken
// connection.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Download issues a single GET for url and streams the body to destPath,
// creating parent directories as needed. There are no retries: transport
// errors surface immediately, and a non-200 status yields a *StatusError.
//
// The body is written straight to destPath. A mid-stream failure leaves
// the partial file in place; the cache layer's existence check will treat
// it as complete, which is the accepted cost of existence-only caching.
func Download(ctx context.Context, client *http.Client, url, destPath string, cfg types.HTTPConfig) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", destPath, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}

	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		return fmt.Errorf("writing %s: %w", destPath, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", destPath, closeErr)
	}
	return nil
}
