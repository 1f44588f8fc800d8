// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides the existence-gated producer primitive that makes
// every stage of the crawl idempotent and resumable.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Ensure guarantees a file exists at path. When the file is already
// present it returns immediately without invoking produce; otherwise it
// invokes produce, which must create the file at exactly path (creating
// directories as needed), and propagates its error.
//
// Existence is the only validity check: there is no checksum or
// completion marker, so a partial file left by an interrupted write is
// treated as complete on the next run.
func Ensure(path string, produce func() error) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return produce()
}
