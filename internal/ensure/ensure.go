// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ensure brings the local mirror in line with a flattened entry
// corpus: it probes which referenced files already exist and downloads
// only the missing ones, tolerating per-file failures.
package ensure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/anthology-mirror/internal/fetch"
	"github.com/pdiddy/anthology-mirror/pkg/types"
)

// I/O entry points, declared as vars so tests can substitute an
// instrumented layer.
var (
	downloadFile = fetch.Download
	statFile     = os.Stat
)

// Candidate pairs a remote URL with its target path in the mirror.
type Candidate struct {
	URL    string
	Path   string
	Volume string
	Kind   string // "pdf" or "bib"
}

// Candidates derives the full download list from the entry corpus: one
// candidate per present PDF and bib reference, at
// <root>/<volume>/<filename>. Entries without file references contribute
// nothing.
func Candidates(entries []types.Entry, rootDir string) []Candidate {
	var cands []Candidate
	for _, e := range entries {
		refs := []struct {
			wf   *types.WebFile
			kind string
		}{{e.PDF, "pdf"}, {e.Bib, "bib"}}
		for _, ref := range refs {
			if ref.wf == nil {
				continue
			}
			cands = append(cands, Candidate{
				URL:    ref.wf.URL,
				Path:   filepath.Join(rootDir, filepath.FromSlash(e.Volume), ref.wf.Filename),
				Volume: e.Volume,
				Kind:   ref.kind,
			})
		}
	}
	return cands
}

// BatchResult summarizes one ensure run.
type BatchResult struct {
	Present    int
	Downloaded int
	Failed     int
	Failures   []error
}

// Total returns the number of candidates processed.
func (r BatchResult) Total() int {
	return r.Present + r.Downloaded + r.Failed
}

// HasFailures reports whether any download failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// AggregateError collects every per-file download failure from a batch.
type AggregateError struct {
	Failures []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, err := range e.Failures {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d download(s) failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual failures to errors.Is/As.
func (e *AggregateError) Unwrap() []error {
	return e.Failures
}

// EnsureAll makes every candidate file present on disk. Phase one probes
// existence concurrently (bounded by cfg.ProbeConcurrency); phase two
// downloads only the missing files, bounded by cfg.DownloadConcurrency.
// Individual failures are collected, not fatal: the batch
// always runs to completion, and any failures come back as one
// *AggregateError alongside the result.
func EnsureAll(ctx context.Context, client *http.Client, cands []Candidate, cfg types.MirrorConfig, w io.Writer) (BatchResult, error) {
	if w == nil {
		w = io.Discard
	}

	missing, err := probe(cands, cfg.ProbeConcurrency)
	if err != nil {
		return BatchResult{}, fmt.Errorf("probing mirror state: %w", err)
	}

	var (
		result BatchResult
		mu     sync.Mutex
	)
	for _, m := range missing {
		if !m {
			result.Present++
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.DownloadConcurrency)
	for i, c := range cands {
		if !missing[i] {
			continue
		}
		c := c
		g.Go(func() error {
			err := downloadFile(ctx, client, c.URL, c.Path, cfg.HTTPConfig)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Failures = append(result.Failures, fmt.Errorf("%s: %w", c.URL, err))
				fmt.Fprintf(w, "failed:  %s (%v)\n", c.URL, err)
				return nil
			}
			result.Downloaded++
			fmt.Fprintf(w, "downloaded: %s\n", c.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("download batch: %w", err)
	}

	fmt.Fprintf(w, "\nEnsure summary: %d present, %d downloaded, %d failed (total: %d)\n",
		result.Present, result.Downloaded, result.Failed, result.Total())

	if result.HasFailures() {
		return result, &AggregateError{Failures: result.Failures}
	}
	return result, nil
}

// probe stats every candidate concurrently and reports which are absent.
// A stat failure other than "not exist" also counts as missing, so the
// download phase gets a chance to repair it.
func probe(cands []Candidate, limit int) ([]bool, error) {
	missing := make([]bool, len(cands))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, c := range cands {
		i, c := i, c
		g.Go(func() error {
			if _, err := statFile(c.Path); err != nil {
				missing[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return missing, nil
}
