// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package volumes resolves every manifest volume to its cached entry
// listing, fetching and parsing index pages only for volumes not yet on
// disk.
package volumes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/anthology-mirror/internal/cache"
	"github.com/pdiddy/anthology-mirror/internal/fetch"
	"github.com/pdiddy/anthology-mirror/internal/index"
	"github.com/pdiddy/anthology-mirror/internal/manifest"
	"github.com/pdiddy/anthology-mirror/pkg/types"
)

const (
	indexFile   = "index.html"
	listingFile = "index.html.json"
)

// Loader resolves volumes against the local mirror.
type Loader struct {
	client *http.Client
	cfg    types.MirrorConfig
}

// New wires a Loader; a nil client gets a default with the configured timeout.
func New(client *http.Client, cfg types.MirrorConfig) *Loader {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Loader{client: client, cfg: cfg}
}

// HTMLPath returns the local path of a volume's raw index page.
func (l *Loader) HTMLPath(volume string) string {
	return filepath.Join(l.cfg.RootDir, filepath.FromSlash(volume), indexFile)
}

// ListingPath returns the local path of a volume's cached entry listing.
func (l *Loader) ListingPath(volume string) string {
	return filepath.Join(l.cfg.RootDir, filepath.FromSlash(volume), listingFile)
}

// LoadAll resolves every volume of every conference and returns the
// entries concatenated in flattened manifest order. Volumes load with
// bounded concurrency; the first failing volume aborts the whole load,
// since a partial entry corpus cannot be trusted downstream.
func (l *Loader) LoadAll(ctx context.Context, conferences []types.Conference) ([]types.Entry, error) {
	vols := manifest.Volumes(conferences)
	listings := make([][]types.Entry, len(vols))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.VolumeConcurrency)
	for i, volume := range vols {
		i, volume := i, volume
		g.Go(func() error {
			entries, err := l.loadVolume(ctx, volume)
			if err != nil {
				return fmt.Errorf("volume %s: %w", volume, err)
			}
			listings[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return flatten(listings), nil
}

// LoadCached returns the entries of volumes whose listings are already on
// disk, skipping the rest. It never touches the network.
func (l *Loader) LoadCached(conferences []types.Conference) ([]types.Entry, error) {
	var listings [][]types.Entry
	for _, volume := range manifest.Volumes(conferences) {
		entries, err := l.readListing(volume)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("volume %s: %w", volume, err)
		}
		listings = append(listings, entries)
	}
	return flatten(listings), nil
}

// loadVolume produces the volume's listing if absent, then reads it back.
func (l *Loader) loadVolume(ctx context.Context, volume string) ([]types.Entry, error) {
	listingPath := l.ListingPath(volume)
	if err := cache.Ensure(listingPath, func() error {
		return l.buildListing(ctx, volume, listingPath)
	}); err != nil {
		return nil, err
	}
	return l.readListing(volume)
}

// buildListing fetches the volume's index page when not cached, parses
// it, and persists the entries as pretty-printed JSON at listingPath.
func (l *Loader) buildListing(ctx context.Context, volume, listingPath string) error {
	htmlPath := l.HTMLPath(volume)
	indexURL := l.cfg.VolumeIndexURL(volume)

	if err := cache.Ensure(htmlPath, func() error {
		return fetch.Download(ctx, l.client, indexURL, htmlPath, l.cfg.HTTPConfig)
	}); err != nil {
		return err
	}

	raw, err := os.Open(htmlPath)
	if err != nil {
		return fmt.Errorf("reading cached index page: %w", err)
	}
	defer raw.Close()

	base, err := url.Parse(indexURL)
	if err != nil {
		return fmt.Errorf("parsing index URL %s: %w", indexURL, err)
	}

	entries, err := index.New(base).Parse(raw, volume)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding listing: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(listingPath), 0o755); err != nil {
		return fmt.Errorf("creating listing directory: %w", err)
	}
	if err := os.WriteFile(listingPath, data, 0o644); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

func (l *Loader) readListing(volume string) ([]types.Entry, error) {
	data, err := os.ReadFile(l.ListingPath(volume))
	if err != nil {
		return nil, err
	}
	var entries []types.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}
	return entries, nil
}

func flatten(listings [][]types.Entry) []types.Entry {
	var all []types.Entry
	for _, entries := range listings {
		all = append(all, entries...)
	}
	return all
}
