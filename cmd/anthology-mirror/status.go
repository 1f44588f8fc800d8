// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anthology-mirror/internal/catalog"
	"github.com/pdiddy/anthology-mirror/internal/ensure"
	"github.com/pdiddy/anthology-mirror/internal/manifest"
	"github.com/pdiddy/anthology-mirror/internal/volumes"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report mirror completeness from cached listings, offline",
	Long: `Status inspects the mirror without touching the network: it reads
the listings already cached on disk, records each referenced file's current
state in the catalog database, and prints a completeness summary. Volumes
whose listings have not been fetched yet are skipped.`,
	RunE: runStatus,
}

func init() {
	addMirrorFlags(statusCmd)
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := mirrorConfig(cmd)
	if err != nil {
		return err
	}

	conferences, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return err
	}

	entries, err := volumes.New(nil, cfg).LoadCached(conferences)
	if err != nil {
		return err
	}
	cands := ensure.Candidates(entries, cfg.RootDir)

	store, err := catalog.Open(cfg.RootDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Record(cmd.Context(), cands); err != nil {
		return err
	}

	sum, err := store.Summary(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "volumes indexed: %d\n", sum.Volumes)
	fmt.Fprintf(os.Stdout, "files referenced: %d\n", sum.Files)
	fmt.Fprintf(os.Stdout, "present: %d (%d bytes)\n", sum.Present, sum.PresentBytes)
	fmt.Fprintf(os.Stdout, "missing: %d\n", sum.Missing)
	return nil
}
