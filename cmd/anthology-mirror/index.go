package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anthology-mirror/internal/manifest"
	"github.com/pdiddy/anthology-mirror/internal/volumes"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Fetch and cache volume listings without downloading paper files",
	Long: `Index runs only the volume-loading phase: every manifest volume's
index page is fetched (unless cached) and parsed into a listing. Use it to
build or refresh the entry corpus before a long file crawl.`,
	RunE: runIndex,
}

func init() {
	addMirrorFlags(indexCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := mirrorConfig(cmd)
	if err != nil {
		return err
	}

	conferences, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	entries, err := volumes.New(client, cfg).LoadAll(cmd.Context(), conferences)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Volume]++
	}
	for _, volume := range manifest.Volumes(conferences) {
		fmt.Fprintf(os.Stdout, "%s: %d entries\n", volume, counts[volume])
	}
	fmt.Fprintf(os.Stdout, "\n%d entries across %d volumes\n", len(entries), len(counts))
	return nil
}
