package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anthology-mirror/internal/ensure"
	"github.com/pdiddy/anthology-mirror/internal/manifest"
	"github.com/pdiddy/anthology-mirror/internal/volumes"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Mirror every manifest volume and download missing paper files",
	Long: `Crawl loads the conference manifest, resolves every volume's entry
listing (fetching and caching index pages as needed), and then downloads
every referenced PDF and bibliography file not yet present in the mirror.

A failure while loading any volume aborts the run: the file list cannot be
trusted from a partial entry corpus. Individual file-download failures do
not abort the batch; they are reported together at the end, and the missing
files are simply retried on the next run.`,
	RunE: runCrawl,
}

func init() {
	addMirrorFlags(crawlCmd)
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
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
	fmt.Fprintf(os.Stdout, "loaded %d entries from %d volumes\n",
		len(entries), len(manifest.Volumes(conferences)))

	cands := ensure.Candidates(entries, cfg.RootDir)
	result, err := ensure.EnsureAll(cmd.Context(), client, cands, cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("%d of %d file(s) failed: %w", result.Failed, result.Total(), err)
	}
	return nil
}
