// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "anthology-mirror/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// MirrorConfig holds settings for the crawl pipeline. It is built once in
// the command layer and passed explicitly into every stage; stage packages
// never consult process-wide configuration themselves.
type MirrorConfig struct {
	HTTPConfig `yaml:",inline"`

	// RootDir is the local mirror root. Required; every cached index
	// page, listing, and downloaded file lives under it.
	RootDir string `json:"root_dir" yaml:"root_dir"`

	// BaseURL is the remote anthology root, e.g.
	// "https://www.aclweb.org/anthology". Volume index pages live at
	// BaseURL/<volume>/.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// ManifestPath locates the conference manifest YAML file.
	ManifestPath string `json:"manifest_path" yaml:"manifest_path"`

	// VolumeConcurrency bounds how many volume index pages are loaded
	// at once (default 10).
	VolumeConcurrency int `json:"volume_concurrency" yaml:"volume_concurrency"`

	// ProbeConcurrency bounds concurrent file existence checks (default 10).
	ProbeConcurrency int `json:"probe_concurrency" yaml:"probe_concurrency"`

	// DownloadConcurrency bounds concurrent file downloads (default 2,
	// deliberately lower than the index-fetch bound).
	DownloadConcurrency int `json:"download_concurrency" yaml:"download_concurrency"`
}

// Validate enforces required values before any I/O begins.
func (c MirrorConfig) Validate() error {
	if c.RootDir == "" {
		return fmt.Errorf("root_dir must be set")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must be set")
	}
	if c.ManifestPath == "" {
		return fmt.Errorf("manifest_path must be set")
	}
	if c.VolumeConcurrency <= 0 {
		return fmt.Errorf("volume_concurrency must be > 0")
	}
	if c.ProbeConcurrency <= 0 {
		return fmt.Errorf("probe_concurrency must be > 0")
	}
	if c.DownloadConcurrency <= 0 {
		return fmt.Errorf("download_concurrency must be > 0")
	}
	return nil
}

// VolumeIndexURL returns the remote index page URL for a volume,
// with a trailing slash so relative anchors resolve inside the volume.
func (c MirrorConfig) VolumeIndexURL(volume string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + strings.Trim(volume, "/") + "/"
}
