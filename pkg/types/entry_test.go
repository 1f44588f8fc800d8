// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestNewWebFile(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		filename string
		want     string
	}{
		{"explicit filename kept", "https://host/anthology/P/P95/P95-1001.pdf", "paper.pdf", "paper.pdf"},
		{"derived from last segment", "https://host/anthology/P/P95/P95-1001.pdf", "", "P95-1001.pdf"},
		{"trailing slash skipped", "https://host/anthology/P/P95/", "", "P95"},
		{"query ignored", "https://host/files/x.bib?dl=1", "", "x.bib"},
		{"no scheme still splits", "host/some/dir/file.pdf", "", "file.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewWebFile(tt.url, tt.filename)
			if got.Filename != tt.want {
				t.Errorf("NewWebFile(%q, %q).Filename = %q, want %q", tt.url, tt.filename, got.Filename, tt.want)
			}
			if got.URL != tt.url {
				t.Errorf("NewWebFile(%q, _).URL = %q, want input unchanged", tt.url, got.URL)
			}
		})
	}
}

func TestMirrorConfigValidate(t *testing.T) {
	valid := MirrorConfig{
		RootDir:             "/tmp/mirror",
		BaseURL:             "https://www.aclweb.org/anthology",
		ManifestPath:        "conferences.yaml",
		VolumeConcurrency:   10,
		ProbeConcurrency:    10,
		DownloadConcurrency: 2,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*MirrorConfig)
	}{
		{"missing root dir", func(c *MirrorConfig) { c.RootDir = "" }},
		{"missing base url", func(c *MirrorConfig) { c.BaseURL = "" }},
		{"missing manifest", func(c *MirrorConfig) { c.ManifestPath = "" }},
		{"zero volume concurrency", func(c *MirrorConfig) { c.VolumeConcurrency = 0 }},
		{"zero probe concurrency", func(c *MirrorConfig) { c.ProbeConcurrency = 0 }},
		{"zero download concurrency", func(c *MirrorConfig) { c.DownloadConcurrency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestVolumeIndexURL(t *testing.T) {
	cfg := MirrorConfig{BaseURL: "https://www.aclweb.org/anthology/"}
	got := cfg.VolumeIndexURL("P/P95")
	want := "https://www.aclweb.org/anthology/P/P95/"
	if got != want {
		t.Errorf("VolumeIndexURL(P/P95) = %q, want %q", got, want)
	}
}
