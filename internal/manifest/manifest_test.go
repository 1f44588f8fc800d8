// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/anthology-mirror/pkg/types"
)

const sampleManifest = `conferences:
  - id: acl
    name: Association for Computational Linguistics
    description: Annual meeting proceedings.
    volumes: [P/P95, P/P96]
  - id: eacl
    name: European ACL
    description: EACL proceedings.
    volumes: [E/E95, P/P95]
`

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conferences.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing manifest fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, sampleManifest)

	confs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(confs) != 2 {
		t.Fatalf("len(confs) = %d, want 2", len(confs))
	}
	if confs[0].ID != "acl" {
		t.Errorf("confs[0].ID = %q, want %q", confs[0].ID, "acl")
	}
	if confs[0].Name != "Association for Computational Linguistics" {
		t.Errorf("confs[0].Name = %q", confs[0].Name)
	}
	if !reflect.DeepEqual(confs[1].Volumes, []string{"E/E95", "P/P95"}) {
		t.Errorf("confs[1].Volumes = %v", confs[1].Volumes)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of missing file = nil error, want error")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeManifest(t, "conferences: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML = nil error, want error")
	}
}

func TestLoadEmptyManifest(t *testing.T) {
	path := writeManifest(t, "conferences: []\n")
	if _, err := Load(path); err == nil {
		t.Error("Load of empty manifest = nil error, want error")
	}
}

func TestVolumesPreservesOrderAndDuplicates(t *testing.T) {
	confs := []types.Conference{
		{ID: "acl", Volumes: []string{"P/P95", "P/P96"}},
		{ID: "eacl", Volumes: []string{"E/E95", "P/P95"}},
	}
	got := Volumes(confs)
	want := []string{"P/P95", "P/P96", "E/E95", "P/P95"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Volumes = %v, want %v", got, want)
	}
}
