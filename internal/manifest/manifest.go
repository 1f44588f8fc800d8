// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest reads the conference manifest that enumerates every
// volume to mirror.
package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/anthology-mirror/pkg/types"
)

// file is the on-disk manifest shape.
type file struct {
	Conferences []types.Conference `yaml:"conferences"`
}

// Load reads and parses the manifest YAML at path.
func Load(path string) ([]types.Conference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m file
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if len(m.Conferences) == 0 {
		return nil, fmt.Errorf("manifest %s lists no conferences", path)
	}
	return m.Conferences, nil
}

// Volumes flattens the conferences into one ordered list of volume
// identifiers: manifest order, then volume order within each conference.
// Duplicates across conferences are preserved.
func Volumes(conferences []types.Conference) []string {
	var volumes []string
	for _, c := range conferences {
		volumes = append(volumes, c.Volumes...)
	}
	return volumes
}
