// Package project reads simulation repository metadata.
//
// Every buildable target repo carries a package.json at its root describing
// the simulation: its name, version, license, the repos it depends on, the
// preload scripts it needs, and the brands it supports. The package also
// captures the dependency manifest (repo name to resolved commit) for a
// build, read from each sibling repo's git metadata.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrMetadata = errors.New("invalid target metadata")
)

// Repos every simulation depends on regardless of what package.json lists.
var commonRepos = []string{"axon", "dot", "joist", "scenery", "sherpa"}

// Describes one buildable simulation repository.
type Metadata struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	License string   `json:"license"`
	Sim     Features `json:"phet"`
}

// Simulation-specific metadata nested under the "phet" key.
type Features struct {
	Simulation      bool     `json:"simulation"`
	SupportedBrands []string `json:"supportedBrands"`
	Preload         []string `json:"preload"`
	Libs            []string `json:"phetLibs"`
	Accessibility   bool     `json:"supportsInteractiveDescription"`
}

// Reads and validates the target repo's package.json.
func Load(root, target string) (*Metadata, error) {
	path := filepath.Join(root, target, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMetadata, path, err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("%w: %s has no name", ErrMetadata, path)
	}
	if m.Name != target {
		return nil, fmt.Errorf("%w: %s names %q, expected %q", ErrMetadata, path, m.Name, target)
	}
	if m.Version == "" {
		return nil, fmt.Errorf("%w: %s has no version", ErrMetadata, path)
	}

	return &m, nil
}

// The string key holding the simulation's localized title.
func (m *Metadata) TitleKey() string {
	return m.Name + ".title"
}

// All repos that participate in this build: the target itself, the common
// repos, and the target's declared libs, deduplicated and in stable order.
func (m *Metadata) Repos() []string {
	seen := map[string]bool{m.Name: true}
	repos := []string{m.Name}
	for _, group := range [][]string{commonRepos, m.Sim.Libs} {
		for _, repo := range group {
			if !seen[repo] {
				seen[repo] = true
				repos = append(repos, repo)
			}
		}
	}
	return repos
}

// Path to the target's screenshot, or "" when the asset does not exist.
// A missing screenshot is not an error; dependent outputs are skipped.
func Screenshot(root, target string) string {
	path := filepath.Join(root, target, "assets", target+"-screenshot.png")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
