package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Third-party license entry, persisted verbatim from sherpa/licenses.json.
type license = json.RawMessage

// Resolves license entries for the preload libraries a build embeds.
//
// sherpa/licenses.json maps library file names to their license records.
// Only entries for the target's declared preloads are embedded. A missing
// licenses file yields no entries; a present but unreadable one is fatal.
func resolveLicenses(root string, preloads []string) (map[string]license, error) {
	path := filepath.Join(root, "sherpa", "licenses.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]license{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}

	var all map[string]license
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	entries := make(map[string]license)
	for _, rel := range preloads {
		name := filepath.Base(filepath.FromSlash(rel))
		if entry, ok := all[name]; ok {
			entries[name] = entry
		}
	}
	return entries, nil
}
