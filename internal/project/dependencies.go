package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Resolved revision of one dependent repository.
type Dependency struct {
	SHA    string `json:"sha"`
	Branch string `json:"branch,omitempty"`
}

// Maps repo name to its resolved revision. Captured once per build and
// persisted verbatim, both as dependencies.json and inside every artifact's
// initialization data.
type Manifest map[string]Dependency

// Captures the revision of every repo participating in the build.
//
// Each repo's .git/HEAD is read directly: a detached HEAD yields the bare
// commit, a symbolic ref is followed into refs/heads. Repos without git
// metadata (tarball checkouts) are recorded with an empty SHA rather than
// failing the build.
func CaptureManifest(root string, repos []string) (Manifest, error) {
	manifest := make(Manifest, len(repos))
	for _, repo := range repos {
		sha, branch := resolveHead(filepath.Join(root, repo, ".git"))
		manifest[repo] = Dependency{SHA: sha, Branch: branch}
	}
	return manifest, nil
}

// Serializes the manifest as pretty-printed JSON with a trailing newline.
// Key order is stable, so identical manifests produce identical bytes.
func (m Manifest) MarshalPretty() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Reads a commit SHA and branch name out of a .git directory.
func resolveHead(gitDir string) (sha, branch string) {
	head, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return "", ""
	}

	ref := strings.TrimSpace(string(head))
	if !strings.HasPrefix(ref, "ref: ") {
		return ref, "" // Detached HEAD.
	}

	refPath := strings.TrimPrefix(ref, "ref: ")
	branch = strings.TrimPrefix(refPath, "refs/heads/")

	commit, err := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(refPath)))
	if err != nil {
		return "", branch
	}
	return strings.TrimSpace(string(commit)), branch
}
