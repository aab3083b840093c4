package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTarget(t *testing.T, root, target, packageJSON string) {
	t.Helper()
	dir := filepath.Join(root, target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(packageJSON), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeTarget(t, root, "wave-lab", `{
		"name": "wave-lab",
		"version": "1.4.0",
		"license": "MIT",
		"phet": {
			"simulation": true,
			"supportedBrands": ["phet", "phet-io"],
			"preload": ["../sherpa/lib/seedrandom-2.4.2.js"],
			"phetLibs": ["tandem"],
			"supportsInteractiveDescription": true
		}
	}`)

	m, err := Load(root, "wave-lab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "wave-lab" {
		t.Errorf("Name = %q, want wave-lab", m.Name)
	}
	if m.Version != "1.4.0" {
		t.Errorf("Version = %q, want 1.4.0", m.Version)
	}
	if !m.Sim.Accessibility {
		t.Error("Accessibility = false, want true")
	}
	if m.TitleKey() != "wave-lab.title" {
		t.Errorf("TitleKey = %q, want wave-lab.title", m.TitleKey())
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name        string
		packageJSON string
	}{
		{"missing name", `{"version": "1.0.0"}`},
		{"missing version", `{"name": "wave-lab"}`},
		{"name mismatch", `{"name": "other", "version": "1.0.0"}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTarget(t, root, "wave-lab", tt.packageJSON)
			if _, err := Load(root, "wave-lab"); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingRepo(t *testing.T) {
	if _, err := Load(t.TempDir(), "wave-lab"); err == nil {
		t.Fatal("expected error for missing repo, got nil")
	}
}

func TestRepos(t *testing.T) {
	m := &Metadata{Name: "wave-lab", Sim: Features{Libs: []string{"tandem", "dot"}}}

	repos := m.Repos()
	if repos[0] != "wave-lab" {
		t.Fatalf("repos[0] = %q, want the target first", repos[0])
	}

	seen := map[string]int{}
	for _, r := range repos {
		seen[r]++
	}
	if seen["dot"] != 1 {
		t.Fatalf("dot appears %d times, want 1", seen["dot"])
	}
	if seen["tandem"] != 1 {
		t.Fatalf("tandem appears %d times, want 1", seen["tandem"])
	}
}

func TestScreenshot(t *testing.T) {
	root := t.TempDir()
	if got := Screenshot(root, "wave-lab"); got != "" {
		t.Fatalf("Screenshot = %q, want empty for missing asset", got)
	}

	dir := filepath.Join(root, "wave-lab", "assets")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "wave-lab-screenshot.png")
	if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := Screenshot(root, "wave-lab"); got != path {
		t.Fatalf("Screenshot = %q, want %q", got, path)
	}
}

func TestCaptureManifest(t *testing.T) {
	root := t.TempDir()

	// Repo with a symbolic HEAD.
	gitDir := filepath.Join(root, "wave-lab", ".git")
	if err := os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "refs", "heads", "main"), []byte("a1b2c3d4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Repo with a detached HEAD.
	detached := filepath.Join(root, "dot", ".git")
	if err := os.MkdirAll(detached, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(detached, "HEAD"), []byte("deadbeef\n"), 0644); err != nil {
		t.Fatal(err)
	}

	manifest, err := CaptureManifest(root, []string{"wave-lab", "dot", "tarball"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dep := manifest["wave-lab"]; dep.SHA != "a1b2c3d4" || dep.Branch != "main" {
		t.Fatalf("wave-lab = %+v, want sha a1b2c3d4 on main", dep)
	}
	if dep := manifest["dot"]; dep.SHA != "deadbeef" || dep.Branch != "" {
		t.Fatalf("dot = %+v, want detached deadbeef", dep)
	}
	if dep := manifest["tarball"]; dep.SHA != "" {
		t.Fatalf("tarball = %+v, want empty revision", dep)
	}
}

func TestManifestMarshalPrettyStable(t *testing.T) {
	m := Manifest{
		"b": {SHA: "2"},
		"a": {SHA: "1", Branch: "main"},
	}

	first, err := m.MarshalPretty()
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.MarshalPretty()
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("manifest serialization is not stable")
	}
	if first[len(first)-1] != '\n' {
		t.Fatal("manifest should end with a newline")
	}
}
