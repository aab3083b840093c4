package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(path, content string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write(filepath.Join(root, "wave-lab", "js", "wave-lab-main.js"),
		`import { amplitude } from "./model.js";
window.simReady = amplitude;
window.titleText = window.simEnv.getString("wave-lab.title");`)
	write(filepath.Join(root, "wave-lab", "js", "model.js"),
		`export const amplitude = 42;`)
	write(filepath.Join(root, "wave-lab", "images", "unused-art.png"), "not-a-real-png")

	return root
}

func TestBundle(t *testing.T) {
	root := fixture(t)

	result, err := Bundle(root, "wave-lab", []string{"wave-lab.title", "wave-lab.reset"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Code, "42") {
		t.Fatalf("bundle missing imported module content: %q", result.Code)
	}
	if strings.Contains(result.Code, "import ") {
		t.Fatalf("bundle still contains import statements: %q", result.Code)
	}
}

func TestBundleDeterministic(t *testing.T) {
	root := fixture(t)

	first, err := Bundle(root, "wave-lab", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Bundle(root, "wave-lab", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Code != second.Code {
		t.Fatal("bundle output differs between runs")
	}
}

func TestBundleDiagnostics(t *testing.T) {
	root := fixture(t)

	result, err := Bundle(root, "wave-lab", []string{"wave-lab.title", "wave-lab.reset"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Diagnostics.UnusedMedia) != 1 ||
		result.Diagnostics.UnusedMedia[0] != "wave-lab/images/unused-art.png" {
		t.Errorf("UnusedMedia = %v", result.Diagnostics.UnusedMedia)
	}

	// The main module mentions the title key but never the reset key.
	if len(result.Diagnostics.UnusedStrings) != 1 ||
		result.Diagnostics.UnusedStrings[0] != "wave-lab.reset" {
		t.Errorf("UnusedStrings = %v", result.Diagnostics.UnusedStrings)
	}
}

func TestBundleMissingEntry(t *testing.T) {
	if _, err := Bundle(t.TempDir(), "wave-lab", nil); err == nil {
		t.Fatal("expected error for missing entry point, got nil")
	}
}

func TestBundleSyntaxError(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "wave-lab", "js")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wave-lab-main.js"), []byte("const = ;"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Bundle(root, "wave-lab", nil)
	if err == nil {
		t.Fatal("expected error for invalid source, got nil")
	}
	if !strings.Contains(err.Error(), "bundle failed") {
		t.Fatalf("error = %v, want wrapped ErrBundle", err)
	}
}
