package locale

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// Lays out a target repo plus babel translations under a temp root.
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

	write(filepath.Join(root, "wave-lab", "wave-lab-strings_en.json"),
		`{"wave-lab.title": {"value": "Wave Lab"}, "wave-lab.reset": {"value": "Reset"}}`)
	write(filepath.Join(root, "babel", "wave-lab", "wave-lab-strings_de.json"),
		`{"wave-lab.title": {"value": "Wellenlabor"}}`)
	write(filepath.Join(root, "babel", "wave-lab", "wave-lab-strings_fr.json"),
		`{"wave-lab.title": {"value": "Labo d'ondes"}}`)

	return root
}

func TestResolveAll(t *testing.T) {
	root := fixture(t)

	locales, err := Resolve(root, "wave-lab", "*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"en", "de", "fr"}; !reflect.DeepEqual(locales, want) {
		t.Fatalf("locales = %v, want %v", locales, want)
	}
}

func TestResolveExplicitSubset(t *testing.T) {
	root := fixture(t)

	locales, err := Resolve(root, "wave-lab", "fr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"en", "fr"}; !reflect.DeepEqual(locales, want) {
		t.Fatalf("locales = %v, want %v", locales, want)
	}
}

func TestResolveAlwaysIncludesFallback(t *testing.T) {
	root := fixture(t)

	locales, err := Resolve(root, "wave-lab", "de,fr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locales[0] != Fallback {
		t.Fatalf("locales[0] = %q, want %q", locales[0], Fallback)
	}
}

func TestResolveNoTranslations(t *testing.T) {
	root := t.TempDir()

	locales, err := Resolve(root, "wave-lab", "*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"en"}; !reflect.DeepEqual(locales, want) {
		t.Fatalf("locales = %v, want %v", locales, want)
	}
}

func TestLoad(t *testing.T) {
	root := fixture(t)

	tables, err := Load(root, "wave-lab", []string{"en", "de"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := tables["en"]["wave-lab.title"]; got != "Wave Lab" {
		t.Errorf("en title = %q, want Wave Lab", got)
	}
	if got := tables["de"]["wave-lab.title"]; got != "Wellenlabor" {
		t.Errorf("de title = %q, want Wellenlabor", got)
	}
}

func TestLoadMissingExplicitLocale(t *testing.T) {
	root := fixture(t)

	if _, err := Load(root, "wave-lab", []string{"en", "zz"}); err == nil {
		t.Fatal("expected error for missing translation file, got nil")
	}
}

func TestLookupFallsBack(t *testing.T) {
	root := fixture(t)

	tables, err := Load(root, "wave-lab", []string{"en", "de"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Translated key resolves in the requested locale.
	if got, ok := tables.Lookup("de", "wave-lab.title"); !ok || got != "Wellenlabor" {
		t.Fatalf("Lookup(de, title) = %q, %v", got, ok)
	}

	// Untranslated key falls back to the fallback locale.
	if got, ok := tables.Lookup("de", "wave-lab.reset"); !ok || got != "Reset" {
		t.Fatalf("Lookup(de, reset) = %q, %v", got, ok)
	}

	if _, ok := tables.Lookup("de", "wave-lab.absent"); ok {
		t.Fatal("Lookup of unknown key should report absence")
	}
}
