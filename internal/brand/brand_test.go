package brand

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	for _, b := range All {
		parsed, err := Parse(string(b))
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", b, err)
		}
		if parsed != b {
			t.Fatalf("Parse(%q) = %q", b, parsed)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("adapted-from-phet")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrUnknown) {
		t.Fatalf("error = %v, want ErrUnknown", err)
	}
}

func TestTraits(t *testing.T) {
	if tr := Default.Traits(); !tr.PerLocale || tr.CombinedByDefault || tr.DebugDiffers || tr.Supplemental {
		t.Fatalf("Default traits = %+v", tr)
	}
	if tr := Restricted.Traits(); tr.PerLocale || !tr.CombinedByDefault || !tr.DebugDiffers || !tr.Supplemental {
		t.Fatalf("Restricted traits = %+v", tr)
	}
}
