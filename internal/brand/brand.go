// Package brand enumerates the distribution variants a simulation can be
// packaged under and the per-variant behavior table the build pipeline
// consults.
package brand

import (
	"errors"
	"fmt"
)

var ErrUnknown = errors.New("unknown brand")

// A distribution variant. Controls the license banner, debug-feature
// stripping, and which artifacts a build emits.
type Brand string

const (
	// The open, attribution-licensed default variant.
	Default Brand = "phet"

	// The proprietary variant with instrumentation support. Requires the
	// phet-io sibling repo and only ever emits combined and debug artifacts.
	Restricted Brand = "phet-io"
)

// All valid brands, in documentation order.
var All = []Brand{Default, Restricted}

// Per-brand behavior, consulted once during output enumeration rather than
// branched on ad hoc.
type Traits struct {
	PerLocale         bool // Emits one artifact per resolved locale.
	CombinedByDefault bool // Emits the combined-locales artifact without being asked.
	DebugDiffers      bool // Debug code is derived separately from production code.
	Supplemental      bool // Runs the supplemental-files copy step after the build.
}

var traits = map[Brand]Traits{
	Default:    {PerLocale: true},
	Restricted: {CombinedByDefault: true, DebugDiffers: true, Supplemental: true},
}

// Parses a brand name.
func Parse(s string) (Brand, error) {
	b := Brand(s)
	if _, ok := traits[b]; !ok {
		return "", fmt.Errorf("%w: %q (valid: %v)", ErrUnknown, s, All)
	}
	return b, nil
}

// Returns the behavior table entry for this brand.
func (b Brand) Traits() Traits {
	return traits[b]
}

func (b Brand) String() string {
	return string(b)
}
