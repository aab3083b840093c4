package build

import (
	"fmt"

	"github.com/simfoundry/simpack/internal/brand"
	"github.com/simfoundry/simpack/internal/locale"
)

// What an output target is, beyond a composed simulation document.
type targetKind int

const (
	kindSim        targetKind = iota // Composed HTML artifact.
	kindEpub                         // XHTML packaging under xhtml/.
	kindManifest                     // Standalone dependencies.json.
	kindIframe                       // Iframe test wrapper.
	kindA11yView                     // Accessibility viewer.
	kindThumbnail                    // Scaled screenshot.
	kindSocialCard                   // Social-media card.
)

// One artifact to emit. Name is relative to the brand's build directory.
type outputTarget struct {
	kind   targetKind
	name   string
	locale string // Locale baked into the artifact, or "all".
	debug  bool   // Uses the debug code artifact and debug preloads.
	src    string // Artifact an iframe or viewer points at.
	width  int
	height int
}

// Facts the enumeration depends on besides the request itself.
type enumerationInputs struct {
	locales       []string
	accessibility bool
	hasScreenshot bool
}

// Fixed thumbnail and social-card dimensions.
const (
	thumbSmallW, thumbSmallH = 128, 84
	thumbLargeW, thumbLargeH = 600, 394
	socialCardW, socialCardH = 800, 418
)

// Enumerates every artifact this build emits.
//
// The brand's behavior table is consulted here, once; nothing downstream
// branches on the brand again. The returned order is stable but carries no
// meaning: targets are mutually independent.
func enumerateTargets(req Request, in enumerationInputs) []outputTarget {
	traits := req.Brand.Traits()
	combined := req.Combined || traits.CombinedByDefault

	var targets []outputTarget

	// Per-locale artifacts, never for the restricted brand.
	if traits.PerLocale {
		for _, code := range in.locales {
			targets = append(targets, outputTarget{
				kind:   kindSim,
				name:   fmt.Sprintf("%s_%s_%s.html", req.Target, code, req.Brand),
				locale: code,
			})
		}
	}

	if combined {
		targets = append(targets, outputTarget{
			kind:   kindSim,
			name:   fmt.Sprintf("%s_all_%s.html", req.Target, req.Brand),
			locale: "all",
		})
	}

	// The all-locales debug artifact exists unconditionally.
	targets = append(targets, outputTarget{
		kind:   kindSim,
		name:   fmt.Sprintf("%s_all_%s_debug.html", req.Target, req.Brand),
		locale: "all",
		debug:  true,
	})

	targets = append(targets,
		outputTarget{
			kind:   kindEpub,
			name:   fmt.Sprintf("xhtml/%s_all_%s.xhtml", req.Target, req.Brand),
			locale: "all",
		},
		outputTarget{kind: kindManifest, name: "dependencies.json"},
	)

	if req.Brand == brand.Default && traits.PerLocale && contains(in.locales, locale.Fallback) {
		targets = append(targets, outputTarget{
			kind:   kindIframe,
			name:   fmt.Sprintf("%s_%s_iframe_phet.html", req.Target, locale.Fallback),
			locale: locale.Fallback,
			src:    fmt.Sprintf("%s_%s_%s.html", req.Target, locale.Fallback, req.Brand),
		})
		if req.Combined {
			targets = append(targets, outputTarget{
				kind:   kindIframe,
				name:   fmt.Sprintf("%s_all_iframe_phet.html", req.Target),
				locale: "all",
				src:    fmt.Sprintf("%s_all_%s.html", req.Target, req.Brand),
			})
		}
	}

	if in.accessibility && req.Brand == brand.Default {
		targets = append(targets, outputTarget{
			kind: kindA11yView,
			name: fmt.Sprintf("%s_a11y_view.html", req.Target),
			src:  fmt.Sprintf("%s_%s_%s.html", req.Target, locale.Fallback, req.Brand),
		})
	}

	if in.hasScreenshot {
		targets = append(targets,
			outputTarget{kind: kindThumbnail, name: req.Target + "-128.png", width: thumbSmallW, height: thumbSmallH},
			outputTarget{kind: kindThumbnail, name: req.Target + "-600.png", width: thumbLargeW, height: thumbLargeH},
		)
		if req.Brand == brand.Default {
			targets = append(targets, outputTarget{
				kind:   kindSocialCard,
				name:   req.Target + "-twitter-card.png",
				width:  socialCardW,
				height: socialCardH,
			})
		}
	}

	return targets
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
