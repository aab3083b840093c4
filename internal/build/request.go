package build

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/simfoundry/simpack/internal/brand"
	"github.com/simfoundry/simpack/internal/paths"
)

// Describes one build. Immutable for the duration of the run.
type Request struct {
	Root   string      // Projects root holding the target and its sibling repos.
	Target string      // Repository name of the simulation to build.
	Brand  brand.Brand // Distribution variant.

	Locales string // "*" or a comma-separated list of locale codes.

	Compress   bool // Compress the production code artifact and preloads.
	Mangle     bool // Shorten identifiers during compression.
	Instrument bool // Record instrumentation support in the artifact metadata.
	Combined   bool // Emit the combined-locales artifact even for brands that do not by default.

	Precompress bool // Write brotli-compressed copies of emitted artifacts.

	// Clock for the embedded build timestamp and banner year. Defaults to
	// time.Now; injectable so repeated builds can be byte-identical.
	Now func() time.Time

	// Overrides the cross-process build lock location. Defaults to the
	// XDG runtime directory.
	LockFile string
}

// Checks the request's preconditions. Runs before any transformation work.
func (r Request) validate() error {
	if strings.TrimSpace(r.Target) == "" {
		return fmt.Errorf("%w: target must be a non-empty repository name", ErrPrecondition)
	}
	if strings.ContainsAny(r.Target, "/\\") || r.Target == "." || r.Target == ".." {
		return fmt.Errorf("%w: target %q is not a repository name", ErrPrecondition, r.Target)
	}

	if _, err := brand.Parse(string(r.Brand)); err != nil {
		return fmt.Errorf("%w: %v", ErrPrecondition, err)
	}

	if r.Brand == brand.Restricted {
		dir := paths.RestrictedDir(r.Root)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf(
				"%w: the %s brand requires the %s sibling repo at %s; check it out or build a different brand",
				ErrPrecondition, brand.Restricted, brand.Restricted, dir)
		}
	}

	return nil
}

func (r Request) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r Request) lockFile() string {
	if r.LockFile != "" {
		return r.LockFile
	}
	return paths.LockFile()
}
