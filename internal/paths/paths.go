package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "simpack"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory for runtime files (locks, PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/simpack or /run/user/<uid>/simpack
//	macOS:   ~/Library/Caches/simpack/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, toolName)
	}
	return filepath.Join(xdg.CacheHome, toolName, "run")
}

// Path to the lock file that serializes builds across processes.
func LockFile() string {
	return filepath.Join(Runtime(), "build.lock")
}

// Output directory for one target and brand.
func BuildDir(root, target, brandName string) string {
	return filepath.Join(root, target, "build", brandName)
}

// Directory holding the restricted brand's dependency, which must exist as a
// sibling of the target repos before a restricted build may start.
func RestrictedDir(root string) string {
	return filepath.Join(root, "phet-io")
}
