package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simfoundry/simpack/internal/paths"
)

// Takes the cross-process build lock.
//
// The module bundler mutates process-adjacent state while resolving certain
// asset types, so two builds must never overlap. The lock is an exclusively
// created file holding the owner's PID; the returned release func removes it.
func acquireLock(path string) (release func(), err error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, paths.DefaultFileMode)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: lock file %s exists; remove it if no build is running", ErrLocked, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}

	return func() { os.Remove(path) }, nil
}
