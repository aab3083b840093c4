package build

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/simfoundry/simpack/internal/paths"
)

// Copies the restricted brand's supplemental files into the build directory.
//
// Runs after every artifact has been written. The supplemental tree lives
// under the restricted sibling repo; relative layout is preserved. A missing
// supplemental directory is not an error, only its absence of outputs.
func copySupplemental(root, buildDir string) error {
	src := filepath.Join(paths.RestrictedDir(root), "supplemental")

	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrFileSystemOperation, src)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
		}
		dest := filepath.Join(buildDir, rel)

		if d.IsDir() {
			if err := os.MkdirAll(dest, paths.DefaultDirMode); err != nil {
				return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
			}
			return nil
		}

		slog.Debug("supplemental copy", "src", path, "dest", dest)
		return copyFile(path, dest)
	})
}

// Copies one regular file, creating the destination parent if needed.
func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, paths.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}
	return nil
}
