package build

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"

	"github.com/simfoundry/simpack/internal/paths"
)

// Extensions worth precompressing. Binary outputs (PNGs) are skipped.
var precompressExts = map[string]bool{
	".html":  true,
	".xhtml": true,
	".json":  true,
}

// Writes a brotli-compressed sibling (<name>.br) for each text artifact in
// the build directory. Originals are kept; servers that negotiate
// content-encoding pick up the .br copies.
func precompress(buildDir string) error {
	return filepath.WalkDir(buildDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
		}
		if d.IsDir() || !precompressExts[filepath.Ext(path)] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
		}

		out, err := os.OpenFile(path+".br", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, paths.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
		}

		w := brotli.NewWriterLevel(out, brotli.BestCompression)
		if _, err := w.Write(data); err != nil {
			out.Close()
			return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
		}
		if err := w.Close(); err != nil {
			out.Close()
			return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
		}

		slog.Debug("precompressed", "artifact", d.Name())
		return nil
	})
}
