// Package bundle turns a simulation's module graph into a single code blob.
//
// The bundler also reports which media files and string keys the bundle never
// references. Those diagnostics are part of the bundler's return value rather
// than ambient process state, so concurrent or repeated builds cannot observe
// each other's results.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

var ErrBundle = errors.New("bundle failed")

// Directories scanned for media referenced by the module graph.
var mediaDirs = []string{"images", "sounds"}

// Output of one bundling pass.
type Result struct {
	Code        string
	Diagnostics Diagnostics
}

// What the bundle turned out not to need. Informational; never fatal.
type Diagnostics struct {
	UnusedMedia   []string
	UnusedStrings []string
}

// Bundles the target's module graph into one immediately-invoked script.
//
// The entry point is js/<target>-main.js inside the target repo. Media
// imports are inlined as data URLs. stringKeys are the keys of the fallback
// string table; keys the emitted code never mentions are reported as unused.
// Any bundler error is fatal and carries the underlying message.
func Bundle(root, target string, stringKeys []string) (*Result, error) {
	entry := filepath.Join(root, target, "js", target+"-main.js")

	result := api.Build(api.BuildOptions{
		EntryPoints: []string{entry},
		Bundle:      true,
		Write:       false,
		Metafile:    true,
		Format:      api.FormatIIFE,
		Platform:    api.PlatformBrowser,
		LogLevel:    api.LogLevelSilent,
		Loader: map[string]api.Loader{
			".png": api.LoaderDataURL,
			".jpg": api.LoaderDataURL,
			".svg": api.LoaderDataURL,
			".mp3": api.LoaderDataURL,
			".wav": api.LoaderDataURL,
		},
	})
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBundle, messageText(result.Errors[0]))
	}
	if len(result.OutputFiles) == 0 {
		return nil, fmt.Errorf("%w: bundler produced no output", ErrBundle)
	}

	code := string(result.OutputFiles[0].Contents)

	unusedMedia, err := unusedMedia(root, target, result.Metafile)
	if err != nil {
		return nil, err
	}

	return &Result{
		Code: code,
		Diagnostics: Diagnostics{
			UnusedMedia:   unusedMedia,
			UnusedStrings: unusedStrings(code, stringKeys),
		},
	}, nil
}

// Lists media files under the target repo that the bundle never imported.
//
// The metafile's input set is the ground truth for what the bundler read.
func unusedMedia(root, target, metafile string) ([]string, error) {
	var meta struct {
		Inputs map[string]struct{} `json:"inputs"`
	}
	if err := json.Unmarshal([]byte(metafile), &meta); err != nil {
		return nil, fmt.Errorf("%w: metafile: %v", ErrBundle, err)
	}

	used := make(map[string]bool, len(meta.Inputs))
	for path := range meta.Inputs {
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		used[abs] = true
	}

	var unused []string
	for _, dir := range mediaDirs {
		mediaRoot := filepath.Join(root, target, dir)
		err := filepath.WalkDir(mediaRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil // Missing media dirs are fine.
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if !used[abs] {
				rel, _ := filepath.Rel(root, path)
				unused = append(unused, filepath.ToSlash(rel))
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", ErrBundle, err)
		}
	}
	sort.Strings(unused)
	return unused, nil
}

// Lists string keys the bundled code never mentions.
func unusedStrings(code string, keys []string) []string {
	var unused []string
	for _, key := range keys {
		if !strings.Contains(code, key) {
			unused = append(unused, key)
		}
	}
	sort.Strings(unused)
	return unused
}

func messageText(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s (%s:%d)", msg.Text, msg.Location.File, msg.Location.Line)
}
