// Package assets resolves the auxiliary script fragments embedded ahead of
// the main code artifact: the brand splash script, the preload libraries the
// simulation declares, and the mipmap image data.
//
// Splash and preloads are resolved into parallel production and debug
// renderings. Mipmap data is shared between flavors. Resolution is a pure
// read-and-transform step invoked once per build; nothing here holds state.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/simfoundry/simpack/internal/brand"
	"github.com/simfoundry/simpack/internal/minify"
	"github.com/simfoundry/simpack/internal/project"
)

var ErrAssets = errors.New("asset resolution failed")

// Script fragments for one build, split by flavor where the flavors differ.
type Fragments struct {
	SplashProduction string
	SplashDebug      string

	// Preload fragments in declaration order, parallel slices.
	Production []string
	Debug      []string

	// Mipmap fragment, shared between flavors.
	Mipmaps string
}

// Resolves splash, preload, and mipmap fragments for a build.
//
// Production fragments are individually compressed when compression is
// requested. Debug fragments keep assertions and logging: for the restricted
// brand they are compressed with stripping disabled, for every other brand
// they are the raw sources.
func Embed(root string, meta *project.Metadata, b brand.Brand, compress, mangle bool) (*Fragments, error) {
	splash, err := os.ReadFile(filepath.Join(root, "brand", b.String(), "splash.js"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssets, err)
	}

	sources := []string{string(splash)}
	for _, rel := range meta.Sim.Preload {
		path := filepath.Join(root, meta.Name, filepath.FromSlash(rel))
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: preload %s: %v", ErrAssets, rel, err)
		}
		sources = append(sources, string(data))
	}

	production, err := renderProduction(sources, compress, mangle)
	if err != nil {
		return nil, err
	}
	debug, err := renderDebug(sources, b)
	if err != nil {
		return nil, err
	}

	mipmaps, err := mipmapFragment(root, meta.Name)
	if err != nil {
		return nil, err
	}

	return &Fragments{
		SplashProduction: production[0],
		SplashDebug:      debug[0],
		Production:       production[1:],
		Debug:            debug[1:],
		Mipmaps:          mipmaps,
	}, nil
}

// Compresses each source independently for the production flavor.
func renderProduction(sources []string, compress, mangle bool) ([]string, error) {
	if !compress {
		return append([]string(nil), sources...), nil
	}

	opts := minify.DefaultOptions()
	opts.Mangle = mangle

	out := make([]string, len(sources))
	for i, src := range sources {
		code, err := minify.Minify(src, opts)
		if err != nil {
			return nil, err
		}
		out[i] = code
	}
	return out, nil
}

// Renders the debug flavor. Only the restricted brand compresses debug
// fragments; stripping stays off so assertions and logging survive.
func renderDebug(sources []string, b brand.Brand) ([]string, error) {
	if b != brand.Restricted {
		return append([]string(nil), sources...), nil
	}

	opts := minify.Options{Mangle: true}

	out := make([]string, len(sources))
	for i, src := range sources {
		code, err := minify.Minify(src, opts)
		if err != nil {
			return nil, err
		}
		out[i] = code
	}
	return out, nil
}

// Builds the shared mipmap script from the target's mipmap level files.
//
// Each mipmaps/<name>.json file holds pre-rendered level data. A target with
// no mipmap directory gets an empty table; the fragment always exists so the
// script order is identical across targets.
func mipmapFragment(root, target string) (string, error) {
	pattern := filepath.Join(root, target, "mipmaps", "*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssets, err)
	}
	sort.Strings(matches)

	levels := make(map[string]json.RawMessage, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrAssets, err)
		}
		if !json.Valid(data) {
			return "", fmt.Errorf("%w: %s is not valid JSON", ErrAssets, path)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		levels[name] = json.RawMessage(data)
	}

	encoded, err := json.Marshal(levels)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssets, err)
	}
	return fmt.Sprintf("window.simEnv.mipmaps = %s;", encoded), nil
}
