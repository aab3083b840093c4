// Package minify compresses simulation code for distribution.
//
// Compression composes the transpiler (optionally), esbuild's compressor and
// identifier mangler, and a textual post-fix, in that fixed order. Assertion
// and logging globals can be statically bound to false so their guarded
// bodies are eliminated as dead code. The result is deterministic for a
// given input and option set.
package minify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/simfoundry/simpack/internal/transpile"
)

var ErrMinify = errors.New("minify failed")

// Global names statically bound to false when stripping is requested.
// Binding them to a constant lets the compressor drop every guarded block.
var (
	assertionGlobals = []string{"assert", "assertSlow"}
	loggingGlobals   = []string{"sceneryLog"}
)

// Controls a single compression pass.
type Options struct {
	Mangle          bool // Shorten local identifiers.
	TranspileFirst  bool // Run the transpiler on the input before compressing.
	StripAssertions bool // Bind assertion globals to false for dead-code elimination.
	StripLogging    bool // Same treatment for diagnostic-logging globals.
}

// Returns the standard production option set.
func DefaultOptions() Options {
	return Options{
		Mangle:          true,
		StripAssertions: true,
		StripLogging:    true,
	}
}

// Compresses a code string.
//
// Processing order is fixed: transpile (if requested), compress, mangle (if
// requested), then the control-character post-fix. A compressor error is
// fatal and carries the underlying message; there is no fallback to
// uncompressed output.
func Minify(code string, opts Options) (string, error) {
	if opts.TranspileFirst {
		lowered, err := transpile.Transform(code)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMinify, err)
		}
		code = lowered
	}

	result := api.Transform(code, transformOptions(opts))
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMinify, result.Errors[0].Text)
	}

	return postfix(string(result.Code)), nil
}

// Maps an option set onto a single esbuild transform configuration.
func transformOptions(opts Options) api.TransformOptions {
	transform := api.TransformOptions{
		Loader:           api.LoaderJS,
		MinifyWhitespace: true,
		MinifySyntax:     true,
		Define:           map[string]string{},
	}

	if opts.Mangle {
		transform.MinifyIdentifiers = true
		// Mangling must not reintroduce the Safari 10 block-scoping bug, so
		// the compressor keeps that engine in its target set.
		transform.Engines = []api.Engine{{Name: api.EngineSafari, Version: "10"}}
	}

	if opts.StripAssertions {
		for _, name := range assertionGlobals {
			transform.Define[name] = "false"
		}
	}
	if opts.StripLogging {
		for _, name := range loggingGlobals {
			transform.Define[name] = "false"
		}
	}

	return transform
}

// Escapes the vertical-tab character the compressor emits raw.
//
// Browsers and the packaging step both choke on the literal character, so it
// is rewritten to its escaped form after compression.
func postfix(code string) string {
	return strings.ReplaceAll(code, "\x0B", `\x0B`)
}
