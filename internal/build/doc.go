// Package build orchestrates packaging a simulation into its distributable
// artifacts.
//
// A build is a strictly ordered pipeline: shared inputs (module bundle,
// dependency manifest, string tables, preload and mipmap assets) are resolved
// once, exactly one production and one debug code artifact are derived, and
// the set of output artifacts for the requested brand is enumerated from a
// per-brand behavior table and written to the target's build directory.
// Artifact writes are mutually independent and run concurrently; everything
// before them is sequential because each stage consumes the previous stage's
// outputs.
//
// Precondition and missing-title failures abort before any file is written.
// A transform or bundler failure aborts the whole build; already-written
// files are not retracted, but the run fails. Only missing optional assets
// (such as a screenshot) skip their dependent outputs.
//
// Example usage:
//
//	result, err := build.Run(ctx, build.Request{
//	    Root:     ".",
//	    Target:   "wave-lab",
//	    Brand:    brand.Default,
//	    Locales:  "*",
//	    Compress: true,
//	    Mangle:   true,
//	    Combined: true,
//	})
//	if err != nil {
//	    return err
//	}
package build
