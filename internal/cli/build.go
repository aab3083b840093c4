package cli

import (
	"context"
	"log/slog"

	"github.com/simfoundry/simpack/internal/brand"
	"github.com/simfoundry/simpack/internal/build"
)

// Represents the 'simpack build' command.
type BuildCmd struct {
	Target string `arg:"" help:"Simulation repository to build."`

	Root    string `short:"r" default:"." help:"Projects root holding the target and its sibling repos." placeholder:"DIR"`
	Brand   string `default:"phet" help:"Distribution variant (${enum})." enum:"phet,phet-io"`
	Locales string `default:"*" help:"\"*\" or a comma-separated list of locale codes."`

	Compress    bool `default:"true" negatable:"" help:"Compress the production code artifact and preloads."`
	Mangle      bool `default:"true" negatable:"" help:"Shorten identifiers during compression."`
	Instrument  bool `help:"Record instrumentation support in the artifact metadata."`
	Combined    bool `help:"Emit the combined-locales artifact."`
	Precompress bool `help:"Write brotli-compressed copies of emitted artifacts."`
}

// Executes the build command.
func (c *BuildCmd) Run(ctx context.Context) error {
	b, err := brand.Parse(c.Brand)
	if err != nil {
		return err
	}

	result, err := build.Run(ctx, build.Request{
		Root:        c.Root,
		Target:      c.Target,
		Brand:       b,
		Locales:     c.Locales,
		Compress:    c.Compress,
		Mangle:      c.Mangle,
		Instrument:  c.Instrument,
		Combined:    c.Combined,
		Precompress: c.Precompress,
	})
	if err != nil {
		return err
	}

	for _, name := range result.Artifacts {
		slog.Debug("artifact", "name", name)
	}
	slog.Info("wrote artifacts", "dir", result.BuildDir, "count", len(result.Artifacts))
	return nil
}
