package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simfoundry/simpack/internal/assets"
	"github.com/simfoundry/simpack/internal/bundle"
	"github.com/simfoundry/simpack/internal/html"
	"github.com/simfoundry/simpack/internal/img"
	"github.com/simfoundry/simpack/internal/locale"
	"github.com/simfoundry/simpack/internal/minify"
	"github.com/simfoundry/simpack/internal/paths"
	"github.com/simfoundry/simpack/internal/project"
)

// Returned after a successful build.
type Result struct {
	BuildDir    string             // Directory holding the emitted artifacts.
	Artifacts   []string           // Artifact names relative to BuildDir, sorted.
	Diagnostics bundle.Diagnostics // What the bundle turned out not to need.
}

// Holds shared state for all stages of one build.
//
// Everything here is resolved before artifact composition begins and is
// immutable afterwards, which is what makes the per-artifact writes safe to
// run concurrently.
type pipeline struct {
	req Request

	meta         *project.Metadata
	manifestJSON []byte // Pretty manifest bytes, written once and embedded verbatim.
	licenses     map[string]license
	locales      []string
	strings      locale.Tables
	screenshot   string
	diagnostics  bundle.Diagnostics
	timestamp    string

	production string // Production code artifact.
	debug      string // Debug code artifact.
	frags      *assets.Fragments

	title    string
	banner   string
	buildDir string
}

// Executes a build request end-to-end.
//
// Stages run strictly in order: precondition checks, shared input
// resolution, code artifact derivation, asset fragment derivation, title
// validation, banner selection, output enumeration, and artifact writes.
// Only the final writes fan out concurrently. Any failure other than a
// missing optional asset aborts the whole build.
func Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	release, err := acquireLock(req.lockFile())
	if err != nil {
		return nil, err
	}
	defer release()

	slog.Info("building simulation",
		"target", req.Target,
		"brand", req.Brand,
		"locales", req.Locales,
		"compress", req.Compress,
	)

	p := &pipeline{req: req}

	stages := []func(context.Context) error{
		p.resolveInputs,
		p.deriveCode,
		p.deriveFragments,
		p.validateTitle,
		p.selectBanner,
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stage(ctx); err != nil {
			return nil, err
		}
	}

	targets := enumerateTargets(req, enumerationInputs{
		locales:       p.locales,
		accessibility: p.meta.Sim.Accessibility,
		hasScreenshot: p.screenshot != "",
	})

	if err := p.writeTargets(ctx, targets); err != nil {
		return nil, err
	}

	if req.Brand.Traits().Supplemental {
		if err := copySupplemental(req.Root, p.buildDir); err != nil {
			return nil, err
		}
	}
	if req.Precompress {
		if err := precompress(p.buildDir); err != nil {
			return nil, err
		}
	}

	p.reportDiagnostics()

	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.name
	}
	sort.Strings(names)

	slog.Info("build complete", "dir", p.buildDir, "artifacts", len(names))

	return &Result{
		BuildDir:    p.buildDir,
		Artifacts:   names,
		Diagnostics: p.diagnostics,
	}, nil
}

// Stage 1: resolve every build-wide input exactly once.
func (p *pipeline) resolveInputs(ctx context.Context) error {
	req := p.req
	slog.Info("resolving shared inputs", "target", req.Target)

	meta, err := project.Load(req.Root, req.Target)
	if err != nil {
		return err
	}
	p.meta = meta

	locales, err := locale.Resolve(req.Root, req.Target, req.Locales)
	if err != nil {
		return err
	}
	p.locales = locales

	tables, err := locale.Load(req.Root, req.Target, locales)
	if err != nil {
		return err
	}
	p.strings = tables

	manifest, err := project.CaptureManifest(req.Root, meta.Repos())
	if err != nil {
		return err
	}
	p.manifestJSON, err = manifest.MarshalPretty()
	if err != nil {
		return err
	}

	p.licenses, err = resolveLicenses(req.Root, meta.Sim.Preload)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(tables[locale.Fallback]))
	for key := range tables[locale.Fallback] {
		keys = append(keys, key)
	}
	bundled, err := bundle.Bundle(req.Root, req.Target, keys)
	if err != nil {
		return err
	}
	p.diagnostics = bundled.Diagnostics
	p.production = bundled.Code // Raw bundle; stage 2 replaces it when compressing.
	p.debug = bundled.Code

	p.screenshot = project.Screenshot(req.Root, req.Target)
	p.timestamp = req.now().UTC().Format(time.RFC3339)
	p.buildDir = paths.BuildDir(req.Root, req.Target, req.Brand.String())

	return nil
}

// Stage 2: derive the production and debug code artifacts. Exactly one of
// each exists per build.
func (p *pipeline) deriveCode(ctx context.Context) error {
	slog.Info("deriving code artifacts", "compress", p.req.Compress)

	raw := p.production

	if p.req.Compress {
		opts := minify.DefaultOptions()
		opts.Mangle = p.req.Mangle
		opts.TranspileFirst = true

		production, err := minify.Minify(raw, opts)
		if err != nil {
			return err
		}
		p.production = production
	}

	// The debug artifact only genuinely differs for brands whose table says
	// so; otherwise it is the raw bundle with nothing stripped.
	if p.req.Brand.Traits().DebugDiffers {
		debug, err := minify.Minify(raw, minify.Options{Mangle: true})
		if err != nil {
			return err
		}
		p.debug = debug
	}

	return nil
}

// Stage 3: derive splash, preload, and mipmap fragments.
func (p *pipeline) deriveFragments(ctx context.Context) error {
	frags, err := assets.Embed(p.req.Root, p.meta, p.req.Brand, p.req.Compress, p.req.Mangle)
	if err != nil {
		return err
	}
	p.frags = frags
	return nil
}

// Stage 4: the fallback string table must hold the target's title.
func (p *pipeline) validateTitle(ctx context.Context) error {
	key := p.meta.TitleKey()
	title, ok := p.strings[locale.Fallback][key]
	if !ok || title == "" {
		return fmt.Errorf("%w: %q has no %q entry for locale %q",
			ErrMissingTitle, p.req.Target, key, locale.Fallback)
	}
	p.title = title
	return nil
}

// Stage 5: pick the header banner by brand.
func (p *pipeline) selectBanner(ctx context.Context) error {
	p.banner = banner(p.req.Brand, p.title, p.meta.Version, p.req.now().UTC().Year())
	return nil
}

// Stage 7: compose and write every enumerated artifact.
//
// Targets read only immutable pipeline state and write distinct paths, so
// they run concurrently. The first failure cancels the rest and fails the
// build.
func (p *pipeline) writeTargets(ctx context.Context, targets []outputTarget) error {
	if err := os.MkdirAll(p.buildDir, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}

	g, _ := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			return p.produce(target)
		})
	}
	return g.Wait()
}

// Produces a single output target.
func (p *pipeline) produce(target outputTarget) error {
	path := filepath.Join(p.buildDir, filepath.FromSlash(target.name))
	slog.Debug("writing artifact", "name", target.name)

	switch target.kind {
	case kindSim:
		doc, err := p.compose(target, false)
		if err != nil {
			return err
		}
		return p.writeArtifact(path, []byte(doc))

	case kindEpub:
		doc, err := p.compose(target, true)
		if err != nil {
			return err
		}
		return p.writeArtifact(path, []byte(doc))

	case kindManifest:
		return p.writeArtifact(path, p.manifestJSON)

	case kindIframe:
		return p.writeArtifact(path, []byte(html.IframeWrapper(p.title, target.src)))

	case kindA11yView:
		return p.writeArtifact(path, []byte(html.AccessibilityViewer(p.title, target.src)))

	case kindThumbnail:
		return img.Resize(p.screenshot, path, target.width, target.height)

	case kindSocialCard:
		return img.SocialCard(p.screenshot, path, target.width, target.height)
	}

	return fmt.Errorf("unhandled output target %q", target.name)
}

// Writes one artifact, creating parent directories as needed.
func (p *pipeline) writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}
	if err := os.WriteFile(path, data, paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}
	return nil
}

// Logs what the bundle never referenced. Informational only.
func (p *pipeline) reportDiagnostics() {
	for _, media := range p.diagnostics.UnusedMedia {
		slog.Warn("unused media file", "path", media)
	}
	for _, key := range p.diagnostics.UnusedStrings {
		slog.Warn("unused string key", "key", key)
	}
}
