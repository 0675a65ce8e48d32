// Package pipeline wires one run: validate configuration, collect the
// source tree, pick the transform backend, execute the placer loop, and
// report.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/quangtn/mediaprep/internal/config"
	"github.com/quangtn/mediaprep/internal/ports"
	"github.com/quangtn/mediaprep/internal/ports/adapters/ffmpeg"
	"github.com/quangtn/mediaprep/internal/ports/adapters/imagefile"
	"github.com/quangtn/mediaprep/internal/ports/adapters/mjpegavi"
	"github.com/quangtn/mediaprep/internal/report"
	"github.com/quangtn/mediaprep/internal/scan"
	"github.com/quangtn/mediaprep/internal/types"
	"github.com/quangtn/mediaprep/internal/usecase"
)

// ManifestName is the split manifest written under the output root after
// non-dry runs.
const ManifestName = "manifest.json"

// Run executes one full normalize-and-split run. Fatal errors are limited
// to pre-flight validation (missing source root, invalid ratios) and
// manifest write failures; item transform failures only show up in the
// counters and the log.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.With(slog.String("run_id", uuid.NewString()[:8]))

	manifest, err := scan.Collect(cfg.SrcRoot, scan.ExtsFor(cfg.Kind))
	if err != nil {
		return err
	}
	total := manifest.Total()
	log.Info("collected source tree",
		slog.Int("items", total),
		slog.Int("classes", len(manifest.Classes)),
		slog.String("kind", string(cfg.Kind)),
	)

	deps := usecase.Deps{Logger: log}
	var backend string
	if cfg.Kind == types.KindVideos {
		deps.Video = selectVideoBackend(ctx, cfg.Env.FFmpegPath, log)
		backend = deps.Video.Name()
	} else {
		deps.Image = imagefile.New()
		backend = "imagefile"
	}
	log.Info("backend selected", slog.String("backend", backend))

	if bar := newProgressBar(cfg, total); bar != nil {
		deps.Progress = func(n int) { _ = bar.Add(n) }
		defer func() {
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
		}()
	}

	res, err := usecase.New(deps).Run(ctx, usecase.Input{
		Kind:       cfg.Kind,
		Manifest:   manifest,
		OutputRoot: cfg.OutputRoot,
		Ratios:     cfg.Ratios,
		Seed:       cfg.Seed,
		DryRun:     cfg.DryRun,
		Image: usecase.ImageParams{
			Width:   cfg.Image.Width,
			Height:  cfg.Image.Height,
			Quality: cfg.Image.Quality,
		},
		Video: usecase.VideoParams{
			FPS:    cfg.Video.FPS,
			Width:  cfg.Video.Width,
			Height: cfg.Video.Height,
		},
	})
	if err != nil {
		return err
	}

	if !cfg.DryRun {
		if err := writeRunManifest(cfg, backend, res); err != nil {
			return err
		}
	}

	summary := report.Summary{
		Kind:      cfg.Kind,
		Backend:   backend,
		Classes:   res.Classes,
		Planned:   res.Planned,
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		DryRun:    cfg.DryRun,
	}
	if cfg.Kind == types.KindImages {
		summary.ExamplePath = filepath.Join(cfg.OutputRoot, string(types.SplitTrain), string(types.KindImages))
	}
	fmt.Fprint(stdout, summary.Render())
	return nil
}

// selectVideoBackend probes ffmpeg exactly once. The choice holds for the
// whole run: a later per-file ffmpeg error is an item failure, not a
// fallback trigger.
func selectVideoBackend(ctx context.Context, ffmpegPath string, log *slog.Logger) ports.VideoReencoder {
	primary := ffmpeg.New(ffmpegPath)
	if err := primary.Probe(ctx); err != nil {
		log.Warn("ffmpeg unavailable, using in-process MJPEG fallback", slog.Any("error", err))
		return mjpegavi.New()
	}
	return primary
}

func newProgressBar(cfg config.Config, total int) *progressbar.ProgressBar {
	if cfg.DryRun || total == 0 || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(string(cfg.Kind)),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func writeRunManifest(cfg config.Config, backend string, res usecase.Result) error {
	rm := types.RunManifest{
		Kind:    cfg.Kind,
		Seed:    cfg.Seed,
		Ratios:  cfg.Ratios,
		Backend: backend,
		Splits:  make(map[string]map[string][]string),
	}
	for _, name := range types.SplitOrder {
		rm.Splits[string(name)] = make(map[string][]string)
	}
	for _, e := range res.Entries {
		byClass := rm.Splits[string(e.Split)]
		byClass[e.Class] = append(byClass[e.Class], filepath.Base(e.Source))
	}

	if err := os.MkdirAll(cfg.OutputRoot, 0o755); err != nil {
		return fmt.Errorf("mkdir output root: %w", err)
	}
	b, err := json.MarshalIndent(rm, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(cfg.OutputRoot, ManifestName), b, 0o644)
}

// ensure adapters implement ports
var (
	_ ports.VideoReencoder   = (*ffmpeg.Adapter)(nil)
	_ ports.VideoReencoder   = (*mjpegavi.Adapter)(nil)
	_ ports.ImageTransformer = (*imagefile.Transformer)(nil)
)
