// Package usecase runs the plan-then-place loop: split every class, compute
// destination paths, dispatch transforms, and keep per-split counters.
package usecase

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/quangtn/mediaprep/internal/ports"
	"github.com/quangtn/mediaprep/internal/split"
	"github.com/quangtn/mediaprep/internal/types"
)

// Deps are the injected collaborators. Exactly one of Image/Video is used
// per run, decided by Input.Kind; the video backend is already selected
// (primary or fallback) before the usecase ever sees it.
type Deps struct {
	Image  ports.ImageTransformer
	Video  ports.VideoReencoder
	Logger *slog.Logger
	// Progress, when set, is ticked once per processed item (not in dry runs).
	Progress func(n int)
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return Usecase{d: d}
}

type ImageParams struct {
	Width   int
	Height  int
	Quality int
}

type VideoParams struct {
	FPS    int
	Width  int
	Height int
}

type Input struct {
	Kind       types.Kind
	Manifest   types.Manifest
	OutputRoot string
	Ratios     [3]float64
	Seed       int64
	DryRun     bool
	Image      ImageParams
	Video      VideoParams
}

// Result reports planned counts (what the partition assigned, counted even
// in dry runs) separately from succeeded/failed (what the transforms did).
// Conflating the two would hide failures behind healthy-looking totals.
type Result struct {
	Planned   types.Counts
	Succeeded types.Counts
	Failed    types.Counts
	Classes   int
	Entries   []types.PlanEntry
}

// DestPath is the pure destination function:
// outputRoot/<split>/<kind>/<classLabel>/<filename>.
func DestPath(outputRoot string, s types.SplitName, kind types.Kind, label, filename string) string {
	return filepath.Join(outputRoot, string(s), string(kind), filepath.FromSlash(label), filename)
}

// Run processes every class sequentially. Item transform failures are
// logged and recorded but never abort the batch; only an invalid ratio
// configuration (checked before any item is touched) is fatal.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	if err := split.ValidateRatios(in.Ratios); err != nil {
		return Result{}, err
	}

	var res Result
	res.Classes = len(in.Manifest.Classes)

	for _, class := range in.Manifest.Classes {
		train, val, test, err := split.Three(class.Files, in.Ratios, in.Seed)
		if err != nil {
			return Result{}, err
		}
		parts := []struct {
			name  types.SplitName
			items []string
		}{
			{types.SplitTrain, train},
			{types.SplitVal, val},
			{types.SplitTest, test},
		}
		for _, part := range parts {
			for _, src := range part.items {
				entry := types.PlanEntry{
					Class:  class.Label,
					Split:  part.name,
					Source: src,
					Dest:   DestPath(in.OutputRoot, part.name, in.Kind, class.Label, filepath.Base(src)),
				}
				res.Planned.Add(part.name)

				if in.DryRun {
					entry.Outcome = types.OutcomeSkipped
					res.Entries = append(res.Entries, entry)
					continue
				}

				if err := u.transform(ctx, entry.Source, entry.Dest, in); err != nil {
					u.d.Logger.Warn("transform failed",
						slog.String("source", entry.Source),
						slog.Any("error", err),
					)
					entry.Outcome = types.OutcomeFailed
					entry.Err = err.Error()
					res.Failed.Add(part.name)
				} else {
					entry.Outcome = types.OutcomeSuccess
					res.Succeeded.Add(part.name)
				}
				if u.d.Progress != nil {
					u.d.Progress(1)
				}
				res.Entries = append(res.Entries, entry)
			}
		}
	}
	return res, nil
}

func (u Usecase) transform(ctx context.Context, src, dst string, in Input) error {
	if in.Kind == types.KindVideos {
		return u.d.Video.Reencode(ctx, src, dst, in.Video.FPS, in.Video.Width, in.Video.Height)
	}
	return u.d.Image.ResizeAndSave(ctx, src, dst, in.Image.Width, in.Image.Height, in.Image.Quality)
}
