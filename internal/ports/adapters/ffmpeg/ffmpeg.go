// Package ffmpeg drives an external ffmpeg process, the primary video
// backend.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

type Adapter struct {
	bin string
}

func New(bin string) *Adapter {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &Adapter{bin: bin}
}

func (a *Adapter) Name() string { return "ffmpeg" }

// Probe checks once, at startup, that the ffmpeg binary is reachable. The
// result is a run-wide decision: a later per-file ffmpeg failure is an item
// failure, not a reason to switch backends.
func (a *Adapter) Probe(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, a.bin, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg probe: %w", err)
	}
	return nil
}

// Reencode scales the source into the target box preserving aspect ratio,
// pads symmetrically to exactly width x height, resamples to fps, and
// encodes with a fixed x264 CRF / AAC profile, overwriting the destination.
func (a *Adapter) Reencode(ctx context.Context, src, dst string, fps, width, height int) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir destination: %w", err)
	}
	cmd := exec.CommandContext(ctx, a.bin, buildArgs(src, dst, fps, width, height)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg reencode: %w\n%s", err, string(b))
	}
	return nil
}

func buildArgs(src, dst string, fps, width, height int) []string {
	vf := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		width, height, width, height,
	)
	return []string{
		"-y",
		"-i", src,
		"-vf", vf,
		"-r", strconv.Itoa(fps),
		"-c:v", "libx264", "-preset", "fast", "-crf", "23",
		"-c:a", "aac", "-b:a", "128k",
		dst,
	}
}
