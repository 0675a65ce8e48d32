// Package mjpegavi is the in-process fallback video backend, used for a
// whole run when the ffmpeg probe fails at startup. It decodes MJPEG AVI
// sources frame by frame, letterboxes each frame onto a white canvas of the
// target geometry, and re-muxes the frames at the target frame rate.
package mjpegavi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/icza/mjpeg"
	xdraw "golang.org/x/image/draw"
)

const frameQuality = 90

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) Name() string { return "mjpeg-avi" }

// Reencode rewrites src into an MJPEG AVI at dst. A source that is not an
// MJPEG AVI fails here for that item only; the backend decision is never
// revisited mid-run.
func (a *Adapter) Reencode(ctx context.Context, src, dst string, fps, width, height int) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	dmx, err := NewDemuxer(f)
	if err != nil {
		return fmt.Errorf("open source %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir destination: %w", err)
	}
	aw, err := mjpeg.New(dst, int32(width), int32(height), int32(fps))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			_ = aw.Close()
			return err
		}
		raw, err := dmx.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = aw.Close()
			return fmt.Errorf("demux frame: %w", err)
		}
		frame, err := jpeg.Decode(bytes.NewReader(raw))
		if err != nil {
			_ = aw.Close()
			return fmt.Errorf("decode frame: %w", err)
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, Letterbox(frame, width, height), &jpeg.Options{Quality: frameQuality}); err != nil {
			_ = aw.Close()
			return fmt.Errorf("encode frame: %w", err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			_ = aw.Close()
			return fmt.Errorf("write frame: %w", err)
		}
	}
	return aw.Close()
}

// Letterbox scales src to fit inside width x height preserving aspect
// ratio and composites it centered on a white canvas of exactly that size.
func Letterbox(src image.Image, width, height int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return canvas
	}
	scale := math.Min(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
	nw := int(float64(b.Dx()) * scale)
	nh := int(float64(b.Dy()) * scale)
	left := (width - nw) / 2
	top := (height - nh) / 2
	xdraw.CatmullRom.Scale(canvas, image.Rect(left, top, left+nw, top+nh), src, b, xdraw.Src, nil)
	return canvas
}
