// Package imagefile resizes and rewrites single images on disk.
//
// Decoding covers jpeg/png/gif via the standard library and bmp/tiff/webp
// via golang.org/x/image. Single-channel grayscale stays grayscale; every
// other color mode (palette, alpha, CMYK) is normalized to RGB before the
// resize so the encoder never sees a mode it cannot write.
package imagefile

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // decode only; webp has no pure-Go encoder
)

type Transformer struct{}

func New() *Transformer { return &Transformer{} }

// ResizeAndSave stretches the source image to exactly width x height with
// a Catmull-Rom kernel and writes it at dst, using the encoder matching
// the destination extension. Aspect ratio is intentionally NOT preserved
// for images (unlike the video path); quality applies to lossy encoders.
func (t *Transformer) ResizeAndSave(ctx context.Context, src, dst string, width, height, quality int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	resized := stretch(img, width, height)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir destination: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if err := encode(out, resized, filepath.Ext(dst), quality); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("encode %s: %w", dst, err)
	}
	return out.Close()
}

// stretch resizes to the exact target geometry. Grayscale input keeps a
// grayscale canvas; everything else lands on RGBA.
func stretch(img image.Image, width, height int) image.Image {
	rect := image.Rect(0, 0, width, height)
	var canvas xdraw.Image
	if _, ok := img.(*image.Gray); ok {
		canvas = image.NewGray(rect)
	} else {
		canvas = image.NewRGBA(rect)
	}
	xdraw.CatmullRom.Scale(canvas, rect, img, img.Bounds(), xdraw.Src, nil)
	return canvas
}

func encode(out *os.File, img image.Image, ext string, quality int) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(out, img, &jpeg.Options{Quality: quality})
	case ".png":
		return png.Encode(out, img)
	case ".gif":
		return gif.Encode(out, img, nil)
	case ".bmp":
		return bmp.Encode(out, img)
	case ".tif", ".tiff":
		return tiff.Encode(out, img, nil)
	default:
		return fmt.Errorf("no encoder for %q", ext)
	}
}
