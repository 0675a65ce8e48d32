// Package ports declares the transform capabilities the placer depends on.
// Concrete backends live under adapters/ and are chosen once per run, at
// startup, never per item.
package ports

import "context"

// ImageTransformer normalizes one image: decode, stretch-resize to exactly
// width x height (aspect ratio is NOT preserved for images), and write the
// result at the given lossy-encoder quality. Implementations create the
// destination's parent directories.
type ImageTransformer interface {
	ResizeAndSave(ctx context.Context, src, dst string, width, height, quality int) error
}

// VideoReencoder normalizes one video to a fixed resolution and frame
// rate, letterboxing to preserve aspect ratio. Implementations create the
// destination's parent directories and overwrite any existing output.
type VideoReencoder interface {
	// Name identifies the backend in logs and in the run summary.
	Name() string
	Reencode(ctx context.Context, src, dst string, fps, width, height int) error
}
