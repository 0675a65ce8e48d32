// Package scan discovers class-labeled media files under a source root.
//
// Every directory that directly contains at least one file with a matching
// extension becomes a class; the class label is the directory's path
// relative to the root with forward slashes. Discovery order is the lexical
// walk order, which keeps reruns over an unchanged tree deterministic.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quangtn/mediaprep/internal/types"
)

// ErrSourceNotFound reports a missing source root. It is the only
// pre-flight validation Collect performs; traversal errors below the root
// propagate as-is.
var ErrSourceNotFound = errors.New("source root not found")

// ImageExts is the image extension allow-list (lowercase, with dot).
var ImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".tiff": {},
	".webp": {},
	".gif":  {},
}

// VideoExts is the video extension allow-list (lowercase, with dot).
var VideoExts = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
	".mpeg": {},
	".mpg":  {},
}

// ExtsFor returns the allow-list for a media kind.
func ExtsFor(kind types.Kind) map[string]struct{} {
	if kind == types.KindVideos {
		return VideoExts
	}
	return ImageExts
}

// Collect walks the full subtree of root and groups matching files by the
// directory that directly contains them. Directories with no matching
// files contribute nothing. An empty tree yields an empty manifest, not an
// error.
func Collect(root string, exts map[string]struct{}) (types.Manifest, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Manifest{}, fmt.Errorf("%w: %s", ErrSourceNotFound, root)
		}
		return types.Manifest{}, fmt.Errorf("stat source root: %w", err)
	}

	byDir := make(map[string][]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := exts[ext]; !ok {
			return nil
		}
		dir := filepath.Dir(path)
		byDir[dir] = append(byDir[dir], path)
		return nil
	})
	if err != nil {
		return types.Manifest{}, fmt.Errorf("walk %s: %w", root, err)
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var m types.Manifest
	for _, dir := range dirs {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			return types.Manifest{}, fmt.Errorf("relativize %s: %w", dir, err)
		}
		m.Classes = append(m.Classes, types.Class{
			Label: filepath.ToSlash(rel),
			Files: byDir[dir],
		})
	}
	return m, nil
}
