package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangtn/mediaprep/internal/split"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	cfg := Default()
	cfg.SrcRoot = t.TempDir()
	cfg.OutputRoot = filepath.Join(t.TempDir(), "out")
	return cfg
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, split.DefaultRatios, cfg.Ratios)
	assert.Equal(t, Image{Width: 224, Height: 224, Quality: 95}, cfg.Image)
	assert.Equal(t, Video{FPS: 30, Width: 1280, Height: 720}, cfg.Video)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mediaprep.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
src_root = "/data/yoga"
output_root = "/data/processed"
seed = 7
ratios = [0.8, 0.1, 0.1]

[image]
width = 128
height = 128
quality = 80

[video]
fps = 25
width = 640
height = 360
`), 0o644))

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "/data/yoga", cfg.SrcRoot)
	assert.Equal(t, "/data/processed", cfg.OutputRoot)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, [3]float64{0.8, 0.1, 0.1}, cfg.Ratios)
	assert.Equal(t, Image{Width: 128, Height: 128, Quality: 80}, cfg.Image)
	assert.Equal(t, Video{FPS: 25, Width: 640, Height: 360}, cfg.Video)
}

func TestLoadFile_PartialOverlay(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mediaprep.toml")
	require.NoError(t, os.WriteFile(path, []byte("seed = 9\n"), 0o644))

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, int64(9), cfg.Seed)
	// Untouched sections keep their defaults.
	assert.Equal(t, 224, cfg.Image.Width)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "nope.toml")))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MEDIAPREP_FFMPEG", "/opt/ffmpeg")
	t.Setenv("MEDIAPREP_LOG_LEVEL", "debug")

	cfg := Default()
	require.NoError(t, cfg.LoadEnv(context.Background()))
	assert.Equal(t, "/opt/ffmpeg", cfg.Env.FFmpegPath)
	assert.Equal(t, "debug", cfg.Env.LogLevel)
}

func TestLoadEnv_Defaults(t *testing.T) {
	// t.Setenv registers the restore; unset so the default kicks in.
	t.Setenv("MEDIAPREP_FFMPEG", "x")
	os.Unsetenv("MEDIAPREP_FFMPEG")
	t.Setenv("MEDIAPREP_LOG_FORMAT", "x")
	os.Unsetenv("MEDIAPREP_LOG_FORMAT")

	cfg := Default()
	require.NoError(t, cfg.LoadEnv(context.Background()))
	assert.Equal(t, "ffmpeg", cfg.Env.FFmpegPath)
	assert.Equal(t, "text", cfg.Env.LogFormat)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		cfg := validConfig(t)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing src_root", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.SrcRoot = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing output_root", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.OutputRoot = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("quality out of range", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Image.Quality = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero dimensions", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Video.Width = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad ratios", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Ratios = [3]float64{0.5, 0.3, 0.3}
		assert.ErrorIs(t, cfg.Validate(), split.ErrInvalidRatios)
	})
}
