package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quangtn/mediaprep/internal/config"
	"github.com/quangtn/mediaprep/internal/pipeline"
	"github.com/quangtn/mediaprep/internal/types"
)

func newImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Resize images and split them into train/val/test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, types.KindImages)
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().IntSlice("size", []int{224, 224}, "Target size W H")
	cmd.Flags().Int("quality", 95, "Lossy encoder quality (1-100)")
	return cmd
}

func newVideosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Re-encode videos and split them into train/val/test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, types.KindVideos)
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().Int("fps", 30, "Target frames per second")
	cmd.Flags().Int("width", 1280, "Target width")
	cmd.Flags().Int("height", 720, "Target height")
	return cmd
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("src_root", "", "Source directory to scan (required)")
	cmd.Flags().String("output_root", "", "Destination root (required)")
	cmd.Flags().Int64("seed", 42, "Partition reproducibility seed")
	cmd.Flags().Bool("dry_run", false, "Compute and print the plan without writing anything")
	cmd.Flags().String("config", "", "Optional TOML config file")
}

func run(cmd *cobra.Command, kind types.Kind) error {
	cfg := config.Default()
	cfg.Kind = kind

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return err
		}
	}
	if err := cfg.LoadEnv(cmd.Context()); err != nil {
		return err
	}
	if err := applyFlags(cmd, kind, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.NewLogger()
	return pipeline.Run(cmd.Context(), cfg, logger, cmd.OutOrStdout())
}

// applyFlags overlays flag values onto the merged config. Only flags the
// user actually set override file/env values; src_root and output_root are
// plain overrides since the file may supply them too.
func applyFlags(cmd *cobra.Command, kind types.Kind, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("src_root") {
		cfg.SrcRoot, _ = flags.GetString("src_root")
	}
	if flags.Changed("output_root") {
		cfg.OutputRoot, _ = flags.GetString("output_root")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("dry_run") {
		cfg.DryRun, _ = flags.GetBool("dry_run")
	}

	if kind == types.KindImages {
		if flags.Changed("size") {
			size, _ := flags.GetIntSlice("size")
			if len(size) != 2 {
				return fmt.Errorf("--size expects exactly two values W H, got %v", size)
			}
			cfg.Image.Width, cfg.Image.Height = size[0], size[1]
		}
		if flags.Changed("quality") {
			cfg.Image.Quality, _ = flags.GetInt("quality")
		}
		return nil
	}

	if flags.Changed("fps") {
		cfg.Video.FPS, _ = flags.GetInt("fps")
	}
	if flags.Changed("width") {
		cfg.Video.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Video.Height, _ = flags.GetInt("height")
	}
	return nil
}
