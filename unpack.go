package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"crunch2d/internal/format"
	"crunch2d/internal/logging"
)

func newUnpackCommand(flags *packFlags) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "unpack ATLAS.json",
		Short: "Rebuild the individual sprite images from an atlas JSON file",
		Long: `Rebuild the individual sprite images from an atlas JSON file.

The atlas images are read from the JSON file's directory. Rotated sprites are
turned back and trimmed sprites are restored to their original size when the
file carries frame data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if flags.verbose {
				level = "debug"
			}
			logger, err := logging.New(logging.Options{
				Level:  level,
				Format: flags.logFormat,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			return unpackAtlas(args[0], outputDir, logging.NewComponentLogger(logger, "unpack"))
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "unpacked", "directory receiving the sprite images")
	return cmd
}

// unpackAtlas writes every image listed in the JSON file at jsonPath to
// outputDir as <name>.png.
func unpackAtlas(jsonPath, outputDir string, logger *slog.Logger) error {
	doc, err := format.LoadJSON(jsonPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	count := 0
	for _, tex := range doc.Textures {
		atlasPath := filepath.Join(filepath.Dir(jsonPath), tex.Name+".png")
		atlasImg, err := imaging.Open(atlasPath)
		if err != nil {
			return fmt.Errorf("decode %s: %w", atlasPath, err)
		}

		for _, img := range tex.Images {
			if !filepath.IsLocal(filepath.FromSlash(img.Name)) {
				return fmt.Errorf("unpack %s: sprite name %q escapes the output directory", jsonPath, img.Name)
			}
			outPath := filepath.Join(outputDir, filepath.FromSlash(img.Name)+".png")
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := imaging.Save(extractSprite(atlasImg, img), outPath); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			logger.Debug("sprite unpacked", slog.String("name", img.Name), slog.String("path", outPath))
			count++
		}
	}
	logger.Info("atlas unpacked", slog.String("output", outputDir), slog.Int("sprites", count))
	return nil
}

// extractSprite cuts img out of the atlas, undoes rotation and pads the
// result back to its frame.
func extractSprite(atlasImg image.Image, img format.Image) *image.NRGBA {
	w, h := img.Width, img.Height
	if img.IsRotated() {
		w, h = h, w
	}
	sub := imaging.Crop(atlasImg, image.Rect(img.X, img.Y, img.X+w, img.Y+h))
	if img.IsRotated() {
		sub = imaging.Rotate90(sub)
	}

	fx, fy, fw, fh := img.Frame()
	if fx == 0 && fy == 0 && fw == img.Width && fh == img.Height {
		return sub
	}
	frame := imaging.New(fw, fh, color.NRGBA{0, 0, 0, 0})
	return imaging.Paste(frame, sub, image.Pt(-fx, -fy))
}
