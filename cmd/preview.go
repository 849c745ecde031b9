package cmd

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/mj1618/fontproject/internal/output"
	"github.com/mj1618/fontproject/internal/preview"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <project-file>",
	Short: "Render a project's window layout as PNG",
	Long:  "Draw every window of a project as a box coloured by kind, at its saved screen position, and write the result as a PNG image.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringP("output", "o", "", "PNG file to write")
	previewCmd.Flags().Int("width", 0, "Image width in pixels (default from FONTPROJECT_PREVIEW_WIDTH)")
	previewCmd.Flags().Bool("no-labels", false, "Do not draw window labels")
	_ = previewCmd.MarkFlagRequired("output")
}

func runPreview(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	noLabels, _ := cmd.Flags().GetBool("no-labels")

	lp, err := readProject(args[0])
	if err != nil {
		return err
	}

	opts := preview.DefaultOptions()
	opts.Width = cfg.Preview.Width
	if width > 0 {
		opts.Width = width
	}
	opts.Labels = !noLabels

	img, err := preview.Render(lp.project, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}

	b := img.Bounds()
	return output.Print(output.PreviewResult{
		File:    lp.path,
		Output:  out,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Windows: lp.project.WindowCount(),
	})
}
