package cmd

import (
	"fmt"

	"github.com/mj1618/fontproject/internal/output"
	"github.com/mj1618/fontproject/internal/projectfile"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Re-encode a project file",
	Long: `Read a project file in any supported encoding and write it as an XML plist,
binary plist, YAML or JSON. Without --to the format follows the output file's
extension (.yaml, .yml, .json, .plist), falling back to FONTPROJECT_PROJECT_FORMAT.

Examples:
  fontproject convert session.roboFontProject session.yaml
  fontproject convert session.yaml session.roboFontProject --to binary`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("to", "", "Output encoding: xml, binary, yaml, json")
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	to, _ := cmd.Flags().GetString("to")

	format, err := outputFormat(to, out)
	if err != nil {
		return err
	}
	lp, err := readProject(in)
	if err != nil {
		return err
	}
	if err := projectfile.WriteFile(out, lp.project, format); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	return output.Print(output.ConvertResult{
		Input:   lp.path,
		Output:  out,
		From:    lp.format,
		To:      format,
		Windows: lp.project.WindowCount(),
		Dropped: lp.dropped,
	})
}
