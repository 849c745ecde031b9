package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/fontproject/internal/output"
	"github.com/mj1618/fontproject/internal/projectfile"
	"github.com/mj1618/fontproject/internal/session"
	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a session from a host state file",
	Long: `Capture the documents and windows described by a YAML host state file and save
them as a project file. Document paths are stored relative to the output file
with --relative.

Examples:
  fontproject capture --state host.yaml -o session.roboFontProject
  fontproject capture --state host.yaml -o session.roboFontProject --relative --execute-file startup.py`,
	Args: cobra.NoArgs,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().String("state", "", "Host state file (YAML)")
	captureCmd.Flags().StringP("output", "o", "", "Project file to write")
	captureCmd.Flags().Bool("relative", false, "Store document paths relative to the output file (default from FONTPROJECT_PROJECT_RELATIVE_PATHS)")
	captureCmd.Flags().String("execute", "", "Startup script text")
	captureCmd.Flags().String("execute-file", "", "Read the startup script from a file")
	captureCmd.Flags().String("to", "", "Output encoding: xml, binary, yaml, json")
	_ = captureCmd.MarkFlagRequired("state")
	_ = captureCmd.MarkFlagRequired("output")
}

func runCapture(cmd *cobra.Command, args []string) error {
	statePath, _ := cmd.Flags().GetString("state")
	out, _ := cmd.Flags().GetString("output")
	to, _ := cmd.Flags().GetString("to")
	script, _ := cmd.Flags().GetString("execute")
	scriptFile, _ := cmd.Flags().GetString("execute-file")

	relative := cfg.Project.RelativePaths
	if cmd.Flags().Changed("relative") {
		relative, _ = cmd.Flags().GetBool("relative")
	}

	if script != "" && scriptFile != "" {
		return fmt.Errorf("use either --execute or --execute-file, not both")
	}
	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			return err
		}
		script = string(data)
	}

	format, err := outputFormat(to, out)
	if err != nil {
		return err
	}
	h, err := loadHost(statePath)
	if err != nil {
		return err
	}

	project, err := session.NewCapturer(h.Provider(), session.WithLogger(logger)).Capture(session.CaptureOptions{
		TargetPath:       out,
		UseRelativePaths: relative,
		Script:           script,
	})
	if err != nil {
		return err
	}
	if err := projectfile.WriteFile(out, project, format); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	return output.Print(output.CaptureResult{
		Output:    out,
		Format:    format,
		Documents: len(project.Documents),
		Windows:   project.WindowCount(),
		Relative:  relative,
		HasScript: project.Execute != "",
	})
}
