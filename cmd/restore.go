package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/mj1618/fontproject/internal/output"
	"github.com/mj1618/fontproject/internal/session"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <project-file>",
	Short: "Dry-run a restore against an in-memory editor",
	Long: `Restore a project into an in-memory editor and print the report (restored,
skipped and failed items) together with every host call the restore made.
Start from a host state file with --state to see which documents would be
skipped as already open. Exits non-zero when any item failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().String("state", "", "Host state file (YAML) with documents already open")
	restoreCmd.Flags().String("root", "", "Directory relative document paths resolve against (default: the project file's directory)")
	restoreCmd.Flags().Bool("assume-files", false, "Treat every document path as existing")
	restoreCmd.Flags().Bool("show-state", false, "Include the host state after the restore")
}

func runRestore(cmd *cobra.Command, args []string) error {
	statePath, _ := cmd.Flags().GetString("state")
	root, _ := cmd.Flags().GetString("root")
	assumeFiles, _ := cmd.Flags().GetBool("assume-files")
	showState, _ := cmd.Flags().GetBool("show-state")

	lp, err := readProject(args[0])
	if err != nil {
		return err
	}
	h, err := loadHost(statePath)
	if err != nil {
		return err
	}
	if root == "" {
		root = filepath.Dir(lp.path)
	}

	fileExists := h.FileExists
	if assumeFiles {
		fileExists = func(string) bool { return true }
	}
	report := session.NewRestorer(h.Provider(),
		session.WithLogger(logger),
		session.WithFileExists(fileExists),
	).Restore(cmd.Context(), lp.project, root)
	report.Dropped = lp.dropped

	result := output.RestoreResult{File: lp.path, Report: report, Calls: h.Calls()}
	if showState {
		result.State = h.Snapshot()
	}
	if err := output.Print(result); err != nil {
		return err
	}
	if !report.OK() {
		return fmt.Errorf("restore finished with %d failure(s)", len(report.Failures))
	}
	return nil
}
