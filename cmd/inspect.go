package cmd

import (
	"github.com/mj1618/fontproject/internal/output"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <project-file>",
	Short: "Summarise a project file",
	Long:  "Print the documents, window kinds, tool windows and startup script stored in a project file, plus any window entries dropped because they could not be restored.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	lp, err := readProject(args[0])
	if err != nil {
		return err
	}
	return output.Print(output.Inspect(lp.path, lp.format, lp.project, lp.dropped))
}
