package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/fontproject/internal/config"
	"github.com/mj1618/fontproject/internal/logging"
	"github.com/mj1618/fontproject/internal/output"
	"github.com/mj1618/fontproject/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fontproject",
	Short: "Capture and restore font editor sessions",
	Long: `A CLI for .roboFontProject files: the saved layout of a font editor session
(open fonts, glyph windows, space centers, tool windows and a startup script).
Inspect and convert project files, capture a session from a host state file,
dry-run a restore, render a layout preview, or serve the same tools over MCP.`,
	SilenceUsage: true,
}

var (
	// cfg is loaded from FONTPROJECT_* variables before every command.
	cfg = config.Default()
	// logger writes to stderr so stdout stays machine-readable.
	logger = logging.NewNop()
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from FONTPROJECT_LOG_LEVEL)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
			cfg.Log.Level = level
		}
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Log.Level
		logCfg.Development = cfg.Log.Development
		l, err := logging.New(logCfg)
		if err != nil {
			return fmt.Errorf("invalid log configuration: %w", err)
		}
		logger = l

		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags (e.g. convert --to).
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}
}
