package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mj1618/desktop-annotator/internal/logging"
	"github.com/mj1618/desktop-annotator/internal/output"
	"github.com/mj1618/desktop-annotator/internal/platform"
	"github.com/mj1618/desktop-annotator/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "desktop-annotator",
	Short: "Annotate desktop UI elements for a coding agent",
	Long: `Resolve the accessibility element under a screen point, attach feedback to it,
and export the session as a markdown document with search patterns that let a
coding agent find each element in source.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().Bool("demo", false, "Use a synthetic desktop instead of the real accessibility API")
	rootCmd.PersistentFlags().String("session-dir", "", "Directory or afs URL for session files (default: system temp dir)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
		logging.Init(logJSON, logging.ParseLevel(level))

		demo, _ := rootCmd.PersistentFlags().GetBool("demo")
		if !demo && platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}

		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		if pretty, _ := rootCmd.PersistentFlags().GetBool("pretty"); pretty {
			output.PrettyOutput = true
		}
		slog.Debug("command starting", "command", cmd.Name(), "demo", demo)
		return nil
	}
}
