package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mj1618/desktop-annotator/internal/export"
	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the session as a UI feedback document",
	Long: `Render the target application's annotations as the markdown document a coding
agent consumes. Each element gets its hierarchy path, siblings, search patterns
and a disambiguation hint; forensic mode adds frames, window levels and a full
attribute dump.

Examples:
  desktop-annotator export
  desktop-annotator export --mode forensic --out feedback.md
  desktop-annotator export --html --out s3://bucket/feedback.html`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addTargetFlags(exportCmd)
	exportCmd.Flags().String("mode", "detailed", "Document mode: detailed, forensic")
	exportCmd.Flags().Bool("html", false, "Render HTML instead of markdown")
	exportCmd.Flags().Bool("highlight", false, "Colorize markdown for the terminal")
	exportCmd.Flags().String("out", "", "Write to this path or afs URL instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	asHTML, _ := cmd.Flags().GetBool("html")
	highlight, _ := cmd.Flags().GetBool("highlight")
	out, _ := cmd.Flags().GetString("out")

	format, err := export.ParseFormat(mode)
	if err != nil {
		return err
	}
	provider, _, sess, err := loadSession(cmd)
	if err != nil {
		return err
	}

	opts := export.Options{
		AppName:     sess.App,
		BundleID:    sess.BundleID,
		WindowTitle: sess.WindowTitle,
		Format:      format,
	}
	if opts.WindowTitle == "" {
		opts.WindowTitle = export.SessionWindow(sess.Annotations)
	}
	if provider.Screens != nil {
		if screens, err := provider.Screens.Screens(); err == nil {
			if primary, ok := geom.Primary(screens); ok {
				size := primary.Frame.Size()
				opts.Screen = &size
			}
		}
	}
	doc := export.GenerateOutput(sess.Annotations, opts)
	if asHTML {
		if doc, err = export.HTML(doc); err != nil {
			return err
		}
	}

	if out != "" {
		fs := afs.New()
		if err := fs.Upload(context.Background(), out, 0644, strings.NewReader(doc)); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d annotations to %s\n", len(sess.Annotations), out)
		return nil
	}
	if highlight && !asHTML {
		return export.Highlight(cmd.OutOrStdout(), doc)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
	return err
}
