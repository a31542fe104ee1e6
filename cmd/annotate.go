package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mj1618/desktop-annotator/internal/export"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/output"
	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Attach feedback to the element under a point or in a region",
	Long: `Resolve the element under --at (or every element inside --bbox) and add an
annotation carrying the feedback text to the target application's session.
Badge numbers only grow; a removed badge is never reused.

Examples:
  desktop-annotator annotate --at 745,673 --text "make this red"
  desktop-annotator annotate --bbox 590,650,210,45 --roles interactive --text "align these"`,
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	addTargetFlags(annotateCmd)
	addPointFlags(annotateCmd)
	addInspectFlags(annotateCmd)
	annotateCmd.Flags().String("bbox", "", "Annotate every element in this region (x,y,w,h)")
	annotateCmd.Flags().String("roles", "", "Role filter for --bbox")
	annotateCmd.Flags().String("text", "", "Feedback text")
	annotateCmd.Flags().String("window", "", "Window title to record (default: the element's window)")
	annotateCmd.Flags().Bool("force", false, "Annotate even when another window covers the point")
	annotateCmd.MarkFlagRequired("text")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	window, _ := cmd.Flags().GetString("window")
	bbox, _ := cmd.Flags().GetString("bbox")
	force, _ := cmd.Flags().GetBool("force")

	provider, pid, sess, err := loadSession(cmd)
	if err != nil {
		return err
	}
	store := sess.Store()
	in, t, err := openTarget(cmd, provider, pid, store)
	if err != nil {
		return err
	}

	var added []model.Annotation
	if bbox != "" {
		rect, err := readBBox(cmd, in)
		if err != nil {
			return err
		}
		roles, _ := cmd.Flags().GetString("roles")
		descs := in.ScanRegion(rect, splitRoles(roles))
		if len(descs) == 0 {
			return fmt.Errorf("no elements of %s found in %s", t.AppName, rect)
		}
		added = in.BuildRegionAnnotations(descs, text, window, "", "")
	} else {
		p, err := readPoint(cmd, in)
		if err != nil {
			return err
		}
		if d := in.GateAt(p); !d.Frontmost && !force {
			return fmt.Errorf("%s is not frontmost at %s (%s); use --force to annotate anyway", t.AppName, p, d.Reason)
		}
		desc, ok := in.ResolveAtAccessibility(p)
		if !ok {
			return fmt.Errorf("no element of %s at %s", t.AppName, p)
		}
		if prev, ok := store.FindElement(desc); ok {
			slog.Warn("element already annotated", "badge", prev.Badge, "role", desc.Role, "label", desc.Label())
		}
		added = append(added, in.BuildAnnotation(desc, text, window, "", ""))
	}

	sess.App, sess.BundleID, sess.PID = t.AppName, t.BundleID, t.PID
	if window != "" {
		sess.WindowTitle = window
	} else if sess.WindowTitle == "" {
		sess.WindowTitle = export.SessionWindow(added)
	}
	sess.Capture(store)
	if err := sessionRepository().Save(context.Background(), sess); err != nil {
		return err
	}
	slog.Debug("annotations added", "app", t.AppName, "count", len(added), "next_badge", store.NextBadge())
	return output.Print(output.AnnotationsResult{App: t.AppName, NextBadge: store.NextBadge(), Annotations: added})
}
