package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/mj1618/desktop-annotator/internal/export"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/output"
	"github.com/spf13/cobra"
)

var annotationsCmd = &cobra.Command{
	Use:   "annotations",
	Short: "Manage the annotation session of an application",
}

var annotationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List annotations in badge order",
	RunE:  runAnnotationsList,
}

var annotationsUpdateCmd = &cobra.Command{
	Use:   "update <badge>",
	Short: "Replace the feedback text of an annotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationsUpdate,
}

var annotationsRemoveCmd = &cobra.Command{
	Use:   "remove <badge>",
	Short: "Remove an annotation; other badges keep their numbers",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationsRemove,
}

var annotationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every annotation and restart numbering at 1",
	RunE:  runAnnotationsClear,
}

func init() {
	rootCmd.AddCommand(annotationsCmd)
	annotationsCmd.AddCommand(annotationsListCmd, annotationsUpdateCmd, annotationsRemoveCmd, annotationsClearCmd)
	for _, c := range []*cobra.Command{annotationsListCmd, annotationsUpdateCmd, annotationsRemoveCmd, annotationsClearCmd} {
		addTargetFlags(c)
	}
	annotationsListCmd.Flags().Bool("table", false, "Print a table instead of structured output")
	annotationsListCmd.Flags().Int("width", 40, "Column width for titles and feedback in --table mode")
	annotationsUpdateCmd.Flags().String("text", "", "New feedback text")
	annotationsUpdateCmd.MarkFlagRequired("text")
}

func parseBadge(s string) (int, error) {
	badge, err := strconv.Atoi(s)
	if err != nil || badge < 1 {
		return 0, fmt.Errorf("invalid badge %q", s)
	}
	return badge, nil
}

func runAnnotationsList(cmd *cobra.Command, args []string) error {
	_, _, sess, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if table, _ := cmd.Flags().GetBool("table"); table {
		width, _ := cmd.Flags().GetInt("width")
		return writeAnnotationTable(cmd.OutOrStdout(), sess.Annotations, width)
	}
	return output.Print(output.AnnotationsResult{App: sess.App, NextBadge: sess.NextBadge, Annotations: sess.Annotations})
}

// writeAnnotationTable prints one row per annotation, truncating by display
// width so wide characters keep the columns aligned.
func writeAnnotationTable(w io.Writer, annotations []model.Annotation, width int) error {
	if width < 8 {
		width = 8
	}
	if len(annotations) == 0 {
		_, err := fmt.Fprintln(w, "No annotations.")
		return err
	}
	cell := func(s string) string {
		return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
	}
	if _, err := fmt.Fprintf(w, "%-5s  %s  %s\n", "BADGE", cell("ELEMENT"), "FEEDBACK"); err != nil {
		return err
	}
	for _, a := range annotations {
		name := export.ElementName(a.Element.Role, a.Element.Identifier, a.Element.Title)
		feedback := runewidth.Truncate(a.Text, width, "…")
		if _, err := fmt.Fprintf(w, "%-5d  %s  %s\n", a.Badge, cell(name), feedback); err != nil {
			return err
		}
	}
	return nil
}

func runAnnotationsUpdate(cmd *cobra.Command, args []string) error {
	badge, err := parseBadge(args[0])
	if err != nil {
		return err
	}
	text, _ := cmd.Flags().GetString("text")
	return mutateSession(cmd, func(store *model.AnnotationStore) error {
		return store.UpdateText(badge, text)
	})
}

func runAnnotationsRemove(cmd *cobra.Command, args []string) error {
	badge, err := parseBadge(args[0])
	if err != nil {
		return err
	}
	return mutateSession(cmd, func(store *model.AnnotationStore) error {
		return store.Remove(badge)
	})
}

func runAnnotationsClear(cmd *cobra.Command, args []string) error {
	_, _, sess, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if err := sessionRepository().Remove(context.Background(), sess.App); err != nil {
		return err
	}
	return output.Print(output.AnnotationsResult{App: sess.App, NextBadge: 1, Annotations: []model.Annotation{}})
}

// mutateSession applies fn to the saved session and writes it back.
func mutateSession(cmd *cobra.Command, fn func(*model.AnnotationStore) error) error {
	_, _, sess, err := loadSession(cmd)
	if err != nil {
		return err
	}
	store := sess.Store()
	if err := fn(store); err != nil {
		return err
	}
	sess.Capture(store)
	if err := sessionRepository().Save(context.Background(), sess); err != nil {
		return err
	}
	return output.Print(output.AnnotationsResult{App: sess.App, NextBadge: sess.NextBadge, Annotations: sess.Annotations})
}
