package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/desktop-annotator/internal/export"
	"github.com/mj1618/desktop-annotator/internal/locate"
	"github.com/mj1618/desktop-annotator/internal/output"
	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Find an annotated element in a source tree",
	Long: `Search a source tree for the patterns derived from an element. Matches for
the most specific pattern (the identifier) are listed first.

Examples:
  desktop-annotator locate --badge 1 --root ./MyApp
  desktop-annotator locate --title Save --role AXButton --root ./MyApp`,
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
	addTargetFlags(locateCmd)
	locateCmd.Flags().String("root", ".", "Directory or afs URL to search")
	locateCmd.Flags().Int("badge", 0, "Annotation badge whose element to look for")
	locateCmd.Flags().String("identifier", "", "Element identifier (without --badge)")
	locateCmd.Flags().String("title", "", "Element title (without --badge)")
	locateCmd.Flags().String("role", "", "Element role (without --badge)")
	locateCmd.Flags().StringSlice("ext", nil, "File extensions to search (default: common UI source types)")
	locateCmd.Flags().Int("max-matches", 20, "Max matches (0 = unlimited)")
}

func runLocate(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	badge, _ := cmd.Flags().GetInt("badge")
	exts, _ := cmd.Flags().GetStringSlice("ext")
	maxMatches, _ := cmd.Flags().GetInt("max-matches")

	var patterns []string
	if badge > 0 {
		_, _, sess, err := loadSession(cmd)
		if err != nil {
			return err
		}
		a, ok := sess.Store().Get(badge)
		if !ok {
			return fmt.Errorf("no annotation with badge %d in the %s session", badge, sess.App)
		}
		patterns = export.SearchPatterns(a.Element.Identifier, a.Element.Title, a.Element.Role)
	} else {
		identifier, _ := cmd.Flags().GetString("identifier")
		title, _ := cmd.Flags().GetString("title")
		role, _ := cmd.Flags().GetString("role")
		patterns = export.SearchPatterns(identifier, title, role)
	}
	if len(patterns) == 0 {
		return fmt.Errorf("nothing to search for: give --badge, or --identifier / --title")
	}

	res, err := locate.New().Search(context.Background(), root, patterns, locate.Options{
		Extensions: exts,
		MaxMatches: maxMatches,
	})
	if err != nil {
		return err
	}
	return output.Print(res)
}
