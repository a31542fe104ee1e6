package cmd

import (
	"fmt"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/output"
	"github.com/mj1618/desktop-annotator/internal/platform"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows, applications or displays",
	Long:  "List open windows with their app name, title, PID and bounds, running applications, or attached displays.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("apps", false, "List running applications")
	listCmd.Flags().Bool("windows", false, "List all windows (default)")
	listCmd.Flags().Bool("screens", false, "List displays; the primary display anchors accessibility coordinates")
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
	listCmd.Flags().String("app", "", "Filter windows by app name")
}

// appEntry is the output for --apps mode.
type appEntry struct {
	App string `yaml:"app" json:"app"`
	PID int    `yaml:"pid" json:"pid"`
}

// screenEntry is the output for --screens mode.
type screenEntry struct {
	geom.Screen `yaml:",inline"`
	Primary     bool `yaml:"primary" json:"primary"`
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}

	apps, _ := cmd.Flags().GetBool("apps")
	screens, _ := cmd.Flags().GetBool("screens")
	pid, _ := cmd.Flags().GetInt("pid")
	appName, _ := cmd.Flags().GetString("app")

	if screens {
		if provider.Screens == nil {
			return fmt.Errorf("display list not available on this platform")
		}
		list, err := provider.Screens.Screens()
		if err != nil {
			return err
		}
		primary, _ := geom.Primary(list)
		entries := make([]screenEntry, 0, len(list))
		for _, s := range list {
			entries = append(entries, screenEntry{Screen: s, Primary: s.ID == primary.ID})
		}
		return output.Print(entries)
	}

	if provider.Windows == nil {
		return fmt.Errorf("window list not available on this platform")
	}
	windows, err := provider.Windows.ListWindows(platform.ListOptions{
		Apps: apps,
		PID:  pid,
		App:  appName,
	})
	if err != nil {
		return err
	}

	if apps {
		// Aggregate to unique apps
		seen := make(map[string]bool)
		entries := []appEntry{}
		for _, w := range windows {
			if !seen[w.App] {
				seen[w.App] = true
				entries = append(entries, appEntry{App: w.App, PID: w.PID})
			}
		}
		return output.Print(entries)
	}

	return output.Print(windows)
}
