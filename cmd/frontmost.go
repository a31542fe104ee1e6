package cmd

import (
	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/output"
	"github.com/spf13/cobra"
)

var frontmostCmd = &cobra.Command{
	Use:   "frontmost",
	Short: "Check whether the target's window is topmost at a point",
	Long: `Walk the on-screen windows front to back and report whether the first window
containing the point belongs to the target application. System capture
utilities are ignored.

Examples:
  desktop-annotator frontmost --at 150,150
  desktop-annotator frontmost --pid 501 --at 745,673`,
	RunE: runFrontmost,
}

func init() {
	rootCmd.AddCommand(frontmostCmd)
	addTargetFlags(frontmostCmd)
	addPointFlags(frontmostCmd)
}

// FrontmostResult is the output of the `frontmost` command.
type FrontmostResult struct {
	App       string            `yaml:"app,omitempty"    json:"app,omitempty"`
	PID       int               `yaml:"pid"              json:"pid"`
	Point     geom.Point        `yaml:"point"            json:"point"`
	Frontmost bool              `yaml:"frontmost"        json:"frontmost"`
	Reason    string            `yaml:"reason,omitempty" json:"reason,omitempty"`
	Window    *model.WindowInfo `yaml:"window,omitempty" json:"window,omitempty"`
}

func runFrontmost(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	pid, err := targetPID(cmd, provider)
	if err != nil {
		return err
	}
	in, t, err := openTarget(cmd, provider, pid, nil)
	if err != nil {
		return err
	}
	p, err := readPoint(cmd, in)
	if err != nil {
		return err
	}
	d := in.GateAt(p)
	return output.Print(FrontmostResult{
		App:       t.AppName,
		PID:       t.PID,
		Point:     p,
		Frontmost: d.Frontmost,
		Reason:    d.Reason,
		Window:    d.Window,
	})
}
