package cmd

import (
	"github.com/mj1618/desktop-annotator/internal/output"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe the UI element under a screen point",
	Long: `Resolve the target application's accessibility element under a point and print
its descriptor: role, identifier, title, frame, hierarchy path and siblings.
The output also reports whether the target's window is frontmost there.

Examples:
  desktop-annotator inspect --at 745,673
  desktop-annotator inspect --app TextEdit --at 745,227 --origin bottom-left --forensic`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addTargetFlags(inspectCmd)
	addPointFlags(inspectCmd)
	addInspectFlags(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	decision := in.GateAt(p)
	result := output.InspectResult{App: t.AppName, PID: t.PID, Point: p, Frontmost: decision.Frontmost}
	if !decision.Frontmost && decision.Window != nil {
		result.Occluder = decision.Window.OwnerName
	}
	if desc, ok := in.ResolveAtAccessibility(p); ok {
		result.Element = &desc
	}
	return output.Print(result)
}
