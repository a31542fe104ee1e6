package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/inspector"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform"
	"github.com/mj1618/desktop-annotator/internal/platform/fake"
	"github.com/mj1618/desktop-annotator/internal/session"
	"github.com/spf13/cobra"
)

// newProvider returns the platform provider, or the synthetic desktop when
// --demo is set.
func newProvider() (*platform.Provider, error) {
	if demo, _ := rootCmd.PersistentFlags().GetBool("demo"); demo {
		return demoProvider(), nil
	}
	return platform.NewProvider()
}

// demoProvider builds the synthetic desktop behind --demo.
var demoProvider = fake.DemoProvider

// sessionRepository returns the session store selected by --session-dir.
func sessionRepository() *session.Repository {
	dir, _ := rootCmd.PersistentFlags().GetString("session-dir")
	return session.NewRepository(dir)
}

// addTargetFlags registers the flags that pick the target application.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().Int("pid", 0, "Target application by PID")
	cmd.Flags().String("app", "", "Target application by name (default: frontmost app)")
}

// addPointFlags registers --at and --origin.
func addPointFlags(cmd *cobra.Command) {
	cmd.Flags().String("at", "", "Screen point as x,y")
	cmd.Flags().String("origin", "top-left", "Coordinate origin of --at/--bbox: top-left (accessibility) or bottom-left (windowing)")
}

// addInspectFlags registers the descriptor tuning flags.
func addInspectFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("forensic", false, "Include every attribute and the window level")
	cmd.Flags().Int("siblings", model.DefaultSiblingCount, "Maximum siblings per element")
}

// inspectorConfig maps command flags onto the inspector configuration.
func inspectorConfig(cmd *cobra.Command) inspector.Config {
	cfg := inspector.DefaultConfig()
	if f := cmd.Flags().Lookup("forensic"); f != nil {
		cfg.Forensic, _ = cmd.Flags().GetBool("forensic")
	}
	if f := cmd.Flags().Lookup("siblings"); f != nil {
		cfg.SiblingCount, _ = cmd.Flags().GetInt("siblings")
	}
	return cfg
}

// targetPID resolves --pid / --app, defaulting to the frontmost application.
func targetPID(cmd *cobra.Command, provider *platform.Provider) (int, error) {
	pid, _ := cmd.Flags().GetInt("pid")
	if pid > 0 {
		return pid, nil
	}
	appName, _ := cmd.Flags().GetString("app")
	if appName != "" {
		if provider.Windows == nil {
			return 0, platform.ErrUnsupported
		}
		windows, err := provider.Windows.ListWindows(platform.ListOptions{App: appName})
		if err != nil {
			return 0, err
		}
		for _, w := range windows {
			if strings.EqualFold(w.App, appName) {
				return w.PID, nil
			}
		}
		return 0, fmt.Errorf("no window found for app %q", appName)
	}
	if provider.WindowManager == nil {
		return 0, platform.ErrUnsupported
	}
	_, pid, err := provider.WindowManager.GetFrontmostApp()
	if err != nil {
		return 0, err
	}
	return pid, nil
}

// openTarget builds an inspector for the command's target application.
// store may be nil.
func openTarget(cmd *cobra.Command, provider *platform.Provider, pid int, store *model.AnnotationStore) (*inspector.Inspector, *inspector.Target, error) {
	in := inspector.New(provider, inspectorConfig(cmd), store)
	t, err := in.SetTarget(pid)
	if err != nil {
		return nil, nil, err
	}
	return in, t, nil
}

// appName returns the display name of pid, or the pid as text.
func appName(provider *platform.Provider, pid int) string {
	if provider.WindowManager != nil {
		if name, _, err := provider.WindowManager.AppInfo(pid); err == nil && name != "" {
			return name
		}
	}
	return fmt.Sprintf("pid-%d", pid)
}

// loadSession opens the saved session of the target application.
func loadSession(cmd *cobra.Command) (*platform.Provider, int, *session.Session, error) {
	provider, err := newProvider()
	if err != nil {
		return nil, 0, nil, err
	}
	pid, err := targetPID(cmd, provider)
	if err != nil {
		return nil, 0, nil, err
	}
	sess, err := sessionRepository().LoadOrNew(context.Background(), appName(provider, pid))
	if err != nil {
		return nil, 0, nil, err
	}
	return provider, pid, sess, nil
}

// readPoint parses --at and converts it to accessibility space.
func readPoint(cmd *cobra.Command, in *inspector.Inspector) (geom.Point, error) {
	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		return geom.Point{}, fmt.Errorf("--at x,y is required")
	}
	p, err := platform.ParsePoint(at)
	if err != nil {
		return geom.Point{}, err
	}
	flip, err := bottomLeftOrigin(cmd)
	if err != nil || !flip {
		return p, err
	}
	h, ok := in.PrimaryHeight()
	if !ok {
		return geom.Point{}, fmt.Errorf("display list unavailable")
	}
	return geom.ToAccessibility(p, h), nil
}

// readBBox parses --bbox and converts it to accessibility space.
func readBBox(cmd *cobra.Command, in *inspector.Inspector) (geom.Rect, error) {
	bbox, _ := cmd.Flags().GetString("bbox")
	r, err := platform.ParseBBox(bbox)
	if err != nil {
		return geom.Rect{}, err
	}
	if r.Empty() {
		return geom.Rect{}, fmt.Errorf("--bbox must have a positive width and height")
	}
	flip, err := bottomLeftOrigin(cmd)
	if err != nil || !flip {
		return r, err
	}
	h, ok := in.PrimaryHeight()
	if !ok {
		return geom.Rect{}, fmt.Errorf("display list unavailable")
	}
	return geom.RectToAccessibility(r, h), nil
}

func bottomLeftOrigin(cmd *cobra.Command) (bool, error) {
	origin, _ := cmd.Flags().GetString("origin")
	switch origin {
	case "top-left", "":
		return false, nil
	case "bottom-left":
		return true, nil
	default:
		return false, fmt.Errorf("unsupported origin: %s (use top-left or bottom-left)", origin)
	}
}

// splitRoles parses a comma-separated --roles value.
func splitRoles(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
