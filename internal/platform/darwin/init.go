//go:build darwin && cgo

package darwin

import "github.com/mj1618/desktop-annotator/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		windowManager := NewWindowManager()
		return &platform.Provider{
			Accessibility: NewAccessibility(),
			Windows:       NewWindowServer(windowManager),
			Screens:       NewScreens(),
			WindowManager: windowManager,
		}, nil
	}
	platform.RequestPermissionsFunc = RequestAccessibilityPermission
}
