//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

static char *ns_strdup(NSString *s) {
	return strdup(s != nil ? [s UTF8String] : "");
}

static int ns_get_frontmost_app(char **name, pid_t *pid) {
	@autoreleasepool {
		NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
		if (app == nil) return -1;
		*name = ns_strdup([app localizedName]);
		*pid = [app processIdentifier];
	}
	return 0;
}

static int ns_app_info(pid_t pid, char **name, char **bundleID) {
	@autoreleasepool {
		NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
		if (app == nil) return -1;
		*name = ns_strdup([app localizedName]);
		*bundleID = ns_strdup([app bundleIdentifier]);
	}
	return 0;
}
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// DarwinWindowManager implements platform.WindowManager for macOS.
type DarwinWindowManager struct{}

// NewWindowManager creates a new macOS window manager.
func NewWindowManager() *DarwinWindowManager {
	return &DarwinWindowManager{}
}

func (wm *DarwinWindowManager) GetFrontmostApp() (string, int, error) {
	var cName *C.char
	var cPid C.pid_t

	if C.ns_get_frontmost_app(&cName, &cPid) != 0 {
		return "", 0, fmt.Errorf("failed to get frontmost app")
	}
	defer C.free(unsafe.Pointer(cName))

	return C.GoString(cName), int(cPid), nil
}

func (wm *DarwinWindowManager) AppInfo(pid int) (string, string, error) {
	var cName, cBundle *C.char
	if C.ns_app_info(C.pid_t(pid), &cName, &cBundle) != 0 {
		return "", "", fmt.Errorf("no running application with PID %d", pid)
	}
	defer C.free(unsafe.Pointer(cName))
	defer C.free(unsafe.Pointer(cBundle))

	return C.GoString(cName), C.GoString(cBundle), nil
}
