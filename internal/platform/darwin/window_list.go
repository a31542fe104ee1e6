//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
	int windowID;
	int pid;
	char *owner;
	char *title;
	double x, y, w, h;
	int layer;
	double alpha;
	int onScreen;
} WindowEntry;

static char *dict_string(CFDictionaryRef d, CFStringRef key) {
	CFStringRef s = CFDictionaryGetValue(d, key);
	if (s == NULL || CFGetTypeID(s) != CFStringGetTypeID()) return strdup("");
	CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
	char *buf = malloc(max);
	if (buf == NULL) return strdup("");
	if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) buf[0] = 0;
	return buf;
}

static long long dict_int(CFDictionaryRef d, CFStringRef key) {
	CFNumberRef n = CFDictionaryGetValue(d, key);
	long long v = 0;
	if (n != NULL && CFGetTypeID(n) == CFNumberGetTypeID()) {
		CFNumberGetValue(n, kCFNumberLongLongType, &v);
	}
	return v;
}

static double dict_double(CFDictionaryRef d, CFStringRef key, double def) {
	CFNumberRef n = CFDictionaryGetValue(d, key);
	double v = def;
	if (n != NULL && CFGetTypeID(n) == CFNumberGetTypeID()) {
		CFNumberGetValue(n, kCFNumberDoubleType, &v);
	}
	return v;
}

// cg_on_screen_windows returns the on-screen window list in front-to-back
// order. The caller frees the result with cg_free_window_entries.
static int cg_on_screen_windows(WindowEntry **out, int *count) {
	CFArrayRef list = CGWindowListCopyWindowInfo(
		kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements, kCGNullWindowID);
	if (list == NULL) return -1;
	CFIndex n = CFArrayGetCount(list);
	WindowEntry *entries = calloc(n > 0 ? n : 1, sizeof(WindowEntry));
	if (entries == NULL) {
		CFRelease(list);
		return -1;
	}
	for (CFIndex i = 0; i < n; i++) {
		CFDictionaryRef d = CFArrayGetValueAtIndex(list, i);
		WindowEntry *e = &entries[i];
		e->windowID = (int)dict_int(d, kCGWindowNumber);
		e->pid = (int)dict_int(d, kCGWindowOwnerPID);
		e->owner = dict_string(d, kCGWindowOwnerName);
		e->title = dict_string(d, kCGWindowName);
		e->layer = (int)dict_int(d, kCGWindowLayer);
		e->alpha = dict_double(d, kCGWindowAlpha, 1.0);
		e->onScreen = 1;
		CFDictionaryRef b = CFDictionaryGetValue(d, kCGWindowBounds);
		CGRect r = CGRectZero;
		if (b != NULL) CGRectMakeWithDictionaryRepresentation(b, &r);
		e->x = r.origin.x; e->y = r.origin.y; e->w = r.size.width; e->h = r.size.height;
	}
	CFRelease(list);
	*out = entries;
	*count = (int)n;
	return 0;
}

static void cg_free_window_entries(WindowEntry *entries, int count) {
	for (int i = 0; i < count; i++) {
		free(entries[i].owner);
		free(entries[i].title);
	}
	free(entries);
}
*/
import "C"
import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// DarwinWindowServer implements platform.WindowServer over the CoreGraphics
// window list.
type DarwinWindowServer struct {
	wm *DarwinWindowManager
}

// NewWindowServer creates the macOS window list backend.
func NewWindowServer(wm *DarwinWindowManager) *DarwinWindowServer {
	return &DarwinWindowServer{wm: wm}
}

// OnScreenWindows implements platform.WindowServer.
func (s *DarwinWindowServer) OnScreenWindows() ([]model.WindowInfo, error) {
	var cEntries *C.WindowEntry
	var cCount C.int
	if C.cg_on_screen_windows(&cEntries, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	defer C.cg_free_window_entries(cEntries, cCount)

	count := int(cCount)
	windows := make([]model.WindowInfo, 0, count)
	if count == 0 {
		return windows, nil
	}
	for _, e := range unsafe.Slice(cEntries, count) {
		windows = append(windows, model.WindowInfo{
			ID:        int(e.windowID),
			OwnerPID:  int(e.pid),
			OwnerName: C.GoString(e.owner),
			Title:     C.GoString(e.title),
			Bounds:    geom.R(float64(e.x), float64(e.y), float64(e.w), float64(e.h)),
			Layer:     int(e.layer),
			Alpha:     float64(e.alpha),
			OnScreen:  e.onScreen != 0,
		})
	}
	return windows, nil
}

// ListWindows implements platform.WindowServer. Only layer 0 windows are
// returned; the first window of the frontmost app is marked focused.
func (s *DarwinWindowServer) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	all, err := s.OnScreenWindows()
	if err != nil {
		return nil, err
	}

	frontPID := 0
	if s.wm != nil {
		if _, pid, err := s.wm.GetFrontmostApp(); err == nil {
			frontPID = pid
		}
	}

	focusAssigned := false
	windows := []model.Window{}
	for _, info := range all {
		if info.Layer != 0 {
			continue
		}
		if opts.PID != 0 && info.OwnerPID != opts.PID {
			continue
		}
		if opts.App != "" && !strings.EqualFold(info.OwnerName, opts.App) {
			continue
		}
		w := info.ToWindow()
		if info.OwnerPID == frontPID && !focusAssigned {
			w.Focused = true
			focusAssigned = true
		}
		windows = append(windows, w)
	}
	return windows, nil
}
