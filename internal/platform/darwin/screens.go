//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <stdlib.h>

typedef struct {
	int id;
	char *name;
	double x, y, w, h;
	int focused;
} ScreenEntry;

static int ns_list_screens(ScreenEntry **out, int *count) {
	@autoreleasepool {
		NSArray<NSScreen *> *screens = [NSScreen screens];
		NSScreen *main = [NSScreen mainScreen];
		int n = (int)[screens count];
		ScreenEntry *entries = calloc(n > 0 ? n : 1, sizeof(ScreenEntry));
		if (entries == NULL) return -1;
		for (int i = 0; i < n; i++) {
			NSScreen *s = screens[i];
			NSRect f = [s frame];
			NSNumber *num = [[s deviceDescription] objectForKey:@"NSScreenNumber"];
			entries[i].id = num != nil ? [num intValue] : i;
			NSString *name = @"";
			if (@available(macOS 10.15, *)) {
				name = [s localizedName];
			}
			if (name == nil) name = @"";
			entries[i].name = strdup([name UTF8String]);
			entries[i].x = f.origin.x;
			entries[i].y = f.origin.y;
			entries[i].w = f.size.width;
			entries[i].h = f.size.height;
			entries[i].focused = (s == main) ? 1 : 0;
		}
		*out = entries;
		*count = n;
	}
	return 0;
}

static void ns_free_screens(ScreenEntry *entries, int count) {
	for (int i = 0; i < count; i++) free(entries[i].name);
	free(entries);
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mj1618/desktop-annotator/internal/geom"
)

// DarwinScreens implements platform.ScreenLister over NSScreen. Frames are in
// windowing (bottom-left) space.
type DarwinScreens struct{}

// NewScreens creates the macOS display backend.
func NewScreens() *DarwinScreens {
	return &DarwinScreens{}
}

// Screens implements platform.ScreenLister.
func (d *DarwinScreens) Screens() ([]geom.Screen, error) {
	var cEntries *C.ScreenEntry
	var cCount C.int
	if C.ns_list_screens(&cEntries, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate screens")
	}
	defer C.ns_free_screens(cEntries, cCount)

	count := int(cCount)
	screens := make([]geom.Screen, 0, count)
	if count == 0 {
		return screens, nil
	}
	for _, e := range unsafe.Slice(cEntries, count) {
		screens = append(screens, geom.Screen{
			ID:      int(e.id),
			Name:    C.GoString(e.name),
			Frame:   geom.R(float64(e.x), float64(e.y), float64(e.w), float64(e.h)),
			Focused: e.focused != 0,
		})
	}
	return screens, nil
}
