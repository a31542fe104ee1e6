//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>
#include <string.h>

enum {
	AXV_NONE = 0,
	AXV_STRING,
	AXV_BOOL,
	AXV_INT,
	AXV_FLOAT,
	AXV_POINT,
	AXV_SIZE,
	AXV_RECT,
	AXV_RANGE,
	AXV_ARRAY,
	AXV_ELEMENT,
	AXV_OPAQUE
};

typedef struct {
	int kind;
	char *str;
	long long i;
	double f;
	double x, y, w, h;
	long loc, len;
	int count;
} AXValueInfo;

static char *cfstring_copy_utf8(CFStringRef s) {
	if (s == NULL) return NULL;
	CFIndex len = CFStringGetLength(s);
	CFIndex max = CFStringGetMaximumSizeForEncoding(len, kCFStringEncodingUTF8) + 1;
	char *buf = malloc(max);
	if (buf == NULL) return NULL;
	if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
		free(buf);
		return NULL;
	}
	return buf;
}

static AXUIElementRef ax_create_application(pid_t pid) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	if (app != NULL) {
		AXUIElementSetMessagingTimeout(app, 0.5);
	}
	return app;
}

static AXUIElementRef ax_element_at(AXUIElementRef app, float x, float y) {
	AXUIElementRef el = NULL;
	if (AXUIElementCopyElementAtPosition(app, x, y, &el) != kAXErrorSuccess) {
		return NULL;
	}
	return el;
}

// ax_copy_attribute returns a retained value or NULL.
static CFTypeRef ax_copy_attribute(AXUIElementRef el, const char *name) {
	CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
	if (attr == NULL) return NULL;
	CFTypeRef value = NULL;
	AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
	CFRelease(attr);
	if (err != kAXErrorSuccess) return NULL;
	return value;
}

static int is_element(CFTypeRef v) {
	return v != NULL && CFGetTypeID(v) == AXUIElementGetTypeID();
}

static void describe_value(CFTypeRef v, AXValueInfo *out) {
	memset(out, 0, sizeof(*out));
	if (v == NULL) return;
	CFTypeID t = CFGetTypeID(v);
	if (t == CFStringGetTypeID()) {
		out->kind = AXV_STRING;
		out->str = cfstring_copy_utf8((CFStringRef)v);
	} else if (t == CFBooleanGetTypeID()) {
		out->kind = AXV_BOOL;
		out->i = CFBooleanGetValue((CFBooleanRef)v) ? 1 : 0;
	} else if (t == CFNumberGetTypeID()) {
		if (CFNumberIsFloatType((CFNumberRef)v)) {
			out->kind = AXV_FLOAT;
			CFNumberGetValue((CFNumberRef)v, kCFNumberDoubleType, &out->f);
		} else {
			out->kind = AXV_INT;
			CFNumberGetValue((CFNumberRef)v, kCFNumberLongLongType, &out->i);
		}
	} else if (t == AXValueGetTypeID()) {
		AXValueRef av = (AXValueRef)v;
		switch (AXValueGetType(av)) {
		case kAXValueCGPointType: {
			CGPoint p;
			AXValueGetValue(av, kAXValueCGPointType, &p);
			out->kind = AXV_POINT; out->x = p.x; out->y = p.y;
			break;
		}
		case kAXValueCGSizeType: {
			CGSize s;
			AXValueGetValue(av, kAXValueCGSizeType, &s);
			out->kind = AXV_SIZE; out->w = s.width; out->h = s.height;
			break;
		}
		case kAXValueCGRectType: {
			CGRect r;
			AXValueGetValue(av, kAXValueCGRectType, &r);
			out->kind = AXV_RECT;
			out->x = r.origin.x; out->y = r.origin.y; out->w = r.size.width; out->h = r.size.height;
			break;
		}
		case kAXValueCFRangeType: {
			CFRange r;
			AXValueGetValue(av, kAXValueCFRangeType, &r);
			out->kind = AXV_RANGE; out->loc = r.location; out->len = r.length;
			break;
		}
		default:
			out->kind = AXV_OPAQUE;
			out->str = strdup("AXValue");
		}
	} else if (t == CFArrayGetTypeID()) {
		out->kind = AXV_ARRAY;
		out->count = (int)CFArrayGetCount((CFArrayRef)v);
	} else if (t == AXUIElementGetTypeID()) {
		out->kind = AXV_ELEMENT;
	} else {
		out->kind = AXV_OPAQUE;
		CFStringRef desc = CFCopyTypeIDDescription(t);
		out->str = cfstring_copy_utf8(desc);
		if (desc != NULL) CFRelease(desc);
	}
}

static CFTypeRef array_get(CFTypeRef arr, int i) {
	return CFArrayGetValueAtIndex((CFArrayRef)arr, i);
}

static int array_count(CFTypeRef arr) {
	if (arr == NULL || CFGetTypeID(arr) != CFArrayGetTypeID()) return 0;
	return (int)CFArrayGetCount((CFArrayRef)arr);
}

static CFTypeRef ax_copy_attribute_names(AXUIElementRef el) {
	CFArrayRef names = NULL;
	if (AXUIElementCopyAttributeNames(el, &names) != kAXErrorSuccess) return NULL;
	return names;
}

static char *array_string_at(CFTypeRef arr, int i) {
	CFTypeRef v = CFArrayGetValueAtIndex((CFArrayRef)arr, i);
	if (v == NULL || CFGetTypeID(v) != CFStringGetTypeID()) return NULL;
	return cfstring_copy_utf8((CFStringRef)v);
}

static void cf_retain(CFTypeRef v) { if (v != NULL) CFRetain(v); }
static void cf_release(CFTypeRef v) { if (v != NULL) CFRelease(v); }
*/
import "C"
import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// element is a retained AXUIElementRef. The reference is released when the
// element is garbage collected.
type element struct {
	ref C.AXUIElementRef
}

func newElement(ref C.AXUIElementRef) *element {
	e := &element{ref: ref}
	runtime.SetFinalizer(e, func(e *element) { C.cf_release(C.CFTypeRef(e.ref)) })
	return e
}

// Attribute implements platform.Node.
func (e *element) Attribute(name string) (any, bool) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	v := C.ax_copy_attribute(e.ref, cName)
	if v == 0 {
		return nil, false
	}
	defer C.cf_release(v)
	return convertValue(v)
}

// AttributeNames implements platform.Node.
func (e *element) AttributeNames() []string {
	names := C.ax_copy_attribute_names(e.ref)
	if names == 0 {
		return nil
	}
	defer C.cf_release(names)
	n := int(C.array_count(names))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s := C.array_string_at(names, C.int(i))
		if s == nil {
			continue
		}
		out = append(out, C.GoString(s))
		C.free(unsafe.Pointer(s))
	}
	return out
}

// Parent implements platform.Node.
func (e *element) Parent() (platform.Node, bool) {
	cName := C.CString(platform.AttrParent)
	defer C.free(unsafe.Pointer(cName))
	v := C.ax_copy_attribute(e.ref, cName)
	if v == 0 {
		return nil, false
	}
	if C.is_element(v) == 0 {
		C.cf_release(v)
		return nil, false
	}
	return newElement(C.AXUIElementRef(v)), true
}

// Children implements platform.Node.
func (e *element) Children() []platform.Node {
	cName := C.CString(platform.AttrChildren)
	defer C.free(unsafe.Pointer(cName))
	arr := C.ax_copy_attribute(e.ref, cName)
	if arr == 0 {
		return nil
	}
	defer C.cf_release(arr)
	n := int(C.array_count(arr))
	out := make([]platform.Node, 0, n)
	for i := 0; i < n; i++ {
		child := C.array_get(arr, C.int(i))
		if C.is_element(child) == 0 {
			continue
		}
		C.cf_retain(child)
		out = append(out, newElement(C.AXUIElementRef(child)))
	}
	return out
}

// convertValue maps a CoreFoundation value onto the Go types platform.Node
// documents.
func convertValue(v C.CFTypeRef) (any, bool) {
	var info C.AXValueInfo
	C.describe_value(v, &info)
	if info.str != nil {
		defer C.free(unsafe.Pointer(info.str))
	}
	switch info.kind {
	case C.AXV_STRING:
		if info.str == nil {
			return "", true
		}
		return C.GoString(info.str), true
	case C.AXV_BOOL:
		return info.i != 0, true
	case C.AXV_INT:
		return int64(info.i), true
	case C.AXV_FLOAT:
		return float64(info.f), true
	case C.AXV_POINT:
		return geom.Pt(float64(info.x), float64(info.y)), true
	case C.AXV_SIZE:
		return geom.Size{W: float64(info.w), H: float64(info.h)}, true
	case C.AXV_RECT:
		return geom.R(float64(info.x), float64(info.y), float64(info.w), float64(info.h)), true
	case C.AXV_RANGE:
		return platform.Range{Location: int(info.loc), Length: int(info.len)}, true
	case C.AXV_ARRAY:
		n := int(info.count)
		items := make([]any, 0, n)
		for i := 0; i < n; i++ {
			if item, ok := convertValue(C.array_get(v, C.int(i))); ok {
				items = append(items, item)
			}
		}
		return items, true
	case C.AXV_ELEMENT:
		return platform.Opaque{TypeName: "AXUIElement"}, true
	case C.AXV_OPAQUE:
		name := "unknown"
		if info.str != nil {
			name = C.GoString(info.str)
		}
		return platform.Opaque{TypeName: name}, true
	default:
		return nil, false
	}
}

// application is the accessibility root of one process.
type application struct {
	pid  int
	root *element
}

// PID implements platform.Application.
func (a *application) PID() int { return a.pid }

// ElementAt implements platform.Application. p is in accessibility space.
func (a *application) ElementAt(p geom.Point) (platform.Node, bool) {
	ref := C.ax_element_at(a.root.ref, C.float(p.X), C.float(p.Y))
	if ref == 0 {
		return nil, false
	}
	return newElement(ref), true
}

// DarwinAccessibility implements platform.Accessibility over AXUIElement.
type DarwinAccessibility struct{}

// NewAccessibility creates the macOS accessibility backend.
func NewAccessibility() *DarwinAccessibility {
	return &DarwinAccessibility{}
}

// Application implements platform.Accessibility.
func (d *DarwinAccessibility) Application(pid int) (platform.Application, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("invalid PID %d", pid)
	}
	if err := CheckAccessibilityPermission(); err != nil {
		return nil, err
	}
	ref := C.ax_create_application(C.pid_t(pid))
	if ref == 0 {
		return nil, fmt.Errorf("failed to open accessibility root for PID %d", pid)
	}
	return &application{pid: pid, root: newElement(ref)}, nil
}

// Trusted implements platform.Accessibility.
func (d *DarwinAccessibility) Trusted() bool {
	return IsAccessibilityTrusted()
}
