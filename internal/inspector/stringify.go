package inspector

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// StringifyValue renders one attribute value for the forensic dump. Arrays
// are summarised by count only; nested values can be arbitrarily deep.
func StringifyValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(x).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(x).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case geom.Point:
		return x.String()
	case geom.Size:
		return x.String()
	case geom.Rect:
		return x.String()
	case platform.Range:
		return fmt.Sprintf("range(%d, %d)", x.Location, x.Length)
	case []any:
		return fmt.Sprintf("[%d items]", len(x))
	case platform.Opaque:
		return "<" + x.TypeName + ">"
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return fmt.Sprintf("[%d items]", rv.Len())
	}
	return "<" + typeName(rv.Type()) + ">"
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
