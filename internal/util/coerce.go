package util

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// CoerceText converts a sheet cell of any primitive type to trimmed text.
// nil becomes "", numbers use their shortest decimal form (1.0 is "1"),
// times are RFC 3339. Every comparison against cell values goes through here.
func CoerceText(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	case []byte:
		s = string(t)
	case bool:
		s = strconv.FormatBool(t)
	case time.Time:
		s = t.Format(time.RFC3339)
	case fmt.Stringer:
		s = t.String()
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			s = strconv.FormatInt(rv.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			s = strconv.FormatUint(rv.Uint(), 10)
		case reflect.Float32:
			s = strconv.FormatFloat(rv.Float(), 'f', -1, 32)
		case reflect.Float64:
			s = strconv.FormatFloat(rv.Float(), 'f', -1, 64)
		case reflect.Pointer:
			if rv.IsNil() {
				return ""
			}
			return CoerceText(rv.Elem().Interface())
		default:
			s = fmt.Sprint(v)
		}
	}
	return strings.TrimSpace(s)
}
