package adminclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// PageRequest selects one page of a list. Zero values fall back to the
// server defaults of page 1 and size 10.
type PageRequest struct {
	Current int `json:"current"`
	Size    int `json:"size"`
}

// DateTimeLayout is the format of time filters such as startTime
const DateTimeLayout = "2006-01-02 15:04:05"

// EncodeQuery turns a filter struct into query parameters named after its
// json tags. Empty strings, zero numbers, nil pointers and zero times are
// left out; a pointer to a zero value is sent, which is how a filter on
// status 0 is expressed.
func EncodeQuery(filters ...any) url.Values {
	values := url.Values{}
	for _, f := range filters {
		if f == nil {
			continue
		}
		if m, ok := f.(map[string]string); ok {
			for k, v := range m {
				if v != "" {
					values.Set(k, v)
				}
			}
			continue
		}
		encodeStruct(values, reflect.ValueOf(f))
	}
	return values
}

func encodeStruct(values url.Values, v reflect.Value) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := v.Field(i)
		if field.Anonymous {
			encodeStruct(values, fv)
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		explicit := false
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
			explicit = true
		}
		if s, ok := formatValue(fv, explicit); ok {
			values.Set(name, s)
		}
	}
}

func formatValue(v reflect.Value, explicit bool) (string, bool) {
	if t, ok := v.Interface().(time.Time); ok {
		if t.IsZero() {
			return "", false
		}
		return t.Format(DateTimeLayout), true
	}
	if s, ok := v.Interface().(fmt.Stringer); ok && v.Kind() == reflect.Struct {
		if !explicit && v.IsZero() {
			return "", false
		}
		return s.String(), true
	}

	switch v.Kind() {
	case reflect.String:
		s := strings.TrimSpace(v.String())
		return s, s != ""
	case reflect.Bool:
		if !explicit && !v.Bool() {
			return "", false
		}
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !explicit && v.Int() == 0 {
			return "", false
		}
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !explicit && v.Uint() == 0 {
			return "", false
		}
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		if !explicit && v.Float() == 0 {
			return "", false
		}
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	}
	return "", false
}

// Int returns a pointer to v, for filters where zero is a real value
func Int(v int) *int {
	return &v
}
