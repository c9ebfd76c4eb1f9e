package fieldpipe

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"

	json "github.com/goccy/go-json"
)

// errShape reports a value whose Go type a check cannot work with.
var errShape = errors.New("fieldpipe: unsupported value type")

func shapeError(v any) error { return fmt.Errorf("%w: %T", errShape, v) }

// DefaultDateLayout is the layout IsDate uses when none is given.
const DefaultDateLayout = time.DateOnly

// IsString converts the value to its textual form. Numbers render in their
// shortest form, booleans as "true"/"false", Stringers through String.
func (f *Field) IsString() *Field {
	return f.check(CodeIsString, func(f *Field) {
		f.Custom(func(v any) (any, error) { return toText(v), nil }).
			Assert(func(v any) bool {
				_, ok := v.(string)
				return ok
			})
	})
}

// IsNumeric converts the value to float64 and rejects NaN. Infinities pass.
func (f *Field) IsNumeric() *Field {
	return f.check(CodeIsNumeric, func(f *Field) {
		f.Custom(func(v any) (any, error) { return toNumber(v), nil }).
			Assert(func(v any) bool {
				n, ok := v.(float64)
				return ok && !math.IsNaN(n)
			})
	})
}

// IsInt parses the leading integer of the value's textual form into an int,
// so "12abc" becomes 12 and 12.7 becomes 12.
func (f *Field) IsInt() *Field {
	return f.check(CodeIsInt, func(f *Field) {
		f.Custom(func(v any) (any, error) {
			n, ok := parseLeadingInt(v)
			if !ok {
				return math.NaN(), nil
			}
			return int(n), nil
		}).Assert(func(v any) bool {
			_, ok := v.(int)
			return ok
		})
	})
}

// IsBoolean converts the value to its truthiness. It never fails.
func (f *Field) IsBoolean() *Field {
	return f.check(CodeIsBoolean, func(f *Field) {
		f.Custom(func(v any) (any, error) { return truthy(v), nil })
	})
}

// IsArray accepts slices and arrays.
func (f *Field) IsArray() *Field {
	return f.check(CodeIsArray, func(f *Field) {
		f.Assert(func(v any) bool {
			k := reflect.ValueOf(v).Kind()
			return k == reflect.Slice || k == reflect.Array
		})
	})
}

// IsObject accepts any non-primitive value: maps, structs, slices, arrays,
// pointers and funcs.
func (f *Field) IsObject() *Field {
	return f.check(CodeIsObject, func(f *Field) {
		f.Assert(func(v any) bool {
			switch reflect.ValueOf(v).Kind() {
			case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array,
				reflect.Pointer, reflect.Func, reflect.Interface:
				return true
			}
			return false
		})
	})
}

// IsJSON checks that the value is a JSON document. With parse (the default)
// the value is replaced by the decoded document.
func (f *Field) IsJSON(parse ...bool) *Field {
	decode := len(parse) == 0 || parse[0]
	return f.check(CodeIsJSON, func(f *Field) {
		if decode {
			f.Custom(func(v any) (any, error) {
				s, ok := asString(v)
				if !ok {
					return nil, shapeError(v)
				}
				var out any
				if err := json.Unmarshal([]byte(s), &out); err != nil {
					return nil, err
				}
				return out, nil
			})
			return
		}
		f.Assert(func(v any) bool {
			s, ok := asString(v)
			return ok && json.Valid([]byte(s))
		})
	})
}

// IsDate parses the value with a Go time layout (DefaultDateLayout when
// omitted) and replaces it with the resulting time.Time. time.Time values
// pass through.
func (f *Field) IsDate(layout ...string) *Field {
	l := DefaultDateLayout
	if len(layout) > 0 && layout[0] != "" {
		l = layout[0]
	}
	return f.check(CodeIsDate, func(f *Field) {
		f.Custom(func(v any) (any, error) {
			if t, ok := v.(time.Time); ok {
				return t, nil
			}
			s, ok := asString(v)
			if !ok {
				return nil, shapeError(v)
			}
			return time.Parse(l, s)
		})
	})
}
