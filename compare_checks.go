package fieldpipe

import (
	"reflect"

	"github.com/samber/lo"
)

// Length checks that the rune count of a string, or the element count of a
// slice, array or map, lies within [min, max].
func (f *Field) Length(min, max int) *Field {
	return f.check(CodeLength, func(f *Field) {
		f.Assert(func(v any) bool {
			n, ok := lengthOf(v)
			return ok && n >= min && n <= max
		})
	})
}

// Comparisons below work on the numeric form of the current value (see
// toNumber); values without one fail, as comparisons with NaN do.

func (f *Field) Range(min, max float64) *Field {
	return f.check(CodeRange, func(f *Field) {
		f.Assert(func(v any) bool {
			n := toNumber(v)
			return n >= min && n <= max
		})
	})
}

func (f *Field) Min(min float64) *Field {
	return f.check(CodeMin, func(f *Field) {
		f.Assert(func(v any) bool { return toNumber(v) >= min })
	})
}

func (f *Field) Max(max float64) *Field {
	return f.check(CodeMax, func(f *Field) {
		f.Assert(func(v any) bool { return toNumber(v) <= max })
	})
}

// After is the exclusive form of Min.
func (f *Field) After(min float64) *Field {
	return f.check(CodeAfter, func(f *Field) {
		f.Assert(func(v any) bool { return toNumber(v) > min })
	})
}

// Before is the exclusive form of Max.
func (f *Field) Before(max float64) *Field {
	return f.check(CodeBefore, func(f *Field) {
		f.Assert(func(v any) bool { return toNumber(v) < max })
	})
}

// In accepts values equal to one of values. Numbers compare by value across
// Go numeric types, everything else with reflect.DeepEqual.
func (f *Field) In(values ...any) *Field {
	return f.check(CodeIn, func(f *Field) {
		f.Assert(func(v any) bool { return contains(values, v) })
	})
}

// NotIn is the complement of In over the same values.
func (f *Field) NotIn(values ...any) *Field {
	return f.check(CodeNotIn, func(f *Field) {
		f.Assert(func(v any) bool { return !contains(values, v) })
	})
}

// InObjectKeys accepts values that are keys of the map obj. For string-keyed
// maps the value is looked up by its textual form.
func (f *Field) InObjectKeys(obj any) *Field {
	return f.check(CodeInObjectKeys, func(f *Field) {
		f.Assert(func(v any) bool { return hasKey(obj, v) })
	})
}

func contains(values []any, v any) bool {
	return lo.ContainsBy(values, func(x any) bool { return sameValue(x, v) })
}

func hasKey(obj any, key any) bool {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Map {
		return false
	}
	kt := rv.Type().Key()
	if kt.Kind() == reflect.String {
		return rv.MapIndex(reflect.ValueOf(toText(key)).Convert(kt)).IsValid()
	}
	iter := rv.MapRange()
	for iter.Next() {
		if sameValue(iter.Key().Interface(), key) {
			return true
		}
	}
	return false
}
