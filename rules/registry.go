package rules

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/reoring/fieldpipe"
)

// Builder appends a check to f using arguments taken from a rule document.
type Builder func(f *fieldpipe.Field, args []any) error

var registry = map[string]Builder{
	"isString":        noArgs((*fieldpipe.Field).IsString),
	"isNumeric":       noArgs((*fieldpipe.Field).IsNumeric),
	"isInt":           noArgs((*fieldpipe.Field).IsInt),
	"isBoolean":       noArgs((*fieldpipe.Field).IsBoolean),
	"isCreditCard":    noArgs((*fieldpipe.Field).IsCreditCard),
	"isEmail":         noArgs((*fieldpipe.Field).IsEmail),
	"isLowerCase":     noArgs((*fieldpipe.Field).IsLowerCase),
	"isUpperCase":     noArgs((*fieldpipe.Field).IsUpperCase),
	"trim":            noArgs((*fieldpipe.Field).Trim),
	"isArray":         noArgs((*fieldpipe.Field).IsArray),
	"isObject":        noArgs((*fieldpipe.Field).IsObject),
	"stripTags":       noArgs((*fieldpipe.Field).StripTags),
	"encodeHtmlChars": noArgs((*fieldpipe.Field).EncodeHTMLChars),
	"urlDecode":       noArgs((*fieldpipe.Field).URLDecode),
	"length": func(f *fieldpipe.Field, args []any) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: want [min, max], got %d values", ErrBadArgs, len(args))
		}
		lo, err := intArg(args[0])
		if err != nil {
			return err
		}
		hi, err := intArg(args[1])
		if err != nil {
			return err
		}
		f.Length(lo, hi)
		return nil
	},
	"range": func(f *fieldpipe.Field, args []any) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: want [min, max], got %d values", ErrBadArgs, len(args))
		}
		lo, err := floatArg(args[0])
		if err != nil {
			return err
		}
		hi, err := floatArg(args[1])
		if err != nil {
			return err
		}
		f.Range(lo, hi)
		return nil
	},
	"min":    oneFloat((*fieldpipe.Field).Min),
	"max":    oneFloat((*fieldpipe.Field).Max),
	"after":  oneFloat((*fieldpipe.Field).After),
	"before": oneFloat((*fieldpipe.Field).Before),
	"isDate": func(f *fieldpipe.Field, args []any) error {
		switch len(args) {
		case 0:
			f.IsDate()
		case 1:
			layout, ok := args[0].(string)
			if !ok {
				return fmt.Errorf("%w: layout must be a string, got %T", ErrBadArgs, args[0])
			}
			f.IsDate(layout)
		default:
			return fmt.Errorf("%w: want at most one layout", ErrBadArgs)
		}
		return nil
	},
	"isJSON": func(f *fieldpipe.Field, args []any) error {
		switch len(args) {
		case 0:
			f.IsJSON()
		case 1:
			parse, ok := args[0].(bool)
			if !ok {
				return fmt.Errorf("%w: parse flag must be a bool, got %T", ErrBadArgs, args[0])
			}
			f.IsJSON(parse)
		default:
			return fmt.Errorf("%w: want at most one parse flag", ErrBadArgs)
		}
		return nil
	},
	"in": func(f *fieldpipe.Field, args []any) error {
		f.In(args...)
		return nil
	},
	"notIn": func(f *fieldpipe.Field, args []any) error {
		f.NotIn(args...)
		return nil
	},
	"regex":       oneRegexp((*fieldpipe.Field).Regex),
	"regexSearch": oneRegexp((*fieldpipe.Field).RegexSearch),
	"inObjectKeys": func(f *fieldpipe.Field, args []any) error {
		if len(args) == 1 {
			if m, ok := args[0].(map[string]any); ok {
				f.InObjectKeys(m)
				return nil
			}
		}
		keys := make(map[string]bool, len(args))
		for _, a := range args {
			keys[fmt.Sprint(a)] = true
		}
		f.InObjectKeys(keys)
		return nil
	},
}

// Register adds or replaces a named check. It is not safe to call while
// documents are being loaded concurrently.
func Register(name string, b Builder) {
	if b == nil {
		delete(registry, name)
		return
	}
	registry[name] = b
}

// Names lists the registered check names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply appends the named check to f.
func Apply(f *fieldpipe.Field, name string, args []any) error {
	b, ok := registry[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}
	if err := b(f, args); err != nil {
		return fmt.Errorf("check %q: %w", name, err)
	}
	return nil
}

func noArgs(fn func(*fieldpipe.Field) *fieldpipe.Field) Builder {
	return func(f *fieldpipe.Field, args []any) error {
		if len(args) != 0 {
			return fmt.Errorf("%w: takes no arguments, got %d", ErrBadArgs, len(args))
		}
		fn(f)
		return nil
	}
}

func oneFloat(fn func(*fieldpipe.Field, float64) *fieldpipe.Field) Builder {
	return func(f *fieldpipe.Field, args []any) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: want one number, got %d values", ErrBadArgs, len(args))
		}
		n, err := floatArg(args[0])
		if err != nil {
			return err
		}
		fn(f, n)
		return nil
	}
}

func oneRegexp(fn func(*fieldpipe.Field, *regexp.Regexp) *fieldpipe.Field) Builder {
	return func(f *fieldpipe.Field, args []any) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: want one pattern, got %d values", ErrBadArgs, len(args))
		}
		pattern, ok := args[0].(string)
		if !ok {
			return fmt.Errorf("%w: pattern must be a string, got %T", ErrBadArgs, args[0])
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadArgs, err)
		}
		fn(f, re)
		return nil
	}
}

func floatArg(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("%w: want a number, got %T", ErrBadArgs, v)
}

func intArg(v any) (int, error) {
	f, err := floatArg(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: want an integer, got %v", ErrBadArgs, v)
	}
	return int(f), nil
}
