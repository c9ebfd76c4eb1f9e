package fieldpipe

import (
	"log/slog"
	"sort"

	"github.com/samber/lo"
)

// Rules maps field names to their pipelines.
type Rules map[string]*Field

// Validator runs a set of named Fields over input records. It stops at the
// first failing field.
type Validator struct {
	rules  Rules
	order  []string
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithOrder fixes the order in which fields are validated. Names listed here
// run first, in the given order; the remaining fields follow sorted by name.
// Names without a rule are ignored.
func WithOrder(names ...string) Option {
	return func(v *Validator) { v.order = append(v.order, names...) }
}

// WithLogger sets the logger failures are reported to at debug level. The
// default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// Make builds a Validator over rules. The map is kept by reference, not copied.
func Make(rules Rules, opts ...Option) *Validator {
	v := &Validator{rules: rules, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Fields returns the field names in validation order.
func (v *Validator) Fields() []string {
	names := make([]string, 0, len(v.rules))
	seen := make(map[string]bool, len(v.rules))
	for _, name := range v.order {
		if _, ok := v.rules[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	rest := lo.Filter(lo.Keys(v.rules), func(name string, _ int) bool { return !seen[name] })
	sort.Strings(rest)
	return append(names, rest...)
}

// Validate runs every field over its value in input (nil when the key is
// absent) and returns the collected results. On the first failure it returns
// a *NamedError for that field and no partial output.
func (v *Validator) Validate(input map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(v.rules))
	for _, name := range v.Fields() {
		value := input[name]
		res, err := v.rules[name].Validate(value)
		if err != nil {
			ne := named(name, value, err)
			v.logger.Debug("field validation failed", "field", name, "code", ne.Code)
			return nil, ne
		}
		out[name] = res
	}
	return out, nil
}

// ErrNo disables failures on every field.
func (v *Validator) ErrNo() *Validator {
	return v.each(func(f *Field) { f.ErrNo() })
}

// SetCustomErrors applies the same message overrides to every field.
func (v *Validator) SetCustomErrors(overrides Messages) *Validator {
	return v.each(func(f *Field) { f.SetCustomErrors(overrides) })
}

func (v *Validator) each(fn func(*Field)) *Validator {
	for _, f := range v.rules {
		fn(f)
	}
	return v
}
