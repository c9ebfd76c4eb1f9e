package fieldpipe

import (
	"errors"
	"fmt"
	"reflect"
)

// run folds value through the steps, stopping at the first failure.
func (f *Field) run(value any) (any, error) {
	acc := value
	for i := range f.steps {
		next, err := f.apply(&f.steps[i], acc)
		if err != nil {
			return nil, err
		}
		if next != nil {
			acc = next
		}
	}
	return acc, nil
}

// apply executes one step. Panics and unexpected errors are converted into a
// FieldError carrying the step's message so nothing escapes unlabelled.
func (f *Field) apply(s *step, v any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, f.fail(s.scope, fmt.Errorf("fieldpipe: step panicked: %v", r))
		}
	}()

	if s.kind == stepAssert {
		if !s.assert(v) {
			return nil, f.fail(s.scope, nil)
		}
		return nil, nil
	}

	next, err := s.transform(v)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, f.fail(s.scope, err)
	}
	return next, nil
}

func (f *Field) fail(s scope, cause error) *FieldError {
	fe := &FieldError{Code: CodeCustom, Message: FallbackMessage, Cause: cause}
	if s.code != "" {
		fe.Code = s.code
	}
	switch {
	case s.message != "":
		fe.Message = s.message
	case s.code != "":
		fe.Message = f.messages.Lookup(s.code)
	}
	return fe
}

// isAbsent reports whether v stands for a missing value: a nil interface or a
// nil pointer.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
