package fieldpipe

// TransformFunc replaces the running value. Returning a nil value leaves the
// running value unchanged; returning an error fails the field.
type TransformFunc func(v any) (any, error)

// Predicate reports whether v passes an assertion.
type Predicate func(v any) bool

type stepKind int

const (
	stepTransform stepKind = iota
	stepAssert
)

// scope is the message context a step is registered under. It is copied into
// every step at registration time and never consulted during execution.
type scope struct {
	code    string
	message string
}

type step struct {
	kind      stepKind
	scope     scope
	transform TransformFunc
	assert    Predicate
}

// Field is the validation pipeline for one named value: an ordered list of
// transform and assert steps plus required/default handling.
//
// A Field is configured once through its builder methods and may then be
// validated any number of times; Validate never mutates it, so a configured
// Field is safe for concurrent use.
type Field struct {
	required      bool
	def           any
	errorsEnabled bool
	messages      Messages
	steps         []step
	scope         scope
}

// Rule returns a fresh, empty Field.
func Rule() *Field {
	return &Field{errorsEnabled: true}
}

// Required marks the field as required: a nil value fails with the
// "required" message.
func (f *Field) Required() *Field {
	f.required = true
	return f
}

// Default sets the value returned for nil input on optional fields and for
// any failure while errors are disabled.
func (f *Field) Default(v any) *Field {
	f.def = v
	return f
}

// ErrNo disables failures for this field: Validate always succeeds and
// falls back to the default value.
func (f *Field) ErrNo() *Field {
	f.errorsEnabled = false
	return f
}

// SetCustomErrors overlays message overrides on the field's dictionary.
// Codes not present in overrides keep their current message.
func (f *Field) SetCustomErrors(overrides Messages) *Field {
	f.messages = f.messages.Merge(overrides)
	return f
}

// SetMessage arms message for every step appended afterwards outside of a
// built-in check or Try. An empty message disarms it.
func (f *Field) SetMessage(message string) *Field {
	f.scope = scope{message: message}
	return f
}

// Custom appends a transform step.
func (f *Field) Custom(fn TransformFunc) *Field {
	f.steps = append(f.steps, step{kind: stepTransform, scope: f.scope, transform: fn})
	return f
}

// Assert appends a step that fails when pred returns false. The failure
// message is message when given, otherwise the armed message, otherwise
// FallbackMessage.
func (f *Field) Assert(pred Predicate, message ...string) *Field {
	s := f.scope
	if len(message) > 0 && message[0] != "" {
		s.message = message[0]
	}
	f.steps = append(f.steps, step{kind: stepAssert, scope: s, assert: pred})
	return f
}

// Try arms message while configure appends steps, then restores the
// previously armed message.
func (f *Field) Try(message string, configure func(*Field)) *Field {
	return f.within(scope{code: f.scope.code, message: message}, configure)
}

// check registers a built-in check: every step configure appends fails with
// the message stored for code.
func (f *Field) check(code string, configure func(*Field)) *Field {
	return f.within(scope{code: code}, configure)
}

func (f *Field) within(s scope, configure func(*Field)) *Field {
	prev := f.scope
	f.scope = s
	defer func() { f.scope = prev }()
	configure(f)
	return f
}

// Validate runs value through the pipeline.
//
// A nil value short-circuits: required fields fail (unless errors are
// disabled), others return the default without running any step. Otherwise
// the steps run in registration order and the first failure stops the run.
func (f *Field) Validate(value any) (any, error) {
	if isAbsent(value) {
		if f.required && f.errorsEnabled {
			return nil, &FieldError{Code: CodeRequired, Message: f.messages.Lookup(CodeRequired)}
		}
		return f.def, nil
	}
	out, err := f.run(value)
	if err != nil {
		if !f.errorsEnabled {
			return f.def, nil
		}
		return nil, err
	}
	return out, nil
}

// IsRequired reports whether Required was applied.
func (f *Field) IsRequired() bool { return f.required }

// ErrorsEnabled reports whether failures are surfaced (ErrNo not applied).
func (f *Field) ErrorsEnabled() bool { return f.errorsEnabled }

// Len returns the number of registered steps.
func (f *Field) Len() int { return len(f.steps) }
