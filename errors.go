package fieldpipe

import (
	"errors"
	"fmt"
)

// Check codes. Each built-in check registers its steps under one of these
// identifiers; the same identifiers key the message dictionary.
const (
	CodeIsString        = "isString"
	CodeIsNumeric       = "isNumeric"
	CodeIsInt           = "isInt"
	CodeIsBoolean       = "isBoolean"
	CodeLength          = "length"
	CodeRange           = "range"
	CodeMin             = "min"
	CodeMax             = "max"
	CodeAfter           = "after"
	CodeBefore          = "before"
	CodeIsCreditCard    = "isCreditCard"
	CodeIsDate          = "isDate"
	CodeIsEmail         = "isEmail"
	CodeIsJSON          = "isJSON"
	CodeIsLowerCase     = "isLowerCase"
	CodeIsUpperCase     = "isUpperCase"
	CodeTrim            = "trim"
	CodeIsArray         = "isArray"
	CodeIsObject        = "isObject"
	CodeIn              = "in"
	CodeNotIn           = "notIn"
	CodeRegex           = "regex"
	CodeStripTags       = "stripTags"
	CodeEncodeHTMLChars = "encodeHtmlChars"
	CodeURLDecode       = "urlDecode"
	CodeInObjectKeys    = "inObjectKeys"
	CodeRequired        = "required"
	// CodeCustom marks failures raised by caller-supplied steps outside any check.
	CodeCustom = "custom"
)

// FallbackMessage is used when neither an explicit nor a scoped message is available.
const FallbackMessage = "Unknown validate error"

// ErrValidation is matched by every failure produced by a Field or a Validator.
var ErrValidation = errors.New("fieldpipe: validation failed")

// ErrDecode reports input that could not be decoded into a record.
var ErrDecode = errors.New("fieldpipe: decode input")

// FieldError is a failure raised inside a single field's pipeline.
type FieldError struct {
	Code    string // Check code that failed, CodeRequired, or CodeCustom.
	Message string
	Cause   error // Optional: the unexpected error a step returned or the recovered panic.
}

func (e *FieldError) Error() string { return e.Message }

// Unwrap returns the cause when present and ErrValidation otherwise.
func (e *FieldError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

// NamedError is a FieldError stamped with the field name and the raw value
// the caller submitted for it (nil when the field was absent).
type NamedError struct {
	Field   string
	Value   any
	Code    string
	Message string
	Cause   error
}

func (e *NamedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *NamedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

// Fail builds a FieldError; steps may return it to fail with a specific message.
func Fail(message string) *FieldError {
	return &FieldError{Code: CodeCustom, Message: message}
}

// AsFieldError extracts a *FieldError using errors.As internally.
func AsFieldError(err error) (*FieldError, bool) {
	if err == nil {
		return nil, false
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsNamedError extracts a *NamedError using errors.As internally.
func AsNamedError(err error) (*NamedError, bool) {
	if err == nil {
		return nil, false
	}
	var ne *NamedError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}

func named(field string, value any, err error) *NamedError {
	ne := &NamedError{Field: field, Value: value, Code: CodeCustom, Message: FallbackMessage, Cause: err}
	if fe, ok := AsFieldError(err); ok {
		ne.Code = fe.Code
		ne.Message = fe.Message
		ne.Cause = fe.Cause
	}
	if ne.Message == "" {
		ne.Message = FallbackMessage
	}
	return ne
}
