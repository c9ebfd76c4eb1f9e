package fieldpipe

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// formats validates formats go-playground/validator already knows about.
var formats = validator.New()

var (
	tagPattern  = regexp.MustCompile(`<.+?(>|$)`)
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"'", "&#039;",
		"<", "&lt;",
		">", "&gt;",
	)
	errInvalidUTF8 = errors.New("fieldpipe: decoded value is not valid UTF-8")
)

// minCardLength is the shortest accepted card number, separators included.
const minCardLength = 16

// IsCreditCard accepts card numbers of at least 16 characters that pass the
// Luhn checksum.
func (f *Field) IsCreditCard() *Field {
	return f.check(CodeIsCreditCard, func(f *Field) {
		f.Assert(func(v any) bool {
			s, ok := asString(v)
			return ok && utf8.RuneCountInString(s) >= minCardLength && formats.Var(s, "credit_card") == nil
		})
	})
}

func (f *Field) IsEmail() *Field {
	return f.check(CodeIsEmail, func(f *Field) {
		f.Assert(func(v any) bool {
			s, ok := asString(v)
			return ok && formats.Var(s, "email") == nil
		})
	})
}

func (f *Field) IsLowerCase() *Field {
	return f.check(CodeIsLowerCase, func(f *Field) {
		f.Assert(func(v any) bool {
			s, ok := asString(v)
			return ok && s == strings.ToLower(s)
		})
	})
}

func (f *Field) IsUpperCase() *Field {
	return f.check(CodeIsUpperCase, func(f *Field) {
		f.Assert(func(v any) bool {
			s, ok := asString(v)
			return ok && s == strings.ToUpper(s)
		})
	})
}

// Trim strips leading and trailing white space.
func (f *Field) Trim() *Field {
	return f.check(CodeTrim, func(f *Field) {
		f.Custom(stringTransform(strings.TrimSpace))
	})
}

// Regex checks the textual form of the value against re.
func (f *Field) Regex(re *regexp.Regexp) *Field {
	return f.check(CodeRegex, func(f *Field) {
		f.Assert(func(v any) bool { return re.MatchString(toText(v)) })
	})
}

// RegexSearch replaces the value with the leftmost match of re and its
// submatches ([]string). It fails with the regex message when nothing matches.
func (f *Field) RegexSearch(re *regexp.Regexp) *Field {
	return f.check(CodeRegex, func(f *Field) {
		f.Custom(func(v any) (any, error) { return re.FindStringSubmatch(toText(v)), nil }).
			Assert(func(v any) bool {
				m, ok := v.([]string)
				return ok && m != nil
			})
	})
}

// StripTags removes anything that looks like an HTML tag.
func (f *Field) StripTags() *Field {
	return f.check(CodeStripTags, func(f *Field) {
		f.Custom(stringTransform(func(s string) string { return tagPattern.ReplaceAllString(s, "") }))
	})
}

// EncodeHTMLChars escapes & " ' < and >.
func (f *Field) EncodeHTMLChars() *Field {
	return f.check(CodeEncodeHTMLChars, func(f *Field) {
		f.Custom(stringTransform(htmlEscaper.Replace))
	})
}

// URLDecode decodes percent-escapes. '+' is left as is.
func (f *Field) URLDecode() *Field {
	return f.check(CodeURLDecode, func(f *Field) {
		f.Custom(func(v any) (any, error) {
			s, ok := asString(v)
			if !ok {
				return nil, shapeError(v)
			}
			out, err := url.PathUnescape(s)
			if err != nil {
				return nil, err
			}
			if !utf8.ValidString(out) {
				return nil, errInvalidUTF8
			}
			return out, nil
		})
	})
}

func stringTransform(fn func(string) string) TransformFunc {
	return func(v any) (any, error) {
		s, ok := asString(v)
		if !ok {
			return nil, shapeError(v)
		}
		return fn(s), nil
	}
}
