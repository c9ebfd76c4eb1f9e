package fieldpipe_test

import (
	"encoding/json"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/fieldpipe"
)

type checkCase struct {
	name  string
	field *fieldpipe.Field
	in    any
	want  any
	code  string // non-empty when a failure with this code is expected
}

func runCheckCases(t *testing.T, cases []checkCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.field.Validate(tc.in)
			if tc.code != "" {
				fe, ok := fieldpipe.AsFieldError(err)
				require.Truef(t, ok, "expected failure %q, got value %v err %v", tc.code, got, err)
				assert.Equal(t, tc.code, fe.Code)
				assert.NotEmpty(t, fe.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestChecks_Coercions(t *testing.T) {
	r := fieldpipe.Rule
	runCheckCases(t, []checkCase{
		{name: "isString int", field: r().IsString(), in: 12, want: "12"},
		{name: "isString float", field: r().IsString(), in: 1.5, want: "1.5"},
		{name: "isString large float", field: r().IsString(), in: 1e21, want: "1e+21"},
		{name: "isString bool", field: r().IsString(), in: true, want: "true"},
		{name: "isString bytes", field: r().IsString(), in: []byte("ab"), want: "ab"},

		{name: "isNumeric string", field: r().IsNumeric(), in: "3.5", want: 3.5},
		{name: "isNumeric padded", field: r().IsNumeric(), in: "  7 ", want: 7.0},
		{name: "isNumeric empty", field: r().IsNumeric(), in: "", want: 0.0},
		{name: "isNumeric hex", field: r().IsNumeric(), in: "0x10", want: 16.0},
		{name: "isNumeric bool", field: r().IsNumeric(), in: true, want: 1.0},
		{name: "isNumeric json.Number", field: r().IsNumeric(), in: json.Number("2.5"), want: 2.5},
		{name: "isNumeric infinity", field: r().IsNumeric(), in: "Infinity", want: math.Inf(1)},
		{name: "isNumeric -infinity", field: r().IsNumeric(), in: math.Inf(-1), want: math.Inf(-1)},
		{name: "isNumeric word", field: r().IsNumeric(), in: "abc", code: fieldpipe.CodeIsNumeric},
		{name: "isNumeric nan", field: r().IsNumeric(), in: math.NaN(), code: fieldpipe.CodeIsNumeric},
		{name: "isNumeric slice", field: r().IsNumeric(), in: []int{1}, code: fieldpipe.CodeIsNumeric},

		{name: "isInt leading digits", field: r().IsInt(), in: "12abc", want: 12},
		{name: "isInt float truncates", field: r().IsInt(), in: 12.7, want: 12},
		{name: "isInt negative", field: r().IsInt(), in: "-5", want: -5},
		{name: "isInt hex", field: r().IsInt(), in: "0x1F", want: 31},
		{name: "isInt leading space", field: r().IsInt(), in: " 42", want: 42},
		{name: "isInt int64", field: r().IsInt(), in: int64(9), want: 9},
		{name: "isInt word", field: r().IsInt(), in: "abc", code: fieldpipe.CodeIsInt},
		{name: "isInt bool", field: r().IsInt(), in: true, code: fieldpipe.CodeIsInt},

		{name: "isBoolean empty", field: r().IsBoolean(), in: "", want: false},
		{name: "isBoolean text", field: r().IsBoolean(), in: "x", want: true},
		{name: "isBoolean zero", field: r().IsBoolean(), in: 0, want: false},
		{name: "isBoolean number", field: r().IsBoolean(), in: 2, want: true},
		{name: "isBoolean false", field: r().IsBoolean(), in: false, want: false},
		{name: "isBoolean map", field: r().IsBoolean(), in: map[string]any{}, want: true},
	})
}

func TestChecks_Bounds(t *testing.T) {
	r := fieldpipe.Rule
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	runCheckCases(t, []checkCase{
		{name: "length ok", field: r().Length(1, 3), in: "abc", want: "abc"},
		{name: "length runes", field: r().Length(1, 3), in: "héé", want: "héé"},
		{name: "length empty", field: r().Length(1, 3), in: "", code: fieldpipe.CodeLength},
		{name: "length long", field: r().Length(1, 3), in: "abcd", code: fieldpipe.CodeLength},
		{name: "length slice", field: r().Length(1, 3), in: []int{1}, want: []int{1}},
		{name: "length map", field: r().Length(1, 3), in: map[string]int{"a": 1, "b": 2}, want: map[string]int{"a": 1, "b": 2}},
		{name: "length number", field: r().Length(1, 3), in: 5, code: fieldpipe.CodeLength},

		{name: "range ok", field: r().Range(1, 10), in: 5, want: 5},
		{name: "range numeric string", field: r().Range(1, 10), in: "5", want: "5"},
		{name: "range inclusive", field: r().Range(1, 10), in: 10.0, want: 10.0},
		{name: "range above", field: r().Range(1, 10), in: 11, code: fieldpipe.CodeRange},
		{name: "range word", field: r().Range(1, 10), in: "abc", code: fieldpipe.CodeRange},
		{name: "range after isNumeric", field: r().IsNumeric().Range(1, 10), in: "5", want: 5.0},

		{name: "min ok", field: r().Min(1), in: 1, want: 1},
		{name: "min fail", field: r().Min(1), in: 0, code: fieldpipe.CodeMin},
		{name: "max ok", field: r().Max(5), in: uint8(5), want: uint8(5)},
		{name: "max fail", field: r().Max(5), in: 6, code: fieldpipe.CodeMax},
		{name: "after exclusive", field: r().After(1), in: 1, code: fieldpipe.CodeAfter},
		{name: "after ok", field: r().After(1), in: 2, want: 2},
		{name: "before exclusive", field: r().Before(5), in: 5, code: fieldpipe.CodeBefore},
		{name: "before ok", field: r().Before(5), in: 4, want: 4},
		{name: "after time", field: r().After(float64(epoch.UnixMilli())), in: epoch.Add(time.Second), want: epoch.Add(time.Second)},
		{name: "before time", field: r().Before(float64(epoch.UnixMilli())), in: epoch, code: fieldpipe.CodeBefore},
	})
}

func TestChecks_Membership(t *testing.T) {
	r := fieldpipe.Rule
	set := []any{1, 2, 3}
	runCheckCases(t, []checkCase{
		{name: "in int", field: r().In(set...), in: 1, want: 1},
		{name: "in int64", field: r().In(set...), in: int64(2), want: int64(2)},
		{name: "in float", field: r().In(set...), in: 3.0, want: 3.0},
		{name: "in after isInt", field: r().IsInt().In(set...), in: "2", want: 2},
		{name: "in missing", field: r().In(set...), in: 4, code: fieldpipe.CodeIn},
		{name: "in string is not number", field: r().In(set...), in: "1", code: fieldpipe.CodeIn},
		{name: "in strings", field: r().In("a", "b"), in: "b", want: "b"},

		{name: "notIn missing", field: r().NotIn(set...), in: 4, want: 4},
		{name: "notIn present", field: r().NotIn(set...), in: 1, code: fieldpipe.CodeNotIn},

		{name: "inObjectKeys ok", field: r().InObjectKeys(map[string]int{"a": 1}), in: "a", want: "a"},
		{name: "inObjectKeys missing", field: r().InObjectKeys(map[string]int{"a": 1}), in: "b", code: fieldpipe.CodeInObjectKeys},
		{name: "inObjectKeys numeric text", field: r().InObjectKeys(map[string]bool{"7": true}), in: 7, want: 7},
		{name: "inObjectKeys int keys", field: r().InObjectKeys(map[int]string{1: "x"}), in: 1.0, want: 1.0},
		{name: "inObjectKeys not a map", field: r().InObjectKeys([]string{"a"}), in: "a", code: fieldpipe.CodeInObjectKeys},
	})
}

func TestChecks_InAndNotInAreComplements(t *testing.T) {
	set := []any{1, 2, 3}
	in := fieldpipe.Rule().In(set...)
	notIn := fieldpipe.Rule().NotIn(set...)
	for _, v := range []any{0, 1, 2, 3, 4, 2.5, "2", int8(3), uint(1)} {
		_, errIn := in.Validate(v)
		_, errNotIn := notIn.Validate(v)
		assert.NotEqualf(t, errIn == nil, errNotIn == nil, "value %#v", v)
	}
}

type point struct{ X, Y int }

func TestChecks_Shapes(t *testing.T) {
	r := fieldpipe.Rule
	runCheckCases(t, []checkCase{
		{name: "isArray slice", field: r().IsArray(), in: []int{}, want: []int{}},
		{name: "isArray array", field: r().IsArray(), in: [2]string{"a", "b"}, want: [2]string{"a", "b"}},
		{name: "isArray string", field: r().IsArray(), in: "x", code: fieldpipe.CodeIsArray},
		{name: "isArray map", field: r().IsArray(), in: map[string]any{}, code: fieldpipe.CodeIsArray},

		{name: "isObject map", field: r().IsObject(), in: map[string]any{"a": 1}, want: map[string]any{"a": 1}},
		{name: "isObject struct", field: r().IsObject(), in: point{1, 2}, want: point{1, 2}},
		{name: "isObject slice", field: r().IsObject(), in: []int{1}, want: []int{1}},
		{name: "isObject string", field: r().IsObject(), in: "x", code: fieldpipe.CodeIsObject},
		{name: "isObject number", field: r().IsObject(), in: 1, code: fieldpipe.CodeIsObject},

		{name: "isJSON parse", field: r().IsJSON(), in: `{"a":1}`, want: map[string]any{"a": 1.0}},
		{name: "isJSON bytes", field: r().IsJSON(), in: []byte(`[true]`), want: []any{true}},
		{name: "isJSON broken", field: r().IsJSON(), in: `{bad`, code: fieldpipe.CodeIsJSON},
		{name: "isJSON number input", field: r().IsJSON(), in: 5, code: fieldpipe.CodeIsJSON},
		{name: "isJSON validate only", field: r().IsJSON(false), in: `[1]`, want: `[1]`},
		{name: "isJSON validate only broken", field: r().IsJSON(false), in: `{`, code: fieldpipe.CodeIsJSON},

		{name: "isDate default layout", field: r().IsDate(), in: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "isDate impossible day", field: r().IsDate(), in: "2024-02-30", code: fieldpipe.CodeIsDate},
		{name: "isDate wrong layout", field: r().IsDate(), in: "29.02.2024", code: fieldpipe.CodeIsDate},
		{name: "isDate custom layout", field: r().IsDate("02/01/2006"), in: "31/12/2024", want: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "isDate time passes", field: r().IsDate(), in: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), want: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)},
		{name: "isDate number", field: r().IsDate(), in: 20240101, code: fieldpipe.CodeIsDate},
	})
}

func TestChecks_Strings(t *testing.T) {
	r := fieldpipe.Rule
	runCheckCases(t, []checkCase{
		{name: "card ok", field: r().IsCreditCard(), in: "4111111111111111", want: "4111111111111111"},
		{name: "card bad checksum", field: r().IsCreditCard(), in: "4111111111111112", code: fieldpipe.CodeIsCreditCard},
		{name: "card too short", field: r().IsCreditCard(), in: "378282246310005", code: fieldpipe.CodeIsCreditCard},
		{name: "card number type", field: r().IsCreditCard(), in: 4111111111111111, code: fieldpipe.CodeIsCreditCard},

		{name: "email ok", field: r().IsEmail(), in: "reo@example.com", want: "reo@example.com"},
		{name: "email bad", field: r().IsEmail(), in: "nope", code: fieldpipe.CodeIsEmail},
		{name: "email number", field: r().IsEmail(), in: 5, code: fieldpipe.CodeIsEmail},

		{name: "lower ok", field: r().IsLowerCase(), in: "abc", want: "abc"},
		{name: "lower bad", field: r().IsLowerCase(), in: "aBc", code: fieldpipe.CodeIsLowerCase},
		{name: "upper ok", field: r().IsUpperCase(), in: "ABC", want: "ABC"},
		{name: "upper bad", field: r().IsUpperCase(), in: "AbC", code: fieldpipe.CodeIsUpperCase},
		{name: "upper number", field: r().IsUpperCase(), in: 12, code: fieldpipe.CodeIsUpperCase},

		{name: "trim", field: r().Trim(), in: "  x \n", want: "x"},
		{name: "trim number", field: r().Trim(), in: 5, code: fieldpipe.CodeTrim},

		{name: "regex ok", field: r().Regex(regexp.MustCompile(`^[A-Za-z]+$`)), in: "Aaaa", want: "Aaaa"},
		{name: "regex bad", field: r().Regex(regexp.MustCompile(`^[A-Za-z]+$`)), in: "A1", code: fieldpipe.CodeRegex},
		{name: "regex on number", field: r().IsInt().Regex(regexp.MustCompile(`^\d+$`)), in: "123", want: 123},
		{name: "regexSearch", field: r().RegexSearch(regexp.MustCompile(`(\d+)-(\d+)`)), in: "a 12-34 b", want: []string{"12-34", "12", "34"}},
		{name: "regexSearch miss", field: r().RegexSearch(regexp.MustCompile(`(\d+)-(\d+)`)), in: "none", code: fieldpipe.CodeRegex},

		{name: "stripTags", field: r().StripTags(), in: "<b>hi</b> there", want: "hi there"},
		{name: "stripTags open tag", field: r().StripTags(), in: "a <br", want: "a "},
		{name: "encodeHtmlChars", field: r().EncodeHTMLChars(), in: `<a href="x">Tom & 'Jerry'</a>`,
			want: `&lt;a href=&quot;x&quot;&gt;Tom &amp; &#039;Jerry&#039;&lt;/a&gt;`},

		{name: "urlDecode", field: r().URLDecode(), in: "a%20b%2Fc+d", want: "a b/c+d"},
		{name: "urlDecode malformed", field: r().URLDecode(), in: "%zz", code: fieldpipe.CodeURLDecode},
		{name: "urlDecode invalid utf8", field: r().URLDecode(), in: "%ff", code: fieldpipe.CodeURLDecode},
	})
}

func TestChecks_OrderChangesOutcome(t *testing.T) {
	_, err := fieldpipe.Rule().Min(10).IsInt().Validate("12abc")
	fe, ok := fieldpipe.AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, fieldpipe.CodeMin, fe.Code)

	v, err := fieldpipe.Rule().IsInt().Min(10).Validate("12abc")
	require.NoError(t, err)
	assert.Equal(t, 12, v)
}
