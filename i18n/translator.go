package i18n

import "sort"

// Translator retrieves localized default messages for check codes.
type Translator interface {
	Message(code string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"isString":        "String is incorrect",
		"isNumeric":       "Value is not numeric",
		"isInt":           "Value is not int",
		"isBoolean":       "Value is not boolean",
		"length":          "String length is incorrect",
		"range":           "Range validation error",
		"min":             "Min validation error",
		"max":             "Max validation error",
		"after":           "After validation error",
		"before":          "Before validation error",
		"isCreditCard":    "Incorrect card",
		"isDate":          "Incorrect date",
		"isEmail":         "incorrect email",
		"isJSON":          "Incorrect JSON",
		"isLowerCase":     "Lower case validation error",
		"isUpperCase":     "Upper case validation error",
		"trim":            "Trim error",
		"isArray":         "Array validation error",
		"isObject":        "Object validation error",
		"in":              "IN validation error",
		"notIn":           "NOT IN validation error",
		"regex":           "Regex validation error",
		"stripTags":       "Strip tags error",
		"encodeHtmlChars": "Encode html special chars error",
		"urlDecode":       "Url decode error",
		"inObjectKeys":    "IN OBJECT KEYS validation error",
		"required":        "Field is required",
	},
	"ja": {
		"isString":        "文字列が不正です",
		"isNumeric":       "数値ではありません",
		"isInt":           "整数ではありません",
		"isBoolean":       "真偽値ではありません",
		"length":          "文字列の長さが不正です",
		"range":           "範囲外の値です",
		"min":             "最小値を下回っています",
		"max":             "最大値を超えています",
		"after":           "値が小さすぎます",
		"before":          "値が大きすぎます",
		"isCreditCard":    "カード番号が不正です",
		"isDate":          "日付が不正です",
		"isEmail":         "メールアドレスが不正です",
		"isJSON":          "JSONが不正です",
		"isLowerCase":     "小文字ではありません",
		"isUpperCase":     "大文字ではありません",
		"trim":            "トリムに失敗しました",
		"isArray":         "配列ではありません",
		"isObject":        "オブジェクトではありません",
		"in":              "許可された値ではありません",
		"notIn":           "禁止された値です",
		"regex":           "パターンに一致しません",
		"stripTags":       "タグの除去に失敗しました",
		"encodeHtmlChars": "HTMLエスケープに失敗しました",
		"urlDecode":       "URLデコードに失敗しました",
		"inObjectKeys":    "キーが存在しません",
		"required":        "必須項目です",
	},
}

func (t dictTranslator) Message(code string) string {
	if msg, ok := dictionaries[t.lang][code]; ok {
		return msg
	}
	if msg, ok := dictionaries["en"][code]; ok {
		return msg
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string) string { return currentTranslator.Message(code) }

// Codes lists every code the built-in dictionaries know, sorted.
func Codes() []string {
	codes := make([]string, 0, len(dictionaries["en"]))
	for code := range dictionaries["en"] {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Dictionary returns a copy of the messages the current Translator yields for
// every known code.
func Dictionary() map[string]string {
	out := make(map[string]string, len(dictionaries["en"]))
	for _, code := range Codes() {
		out[code] = T(code)
	}
	return out
}
