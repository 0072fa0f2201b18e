package models

import "strings"

// Lang is a content language code.
type Lang string

const (
	LangRU Lang = "ru"
	LangKG Lang = "kg"
	LangEN Lang = "en"
)

// DefaultLang is the canonical language every published record must carry.
const DefaultLang = LangRU

// Langs lists supported languages, canonical first.
var Langs = []Lang{LangRU, LangKG, LangEN}

// ParseLang normalizes a language code. Unknown codes fall back to DefaultLang.
func ParseLang(s string) Lang {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, ",;-_"); i > 0 {
		s = s[:i]
	}
	switch s {
	case "ru":
		return LangRU
	case "kg", "ky":
		return LangKG
	case "en":
		return LangEN
	default:
		return DefaultLang
	}
}

// TranslatedText stores one field in every supported language. Embed it with
// an embeddedPrefix so the columns become <field>_ru, <field>_kg, <field>_en.
type TranslatedText struct {
	RU string `gorm:"column:ru;type:TEXT;not null;default:''" json:"ru"`
	KG string `gorm:"column:kg;type:TEXT;not null;default:''" json:"kg"`
	EN string `gorm:"column:en;type:TEXT;not null;default:''" json:"en"`
}

// Resolve returns the value for lang, or the canonical value when that one is blank.
// An empty result means there is no content.
func (t TranslatedText) Resolve(lang Lang) string {
	var v string
	switch lang {
	case LangKG:
		v = t.KG
	case LangEN:
		v = t.EN
	default:
		v = t.RU
	}
	if strings.TrimSpace(v) != "" {
		return v
	}
	return t.RU
}

// Get returns the raw value stored for lang with no fallback.
func (t TranslatedText) Get(lang Lang) string {
	switch lang {
	case LangKG:
		return t.KG
	case LangEN:
		return t.EN
	default:
		return t.RU
	}
}

// IsEmpty reports whether all three values are blank.
func (t TranslatedText) IsEmpty() bool {
	return strings.TrimSpace(t.RU) == "" && strings.TrimSpace(t.KG) == "" && strings.TrimSpace(t.EN) == ""
}

// Trimmed returns a copy with surrounding whitespace removed from every value.
func (t TranslatedText) Trimmed() TranslatedText {
	return TranslatedText{
		RU: strings.TrimSpace(t.RU),
		KG: strings.TrimSpace(t.KG),
		EN: strings.TrimSpace(t.EN),
	}
}
