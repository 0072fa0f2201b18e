package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLang(t *testing.T) {
	cases := map[string]Lang{
		"ru":         LangRU,
		"KG":         LangKG,
		"ky":         LangKG,
		" en ":       LangEN,
		"en-US,en;q": LangEN,
		"":           LangRU,
		"de":         LangRU,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLang(in), in)
	}
}

func TestTranslatedTextResolve(t *testing.T) {
	full := TranslatedText{RU: "Новости", KG: "Жаңылыктар", EN: "News"}
	assert.Equal(t, "Новости", full.Resolve(LangRU))
	assert.Equal(t, "Жаңылыктар", full.Resolve(LangKG))
	assert.Equal(t, "News", full.Resolve(LangEN))

	partial := TranslatedText{RU: "Новости", KG: "  ", EN: ""}
	assert.Equal(t, "Новости", partial.Resolve(LangKG))
	assert.Equal(t, "Новости", partial.Resolve(LangEN))

	assert.Equal(t, "", TranslatedText{}.Resolve(LangEN))
	assert.Equal(t, "only en", TranslatedText{EN: "only en"}.Resolve(LangEN))
	assert.Equal(t, "", TranslatedText{EN: "only en"}.Resolve(LangKG))
}

func TestTranslatedTextHelpers(t *testing.T) {
	tt := TranslatedText{RU: " a ", KG: "b", EN: ""}
	assert.Equal(t, "b", tt.Get(LangKG))
	assert.Equal(t, "", tt.Get(LangEN))
	assert.False(t, tt.IsEmpty())
	assert.True(t, TranslatedText{RU: " ", KG: "\t"}.IsEmpty())
	assert.Equal(t, TranslatedText{RU: "a", KG: "b"}, tt.Trimmed())
}
