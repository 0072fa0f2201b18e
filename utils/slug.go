package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
	// кыргызские буквы
	'ң': "ng", 'ө': "o", 'ү': "u",
}

func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			b.WriteRune(r)
			continue
		}
		if m, ok := translit[r]; ok {
			b.WriteString(m)
			continue
		}
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// Slugify builds a latin URL slug from a Russian, Kyrgyz or English title.
func Slugify(title string) string {
	base := nonAlnum.ReplaceAllString(transliterate(title), "-")
	base = strings.Trim(base, "-")
	if len(base) > 200 {
		base = strings.Trim(base[:200], "-")
	}
	if base == "" {
		return "item"
	}
	return base
}

// UniqueSlug appends -2, -3... to base until no row of model (soft-deleted
// rows included) uses it. excludeID skips the row being edited.
func UniqueSlug(db *gorm.DB, model any, base string, excludeID uint) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var count int64
		q := db.Unscoped().Model(model).Where("slug = ?", slug)
		if excludeID > 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
