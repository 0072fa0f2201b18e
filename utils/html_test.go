package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	html := `<p>Первый <b>абзац</b></p><script>alert(1)</script><p>Второй&nbsp;абзац</p>`
	assert.Equal(t, "Первый абзац Второй абзац", PlainText(html))
	assert.Equal(t, "just text", PlainText("  just \n text "))
	// неразрывный пробел из редактора становится обычным
	assert.Equal(t, "10 000 сом", PlainText("10&nbsp;000\u00a0сом"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("<p>short</p>", 200))

	long := "<p>" + strings.Repeat("слово ", 100) + "</p>"
	ex := Excerpt(long, 50)
	assert.True(t, strings.HasSuffix(ex, "…"))
	assert.LessOrEqual(t, len([]rune(ex)), 51)
	assert.False(t, strings.Contains(ex, "<"))
}
