package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const blockElements = "p, div, br, li, tr, td, th, blockquote, h1, h2, h3, h4, h5, h6"

// PlainText strips markup from editor HTML and collapses whitespace.
func PlainText(markup string) string {
	if !strings.ContainsAny(markup, "<&") {
		return strings.Join(strings.Fields(markup), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.Join(strings.Fields(markup), " ")
	}
	doc.Find("script, style").Remove()
	// keep words from adjacent blocks apart
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendNodes(&html.Node{Type: html.TextNode, Data: " "})
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns at most n runes of the plain text of html, cut on a word
// boundary when possible.
func Excerpt(markup string, n int) string {
	text := PlainText(markup)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
