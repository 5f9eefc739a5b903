package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Paragraphs decodes an HTML body using the declared content type and
// returns the text of every <p> element in document order, separated by a
// single space. Everything outside paragraphs is discarded.
func Paragraphs(body io.Reader, contentType string) (string, error) {
	utf8Body, err := charset.NewReader(body, contentType)
	if err != nil {
		return "", fmt.Errorf("decode charset: %w", err)
	}

	root, err := html.Parse(utf8Body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	return ParagraphText(goquery.NewDocumentFromNode(root)), nil
}

// ParagraphText joins the text of all paragraphs of a parsed document
func ParagraphText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		parts = append(parts, p.Text())
	})
	return strings.Join(parts, " ")
}

// Truncate returns at most n characters of text without splitting a rune
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(text) <= n {
		return text
	}

	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
