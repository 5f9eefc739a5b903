package extract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParagraphs_DocumentOrder(t *testing.T) {
	page := `<html><head><title>Ignored</title><script>var x = 1;</script></head>
<body>
  <h1>Heading is dropped</h1>
  <p>First paragraph.</p>
  <div><p>Second <b>bold</b> paragraph.</p></div>
  <ul><li>List items are dropped</li></ul>
  <p>Third <a href="/x">linked</a> paragraph.</p>
</body></html>`

	text, err := Paragraphs(strings.NewReader(page), "text/html; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "First paragraph. Second bold paragraph. Third linked paragraph.", text)
}

func TestParagraphs_NoParagraphs(t *testing.T) {
	text, err := Paragraphs(strings.NewReader("<html><body><div>only a div</div></body></html>"), "text/html")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestParagraphs_DecodesDeclaredCharset(t *testing.T) {
	// "café" in ISO-8859-1
	body := append([]byte("<html><body><p>caf"), 0xe9)
	body = append(body, []byte("</p></body></html>")...)

	text, err := Paragraphs(bytes.NewReader(body), "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"multibyte cut", "héllo wörld", 7, "héllo w"},
		{"zero", "hello", 0, ""},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.text, tt.n))
		})
	}
}

func TestTruncate_RuneCount(t *testing.T) {
	text := strings.Repeat("é", 600)
	got := Truncate(text, 512)
	assert.Equal(t, 512, len([]rune(got)))
}
