package content

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// WordsPerMinute is the reading speed used for reading-time estimates.
const WordsPerMinute = 200

// PlainText returns the visible text of body. Markdown or plain text passes
// through with whitespace kept; HTML markup, scripts and styles are dropped.
func PlainText(body string) string {
	if !strings.Contains(body, "<") {
		return body
	}
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return body
	}

	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return strings.TrimSpace(b.String())
}

// WordCount counts whitespace separated words of the plain text of body.
func WordCount(body string) int {
	return len(strings.Fields(PlainText(body)))
}

// ReadingTimeMinutes estimates minutes to read body, rounded up.
// Empty content reads in 0 minutes; anything else takes at least 1.
func ReadingTimeMinutes(body string) int {
	words := WordCount(body)
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// Excerpt returns the plain text of body collapsed to single spaces. Text longer
// than max runes is cut to at most max runes at a word boundary and then gets a
// trailing "…", so a shortened excerpt is at most max+1 runes.
func Excerpt(body string, max int) string {
	text := strings.Join(strings.Fields(PlainText(body)), " ")
	rs := []rune(text)
	if max <= 0 || len(rs) <= max {
		return text
	}
	cut := rs[:max]
	if i := lastSpace(cut); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if unicode.IsSpace(rs[i]) {
			return i
		}
	}
	return -1
}
