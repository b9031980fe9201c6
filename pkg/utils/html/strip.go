// ABOUTME: HTML utilities for stripping tags and decoding entities
// ABOUTME: Used to clean titles recovered from documents that failed to parse

package html

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// StripTags removes markup and decodes entities, keeping only text content.
// Script and style bodies are dropped.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CollapseWhitespace(s)
	}

	z := xhtml.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return CollapseWhitespace(b.String())
		case xhtml.StartTagToken:
			if name, _ := z.TagName(); isRawText(name) {
				skip++
			}
		case xhtml.EndTagToken:
			if name, _ := z.TagName(); isRawText(name) && skip > 0 {
				skip--
			}
		case xhtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

// DecodeEntities decodes HTML entities such as &amp; and &#8217;
func DecodeEntities(text string) string {
	return xhtml.UnescapeString(text)
}

// CollapseWhitespace trims s and folds runs of whitespace into single spaces
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isRawText(name []byte) bool {
	return string(name) == "script" || string(name) == "style"
}
