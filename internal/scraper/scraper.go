package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists elements that end a line of text.
const blockSelector = "br, p, div, li, h1, h2, h3, h4, h5, h6, blockquote, pre, tr"

// Text turns an HTML fragment from a feed into plain text: entities are
// decoded, script and style bodies dropped and block elements end a line.
// Input without markup is returned unchanged.
func Text(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	doc.Find("script, style, noscript, iframe").Remove()
	doc.Find(blockSelector).Each(func(i int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	return cleanContent(doc.Text())
}

// cleanContent trims every line and drops empty ones.
func cleanContent(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
