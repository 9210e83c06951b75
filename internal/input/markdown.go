package input

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

var blankRuns = regexp.MustCompile(`\n\s*\n`)

// MarkdownToText renders markdown to HTML and strips the tags again,
// keeping a paragraph break after each heading and paragraph so chunk
// boundaries survive the conversion.
func MarkdownToText(source []byte) (string, error) {
	var rendered bytes.Buffer
	if err := goldmark.Convert(source, &rendered); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	doc, err := html.Parse(&rendered)
	if err != nil {
		return "", fmt.Errorf("parse rendered markdown: %w", err)
	}

	var b strings.Builder
	collectText(doc, &b)
	text := blankRuns.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(text), nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n\n")
		}
	}
}
