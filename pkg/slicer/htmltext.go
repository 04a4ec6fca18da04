package slicer

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlText flattens an HTML fragment to its visible text, collapsing
// whitespace. Script and style contents are skipped. An unparseable
// fragment is returned trimmed as-is.
func htmlText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	var builder strings.Builder
	collectText(doc, &builder)
	return strings.Join(strings.Fields(builder.String()), " ")
}

func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript":
			return
		}
	}
	if n.Type == html.TextNode {
		builder.WriteString(n.Data)
		builder.WriteString(" ")
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, builder)
	}
}
