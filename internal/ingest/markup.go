// Package ingest turns record files and published pages into plain-text
// documents for extraction.
package ingest

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ReduceMarkup returns the visible body text of an HTML fragment, text nodes
// trimmed and joined with single spaces. Entity-escaped markup is unescaped
// before parsing.
func ReduceMarkup(fragment string) (string, error) {
	doc, err := html.Parse(strings.NewReader(html.UnescapeString(fragment)))
	if err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}

	body := findBody(doc)
	if body == nil {
		return "", nil
	}
	return visibleText(body), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

func visibleText(n *html.Node) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Iframe, atom.Template:
				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.Join(parts, " ")
}
