// Package scrape flattens a rendered HTML fragment into tagged lines
// for the segmenter's TaggedElements mode.
package scrape

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/cardgen/internal/segment"
	"golang.org/x/net/html"
)

// Lines parses an HTML fragment and returns its content as tagged
// lines in document order: h1-h4 become heading lines, p becomes a
// paragraph line, li becomes a list item line. Script, style and
// chrome elements are skipped.
func Lines(r io.Reader) ([]segment.RawLine, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var lines []segment.RawLine
	emit := func(text string, kind segment.Kind) {
		if strings.TrimSpace(text) != "" {
			lines = append(lines, segment.RawLine{Text: text, Kind: kind})
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				emit(textContent(n), headingKind(level))
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "td", "blockquote", "h5", "h6":
				emit(textContent(n), segment.KindParagraph)
				return
			case "li":
				emit(textContent(n), segment.KindListItem)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return lines, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	}
	return 0
}

func headingKind(level int) segment.Kind {
	switch level {
	case 1:
		return segment.KindHeading1
	case 2:
		return segment.KindHeading2
	case 3:
		return segment.KindHeading3
	default:
		return segment.KindHeading4
	}
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
