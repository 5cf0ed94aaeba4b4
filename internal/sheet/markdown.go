package sheet

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/cardgen/internal/segment"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown sheets using goldmark. Markdown
// carries explicit structure, so the lines come out tagged.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader) ([]segment.RawLine, segment.Mode, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, segment.TaggedElements, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var lines []segment.RawLine
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			t := string(node.Text(src))
			if t == "" {
				continue
			}
			lines = append(lines, segment.RawLine{Text: t, Kind: headingKind(node.Level)})

		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				t := extractText(item, src)
				if t != "" {
					lines = append(lines, segment.RawLine{Text: t, Kind: segment.KindListItem})
				}
			}

		default:
			t := extractText(n, src)
			if t != "" {
				lines = append(lines, segment.RawLine{Text: t, Kind: segment.KindParagraph})
			}
		}
	}

	return lines, segment.TaggedElements, nil
}

// headingKind maps a markdown or docx heading level to a line kind.
// Levels past four are demoted to plain paragraphs.
func headingKind(level int) segment.Kind {
	switch level {
	case 1:
		return segment.KindHeading1
	case 2:
		return segment.KindHeading2
	case 3:
		return segment.KindHeading3
	case 4:
		return segment.KindHeading4
	}
	return segment.KindParagraph
}

// extractText gets the text content of a goldmark AST node. Block
// nodes with source lines are read straight from the source to avoid
// double-counting their inline children.
func extractText(n ast.Node, src []byte) string {
	if t, ok := n.(*ast.Text); ok {
		return string(t.Value(src))
	}
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := extractText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
