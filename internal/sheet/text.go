package sheet

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/cardgen/internal/segment"
)

// TextParser handles plain text sheets. The format carries no tags,
// so headings are left to the freeform heuristics.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader) ([]segment.RawLine, segment.Mode, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []segment.RawLine
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, segment.RawLine{Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, segment.FreeformText, err
	}
	return lines, segment.FreeformText, nil
}
