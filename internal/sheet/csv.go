package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/cardgen/internal/segment"
)

// CSVParser handles CSV fee schedules. Rows with a section column open
// a heading; label/value columns become labeled lines.
//
// Expected columns: section, label, value. A row with only a section
// cell opens that section; a row with label and value becomes one
// "label - value" line under it.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader) ([]segment.RawLine, segment.Mode, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, segment.TaggedElements, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, segment.TaggedElements, nil
	}

	// Skip a header row if present.
	start := 0
	if isHeaderRow(records[0]) {
		start = 1
	}

	var lines []segment.RawLine
	for _, row := range records[start:] {
		section, label, value := cell(row, 0), cell(row, 1), cell(row, 2)
		if section != "" {
			lines = append(lines, segment.RawLine{Text: section, Kind: segment.KindHeading2})
		}
		switch {
		case label != "" && value != "":
			lines = append(lines, segment.RawLine{
				Text: label + segment.Separator + value,
				Kind: segment.KindListItem,
			})
		case label != "":
			lines = append(lines, segment.RawLine{Text: label, Kind: segment.KindListItem})
		}
	}

	return lines, segment.TaggedElements, nil
}

func isHeaderRow(row []string) bool {
	return strings.EqualFold(cell(row, 0), "section") &&
		strings.EqualFold(cell(row, 1), "label")
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
