package sheet

import (
	"strings"
	"testing"

	"github.com/dgallion1/cardgen/internal/segment"
)

func TestMarkdownParser_HeadingsAndLists(t *testing.T) {
	input := `A premium travel rewards card.

## Special Offer

Get 50,000 bonus points.

## Important Information

- Annual fee - $175
- Rate - 20.99%
`
	p := &MarkdownParser{}
	lines, mode, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != segment.TaggedElements {
		t.Errorf("expected tagged mode, got %v", mode)
	}

	want := []segment.RawLine{
		{Text: "A premium travel rewards card.", Kind: segment.KindParagraph},
		{Text: "Special Offer", Kind: segment.KindHeading2},
		{Text: "Get 50,000 bonus points.", Kind: segment.KindParagraph},
		{Text: "Important Information", Kind: segment.KindHeading2},
		{Text: "Annual fee - $175", Kind: segment.KindListItem},
		{Text: "Rate - 20.99%", Kind: segment.KindListItem},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %+v", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d]: expected %+v, got %+v", i, w, lines[i])
		}
	}
}

func TestMarkdownParser_DeepHeadingDemoted(t *testing.T) {
	input := "##### Fine print\n\nSome detail.\n"
	p := &MarkdownParser{}
	lines, _, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Kind != segment.KindParagraph {
		t.Errorf("expected h5 demoted to paragraph, got %v", lines[0].Kind)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	lines, _, err := p.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected 0 lines for empty input, got %d", len(lines))
	}
}

func TestMarkdownParser_SegmentsIntoSections(t *testing.T) {
	input := "## Fees\n\n- Annual fee - $59\n- Late fee - $30\n"
	p := &MarkdownParser{}
	lines, mode, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := segment.Segment(lines, mode, segment.Options{})
	if len(res.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(res.Sections))
	}
	sec := res.Sections[0]
	if sec.Heading != "Fees" {
		t.Errorf("expected heading %q, got %q", "Fees", sec.Heading)
	}
	if len(sec.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(sec.Blocks))
	}
	if sec.Blocks[0].Label != "Annual fee" || sec.Blocks[0].Value != "$59" {
		t.Errorf("unexpected first block %+v", sec.Blocks[0])
	}
}
