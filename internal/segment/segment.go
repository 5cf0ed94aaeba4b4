package segment

import "strings"

// Mode selects how heading lines are recognized.
type Mode int

const (
	// FreeformText treats input as plain prose lines; headings are
	// detected by a trailing colon or a keyword hit.
	FreeformText Mode = iota
	// TaggedElements trusts the tag kind carried by each line; only
	// explicit heading elements open sections.
	TaggedElements
)

// Kind is the element tag carried by a RawLine in TaggedElements mode.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading1
	KindHeading2
	KindHeading3
	KindHeading4
	KindListContainer
	KindListItem
)

// IsHeading reports whether the kind is a heading element (h1-h4).
func (k Kind) IsHeading() bool {
	return k >= KindHeading1 && k <= KindHeading4
}

// RawLine is a single input line: plain text plus an optional tag kind.
// In FreeformText mode the Kind is ignored.
type RawLine struct {
	Text string
	Kind Kind
}

// BlockType classifies a ContentBlock.
type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockPlainItem
	BlockLabeledItem
)

// Separator splits a line into a label/value pair. Only the first
// occurrence counts; everything after it belongs to the value.
const Separator = " - "

// ContentBlock is one classified line of output. Label and Value are
// set only for BlockLabeledItem; Text holds the full line otherwise.
type ContentBlock struct {
	Type  BlockType
	Text  string
	Label string
	Value string
}

// Section groups blocks under one heading. The ungrouped leading
// paragraphs live in a section with an empty Heading.
type Section struct {
	Heading string
	Blocks  []ContentBlock
}

// Result is the ordered output of one segmentation pass. Source order
// is the only order; nothing is re-sorted.
type Result struct {
	Sections []Section
}

// Options tunes freeform heading detection.
type Options struct {
	// HeadingKeywords promote a line to a heading on a case-insensitive
	// substring match, even without a trailing colon.
	HeadingKeywords []string
}

// Segment runs a single forward pass over lines and groups them into
// heading-delimited sections. It never fails: every non-blank line is
// classified into some bucket, and a nil or empty input yields an
// empty result.
func Segment(lines []RawLine, mode Mode, opts Options) Result {
	var res Result
	if len(lines) == 0 {
		return res
	}

	// Index of the currently open section in res.Sections, or -1 when
	// we are still emitting ungrouped leading paragraphs.
	open := -1

	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		if isHeading(text, line.Kind, mode, opts) {
			// A repeated heading with the exact title of the open
			// section does not open a duplicate.
			if open >= 0 && res.Sections[open].Heading == text {
				continue
			}
			res.Sections = append(res.Sections, Section{Heading: text})
			open = len(res.Sections) - 1
			continue
		}

		if open < 0 {
			// Before the first heading everything is an ungrouped
			// paragraph; none are dropped.
			if len(res.Sections) == 0 {
				res.Sections = append(res.Sections, Section{})
			}
			res.Sections[0].Blocks = append(res.Sections[0].Blocks, ContentBlock{
				Type: BlockParagraph,
				Text: text,
			})
			continue
		}

		res.Sections[open].Blocks = append(res.Sections[open].Blocks, classify(text))
	}

	return res
}

// isHeading applies the per-mode heading heuristic. In freeform mode
// the trailing-colon check runs before the separator check, so a line
// ending in ":" is a heading even when it contains " - ".
func isHeading(text string, kind Kind, mode Mode, opts Options) bool {
	if mode == TaggedElements {
		return kind.IsHeading()
	}
	if strings.HasSuffix(text, ":") {
		return true
	}
	if strings.Contains(text, Separator) {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range opts.HeadingKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// classify turns a non-heading line inside a section into a labeled
// or plain item.
func classify(text string) ContentBlock {
	if i := strings.Index(text, Separator); i >= 0 {
		return ContentBlock{
			Type:  BlockLabeledItem,
			Text:  text,
			Label: strings.TrimSpace(text[:i]),
			Value: strings.TrimSpace(text[i+len(Separator):]),
		}
	}
	return ContentBlock{Type: BlockPlainItem, Text: text}
}

// DefaultDescriptionMinLength is the threshold below which a leading
// paragraph is considered too short to serve as the card description.
const DefaultDescriptionMinLength = 20

// Description returns the first ungrouped paragraph longer than minLen
// runes, or "" if none qualifies. This is the caller-side single-value
// extraction; Segment itself always emits every paragraph.
func (r Result) Description(minLen int) string {
	if minLen <= 0 {
		minLen = DefaultDescriptionMinLength
	}
	for _, sec := range r.Sections {
		if sec.Heading != "" {
			continue
		}
		for _, b := range sec.Blocks {
			if b.Type == BlockParagraph && len([]rune(b.Text)) > minLen {
				return b.Text
			}
		}
	}
	return ""
}

// Ungrouped returns the leading paragraphs emitted before any heading,
// in source order.
func (r Result) Ungrouped() []ContentBlock {
	for _, sec := range r.Sections {
		if sec.Heading == "" {
			return sec.Blocks
		}
	}
	return nil
}

// BlockCount is the total number of emitted blocks across all sections.
func (r Result) BlockCount() int {
	n := 0
	for _, sec := range r.Sections {
		n += len(sec.Blocks)
	}
	return n
}
