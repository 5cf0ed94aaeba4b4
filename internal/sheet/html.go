package sheet

import (
	"io"

	"github.com/dgallion1/cardgen/internal/scrape"
	"github.com/dgallion1/cardgen/internal/segment"
)

// HTMLParser handles HTML sheets by delegating to the fragment scraper.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader) ([]segment.RawLine, segment.Mode, error) {
	lines, err := scrape.Lines(r)
	if err != nil {
		return nil, segment.TaggedElements, err
	}
	return lines, segment.TaggedElements, nil
}
