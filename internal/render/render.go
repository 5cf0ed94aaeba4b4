// Package render maps a segmentation result onto the product card
// layout: a highlighted offer panel, a fee/notes table, and bulleted
// feature lists.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/dgallion1/cardgen/internal/fragment"
	"github.com/dgallion1/cardgen/internal/segment"
)

// RoleConfig maps section roles to the keyword sets that claim them.
// It is passed in once instead of re-checking keywords at every call
// site.
type RoleConfig struct {
	// OfferKeywords mark the section rendered as the highlighted
	// promo panel.
	OfferKeywords []string
	// ImportantKeywords mark the section rendered as the label/value
	// fee table.
	ImportantKeywords []string
}

// DefaultRoleConfig returns the stock keyword sets.
func DefaultRoleConfig() RoleConfig {
	return RoleConfig{
		OfferKeywords:     []string{"special offer", "rewards", "promo", "bonus"},
		ImportantKeywords: []string{"important", "numbers", "fee", "rate"},
	}
}

// Card is the view model handed to the card template.
type Card struct {
	Title       string
	ImageURL    string
	Description template.HTML
	PromoCopy   template.HTML
	Offer       *OfferPanel
	FeeTable    *FeeTable
	Features    []FeatureList
}

// OfferPanel is the highlighted section for promotional content.
type OfferPanel struct {
	Heading string
	Items   []template.HTML
}

// FeeTable holds label/value rows for the fee/notes table.
type FeeTable struct {
	Heading string
	Rows    []FeeRow
}

type FeeRow struct {
	Label string
	Value template.HTML
}

// FeatureList is an ordinary section rendered as a bulleted list.
type FeatureList struct {
	Heading string
	Items   []template.HTML
}

// Renderer builds card HTML from fragments and segmentation results.
type Renderer struct {
	roles      RoleConfig
	imageHost  string
	descMinLen int
}

func New(roles RoleConfig, imageHost string, descMinLen int) *Renderer {
	if descMinLen <= 0 {
		descMinLen = segment.DefaultDescriptionMinLength
	}
	return &Renderer{
		roles:      roles,
		imageHost:  imageHost,
		descMinLen: descMinLen,
	}
}

// BuildCard assigns each section a role and assembles the view model.
// The first offer-matching section becomes the highlighted panel, the
// first important-matching section becomes the fee table, everything
// else renders as a feature list.
func (r *Renderer) BuildCard(frag *fragment.Fragment, res segment.Result) Card {
	card := Card{
		Title:     frag.Name,
		ImageURL:  r.imageURL(frag.ImageRef),
		PromoCopy: emphasized(frag.PromoText),
	}

	desc := frag.Description
	if desc == "" {
		desc = res.Description(r.descMinLen)
	}
	card.Description = emphasized(desc)

	for _, sec := range res.Sections {
		if sec.Heading == "" {
			continue
		}
		switch {
		case card.Offer == nil && matchAny(sec.Heading, r.roles.OfferKeywords):
			card.Offer = buildOffer(sec)
		case card.FeeTable == nil && matchAny(sec.Heading, r.roles.ImportantKeywords):
			card.FeeTable = buildFeeTable(sec)
		default:
			card.Features = append(card.Features, buildFeatureList(sec))
		}
	}

	return card
}

// Card renders a full card for a fragment.
func (r *Renderer) Card(frag *fragment.Fragment, res segment.Result) ([]byte, error) {
	card := r.BuildCard(frag, res)
	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, card); err != nil {
		return nil, fmt.Errorf("execute card template: %w", err)
	}
	return buf.Bytes(), nil
}

// Fallback renders the visible fallback card shown when the fragment
// could not be fetched or parsed. It never fails; a template error
// degrades to a plain message.
func (r *Renderer) Fallback(title, message string) []byte {
	var buf bytes.Buffer
	err := fallbackTmpl.Execute(&buf, struct {
		Title   string
		Message string
	}{Title: title, Message: message})
	if err != nil {
		return []byte(`<div class="card card--fallback"><p>` +
			template.HTMLEscapeString(message) + `</p></div>`)
	}
	return buf.Bytes()
}

func (r *Renderer) imageURL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimSuffix(r.imageHost, "/") + "/" + strings.TrimPrefix(ref, "/")
}

func buildOffer(sec segment.Section) *OfferPanel {
	panel := &OfferPanel{Heading: headingText(sec.Heading)}
	for _, b := range sec.Blocks {
		panel.Items = append(panel.Items, blockHTML(b))
	}
	return panel
}

func buildFeeTable(sec segment.Section) *FeeTable {
	table := &FeeTable{Heading: headingText(sec.Heading)}
	for _, b := range sec.Blocks {
		if b.Type == segment.BlockLabeledItem {
			table.Rows = append(table.Rows, FeeRow{Label: b.Label, Value: emphasized(b.Value)})
		} else {
			table.Rows = append(table.Rows, FeeRow{Label: b.Text})
		}
	}
	return table
}

func buildFeatureList(sec segment.Section) FeatureList {
	list := FeatureList{Heading: headingText(sec.Heading)}
	for _, b := range sec.Blocks {
		list.Items = append(list.Items, blockHTML(b))
	}
	return list
}

// blockHTML renders one block as an emphasized inline string. Labeled
// items are shown as "label - value" with the label bolded.
func blockHTML(b segment.ContentBlock) template.HTML {
	if b.Type == segment.BlockLabeledItem {
		return template.HTML("<strong>" + template.HTMLEscapeString(b.Label) + "</strong>" +
			segment.Separator + string(emphasized(b.Value)))
	}
	return emphasized(b.Text)
}

// emphasized escapes the text and then applies the numeric emphasis
// transform, so the <em> markers survive template execution.
func emphasized(s string) template.HTML {
	return template.HTML(segment.Emphasize(template.HTMLEscapeString(s)))
}

// headingText strips the trailing colon a freeform heading may carry.
func headingText(h string) string {
	return strings.TrimSpace(strings.TrimSuffix(h, ":"))
}

// matchAny reports whether the heading contains any keyword,
// case-insensitively.
func matchAny(heading string, keywords []string) bool {
	lower := strings.ToLower(heading)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
