package fragment

// Fragment is a structured content record in the host CMS, addressed
// by a path. Notes and promo text are loosely structured prose that
// the segmenter turns into sections.
type Fragment struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageRef    string `json:"image_ref"`
	PromoText   string `json:"promo_text"`
	NotesText   string `json:"notes_text"`
}
