package models

// Character is an asset-library item: a generated portrait kept for reuse
// across slides. Distinct from Slide.
type Character struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	ImageURL string `json:"imageUrl"`
}

// Rendition is an ephemeral generation candidate: a Character without an
// identity until the user promotes it into the library.
type Rendition struct {
	Prompt   string `json:"prompt"`
	ImageURL string `json:"imageUrl"`
}
