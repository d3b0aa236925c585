package models

import "time"

// Publication stores a raw BibTeX entry plus the fields extracted from it.
// The parsed fields are derived data: they are refreshed on every save and
// may be stale if the raw text was edited but extraction failed.
type Publication struct {
	ID     int64  `json:"id"`
	BibTeX string `json:"bibtex"`

	// Fields extracted from BibTeX
	Title   string `json:"title,omitempty"`
	Authors string `json:"authors,omitempty"`
	Venue   string `json:"venue,omitempty"`
	Year    *int   `json:"year,omitempty"`

	URL              string `json:"url,omitempty"`
	GoogleScholarURL string `json:"googleScholarUrl,omitempty"`
	Citations        int    `json:"citations"`
	IsFeatured       bool   `json:"isFeatured"`

	CreatedAt time.Time `json:"createdAt"`
}
