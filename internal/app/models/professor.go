package models

// Professor is the lab director's public profile. The site expects a single
// record; the schema does not enforce it.
type Professor struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Bio         string `json:"bio,omitempty"`
	Education   string `json:"education,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Photo       string `json:"photo,omitempty"`
	Email       string `json:"email,omitempty"`
	Office      string `json:"office,omitempty"`
	OfficeHours string `json:"officeHours,omitempty"`
	Phone       string `json:"phone,omitempty"`

	// Social / academic links
	GoogleScholar string `json:"googleScholar,omitempty"`
	LinkedIn      string `json:"linkedin,omitempty"`
	Website       string `json:"website,omitempty"`
	ORCID         string `json:"orcid,omitempty"`
}
