package models

import "time"

// Student represents a current or former lab member
type Student struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	DegreeType    DegreeType `json:"degreeType"`
	ResearchFocus string     `json:"researchFocus,omitempty"`
	School        string     `json:"school"`
	StartDate     string     `json:"startDate,omitempty"`
	EndDate       string     `json:"endDate,omitempty"`
	Photo         string     `json:"photo,omitempty"`
	IsCurrent     bool       `json:"isCurrent"`

	// Filled in for former students
	ThesisTitle string `json:"thesisTitle,omitempty"`
	CurrentWork string `json:"currentWork,omitempty"`

	LinkedIn      string `json:"linkedin,omitempty"`
	Website       string `json:"website,omitempty"`
	GoogleScholar string `json:"googleScholar,omitempty"`
	Email         string `json:"email,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
