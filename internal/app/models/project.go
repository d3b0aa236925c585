package models

import "time"

// Project represents a research project. Up to four images can be attached;
// image1 is the cover, the rest show up on the detail page.
type Project struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Topic     string        `json:"topic,omitempty"`
	Overview  string        `json:"overview"`
	Status    ProjectStatus `json:"status"`
	StartDate string        `json:"startDate,omitempty"`
	EndDate   string        `json:"endDate,omitempty"`

	Image1 string `json:"image1,omitempty"`
	Image2 string `json:"image2,omitempty"`
	Image3 string `json:"image3,omitempty"`
	Image4 string `json:"image4,omitempty"`

	// Member students, populated when needed via the project_members table
	Members []*Student `json:"members,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// SecondaryImages returns image2..image4 with unset slots omitted.
func (p *Project) SecondaryImages() []string {
	images := make([]string, 0, 3)
	for _, img := range []string{p.Image2, p.Image3, p.Image4} {
		if img != "" {
			images = append(images, img)
		}
	}
	return images
}
