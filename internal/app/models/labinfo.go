package models

// LabInfo holds the lab's general information. The admin backend disables
// create and delete so the table keeps its single row.
type LabInfo struct {
	ID            int64  `json:"id"`
	LabName       string `json:"labName"`
	LabFullName   string `json:"labFullName"`
	Mission       string `json:"mission,omitempty"`
	ResearchAreas string `json:"researchAreas,omitempty"`

	// Contact info
	LabEmail   string `json:"labEmail,omitempty"`
	LabAddress string `json:"labAddress,omitempty"`
	LabPhone   string `json:"labPhone,omitempty"`
}
