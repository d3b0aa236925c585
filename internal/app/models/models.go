package models

// DegreeType defines the degree a student is pursuing
type DegreeType string

const (
	DegreePhD     DegreeType = "PhD"
	DegreeMasters DegreeType = "Masters"
)

// ProjectStatus defines the lifecycle state of a research project
type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "Ongoing"
	ProjectCompleted ProjectStatus = "Completed"
)

// DegreeTypes lists the accepted degree_type choices, in form order.
func DegreeTypes() []string {
	return []string{string(DegreePhD), string(DegreeMasters)}
}

// ProjectStatuses lists the accepted project status choices, in form order.
func ProjectStatuses() []string {
	return []string{string(ProjectOngoing), string(ProjectCompleted)}
}
