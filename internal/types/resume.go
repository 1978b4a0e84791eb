// Package types provides type definitions for structured data used throughout the resume-formatter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExperienceItem represents a single work engagement on the resume
type ExperienceItem struct {
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	Location  string   `json:"location"`
	StartDate string   `json:"start_date" validate:"year_month"`
	EndDate   string   `json:"end_date"`
	Summary   string   `json:"summary"`
	Bullets   []string `json:"bullets"`
}

// EducationItem represents a single school entry on the resume
type EducationItem struct {
	School   string `json:"school"`
	Degree   string `json:"degree"`
	Location string `json:"location"`
	GradDate string `json:"grad_date"`
}

// Resume is the internal record shape produced by the schema mapper and
// consumed by the normalizer and enrichment stages. String fields mirror
// the mapper's tolerance: an empty value is a valid value, so a partial
// extraction still produces a record the rest of the pipeline can carry.
type Resume struct {
	CandidateName  string           `json:"candidate_name"`
	CandidateTitle string           `json:"candidate_title"`
	Summary        string           `json:"summary"`
	CoreSkills     []string         `json:"core_skills"`
	Experience     []ExperienceItem `json:"experience" validate:"dive"`
	Education      []EducationItem  `json:"education" validate:"dive"`
	Certifications []string         `json:"certifications"`
	Clearances     []string         `json:"clearances"`
}

// NormalizedRecord is the pipeline's terminal artifact: the Resume record
// plus the fields the orchestrator adds. Field order here defines the
// serialized field order of the persisted resume.json.
type NormalizedRecord struct {
	CandidateName   string           `json:"candidate_name"`
	CandidateTitle  string           `json:"candidate_title"`
	Summary         string           `json:"summary"`
	CoreSkills      []string         `json:"core_skills"`
	Experience      []ExperienceItem `json:"experience"`
	Education       []EducationItem  `json:"education"`
	Certifications  []string         `json:"certifications"`
	Clearances      []string         `json:"clearances"`
	Honorific       string           `json:"honorific"`
	ExperienceLevel string           `json:"experience_level,omitempty"`
}

// FromResume builds a NormalizedRecord from an internal Resume, leaving the
// orchestrator-owned fields at their zero values.
func FromResume(r Resume) NormalizedRecord {
	return NormalizedRecord{
		CandidateName:  r.CandidateName,
		CandidateTitle: r.CandidateTitle,
		Summary:        r.Summary,
		CoreSkills:     r.CoreSkills,
		Experience:     r.Experience,
		Education:      r.Education,
		Certifications: r.Certifications,
		Clearances:     r.Clearances,
	}
}

// TotalBullets counts bullets across all experience items.
func TotalBullets(experience []ExperienceItem) int {
	count := 0
	for _, item := range experience {
		count += len(item.Bullets)
	}
	return count
}
