package types

// Extraction is the loosely-structured resume tree returned by the
// judgment-service extractor. Every field is optional: the service may
// omit, empty, or mangle any part of it, so downstream mapping must
// treat the whole tree as untrusted.
type Extraction struct {
	Basics       Basics           `json:"basics"`
	Work         []WorkEntry      `json:"work"`
	Education    []EducationEntry `json:"education"`
	Skills       []SkillGroup     `json:"skills"`
	Certificates []Certificate    `json:"certificates"`
}

// Basics holds the candidate header section of an extraction
type Basics struct {
	Name     string   `json:"name"`
	Summary  string   `json:"summary"`
	Location Location `json:"location"`
}

// Location holds the candidate's location within basics
type Location struct {
	City string `json:"city"`
}

// WorkEntry is one job in the extraction's work history
type WorkEntry struct {
	Name       string   `json:"name"`
	Position   string   `json:"position"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	IsCurrent  bool     `json:"is_current"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	RoleOrder  int      `json:"role_order"`
}

// EducationEntry is one school in the extraction's education section
type EducationEntry struct {
	Institution string `json:"institution"`
	StudyType   string `json:"studyType"`
	Area        string `json:"area"`
	EndDate     string `json:"endDate"`
}

// SkillGroup is one entry in the extraction's skills section. Keywords,
// when present, carry the flat skill list; Name is the fallback.
type SkillGroup struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Certificate is one certification entry in the extraction
type Certificate struct {
	Name string `json:"name"`
}
