// Package mapping converts the judgment service's loosely-structured
// extraction tree into the pipeline's internal record shape. Mapping never
// fails: absent or malformed fields default to empty strings and lists.
package mapping

import (
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

// PlaceholderTitle is the fixed role title given to every mapped record.
// It is overwritten later by seniority inference or an explicit override.
const PlaceholderTitle = "Senior Java Full Stack Developer"

// ToInternal maps an extraction tree into an internal Resume draft.
func ToInternal(ex *types.Extraction) types.Resume {
	if ex == nil {
		ex = &types.Extraction{}
	}

	return types.Resume{
		CandidateName:  ex.Basics.Name,
		CandidateTitle: PlaceholderTitle,
		Summary:        ex.Basics.Summary,
		CoreSkills:     flattenSkills(ex.Skills),
		Experience:     mapWork(ex.Work, ex.Basics.Location.City),
		Education:      mapEducation(ex.Education),
		Certifications: mapCertificates(ex.Certificates),
		Clearances:     []string{},
	}
}

// flattenSkills collapses skill groups into one flat list: keywords win
// when present, else the group's bare name. Category labels do not survive.
func flattenSkills(groups []types.SkillGroup) []string {
	skills := make([]string, 0, len(groups))
	for _, g := range groups {
		if len(g.Keywords) > 0 {
			skills = append(skills, g.Keywords...)
		} else if g.Name != "" {
			skills = append(skills, g.Name)
		}
	}
	return skills
}

func mapWork(work []types.WorkEntry, city string) []types.ExperienceItem {
	items := make([]types.ExperienceItem, 0, len(work))
	for _, w := range work {
		bullets := w.Highlights
		if bullets == nil {
			bullets = []string{}
		}
		items = append(items, types.ExperienceItem{
			Company:   w.Name,
			Role:      w.Position,
			Location:  city,
			StartDate: truncateYearMonth(w.StartDate),
			EndDate:   mapEndDate(w),
			Summary:   w.Summary,
			Bullets:   bullets,
		})
	}
	return items
}

// truncateYearMonth reduces a date string to its YYYY-MM prefix when long
// enough, else passes it through as-is.
func truncateYearMonth(s string) string {
	if len(s) >= 7 {
		return s[:7]
	}
	return s
}

// mapEndDate resolves a work entry's end date: "Present" when the entry is
// flagged current or the source value is empty or reads "present", else the
// same truncation applied to start dates.
func mapEndDate(w types.WorkEntry) string {
	lower := strings.ToLower(w.EndDate)
	if w.IsCurrent || lower == "" || lower == "present" {
		return "Present"
	}
	return truncateYearMonth(w.EndDate)
}

func mapEducation(entries []types.EducationEntry) []types.EducationItem {
	items := make([]types.EducationItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, types.EducationItem{
			School:   e.Institution,
			Degree:   composeDegree(e.StudyType, e.Area),
			Location: "",
			GradDate: gradYear(e.EndDate),
		})
	}
	return items
}

// composeDegree joins study type and area as "{studyType} in {area}" when
// both are present, else whichever one is.
func composeDegree(studyType, area string) string {
	switch {
	case studyType != "" && area != "":
		return studyType + " in " + area
	case studyType != "":
		return studyType
	default:
		return area
	}
}

// gradYear keeps only the leading 4-digit year of a source end date.
func gradYear(endDate string) string {
	if len(endDate) >= 4 {
		return endDate[:4]
	}
	return endDate
}

func mapCertificates(certs []types.Certificate) []string {
	names := make([]string, 0, len(certs))
	for _, c := range certs {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}
