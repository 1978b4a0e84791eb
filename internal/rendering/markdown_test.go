package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/types"
)

func TestMarkdown(t *testing.T) {
	record := types.NormalizedRecord{
		CandidateName:  "Jane Smith",
		CandidateTitle: "Senior Java Full Stack Developer",
		Summary:        "Ms. Smith is a platform engineer with ten years of experience.",
		CoreSkills:     []string{"Go", "PostgreSQL", "Kafka"},
		Experience: []types.ExperienceItem{
			{
				Company:   "Acme Corp",
				Role:      "Platform Engineer",
				Location:  "Austin, TX",
				StartDate: "03/2016",
				EndDate:   "Present",
				Summary:   "Core billing platform team.",
				Bullets:   []string{"Built the billing service", "Migrated legacy jobs to Kafka"},
			},
			{
				Company: "Initech",
				Role:    "Developer",
				EndDate: "02/2016",
			},
		},
		Education:      []types.EducationItem{{School: "State University", Degree: "B.S. in Computer Science", GradDate: "2014"}},
		Certifications: []string{"AWS Solutions Architect"},
		Honorific:      "Ms.",
	}

	md, err := Markdown(record)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# Jane Smith\n"))
	assert.Contains(t, md, "**Senior Java Full Stack Developer**")
	assert.Contains(t, md, "Ms. Smith is a platform engineer")
	assert.Contains(t, md, "## Core Skills")
	assert.Contains(t, md, "Go, PostgreSQL, Kafka")
	assert.Contains(t, md, "### Platform Engineer, Acme Corp")
	assert.Contains(t, md, "Austin, TX | 03/2016 - Present")
	assert.Contains(t, md, "- Built the billing service\n")
	assert.Contains(t, md, "### Developer, Initech")
	assert.Contains(t, md, "- B.S. in Computer Science, State University (2014)")
	assert.Contains(t, md, "## Certifications")
	assert.NotContains(t, md, "## Clearances")
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	record := types.NormalizedRecord{CandidateName: "Jane Smith"}

	md, err := Markdown(record)
	require.NoError(t, err)

	assert.Equal(t, "# Jane Smith\n", md)
}

func TestMarkdownSecondRoleWithoutStartDate(t *testing.T) {
	record := types.NormalizedRecord{
		CandidateName: "Jane Smith",
		Experience:    []types.ExperienceItem{{Company: "Initech", Role: "Developer", EndDate: "02/2016"}},
	}

	md, err := Markdown(record)
	require.NoError(t, err)
	assert.Contains(t, md, "\n02/2016\n")
}
