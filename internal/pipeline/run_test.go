package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/llm"
	"github.com/jonathan/resume-formatter/internal/mapping"
	"github.com/jonathan/resume-formatter/internal/types"
)

// fakeExtractor returns a canned extraction tree.
type fakeExtractor struct {
	tree *types.Extraction
	err  error
}

func (f *fakeExtractor) Extract(context.Context, string) (*types.Extraction, error) {
	return f.tree, f.err
}

// scriptClient answers judgment calls by matching a fragment of the
// system prompt against scripted responses.
type scriptClient struct {
	answers        map[string]string
	err            error
	seniorityCalls int
}

func (c *scriptClient) respond(system string) (string, error) {
	if strings.Contains(system, "resume analyst") {
		c.seniorityCalls++
	}
	if c.err != nil {
		return "", c.err
	}
	for fragment, answer := range c.answers {
		if strings.Contains(system, fragment) {
			return answer, nil
		}
	}
	return "", fmt.Errorf("no scripted answer for prompt: %.60s", system)
}

func (c *scriptClient) Complete(_ context.Context, system, _ string, _ llm.ModelTier) (string, error) {
	return c.respond(system)
}

func (c *scriptClient) CompleteJSON(_ context.Context, system, _ string, _ llm.ModelTier) (string, error) {
	return c.respond(system)
}

func (c *scriptClient) Close() error { return nil }

func sampleTree() *types.Extraction {
	return &types.Extraction{
		Basics: types.Basics{
			Name:     "Jane Smith",
			Location: types.Location{City: "Austin"},
		},
		Work: []types.WorkEntry{
			{
				Name:       "Acme Corp",
				Position:   "Platform Engineer",
				StartDate:  "2012-03-01",
				IsCurrent:  true,
				RoleOrder:  1,
				Highlights: []string{"Built the billing service", "Migrated jobs to Kafka"},
			},
			{
				Name:       "Initech",
				Position:   "Developer",
				StartDate:  "2010-01-15",
				EndDate:    "2012-02-01",
				RoleOrder:  2,
				Highlights: []string{"Led a team of four"},
			},
		},
		Education: []types.EducationEntry{
			{Institution: "State University", StudyType: "B.S.", Area: "Computer Science", EndDate: "2009"},
		},
		Skills: []types.SkillGroup{
			{Name: "Technical Skills", Keywords: []string{"Go", "postgres", "Docker"}},
		},
		Certificates: []types.Certificate{{Name: "AWS SAA"}},
	}
}

const rawWithSkillsSection = `Jane Smith
jane@example.com

Technical Skills
Go, PostgreSQL, Docker, Kubernetes, Terraform

Experience
Acme Corp, Platform Engineer`

func baseOptions(t *testing.T, client llm.Client, tree *types.Extraction) Options {
	t.Helper()
	return Options{
		RawText:   rawWithSkillsSection,
		Handle:    llm.NewHandle(client),
		Extractor: &fakeExtractor{tree: tree},
		OutputDir: t.TempDir(),
		Honorific: "Mr.",
		Logger:    zerolog.Nop(),
	}
}

func TestRunHappyPath(t *testing.T) {
	client := &scriptClient{answers: map[string]string{
		"resume analyst":                 "SME",
		"resume writer":                  "a seasoned engineer who mentors senior developers.",
		"copy editor. You will receive":  `{"punctuation": "period", "tense": "past", "bullets": ["Built the billing service.", "Migrated jobs to Kafka.", "Led a team of four."]}`,
		"conservative proofreader. Fix":  "Mr. Smith is a seasoned engineer who mentors SME developers.",
		"proofreader for resume bullets": `{"bullets": ["Built the billing service.", "Migrated jobs to Kafka.", "Led a team of four."]}`,
	}}

	result, err := Run(context.Background(), baseOptions(t, client, sampleTree()))
	require.NoError(t, err)

	record := result.Record
	assert.Equal(t, "Jane Smith", record.CandidateName)
	assert.Equal(t, "SME Java Full Stack Developer", record.CandidateTitle)
	assert.Equal(t, "Mr. Smith is a seasoned engineer who mentors SME developers.", record.Summary)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "Terraform"}, record.CoreSkills)
	assert.Equal(t, []string{"Built the billing service.", "Migrated jobs to Kafka."}, record.Experience[0].Bullets)
	assert.Equal(t, "Present", record.Experience[0].EndDate)
	assert.Equal(t, "03/2012", record.Experience[0].StartDate)
	assert.Equal(t, "Mr.", record.Honorific)
	assert.Empty(t, result.DegradedStages)

	// Artifacts on disk.
	data, readErr := os.ReadFile(result.JSONPath)
	require.NoError(t, readErr)
	var persisted types.NormalizedRecord
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, record, persisted)

	md, readErr := os.ReadFile(result.MarkdownPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(md), "# Jane Smith")
}

func TestRunArtifactFieldOrder(t *testing.T) {
	client := &scriptClient{err: errors.New("service down")}

	result, err := Run(context.Background(), baseOptions(t, client, sampleTree()))
	require.NoError(t, err)

	data, readErr := os.ReadFile(result.JSONPath)
	require.NoError(t, readErr)

	fields := []string{
		`"candidate_name"`, `"candidate_title"`, `"summary"`, `"core_skills"`,
		`"experience"`, `"education"`, `"certifications"`, `"clearances"`, `"honorific"`,
	}
	content := string(data)
	last := -1
	for _, field := range fields {
		idx := strings.Index(content, field)
		require.Greater(t, idx, last, "field %s out of order", field)
		last = idx
	}
}

func TestRunDegradedWhenServiceDown(t *testing.T) {
	client := &scriptClient{err: errors.New("service down")}
	opts := baseOptions(t, client, sampleTree())
	opts.RawText = "Jane Smith\nPlatform engineer at Acme Corp since 2012."

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	record := result.Record
	assert.Equal(t, mapping.PlaceholderTitle, record.CandidateTitle)
	assert.Empty(t, record.Summary)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, record.CoreSkills)
	assert.Equal(t, []string{"Built the billing service", "Migrated jobs to Kafka"}, record.Experience[0].Bullets)

	assert.Contains(t, result.DegradedStages, "seniority")
	assert.Contains(t, result.DegradedStages, "summary-generate")
	assert.Contains(t, result.DegradedStages, "skills-reorder")
	assert.Contains(t, result.DegradedStages, "bullets-harmonize")

	_, statErr := os.Stat(result.JSONPath)
	assert.NoError(t, statErr)
}

func TestRunTitleOverrideSkipsSeniority(t *testing.T) {
	client := &scriptClient{err: errors.New("service down")}
	opts := baseOptions(t, client, sampleTree())
	opts.Overrides.Title = "Staff Engineer"

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, client.seniorityCalls)
	assert.Equal(t, "Staff Engineer", result.Record.CandidateTitle)
}

func TestRunLevelOverride(t *testing.T) {
	client := &scriptClient{err: errors.New("service down")}
	opts := baseOptions(t, client, sampleTree())
	opts.Overrides.ExperienceLevel = "SME"

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, client.seniorityCalls)
	assert.Equal(t, "SME", result.Record.ExperienceLevel)
	assert.Equal(t, mapping.PlaceholderTitle, result.Record.CandidateTitle)
}

func TestRunNameOverride(t *testing.T) {
	client := &scriptClient{answers: map[string]string{
		"resume analyst":                 "Senior",
		"resume writer":                  "an engineer.",
		"copy editor. You will receive":  `{"punctuation": "none", "tense": "past", "bullets": ["Built the billing service", "Migrated jobs to Kafka", "Led a team of four"]}`,
		"conservative proofreader. Fix":  "Ms. Brown is an engineer.",
		"proofreader for resume bullets": `{"bullets": ["Built the billing service", "Migrated jobs to Kafka", "Led a team of four"]}`,
	}}
	opts := baseOptions(t, client, sampleTree())
	opts.Honorific = "Ms."
	opts.Overrides.CandidateName = "Mary Brown"

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "Mary Brown", result.Record.CandidateName)
	assert.True(t, strings.HasPrefix(result.Record.Summary, "Ms. Brown is "), result.Record.Summary)
}

func TestRunPartialExtractionCompletes(t *testing.T) {
	client := &scriptClient{answers: map[string]string{
		"resume analyst":                "Senior",
		"copy editor. You will receive": `{"punctuation": "period", "tense": "past", "bullets": ["Shipped the billing rewrite."]}`,
	}}
	tree := &types.Extraction{
		Work: []types.WorkEntry{
			{Name: "Acme Corp", StartDate: "2016-07-01", IsCurrent: true, Highlights: []string{"Shipped the billing rewrite"}},
		},
	}

	result, err := Run(context.Background(), baseOptions(t, client, tree))
	require.NoError(t, err)

	// No candidate name means summary work is skipped, not aborted.
	assert.Empty(t, result.Record.CandidateName)
	assert.Empty(t, result.Record.Summary)
	assert.Equal(t, "Senior Java Full Stack Developer", result.Record.CandidateTitle)
	require.Len(t, result.Record.Experience, 1)
	assert.Empty(t, result.Record.Experience[0].Role)
	assert.Empty(t, result.DegradedStages)

	data, err := os.ReadFile(result.JSONPath)
	require.NoError(t, err)
	var persisted map[string]any
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, "", persisted["candidate_name"])
}

func TestRunUnrecoverableFailures(t *testing.T) {
	client := &scriptClient{}

	t.Run("empty raw text", func(t *testing.T) {
		opts := baseOptions(t, client, sampleTree())
		opts.RawText = "  \n "

		_, err := Run(context.Background(), opts)
		var runErr *RunError
		require.ErrorAs(t, err, &runErr)
		assert.Equal(t, "ingest", runErr.Stage)
	})

	t.Run("extractor failure", func(t *testing.T) {
		opts := baseOptions(t, client, sampleTree())
		opts.Extractor = &fakeExtractor{err: errors.New("no usable content")}

		_, err := Run(context.Background(), opts)
		var runErr *RunError
		require.ErrorAs(t, err, &runErr)
		assert.Equal(t, "extraction", runErr.Stage)
	})

	t.Run("malformed start date in mapped record", func(t *testing.T) {
		tree := sampleTree()
		tree.Work[0].StartDate = "03/2016"
		opts := baseOptions(t, client, tree)

		_, err := Run(context.Background(), opts)
		var runErr *RunError
		require.ErrorAs(t, err, &runErr)
		assert.Equal(t, "validation", runErr.Stage)
	})
}
