// Package pipeline provides the high-level orchestration for one resume
// formatting run.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-formatter/internal/enrich"
	"github.com/jonathan/resume-formatter/internal/extraction"
	"github.com/jonathan/resume-formatter/internal/llm"
	"github.com/jonathan/resume-formatter/internal/mapping"
	"github.com/jonathan/resume-formatter/internal/normalize"
	"github.com/jonathan/resume-formatter/internal/pii"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/schemas"
	"github.com/jonathan/resume-formatter/internal/types"
)

// baseRole is the role wording that a successfully inferred seniority
// level is prefixed onto.
const baseRole = "Java Full Stack Developer"

// Overrides carries caller-supplied values that replace pipeline-derived
// ones. A non-empty Title or ExperienceLevel skips seniority inference.
type Overrides struct {
	CandidateName   string
	Title           string
	ExperienceLevel string
}

// Options holds everything one run needs.
type Options struct {
	RawText   string
	Handle    *llm.Handle
	Extractor extraction.Extractor
	OutputDir string
	Honorific string
	Overrides Overrides
	Logger    zerolog.Logger
}

// Result reports where the run's artifacts landed and which enrichment
// stages degraded.
type Result struct {
	RunID          uuid.UUID
	RunDir         string
	JSONPath       string
	MarkdownPath   string
	Record         types.NormalizedRecord
	DegradedStages []string
}

// Run executes the full formatting pipeline for one document: scrub,
// extract, map, validate, normalize, enrich, persist. Enrichment failures
// degrade the run; only ingest, extraction, validation, and persistence
// failures abort it.
func Run(ctx context.Context, opts Options) (*Result, error) {
	runID := uuid.New()
	log := opts.Logger.With().Str("run_id", runID.String()).Logger()

	rawText := opts.RawText
	if strings.TrimSpace(rawText) == "" {
		return nil, &RunError{Stage: "ingest", Message: "no resume text supplied"}
	}

	// 1) PII scrub. The judgment service never sees contact details.
	scrubbed, tokens := pii.Scrub(rawText)
	log.Info().Int("tokens", len(tokens)).Msg("scrubbed PII")

	// 2) Extraction.
	tree, err := opts.Extractor.Extract(ctx, scrubbed)
	if err != nil {
		return nil, &RunError{Stage: "extraction", Message: "resume extraction failed", Cause: err}
	}
	log.Info().Int("work", len(tree.Work)).Int("education", len(tree.Education)).Msg("extracted resume tree")

	// 3) Map to the internal record and apply overrides.
	resume := mapping.ToInternal(tree)
	if opts.Overrides.CandidateName != "" {
		resume.CandidateName = opts.Overrides.CandidateName
	}
	if opts.Overrides.Title != "" {
		resume.CandidateTitle = opts.Overrides.Title
	}

	// 4) Validate before normalization so errors point at source values.
	if err := types.ValidateResume(&resume); err != nil {
		return nil, &RunError{Stage: "validation", Message: "mapped record failed validation", Cause: err}
	}

	// 5) Normalize.
	resume = normalize.Record(resume)
	log.Info().
		Int("skills", len(resume.CoreSkills)).
		Int("roles", len(resume.Experience)).
		Int("bullets", types.TotalBullets(resume.Experience)).
		Msg("normalized record")

	record := types.FromResume(resume)
	record.Honorific = opts.Honorific
	if lvl := strings.TrimSpace(opts.Overrides.ExperienceLevel); lvl != "" {
		record.ExperienceLevel = lvl
	}

	client := opts.Handle.Client()
	run := &stageRunner{log: log}

	// 6) Seniority inference, skipped on an explicit title or level.
	if opts.Overrides.Title == "" && opts.Overrides.ExperienceLevel == "" {
		level, serr := enrich.InferSeniority(ctx, client, tree.Work, record.Experience)
		if run.ok(serr) && level != "" {
			record.CandidateTitle = level + " " + baseRole
			log.Info().Str("title", record.CandidateTitle).Msg("seniority inferred")
		}
	}

	// 7) Summary: generate when missing, polish when present. The stage
	// returns body text only; the name prefix is applied here.
	summaryIn := enrich.SummaryInput{
		ResumeText: scrubbed,
		Title:      titleForPrompt(record),
		CoreSkills: record.CoreSkills,
		Experience: record.Experience,
	}
	if record.CandidateName != "" {
		if record.Summary == "" {
			generated, serr := enrich.GenerateSummary(ctx, client, summaryIn)
			if run.ok(serr) && generated != "" {
				record.Summary = prefixName(record.Honorific, record.CandidateName, generated)
				log.Info().Msg("summary generated")
			}
		} else {
			polished, serr := enrich.PolishSummary(ctx, client, record.Summary, summaryIn)
			if run.ok(serr) && polished != record.Summary {
				record.Summary = prefixName(record.Honorific, record.CandidateName, polished)
				log.Info().Msg("summary polished")
			}
		}
	}

	// 8) SME wording enforcement, local.
	record.Summary = enrich.EnforceSME(record.Summary, smeTitle(record))

	// 9) Skills: a candidate-authored section wins; otherwise ask the
	// judgment service to reorder the extracted list.
	if listed := enrich.ExtractCandidateSkills(rawText); listed != nil {
		record.CoreSkills = listed
		log.Info().Int("count", len(listed)).Msg("using candidate-listed skills")
	} else {
		ordered, serr := enrich.ReorderSkills(ctx, client, record.CoreSkills, record.Experience, record.CandidateTitle)
		if run.ok(serr) {
			record.CoreSkills = ordered
		}
	}

	// 10) Bullet harmonization and conservative proofreading.
	harmonized, serr := enrich.HarmonizeBullets(ctx, client, record.Experience)
	if run.ok(serr) {
		record.Experience = harmonized
	}
	if record.Summary != "" {
		proofed, serr := enrich.ProofreadSummary(ctx, client, record.Summary)
		if run.ok(serr) {
			record.Summary = proofed
		}
		bullets, serr := enrich.ProofreadBullets(ctx, client, record.Experience)
		if run.ok(serr) {
			record.Experience = bullets
		}
	}

	// 11) Persist the artifact.
	result := &Result{
		RunID:          runID,
		Record:         record,
		DegradedStages: run.degraded,
	}
	if err := persist(record, opts.OutputDir, result); err != nil {
		return nil, err
	}

	log.Info().Str("run_dir", result.RunDir).Strs("degraded", run.degraded).Msg("run complete")
	return result, nil
}

// stageRunner is the orchestrator's continue-on-error policy for
// enrichment stages: a StageError is recorded and logged, never
// propagated.
type stageRunner struct {
	log      zerolog.Logger
	degraded []string
}

// ok reports whether the stage succeeded. On failure the stage is added
// to the degraded list; callers keep the prior record value.
func (r *stageRunner) ok(serr *enrich.StageError) bool {
	if serr == nil {
		return true
	}
	r.degraded = append(r.degraded, serr.Stage)
	r.log.Warn().Err(serr).Str("stage", serr.Stage).Msg("enrichment failed, continuing")
	return false
}

// prefixName turns a summary body into "{honorific} {LastName} is {body}".
func prefixName(honorific, candidateName, body string) string {
	fields := strings.Fields(candidateName)
	if len(fields) == 0 {
		return body
	}
	last := fields[len(fields)-1]
	return fmt.Sprintf("%s %s is %s", honorific, last, strings.TrimLeft(body, " "))
}

// titleForPrompt folds an explicit Senior/SME level override into the
// title shown to the summary stages.
func titleForPrompt(record types.NormalizedRecord) string {
	lvl := strings.TrimSpace(record.ExperienceLevel)
	if lvl != "" && (strings.EqualFold(lvl, enrich.LevelSenior) || strings.EqualFold(lvl, enrich.LevelSME)) {
		return strings.TrimSpace(lvl + " " + record.CandidateTitle)
	}
	return record.CandidateTitle
}

// smeTitle picks the title SME enforcement should inspect: an explicit
// SME level override counts even when the stored title says otherwise.
func smeTitle(record types.NormalizedRecord) string {
	if strings.EqualFold(strings.TrimSpace(record.ExperienceLevel), enrich.LevelSME) {
		return enrich.LevelSME
	}
	return record.CandidateTitle
}

// persist writes resume.json (schema-checked) and resume.md into a fresh
// stamped run directory. Parallel runs can share a second; the colliding
// run gets a run-ID suffix instead of sharing the directory.
func persist(record types.NormalizedRecord, outputDir string, result *Result) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return &RunError{Stage: "persist", Message: "failed to create output directory", Cause: err}
	}

	stamp := time.Now().Format("20060102-150405")
	runDir := filepath.Join(outputDir, stamp)
	if err := os.Mkdir(runDir, 0o755); err != nil {
		if !os.IsExist(err) {
			return &RunError{Stage: "persist", Message: "failed to create run directory", Cause: err}
		}
		runDir = filepath.Join(outputDir, stamp+"-"+result.RunID.String()[:8])
		if err := os.Mkdir(runDir, 0o755); err != nil {
			return &RunError{Stage: "persist", Message: "failed to create run directory", Cause: err}
		}
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return &RunError{Stage: "persist", Message: "failed to encode record", Cause: err}
	}
	if err := schemas.ValidateRecord(data); err != nil {
		return &RunError{Stage: "persist", Message: "artifact failed schema validation", Cause: err}
	}

	jsonPath := filepath.Join(runDir, "resume.json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return &RunError{Stage: "persist", Message: "failed to write resume.json", Cause: err}
	}

	markdown, err := rendering.Markdown(record)
	if err != nil {
		return &RunError{Stage: "render", Message: "failed to render markdown", Cause: err}
	}
	mdPath := filepath.Join(runDir, "resume.md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return &RunError{Stage: "render", Message: "failed to write resume.md", Cause: err}
	}

	result.RunDir = runDir
	result.JSONPath = jsonPath
	result.MarkdownPath = mdPath
	return nil
}
