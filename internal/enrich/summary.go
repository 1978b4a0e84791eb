package enrich

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/resume-formatter/internal/llm"
	"github.com/jonathan/resume-formatter/internal/prompts"
	"github.com/jonathan/resume-formatter/internal/types"
)

// maxSkillsInPrompt bounds how many skills are listed in summary prompts.
const maxSkillsInPrompt = 40

// SummaryInput carries the grounding material for summary generation and
// polishing. ResumeText is the scrubbed raw text; the stage never sees the
// candidate's name.
type SummaryInput struct {
	ResumeText string
	Title      string
	CoreSkills []string
	Experience []types.ExperienceItem
}

// GenerateSummary synthesizes a 3-5 sentence third-person intro paragraph
// strictly grounded in the supplied resume data. Called only when no
// summary exists yet. Returns body text without any name prefix.
func GenerateSummary(ctx context.Context, client llm.Client, in SummaryInput) (string, *StageError) {
	const stage = "summary-generate"

	text := strings.TrimSpace(in.ResumeText)
	if text == "" {
		return "", stageErr(stage, "no resume text to ground the summary", nil)
	}

	guide := prompts.MustGet("enrich.json", "summary-template-guide")
	system := prompts.Format(prompts.MustGet("enrich.json", "summary-generate-system"), map[string]string{
		"TemplateGuide": guide,
	})
	user := prompts.Format(prompts.MustGet("enrich.json", "summary-generate-user"), map[string]string{
		"Title":      in.Title,
		"Skills":     strings.Join(topSkills(in.CoreSkills), ", "),
		"Roles":      joinRoles(in.Experience),
		"ResumeText": text,
	})

	answer, err := client.Complete(ctx, system, user, llm.TierAdvanced)
	if err != nil {
		return "", stageErr(stage, "judgment call failed", err)
	}

	generated := strings.TrimSpace(answer)
	if generated == "" {
		return "", stageErr(stage, "empty summary returned", nil)
	}
	return generated, nil
}

// PolishSummary minimally rewrites an existing summary toward the style
// guide without altering its facts. Returns body text without any name
// prefix; on failure the caller keeps the original summary.
func PolishSummary(ctx context.Context, client llm.Client, original string, in SummaryInput) (string, *StageError) {
	const stage = "summary-polish"

	summary := strings.TrimSpace(original)
	if summary == "" {
		return original, stageErr(stage, "no summary to polish", nil)
	}

	var contextBits strings.Builder
	if in.Title != "" {
		contextBits.WriteString("Likely role/title: " + in.Title + "\n")
	}
	if len(in.CoreSkills) > 0 {
		contextBits.WriteString("Top technologies from resume: " + strings.Join(topSkills(in.CoreSkills), ", ") + "\n")
	}
	if in.ResumeText != "" {
		contextBits.WriteString("Resume context (verbatim):\n" + in.ResumeText + "\n")
	}
	if contextBits.Len() > 0 {
		contextBits.WriteString("\n")
	}

	guide := prompts.MustGet("enrich.json", "summary-template-guide")
	system := prompts.MustGet("enrich.json", "summary-polish-system")
	user := prompts.Format(prompts.MustGet("enrich.json", "summary-polish-user"), map[string]string{
		"Context":       contextBits.String(),
		"Summary":       summary,
		"TemplateGuide": guide,
	})

	answer, err := client.Complete(ctx, system, user, llm.TierAdvanced)
	if err != nil {
		return original, stageErr(stage, "judgment call failed", err)
	}

	polished := strings.TrimSpace(answer)
	if polished == "" {
		return original, stageErr(stage, "empty summary returned", nil)
	}
	return polished, nil
}

var seniorWordRe = regexp.MustCompile(`\b[Ss]enior\b`)

// EnforceSME replaces standalone occurrences of "senior"/"Senior" in the
// summary with "SME" when the resolved title begins with "SME". Pure local
// rewrite; word-boundary match only, so substrings like "seniority" are
// untouched.
func EnforceSME(summary, candidateTitle string) string {
	if summary == "" || candidateTitle == "" {
		return summary
	}
	if !strings.HasPrefix(strings.TrimSpace(candidateTitle), LevelSME) {
		return summary
	}
	return seniorWordRe.ReplaceAllString(summary, LevelSME)
}

func topSkills(skills []string) []string {
	if len(skills) > maxSkillsInPrompt {
		return skills[:maxSkillsInPrompt]
	}
	return skills
}

func joinRoles(experience []types.ExperienceItem) string {
	roles := make([]string, 0, len(experience))
	for _, e := range experience {
		if role := strings.TrimSpace(e.Role); role != "" {
			roles = append(roles, role)
		}
	}
	return strings.Join(roles, ", ")
}
