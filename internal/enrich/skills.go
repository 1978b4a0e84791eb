package enrich

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/resume-formatter/internal/llm"
	"github.com/jonathan/resume-formatter/internal/prompts"
	"github.com/jonathan/resume-formatter/internal/types"
)

// minCandidateSkills is the minimum number of distinct tokens a parsed
// skills section must yield to be considered authoritative. Fewer than
// this signals "no section found" and the caller falls back to the
// reorder enricher.
const minCandidateSkills = 4

// maxSkillTokenLength drops tokens that are too long to be a skill name.
const maxSkillTokenLength = 64

// maxSectionLineLength stops section collection at a suspiciously long
// line, which usually means the next section's prose has started.
const maxSectionLineLength = 200

var skillsHeadingRe = regexp.MustCompile(`(?i)^skills$|^technical\s+skills$|^core\s+competenc(?:y|ies)$|^technical\s+proficienc(?:y|ies)$|^technology\s+summary$|^tools\s*&\s*technologies$`)

// capsHeadingRe matches an ALL-CAPS wordy line that looks like the next
// section heading.
var capsHeadingRe = regexp.MustCompile(`^[A-Z][A-Z\s&/-]{3,}$`)

var narrativeRe = regexp.MustCompile(`(?i)\b(years?|experience|working with|proficient in)\b`)

var skillSplitRe = regexp.MustCompile(`[;,]|\s[-•·]\s`)

// ExtractCandidateSkills heuristically parses a candidate-provided skills
// section out of raw resume text. Local stage, no external call. Returns
// the ordered distinct tokens when a dedicated section is found, else nil.
func ExtractCandidateSkills(rawText string) []string {
	if rawText == "" {
		return nil
	}

	var sectionLines []string
	inSection := false
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if !inSection {
			if skillsHeadingRe.MatchString(line) {
				inSection = true
			}
			continue
		}
		if line == "" || len(line) > maxSectionLineLength {
			// Blank or suspiciously long line: likely the next section.
			if len(sectionLines) > 0 {
				break
			}
			continue
		}
		if capsHeadingRe.MatchString(line) && !strings.ContainsAny(line, ",;") {
			break
		}
		sectionLines = append(sectionLines, line)
	}

	var tokens []string
	for _, line := range sectionLines {
		for _, part := range skillSplitRe.Split(line, -1) {
			tok := strings.Trim(strings.TrimSpace(part), "-•· ")
			if tok == "" {
				continue
			}
			if len(tok) > maxSkillTokenLength || narrativeRe.MatchString(tok) {
				continue
			}
			tokens = append(tokens, tok)
		}
	}

	ordered := dedupeSkills(tokens)
	if len(ordered) < minCandidateSkills {
		return nil
	}
	return ordered
}

// ReorderSkills asks the judgment service to reorder and group an existing
// skill list for presentation. The service may not introduce new skills
// and may merge near-duplicates; the result is deduplicated
// case-insensitively, so it is never larger than the input. On any failure
// the original list is returned along with the StageError.
func ReorderSkills(ctx context.Context, client llm.Client, skills []string, experience []types.ExperienceItem, candidateTitle string) ([]string, *StageError) {
	const stage = "skills-reorder"

	if len(skills) == 0 {
		return skills, nil
	}

	payload, err := json.Marshal(skills)
	if err != nil {
		return skills, stageErr(stage, "failed to marshal skills", err)
	}

	system := prompts.MustGet("enrich.json", "skills-reorder-system")
	user := prompts.Format(prompts.MustGet("enrich.json", "skills-reorder-user"), map[string]string{
		"Title":  candidateTitle,
		"Roles":  joinRoles(experience),
		"Skills": string(payload),
	})

	answer, err := client.CompleteJSON(ctx, system, user, llm.TierLite)
	if err != nil {
		return skills, stageErr(stage, "judgment call failed", err)
	}

	ordered, perr := parseSkillList(answer)
	if perr != nil {
		return skills, stageErr(stage, "malformed response", perr)
	}

	cleaned := make([]string, 0, len(ordered))
	for _, s := range ordered {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	final := dedupeSkills(cleaned)
	if len(final) == 0 {
		return skills, stageErr(stage, "empty skill list returned", nil)
	}
	return final, nil
}

// skillListResponse is the envelope shape some responses use instead of a
// bare array.
type skillListResponse struct {
	Skills []string `json:"skills"`
	Result []string `json:"result"`
}

// parseSkillList accepts either a bare JSON array of strings or an object
// wrapping one under "skills" or "result". Anything else is a structural
// mismatch.
func parseSkillList(answer string) ([]string, error) {
	var direct []string
	if err := json.Unmarshal([]byte(answer), &direct); err == nil {
		return direct, nil
	}

	var wrapped skillListResponse
	if err := json.Unmarshal([]byte(answer), &wrapped); err != nil {
		return nil, err
	}
	if len(wrapped.Skills) > 0 {
		return wrapped.Skills, nil
	}
	if len(wrapped.Result) > 0 {
		return wrapped.Result, nil
	}
	return nil, errEmptySkillList
}

var errEmptySkillList = &StageError{Stage: "skills-reorder", Message: "response carried no skill list"}

// dedupeSkills removes case-insensitive duplicates, keeping first
// occurrence and original relative order.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	ordered := make([]string, 0, len(skills))
	for _, s := range skills {
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		ordered = append(ordered, s)
	}
	return ordered
}
