package enrich

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-formatter/internal/llm"
	"github.com/jonathan/resume-formatter/internal/prompts"
	"github.com/jonathan/resume-formatter/internal/types"
)

// ProofreadSummary conservatively fixes spelling and spacing/comma errors
// in the summary paragraph. Terminal punctuation and meaning are preserved
// by contract; on failure the original text is returned.
func ProofreadSummary(ctx context.Context, client llm.Client, text string) (string, *StageError) {
	const stage = "proofread-summary"

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text, nil
	}

	system := prompts.MustGet("enrich.json", "proofread-summary-system")
	user := prompts.Format(prompts.MustGet("enrich.json", "proofread-summary-user"), map[string]string{
		"Text": trimmed,
	})

	answer, err := client.Complete(ctx, system, user, llm.TierLite)
	if err != nil {
		return text, stageErr(stage, "judgment call failed", err)
	}

	corrected := strings.TrimSpace(answer)
	if corrected == "" {
		return text, stageErr(stage, "empty text returned", nil)
	}
	return corrected, nil
}

// proofreadBulletsResponse is the expected shape of the bullet answer.
type proofreadBulletsResponse struct {
	Bullets []string `json:"bullets"`
}

// ProofreadBullets conservatively fixes spelling and spacing across every
// bullet, with the same flatten/rebuild and exact-length contract as
// harmonization: a count mismatch means all bullets stay unchanged.
func ProofreadBullets(ctx context.Context, client llm.Client, experience []types.ExperienceItem) ([]types.ExperienceItem, *StageError) {
	const stage = "proofread-bullets"

	flat, indexes := flattenBullets(experience)
	if len(flat) == 0 {
		return experience, nil
	}

	payload, err := json.Marshal(flat)
	if err != nil {
		return experience, stageErr(stage, "failed to marshal bullets", err)
	}

	system := prompts.MustGet("enrich.json", "proofread-bullets-system")
	user := prompts.Format(prompts.MustGet("enrich.json", "proofread-bullets-user"), map[string]string{
		"Bullets": string(payload),
	})

	answer, err := client.CompleteJSON(ctx, system, user, llm.TierLite)
	if err != nil {
		return experience, stageErr(stage, "judgment call failed", err)
	}

	var resp proofreadBulletsResponse
	if err := json.Unmarshal([]byte(answer), &resp); err != nil {
		return experience, stageErr(stage, "malformed response", err)
	}
	if len(resp.Bullets) != len(flat) {
		return experience, stageErr(stage, "bullet count mismatch", nil)
	}

	return rebuildBullets(experience, indexes, resp.Bullets), nil
}
