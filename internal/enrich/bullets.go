package enrich

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-formatter/internal/llm"
	"github.com/jonathan/resume-formatter/internal/prompts"
	"github.com/jonathan/resume-formatter/internal/types"
)

// bulletIndex addresses one bullet within the experience list.
type bulletIndex struct {
	role   int
	bullet int
}

// flattenBullets collects every bullet across all roles in original order,
// remembering where each one came from.
func flattenBullets(experience []types.ExperienceItem) ([]string, []bulletIndex) {
	var flat []string
	var indexes []bulletIndex
	for ri, role := range experience {
		for bi, b := range role.Bullets {
			flat = append(flat, b)
			indexes = append(indexes, bulletIndex{role: ri, bullet: bi})
		}
	}
	return flat, indexes
}

// rebuildBullets returns a deep copy of experience with the flattened
// bullet edits applied back to their original positions.
func rebuildBullets(experience []types.ExperienceItem, indexes []bulletIndex, edited []string) []types.ExperienceItem {
	out := make([]types.ExperienceItem, len(experience))
	for i, role := range experience {
		out[i] = role
		out[i].Bullets = make([]string, len(role.Bullets))
		copy(out[i].Bullets, role.Bullets)
	}
	for i, idx := range indexes {
		out[idx.role].Bullets[idx.bullet] = edited[i]
	}
	return out
}

// harmonizeResponse is the expected shape of the harmonization answer.
type harmonizeResponse struct {
	Punctuation string   `json:"punctuation"`
	Tense       string   `json:"tense"`
	Bullets     []string `json:"bullets"`
}

// HarmonizeBullets applies one consistent punctuation style and verb tense
// across every bullet in the resume. The judgment service decides both by
// majority rule and returns a same-length, same-order list of minimally
// edited bullets; a length mismatch is treated as total failure and the
// input is returned untouched.
func HarmonizeBullets(ctx context.Context, client llm.Client, experience []types.ExperienceItem) ([]types.ExperienceItem, *StageError) {
	const stage = "bullets-harmonize"

	flat, indexes := flattenBullets(experience)
	if len(flat) == 0 {
		return experience, nil
	}

	payload, err := json.Marshal(flat)
	if err != nil {
		return experience, stageErr(stage, "failed to marshal bullets", err)
	}

	system := prompts.MustGet("enrich.json", "bullets-harmonize-system")
	user := prompts.Format(prompts.MustGet("enrich.json", "bullets-harmonize-user"), map[string]string{
		"Bullets": string(payload),
	})

	answer, err := client.CompleteJSON(ctx, system, user, llm.TierLite)
	if err != nil {
		return experience, stageErr(stage, "judgment call failed", err)
	}

	var resp harmonizeResponse
	if err := json.Unmarshal([]byte(answer), &resp); err != nil {
		return experience, stageErr(stage, "malformed response", err)
	}
	if len(resp.Bullets) != len(flat) {
		return experience, stageErr(stage, "bullet count mismatch", nil)
	}

	return rebuildBullets(experience, indexes, resp.Bullets), nil
}
