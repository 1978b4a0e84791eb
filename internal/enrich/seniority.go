package enrich

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jonathan/resume-formatter/internal/llm"
	"github.com/jonathan/resume-formatter/internal/prompts"
	"github.com/jonathan/resume-formatter/internal/types"
)

// Seniority levels the judgment service may answer with. Anything outside
// this closed set is treated as a failed inference.
const (
	LevelJourneyman = "Journeyman"
	LevelSenior     = "Senior"
	LevelSME        = "SME"
)

var allowedLevels = map[string]bool{
	LevelJourneyman: true,
	LevelSenior:     true,
	LevelSME:        true,
}

// seniorityPayload is the data handed to the judgment service. Work
// entries carry the extractor's precise calendar dates; experience items
// carry the coarser normalized month/year strings as a fallback.
type seniorityPayload struct {
	Today      string             `json:"today"`
	Work       []workStartDate    `json:"work"`
	Experience []experiencePeriod `json:"experience"`
}

type workStartDate struct {
	Position  string `json:"position"`
	StartDate string `json:"startDate"`
}

type experiencePeriod struct {
	Role      string `json:"role"`
	StartDate string `json:"start_date"`
}

// InferSeniority asks the judgment service to map the elapsed time since
// the oldest start date to one of three levels: > 11 years is SME, 6-10 is
// Senior, 0-5 is Journeyman. Returns the level token, or an empty string
// with a StageError when the call fails or the answer is not one of the
// three tokens; the caller leaves the candidate title unchanged in that
// case.
func InferSeniority(ctx context.Context, client llm.Client, work []types.WorkEntry, experience []types.ExperienceItem) (string, *StageError) {
	const stage = "seniority"

	payload := seniorityPayload{
		Today:      time.Now().Format("2006-01-02"),
		Work:       make([]workStartDate, 0, len(work)),
		Experience: make([]experiencePeriod, 0, len(experience)),
	}
	for _, w := range work {
		payload.Work = append(payload.Work, workStartDate{Position: w.Position, StartDate: w.StartDate})
	}
	for _, e := range experience {
		payload.Experience = append(payload.Experience, experiencePeriod{Role: e.Role, StartDate: e.StartDate})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", stageErr(stage, "failed to marshal payload", err)
	}

	system := prompts.MustGet("enrich.json", "seniority-system")
	user := prompts.Format(prompts.MustGet("enrich.json", "seniority-user"), map[string]string{
		"Payload": string(data),
	})

	answer, err := client.Complete(ctx, system, user, llm.TierLite)
	if err != nil {
		return "", stageErr(stage, "judgment call failed", err)
	}

	level := strings.TrimSpace(answer)
	if !allowedLevels[level] {
		return "", stageErr(stage, "unexpected level "+level, nil)
	}
	return level, nil
}
