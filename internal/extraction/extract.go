// Package extraction turns scrubbed resume text into a structured
// Extraction tree via the judgment service.
package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-formatter/internal/llm"
	"github.com/jonathan/resume-formatter/internal/prompts"
	"github.com/jonathan/resume-formatter/internal/schemas"
	"github.com/jonathan/resume-formatter/internal/types"
)

// Extractor produces an Extraction tree from scrubbed resume text. The
// pipeline depends on this interface; the Gemini-backed implementation
// below is the production one.
type Extractor interface {
	Extract(ctx context.Context, resumeText string) (*types.Extraction, error)
}

// ServiceExtractor is the judgment-service-backed Extractor.
type ServiceExtractor struct {
	client llm.Client
}

// NewServiceExtractor returns an Extractor backed by the given client.
func NewServiceExtractor(client llm.Client) *ServiceExtractor {
	return &ServiceExtractor{client: client}
}

// Extract asks the judgment service to parse the resume text against the
// extraction schema. The returned tree is untrusted: fields may be empty
// or missing, and only a tree with no usable content at all is an error.
func (e *ServiceExtractor) Extract(ctx context.Context, resumeText string) (*types.Extraction, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &EmptyExtractionError{}
	}

	system := prompts.Format(prompts.MustGet("extraction.json", "extract-resume-system"), map[string]string{
		"Schema": schemas.ExtractionSchema(),
	})
	user := prompts.Format(prompts.MustGet("extraction.json", "extract-resume-user"), map[string]string{
		"ResumeText": resumeText,
	})

	answer, err := e.client.CompleteJSON(ctx, system, user, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "resume extraction call failed",
			Cause:   err,
		}
	}

	var tree types.Extraction
	if err := json.Unmarshal([]byte(answer), &tree); err != nil {
		return nil, &ParseError{
			Message: "failed to parse extraction response",
			Cause:   err,
		}
	}

	if !usable(&tree) {
		return nil, &EmptyExtractionError{}
	}
	return &tree, nil
}

// usable reports whether the tree carries anything worth mapping. A name
// alone is enough; so is any work, education, or skills content.
func usable(tree *types.Extraction) bool {
	if strings.TrimSpace(tree.Basics.Name) != "" {
		return true
	}
	return len(tree.Work) > 0 || len(tree.Education) > 0 || len(tree.Skills) > 0
}
