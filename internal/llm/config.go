// Package llm provides the judgment-service client abstraction and its
// configuration. Every enrichment stage funnels its single external call
// through this package.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for mechanical judgments: seniority level, skill
	// reordering, bullet harmonization, proofreading
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction of the resume tree
	TierStandard ModelTier = "standard"
	// TierAdvanced is for free-text generation: summary writing and polishing
	TierAdvanced ModelTier = "advanced"
)

// Provider represents a judgment-service provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier, falling back through
// standard and lite when the tier has no model configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
