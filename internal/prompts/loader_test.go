package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("enrich.json", "seniority-system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Journeyman|Senior|SME")
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("enrich.json", "no-such-key")
	assert.Error(t, err)
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("missing.json", "any")
	assert.Error(t, err)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("enrich.json", "no-such-key")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "single placeholder",
			template: "Hello {{.Name}}",
			data:     map[string]string{"Name": "World"},
			expected: "Hello World",
		},
		{
			name:     "repeated placeholder",
			template: "{{.X}} and {{.X}}",
			data:     map[string]string{"X": "a"},
			expected: "a and a",
		},
		{
			name:     "unknown placeholder left in place",
			template: "keep {{.Unknown}}",
			data:     map[string]string{"Other": "x"},
			expected: "keep {{.Unknown}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestAllEnrichPromptsPresent(t *testing.T) {
	keys := []string{
		"seniority-system", "seniority-user",
		"summary-template-guide",
		"summary-generate-system", "summary-generate-user",
		"summary-polish-system", "summary-polish-user",
		"skills-reorder-system", "skills-reorder-user",
		"bullets-harmonize-system", "bullets-harmonize-user",
		"proofread-summary-system", "proofread-summary-user",
		"proofread-bullets-system", "proofread-bullets-user",
	}
	for _, key := range keys {
		_, err := Get("enrich.json", key)
		assert.NoError(t, err, "prompt %q should exist", key)
	}
}
