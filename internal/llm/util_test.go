package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json untouched", `{"a": 1}`, `{"a": 1}`},
		{"json fence stripped", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"generic fence stripped", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"language identifier skipped", "```javascript\n[1, 2]\n```", "[1, 2]"},
		{"surrounding whitespace trimmed", "  {\"a\": 1}  ", `{"a": 1}`},
		{"inner backticks survive", "```json\n{\"text\": \"`x`\"}\n```", "{\"text\": \"`x`\"}"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestHandleReconfigure(t *testing.T) {
	first := &GeminiClient{}
	second := &GeminiClient{}

	handle := NewHandle(first)
	assert.Same(t, first, handle.Client().(*GeminiClient))

	old := handle.Reconfigure(second)
	assert.Same(t, first, old.(*GeminiClient))
	assert.Same(t, second, handle.Client().(*GeminiClient))
}
