package pii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrubCategories(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		scrubbed  string
		tokenVals map[string]string
	}{
		{
			name:     "email phone and address",
			input:    "john@x.com, (555) 123-4567, 123 Main Street",
			scrubbed: "[[EMAIL_1]], [[PHONE_1]], [[ADDR_1]]",
			tokenVals: map[string]string{
				"[[EMAIL_1]]": "john@x.com",
				"[[PHONE_1]]": "(555) 123-4567",
				"[[ADDR_1]]":  "123 Main Street",
			},
		},
		{
			name:     "scheme qualified url",
			input:    "see https://example.com/profile for details",
			scrubbed: "see [[URL_1]] for details",
			tokenVals: map[string]string{
				"[[URL_1]]": "https://example.com/profile",
			},
		},
		{
			name:     "bare www url",
			input:    "portfolio at www.johndoe.dev today",
			scrubbed: "portfolio at [[URL_1]] today",
			tokenVals: map[string]string{
				"[[URL_1]]": "www.johndoe.dev",
			},
		},
		{
			name:     "phone with country code and dots",
			input:    "call +1 555.123.4567 now",
			scrubbed: "call [[PHONE_1]] now",
			tokenVals: map[string]string{
				"[[PHONE_1]]": "+1 555.123.4567",
			},
		},
		{
			name:     "no sensitive content",
			input:    "Implemented Kafka consumers in Java",
			scrubbed: "Implemented Kafka consumers in Java",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scrubbed, tokenMap := Scrub(tt.input)
			assert.Equal(t, tt.scrubbed, scrubbed)
			assert.Len(t, tokenMap, len(tt.tokenVals))
			for token, original := range tt.tokenVals {
				assert.Equal(t, original, tokenMap[token])
			}
		})
	}
}

func TestScrubCountsPerCategory(t *testing.T) {
	input := "a@b.com then c@d.org then www.site.io"
	scrubbed, tokenMap := Scrub(input)

	assert.Equal(t, "[[EMAIL_1]] then [[EMAIL_2]] then [[URL_1]]", scrubbed)
	assert.Equal(t, "a@b.com", tokenMap["[[EMAIL_1]]"])
	assert.Equal(t, "c@d.org", tokenMap["[[EMAIL_2]]"])
	assert.Equal(t, "www.site.io", tokenMap["[[URL_1]]"])
}

func TestScrubPhoneInsideAddressNotDoubleMatched(t *testing.T) {
	// The phone pattern runs before the address pattern and consumes the
	// number span first; the address pattern must not re-match the token.
	input := "reach me at 555-123-4567 Maple Avenue"
	scrubbed, tokenMap := Scrub(input)

	require.Contains(t, scrubbed, "[[PHONE_1]]")
	assert.Equal(t, "555-123-4567", tokenMap["[[PHONE_1]]"])
	for token := range tokenMap {
		if strings.HasPrefix(token, "[[ADDR_") {
			assert.NotContains(t, tokenMap[token], "[[PHONE_1]]")
		}
	}
}

func TestScrubRoundTrip(t *testing.T) {
	inputs := []string{
		"john@x.com, (555) 123-4567, 123 Main Street",
		"Jane Doe\njane.doe@corp.net\nwww.janedoe.com\n42 Elm Blvd.",
		"plain text with no sensitive spans at all",
	}

	for _, input := range inputs {
		scrubbed, tokenMap := Scrub(input)
		assert.Equal(t, input, Restore(scrubbed, tokenMap))
	}
}

func TestScrubPure(t *testing.T) {
	input := "john@x.com at 123 Main Street"
	first, firstMap := Scrub(input)
	second, secondMap := Scrub(input)

	assert.Equal(t, first, second)
	assert.Equal(t, firstMap, secondMap)
}
