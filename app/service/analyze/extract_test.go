package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "json fence",
			text:     "Here is the map:\n```json\n{\"topics\": []}\n```\nDone.",
			expected: `{"topics": []}`,
		},
		{
			name:     "bare fence",
			text:     "```\n{\"topics\": []}\n```",
			expected: `{"topics": []}`,
		},
		{
			name:     "raw json",
			text:     "  {\"topics\": []}\n",
			expected: `{"topics": []}`,
		},
		{
			name:     "json fence preferred over bare",
			text:     "```\nignored\n```\n```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "unterminated fence falls back to raw",
			text:     "```json\n{\"a\": 1}",
			expected: "```json\n{\"a\": 1}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractJSON(tc.text))
		})
	}
}
