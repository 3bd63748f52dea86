package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "identical", a: "offline mode feature", b: "offline mode feature", expected: 1.0},
		{name: "case insensitive", a: "Offline Mode", b: "offline mode", expected: 1.0},
		{name: "disjoint", a: "alpha beta", b: "gamma delta", expected: 0.0},
		{name: "partial overlap", a: "offline mode feature", b: "offline mode", expected: 2.0 / 3.0},
		{name: "both empty", a: "", b: "", expected: 0.0},
		{name: "one empty", a: "offline", b: "", expected: 0.0},
		{name: "whitespace only", a: "   ", b: "offline", expected: 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Jaccard(tc.a, tc.b), 1e-9)
		})
	}
}

func TestJaccardSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"offline mode feature", "offline mode"},
		{"pilot with 20 users", "run a pilot"},
		{"", "something"},
	}

	for _, pair := range pairs {
		assert.Equal(t, Jaccard(pair[0], pair[1]), Jaccard(pair[1], pair[0]))
	}
}

func TestItemLabel(t *testing.T) {
	assert.Equal(t, "Offline mode", itemLabel("<p><strong>Offline mode</strong></p><p>details here</p>"))
	assert.Equal(t, "plain text", itemLabel("plain text"))
	assert.Equal(t, "📋 Topics", itemLabel("<p><strong>📋 Topics</strong></p>"))
}
