package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(speaker, text string) TranscriptEntry {
	return TranscriptEntry{
		Timestamp:  1000,
		Speaker:    speaker,
		Text:       text,
		Confidence: 0.9,
	}
}

func TestBufferSlidingWindow(t *testing.T) {
	const capacity = 5

	buf := NewBuffer(capacity)

	for i := 0; i < capacity+3; i++ {
		buf.Add(entry("Alice", fmt.Sprintf("message %d", i)))
	}

	entries := buf.Snapshot()
	require.Len(t, entries, capacity)

	// the last K entries survive, in arrival order
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("message %d", i+3), e.Text)
	}
}

func TestBufferSnapshotIsCopy(t *testing.T) {
	buf := NewBuffer(5)
	buf.Add(entry("Alice", "first"))

	snapshot := buf.Snapshot()
	buf.Add(entry("Bob", "second"))

	require.Len(t, snapshot, 1)
	assert.Equal(t, "first", snapshot[0].Text)
}

func TestBufferText(t *testing.T) {
	buf := NewBuffer(10)
	buf.Add(entry("Alice", "Hello"))
	buf.Add(entry("Bob", "Hi there"))

	assert.Equal(t, "[Alice]: Hello\n[Bob]: Hi there", buf.Text())
}

func TestBufferSpeakers(t *testing.T) {
	buf := NewBuffer(10)
	buf.Add(entry("Alice", "one"))
	buf.Add(entry("Bob", "two"))
	buf.Add(entry("Alice", "three"))

	speakers := buf.Speakers()
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, speakers)
}

func TestBufferEmpty(t *testing.T) {
	buf := NewBuffer(10)
	assert.True(t, buf.IsEmpty())
	assert.Equal(t, "", buf.Text())

	buf.Add(entry("Alice", "hello"))
	assert.False(t, buf.IsEmpty())
	assert.Equal(t, 1, buf.Len())
}
