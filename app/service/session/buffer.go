package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/elliotchance/pie/v2"
)

const defaultBufferSize = 50

// ConversationBuffer keeps the last N transcript entries in arrival order.
// Appending beyond capacity evicts the oldest entry.
type ConversationBuffer struct {
	mu       sync.Mutex
	capacity int
	entries  []TranscriptEntry
}

func NewBuffer(capacity int) *ConversationBuffer {
	if capacity <= 0 {
		capacity = defaultBufferSize
	}

	return &ConversationBuffer{
		capacity: capacity,
		entries:  make([]TranscriptEntry, 0, capacity),
	}
}

func (b *ConversationBuffer) Add(entry TranscriptEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) >= b.capacity {
		b.entries = append(b.entries[1:], entry)
	} else {
		b.entries = append(b.entries, entry)
	}
}

// Snapshot returns a point-in-time copy of the buffer contents.
func (b *ConversationBuffer) Snapshot() []TranscriptEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]TranscriptEntry, len(b.entries))
	copy(result, b.entries)

	return result
}

// Text renders the buffer as "[speaker]: text" lines for the analysis prompt.
func (b *ConversationBuffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var builder strings.Builder

	for i, entry := range b.entries {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(fmt.Sprintf("[%s]: %s", entry.Speaker, entry.Text))
	}

	return builder.String()
}

func (b *ConversationBuffer) Speakers() []string {
	entries := b.Snapshot()

	return pie.Unique(pie.Map(entries, func(entry TranscriptEntry) string {
		return entry.Speaker
	}))
}

func (b *ConversationBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.entries)
}

func (b *ConversationBuffer) IsEmpty() bool {
	return b.Len() == 0
}
