package analyze

import (
	"fmt"
	"time"
)

type Topic struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Importance  float64 `json:"importance,omitempty"`
}

type Insight struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Evidence   []string `json:"evidence,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Supports   []string `json:"supports,omitempty"`
}

type Decision struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Rationale  []string `json:"rationale,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	BasedOn    []string `json:"based_on,omitempty"`
}

type Action struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Owner      string   `json:"owner,omitempty"`
	Due        string   `json:"due,omitempty"`
	DependsOn  []string `json:"depends_on,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
}

type Relationship struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
}

type Summary struct {
	FrameName string `json:"frame_name"`
	Blurb     string `json:"blurb"`
}

// Graph is the structured conversation map produced by the model.
type Graph struct {
	Topics        []Topic        `json:"topics"`
	Insights      []Insight      `json:"insights"`
	Decisions     []Decision     `json:"decisions"`
	Actions       []Action       `json:"actions"`
	Relationships []Relationship `json:"relationships"`
	Summary       Summary        `json:"summary"`
	Timestamp     time.Time      `json:"timestamp"`
	BotID         string         `json:"bot_id,omitempty"`
}

// ParseError means the model responded but its output did not satisfy the
// JSON contract. The raw response is kept for diagnostics.
type ParseError struct {
	RawResponse string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
