package domain

import "encoding/json"

// TurnKind tags the outcome of a single conversation turn.
type TurnKind string

const (
	TurnAnswered    TurnKind = "answered"
	TurnBlocked     TurnKind = "blocked"
	TurnOffTopic    TurnKind = "off_topic"
	TurnRateLimited TurnKind = "rate_limited"
	TurnError       TurnKind = "error"
)

// TurnResult is the outcome of submitting one message.
// Exactly one kind applies; the remaining fields are populated per kind.
type TurnResult struct {
	Kind    TurnKind `json:"kind"`
	Message string   `json:"message"`

	// Blocked / off-topic context
	Reason       string `json:"reason,omitempty"`
	Category     string `json:"category,omitempty"`
	Warnings     int    `json:"warnings,omitempty"`
	Violations   int    `json:"violations,omitempty"`
	SessionReset bool   `json:"sessionReset,omitempty"`

	// Off-topic guidance
	TravelExamples []string `json:"travelExamples,omitempty"`

	// Answered context
	FunctionCalled string          `json:"functionCalled,omitempty"`
	FunctionResult json.RawMessage `json:"functionResult,omitempty"`
}
