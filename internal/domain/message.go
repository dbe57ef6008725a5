package domain

import "time"

// Role constants for conversation messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleFunction  = "function"
)

// Message is a single turn in a conversation (used in session history).
type Message struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	Name         string        `json:"name,omitempty"` // function name for role "function"
	FunctionCall *FunctionCall `json:"functionCall,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

// FunctionCall is a model request to invoke a registered function.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string
}
