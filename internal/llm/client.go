// Package llm defines the external model capability: given a message list
// and a set of callable function schemas, return either a text reply or a
// request to invoke one named function with arguments.
//
// Providers are fallible and never retried here; a failed call surfaces to
// the caller, which degrades to a fallback response.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Role constants for messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleFunction  = "function"
)

// Message is a single turn handed to the model.
type Message struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	Name         string        `json:"name,omitempty"` // function name for role "function"
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// FunctionCall is a model request to invoke a named function.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string
}

// FunctionSchema describes one callable function to the model.
type FunctionSchema struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"` // JSON Schema
}

// Request is the input to a Converse call.
type Request struct {
	System      string           `json:"system,omitempty"`
	Messages    []Message        `json:"messages"`
	Functions   []FunctionSchema `json:"functions,omitempty"`
	MaxTokens   int              `json:"maxTokens,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
}

// Reply is the model's answer: plain text, or a function call to dispatch.
type Reply struct {
	Content      string        `json:"content"`
	FunctionCall *FunctionCall `json:"functionCall,omitempty"`
	Model        string        `json:"model,omitempty"`
}

// Client is the interface all model providers must implement.
type Client interface {
	// Converse sends the conversation and returns the model's reply.
	Converse(ctx context.Context, req Request) (*Reply, error)

	// Name returns the provider name (e.g., "openai", "mock").
	Name() string
}

// ProviderError is returned when a model provider fails.
type ProviderError struct {
	Provider string
	Message  string
	Code     int // HTTP-like status code (401, 429, 500, etc.)
}

func (e *ProviderError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s: %d %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
