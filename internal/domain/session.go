package domain

import "time"

// Session tracks one conversation and its moderation counters.
// The session store owns all session records; callers work on copies
// and persist changes through the store.
type Session struct {
	Key                string    `json:"key"`
	ID                 string    `json:"id"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	Messages           []Message `json:"messages,omitempty"`
	MessageCount       int       `json:"messageCount"`
	OffTopicWarnings   int       `json:"offTopicWarnings"`
	SecurityViolations int       `json:"securityViolations"`
}

// Touch appends an exchange to the session history.
// MessageCount is tracked separately: it counts inbound messages, including
// blocked and off-topic ones that never reach the history.
func (s *Session) Touch(exchange ...Message) {
	s.Messages = append(s.Messages, exchange...)
	s.UpdatedAt = time.Now()
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Messages = make([]Message, len(s.Messages))
	copy(cp.Messages, s.Messages)
	return &cp
}

// SessionStatus is a read-only snapshot of a session's counters.
type SessionStatus struct {
	Active             bool      `json:"active"`
	MessageCount       int       `json:"messageCount"`
	OffTopicWarnings   int       `json:"offTopicWarnings"`
	SecurityViolations int       `json:"securityViolations"`
	CreatedAt          time.Time `json:"createdAt,omitzero"`
}
