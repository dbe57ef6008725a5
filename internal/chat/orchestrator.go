// Package chat orchestrates conversation turns: moderation, session state,
// model calls and function dispatch, in that order. Moderation always runs
// before the model sees a message; the model is never the gatekeeper.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tripwise/tripwise/internal/domain"
	"github.com/tripwise/tripwise/internal/funcreg"
	"github.com/tripwise/tripwise/internal/llm"
	"github.com/tripwise/tripwise/internal/logging"
	"github.com/tripwise/tripwise/internal/moderation"
	"github.com/tripwise/tripwise/internal/session"
	"github.com/tripwise/tripwise/internal/travel"
)

// Conversation policy knobs.
const (
	// maxSessionMessages caps inbound messages per session. Every inbound
	// message counts, including blocked and off-topic ones.
	maxSessionMessages = 50

	// violationLimit is the number of security violations that forces a
	// session reset.
	violationLimit = 2

	// historyWindow is how many stored messages accompany each model call.
	historyWindow = 10

	modelMaxTokens   = 1000
	modelTemperature = 0.7
)

// Orchestrator runs the conversation loop for all sessions.
type Orchestrator struct {
	store     session.Store
	validator *moderation.Validator
	registry  *funcreg.Registry
	client    llm.Client
	planner   *travel.Planner
	log       *logging.Logger
	locks     keyedMutex
}

// New creates an orchestrator.
func New(store session.Store, validator *moderation.Validator, registry *funcreg.Registry, client llm.Client, planner *travel.Planner, log *logging.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		validator: validator,
		registry:  registry,
		client:    client,
		planner:   planner,
		log:       log.Sub("chat"),
	}
}

// SubmitMessage processes one user message through the full pipeline.
// Turns on the same session key are serialized; turns on different keys run
// concurrently. All conversational outcomes, including provider failures,
// are reported in the TurnResult; the error return is reserved for session
// store failures.
func (o *Orchestrator) SubmitMessage(ctx context.Context, sessionKey, message string) (result *domain.TurnResult, err error) {
	if strings.TrimSpace(message) == "" {
		return &domain.TurnResult{Kind: domain.TurnError, Message: "No message provided"}, nil
	}
	if sessionKey == "" {
		sessionKey = "default"
	}

	unlock := o.locks.lock(sessionKey)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			o.log.Error().Str("session", sessionKey).Any("panic", r).Msg("turn panicked")
			result = &domain.TurnResult{Kind: domain.TurnError, Message: msgInternalError}
			err = nil
		}
	}()

	sess, err := o.store.GetOrCreate(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	// Count the inbound message before any gate so blocked traffic still
	// consumes the session budget.
	sess.MessageCount++
	if err := o.store.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	if sess.MessageCount > maxSessionMessages {
		o.log.Warn().Str("session", sessionKey).Int("count", sess.MessageCount).Msg("session message limit reached")
		return &domain.TurnResult{Kind: domain.TurnRateLimited, Message: msgRateLimited}, nil
	}

	verdict := o.validator.Validate(message, sessionKey)

	switch verdict.Action {
	case moderation.ActionBlock:
		return o.handleBlocked(ctx, sess, verdict)
	case moderation.ActionRedirect:
		return o.handleOffTopic(ctx, sess, verdict)
	}

	return o.handleTravelQuery(ctx, sess, message)
}

// handleBlocked records a security violation and resets the session once
// the violation limit is hit. The reset session stays usable.
func (o *Orchestrator) handleBlocked(ctx context.Context, sess *domain.Session, verdict moderation.Result) (*domain.TurnResult, error) {
	if verdict.Reason == moderation.ReasonInvalidInput {
		return &domain.TurnResult{Kind: domain.TurnError, Message: "No message provided"}, nil
	}

	sess.SecurityViolations++
	o.log.Error().
		Str("session", sess.Key).
		Str("category", verdict.Category).
		Int("violations", sess.SecurityViolations).
		Msg("security violation")

	if sess.SecurityViolations >= violationLimit {
		if _, err := o.store.Reset(ctx, sess.Key); err != nil {
			return nil, fmt.Errorf("resetting session: %w", err)
		}
		return &domain.TurnResult{
			Kind:         domain.TurnBlocked,
			Message:      msgSecurityReset,
			Reason:       "security",
			SessionReset: true,
		}, nil
	}

	if err := o.store.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	return &domain.TurnResult{
		Kind:       domain.TurnBlocked,
		Message:    msgSecurityBlocked,
		Reason:     "security",
		Violations: sess.SecurityViolations,
	}, nil
}

// handleOffTopic issues an escalating redirect without ever consulting the
// model. Off-topic exchanges are not stored in history.
func (o *Orchestrator) handleOffTopic(ctx context.Context, sess *domain.Session, verdict moderation.Result) (*domain.TurnResult, error) {
	sess.OffTopicWarnings++
	if err := o.store.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	return &domain.TurnResult{
		Kind:           domain.TurnOffTopic,
		Message:        offTopicMessage(sess.OffTopicWarnings, verdict.Suggestion),
		Category:       verdict.Category,
		Warnings:       sess.OffTopicWarnings,
		TravelExamples: append([]string(nil), travelExamples...),
	}, nil
}

// handleTravelQuery runs the model loop: one call to decide, an optional
// function dispatch, and a second call to phrase the result.
func (o *Orchestrator) handleTravelQuery(ctx context.Context, sess *domain.Session, message string) (*domain.TurnResult, error) {
	msgs := historyWindowOf(sess.Messages, historyWindow)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	reply, err := o.converse(ctx, msgs)
	if err != nil {
		o.log.Error().Err(err).Str("session", sess.Key).Msg("model call failed")
		return &domain.TurnResult{Kind: domain.TurnError, Message: msgServiceUnavailable}, nil
	}

	if reply.FunctionCall == nil {
		sess.Touch(
			domain.Message{Role: domain.RoleUser, Content: message},
			domain.Message{Role: domain.RoleAssistant, Content: reply.Content},
		)
		if err := o.store.Update(ctx, sess); err != nil {
			return nil, fmt.Errorf("storing session: %w", err)
		}
		return &domain.TurnResult{Kind: domain.TurnAnswered, Message: reply.Content}, nil
	}

	return o.handleFunctionCall(ctx, sess, message, msgs, reply.FunctionCall)
}

// handleFunctionCall dispatches the requested function and asks the model to
// phrase the result. If the second call fails the function result is still
// delivered through a canned fallback.
func (o *Orchestrator) handleFunctionCall(ctx context.Context, sess *domain.Session, message string, msgs []llm.Message, call *llm.FunctionCall) (*domain.TurnResult, error) {
	args := json.RawMessage(call.Arguments)
	if !json.Valid(args) {
		o.log.Error().Str("session", sess.Key).Str("function", call.Name).Msg("malformed function arguments from model")
		return &domain.TurnResult{Kind: domain.TurnError, Message: "Invalid function call from AI"}, nil
	}

	fnResult, err := o.registry.Dispatch(ctx, call.Name, args)
	if err != nil {
		if errors.Is(err, funcreg.ErrUnknownFunction) {
			o.log.Error().Str("session", sess.Key).Str("function", call.Name).Msg("model requested unknown function")
			return &domain.TurnResult{Kind: domain.TurnError, Message: fmt.Sprintf("Unknown travel function: %s", call.Name)}, nil
		}
		o.log.Error().Err(err).Str("session", sess.Key).Str("function", call.Name).Msg("function dispatch failed")
		return &domain.TurnResult{Kind: domain.TurnError, Message: "Invalid function call from AI"}, nil
	}

	callMsg := llm.Message{
		Role:         llm.RoleAssistant,
		FunctionCall: &llm.FunctionCall{Name: call.Name, Arguments: call.Arguments},
	}
	resultMsg := llm.Message{
		Role:    llm.RoleFunction,
		Name:    call.Name,
		Content: string(fnResult),
	}
	msgs = append(msgs, callMsg, resultMsg)

	final, err := o.converse(ctx, msgs)
	if err != nil {
		o.log.Warn().Err(err).Str("session", sess.Key).Msg("phrasing call failed, using fallback")
		fallback := "I found travel information for you! " + resultDetail(fnResult)
		sess.Touch(
			domain.Message{Role: domain.RoleUser, Content: message},
			domain.Message{Role: domain.RoleAssistant, Content: fallback},
		)
		if err := o.store.Update(ctx, sess); err != nil {
			return nil, fmt.Errorf("storing session: %w", err)
		}
		return &domain.TurnResult{
			Kind:           domain.TurnAnswered,
			Message:        fallback,
			FunctionCalled: call.Name,
			FunctionResult: fnResult,
		}, nil
	}

	sess.Touch(
		domain.Message{Role: domain.RoleUser, Content: message},
		domain.Message{Role: domain.RoleAssistant, FunctionCall: &domain.FunctionCall{Name: call.Name, Arguments: call.Arguments}},
		domain.Message{Role: domain.RoleFunction, Name: call.Name, Content: string(fnResult)},
		domain.Message{Role: domain.RoleAssistant, Content: final.Content},
	)
	if err := o.store.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	return &domain.TurnResult{
		Kind:           domain.TurnAnswered,
		Message:        final.Content,
		FunctionCalled: call.Name,
		FunctionResult: fnResult,
	}, nil
}

// ResetSession wipes the session under key and returns the greeting for a
// fresh conversation. Resetting an unknown key succeeds.
func (o *Orchestrator) ResetSession(ctx context.Context, sessionKey string) (string, error) {
	if sessionKey == "" {
		sessionKey = "default"
	}
	unlock := o.locks.lock(sessionKey)
	defer unlock()

	if _, err := o.store.Reset(ctx, sessionKey); err != nil {
		return "", fmt.Errorf("resetting session: %w", err)
	}
	o.log.Info().Str("session", sessionKey).Msg("session reset")
	return msgChatReset, nil
}

// SessionStatus reports the counters for a session. Unknown keys report an
// inactive session, not an error.
func (o *Orchestrator) SessionStatus(ctx context.Context, sessionKey string) (domain.SessionStatus, error) {
	if sessionKey == "" {
		sessionKey = "default"
	}
	sess, err := o.store.Get(ctx, sessionKey)
	if errors.Is(err, session.ErrNotFound) {
		return domain.SessionStatus{}, nil
	}
	if err != nil {
		return domain.SessionStatus{}, fmt.Errorf("loading session: %w", err)
	}

	return domain.SessionStatus{
		Active:             true,
		MessageCount:       sess.MessageCount,
		OffTopicWarnings:   sess.OffTopicWarnings,
		SecurityViolations: sess.SecurityViolations,
		CreatedAt:          sess.CreatedAt,
	}, nil
}

// Destinations lists the cities the travel dataset covers.
func (o *Orchestrator) Destinations() []travel.Destination {
	return o.planner.Dataset().Destinations()
}

// FunctionCatalog lists the registered travel functions.
func (o *Orchestrator) FunctionCatalog() []funcreg.CatalogEntry {
	return o.registry.Catalog()
}

func (o *Orchestrator) converse(ctx context.Context, msgs []llm.Message) (*llm.Reply, error) {
	temp := modelTemperature
	return o.client.Converse(ctx, llm.Request{
		System:      systemInstruction,
		Messages:    msgs,
		Functions:   o.registry.Definitions(),
		MaxTokens:   modelMaxTokens,
		Temperature: &temp,
	})
}

// historyWindowOf converts the tail of the stored history to model messages.
func historyWindowOf(history []domain.Message, n int) []llm.Message {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	msgs := make([]llm.Message, 0, len(history)+3)
	for _, m := range history {
		msg := llm.Message{Role: m.Role, Content: m.Content, Name: m.Name}
		if m.FunctionCall != nil {
			msg.FunctionCall = &llm.FunctionCall{Name: m.FunctionCall.Name, Arguments: m.FunctionCall.Arguments}
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// resultDetail extracts the human-readable message from a function result
// payload, if it carries one.
func resultDetail(result json.RawMessage) string {
	var probe struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(result, &probe); err == nil && probe.Message != "" {
		return probe.Message
	}
	return fallbackResultDetail
}

// keyedMutex serializes work per session key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
