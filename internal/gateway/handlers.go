package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tripwise/tripwise/internal/domain"
	"github.com/tripwise/tripwise/internal/funcreg"
	"github.com/tripwise/tripwise/internal/travel"
)

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// chatResponse mirrors the conversational turn outcome on the wire.
type chatResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	SessionID      string          `json:"session_id,omitempty"`
	Blocked        bool            `json:"blocked,omitempty"`
	OffTopic       bool            `json:"off_topic,omitempty"`
	Reason         string          `json:"reason,omitempty"`
	Category       string          `json:"category,omitempty"`
	Warnings       int             `json:"warnings,omitempty"`
	Violations     int             `json:"violations,omitempty"`
	SessionReset   bool            `json:"session_reset,omitempty"`
	TravelExamples []string        `json:"travel_examples,omitempty"`
	FunctionCalled string          `json:"function_called,omitempty"`
	FunctionResult json.RawMessage `json:"function_result,omitempty"`
	TravelQuery    bool            `json:"travel_query,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Retry  bool   `json:"retry,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No message provided"})
		return
	}

	result, err := s.orch.SubmitMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		s.log.Error().Err(err).Msg("chat turn failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Travel assistance temporarily unavailable. Please try again.", Retry: true})
		return
	}

	writeTurnResult(w, result, req.SessionID)
}

// writeTurnResult maps a turn outcome to its HTTP shape.
func writeTurnResult(w http.ResponseWriter, result *domain.TurnResult, sessionID string) {
	switch result.Kind {
	case domain.TurnRateLimited:
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:  result.Message,
			Action: "reset_required",
		})

	case domain.TurnBlocked:
		writeJSON(w, http.StatusOK, chatResponse{
			Success:      true,
			Message:      result.Message,
			Blocked:      !result.SessionReset,
			Reason:       result.Reason,
			Violations:   result.Violations,
			SessionReset: result.SessionReset,
		})

	case domain.TurnOffTopic:
		writeJSON(w, http.StatusOK, chatResponse{
			Success:        true,
			Message:        result.Message,
			OffTopic:       true,
			Category:       result.Category,
			Warnings:       result.Warnings,
			TravelExamples: result.TravelExamples,
		})

	case domain.TurnAnswered:
		writeJSON(w, http.StatusOK, chatResponse{
			Success:        true,
			Message:        result.Message,
			SessionID:      sessionID,
			FunctionCalled: result.FunctionCalled,
			FunctionResult: result.FunctionResult,
			TravelQuery:    true,
		})

	default:
		status := http.StatusInternalServerError
		if strings.HasPrefix(result.Message, "Unknown travel function") {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: result.Message, Retry: status == http.StatusInternalServerError})
	}
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleResetChat(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	// An empty body resets the default session.
	_ = json.NewDecoder(r.Body).Decode(&req)

	msg, err := s.orch.ResetSession(r.Context(), req.SessionID)
	if err != nil {
		s.log.Error().Err(err).Msg("session reset failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to reset chat. Please refresh the page."})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Success:      true,
		Message:      msg,
		SessionReset: true,
	})
}

// sessionStatusResponse mirrors the session counters on the wire.
type sessionStatusResponse struct {
	Success            bool   `json:"success"`
	SessionActive      bool   `json:"session_active"`
	MessageCount       int    `json:"message_count,omitempty"`
	OffTopicWarnings   int    `json:"off_topic_warnings,omitempty"`
	SecurityViolations int    `json:"security_violations,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.orch.SessionStatus(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		s.log.Error().Err(err).Msg("session status failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to get session status"})
		return
	}

	resp := sessionStatusResponse{
		Success:            true,
		SessionActive:      status.Active,
		MessageCount:       status.MessageCount,
		OffTopicWarnings:   status.OffTopicWarnings,
		SecurityViolations: status.SecurityViolations,
	}
	if status.Active {
		resp.CreatedAt = status.CreatedAt.Format("2006-01-02T15:04:05")
	}
	writeJSON(w, http.StatusOK, resp)
}

type destinationsResponse struct {
	Success      bool                 `json:"success"`
	Destinations []travel.Destination `json:"destinations"`
	TotalCities  int                  `json:"total_cities"`
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	destinations := s.orch.Destinations()
	if destinations == nil {
		destinations = []travel.Destination{}
	}
	writeJSON(w, http.StatusOK, destinationsResponse{
		Success:      true,
		Destinations: destinations,
		TotalCities:  len(destinations),
	})
}

type functionsResponse struct {
	Functions []funcreg.CatalogEntry `json:"functions"`
	Scope     string                 `json:"scope"`
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, functionsResponse{
		Functions: s.orch.FunctionCatalog(),
		Scope:     "travel_planning_only",
	})
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
