package gateway

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/tripwise/tripwise/internal/domain"
)

// wsFrame is one inbound WebSocket message.
type wsFrame struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// wsReply is one outbound WebSocket message. Kind distinguishes the turn
// outcomes the HTTP API signals through status codes.
type wsReply struct {
	Kind string `json:"kind"`
	chatResponse
	Error string `json:"error,omitempty"`
}

// handleWebSocket runs a chat conversation over one WebSocket connection.
// Each inbound frame is a turn; the reply is written back on the same
// connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("websocket client connected")

	for {
		var frame wsFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Msg("websocket read failed")
			}
			return
		}

		reply := s.runTurn(r, frame)
		if err := conn.WriteJSON(reply); err != nil {
			s.log.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

func (s *Server) runTurn(r *http.Request, frame wsFrame) wsReply {
	if strings.TrimSpace(frame.Message) == "" {
		return wsReply{Kind: string(domain.TurnError), Error: "No message provided"}
	}

	result, err := s.orch.SubmitMessage(r.Context(), frame.SessionID, frame.Message)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket chat turn failed")
		return wsReply{Kind: string(domain.TurnError), Error: "Travel assistance temporarily unavailable. Please try again."}
	}

	reply := wsReply{Kind: string(result.Kind)}
	switch result.Kind {
	case domain.TurnRateLimited:
		reply.Error = result.Message
	case domain.TurnError:
		reply.Error = result.Message
	case domain.TurnBlocked:
		reply.chatResponse = chatResponse{
			Success:      true,
			Message:      result.Message,
			Blocked:      !result.SessionReset,
			Reason:       result.Reason,
			Violations:   result.Violations,
			SessionReset: result.SessionReset,
		}
	case domain.TurnOffTopic:
		reply.chatResponse = chatResponse{
			Success:        true,
			Message:        result.Message,
			OffTopic:       true,
			Category:       result.Category,
			Warnings:       result.Warnings,
			TravelExamples: result.TravelExamples,
		}
	default:
		reply.chatResponse = chatResponse{
			Success:        true,
			Message:        result.Message,
			SessionID:      frame.SessionID,
			FunctionCalled: result.FunctionCalled,
			FunctionResult: result.FunctionResult,
			TravelQuery:    true,
		}
	}
	return reply
}
