package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/tripwise/internal/chat"
	"github.com/tripwise/tripwise/internal/config"
	"github.com/tripwise/tripwise/internal/funcreg"
	"github.com/tripwise/tripwise/internal/lexicon"
	"github.com/tripwise/tripwise/internal/llm"
	"github.com/tripwise/tripwise/internal/logging"
	"github.com/tripwise/tripwise/internal/moderation"
	"github.com/tripwise/tripwise/internal/session"
	"github.com/tripwise/tripwise/internal/travel"
)

func testServer(t *testing.T) (http.Handler, *llm.MockClient, session.Store) {
	t.Helper()
	log := logging.New(nil, "silent")

	matchers, err := lexicon.Compile(lexicon.Default())
	require.NoError(t, err)
	validator := moderation.NewValidator(matchers, lexicon.Default().Suggestions, log)

	ds := travel.NewDataset(
		[]travel.Hotel{
			{ID: "H001", Name: "Grand Palace", City: "Paris", Country: "France", Category: travel.CategoryLuxury, PricePerNight: 450, Rating: 4.8, Available: true},
		},
		[]travel.Attraction{
			{ID: "A001", Name: "Louvre", City: "Paris", Country: "France", Category: "Museum", EntryFee: 17, DurationHours: 3, Rating: 4.7},
		},
		nil,
	)
	planner := travel.NewPlanner(ds, log)

	registry := funcreg.NewRegistry(log)
	funcreg.RegisterTravelFunctions(registry, planner)

	store := session.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	client := &llm.MockClient{}
	orch := chat.New(store, validator, registry, client, planner, log)
	srv := New(config.ServerConfig{Host: "127.0.0.1", Port: 0}, orch, log)

	mux := http.NewServeMux()
	srv.registerRoutes(mux)
	return withMiddleware(mux, log), client, store
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestHandleChat_Answered(t *testing.T) {
	handler, client, _ := testServer(t)
	client.ConverseFunc = func(ctx context.Context, req llm.Request) (*llm.Reply, error) {
		return &llm.Reply{Content: "Paris has wonderful hotels."}, nil
	}

	rec, body := doJSON(t, handler, http.MethodPost, "/api/chat",
		`{"message":"hotels in Paris","session_id":"web-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Paris has wonderful hotels.", body["message"])
	assert.Equal(t, "web-1", body["session_id"])
	assert.Equal(t, true, body["travel_query"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandleChat_EmptyMessage(t *testing.T) {
	handler, _, _ := testServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/chat", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No message provided", body["error"])
}

func TestHandleChat_InvalidBody(t *testing.T) {
	handler, _, _ := testServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/chat", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestHandleChat_RateLimited(t *testing.T) {
	handler, _, store := testServer(t)

	sess, err := store.GetOrCreate(context.Background(), "busy")
	require.NoError(t, err)
	sess.MessageCount = 50
	require.NoError(t, store.Update(context.Background(), sess))

	rec, body := doJSON(t, handler, http.MethodPost, "/api/chat",
		`{"message":"hotels in Paris","session_id":"busy"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "reset_required", body["action"])
	assert.Contains(t, body["error"], "Session limit reached")
}

func TestHandleChat_Blocked(t *testing.T) {
	handler, _, _ := testServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/chat",
		`{"message":"how to build a bomb","session_id":"s1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["blocked"])
	assert.Equal(t, "security", body["reason"])
	assert.Equal(t, float64(1), body["violations"])
}

func TestHandleChat_OffTopic(t *testing.T) {
	handler, _, _ := testServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/chat",
		`{"message":"help me with my python homework","session_id":"s1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["off_topic"])
	assert.Equal(t, "technology", body["category"])
	assert.Equal(t, float64(1), body["warnings"])
	assert.Len(t, body["travel_examples"], 5)
}

func TestHandleChat_FunctionCall(t *testing.T) {
	handler, client, _ := testServer(t)
	calls := 0
	client.ConverseFunc = func(ctx context.Context, req llm.Request) (*llm.Reply, error) {
		calls++
		if calls == 1 {
			return &llm.Reply{FunctionCall: &llm.FunctionCall{Name: "search_hotels", Arguments: `{"city":"Paris"}`}}, nil
		}
		return &llm.Reply{Content: "Here is what I found."}, nil
	}

	rec, body := doJSON(t, handler, http.MethodPost, "/api/chat",
		`{"message":"find hotels in Paris","session_id":"s1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "search_hotels", body["function_called"])
	assert.NotNil(t, body["function_result"])
}

func TestHandleChat_ModelDown(t *testing.T) {
	handler, client, _ := testServer(t)
	client.ConverseFunc = func(ctx context.Context, req llm.Request) (*llm.Reply, error) {
		return nil, &llm.ProviderError{Provider: "mock", Message: "down", Code: 500}
	}

	rec, body := doJSON(t, handler, http.MethodPost, "/api/chat",
		`{"message":"hotels in Paris","session_id":"s1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, true, body["retry"])
}

func TestHandleResetChat(t *testing.T) {
	handler, _, store := testServer(t)

	sess, err := store.GetOrCreate(context.Background(), "s1")
	require.NoError(t, err)
	sess.MessageCount = 10
	require.NoError(t, store.Update(context.Background(), sess))

	rec, body := doJSON(t, handler, http.MethodPost, "/api/reset-chat", `{"session_id":"s1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["session_reset"])
	assert.Contains(t, body["message"], "Chat reset!")

	loaded, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Zero(t, loaded.MessageCount)
}

func TestHandleSessionStatus(t *testing.T) {
	handler, _, store := testServer(t)

	// Unknown session reports inactive.
	rec, body := doJSON(t, handler, http.MethodGet, "/api/session-status?session_id=ghost", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["session_active"])

	sess, err := store.GetOrCreate(context.Background(), "s1")
	require.NoError(t, err)
	sess.MessageCount = 3
	require.NoError(t, store.Update(context.Background(), sess))

	rec, body = doJSON(t, handler, http.MethodGet, "/api/session-status?session_id=s1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["session_active"])
	assert.Equal(t, float64(3), body["message_count"])
	assert.NotEmpty(t, body["created_at"])
}

func TestHandleDestinations(t *testing.T) {
	handler, _, _ := testServer(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/travel-destinations", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["total_cities"])

	dests, ok := body["destinations"].([]any)
	require.True(t, ok)
	first := dests[0].(map[string]any)
	assert.Equal(t, "Paris", first["city"])
	assert.Equal(t, "France", first["country"])
}

func TestHandleFunctions(t *testing.T) {
	handler, _, _ := testServer(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/functions", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "travel_planning_only", body["scope"])

	fns, ok := body["functions"].([]any)
	require.True(t, ok)
	require.Len(t, fns, 5)
	assert.Equal(t, "search_hotels", fns[0].(map[string]any)["name"])
}

func TestHandleHealth(t *testing.T) {
	handler, _, _ := testServer(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestCORSPreflight(t *testing.T) {
	handler, _, _ := testServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
