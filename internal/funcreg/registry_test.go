package funcreg

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/tripwise/internal/logging"
	"github.com/tripwise/tripwise/internal/travel"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	log := logging.New(nil, "silent")

	hotels := []travel.Hotel{
		{ID: "H001", Name: "Grand Palace", City: "Paris", Country: "France", Category: travel.CategoryLuxury, PricePerNight: 500, Rating: 4.8, Available: true},
		{ID: "H002", Name: "Le Marais Inn", City: "Paris", Country: "France", Category: travel.CategoryMidRange, PricePerNight: 170, Rating: 4.3, Available: true},
	}
	var attractions []travel.Attraction
	for i := 0; i < 8; i++ {
		attractions = append(attractions, travel.Attraction{
			ID:       fmt.Sprintf("A%03d", i+1),
			Name:     fmt.Sprintf("Spot %d", i+1),
			City:     "Paris",
			Country:  "France",
			Category: []string{"Museum", "Landmark"}[i%2],
			EntryFee: 10,
			Rating:   4.2,
		})
	}
	planner := travel.NewPlanner(travel.NewDataset(hotels, attractions, nil), log)

	r := NewRegistry(log)
	RegisterTravelFunctions(r, planner)
	return r
}

func TestRegistry_RegistersAllTravelFunctions(t *testing.T) {
	r := testRegistry(t)

	want := []string{
		"search_hotels",
		"get_attractions",
		"create_itinerary",
		"get_travel_budget_estimate",
		"check_weather_recommendation",
	}
	assert.Equal(t, want, r.Names())

	for _, name := range want {
		f, ok := r.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, name, f.Name())
		assert.NotEmpty(t, f.Description())
	}
}

func TestRegistry_DefinitionsMatchRegistrationOrder(t *testing.T) {
	r := testRegistry(t)

	defs := r.Definitions()
	require.Len(t, defs, 5)
	assert.Equal(t, "search_hotels", defs[0].Name)
	assert.Equal(t, "check_weather_recommendation", defs[4].Name)

	// Parameters must be valid JSON Schema documents.
	for _, def := range defs {
		var schema map[string]any
		require.NoError(t, json.Unmarshal(def.Parameters, &schema), def.Name)
		assert.Equal(t, "object", schema["type"], def.Name)
		assert.Contains(t, schema, "properties", def.Name)
	}
}

func TestDispatch_UnknownFunction(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Dispatch(context.Background(), "launch_rockets", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestDispatch_SearchHotels(t *testing.T) {
	r := testRegistry(t)

	result, err := r.Dispatch(context.Background(), "search_hotels", json.RawMessage(`{"city":"paris","category":"luxury"}`))
	require.NoError(t, err)

	var payload travel.HotelsPayload
	require.NoError(t, json.Unmarshal(result, &payload))
	assert.Equal(t, "Paris", payload.City)
	require.Len(t, payload.Hotels, 1)
	assert.Equal(t, "H001", payload.Hotels[0].ID)
}

func TestDispatch_OperationErrorIsPayload(t *testing.T) {
	r := testRegistry(t)

	// A domain failure is a JSON error payload, not a dispatch error; the
	// model reads it and can react.
	result, err := r.Dispatch(context.Background(), "search_hotels", json.RawMessage(`{"city":"Atlantis"}`))
	require.NoError(t, err)

	var opErr travel.OpError
	require.NoError(t, json.Unmarshal(result, &opErr))
	assert.Equal(t, travel.ErrNotFound, opErr.Code)
	assert.Contains(t, opErr.AvailableCities, "Paris")
}

func TestDispatch_MalformedArguments(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Dispatch(context.Background(), "search_hotels", json.RawMessage(`{"city":42}`))
	assert.Error(t, err)
}

func TestDispatch_EmptyArguments(t *testing.T) {
	r := testRegistry(t)

	// Missing arguments decode to a zero query; the operation reports the
	// missing city as a structured error payload.
	result, err := r.Dispatch(context.Background(), "search_hotels", nil)
	require.NoError(t, err)

	var opErr travel.OpError
	require.NoError(t, json.Unmarshal(result, &opErr))
	assert.Equal(t, travel.ErrInvalidInput, opErr.Code)
}

func TestDispatch_Weather(t *testing.T) {
	r := testRegistry(t)

	result, err := r.Dispatch(context.Background(), "check_weather_recommendation", json.RawMessage(`{"city":"Bangkok","travel_month":"July"}`))
	require.NoError(t, err)

	var payload travel.WeatherPayload
	require.NoError(t, json.Unmarshal(result, &payload))
	assert.Equal(t, travel.WeatherNotRecommended, payload.RecommendationLevel)
}
