package funcreg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tripwise/tripwise/internal/travel"
)

// RegisterTravelFunctions wires the travel planner's query operations into
// the registry.
func RegisterTravelFunctions(r *Registry, p *travel.Planner) {
	r.Register(&hotelSearchFunc{p: p})
	r.Register(&attractionsFunc{p: p})
	r.Register(&itineraryFunc{p: p})
	r.Register(&budgetFunc{p: p})
	r.Register(&weatherFunc{p: p})
}

// marshalResult encodes either the success payload or the structured error
// payload. Both sides are plain structs, so marshal cannot realistically
// fail; a failure is reported as an invocation error.
func marshalResult(payload any, opErr *travel.OpError) (json.RawMessage, error) {
	if opErr != nil {
		return json.Marshal(opErr)
	}
	return json.Marshal(payload)
}

func decodeArgs(name string, args json.RawMessage, dst any) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("decode %s arguments: %w", name, err)
	}
	return nil
}

type hotelSearchFunc struct {
	p *travel.Planner
}

func (f *hotelSearchFunc) Name() string { return "search_hotels" }

func (f *hotelSearchFunc) Description() string {
	return "Search for hotels and accommodations in travel destinations with advanced filtering options"
}

func (f *hotelSearchFunc) Schema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"city": {
				Type:        "string",
				Description: "The destination city for hotel search (e.g., Paris, Tokyo, New York)",
			},
			"budget_max": {
				Type:        "integer",
				Description: "Maximum budget per night in USD (0-5000)",
			},
			"category": {
				Type:        "string",
				Description: "Hotel category preference",
				Enum:        []string{"luxury", "mid-range", "budget"},
			},
			"check_availability": {
				Type:        "boolean",
				Description: "Whether to check current hotel availability",
			},
		},
		Required: []string{"city"},
	}
}

func (f *hotelSearchFunc) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	var q travel.HotelQuery
	if err := decodeArgs(f.Name(), args, &q); err != nil {
		return nil, err
	}
	payload, opErr := f.p.SearchHotels(q)
	return marshalResult(payload, opErr)
}

type attractionsFunc struct {
	p *travel.Planner
}

func (f *attractionsFunc) Name() string { return "get_attractions" }

func (f *attractionsFunc) Description() string {
	return "Find tourist attractions and points of interest for travel destinations"
}

func (f *attractionsFunc) Schema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"city": {
				Type:        "string",
				Description: "The travel destination city for attractions search",
			},
			"category": {
				Type:        "string",
				Description: "Category of attractions to explore",
				Enum: []string{
					"Historical", "Museum", "Religious", "Landmark", "Shopping",
					"Cultural", "Entertainment", "Nature", "Architecture", "Market",
				},
			},
			"max_entry_fee": {
				Type:        "integer",
				Description: "Maximum entry fee budget for attractions in USD",
			},
		},
		Required: []string{"city"},
	}
}

func (f *attractionsFunc) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	var q travel.AttractionQuery
	if err := decodeArgs(f.Name(), args, &q); err != nil {
		return nil, err
	}
	payload, opErr := f.p.GetAttractions(q)
	return marshalResult(payload, opErr)
}

type itineraryFunc struct {
	p *travel.Planner
}

func (f *itineraryFunc) Name() string { return "create_itinerary" }

func (f *itineraryFunc) Description() string {
	return "Create detailed travel itineraries for specific destinations and durations"
}

func (f *itineraryFunc) Schema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"city": {
				Type:        "string",
				Description: "The travel destination city for itinerary planning",
			},
			"duration_days": {
				Type:        "integer",
				Description: "Number of days for the travel itinerary (1-14)",
			},
			"interests": {
				Type:        "string",
				Description: "Travel interests and preferences (e.g., history, culture, food, adventure)",
			},
		},
		Required: []string{"city", "duration_days"},
	}
}

func (f *itineraryFunc) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	var q travel.ItineraryQuery
	if err := decodeArgs(f.Name(), args, &q); err != nil {
		return nil, err
	}
	payload, opErr := f.p.CreateItinerary(q)
	return marshalResult(payload, opErr)
}

type budgetFunc struct {
	p *travel.Planner
}

func (f *budgetFunc) Name() string { return "get_travel_budget_estimate" }

func (f *budgetFunc) Description() string {
	return "Calculate comprehensive travel budget estimates for trips"
}

func (f *budgetFunc) Schema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"city": {
				Type:        "string",
				Description: "Travel destination city for budget calculation",
			},
			"duration_days": {
				Type:        "integer",
				Description: "Trip duration in days for budget planning (1-30)",
			},
			"accommodation_category": {
				Type:        "string",
				Description: "Accommodation preference for budget calculation",
				Enum:        []string{"luxury", "mid-range", "budget"},
			},
		},
		Required: []string{"city", "duration_days"},
	}
}

func (f *budgetFunc) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	var q travel.BudgetQuery
	if err := decodeArgs(f.Name(), args, &q); err != nil {
		return nil, err
	}
	payload, opErr := f.p.BudgetEstimate(q)
	return marshalResult(payload, opErr)
}

type weatherFunc struct {
	p *travel.Planner
}

func (f *weatherFunc) Name() string { return "check_weather_recommendation" }

func (f *weatherFunc) Description() string {
	return "Get weather-based travel timing recommendations for destinations"
}

func (f *weatherFunc) Schema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"city": {
				Type:        "string",
				Description: "Travel destination city for weather advice",
			},
			"travel_month": {
				Type:        "string",
				Description: "Month of planned travel for weather recommendations",
				Enum: []string{
					"January", "February", "March", "April", "May", "June", "July",
					"August", "September", "October", "November", "December",
				},
			},
		},
		Required: []string{"city", "travel_month"},
	}
}

func (f *weatherFunc) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	var q travel.WeatherQuery
	if err := decodeArgs(f.Name(), args, &q); err != nil {
		return nil, err
	}
	payload, opErr := f.p.WeatherRecommendation(q)
	return marshalResult(payload, opErr)
}
