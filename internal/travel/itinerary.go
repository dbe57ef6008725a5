package travel

import "fmt"

// Itinerary generation bounds and costs.
const (
	minItineraryDays = 1
	maxItineraryDays = 14

	// dayBaseCost covers meals and local transport per day.
	dayBaseCost = 50.0
)

// Itinerary types.
const (
	ItineraryCurated   = "curated_template"
	ItineraryGenerated = "custom_generated"
)

// ItineraryQuery are the create_itinerary parameters.
type ItineraryQuery struct {
	City         string `json:"city"`
	DurationDays int    `json:"duration_days"`
	Interests    string `json:"interests,omitempty"`
}

// DayPlan is one generated day of an itinerary.
type DayPlan struct {
	Day               int          `json:"day"`
	Title             string       `json:"title"`
	Activities        []string     `json:"activities"`
	AttractionDetails []Attraction `json:"attraction_details"`
	Meals             []string     `json:"meals"`
	EstimatedCost     float64      `json:"estimated_cost"`
	TotalDuration     float64      `json:"total_duration"`
	Transportation    string       `json:"transportation"`
}

// Customization echoes generation inputs and achieved variety.
type Customization struct {
	Interests       string `json:"interests,omitempty"`
	VarietyAchieved int    `json:"variety_achieved"`
}

// ItineraryPayload is the success payload for create_itinerary.
// For curated templates TemplateDays is set; for generated itineraries Days.
type ItineraryPayload struct {
	City                string        `json:"city"`
	DurationDays        int           `json:"duration_days"`
	ItineraryType       string        `json:"itinerary_type"`
	TemplateDays        []TemplateDay `json:"itinerary,omitempty"`
	Days                []DayPlan     `json:"generated_itinerary,omitempty"`
	TotalEstimatedCost  float64       `json:"total_estimated_cost"`
	DailyAverageCost    float64       `json:"daily_average_cost"`
	AttractionsIncluded int           `json:"attractions_included,omitempty"`
	Customization       *Customization `json:"customization,omitempty"`
	Notes               string        `json:"notes"`
}

// CreateItinerary returns a curated template when one exists for the
// city/duration pair, otherwise synthesizes a day-by-day plan from the
// attraction data, maximizing category diversity per day and never assigning
// the same attraction twice.
func (p *Planner) CreateItinerary(q ItineraryQuery) (payload *ItineraryPayload, opErr *OpError) {
	defer p.recoverOp("create_itinerary", &opErr)

	if q.City == "" {
		return nil, invalidInput("City parameter is required and must be a valid string")
	}
	if q.DurationDays < minItineraryDays || q.DurationDays > maxItineraryDays {
		return nil, invalidInput("Duration must be between %d and %d days", minItineraryDays, maxItineraryDays)
	}
	city := titleCase(q.City)

	// Curated templates take precedence over generation.
	if days, ok := p.ds.Template(city, q.DurationDays); ok {
		total := 0.0
		for _, d := range days {
			total += d.EstimatedCost
		}
		return &ItineraryPayload{
			City:               city,
			DurationDays:       q.DurationDays,
			ItineraryType:      ItineraryCurated,
			TemplateDays:       days,
			TotalEstimatedCost: total,
			DailyAverageCost:   round2(total / float64(q.DurationDays)),
			Notes:              "This is a curated itinerary template based on popular attractions and activities.",
		}, nil
	}

	attractionsResult, aErr := p.GetAttractions(AttractionQuery{City: city})
	if aErr != nil {
		return nil, aErr
	}
	attractions := attractionsResult.Attractions

	if len(attractions) < q.DurationDays*2 {
		return nil, &OpError{
			Code:       ErrNotFound,
			Message:    fmt.Sprintf("Insufficient attraction data for %d days in %s", q.DurationDays, city),
			Suggestion: "Try a shorter duration or a different destination",
		}
	}

	days, used := buildDays(city, q.DurationDays, attractions)

	total := 0.0
	for _, d := range days {
		total += d.EstimatedCost
	}

	return &ItineraryPayload{
		City:                city,
		DurationDays:        q.DurationDays,
		ItineraryType:       ItineraryGenerated,
		Days:                days,
		TotalEstimatedCost:  total,
		DailyAverageCost:    round2(total / float64(q.DurationDays)),
		AttractionsIncluded: used,
		Customization: &Customization{
			Interests:       q.Interests,
			VarietyAchieved: countCategories(attractions),
		},
		Notes: "This is a custom itinerary generated from available attractions data.",
	}, nil
}

// buildDays distributes attractions across days. Each day takes at most one
// attraction per category first (round-robin for diversity), then fills
// remaining slots from the unused pool. A global used set guarantees no
// attraction repeats across the itinerary.
func buildDays(city string, durationDays int, attractions []Attraction) ([]DayPlan, int) {
	perDay := len(attractions) / durationDays
	if perDay < 2 {
		perDay = 2
	}

	// Categories in order of first appearance.
	var categories []string
	byCategory := make(map[string][]Attraction)
	for _, a := range attractions {
		if _, ok := byCategory[a.Category]; !ok {
			categories = append(categories, a.Category)
		}
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}

	used := make(map[string]bool)
	days := make([]DayPlan, 0, durationDays)

	for day := 1; day <= durationDays; day++ {
		var picked []Attraction
		cost := dayBaseCost

		for _, cat := range categories {
			if len(picked) >= perDay {
				break
			}
			for _, a := range byCategory[cat] {
				if !used[a.ID] {
					picked = append(picked, a)
					used[a.ID] = true
					cost += float64(a.EntryFee)
					break
				}
			}
		}

		for len(picked) < perDay {
			var next *Attraction
			for i := range attractions {
				if !used[attractions[i].ID] {
					next = &attractions[i]
					break
				}
			}
			if next == nil {
				break
			}
			picked = append(picked, *next)
			used[next.ID] = true
			cost += float64(next.EntryFee)
		}

		activities := make([]string, 0, len(picked))
		duration := 0.0
		for _, a := range picked {
			activities = append(activities, a.Name)
			duration += a.DurationHours
		}

		days = append(days, DayPlan{
			Day:               day,
			Title:             fmt.Sprintf("Day %d - %s Exploration", day, city),
			Activities:        activities,
			AttractionDetails: picked,
			Meals:             []string{"Local breakfast", "Regional lunch", "Traditional dinner"},
			EstimatedCost:     cost,
			TotalDuration:     duration,
			Transportation:    "Public transport + Walking",
		})
	}

	return days, len(used)
}

func countCategories(attractions []Attraction) int {
	seen := make(map[string]bool)
	for _, a := range attractions {
		seen[a.Category] = true
	}
	return len(seen)
}
