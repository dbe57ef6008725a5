package travel

import (
	"fmt"
	"sort"
	"strings"
)

// maxAttractionResults caps the result set, best rated first.
const maxAttractionResults = 12

// AttractionQuery are the get_attractions parameters.
type AttractionQuery struct {
	City        string `json:"city"`
	Category    string `json:"category,omitempty"`
	MaxEntryFee *int   `json:"max_entry_fee,omitempty"`
}

// CategorySummary aggregates one attraction category in the results.
type CategorySummary struct {
	Count         int     `json:"count"`
	AverageFee    float64 `json:"average_fee"`
	AverageRating float64 `json:"average_rating"`
}

// AttractionStats aggregates the returned attractions.
type AttractionStats struct {
	AverageEntryFee int     `json:"average_entry_fee"`
	FreeAttractions int     `json:"free_attractions"`
	AverageDuration float64 `json:"average_duration"`
	AverageRating   float64 `json:"average_rating"`
}

// AttractionFilters echoes the filters applied to a query.
type AttractionFilters struct {
	Category    string `json:"category,omitempty"`
	MaxEntryFee *int   `json:"max_entry_fee"`
}

// AttractionsPayload is the success payload for get_attractions.
type AttractionsPayload struct {
	City              string                     `json:"city"`
	Country           string                     `json:"country"`
	AttractionsFound  int                        `json:"attractions_found"`
	Attractions       []Attraction               `json:"attractions"`
	CategoriesSummary map[string]CategorySummary `json:"categories_summary"`
	Statistics        AttractionStats            `json:"statistics"`
	FiltersApplied    AttractionFilters          `json:"filters_applied"`
}

// GetAttractions filters the attraction dataset by city, optional category
// and entry fee cap, sorted by rating (desc) then fee (asc).
func (p *Planner) GetAttractions(q AttractionQuery) (payload *AttractionsPayload, opErr *OpError) {
	defer p.recoverOp("get_attractions", &opErr)

	if strings.TrimSpace(q.City) == "" {
		return nil, invalidInput("City parameter is required and must be a valid string")
	}
	city := titleCase(q.City)

	if !p.ds.HasAttractions() {
		return nil, datasetUnavailable("Attractions")
	}

	attractions := p.ds.AttractionsIn(city)
	if len(attractions) == 0 {
		return nil, unknownCity(city, "attractions", p.ds.AttractionCities())
	}
	attractions = append([]Attraction(nil), attractions...)

	if q.Category != "" {
		valid := p.ds.AttractionCategories()
		if !containsString(valid, q.Category) {
			return nil, &OpError{
				Code:                ErrInvalidInput,
				Message:             fmt.Sprintf("Invalid category %q", q.Category),
				AvailableCategories: valid,
			}
		}
		attractions = filterAttractions(attractions, func(a Attraction) bool { return a.Category == q.Category })
	}

	if q.MaxEntryFee != nil {
		if *q.MaxEntryFee < 0 {
			return nil, invalidInput("Maximum entry fee must be a non-negative integer")
		}
		attractions = filterAttractions(attractions, func(a Attraction) bool { return a.EntryFee <= *q.MaxEntryFee })
	}

	if len(attractions) == 0 {
		return nil, &OpError{
			Code:       ErrNotFound,
			Message:    fmt.Sprintf("No attractions found matching your criteria in %s", city),
			Suggestion: "Try adjusting your category or budget filters",
		}
	}

	sort.SliceStable(attractions, func(i, j int) bool {
		if attractions[i].Rating != attractions[j].Rating {
			return attractions[i].Rating > attractions[j].Rating
		}
		return attractions[i].EntryFee < attractions[j].EntryFee
	})
	if len(attractions) > maxAttractionResults {
		attractions = attractions[:maxAttractionResults]
	}

	return &AttractionsPayload{
		City:              city,
		Country:           attractions[0].Country,
		AttractionsFound:  len(attractions),
		Attractions:       attractions,
		CategoriesSummary: summariseCategories(attractions),
		Statistics:        attractionStats(attractions),
		FiltersApplied: AttractionFilters{
			Category:    q.Category,
			MaxEntryFee: q.MaxEntryFee,
		},
	}, nil
}

func containsString(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}

func filterAttractions(attractions []Attraction, keep func(Attraction) bool) []Attraction {
	out := make([]Attraction, 0, len(attractions))
	for _, a := range attractions {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func summariseCategories(attractions []Attraction) map[string]CategorySummary {
	type agg struct {
		count  int
		fee    int
		rating float64
	}
	byCat := make(map[string]*agg)
	for _, a := range attractions {
		c, ok := byCat[a.Category]
		if !ok {
			c = &agg{}
			byCat[a.Category] = c
		}
		c.count++
		c.fee += a.EntryFee
		c.rating += a.Rating
	}

	out := make(map[string]CategorySummary, len(byCat))
	for cat, c := range byCat {
		out[cat] = CategorySummary{
			Count:         c.count,
			AverageFee:    round1(float64(c.fee) / float64(c.count)),
			AverageRating: round1(c.rating / float64(c.count)),
		}
	}
	return out
}

func attractionStats(attractions []Attraction) AttractionStats {
	feeSum, free := 0, 0
	durationSum, ratingSum := 0.0, 0.0
	for _, a := range attractions {
		feeSum += a.EntryFee
		if a.EntryFee == 0 {
			free++
		}
		durationSum += a.DurationHours
		ratingSum += a.Rating
	}
	n := float64(len(attractions))
	return AttractionStats{
		AverageEntryFee: feeSum / len(attractions),
		FreeAttractions: free,
		AverageDuration: round1(durationSum / n),
		AverageRating:   round1(ratingSum / n),
	}
}
