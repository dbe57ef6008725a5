package travel

import (
	"fmt"
	"strings"
)

// Budget model constants and fallback tables.
const (
	minBudgetDays = 1
	maxBudgetDays = 30

	// attractionsPerDayFactor approximates 2-3 attractions per day.
	attractionsPerDayFactor = 2.5

	// miscPercentage covers shopping, tips, and emergencies.
	miscPercentage = 0.15

	fallbackAttractionFee = 20.0
	fallbackMealDaily     = 50.0
)

// fallbackHotelPrices are the per-night base prices by category, used when
// live hotel data is unavailable.
var fallbackHotelPrices = map[string]float64{
	CategoryLuxury:   400,
	CategoryMidRange: 150,
	CategoryBudget:   60,
}

// cityPriceMultipliers adjust fallback hotel prices per city; unlisted
// cities use 1.0.
var cityPriceMultipliers = map[string]float64{
	"Paris": 1.3, "London": 1.4, "Tokyo": 1.2, "New York": 1.5, "Dubai": 1.1,
	"Barcelona": 0.9, "Rome": 1.0, "Bangkok": 0.6, "Sydney": 1.1, "Mumbai": 0.5,
}

// cityMealCosts are daily meal rates per city.
var cityMealCosts = map[string]float64{
	"Paris": 70, "London": 65, "Tokyo": 55, "New York": 80, "Dubai": 60,
	"Barcelona": 45, "Rome": 50, "Bangkok": 25, "Sydney": 60, "Mumbai": 20,
}

// highTransportCities pay the higher daily transport rate.
var highTransportCities = map[string]bool{
	"New York": true, "London": true, "Paris": true,
}

// BudgetQuery are the get_travel_budget_estimate parameters.
type BudgetQuery struct {
	City                  string `json:"city"`
	DurationDays          int    `json:"duration_days"`
	AccommodationCategory string `json:"accommodation_category,omitempty"` // defaults to mid-range
}

// BudgetLine is one category of the budget breakdown.
type BudgetLine struct {
	Total            float64 `json:"total"`
	Daily            float64 `json:"daily"`
	Category         string  `json:"category,omitempty"`
	AvgPerAttraction float64 `json:"avg_per_attraction,omitempty"`
	Percentage       float64 `json:"percentage"`
}

// BudgetBreakdown is the per-category budget decomposition.
type BudgetBreakdown struct {
	Accommodation  BudgetLine `json:"accommodation"`
	Attractions    BudgetLine `json:"attractions"`
	Meals          BudgetLine `json:"meals"`
	Transportation BudgetLine `json:"transportation"`
	Miscellaneous  BudgetLine `json:"miscellaneous"`
	Total          float64    `json:"total"`
}

// BudgetPayload is the success payload for get_travel_budget_estimate.
type BudgetPayload struct {
	City                  string             `json:"city"`
	DurationDays          int                `json:"duration_days"`
	AccommodationCategory string             `json:"accommodation_category"`
	BudgetBreakdown       BudgetBreakdown    `json:"budget_breakdown"`
	DailyAverage          float64            `json:"daily_average"`
	CategoryComparisons   map[string]float64 `json:"category_comparisons"`
	BudgetTips            []string           `json:"budget_tips"`
	Currency              string             `json:"currency"`
}

// BudgetEstimate computes a full trip budget. Hotel and attraction costs come
// from the live datasets when possible, falling back to fixed tables.
func (p *Planner) BudgetEstimate(q BudgetQuery) (payload *BudgetPayload, opErr *OpError) {
	defer p.recoverOp("get_travel_budget_estimate", &opErr)

	if strings.TrimSpace(q.City) == "" {
		return nil, invalidInput("City parameter is required")
	}
	if q.DurationDays < minBudgetDays || q.DurationDays > maxBudgetDays {
		return nil, invalidInput("Duration must be between %d and %d days", minBudgetDays, maxBudgetDays)
	}
	city := titleCase(q.City)

	category := q.AccommodationCategory
	if category == "" {
		category = CategoryMidRange
	}
	if !validHotelCategory(category) {
		return nil, invalidInput("Accommodation category must be one of: %s", strings.Join(HotelCategories, ", "))
	}

	days := float64(q.DurationDays)

	// Hotel price: live average when available, fallback table otherwise.
	hotelPrice := p.averageHotelPrice(city, category)

	// Attraction cost: mean fee over the first 3*days attractions.
	attractionCost := p.averageAttractionFee(city, q.DurationDays)

	accommodationTotal := hotelPrice * days
	attractionsTotal := attractionCost * days * attractionsPerDayFactor

	mealsDaily, ok := cityMealCosts[city]
	if !ok {
		mealsDaily = fallbackMealDaily
	}
	mealsTotal := mealsDaily * days

	transportDaily := 20.0
	if highTransportCities[city] {
		transportDaily = 30.0
	}
	transportTotal := transportDaily * days

	subtotal := accommodationTotal + attractionsTotal + mealsTotal + transportTotal
	miscTotal := subtotal * miscPercentage
	total := subtotal + miscTotal

	pct := func(part float64) float64 { return round1(part / total * 100) }

	breakdown := BudgetBreakdown{
		Accommodation: BudgetLine{
			Total:      round2(accommodationTotal),
			Daily:      round2(accommodationTotal / days),
			Category:   category,
			Percentage: pct(accommodationTotal),
		},
		Attractions: BudgetLine{
			Total:            round2(attractionsTotal),
			Daily:            round2(attractionsTotal / days),
			AvgPerAttraction: round2(attractionCost),
			Percentage:       pct(attractionsTotal),
		},
		Meals: BudgetLine{
			Total:      round2(mealsTotal),
			Daily:      round2(mealsDaily),
			Percentage: pct(mealsTotal),
		},
		Transportation: BudgetLine{
			Total:      round2(transportTotal),
			Daily:      round2(transportDaily),
			Percentage: pct(transportTotal),
		},
		Miscellaneous: BudgetLine{
			Total:      round2(miscTotal),
			Daily:      round2(miscTotal / days),
			Percentage: pct(miscTotal),
		},
		Total: round2(total),
	}

	return &BudgetPayload{
		City:                  city,
		DurationDays:          q.DurationDays,
		AccommodationCategory: category,
		BudgetBreakdown:       breakdown,
		DailyAverage:          round2(total / days),
		CategoryComparisons: map[string]float64{
			CategoryBudget:   round2(total * 0.7),
			CategoryMidRange: round2(total),
			CategoryLuxury:   round2(total * 1.5),
		},
		BudgetTips: budgetTips(breakdown, attractionsTotal, mealsTotal),
		Currency:   "USD",
	}, nil
}

// averageHotelPrice prefers the live average from a hotel search; if the
// search yields nothing it falls back to base prices scaled per city.
func (p *Planner) averageHotelPrice(city, category string) float64 {
	result, opErr := p.SearchHotels(HotelQuery{City: city, Category: category})
	if opErr == nil && len(result.Hotels) > 0 {
		return float64(result.Statistics.AveragePrice)
	}

	multiplier, ok := cityPriceMultipliers[city]
	if !ok {
		multiplier = 1.0
	}
	return float64(int(fallbackHotelPrices[category] * multiplier))
}

// averageAttractionFee is the mean entry fee over the first 3*days
// attractions, or a flat fallback when no data is available.
func (p *Planner) averageAttractionFee(city string, durationDays int) float64 {
	result, opErr := p.GetAttractions(AttractionQuery{City: city})
	if opErr != nil || len(result.Attractions) == 0 {
		return fallbackAttractionFee
	}

	attractions := result.Attractions
	if limit := durationDays * 3; len(attractions) > limit {
		attractions = attractions[:limit]
	}
	sum := 0
	for _, a := range attractions {
		sum += a.EntryFee
	}
	return float64(sum) / float64(len(attractions))
}

func budgetTips(b BudgetBreakdown, attractionsTotal, mealsTotal float64) []string {
	return []string{
		fmt.Sprintf("Accommodation represents %.1f%% of your budget", b.Accommodation.Percentage),
		"Consider visiting during off-peak season for 20-30% savings",
		fmt.Sprintf("Free attractions can reduce costs by $%.2f", round2(attractionsTotal*0.3)),
		fmt.Sprintf("Street food and local eateries can save $%.2f", round2(mealsTotal*0.4)),
	}
}
