package travel

import (
	"fmt"
	"sort"
	"strings"
)

// maxHotelResults caps the result set, best rated first.
const maxHotelResults = 8

// HotelQuery are the search_hotels parameters.
type HotelQuery struct {
	City              string `json:"city"`
	BudgetMax         *int   `json:"budget_max,omitempty"`
	Category          string `json:"category,omitempty"`
	CheckAvailability *bool  `json:"check_availability,omitempty"` // defaults to true
}

// HotelStats aggregates the returned hotels.
type HotelStats struct {
	AveragePrice  int        `json:"average_price"`
	PriceRange    PriceRange `json:"price_range"`
	AverageRating float64    `json:"average_rating"`
}

// PriceRange is the min/max nightly price across results.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// HotelFilters echoes the filters applied to a search.
type HotelFilters struct {
	BudgetMax         *int   `json:"budget_max"`
	Category          string `json:"category,omitempty"`
	AvailabilityCheck bool   `json:"availability_check"`
}

// HotelsPayload is the success payload for search_hotels.
type HotelsPayload struct {
	City           string       `json:"city"`
	Country        string       `json:"country"`
	HotelsFound    int          `json:"hotels_found"`
	Hotels         []Hotel      `json:"hotels"`
	Statistics     HotelStats   `json:"statistics"`
	FiltersApplied HotelFilters `json:"filters_applied"`
}

// SearchHotels filters the hotel dataset by city, optional budget, category
// and availability, sorted by rating (desc) then price (asc).
func (p *Planner) SearchHotels(q HotelQuery) (payload *HotelsPayload, opErr *OpError) {
	defer p.recoverOp("search_hotels", &opErr)

	if strings.TrimSpace(q.City) == "" {
		return nil, invalidInput("City parameter is required and must be a valid string")
	}
	city := titleCase(q.City)

	if !p.ds.HasHotels() {
		return nil, datasetUnavailable("Hotel")
	}

	hotels := p.ds.HotelsIn(city)
	if len(hotels) == 0 {
		return nil, unknownCity(city, "hotels", p.ds.HotelCities())
	}
	// Work on a copy; the dataset itself is never reordered.
	hotels = append([]Hotel(nil), hotels...)

	if q.BudgetMax != nil {
		if *q.BudgetMax < 0 || *q.BudgetMax > 5000 {
			return nil, invalidInput("Budget must be a positive integer between 0 and 5000 USD")
		}
		hotels = filterHotels(hotels, func(h Hotel) bool { return h.PricePerNight <= *q.BudgetMax })
	}

	if q.Category != "" {
		category := strings.ToLower(q.Category)
		if !validHotelCategory(category) {
			return nil, invalidInput("Category must be one of: %s", strings.Join(HotelCategories, ", "))
		}
		hotels = filterHotels(hotels, func(h Hotel) bool { return h.Category == category })
	}

	checkAvailability := q.CheckAvailability == nil || *q.CheckAvailability
	if checkAvailability {
		hotels = filterHotels(hotels, func(h Hotel) bool { return h.Available })
	}

	if len(hotels) == 0 {
		return nil, &OpError{
			Code:       ErrNotFound,
			Message:    fmt.Sprintf("No hotels found matching your criteria in %s", city),
			Suggestion: "Try adjusting your budget or category preferences",
		}
	}

	sort.SliceStable(hotels, func(i, j int) bool {
		if hotels[i].Rating != hotels[j].Rating {
			return hotels[i].Rating > hotels[j].Rating
		}
		return hotels[i].PricePerNight < hotels[j].PricePerNight
	})
	if len(hotels) > maxHotelResults {
		hotels = hotels[:maxHotelResults]
	}

	return &HotelsPayload{
		City:        city,
		Country:     hotels[0].Country,
		HotelsFound: len(hotels),
		Hotels:      hotels,
		Statistics:  hotelStats(hotels),
		FiltersApplied: HotelFilters{
			BudgetMax:         q.BudgetMax,
			Category:          q.Category,
			AvailabilityCheck: checkAvailability,
		},
	}, nil
}

func validHotelCategory(category string) bool {
	for _, c := range HotelCategories {
		if c == category {
			return true
		}
	}
	return false
}

func filterHotels(hotels []Hotel, keep func(Hotel) bool) []Hotel {
	out := make([]Hotel, 0, len(hotels))
	for _, h := range hotels {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

func hotelStats(hotels []Hotel) HotelStats {
	min, max, priceSum := hotels[0].PricePerNight, hotels[0].PricePerNight, 0
	ratingSum := 0.0
	for _, h := range hotels {
		priceSum += h.PricePerNight
		ratingSum += h.Rating
		if h.PricePerNight < min {
			min = h.PricePerNight
		}
		if h.PricePerNight > max {
			max = h.PricePerNight
		}
	}
	return HotelStats{
		AveragePrice:  priceSum / len(hotels),
		PriceRange:    PriceRange{Min: min, Max: max},
		AverageRating: round1(ratingSum / float64(len(hotels))),
	}
}
