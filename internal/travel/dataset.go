// Package travel holds the destination datasets and the bounded set of
// read-only query operations over them.
package travel

import (
	"sort"
	"strings"
)

// Hotel categories.
const (
	CategoryLuxury   = "luxury"
	CategoryMidRange = "mid-range"
	CategoryBudget   = "budget"
)

// HotelCategories lists the valid accommodation tiers.
var HotelCategories = []string{CategoryLuxury, CategoryMidRange, CategoryBudget}

// Hotel is one accommodation record.
type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Category      string   `json:"category"`
	PricePerNight int      `json:"price_per_night"`
	Rating        float64  `json:"rating"`
	Amenities     []string `json:"amenities"`
	Address       string   `json:"address"`
	Available     bool     `json:"available"`
}

// Attraction is one point-of-interest record.
type Attraction struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Category      string  `json:"category"`
	EntryFee      int     `json:"entry_fee"`
	DurationHours float64 `json:"duration_hours"`
	Rating        float64 `json:"rating"`
	Description   string  `json:"description"`
	OpeningHours  string  `json:"opening_hours"`
}

// TemplateDay is one day of a curated itinerary template.
type TemplateDay struct {
	Day           int      `json:"day"`
	Title         string   `json:"title"`
	Activities    []string `json:"activities"`
	EstimatedCost float64  `json:"estimated_cost"`
}

// Templates maps city -> duration key (e.g. "3_days") -> day plans.
type Templates map[string]map[string][]TemplateDay

// Dataset is the immutable destination data, loaded once at startup.
// All query operations treat it as a pure lookup table.
type Dataset struct {
	hotels      []Hotel
	attractions []Attraction
	templates   Templates

	hotelsByCity      map[string][]Hotel
	attractionsByCity map[string][]Attraction
}

// NewDataset builds the lookup indexes over the given records.
func NewDataset(hotels []Hotel, attractions []Attraction, templates Templates) *Dataset {
	ds := &Dataset{
		hotels:            hotels,
		attractions:       attractions,
		templates:         templates,
		hotelsByCity:      make(map[string][]Hotel),
		attractionsByCity: make(map[string][]Attraction),
	}
	for _, h := range hotels {
		k := strings.ToLower(h.City)
		ds.hotelsByCity[k] = append(ds.hotelsByCity[k], h)
	}
	for _, a := range attractions {
		k := strings.ToLower(a.City)
		ds.attractionsByCity[k] = append(ds.attractionsByCity[k], a)
	}
	return ds
}

// Empty returns a dataset with no records; every query degrades to a
// dataset-unavailable error.
func Empty() *Dataset {
	return NewDataset(nil, nil, nil)
}

// HasHotels reports whether any hotel data is loaded.
func (ds *Dataset) HasHotels() bool { return len(ds.hotels) > 0 }

// HasAttractions reports whether any attraction data is loaded.
func (ds *Dataset) HasAttractions() bool { return len(ds.attractions) > 0 }

// HotelsIn returns the hotels for a city (case-insensitive match).
func (ds *Dataset) HotelsIn(city string) []Hotel {
	return ds.hotelsByCity[strings.ToLower(city)]
}

// AttractionsIn returns the attractions for a city (case-insensitive match).
func (ds *Dataset) AttractionsIn(city string) []Attraction {
	return ds.attractionsByCity[strings.ToLower(city)]
}

// HotelCities returns the sorted list of cities with hotel data.
func (ds *Dataset) HotelCities() []string {
	return cityNames(ds.hotelsByCity, func(hs []Hotel) string { return hs[0].City })
}

// AttractionCities returns the sorted list of cities with attraction data.
func (ds *Dataset) AttractionCities() []string {
	return cityNames(ds.attractionsByCity, func(as []Attraction) string { return as[0].City })
}

// AttractionCategories returns the sorted set of categories present in the
// attraction data.
func (ds *Dataset) AttractionCategories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, a := range ds.attractions {
		if !seen[a.Category] {
			seen[a.Category] = true
			cats = append(cats, a.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// Template returns the curated itinerary for a city/duration pair, if any.
func (ds *Dataset) Template(city string, durationDays int) ([]TemplateDay, bool) {
	byDuration, ok := ds.templates[titleCase(city)]
	if !ok {
		return nil, false
	}
	days, ok := byDuration[durationKey(durationDays)]
	return days, ok
}

// Destination summarises available data for one city.
type Destination struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	Hotels      int    `json:"hotels_available"`
	Attractions int    `json:"attractions_available"`
}

// Destinations lists every city with hotel data plus its record counts.
func (ds *Dataset) Destinations() []Destination {
	var out []Destination
	for _, city := range ds.HotelCities() {
		hotels := ds.HotelsIn(city)
		out = append(out, Destination{
			City:        city,
			Country:     hotels[0].Country,
			Hotels:      len(hotels),
			Attractions: len(ds.AttractionsIn(city)),
		})
	}
	return out
}

func cityNames[T any](byCity map[string][]T, display func([]T) string) []string {
	names := make([]string, 0, len(byCity))
	for _, recs := range byCity {
		names = append(names, display(recs))
	}
	sort.Strings(names)
	return names
}
