package travel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/tripwise/internal/logging"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// testDataset builds a small fixture: Paris with hotels across all
// categories and a diverse attraction set, London with hotels only.
func testDataset() *Dataset {
	hotels := []Hotel{
		{ID: "H001", Name: "Grand Palace", City: "Paris", Country: "France", Category: CategoryLuxury, PricePerNight: 550, Rating: 4.9, Available: true},
		{ID: "H002", Name: "Hotel Lumiere", City: "Paris", Country: "France", Category: CategoryLuxury, PricePerNight: 450, Rating: 4.7, Available: true},
		{ID: "H003", Name: "Le Marais Inn", City: "Paris", Country: "France", Category: CategoryMidRange, PricePerNight: 180, Rating: 4.4, Available: true},
		{ID: "H004", Name: "Seine View", City: "Paris", Country: "France", Category: CategoryMidRange, PricePerNight: 150, Rating: 4.4, Available: false},
		{ID: "H005", Name: "Budget Bastille", City: "Paris", Country: "France", Category: CategoryBudget, PricePerNight: 70, Rating: 3.9, Available: true},
		{ID: "H006", Name: "Thames Lodge", City: "London", Country: "UK", Category: CategoryMidRange, PricePerNight: 160, Rating: 4.2, Available: true},
	}

	var attractions []Attraction
	categories := []string{"Museum", "Landmark", "Historical", "Cultural"}
	for i := 0; i < 12; i++ {
		attractions = append(attractions, Attraction{
			ID:            fmt.Sprintf("A%03d", i+1),
			Name:          fmt.Sprintf("Paris Spot %d", i+1),
			City:          "Paris",
			Country:       "France",
			Category:      categories[i%len(categories)],
			EntryFee:      (i % 3) * 10,
			DurationHours: 2,
			Rating:        4.0 + float64(i%10)/10,
		})
	}

	templates := Templates{
		"Rome": {
			"3_days": {
				{Day: 1, Title: "Ancient Rome", Activities: []string{"Colosseum", "Forum"}, EstimatedCost: 90},
				{Day: 2, Title: "Vatican", Activities: []string{"Museums", "St Peter's"}, EstimatedCost: 110},
				{Day: 3, Title: "Baroque Rome", Activities: []string{"Trevi", "Pantheon"}, EstimatedCost: 70},
			},
		},
	}

	return NewDataset(hotels, attractions, templates)
}

func testPlanner() *Planner {
	return NewPlanner(testDataset(), logging.New(nil, "silent"))
}

// --- SearchHotels ---

func TestSearchHotels_RequiresCity(t *testing.T) {
	p := testPlanner()

	_, opErr := p.SearchHotels(HotelQuery{})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrInvalidInput, opErr.Code)
}

func TestSearchHotels_UnknownCityListsAlternatives(t *testing.T) {
	p := testPlanner()

	_, opErr := p.SearchHotels(HotelQuery{City: "Atlantis"})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrNotFound, opErr.Code)
	assert.Contains(t, opErr.AvailableCities, "Paris")
	assert.Contains(t, opErr.AvailableCities, "London")
}

func TestSearchHotels_SortedByRatingThenPrice(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.SearchHotels(HotelQuery{City: "paris", CheckAvailability: boolPtr(false)})
	require.Nil(t, opErr)
	require.NotEmpty(t, payload.Hotels)

	for i := 1; i < len(payload.Hotels); i++ {
		prev, cur := payload.Hotels[i-1], payload.Hotels[i]
		if prev.Rating == cur.Rating {
			assert.LessOrEqual(t, prev.PricePerNight, cur.PricePerNight)
		} else {
			assert.Greater(t, prev.Rating, cur.Rating)
		}
	}
}

func TestSearchHotels_BudgetAndCategoryFilters(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.SearchHotels(HotelQuery{City: "Paris", BudgetMax: intPtr(400)})
	require.Nil(t, opErr)
	for _, h := range payload.Hotels {
		assert.LessOrEqual(t, h.PricePerNight, 400)
	}

	payload, opErr = p.SearchHotels(HotelQuery{City: "Paris", Category: CategoryLuxury})
	require.Nil(t, opErr)
	require.NotEmpty(t, payload.Hotels)
	for _, h := range payload.Hotels {
		assert.Equal(t, CategoryLuxury, h.Category)
	}
}

func TestSearchHotels_AvailabilityDefaultsOn(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.SearchHotels(HotelQuery{City: "Paris"})
	require.Nil(t, opErr)
	for _, h := range payload.Hotels {
		assert.True(t, h.Available)
	}
	assert.True(t, payload.FiltersApplied.AvailabilityCheck)
}

func TestSearchHotels_InvalidBudget(t *testing.T) {
	p := testPlanner()

	_, opErr := p.SearchHotels(HotelQuery{City: "Paris", BudgetMax: intPtr(-1)})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrInvalidInput, opErr.Code)

	_, opErr = p.SearchHotels(HotelQuery{City: "Paris", BudgetMax: intPtr(9000)})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrInvalidInput, opErr.Code)
}

func TestSearchHotels_EmptyAfterFilters(t *testing.T) {
	p := testPlanner()

	_, opErr := p.SearchHotels(HotelQuery{City: "Paris", Category: CategoryLuxury, BudgetMax: intPtr(100)})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrNotFound, opErr.Code)
	assert.NotEmpty(t, opErr.Suggestion)
}

func TestSearchHotels_DatasetUnavailable(t *testing.T) {
	p := NewPlanner(Empty(), logging.New(nil, "silent"))

	_, opErr := p.SearchHotels(HotelQuery{City: "Paris"})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrDatasetUnavailable, opErr.Code)
}

func TestSearchHotels_DoesNotReorderDataset(t *testing.T) {
	ds := testDataset()
	p := NewPlanner(ds, logging.New(nil, "silent"))

	before := ds.HotelsIn("Paris")[0].ID
	_, opErr := p.SearchHotels(HotelQuery{City: "Paris", CheckAvailability: boolPtr(false)})
	require.Nil(t, opErr)
	assert.Equal(t, before, ds.HotelsIn("Paris")[0].ID)
}

// --- GetAttractions ---

func TestGetAttractions_TopTwelveSorted(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.GetAttractions(AttractionQuery{City: "Paris"})
	require.Nil(t, opErr)
	assert.LessOrEqual(t, len(payload.Attractions), 12)
	assert.Equal(t, len(payload.Attractions), payload.AttractionsFound)

	for i := 1; i < len(payload.Attractions); i++ {
		prev, cur := payload.Attractions[i-1], payload.Attractions[i]
		if prev.Rating == cur.Rating {
			assert.LessOrEqual(t, prev.EntryFee, cur.EntryFee)
		} else {
			assert.Greater(t, prev.Rating, cur.Rating)
		}
	}
}

func TestGetAttractions_CategoryFilter(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.GetAttractions(AttractionQuery{City: "Paris", Category: "Museum"})
	require.Nil(t, opErr)
	require.NotEmpty(t, payload.Attractions)
	for _, a := range payload.Attractions {
		assert.Equal(t, "Museum", a.Category)
	}
}

func TestGetAttractions_UnknownCategoryListsOptions(t *testing.T) {
	p := testPlanner()

	_, opErr := p.GetAttractions(AttractionQuery{City: "Paris", Category: "Spelunking"})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrInvalidInput, opErr.Code)
	assert.Contains(t, opErr.AvailableCategories, "Museum")
}

func TestGetAttractions_MaxEntryFee(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.GetAttractions(AttractionQuery{City: "Paris", MaxEntryFee: intPtr(0)})
	require.Nil(t, opErr)
	require.NotEmpty(t, payload.Attractions)
	for _, a := range payload.Attractions {
		assert.Equal(t, 0, a.EntryFee)
	}

	_, opErr = p.GetAttractions(AttractionQuery{City: "Paris", MaxEntryFee: intPtr(-5)})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrInvalidInput, opErr.Code)
}

func TestGetAttractions_CategorySummaries(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.GetAttractions(AttractionQuery{City: "Paris"})
	require.Nil(t, opErr)

	total := 0
	for _, summary := range payload.CategoriesSummary {
		assert.Greater(t, summary.Count, 0)
		total += summary.Count
	}
	assert.Equal(t, payload.AttractionsFound, total)
}

func TestGetAttractions_UnknownCity(t *testing.T) {
	p := testPlanner()

	_, opErr := p.GetAttractions(AttractionQuery{City: "London"})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrNotFound, opErr.Code)
	assert.Contains(t, opErr.AvailableCities, "Paris")
}

// --- titleCase ---

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Paris", titleCase("paris"))
	assert.Equal(t, "New York", titleCase("new york"))
	assert.Equal(t, "New York", titleCase("  NEW   YORK  "))
}
