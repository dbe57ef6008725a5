package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/tripwise/internal/logging"
)

func TestBudgetEstimate_ValidatesInput(t *testing.T) {
	p := testPlanner()

	_, opErr := p.BudgetEstimate(BudgetQuery{DurationDays: 5})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrInvalidInput, opErr.Code)

	for _, days := range []int{0, 31} {
		_, opErr := p.BudgetEstimate(BudgetQuery{City: "Paris", DurationDays: days})
		require.NotNil(t, opErr, "duration %d", days)
		assert.Equal(t, ErrInvalidInput, opErr.Code)
	}

	_, opErr = p.BudgetEstimate(BudgetQuery{City: "Paris", DurationDays: 5, AccommodationCategory: "palatial"})
	require.NotNil(t, opErr)
	assert.Equal(t, ErrInvalidInput, opErr.Code)
}

func TestBudgetEstimate_BreakdownSumsToTotal(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.BudgetEstimate(BudgetQuery{City: "Paris", DurationDays: 5})
	require.Nil(t, opErr)

	b := payload.BudgetBreakdown
	sum := b.Accommodation.Total + b.Attractions.Total + b.Meals.Total + b.Transportation.Total + b.Miscellaneous.Total
	assert.InDelta(t, b.Total, sum, 0.05)

	pctSum := b.Accommodation.Percentage + b.Attractions.Percentage + b.Meals.Percentage +
		b.Transportation.Percentage + b.Miscellaneous.Percentage
	assert.InDelta(t, 100.0, pctSum, 0.5)

	assert.InDelta(t, b.Total/5, payload.DailyAverage, 0.05)
	assert.Equal(t, "USD", payload.Currency)
}

func TestBudgetEstimate_DefaultsToMidRange(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.BudgetEstimate(BudgetQuery{City: "Paris", DurationDays: 3})
	require.Nil(t, opErr)
	assert.Equal(t, CategoryMidRange, payload.AccommodationCategory)
	assert.Equal(t, CategoryMidRange, payload.BudgetBreakdown.Accommodation.Category)
}

func TestBudgetEstimate_CategoryComparisonsOrdered(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.BudgetEstimate(BudgetQuery{City: "Paris", DurationDays: 4})
	require.Nil(t, opErr)

	cmp := payload.CategoryComparisons
	require.Len(t, cmp, 3)
	assert.Less(t, cmp[CategoryBudget], cmp[CategoryMidRange])
	assert.Less(t, cmp[CategoryMidRange], cmp[CategoryLuxury])
	assert.InDelta(t, cmp[CategoryMidRange]*0.7, cmp[CategoryBudget], 0.05)
	assert.InDelta(t, cmp[CategoryMidRange]*1.5, cmp[CategoryLuxury], 0.05)
}

func TestBudgetEstimate_UsesLiveHotelPrices(t *testing.T) {
	p := testPlanner()

	payload, opErr := p.BudgetEstimate(BudgetQuery{City: "Paris", DurationDays: 2, AccommodationCategory: CategoryLuxury})
	require.Nil(t, opErr)

	// Average of the two available luxury fixtures (450 and 550).
	assert.InDelta(t, 500.0, payload.BudgetBreakdown.Accommodation.Daily, 0.5)
}

func TestBudgetEstimate_FallbackForUnknownCity(t *testing.T) {
	p := NewPlanner(Empty(), logging.New(nil, "silent"))

	payload, opErr := p.BudgetEstimate(BudgetQuery{City: "Lisbon", DurationDays: 4})
	require.Nil(t, opErr)
	assert.Greater(t, payload.BudgetBreakdown.Total, 0.0)
}

func TestBudgetEstimate_HighTransportCity(t *testing.T) {
	p := NewPlanner(Empty(), logging.New(nil, "silent"))

	ny, opErr := p.BudgetEstimate(BudgetQuery{City: "New York", DurationDays: 3})
	require.Nil(t, opErr)
	other, opErr := p.BudgetEstimate(BudgetQuery{City: "Lisbon", DurationDays: 3})
	require.Nil(t, opErr)

	assert.Greater(t, ny.BudgetBreakdown.Transportation.Daily, other.BudgetBreakdown.Transportation.Daily)
}
