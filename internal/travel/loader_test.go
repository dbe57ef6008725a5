package travel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/tripwise/internal/logging"
)

func TestLoadHotels(t *testing.T) {
	hotels, err := LoadHotels(filepath.Join("testdata", "hotels.csv"))
	require.NoError(t, err)
	require.Len(t, hotels, 4)

	first := hotels[0]
	assert.Equal(t, "H001", first.ID)
	assert.Equal(t, "Paris", first.City)
	// Categories are normalised to lower case on load.
	assert.Equal(t, CategoryLuxury, first.Category)
	assert.Equal(t, 450, first.PricePerNight)
	assert.InDelta(t, 4.8, first.Rating, 0.001)
	assert.Equal(t, []string{"WiFi", "Spa", "Restaurant"}, first.Amenities)
	assert.True(t, first.Available)

	assert.False(t, hotels[2].Available)
}

func TestLoadHotels_MissingFile(t *testing.T) {
	_, err := LoadHotels(filepath.Join("testdata", "nope.csv"))
	assert.Error(t, err)
}

func TestLoadAttractions(t *testing.T) {
	attractions, err := LoadAttractions(filepath.Join("testdata", "attractions.csv"))
	require.NoError(t, err)
	require.Len(t, attractions, 3)

	assert.Equal(t, "A001", attractions[0].ID)
	assert.Equal(t, "Landmark", attractions[0].Category)
	assert.Equal(t, 25, attractions[0].EntryFee)
	assert.InDelta(t, 2.5, attractions[0].DurationHours, 0.001)
	assert.Equal(t, 0, attractions[2].EntryFee)
}

func TestLoadTemplates(t *testing.T) {
	templates, err := LoadTemplates(filepath.Join("testdata", "templates.json"))
	require.NoError(t, err)

	days, ok := templates["Paris"]["3_days"]
	require.True(t, ok)
	require.Len(t, days, 3)
	assert.Equal(t, "Classic Paris", days[0].Title)
	assert.InDelta(t, 85.0, days[0].EstimatedCost, 0.001)
}

func TestLoad_DegradesToEmpty(t *testing.T) {
	ds := Load(DatasetPaths{
		Hotels:      "does-not-exist.csv",
		Attractions: "does-not-exist.csv",
		Templates:   "does-not-exist.json",
	}, logging.New(nil, "silent"))

	require.NotNil(t, ds)
	assert.False(t, ds.HasHotels())
	assert.False(t, ds.HasAttractions())
}

func TestLoad_FullFixture(t *testing.T) {
	ds := Load(DatasetPaths{
		Hotels:      filepath.Join("testdata", "hotels.csv"),
		Attractions: filepath.Join("testdata", "attractions.csv"),
		Templates:   filepath.Join("testdata", "templates.json"),
	}, logging.New(nil, "silent"))

	assert.True(t, ds.HasHotels())
	assert.True(t, ds.HasAttractions())
	assert.ElementsMatch(t, []string{"Paris", "London"}, ds.HotelCities())

	_, ok := ds.Template("Paris", 3)
	assert.True(t, ok)
	_, ok = ds.Template("Paris", 5)
	assert.False(t, ok)
}
