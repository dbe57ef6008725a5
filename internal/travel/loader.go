package travel

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tripwise/tripwise/internal/logging"
)

// DatasetPaths points to the on-disk dataset files.
type DatasetPaths struct {
	Hotels      string
	Attractions string
	Templates   string
}

// Load reads the destination datasets. Loading never fails the process: any
// file that cannot be read or parsed degrades to an empty structure, and the
// dependent queries consistently report the dataset as unavailable.
func Load(paths DatasetPaths, log *logging.Logger) *Dataset {
	log = log.Sub("dataset")

	hotels, err := LoadHotels(paths.Hotels)
	if err != nil {
		log.Error().Err(err).Str("path", paths.Hotels).Msg("hotel dataset unavailable")
	}

	attractions, err := LoadAttractions(paths.Attractions)
	if err != nil {
		log.Error().Err(err).Str("path", paths.Attractions).Msg("attraction dataset unavailable")
	}

	templates, err := LoadTemplates(paths.Templates)
	if err != nil {
		log.Error().Err(err).Str("path", paths.Templates).Msg("itinerary templates unavailable")
	}

	log.Info().
		Int("hotels", len(hotels)).
		Int("attractions", len(attractions)).
		Int("templateCities", len(templates)).
		Msg("destination datasets loaded")

	return NewDataset(hotels, attractions, templates)
}

// hotel CSV columns, in order.
var hotelColumns = []string{
	"hotel_id", "name", "city", "country", "category",
	"price_per_night", "rating", "amenities", "address", "availability",
}

// LoadHotels parses the hotel CSV file.
func LoadHotels(path string) ([]Hotel, error) {
	rows, err := readCSV(path, hotelColumns)
	if err != nil {
		return nil, err
	}

	hotels := make([]Hotel, 0, len(rows))
	for i, row := range rows {
		price, err := strconv.Atoi(row["price_per_night"])
		if err != nil {
			return nil, fmt.Errorf("row %d: price_per_night: %w", i+2, err)
		}
		rating, err := strconv.ParseFloat(row["rating"], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: rating: %w", i+2, err)
		}
		hotels = append(hotels, Hotel{
			ID:            row["hotel_id"],
			Name:          row["name"],
			City:          row["city"],
			Country:       row["country"],
			Category:      strings.ToLower(row["category"]),
			PricePerNight: price,
			Rating:        rating,
			Amenities:     splitList(row["amenities"]),
			Address:       row["address"],
			Available:     parseBool(row["availability"]),
		})
	}
	return hotels, nil
}

// attraction CSV columns, in order.
var attractionColumns = []string{
	"attraction_id", "name", "city", "country", "category",
	"entry_fee", "duration_hours", "rating", "description", "opening_hours",
}

// LoadAttractions parses the attraction CSV file.
func LoadAttractions(path string) ([]Attraction, error) {
	rows, err := readCSV(path, attractionColumns)
	if err != nil {
		return nil, err
	}

	attractions := make([]Attraction, 0, len(rows))
	for i, row := range rows {
		fee, err := strconv.Atoi(row["entry_fee"])
		if err != nil {
			return nil, fmt.Errorf("row %d: entry_fee: %w", i+2, err)
		}
		duration, err := strconv.ParseFloat(row["duration_hours"], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: duration_hours: %w", i+2, err)
		}
		rating, err := strconv.ParseFloat(row["rating"], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: rating: %w", i+2, err)
		}
		attractions = append(attractions, Attraction{
			ID:            row["attraction_id"],
			Name:          row["name"],
			City:          row["city"],
			Country:       row["country"],
			Category:      row["category"],
			EntryFee:      fee,
			DurationHours: duration,
			Rating:        rating,
			Description:   row["description"],
			OpeningHours:  row["opening_hours"],
		})
	}
	return attractions, nil
}

// LoadTemplates parses the curated itinerary template JSON file.
func LoadTemplates(path string) (Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}
	var templates Templates
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return templates, nil
}

// readCSV reads a headed CSV file and returns one map per row with the
// expected column names as keys.
func readCSV(path string, columns []string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv file")
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(columns))
		for _, col := range columns {
			row[col] = strings.TrimSpace(rec[index[col]])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}
