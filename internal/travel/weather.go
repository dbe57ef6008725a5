package travel

import (
	"fmt"
	"strings"
)

// Recommendation tiers for a travel month.
const (
	WeatherExcellent      = "excellent"
	WeatherGood           = "good"
	WeatherFair           = "fair"
	WeatherNotRecommended = "not_recommended"
)

var validMonths = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// CityWeather is the per-city climate model.
type CityWeather struct {
	BestMonths       []string `json:"best_months"`
	GoodMonths       []string `json:"good_months"`
	AvoidMonths      []string `json:"avoid_months"`
	WeatherInfo      string   `json:"weather_info"`
	PeakSeason       string   `json:"peak_season"`
	TemperatureRange string   `json:"temperature_range"`
	Rainfall         string   `json:"rainfall_info"`
}

// weatherData is the fixed per-city climate table.
var weatherData = map[string]CityWeather{
	"Paris": {
		BestMonths:       []string{"April", "May", "June", "September", "October"},
		GoodMonths:       []string{"March", "July", "August"},
		AvoidMonths:      []string{"December", "January", "February"},
		WeatherInfo:      "Mild temperatures, moderate rainfall, perfect for sightseeing",
		PeakSeason:       "May-September",
		TemperatureRange: "3°C to 25°C (37°F to 77°F)",
		Rainfall:         "Moderate year-round, heaviest in winter",
	},
	"London": {
		BestMonths:       []string{"May", "June", "July", "August", "September"},
		GoodMonths:       []string{"April", "October"},
		AvoidMonths:      []string{"November", "December", "January", "February"},
		WeatherInfo:      "Mild summers, rainy winters, longer daylight hours in summer",
		PeakSeason:       "June-August",
		TemperatureRange: "2°C to 23°C (36°F to 73°F)",
		Rainfall:         "Year-round, but less in summer",
	},
	"Tokyo": {
		BestMonths:       []string{"March", "April", "May", "October", "November"},
		GoodMonths:       []string{"February", "December"},
		AvoidMonths:      []string{"June", "July", "August", "September"},
		WeatherInfo:      "Cherry blossom season (March-May) and pleasant autumn weather",
		PeakSeason:       "March-May, October-November",
		TemperatureRange: "0°C to 30°C (32°F to 86°F)",
		Rainfall:         "Rainy season June-July, typhoons August-September",
	},
	"New York": {
		BestMonths:       []string{"April", "May", "June", "September", "October"},
		GoodMonths:       []string{"March", "November"},
		AvoidMonths:      []string{"January", "February", "July", "August"},
		WeatherInfo:      "Four distinct seasons, hot humid summers, cold winters",
		PeakSeason:       "April-June, September-November",
		TemperatureRange: "-3°C to 29°C (27°F to 85°F)",
		Rainfall:         "Fairly distributed year-round",
	},
	"Dubai": {
		BestMonths:       []string{"November", "December", "January", "February", "March"},
		GoodMonths:       []string{"April", "October"},
		AvoidMonths:      []string{"June", "July", "August", "September"},
		WeatherInfo:      "Desert climate, very hot summers, mild winters",
		PeakSeason:       "November-March",
		TemperatureRange: "14°C to 41°C (57°F to 106°F)",
		Rainfall:         "Very low, occasional winter showers",
	},
	"Barcelona": {
		BestMonths:       []string{"April", "May", "June", "September", "October"},
		GoodMonths:       []string{"March", "July", "November"},
		AvoidMonths:      []string{"December", "January", "February"},
		WeatherInfo:      "Mediterranean climate, warm dry summers, mild winters",
		PeakSeason:       "May-September",
		TemperatureRange: "8°C to 28°C (46°F to 82°F)",
		Rainfall:         "Low, mainly in autumn and spring",
	},
	"Rome": {
		BestMonths:       []string{"April", "May", "June", "September", "October"},
		GoodMonths:       []string{"March", "November"},
		AvoidMonths:      []string{"July", "August", "December", "January"},
		WeatherInfo:      "Mediterranean climate, hot summers, mild winters",
		PeakSeason:       "April-June, September-October",
		TemperatureRange: "3°C to 30°C (37°F to 86°F)",
		Rainfall:         "Wettest in autumn and winter",
	},
	"Bangkok": {
		BestMonths:       []string{"November", "December", "January", "February"},
		GoodMonths:       []string{"March", "October"},
		AvoidMonths:      []string{"April", "May", "June", "July", "August", "September"},
		WeatherInfo:      "Tropical climate, hot and humid with distinct rainy season",
		PeakSeason:       "November-February",
		TemperatureRange: "22°C to 35°C (72°F to 95°F)",
		Rainfall:         "Heavy monsoon May-October",
	},
	"Sydney": {
		BestMonths:       []string{"September", "October", "November", "March", "April", "May"},
		GoodMonths:       []string{"February", "June"},
		AvoidMonths:      []string{"July", "August"},
		WeatherInfo:      "Temperate climate, warm summers, mild winters (Southern Hemisphere)",
		PeakSeason:       "September-November, March-May",
		TemperatureRange: "8°C to 26°C (46°F to 79°F)",
		Rainfall:         "Fairly even year-round, slightly more in autumn/winter",
	},
	"Mumbai": {
		BestMonths:       []string{"November", "December", "January", "February", "March"},
		GoodMonths:       []string{"October", "April"},
		AvoidMonths:      []string{"June", "July", "August", "September"},
		WeatherInfo:      "Tropical climate, intense monsoon season, hot and humid",
		PeakSeason:       "November-February",
		TemperatureRange: "16°C to 38°C (61°F to 100°F)",
		Rainfall:         "Heavy monsoon June-September",
	},
}

// defaultWeather covers cities not present in the table.
var defaultWeather = CityWeather{
	BestMonths:       []string{"April", "May", "September", "October"},
	GoodMonths:       []string{"March", "June", "November"},
	AvoidMonths:      []string{"December", "January", "February"},
	WeatherInfo:      "Generally pleasant weather for travel",
	PeakSeason:       "April-October",
	TemperatureRange: "Variable",
	Rainfall:         "Seasonal variation",
}

// WeatherQuery are the check_weather_recommendation parameters.
type WeatherQuery struct {
	City        string `json:"city"`
	TravelMonth string `json:"travel_month"`
}

// WeatherPayload is the success payload for check_weather_recommendation.
type WeatherPayload struct {
	City                string      `json:"city"`
	TravelMonth         string      `json:"travel_month"`
	RecommendationLevel string      `json:"recommendation_level"`
	Recommendation      string      `json:"recommendation"`
	WeatherDetails      CityWeather `json:"weather_details"`
	TravelTips          []string    `json:"travel_tips"`
}

// WeatherRecommendation classifies the requested month for a city into one
// of four tiers based on the fixed climate table.
func (p *Planner) WeatherRecommendation(q WeatherQuery) (payload *WeatherPayload, opErr *OpError) {
	defer p.recoverOp("check_weather_recommendation", &opErr)

	if strings.TrimSpace(q.City) == "" {
		return nil, invalidInput("City parameter is required")
	}
	if strings.TrimSpace(q.TravelMonth) == "" {
		return nil, invalidInput("Travel month is required")
	}

	city := titleCase(q.City)
	month := titleCase(q.TravelMonth)

	if !containsString(validMonths, month) {
		return nil, invalidInput("Invalid month. Must be one of: %s", strings.Join(validMonths, ", "))
	}

	weather, ok := weatherData[city]
	if !ok {
		weather = defaultWeather
	}

	bestPreview := weather.BestMonths
	if len(bestPreview) > 3 {
		bestPreview = bestPreview[:3]
	}
	bestAlternatives := strings.Join(bestPreview, ", ")

	var level, recommendation string
	switch {
	case containsString(weather.BestMonths, month):
		level = WeatherExcellent
		recommendation = fmt.Sprintf("Excellent time to visit %s! %s is one of the best months.", city, month)
	case containsString(weather.GoodMonths, month):
		level = WeatherGood
		recommendation = fmt.Sprintf("Good time to visit %s. %s offers decent weather conditions.", city, month)
	case containsString(weather.AvoidMonths, month):
		level = WeatherNotRecommended
		recommendation = fmt.Sprintf("Not the ideal time for %s. Consider visiting during: %s", city, bestAlternatives)
	default:
		level = WeatherFair
		recommendation = fmt.Sprintf("Fair time to visit %s, though %s would be better.", city, bestAlternatives)
	}

	return &WeatherPayload{
		City:                city,
		TravelMonth:         month,
		RecommendationLevel: level,
		Recommendation:      recommendation,
		WeatherDetails:      weather,
		TravelTips: []string{
			fmt.Sprintf("Peak season: %s - expect higher prices and crowds", weather.PeakSeason),
			"Best weather: " + strings.Join(weather.BestMonths, ", "),
			"Temperature range: " + weather.TemperatureRange,
			"Book accommodations early during peak months",
		},
	}, nil
}
