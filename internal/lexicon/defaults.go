package lexicon

// Default returns the built-in lexicon. The word lists define the assistant's
// scope: what counts as travel talk, what is blocked outright, and how
// off-topic messages are categorised.
func Default() Lexicon {
	return Lexicon{
		Travel: map[string][]string{
			"destinations": {
				"city", "country", "destination", "place", "location", "visit", "travel to",
				"paris", "london", "tokyo", "new york", "dubai", "barcelona", "rome",
				"bangkok", "sydney", "mumbai", "europe", "asia", "america", "africa",
			},
			"accommodation": {
				"hotel", "hostel", "resort", "accommodation", "stay", "lodge", "inn",
				"apartment", "booking", "room", "suite", "bed and breakfast",
			},
			"activities": {
				"attraction", "sightseeing", "tour", "museum", "landmark", "monument",
				"beach", "park", "temple", "church", "castle", "gallery", "zoo",
				"shopping", "restaurant", "nightlife", "entertainment",
			},
			"transportation": {
				"flight", "plane", "airport", "train", "bus", "taxi", "car rental",
				"transportation", "metro", "subway", "ferry", "cruise",
			},
			"planning": {
				"itinerary", "schedule", "plan", "trip", "vacation", "holiday", "journey",
				"budget", "cost", "price", "expense", "currency", "exchange",
				"visa", "passport", "weather", "climate", "season",
			},
		},
		Threats: []ThreatCategory{
			{
				Name:     "high_threat",
				Severity: SeverityCritical,
				Words: []string{
					"bomb", "terrorist", "kill", "murder", "attack", "violence", "weapon",
					"gun", "knife", "explosive", "threat", "harm", "destroy",
				},
			},
			{
				Name:     "inappropriate",
				Severity: SeverityModerate,
				Words: []string{
					"sex", "porn", "nude", "adult", "drug", "cocaine", "marijuana",
				},
			},
			{
				Name:     "travel_illegal",
				Severity: SeverityModerate,
				Words: []string{
					"visa fraud", "fake passport", "smuggling", "human trafficking",
					"drug trafficking", "money laundering", "illegal border",
				},
			},
		},
		NonTravel: []TopicCategory{
			{
				Name: "technology",
				Words: []string{
					"programming", "coding", "software", "computer", "python", "javascript",
					"html", "css", "database", "api", "algorithm",
				},
			},
			{
				Name: "entertainment",
				Words: []string{
					"movie", "tv show", "music", "song", "game", "sport", "celebrity", "news",
				},
			},
			{
				Name: "education",
				Words: []string{
					"homework", "essay", "study", "exam", "math problem", "research paper",
				},
			},
			{
				Name: "general",
				Words: []string{
					"hello", "hi", "how are you", "tell me a joke", "what do you think",
				},
			},
		},
		Phrases: []string{
			`\b(?:trip to|travel to|visit|vacation in|holiday in)\b`,
			`\b(?:hotel in|stay in|accommodation in)\b`,
			`\b(?:attractions in|things to do in)\b`,
			`\b(?:budget for|cost of).+(?:trip|travel|vacation)\b`,
			`\b(?:weather in|climate in|best time to visit)\b`,
		},
		Suggestions: []string{
			"Try asking about hotels, attractions, or itineraries for your destination!",
			"I can help you plan trips - ask about destinations, budgets, or travel recommendations!",
			"Let's focus on travel planning - ask me about accommodations, activities, or trip costs!",
			"Ask me about travel topics like finding hotels, creating itineraries, or budgeting for trips!",
		},
	}
}
