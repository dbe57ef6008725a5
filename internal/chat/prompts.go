package chat

// systemInstruction anchors every model call to the travel planning domain.
// It is sent on each request and never stored in session history.
const systemInstruction = `You are an expert travel planning assistant. You specialize EXCLUSIVELY in helping travelers plan amazing trips.

Your capabilities include:
1. Hotel and accommodation searches with detailed filtering
2. Tourist attraction discovery and recommendations
3. Comprehensive travel itinerary creation
4. Accurate travel budget estimation
5. Weather-based travel timing advice

IMPORTANT GUIDELINES:
- You ONLY help with travel-related queries
- Use the available travel functions whenever appropriate
- Provide detailed, helpful, and enthusiastic travel advice
- Always prioritize user safety and practical travel recommendations
- Include specific details like prices, ratings, and practical tips
- Be conversational and engaging while remaining professional

Available destinations include Paris, London, Tokyo, New York, Dubai, Barcelona, Rome, Bangkok, Sydney, and Mumbai with comprehensive data for each location.`

// Canned responses for blocked and administrative outcomes.
const (
	msgRateLimited = "Session limit reached. Please start a new chat for continued travel assistance."

	msgSecurityBlocked = "I can only assist with safe travel planning. Please ask about hotels, attractions, itineraries, or travel advice."

	msgSecurityReset = "Chat has been reset due to security violations. Let's start fresh with safe travel planning!"

	msgChatReset = "Chat reset! Ready to help you plan your next adventure. Where would you like to travel?"

	msgServiceUnavailable = "Travel planning service temporarily unavailable. Please try again."

	msgInternalError = "Travel assistance temporarily unavailable. Please try again."

	fallbackResultDetail = "Here are the details for your travel query."
)

// offTopicMessage returns the escalating redirect for the nth warning.
// The first warning is gentle and carries a concrete suggestion, the second
// is firmer, and from the third on the answer is terse.
func offTopicMessage(warnings int, suggestion string) string {
	switch warnings {
	case 1:
		if suggestion == "" {
			suggestion = "Try asking about travel planning!"
		}
		return "I'm a travel planning assistant and can only help with travel-related queries. " + suggestion
	case 2:
		return "I'm specifically designed for travel planning only. Please ask about destinations, hotels, attractions, itineraries, or travel budgets."
	default:
		return "I can ONLY assist with travel planning. I cannot help with other topics. Please ask about: hotels, attractions, itineraries, travel budgets, or destination recommendations."
	}
}

// travelExamples accompanies every off-topic redirect.
var travelExamples = []string{
	"Find luxury hotels in Paris under $400",
	"Create a 5-day Tokyo itinerary",
	"What's the budget for a Barcelona trip?",
	"Best attractions in London",
	"Weather in Dubai in December",
}
