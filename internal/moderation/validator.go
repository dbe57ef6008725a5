// Package moderation decides, per message, whether input is safe and whether
// it is on-topic for travel planning.
package moderation

import (
	"math/rand"
	"strings"

	"github.com/tripwise/tripwise/internal/lexicon"
	"github.com/tripwise/tripwise/internal/logging"
)

// Action is the exclusive outcome of validating one message.
type Action string

const (
	ActionAllow    Action = "allow"
	ActionBlock    Action = "block"
	ActionRedirect Action = "redirect"
)

// Decision reasons.
const (
	ReasonInvalidInput      = "invalid_input"
	ReasonSecurityViolation = "security_violation"
	ReasonNonTravelTopic    = "non_travel_topic"
	ReasonValidTravelQuery  = "valid_travel_query"
)

// Fallback category when no non-travel bucket matches.
const categoryOtherNonTravel = "other_non_travel"

// Scoring policy knobs. The formula is a heuristic: more travel keywords and
// phrases mean a higher score. The exact weights are tunable, not derived
// from labeled data.
const (
	// TravelThreshold is the minimum relevance score to treat a message
	// as a travel query.
	TravelThreshold = 0.3

	// phraseBonus is added per matching travel-intent phrase pattern.
	phraseBonus = 0.2

	// densityWeight scales the word count in the keyword-density divisor.
	densityWeight = 0.3
)

// Result is the outcome of validating one message.
// Invariants: !IsSafe implies Action == ActionBlock; IsSafe && !IsTravel
// implies ActionRedirect; IsSafe && IsTravel implies ActionAllow.
type Result struct {
	IsSafe      bool              `json:"isSafe"`
	IsTravel    bool              `json:"isTravel"`
	Action      Action            `json:"action"`
	Reason      string            `json:"reason"`
	Category    string            `json:"category,omitempty"`
	Severity    lexicon.Severity  `json:"severity,omitempty"`
	TravelScore float64           `json:"travelScore"`
	Suggestion  string            `json:"suggestion,omitempty"`
}

// Validator classifies messages as blocked, off-topic, or travel-valid.
type Validator struct {
	matchers    *lexicon.Matchers
	suggestions []string
	log         *logging.Logger
}

// NewValidator creates a validator over compiled lexicon matchers.
func NewValidator(m *lexicon.Matchers, suggestions []string, log *logging.Logger) *Validator {
	return &Validator{
		matchers:    m,
		suggestions: suggestions,
		log:         log.Sub("moderation"),
	}
}

// Validate classifies the message. Fails closed: empty input is blocked.
// Every decision is logged with the session key for audit.
func (v *Validator) Validate(text, sessionKey string) Result {
	clean := strings.ToLower(strings.TrimSpace(text))
	if clean == "" {
		v.log.Warn().Str("session", sessionKey).Msg("empty input blocked")
		return Result{Action: ActionBlock, Reason: ReasonInvalidInput}
	}

	// Threat scan short-circuits everything else.
	if category, severity, found := v.matchers.Threat(clean); found {
		v.log.Warn().
			Str("session", sessionKey).
			Str("category", category).
			Str("severity", string(severity)).
			Msg("security threat detected")
		return Result{
			Action:   ActionBlock,
			Reason:   ReasonSecurityViolation,
			Category: category,
			Severity: severity,
		}
	}

	score := v.Score(clean)

	if score < TravelThreshold {
		category, ok := v.matchers.NonTravelCategory(clean)
		if !ok {
			category = categoryOtherNonTravel
		}
		v.log.Info().
			Str("session", sessionKey).
			Str("category", category).
			Float64("score", score).
			Msg("non-travel query redirected")
		return Result{
			IsSafe:      true,
			Action:      ActionRedirect,
			Reason:      ReasonNonTravelTopic,
			Category:    category,
			TravelScore: score,
			Suggestion:  v.suggestion(),
		}
	}

	v.log.Info().
		Str("session", sessionKey).
		Float64("score", score).
		Msg("travel query approved")
	return Result{
		IsSafe:      true,
		IsTravel:    true,
		Action:      ActionAllow,
		Reason:      ReasonValidTravelQuery,
		TravelScore: score,
	}
}

// Score computes the travel relevance score in [0, 1] for normalized text.
func (v *Validator) Score(clean string) float64 {
	words := strings.Fields(clean)
	if len(words) == 0 {
		return 0
	}

	matches := float64(v.matchers.TravelMatches(clean))
	divisor := float64(len(words)) * densityWeight
	if divisor < 1 {
		divisor = 1
	}
	score := matches / divisor
	if score > 1 {
		score = 1
	}

	score += float64(v.matchers.PhraseHits(clean)) * phraseBonus
	if score > 1 {
		score = 1
	}
	return score
}

func (v *Validator) suggestion() string {
	if len(v.suggestions) == 0 {
		return ""
	}
	return v.suggestions[rand.Intn(len(v.suggestions))]
}
