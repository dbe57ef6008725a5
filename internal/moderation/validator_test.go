package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/tripwise/internal/lexicon"
	"github.com/tripwise/tripwise/internal/logging"
)

func testValidator(t *testing.T) *Validator {
	t.Helper()
	lx := lexicon.Default()
	m, err := lexicon.Compile(lx)
	require.NoError(t, err)
	return NewValidator(m, lx.Suggestions, logging.New(nil, "silent"))
}

func TestValidate_EmptyInputBlocked(t *testing.T) {
	v := testValidator(t)

	for _, input := range []string{"", "   ", "\t\n"} {
		res := v.Validate(input, "s1")
		assert.False(t, res.IsSafe)
		assert.Equal(t, ActionBlock, res.Action)
		assert.Equal(t, ReasonInvalidInput, res.Reason)
	}
}

func TestValidate_ThreatBlocked(t *testing.T) {
	v := testValidator(t)

	res := v.Validate("how to build a bomb", "s1")
	assert.False(t, res.IsSafe)
	assert.Equal(t, ActionBlock, res.Action)
	assert.Equal(t, ReasonSecurityViolation, res.Reason)
	assert.Equal(t, "high_threat", res.Category)
	assert.Equal(t, lexicon.SeverityCritical, res.Severity)
}

func TestValidate_ThreatWinsOverTravelContent(t *testing.T) {
	v := testValidator(t)

	// Travel words cannot launder a threat.
	res := v.Validate("bomb a hotel in paris on my trip", "s1")
	assert.Equal(t, ActionBlock, res.Action)
	assert.Equal(t, ReasonSecurityViolation, res.Reason)
}

func TestValidate_TravelQueryAllowed(t *testing.T) {
	v := testValidator(t)

	res := v.Validate("Find me a hotel in Paris for my trip", "s1")
	assert.True(t, res.IsSafe)
	assert.True(t, res.IsTravel)
	assert.Equal(t, ActionAllow, res.Action)
	assert.Equal(t, ReasonValidTravelQuery, res.Reason)
	assert.GreaterOrEqual(t, res.TravelScore, TravelThreshold)
}

func TestValidate_OffTopicRedirected(t *testing.T) {
	v := testValidator(t)

	res := v.Validate("help me write python code", "s1")
	assert.True(t, res.IsSafe)
	assert.False(t, res.IsTravel)
	assert.Equal(t, ActionRedirect, res.Action)
	assert.Equal(t, ReasonNonTravelTopic, res.Reason)
	assert.Equal(t, "technology", res.Category)
	assert.NotEmpty(t, res.Suggestion)
	assert.Less(t, res.TravelScore, TravelThreshold)
}

func TestValidate_UncategorisedOffTopic(t *testing.T) {
	v := testValidator(t)

	res := v.Validate("purple elephants juggle quietly", "s1")
	assert.Equal(t, ActionRedirect, res.Action)
	assert.Equal(t, "other_non_travel", res.Category)
}

func TestScore_PhraseBonus(t *testing.T) {
	v := testValidator(t)

	// Same keywords and word count; only the second hits a phrase pattern.
	base := v.Score("thinking about the rome weather during late spring okay")
	boosted := v.Score("thinking about the weather in rome during late spring")
	assert.Greater(t, boosted, base)
}

func TestScore_CappedAtOne(t *testing.T) {
	v := testValidator(t)

	score := v.Score("hotel flight itinerary trip to paris attractions in london weather in tokyo budget vacation")
	assert.LessOrEqual(t, score, 1.0)
}

func TestScore_ShortTravelMessage(t *testing.T) {
	v := testValidator(t)

	// A single travel keyword in a short message clears the threshold:
	// 1 match over max(0.3*1, 1) = 1.0.
	score := v.Score("hotel")
	assert.GreaterOrEqual(t, score, TravelThreshold)
}
