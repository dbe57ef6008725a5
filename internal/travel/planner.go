package travel

import (
	"math"
	"strconv"
	"strings"

	"github.com/tripwise/tripwise/internal/logging"
)

// Planner runs the travel query operations over an immutable dataset.
// Operations never propagate faults: a panic inside a computation is
// converted into a generic internal error payload.
type Planner struct {
	ds  *Dataset
	log *logging.Logger
}

// NewPlanner creates a planner over the dataset.
func NewPlanner(ds *Dataset, log *logging.Logger) *Planner {
	return &Planner{ds: ds, log: log.Sub("travel")}
}

// Dataset returns the underlying dataset.
func (p *Planner) Dataset() *Dataset { return p.ds }

// recoverOp converts a panic into an internal error payload for the op.
func (p *Planner) recoverOp(op string, opErr **OpError) {
	if r := recover(); r != nil {
		p.log.Error().Str("op", op).Any("panic", r).Msg("query operation panicked")
		*opErr = internalError(op)
	}
}

// titleCase normalizes a city name: "new york" -> "New York".
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func durationKey(days int) string {
	return strconv.Itoa(days) + "_days"
}

// round1 rounds to one decimal place.
func round1(f float64) float64 { return math.Round(f*10) / 10 }

// round2 rounds to two decimal places.
func round2(f float64) float64 { return math.Round(f*100) / 100 }
