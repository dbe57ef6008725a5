package lexicon

import (
	"fmt"
	"regexp"
	"strings"
)

// Matchers holds the compiled patterns for a lexicon. Compile once at
// startup; all methods are safe for concurrent use.
type Matchers struct {
	travel    *regexp.Regexp
	threats   []threatMatcher
	nonTravel []topicMatcher
	phrases   []*regexp.Regexp
}

type threatMatcher struct {
	name     string
	severity Severity
	re       *regexp.Regexp
}

type topicMatcher struct {
	name string
	re   *regexp.Regexp
}

// Compile builds matchers for the lexicon. Keyword matching is
// case-insensitive and whole-word: keywords never match inside other words.
func Compile(lx Lexicon) (*Matchers, error) {
	var travelWords []string
	for _, words := range lx.Travel {
		travelWords = append(travelWords, words...)
	}
	travel, err := compileWords(travelWords)
	if err != nil {
		return nil, fmt.Errorf("travel keywords: %w", err)
	}

	m := &Matchers{travel: travel}

	for _, tc := range lx.Threats {
		re, err := compileWords(tc.Words)
		if err != nil {
			return nil, fmt.Errorf("threat category %s: %w", tc.Name, err)
		}
		m.threats = append(m.threats, threatMatcher{name: tc.Name, severity: tc.Severity, re: re})
	}

	for _, tc := range lx.NonTravel {
		re, err := compileWords(tc.Words)
		if err != nil {
			return nil, fmt.Errorf("non-travel category %s: %w", tc.Name, err)
		}
		m.nonTravel = append(m.nonTravel, topicMatcher{name: tc.Name, re: re})
	}

	for _, p := range lx.Phrases {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("phrase pattern %q: %w", p, err)
		}
		m.phrases = append(m.phrases, re)
	}

	return m, nil
}

// compileWords builds a case-insensitive whole-word alternation pattern.
func compileWords(words []string) (*regexp.Regexp, error) {
	escaped := make([]string, 0, len(words))
	for _, w := range words {
		escaped = append(escaped, regexp.QuoteMeta(w))
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
}

// TravelMatches counts travel keyword occurrences in the text.
func (m *Matchers) TravelMatches(text string) int {
	return len(m.travel.FindAllString(text, -1))
}

// Threat scans the threat categories in priority order and reports the
// first matching category, if any.
func (m *Matchers) Threat(text string) (category string, severity Severity, found bool) {
	for _, t := range m.threats {
		if t.re.MatchString(text) {
			return t.name, t.severity, true
		}
	}
	return "", "", false
}

// NonTravelCategory returns the first matching off-topic category.
func (m *Matchers) NonTravelCategory(text string) (string, bool) {
	for _, t := range m.nonTravel {
		if t.re.MatchString(text) {
			return t.name, true
		}
	}
	return "", false
}

// PhraseHits counts how many travel-intent phrase patterns match.
func (m *Matchers) PhraseHits(text string) int {
	hits := 0
	for _, re := range m.phrases {
		if re.MatchString(text) {
			hits++
		}
	}
	return hits
}
