// Package lexicon holds the keyword lists that drive content moderation and
// travel-relevance scoring, and compiles them into whole-word matchers.
//
// Lexicons are data: the built-in defaults can be replaced wholesale from a
// YAML file without recompilation.
package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Severity tiers for threat categories.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
)

// ThreatCategory is an ordered threat bucket. Order in the lexicon is the
// scan priority: the first matching category wins.
type ThreatCategory struct {
	Name     string   `yaml:"name"`
	Severity Severity `yaml:"severity"`
	Words    []string `yaml:"words"`
}

// TopicCategory is a named bucket of non-travel keywords.
type TopicCategory struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}

// Lexicon is the full keyword configuration.
type Lexicon struct {
	// Travel maps concern name to travel-relevance keywords.
	Travel map[string][]string `yaml:"travel"`

	// Threats are scanned in order; first match short-circuits validation.
	Threats []ThreatCategory `yaml:"threats"`

	// NonTravel categorises off-topic messages, checked in order.
	NonTravel []TopicCategory `yaml:"nonTravel"`

	// Phrases are regular expressions that boost the travel score.
	Phrases []string `yaml:"phrases"`

	// Suggestions is the pool of redirect suggestions for off-topic replies.
	Suggestions []string `yaml:"suggestions"`
}

// LoadFile reads a lexicon from a YAML file.
func LoadFile(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("reading lexicon: %w", err)
	}
	var lx Lexicon
	if err := yaml.Unmarshal(data, &lx); err != nil {
		return Lexicon{}, fmt.Errorf("parsing lexicon: %w", err)
	}
	if err := lx.validate(); err != nil {
		return Lexicon{}, err
	}
	return lx, nil
}

func (lx Lexicon) validate() error {
	if len(lx.Travel) == 0 {
		return fmt.Errorf("lexicon: no travel keywords")
	}
	for _, tc := range lx.Threats {
		if tc.Name == "" || len(tc.Words) == 0 {
			return fmt.Errorf("lexicon: threat category %q is incomplete", tc.Name)
		}
		switch tc.Severity {
		case SeverityCritical, SeverityModerate:
		default:
			return fmt.Errorf("lexicon: threat category %q has invalid severity %q", tc.Name, tc.Severity)
		}
	}
	for _, tc := range lx.NonTravel {
		if tc.Name == "" || len(tc.Words) == 0 {
			return fmt.Errorf("lexicon: non-travel category %q is incomplete", tc.Name)
		}
	}
	return nil
}
