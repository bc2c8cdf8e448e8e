package domain

import "fmt"

// Tier identifies which matching strategy produced a result
type Tier string

const (
	TierExact Tier = "exact" // every recipe ingredient is available
	TierNear  Tier = "near"  // a small number of ingredients is missing
	TierFuzzy Tier = "fuzzy" // ingredients matched approximately
	TierNone  Tier = "none"  // nothing matched; the result is the sentinel
)

// Mode selects the matching policy
type Mode string

const (
	// ModeBatch returns every recipe within the missing-ingredient threshold, in catalog order.
	ModeBatch Mode = "batch"
	// ModeBest returns exactly one recommendation from the first successful tier.
	ModeBest Mode = "best"
)

// ParseMode converts a config or flag value to a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBatch, ModeBest:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// MatchResult is a recipe annotated with what the user still needs.
// It is produced per query and owned by the caller.
type MatchResult struct {
	Recipe        Recipe   `json:"recipe"`
	Missing       []string `json:"missing"`
	Tier          Tier     `json:"tier"`
	StepsWithheld bool     `json:"stepsWithheld,omitempty"`
}

// IsExact reports whether nothing is missing
func (m MatchResult) IsExact() bool {
	return len(m.Missing) == 0 && m.Tier != TierNone
}

// Found reports whether the result refers to a real catalog recipe
func (m MatchResult) Found() bool {
	return m.Tier != TierNone
}
