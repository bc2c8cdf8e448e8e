package usecase

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/chefood/backend/internal/domain"
)

// MaxMissingIngredients is the batch-mode cutoff: recipes missing more are not shown.
const MaxMissingIngredients = 2

const (
	defaultFuzzyThreshold = 0.8
	nearMissingCount      = 1 // best mode's near tier tolerates exactly one gap
)

// Messages rendered in place of real recipe content
const (
	NoResultMessage      = "No recipe found with those ingredients. Try adding more ingredients or changing your search."
	WithheldStepsMessage = "Preparation is hidden until you have every ingredient on the list."
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	FuzzyThreshold     float64 // minimum similarity in (0, 1] for the fuzzy tier
	EnableDebugLogging bool
}

// MatchingService matches user ingredients against recipes.
// It holds no per-query state and is safe for concurrent use.
type MatchingService struct {
	fuzzyThreshold     float64
	enableDebugLogging bool
	log                zerolog.Logger
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig, log zerolog.Logger) *MatchingService {
	threshold := config.FuzzyThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = defaultFuzzyThreshold
	}

	return &MatchingService{
		fuzzyThreshold:     threshold,
		enableDebugLogging: config.EnableDebugLogging,
		log:                log,
	}
}

// Match runs the policy selected by mode. Best mode always yields exactly one result.
// Only an unknown mode is an error; bad or empty data degrades to empty or sentinel results.
func (s *MatchingService) Match(userIngredients []string, recipes []domain.Recipe, mode domain.Mode) ([]domain.MatchResult, error) {
	switch mode {
	case domain.ModeBatch:
		return s.MatchBatch(userIngredients, recipes), nil
	case domain.ModeBest:
		return []domain.MatchResult{s.MatchBest(userIngredients, recipes)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
}

// MatchBatch returns every recipe missing at most MaxMissingIngredients, in catalog order.
// Use SortByMissing for a ranked view.
func (s *MatchingService) MatchBatch(userIngredients []string, recipes []domain.Recipe) []domain.MatchResult {
	user := NormalizeSet(userIngredients)
	results := make([]domain.MatchResult, 0)

	for _, recipe := range recipes {
		missing := NormalizeSet(recipe.Ingredients).Minus(user)

		if s.enableDebugLogging {
			s.log.Debug().
				Str("recipe", recipe.Name).
				Strs("missing", missing).
				Msg("batch candidate")
		}

		if len(missing) > MaxMissingIngredients {
			continue
		}

		tier := domain.TierNear
		if len(missing) == 0 {
			tier = domain.TierExact
		}
		results = append(results, domain.MatchResult{
			Recipe:  recipe.Clone(),
			Missing: missing,
			Tier:    tier,
		})
	}

	if s.enableDebugLogging {
		s.log.Debug().
			Strs("user", user.Items()).
			Int("recipes", len(recipes)).
			Int("matched", len(results)).
			Msg("batch match finished")
	}

	return results
}

// candidate pairs a recipe with its normalized ingredient set, computed once per query
type candidate struct {
	recipe      domain.Recipe
	ingredients IngredientSet
}

// MatchBest returns a single recommendation from the first tier that produces one:
// exact, then near (one ingredient missing, steps withheld), then fuzzy.
// When every tier fails it returns the sentinel built by NoResult.
func (s *MatchingService) MatchBest(userIngredients []string, recipes []domain.Recipe) domain.MatchResult {
	user := NormalizeSet(userIngredients)

	candidates := make([]candidate, len(recipes))
	for i, recipe := range recipes {
		candidates[i] = candidate{recipe: recipe, ingredients: NormalizeSet(recipe.Ingredients)}
	}

	if result, ok := s.exactPass(candidates, user); ok {
		return s.logBest(result)
	}
	if result, ok := s.nearPass(candidates, user); ok {
		return s.logBest(result)
	}
	if result, ok := s.fuzzyPass(candidates, user); ok {
		return s.logBest(result)
	}

	return s.logBest(NoResult())
}

func (s *MatchingService) exactPass(candidates []candidate, user IngredientSet) (domain.MatchResult, bool) {
	for _, c := range candidates {
		if missing := c.ingredients.Minus(user); len(missing) == 0 {
			return domain.MatchResult{
				Recipe:  c.recipe.Clone(),
				Missing: missing,
				Tier:    domain.TierExact,
			}, true
		}
	}
	return domain.MatchResult{}, false
}

func (s *MatchingService) nearPass(candidates []candidate, user IngredientSet) (domain.MatchResult, bool) {
	for _, c := range candidates {
		if missing := c.ingredients.Minus(user); len(missing) == nearMissingCount {
			return withheld(domain.MatchResult{
				Recipe:  c.recipe.Clone(),
				Missing: missing,
				Tier:    domain.TierNear,
			}), true
		}
	}
	return domain.MatchResult{}, false
}

// fuzzyPass accepts the first recipe where all but at most one ingredient has an
// approximate partner among the user's ingredients.
func (s *MatchingService) fuzzyPass(candidates []candidate, user IngredientSet) (domain.MatchResult, bool) {
	for _, c := range candidates {
		missing := make([]string, 0)
		matched := 0
		for _, ingredient := range c.ingredients.order {
			if s.hasApproximate(ingredient, user) {
				matched++
			} else {
				missing = append(missing, ingredient)
			}
		}

		if s.enableDebugLogging {
			s.log.Debug().
				Str("recipe", c.recipe.Name).
				Int("matched", matched).
				Int("ingredients", c.ingredients.Len()).
				Msg("fuzzy candidate")
		}

		if matched >= c.ingredients.Len()-1 {
			result := domain.MatchResult{
				Recipe:  c.recipe.Clone(),
				Missing: missing,
				Tier:    domain.TierFuzzy,
			}
			if len(missing) > 0 {
				result = withheld(result)
			}
			return result, true
		}
	}
	return domain.MatchResult{}, false
}

// hasApproximate reports whether any user ingredient is similar enough to ingredient
func (s *MatchingService) hasApproximate(ingredient string, user IngredientSet) bool {
	for _, have := range user.order {
		if Similarity(ingredient, have) >= s.fuzzyThreshold {
			return true
		}
	}
	return false
}

func (s *MatchingService) logBest(result domain.MatchResult) domain.MatchResult {
	if s.enableDebugLogging {
		s.log.Debug().
			Str("recipe", result.Recipe.Name).
			Str("tier", string(result.Tier)).
			Strs("missing", result.Missing).
			Msg("best match")
	}
	return result
}

// withheld replaces the steps with a placeholder: a recipe with a gap is not ready to cook
func withheld(result domain.MatchResult) domain.MatchResult {
	result.Recipe.Steps = []string{WithheldStepsMessage}
	result.StepsWithheld = true
	return result
}

// NoResult returns the renderable sentinel used when no tier matches
func NoResult() domain.MatchResult {
	return domain.MatchResult{
		Recipe: domain.Recipe{
			Name:        NoResultMessage,
			Ingredients: []string{},
			Steps:       []string{},
		},
		Missing: []string{},
		Tier:    domain.TierNone,
	}
}

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)) measured in runes.
// Identical strings, including two empty ones, score 1.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// SortByMissing orders results by how many ingredients are missing, fewest first.
// The sort is stable, so equally complete recipes keep catalog order.
func SortByMissing(results []domain.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return len(results[i].Missing) < len(results[j].Missing)
	})
}
