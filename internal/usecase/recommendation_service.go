package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chefood/backend/internal/domain"
)

const defaultCacheTTL = 10 * time.Minute

// RecommendationConfig holds configuration for the recommendation service
type RecommendationConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// RecommendationService answers ingredient queries against the catalog.
// Flow: check cache -> match against catalog -> cache -> return
type RecommendationService struct {
	catalog            domain.CatalogReader
	cache              domain.CacheRepository
	matcher            *MatchingService
	cacheTTL           time.Duration
	enableDebugLogging bool
	log                zerolog.Logger
}

// NewRecommendationService creates a new recommendation service. cache may be nil to
// disable result caching.
func NewRecommendationService(
	catalog domain.CatalogReader,
	cache domain.CacheRepository,
	matcher *MatchingService,
	config RecommendationConfig,
	log zerolog.Logger,
) *RecommendationService {
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	return &RecommendationService{
		catalog:            catalog,
		cache:              cache,
		matcher:            matcher,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
		log:                log,
	}
}

// Recommend matches the raw ingredients against the catalog using mode.
// The returned results are fresh values owned by the caller.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	rawIngredients []string,
	mode domain.Mode,
) ([]domain.MatchResult, error) {
	if _, err := domain.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	log := s.log
	if s.enableDebugLogging {
		log = s.log.With().Str("query_id", uuid.NewString()).Logger()
	}

	cacheKey := s.generateCacheKey(rawIngredients, mode)

	// Try cache first
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		if s.enableDebugLogging {
			log.Debug().Str("key", cacheKey).Int("results", len(cached)).Msg("cache hit")
		}
		return cached, nil
	}

	results, err := s.matcher.Match(rawIngredients, s.catalog.Recipes(), mode)
	if err != nil {
		return nil, err
	}

	if err := s.setInCache(ctx, cacheKey, results); err != nil {
		// Caching is best effort; the query itself succeeded.
		log.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache recommendation")
	}

	if s.enableDebugLogging {
		log.Debug().
			Str("mode", string(mode)).
			Str("key", cacheKey).
			Int("catalog", s.catalog.Len()).
			Int("results", len(results)).
			Msg("recommendation computed")
	}

	return results, nil
}

// Best returns the single first-best recommendation. The result is the sentinel when
// nothing matches.
func (s *RecommendationService) Best(ctx context.Context, rawIngredients []string) (domain.MatchResult, error) {
	results, err := s.Recommend(ctx, rawIngredients, domain.ModeBest)
	if err != nil {
		return domain.MatchResult{}, err
	}
	if len(results) == 0 {
		return NoResult(), nil
	}
	return results[0], nil
}

// generateCacheKey creates a key that is independent of spelling variants the
// normalizer folds together and of input order.
// Format: "recommend:{mode}:{JSON list of sorted normalized ingredients}"
func (s *RecommendationService) generateCacheKey(rawIngredients []string, mode domain.Mode) string {
	return fmt.Sprintf("recommend:%s:%s", mode, NormalizeSet(rawIngredients).Key())
}

func (s *RecommendationService) getFromCache(ctx context.Context, key string) ([]domain.MatchResult, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var results []domain.MatchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheMiss, err)
	}
	return results, nil
}

func (s *RecommendationService) setInCache(ctx context.Context, key string, results []domain.MatchResult) error {
	if s.cache == nil {
		return nil
	}

	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}
