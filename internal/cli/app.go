package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/chefood/backend/config"
	"github.com/chefood/backend/internal/domain"
	"github.com/chefood/backend/internal/infrastructure/cache"
	"github.com/chefood/backend/internal/infrastructure/catalog"
	"github.com/chefood/backend/internal/logging"
	"github.com/chefood/backend/internal/usecase"
)

// app wires configuration, catalog, cache and services for one command run.
type app struct {
	cfg         *config.Config
	log         zerolog.Logger
	catalog     *catalog.Catalog
	cache       *cache.MemoryCache
	recommender *usecase.RecommendationService
	mode        domain.Mode
}

func newApp(configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	mode, err := domain.ParseMode(cfg.Matcher.Mode)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		catalog: catalog.Load(cfg.Catalog.Path, logging.Component(log, "catalog")),
		mode:    mode,
	}

	matcher := usecase.NewMatchingService(
		usecase.MatchConfig{
			FuzzyThreshold:     cfg.Matcher.FuzzyThreshold,
			EnableDebugLogging: cfg.Matcher.EnableDebugLogging,
		},
		logging.Component(log, "matcher"),
	)

	// A nil repository disables caching in the recommendation service.
	var repo domain.CacheRepository
	if cfg.Cache.Enabled {
		a.cache = cache.NewMemoryCache(cfg.Cache.CleanupInterval)
		repo = a.cache
	}

	a.recommender = usecase.NewRecommendationService(
		a.catalog,
		repo,
		matcher,
		usecase.RecommendationConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Matcher.EnableDebugLogging,
		},
		logging.Component(log, "recommender"),
	)

	log.Debug().
		Str("catalog", a.catalog.Source()).
		Int("recipes", a.catalog.Len()).
		Str("mode", string(mode)).
		Float64("fuzzy_threshold", cfg.Matcher.FuzzyThreshold).
		Bool("cache", cfg.Cache.Enabled).
		Msg("chefood ready")

	return a, nil
}

// Close releases background resources.
func (a *app) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}

// resolveMode prefers an explicit flag value over the configured mode.
func (a *app) resolveMode(flag string) (domain.Mode, error) {
	if flag == "" {
		return a.mode, nil
	}
	return domain.ParseMode(flag)
}
