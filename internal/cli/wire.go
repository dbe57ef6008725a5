package cli

import (
	"fmt"
	"time"

	"github.com/tripwise/tripwise/internal/chat"
	"github.com/tripwise/tripwise/internal/config"
	"github.com/tripwise/tripwise/internal/funcreg"
	"github.com/tripwise/tripwise/internal/lexicon"
	"github.com/tripwise/tripwise/internal/llm"
	"github.com/tripwise/tripwise/internal/logging"
	"github.com/tripwise/tripwise/internal/moderation"
	"github.com/tripwise/tripwise/internal/session"
	"github.com/tripwise/tripwise/internal/travel"
)

// buildOrchestrator assembles the full conversation pipeline from config.
// The returned cleanup closes the session store.
func buildOrchestrator(cfg config.Config, log *logging.Logger) (*chat.Orchestrator, func(), error) {
	lx := lexicon.Default()
	if cfg.Lexicon.Path != "" {
		var err error
		lx, err = lexicon.LoadFile(cfg.Lexicon.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("loading lexicon: %w", err)
		}
		log.Info().Str("path", cfg.Lexicon.Path).Msg("using lexicon override")
	}

	matchers, err := lexicon.Compile(lx)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling lexicon: %w", err)
	}
	validator := moderation.NewValidator(matchers, lx.Suggestions, log)

	dataset := travel.Load(travel.DatasetPaths{
		Hotels:      cfg.Datasets.Hotels,
		Attractions: cfg.Datasets.Attractions,
		Templates:   cfg.Datasets.Templates,
	}, log)
	planner := travel.NewPlanner(dataset, log)

	registry := funcreg.NewRegistry(log)
	funcreg.RegisterTravelFunctions(registry, planner)

	client, err := buildModelClient(cfg.Model)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("provider", client.Name()).Str("model", cfg.Model.Name).Msg("model client ready")

	store, err := session.NewStore(session.Options{
		Driver:        cfg.Session.Store,
		SQLitePath:    cfg.Session.SQLitePath,
		RedisAddr:     cfg.Session.Redis.Addr,
		RedisPassword: cfg.Session.Redis.Password,
		RedisDB:       cfg.Session.Redis.DB,
		TTL:           time.Duration(cfg.Session.TTLHours) * time.Hour,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session store: %w", err)
	}

	orch := chat.New(store, validator, registry, client, planner, log)
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("closing session store failed")
		}
	}
	return orch, cleanup, nil
}

func buildModelClient(cfg config.ModelConfig) (llm.Client, error) {
	switch cfg.Provider {
	case "", "openai":
		return llm.NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Name), nil
	case "mock":
		return &llm.MockClient{ProviderName: "mock"}, nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
