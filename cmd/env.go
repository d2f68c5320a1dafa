package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/dealfit/internal/scoring"
	"github.com/sells-group/dealfit/internal/store"
)

// openStore opens the configured store backend.
func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite":
		return store.NewSQLite(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// newEngine builds a scoring engine from config, loading weight profiles
// when a profile file is configured.
func newEngine(s store.Store, persist bool) (*scoring.Engine, error) {
	opts := []scoring.Option{
		scoring.WithWeights(scoring.Weights{
			Geography:  cfg.Scoring.DefaultWeights.Geography,
			Size:       cfg.Scoring.DefaultWeights.Size,
			ServiceMix: cfg.Scoring.DefaultWeights.ServiceMix,
			OwnerGoals: cfg.Scoring.DefaultWeights.OwnerGoals,
		}),
		scoring.WithConcurrency(cfg.Scoring.Concurrency),
		scoring.WithPersist(persist),
	}

	if cfg.Scoring.WeightProfiles != "" {
		profiles, err := scoring.LoadWeightProfiles(cfg.Scoring.WeightProfiles)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scoring.WithProfiles(profiles))
	}

	return scoring.NewEngine(s, opts...), nil
}
