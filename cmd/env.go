package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/taxrisk-cli/internal/assess"
	"github.com/sells-group/taxrisk-cli/internal/catalogue"
	"github.com/sells-group/taxrisk-cli/internal/refdata"
	"github.com/sells-group/taxrisk-cli/internal/store"
)

// engine bundles the assessor and its reference data cache for commands.
type engine struct {
	Assessor *assess.Assessor
	RefCache *refdata.Cache
}

// initEngine builds the reference data cache and assessor from config.
// When autoRefresh is true and a file source is configured, the cache
// re-reads it on the configured interval until ctx is cancelled.
func initEngine(ctx context.Context, lang string, autoRefresh bool) (*engine, error) {
	var provider refdata.Provider
	if cfg.RefData.Path != "" {
		provider = &refdata.FileProvider{Path: cfg.RefData.Path}
	} else {
		provider = refdata.Static{Snap: refdata.Builtin()}
	}

	cache, err := refdata.NewCache(ctx, provider)
	if err != nil {
		return nil, err
	}
	if autoRefresh && cfg.RefData.Path != "" && !cfg.RefData.DisableAutoRefresh {
		cache.Start(ctx, time.Duration(cfg.RefData.RefreshMinutes)*time.Minute)
	}

	if lang == "" {
		lang = cfg.Assess.Language
	}
	assessor, err := assess.NewAssessor(catalogue.Builtin(), cache, assess.WithLanguage(lang))
	if err != nil {
		return nil, err
	}
	return &engine{Assessor: assessor, RefCache: cache}, nil
}

// openStore opens the configured persistence backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	poolCfg := &store.PoolConfig{MaxConns: cfg.Store.MaxConns, MinConns: cfg.Store.MinConns}
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "store: migrate")
	}
	return st, nil
}
