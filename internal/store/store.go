package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

// Filter specifies criteria for listing stored assessments.
type Filter struct {
	TaxpayerRef string          `json:"taxpayer_ref,omitempty"`
	RiskLevel   model.RiskLevel `json:"risk_level,omitempty"`
	Limit       int             `json:"limit,omitempty"`
	Offset      int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for assessment results.
type Store interface {
	SaveAssessment(ctx context.Context, a *model.Assessment, feed []model.FeedItem) error
	GetAssessment(ctx context.Context, id string) (*model.Assessment, []model.FeedItem, error)
	ListAssessments(ctx context.Context, filter Filter) ([]model.Assessment, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds a Store from a driver name and DSN. Supported drivers
// are "sqlite" and "postgres".
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
