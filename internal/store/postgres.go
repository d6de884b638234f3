package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs. Keeping it
// narrow lets tests substitute a mock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id                TEXT PRIMARY KEY,
	taxpayer_ref      TEXT NOT NULL,
	period_ref        TEXT NOT NULL,
	assessed_at       TIMESTAMPTZ NOT NULL,
	catalogue_version TEXT NOT NULL,
	refdata_version   TEXT NOT NULL,
	risk_level        TEXT NOT NULL,
	total_score       DOUBLE PRECISION NOT NULL,
	payload           JSONB NOT NULL,
	feed              JSONB NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assessments_taxpayer_ref ON assessments(taxpayer_ref);
CREATE INDEX IF NOT EXISTS idx_assessments_risk_level ON assessments(risk_level);
CREATE INDEX IF NOT EXISTS idx_assessments_assessed_at ON assessments(assessed_at DESC);
CREATE INDEX IF NOT EXISTS idx_assessments_taxpayer_period ON assessments(taxpayer_ref, period_ref);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, a *model.Assessment, feed []model.FeedItem) error {
	payloadJSON, err := json.Marshal(a)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal assessment")
	}
	if feed == nil {
		feed = []model.FeedItem{}
	}
	feedJSON, err := json.Marshal(feed)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal feed")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, taxpayer_ref, period_ref, assessed_at, catalogue_version, refdata_version, risk_level, total_score, payload, feed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.TaxpayerRef, a.PeriodRef, a.AssessedAt, a.CatalogueVersion, a.RefDataVersion,
		string(a.RiskLevel), a.TotalScore, payloadJSON, feedJSON,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: insert assessment %s", a.ID)
	}
	return nil
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, []model.FeedItem, error) {
	var payloadJSON, feedJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT payload, feed FROM assessments WHERE id = $1`,
		id,
	).Scan(&payloadJSON, &feedJSON)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "postgres: get assessment %s", id)
	}

	var a model.Assessment
	if err := json.Unmarshal(payloadJSON, &a); err != nil {
		return nil, nil, eris.Wrap(err, "postgres: unmarshal assessment")
	}
	var feed []model.FeedItem
	if err := json.Unmarshal(feedJSON, &feed); err != nil {
		return nil, nil, eris.Wrap(err, "postgres: unmarshal feed")
	}
	return &a, feed, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter Filter) ([]model.Assessment, error) {
	query := `SELECT payload FROM assessments WHERE true`
	args := []any{}
	argIdx := 1

	if filter.TaxpayerRef != "" {
		query += fmt.Sprintf(` AND taxpayer_ref = $%d`, argIdx)
		args = append(args, filter.TaxpayerRef)
		argIdx++
	}
	if filter.RiskLevel != "" {
		query += fmt.Sprintf(` AND risk_level = $%d`, argIdx)
		args = append(args, string(filter.RiskLevel))
		argIdx++
	}
	query += ` ORDER BY assessed_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		var payloadJSON []byte
		if err := rows.Scan(&payloadJSON); err != nil {
			return nil, eris.Wrap(err, "postgres: scan assessment")
		}
		var a model.Assessment
		if err := json.Unmarshal(payloadJSON, &a); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal assessment")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate assessments")
	}
	return out, nil
}
