package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id                TEXT PRIMARY KEY,
	taxpayer_ref      TEXT NOT NULL,
	period_ref        TEXT NOT NULL,
	assessed_at       DATETIME NOT NULL,
	catalogue_version TEXT NOT NULL,
	refdata_version   TEXT NOT NULL,
	risk_level        TEXT NOT NULL,
	total_score       REAL NOT NULL,
	payload           TEXT NOT NULL,
	feed              TEXT NOT NULL,
	created_at        DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_assessments_taxpayer_ref ON assessments(taxpayer_ref);
CREATE INDEX IF NOT EXISTS idx_assessments_risk_level ON assessments(risk_level);
CREATE INDEX IF NOT EXISTS idx_assessments_assessed_at ON assessments(assessed_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *model.Assessment, feed []model.FeedItem) error {
	payloadJSON, err := json.Marshal(a)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal assessment")
	}
	if feed == nil {
		feed = []model.FeedItem{}
	}
	feedJSON, err := json.Marshal(feed)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal feed")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, taxpayer_ref, period_ref, assessed_at, catalogue_version, refdata_version, risk_level, total_score, payload, feed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.TaxpayerRef, a.PeriodRef, a.AssessedAt, a.CatalogueVersion, a.RefDataVersion,
		string(a.RiskLevel), a.TotalScore, string(payloadJSON), string(feedJSON),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert assessment %s", a.ID)
	}
	return nil
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, []model.FeedItem, error) {
	var payloadJSON, feedJSON string

	err := s.db.QueryRowContext(ctx,
		`SELECT payload, feed FROM assessments WHERE id = ?`,
		id,
	).Scan(&payloadJSON, &feedJSON)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "sqlite: get assessment %s", id)
	}

	var a model.Assessment
	if err := json.Unmarshal([]byte(payloadJSON), &a); err != nil {
		return nil, nil, eris.Wrap(err, "sqlite: unmarshal assessment")
	}
	var feed []model.FeedItem
	if err := json.Unmarshal([]byte(feedJSON), &feed); err != nil {
		return nil, nil, eris.Wrap(err, "sqlite: unmarshal feed")
	}
	return &a, feed, nil
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, filter Filter) ([]model.Assessment, error) {
	query := `SELECT payload FROM assessments WHERE 1=1`
	args := []any{}

	if filter.TaxpayerRef != "" {
		query += ` AND taxpayer_ref = ?`
		args = append(args, filter.TaxpayerRef)
	}
	if filter.RiskLevel != "" {
		query += ` AND risk_level = ?`
		args = append(args, string(filter.RiskLevel))
	}
	query += ` ORDER BY assessed_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		var payloadJSON string
		if err := rows.Scan(&payloadJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan assessment")
		}
		var a model.Assessment
		if err := json.Unmarshal([]byte(payloadJSON), &a); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal assessment")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate assessments")
	}
	return out, nil
}
