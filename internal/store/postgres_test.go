package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func sampleAssessment() *model.Assessment {
	return &model.Assessment{
		ID:               "a-123",
		TaxpayerRef:      "HU12345678",
		PeriodRef:        "2025",
		AssessedAt:       time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		CatalogueVersion: "2026.1",
		RefDataVersion:   "builtin-2026.1",
		TotalScore:       41.2,
		MaxScore:         57,
		RiskLevel:        model.RiskMedium,
		Summary:          "test summary",
	}
}

func TestPostgresStore_SaveAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO assessments`).
		WithArgs("a-123", "HU12345678", "2025", pgxmock.AnyArg(), "2026.1", "builtin-2026.1",
			"MEDIUM", 41.2, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveAssessment(context.Background(), sampleAssessment(), []model.FeedItem{
		{Severity: model.SeverityHigh, Code: "KRG-04", CriterionID: 4},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAssessment_NilFeed(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO assessments`).
		WithArgs("a-123", "HU12345678", "2025", pgxmock.AnyArg(), "2026.1", "builtin-2026.1",
			"MEDIUM", 41.2, pgxmock.AnyArg(), []byte(`[]`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveAssessment(context.Background(), sampleAssessment(), nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	payload, err := json.Marshal(sampleAssessment())
	require.NoError(t, err)
	feedJSON := []byte(`[{"severity":"HIGH","category":"related_party","code":"KRG-04","title":"t","criterion_id":4}]`)

	mock.ExpectQuery(`SELECT payload, feed FROM assessments WHERE id = \$1`).
		WithArgs("a-123").
		WillReturnRows(pgxmock.NewRows([]string{"payload", "feed"}).AddRow(payload, feedJSON))

	a, feed, err := s.GetAssessment(context.Background(), "a-123")
	require.NoError(t, err)
	assert.Equal(t, "HU12345678", a.TaxpayerRef)
	assert.Equal(t, model.RiskMedium, a.RiskLevel)
	require.Len(t, feed, 1)
	assert.Equal(t, 4, feed[0].CriterionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT payload, feed FROM assessments WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, _, err := s.GetAssessment(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get assessment")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAssessments(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	payload, err := json.Marshal(sampleAssessment())
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT payload FROM assessments WHERE true AND taxpayer_ref = \$1 AND risk_level = \$2 ORDER BY assessed_at DESC LIMIT \$3`).
		WithArgs("HU12345678", "MEDIUM", 10).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	list, err := s.ListAssessments(context.Background(), Filter{
		TaxpayerRef: "HU12345678",
		RiskLevel:   model.RiskMedium,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a-123", list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAssessments_DefaultLimit(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT payload FROM assessments WHERE true ORDER BY assessed_at DESC LIMIT \$1`).
		WithArgs(100).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}))

	list, err := s.ListAssessments(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS assessments`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
