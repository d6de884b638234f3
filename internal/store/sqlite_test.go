package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestSQLiteStore(t)
	ctx := context.Background()

	a := sampleAssessment()
	feed := []model.FeedItem{
		{Severity: model.SeverityHigh, Category: model.CategoryRelatedParty, Code: "KRG-04", Title: "Exposure", CriterionID: 4, RelatedCriterionIDs: []int{5}},
	}

	require.NoError(t, s.SaveAssessment(ctx, a, feed))

	got, gotFeed, err := s.GetAssessment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.TaxpayerRef, got.TaxpayerRef)
	assert.Equal(t, a.PeriodRef, got.PeriodRef)
	assert.Equal(t, a.TotalScore, got.TotalScore)
	assert.Equal(t, a.RiskLevel, got.RiskLevel)
	require.Len(t, gotFeed, 1)
	assert.Equal(t, []int{5}, gotFeed[0].RelatedCriterionIDs)
}

func TestSQLiteStore_GetAssessment_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestSQLiteStore(t)
	_, _, err := s.GetAssessment(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get assessment")
}

func TestSQLiteStore_ListAssessments(t *testing.T) {
	t.Parallel()

	s := newTestSQLiteStore(t)
	ctx := context.Background()

	low := sampleAssessment()
	low.ID = "a-low"
	low.TaxpayerRef = "HU11111111"
	low.RiskLevel = model.RiskLow

	high := sampleAssessment()
	high.ID = "a-high"
	high.RiskLevel = model.RiskHigh
	high.AssessedAt = high.AssessedAt.Add(time.Second)

	require.NoError(t, s.SaveAssessment(ctx, low, nil))
	require.NoError(t, s.SaveAssessment(ctx, high, nil))

	t.Run("unfiltered returns newest first", func(t *testing.T) {
		list, err := s.ListAssessments(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "a-high", list[0].ID)
	})

	t.Run("filter by taxpayer", func(t *testing.T) {
		list, err := s.ListAssessments(ctx, Filter{TaxpayerRef: "HU11111111"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "a-low", list[0].ID)
	})

	t.Run("filter by risk level", func(t *testing.T) {
		list, err := s.ListAssessments(ctx, Filter{RiskLevel: model.RiskHigh})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "a-high", list[0].ID)
	})

	t.Run("limit applies", func(t *testing.T) {
		list, err := s.ListAssessments(ctx, Filter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("offset skips", func(t *testing.T) {
		list, err := s.ListAssessments(ctx, Filter{Limit: 10, Offset: 1})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "a-low", list[0].ID)
	})
}

func TestSQLiteStore_Ping(t *testing.T) {
	t.Parallel()

	s := newTestSQLiteStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("sqlite driver", func(t *testing.T) {
		t.Parallel()
		s, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "o.db"), nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &SQLiteStore{}, s)
	})

	t.Run("empty driver defaults to sqlite", func(t *testing.T) {
		t.Parallel()
		s, err := Open(context.Background(), "", filepath.Join(t.TempDir(), "o.db"), nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &SQLiteStore{}, s)
	})

	t.Run("unknown driver errors", func(t *testing.T) {
		t.Parallel()
		_, err := Open(context.Background(), "oracle", "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown driver")
	})
}
