package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/dealfit/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromPool(mock), mock
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

func TestPostgresStore_GetDeal(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{
		"id", "tracker_id", "name", "revenue", "ebitda_amount",
		"ebitda_percentage", "location_count", "geography", "headquarters",
		"service_mix", "business_model", "owner_goals", "industry_type",
	}).AddRow(
		"d1", "t1", "Gulf Coast HVAC", ptrFloat64(15), nil,
		ptrFloat64(20), ptrInt(5), []string{"TX", "OK"}, "Houston, TX",
		"hvac installation", "b2b", "retire", "hvac",
	)
	mock.ExpectQuery("FROM deals").WithArgs("d1").WillReturnRows(rows)

	deal, err := s.GetDeal(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "Gulf Coast HVAC", deal.Name)
	assert.Equal(t, "t1", deal.TrackerID)
	assert.Equal(t, []string{"TX", "OK"}, deal.Geography)
	require.NotNil(t, deal.Revenue)
	assert.Equal(t, 15.0, *deal.Revenue)
	assert.Nil(t, deal.EBITDAAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetDeal_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("FROM deals").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err := s.GetDeal(context.Background(), "missing")
	assert.True(t, eris.Is(err, ErrDealNotFound))
}

func TestPostgresStore_GetTracker(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{
		"id", "name", "industry", "geography_weight", "size_weight",
		"service_mix_weight", "owner_goals_weight",
	}).AddRow("t1", "HVAC Tracker", "hvac", ptrInt(30), nil, nil, nil)
	mock.ExpectQuery("FROM trackers").WithArgs("t1").WillReturnRows(rows)

	tracker, err := s.GetTracker(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "hvac", tracker.Industry)
	require.NotNil(t, tracker.GeographyWeight)
	assert.Equal(t, 30, *tracker.GeographyWeight)
	assert.Nil(t, tracker.SizeWeight)
}

func TestPostgresStore_GetTracker_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("FROM trackers").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err := s.GetTracker(context.Background(), "missing")
	assert.True(t, eris.Is(err, ErrTrackerNotFound))
}

func TestPostgresStore_ListCallIntelligence(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{
		"id", "deal_id", "buyer_id", "call_summary", "key_takeaways", "extracted_data",
	}).
		AddRow("c1", "d1", nil, "intro call", []string{"asked for financials"}, []byte(`{"sentiment":"positive"}`)).
		AddRow("c2", "d1", nil, "follow up", []string(nil), []byte(nil))
	mock.ExpectQuery("FROM call_intelligence").WithArgs("d1").WillReturnRows(rows)

	calls, err := s.ListCallIntelligence(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "positive", calls[0].ExtractedData["sentiment"])
	assert.Nil(t, calls[1].ExtractedData)
}

func TestPostgresStore_UpsertScore(t *testing.T) {
	s, mock := newMockStore(t)

	scoredAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	row := &model.BuyerDealScore{
		BuyerID:          "b1",
		DealID:           "d1",
		CompositeScore:   82,
		GeographyScore:   95,
		ServiceScore:     77,
		AcquisitionScore: 90,
		PortfolioScore:   65,
		ThesisBonus:      20,
		FitReasoning:     "Strong fit",
		DataCompleteness: model.CompletenessHigh,
		ScoredAt:         scoredAt,
	}

	mock.ExpectExec("INSERT INTO buyer_deal_scores").
		WithArgs(pgxmock.AnyArg(), "b1", "d1", 82, 95, 77, 90, 65, 20, "Strong fit", "High", scoredAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.UpsertScore(context.Background(), row))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertScore_OnlyScoringColumns(t *testing.T) {
	// The conflict clause must never touch the outreach workflow's
	// decision columns.
	for _, col := range []string{"approved", "passed", "hidden", "override_score"} {
		assert.NotContains(t, upsertScoreSQL, col)
	}
	assert.Contains(t, upsertScoreSQL, "ON CONFLICT (buyer_id, deal_id) DO UPDATE")
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS trackers").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
}
