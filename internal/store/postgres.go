package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/dealfit/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs; pgxmock satisfies
// it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects to the given database URL.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "store: connect postgres")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "store: ping postgres")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool (or mock).
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return eris.Wrap(err, "store: migrate postgres")
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const dealColumns = `id, tracker_id, name, revenue, ebitda_amount, ebitda_percentage,
	location_count, geography, headquarters, service_mix, business_model,
	owner_goals, industry_type`

func (s *PostgresStore) GetDeal(ctx context.Context, id string) (*model.Deal, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id)

	var d model.Deal
	err := row.Scan(
		&d.ID, &d.TrackerID, &d.Name, &d.Revenue, &d.EBITDAAmount,
		&d.EBITDAPercentage, &d.LocationCount, &d.Geography, &d.Headquarters,
		&d.ServiceMix, &d.BusinessModel, &d.OwnerGoals, &d.IndustryType,
	)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrDealNotFound, "id %s", id)
		}
		return nil, eris.Wrapf(err, "store: get deal %s", id)
	}
	return &d, nil
}

func (s *PostgresStore) GetTracker(ctx context.Context, id string) (*model.Tracker, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, industry, geography_weight, size_weight,
		       service_mix_weight, owner_goals_weight
		FROM trackers WHERE id = $1`, id)

	var t model.Tracker
	err := row.Scan(
		&t.ID, &t.Name, &t.Industry, &t.GeographyWeight, &t.SizeWeight,
		&t.ServiceMixWeight, &t.OwnerGoalsWeight,
	)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrTrackerNotFound, "id %s", id)
		}
		return nil, eris.Wrapf(err, "store: get tracker %s", id)
	}
	return &t, nil
}

const buyerColumns = `id, tracker_id, pe_firm_name, platform_company_name,
	hq_state, hq_city, target_geographies, geographic_footprint,
	service_regions, geographic_exclusions, min_revenue, max_revenue,
	revenue_sweet_spot, min_ebitda, max_ebitda, ebitda_sweet_spot,
	services_offered, target_services, service_mix_prefs, industry_exclusions,
	owner_transition_goals, owner_roll_requirement, thesis_summary, key_quotes,
	business_model_prefs, business_model_exclusions, acquisition_appetite,
	acquisition_frequency, total_acquisitions, last_acquisition_date,
	deal_breakers`

func (s *PostgresStore) ListBuyers(ctx context.Context, trackerID string, buyerIDs []string) ([]model.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE tracker_id = $1`
	args := []any{trackerID}
	if len(buyerIDs) > 0 {
		query += ` AND id = ANY($2)`
		args = append(args, buyerIDs)
	}
	query += ` ORDER BY pe_firm_name, id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrapf(err, "store: list buyers for tracker %s", trackerID)
	}
	defer rows.Close()

	var buyers []model.Buyer
	for rows.Next() {
		var b model.Buyer
		err := rows.Scan(
			&b.ID, &b.TrackerID, &b.PEFirmName, &b.PlatformCompanyName,
			&b.HQState, &b.HQCity, &b.TargetGeographies, &b.GeographicFootprint,
			&b.ServiceRegions, &b.GeographicExclusions, &b.MinRevenue, &b.MaxRevenue,
			&b.RevenueSweetSpot, &b.MinEBITDA, &b.MaxEBITDA, &b.EBITDASweetSpot,
			&b.ServicesOffered, &b.TargetServices, &b.ServiceMixPrefs, &b.IndustryExclusions,
			&b.OwnerTransitionGoals, &b.OwnerRollRequirement, &b.ThesisSummary, &b.KeyQuotes,
			&b.BusinessModelPrefs, &b.BusinessModelExclusions, &b.AcquisitionAppetite,
			&b.AcquisitionFrequency, &b.TotalAcquisitions, &b.LastAcquisitionDate,
			&b.DealBreakers,
		)
		if err != nil {
			return nil, eris.Wrap(err, "store: scan buyer")
		}
		buyers = append(buyers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate buyers")
	}
	return buyers, nil
}

func (s *PostgresStore) ListCallIntelligence(ctx context.Context, dealID string) ([]model.CallIntelligence, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, deal_id, buyer_id, call_summary, key_takeaways, extracted_data
		FROM call_intelligence WHERE deal_id = $1 ORDER BY created_at, id`, dealID)
	if err != nil {
		return nil, eris.Wrapf(err, "store: list call intelligence for deal %s", dealID)
	}
	defer rows.Close()

	var calls []model.CallIntelligence
	for rows.Next() {
		var c model.CallIntelligence
		var extracted []byte
		err := rows.Scan(&c.ID, &c.DealID, &c.BuyerID, &c.CallSummary, &c.KeyTakeaways, &extracted)
		if err != nil {
			return nil, eris.Wrap(err, "store: scan call intelligence")
		}
		if len(extracted) > 0 {
			if err := json.Unmarshal(extracted, &c.ExtractedData); err != nil {
				return nil, eris.Wrapf(err, "store: decode extracted data for call %s", c.ID)
			}
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate call intelligence")
	}
	return calls, nil
}

// upsertScoreSQL updates only the scoring-derived columns on conflict so
// repeat scoring runs never clobber the outreach workflow's decisions.
const upsertScoreSQL = `
INSERT INTO buyer_deal_scores (
	id, buyer_id, deal_id, composite_score, geography_score, service_score,
	acquisition_score, portfolio_score, thesis_bonus, fit_reasoning,
	data_completeness, scored_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (buyer_id, deal_id) DO UPDATE SET
	composite_score   = EXCLUDED.composite_score,
	geography_score   = EXCLUDED.geography_score,
	service_score     = EXCLUDED.service_score,
	acquisition_score = EXCLUDED.acquisition_score,
	portfolio_score   = EXCLUDED.portfolio_score,
	thesis_bonus      = EXCLUDED.thesis_bonus,
	fit_reasoning     = EXCLUDED.fit_reasoning,
	data_completeness = EXCLUDED.data_completeness,
	scored_at         = EXCLUDED.scored_at`

func (s *PostgresStore) UpsertScore(ctx context.Context, row *model.BuyerDealScore) error {
	_, err := s.pool.Exec(ctx, upsertScoreSQL,
		uuid.New().String(), row.BuyerID, row.DealID, row.CompositeScore,
		row.GeographyScore, row.ServiceScore, row.AcquisitionScore,
		row.PortfolioScore, row.ThesisBonus, row.FitReasoning,
		string(row.DataCompleteness), row.ScoredAt,
	)
	if err != nil {
		return eris.Wrapf(err, "store: upsert score for buyer %s deal %s", row.BuyerID, row.DealID)
	}
	return nil
}
