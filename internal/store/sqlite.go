package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/dealfit/internal/model"
)

// SQLiteStore implements Store on modernc.org/sqlite for local use.
// Arrays and extracted data are stored as JSON-encoded TEXT.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path, configures WAL
// mode, and applies the schema.
func NewSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "store: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: sqlite %s", pragma)
		}
	}
	s := &SQLiteStore{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return eris.Wrap(err, "store: migrate sqlite")
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetDeal(ctx context.Context, id string) (*model.Deal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, tracker_id, name, revenue, ebitda_amount, ebitda_percentage,
		       location_count, geography, headquarters, service_mix,
		       business_model, owner_goals, industry_type
		FROM deals WHERE id = ?`, id)

	var d model.Deal
	var geography string
	err := row.Scan(
		&d.ID, &d.TrackerID, &d.Name, &d.Revenue, &d.EBITDAAmount,
		&d.EBITDAPercentage, &d.LocationCount, &geography, &d.Headquarters,
		&d.ServiceMix, &d.BusinessModel, &d.OwnerGoals, &d.IndustryType,
	)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrDealNotFound, "id %s", id)
		}
		return nil, eris.Wrapf(err, "store: get deal %s", id)
	}
	if err := decodeJSONList(geography, &d.Geography); err != nil {
		return nil, eris.Wrapf(err, "store: deal %s geography", id)
	}
	return &d, nil
}

func (s *SQLiteStore) GetTracker(ctx context.Context, id string) (*model.Tracker, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, industry, geography_weight, size_weight,
		       service_mix_weight, owner_goals_weight
		FROM trackers WHERE id = ?`, id)

	var t model.Tracker
	err := row.Scan(
		&t.ID, &t.Name, &t.Industry, &t.GeographyWeight, &t.SizeWeight,
		&t.ServiceMixWeight, &t.OwnerGoalsWeight,
	)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrTrackerNotFound, "id %s", id)
		}
		return nil, eris.Wrapf(err, "store: get tracker %s", id)
	}
	return &t, nil
}

func (s *SQLiteStore) ListBuyers(ctx context.Context, trackerID string, buyerIDs []string) ([]model.Buyer, error) {
	query := `
		SELECT id, tracker_id, pe_firm_name, platform_company_name,
		       hq_state, hq_city, target_geographies, geographic_footprint,
		       service_regions, geographic_exclusions, min_revenue, max_revenue,
		       revenue_sweet_spot, min_ebitda, max_ebitda, ebitda_sweet_spot,
		       services_offered, target_services, service_mix_prefs,
		       industry_exclusions, owner_transition_goals, owner_roll_requirement,
		       thesis_summary, key_quotes, business_model_prefs,
		       business_model_exclusions, acquisition_appetite,
		       acquisition_frequency, total_acquisitions, last_acquisition_date,
		       deal_breakers
		FROM buyers WHERE tracker_id = ?`
	args := []any{trackerID}
	if len(buyerIDs) > 0 {
		query += ` AND id IN (?` + strings.Repeat(",?", len(buyerIDs)-1) + `)`
		for _, id := range buyerIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY pe_firm_name, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrapf(err, "store: list buyers for tracker %s", trackerID)
	}
	defer rows.Close()

	var buyers []model.Buyer
	for rows.Next() {
		var b model.Buyer
		var targetGeos, footprint, regions, exclusions, targetSvcs, indExcl, quotes, breakers string
		err := rows.Scan(
			&b.ID, &b.TrackerID, &b.PEFirmName, &b.PlatformCompanyName,
			&b.HQState, &b.HQCity, &targetGeos, &footprint,
			&regions, &exclusions, &b.MinRevenue, &b.MaxRevenue,
			&b.RevenueSweetSpot, &b.MinEBITDA, &b.MaxEBITDA, &b.EBITDASweetSpot,
			&b.ServicesOffered, &targetSvcs, &b.ServiceMixPrefs,
			&indExcl, &b.OwnerTransitionGoals, &b.OwnerRollRequirement,
			&b.ThesisSummary, &quotes, &b.BusinessModelPrefs,
			&b.BusinessModelExclusions, &b.AcquisitionAppetite,
			&b.AcquisitionFrequency, &b.TotalAcquisitions, &b.LastAcquisitionDate,
			&breakers,
		)
		if err != nil {
			return nil, eris.Wrap(err, "store: scan buyer")
		}
		for _, pair := range []struct {
			raw  string
			dest *[]string
		}{
			{targetGeos, &b.TargetGeographies},
			{footprint, &b.GeographicFootprint},
			{regions, &b.ServiceRegions},
			{exclusions, &b.GeographicExclusions},
			{targetSvcs, &b.TargetServices},
			{indExcl, &b.IndustryExclusions},
			{quotes, &b.KeyQuotes},
			{breakers, &b.DealBreakers},
		} {
			if err := decodeJSONList(pair.raw, pair.dest); err != nil {
				return nil, eris.Wrapf(err, "store: buyer %s list column", b.ID)
			}
		}
		buyers = append(buyers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate buyers")
	}
	return buyers, nil
}

func (s *SQLiteStore) ListCallIntelligence(ctx context.Context, dealID string) ([]model.CallIntelligence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, deal_id, buyer_id, call_summary, key_takeaways, extracted_data
		FROM call_intelligence WHERE deal_id = ? ORDER BY created_at, id`, dealID)
	if err != nil {
		return nil, eris.Wrapf(err, "store: list call intelligence for deal %s", dealID)
	}
	defer rows.Close()

	var calls []model.CallIntelligence
	for rows.Next() {
		var c model.CallIntelligence
		var takeaways string
		var extracted sql.NullString
		if err := rows.Scan(&c.ID, &c.DealID, &c.BuyerID, &c.CallSummary, &takeaways, &extracted); err != nil {
			return nil, eris.Wrap(err, "store: scan call intelligence")
		}
		if err := decodeJSONList(takeaways, &c.KeyTakeaways); err != nil {
			return nil, eris.Wrapf(err, "store: call %s takeaways", c.ID)
		}
		if extracted.Valid && extracted.String != "" {
			if err := json.Unmarshal([]byte(extracted.String), &c.ExtractedData); err != nil {
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

func (s *SQLiteStore) UpsertScore(ctx context.Context, row *model.BuyerDealScore) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO buyer_deal_scores (
			id, buyer_id, deal_id, composite_score, geography_score,
			service_score, acquisition_score, portfolio_score, thesis_bonus,
			fit_reasoning, data_completeness, scored_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (buyer_id, deal_id) DO UPDATE SET
			composite_score   = excluded.composite_score,
			geography_score   = excluded.geography_score,
			service_score     = excluded.service_score,
			acquisition_score = excluded.acquisition_score,
			portfolio_score   = excluded.portfolio_score,
			thesis_bonus      = excluded.thesis_bonus,
			fit_reasoning     = excluded.fit_reasoning,
			data_completeness = excluded.data_completeness,
			scored_at         = excluded.scored_at`,
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

// decodeJSONList decodes a JSON-encoded string array, treating "" as empty.
func decodeJSONList(raw string, dest *[]string) error {
	if raw == "" || raw == "[]" {
		*dest = nil
		return nil
	}
	return json.Unmarshal([]byte(raw), dest)
}
