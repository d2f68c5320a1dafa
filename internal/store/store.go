// Package store persists trackers, deals, buyers, call intelligence, and
// buyer-deal scores. Two backends: Postgres (pgx) for production and
// SQLite for local work. Score writes are upserts scoped to the scoring
// columns only — the human-decision columns on buyer_deal_scores belong
// to the outreach workflow and are never touched here.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/dealfit/internal/model"
)

// Sentinel errors for the not-found taxonomy. A missing deal or tracker
// fails the whole scoring request; callers test with eris.Is.
var (
	ErrDealNotFound    = eris.New("store: deal not found")
	ErrTrackerNotFound = eris.New("store: tracker not found")
)

// Store is the persistence interface consumed by the scoring engine.
type Store interface {
	GetDeal(ctx context.Context, id string) (*model.Deal, error)
	GetTracker(ctx context.Context, id string) (*model.Tracker, error)

	// ListBuyers returns the tracker's buyers; a non-empty buyerIDs
	// restricts to that subset.
	ListBuyers(ctx context.Context, trackerID string, buyerIDs []string) ([]model.Buyer, error)

	// ListCallIntelligence returns all call records for a deal.
	ListCallIntelligence(ctx context.Context, dealID string) ([]model.CallIntelligence, error)

	// UpsertScore writes one score row keyed on (buyer_id, deal_id),
	// updating only the scoring-derived columns on conflict.
	UpsertScore(ctx context.Context, row *model.BuyerDealScore) error

	Migrate(ctx context.Context) error
	Close() error
}
