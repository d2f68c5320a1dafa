package scoring

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/dealfit/internal/model"
	"github.com/sells-group/dealfit/internal/store"
)

const defaultConcurrency = 8

// Engine loads a deal and its tracker's buyers, scores every buyer
// against the deal, and optionally persists the results.
type Engine struct {
	store       store.Store
	fallback    Weights
	profiles    map[string]Weights
	concurrency int
	persist     bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights sets the fallback weights used when the tracker leaves a
// weight unset.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.fallback = w }
}

// WithProfiles registers per-industry weight profiles. A profile keyed
// by the tracker's industry replaces the fallback before tracker
// overrides apply.
func WithProfiles(profiles map[string]Weights) Option {
	return func(e *Engine) { e.profiles = profiles }
}

// WithConcurrency bounds the per-buyer scoring fan-out.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithPersist toggles writing results to the store after scoring.
func WithPersist(persist bool) Option {
	return func(e *Engine) { e.persist = persist }
}

// NewEngine builds an Engine over the given store.
func NewEngine(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:       s,
		fallback:    DefaultWeights(),
		concurrency: defaultConcurrency,
		persist:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request identifies a scoring run: one deal, optionally restricted to a
// subset of the tracker's buyers.
type Request struct {
	DealID   string
	BuyerIDs []string
}

// Result is the outcome of a scoring run. Scores are sorted with
// disqualified buyers last, then by composite descending.
type Result struct {
	DealID             string              `json:"dealId"`
	DealName           string              `json:"dealName"`
	DealAttractiveness int                 `json:"dealAttractiveness"`
	Scores             []model.BuyerScore  `json:"scores"`
	Summary            Summary             `json:"summary"`
	PersistResults     []PersistResult     `json:"-"`
	ScoredAt           time.Time           `json:"scoredAt"`
}

// Summary bands the run's composites for reporting.
type Summary struct {
	Total          int `json:"total"`
	StrongFit      int `json:"strongFit"`
	ModerateFit    int `json:"moderateFit"`
	LongShot       int `json:"longShot"`
	Disqualified   int `json:"disqualified"`
	WithEngagement int `json:"withEngagement"`
}

// PersistResult records the per-buyer outcome of the persistence pass.
// A nil Err means the row was written.
type PersistResult struct {
	BuyerID string
	Err     error
}

// Score runs the full pipeline for one request. A missing deal or
// tracker fails the run; a call-intelligence read failure degrades to
// scoring without engagement signals. Persistence is best-effort per
// row: one failed upsert never discards the scored results.
func (e *Engine) Score(ctx context.Context, req Request) (*Result, error) {
	log := zap.L().With(zap.String("deal_id", req.DealID))

	deal, err := e.store.GetDeal(ctx, req.DealID)
	if err != nil {
		return nil, err
	}
	tracker, err := e.store.GetTracker(ctx, deal.TrackerID)
	if err != nil {
		return nil, err
	}
	buyers, err := e.store.ListBuyers(ctx, deal.TrackerID, req.BuyerIDs)
	if err != nil {
		return nil, err
	}
	if len(buyers) == 0 {
		return nil, eris.Errorf("scoring: no buyers on tracker %s", deal.TrackerID)
	}

	allCalls, err := e.store.ListCallIntelligence(ctx, req.DealID)
	if err != nil {
		log.Warn("call intelligence unavailable, scoring without engagement",
			zap.Error(err))
		allCalls = nil
	}
	callsByBuyer := groupCalls(allCalls)

	weights := e.weightsFor(tracker)
	attractiveness := DealAttractiveness(deal)
	now := time.Now().UTC()

	log.Info("scoring buyers",
		zap.Int("buyers", len(buyers)),
		zap.Int("calls", len(allCalls)),
		zap.Int("deal_attractiveness", attractiveness),
	)

	scores := make([]model.BuyerScore, len(buyers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := range buyers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			buyer := &buyers[i]
			calls := append(callsByBuyer[buyer.ID], callsByBuyer[""]...)
			scores[i] = ScoreBuyer(deal, buyer, weights, calls, attractiveness, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "scoring: buyer fan-out")
	}

	SortScores(scores)

	result := &Result{
		DealID:             req.DealID,
		DealName:           deal.Name,
		DealAttractiveness: attractiveness,
		Scores:             scores,
		Summary:            summarize(scores),
		ScoredAt:           now,
	}

	if e.persist {
		result.PersistResults = e.persistScores(ctx, req.DealID, scores, now, log)
	}

	log.Info("scoring complete",
		zap.Int("strong_fit", result.Summary.StrongFit),
		zap.Int("disqualified", result.Summary.Disqualified),
	)
	return result, nil
}

// weightsFor resolves the effective weights: fallback, then the industry
// profile when one matches, then tracker overrides.
func (e *Engine) weightsFor(tracker *model.Tracker) Weights {
	w := e.fallback
	if profile, ok := e.profiles[strings.ToLower(strings.TrimSpace(tracker.Industry))]; ok {
		w = profile
	}
	return w.Resolve(tracker)
}

func (e *Engine) persistScores(ctx context.Context, dealID string, scores []model.BuyerScore, scoredAt time.Time, log *zap.Logger) []PersistResult {
	results := make([]PersistResult, 0, len(scores))
	for _, s := range scores {
		err := e.store.UpsertScore(ctx, ToRow(dealID, s, scoredAt))
		if err != nil {
			log.Warn("score upsert failed",
				zap.String("buyer_id", s.BuyerID),
				zap.Error(err))
		}
		results = append(results, PersistResult{BuyerID: s.BuyerID, Err: err})
	}
	return results
}

// groupCalls indexes call records by buyer. Calls with no buyer
// attribution apply to every buyer and live under the empty key.
func groupCalls(calls []model.CallIntelligence) map[string][]model.CallIntelligence {
	if len(calls) == 0 {
		return nil
	}
	byBuyer := make(map[string][]model.CallIntelligence)
	for _, c := range calls {
		key := ""
		if c.BuyerID != nil {
			key = *c.BuyerID
		}
		byBuyer[key] = append(byBuyer[key], c)
	}
	return byBuyer
}

func summarize(scores []model.BuyerScore) Summary {
	var s Summary
	s.Total = len(scores)
	for _, sc := range scores {
		switch {
		case sc.IsDisqualified:
			s.Disqualified++
		case sc.CompositeScore >= 75:
			s.StrongFit++
		case sc.CompositeScore >= 50:
			s.ModerateFit++
		default:
			// Includes a qualified buyer at composite 0: every score
			// lands in exactly one band so the counts sum to Total.
			s.LongShot++
		}
		if sc.EngagementSignals.EngagementScore > 0 {
			s.WithEngagement++
		}
	}
	return s
}
