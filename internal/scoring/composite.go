package scoring

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sells-group/dealfit/internal/model"
)

// engagementBonusCap bounds the engagement bonus added to the composite.
const engagementBonusCap = 15.0

// Weights are the tracker-configured category sensitivities, integer
// percentages. Each weighted contribution divides by 100, NOT by the sum:
// weights summing over or under 100 scale the composite accordingly.
// That is intentional caller-configured behavior, not a bug.
type Weights struct {
	Geography  int `json:"geography" yaml:"geography"`
	Size       int `json:"size" yaml:"size"`
	ServiceMix int `json:"service_mix" yaml:"service_mix"`
	OwnerGoals int `json:"owner_goals" yaml:"owner_goals"`
}

// Resolve fills unset tracker weights from the fallback.
func (w Weights) Resolve(t *model.Tracker) Weights {
	out := w
	if t == nil {
		return out
	}
	if t.GeographyWeight != nil {
		out.Geography = *t.GeographyWeight
	}
	if t.SizeWeight != nil {
		out.Size = *t.SizeWeight
	}
	if t.ServiceMixWeight != nil {
		out.ServiceMix = *t.ServiceMixWeight
	}
	if t.OwnerGoalsWeight != nil {
		out.OwnerGoals = *t.OwnerGoalsWeight
	}
	return out
}

// DefaultWeights is the even split used when neither the tracker nor a
// weight profile specifies sensitivities.
func DefaultWeights() Weights {
	return Weights{Geography: 25, Size: 25, ServiceMix: 25, OwnerGoals: 25}
}

// ScoreBuyer runs the full per-buyer pipeline: engagement analysis, the
// four category scorers, bonuses, gating, and the overall reasoning.
// Pure with respect to its inputs; safe to fan out across buyers.
func ScoreBuyer(deal *model.Deal, buyer *model.Buyer, weights Weights, calls []model.CallIntelligence, attractiveness int, now time.Time) model.BuyerScore {
	eng := AnalyzeEngagement(calls)

	size, gate := ScoreSize(deal, buyer)
	geography := ScoreGeography(deal, buyer, attractiveness, eng)
	services := ScoreServices(deal, buyer)
	ownerGoals := ScoreOwnerGoals(deal, buyer)

	thesisBonus := ThesisBonus(buyer, now)
	engagementBonus := math.Min(engagementBonusCap, float64(eng.EngagementScore)*0.15)

	var dqReasons []string
	for _, cs := range []model.CategoryScore{size, geography, services} {
		if cs.IsDisqualified && cs.DisqualificationReason != "" {
			dqReasons = append(dqReasons, cs.DisqualificationReason)
		}
	}
	disqualified := len(dqReasons) > 0

	composite := 0
	if !disqualified {
		base := float64(size.Score)*float64(weights.Size)/100 +
			float64(geography.Score)*float64(weights.Geography)/100 +
			float64(services.Score)*float64(weights.ServiceMix)/100 +
			float64(ownerGoals.Score)*float64(weights.OwnerGoals)/100 +
			float64(thesisBonus)*0.3 +
			engagementBonus
		composite = clampScore(int(math.Round(base * gate.Multiplier)))
	}

	result := model.BuyerScore{
		BuyerID:                 buyer.ID,
		BuyerName:               buyer.DisplayName(),
		CompositeScore:          composite,
		Size:                    size,
		Geography:               geography,
		Services:                services,
		OwnerGoals:              ownerGoals,
		SizeMultiplier:          gate.Multiplier,
		ThesisBonus:             thesisBonus,
		EngagementBonus:         math.Round(engagementBonus*100) / 100,
		IsDisqualified:          disqualified,
		DisqualificationReasons: dqReasons,
		DataCompleteness:        DataCompleteness(deal, buyer),
		DealAttractiveness:      attractiveness,
		EngagementSignals:       eng,
	}
	result.OverallReasoning = overallReasoning(result, gate)
	return result
}

// overallReasoning selects the summary template for the result, appending
// the first engagement signal when present.
func overallReasoning(r model.BuyerScore, gate model.GatingFactor) string {
	var msg string
	switch {
	case r.IsDisqualified:
		msg = "Disqualified: " + r.DisqualificationReasons[0]
	case gate.Multiplier < 0.7:
		msg = fmt.Sprintf("Size constraints cap this match; composite held to %d despite category fit", r.CompositeScore)
	case r.CompositeScore >= 75:
		msg = fmt.Sprintf("Strong fit (%d): aligned on size, geography, and services", r.CompositeScore)
	case r.CompositeScore >= 50:
		msg = fmt.Sprintf("Moderate fit (%d): worth outreach with caveats", r.CompositeScore)
	default:
		msg = fmt.Sprintf("Long shot (%d): significant gaps across categories", r.CompositeScore)
	}
	if len(r.EngagementSignals.Signals) > 0 {
		msg += ". " + r.EngagementSignals.Signals[0]
	}
	return msg
}

// SortScores orders results for presentation and persistence: disqualified
// entries last; otherwise composite descending, with buyer ID as the
// deterministic tie-break.
func SortScores(scores []model.BuyerScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.IsDisqualified != b.IsDisqualified {
			return !a.IsDisqualified
		}
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		return a.BuyerID < b.BuyerID
	})
}

// ToRow converts a scoring result to its persisted shape. The size
// category persists as acquisition_score and owner-goals as
// portfolio_score; the rename is a persistence-boundary convention.
func ToRow(dealID string, s model.BuyerScore, scoredAt time.Time) *model.BuyerDealScore {
	return &model.BuyerDealScore{
		BuyerID:          s.BuyerID,
		DealID:           dealID,
		CompositeScore:   s.CompositeScore,
		GeographyScore:   s.Geography.Score,
		ServiceScore:     s.Services.Score,
		AcquisitionScore: s.Size.Score,
		PortfolioScore:   s.OwnerGoals.Score,
		ThesisBonus:      s.ThesisBonus,
		FitReasoning:     s.OverallReasoning,
		DataCompleteness: s.DataCompleteness,
		ScoredAt:         scoredAt,
	}
}
