package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/dealfit/internal/model"
)

// Size gate constants. The multiplier caps the achievable composite score
// independent of category weights; size mismatches must suppress the
// top-line score even when every other category is excellent.
const (
	maxSizeMultiplier = 1.05

	// More than 30% under the buyer's minimum is a hard disqualification;
	// inside the band the multiplier interpolates linearly.
	underMinHardFloor = 0.7
	// More than 50% over the buyer's maximum is a hard disqualification.
	overMaxHardCeil = 1.5
)

// isNationalPlatform heuristically detects buyers running a national
// roll-up: either a meaningful acquisition history or a footprint spread
// across more than three geographies.
func isNationalPlatform(b *model.Buyer) bool {
	if b.TotalAcquisitions != nil && *b.TotalAcquisitions > 5 {
		return true
	}
	return len(model.CleanList(b.TargetGeographies)) > 3 ||
		len(model.CleanList(b.GeographicFootprint)) > 3
}

// ScoreSize evaluates deal financials against the buyer's size criteria.
// It returns the category score plus the gating factor that later caps
// the composite.
func ScoreSize(deal *model.Deal, buyer *model.Buyer) (model.CategoryScore, model.GatingFactor) {
	hasThresholds := buyer.MinRevenue != nil || buyer.MaxRevenue != nil ||
		buyer.RevenueSweetSpot != nil || buyer.MinEBITDA != nil || buyer.MaxEBITDA != nil

	confidence := model.ConfidenceLow
	if hasThresholds {
		confidence = model.ConfidenceHigh
	}

	if deal.Revenue == nil || *deal.Revenue <= 0 {
		return model.CategoryScore{
			Score:      50,
			Reasoning:  "Deal revenue unknown; size fit cannot be assessed",
			Confidence: model.ConfidenceLow,
		}, model.GatingFactor{Multiplier: 1.0}
	}
	rev := *deal.Revenue

	if !hasThresholds {
		return model.CategoryScore{
			Score:      50,
			Reasoning:  "Buyer has no size criteria on file",
			Confidence: model.ConfidenceLow,
		}, model.GatingFactor{Multiplier: 1.0}
	}

	var reasons []string

	// Hard gate: far below minimum.
	if buyer.MinRevenue != nil && rev < *buyer.MinRevenue*underMinHardFloor {
		reason := fmt.Sprintf("Revenue $%.1fM is more than 30%% below buyer minimum of $%.1fM", rev, *buyer.MinRevenue)
		return model.CategoryScore{
			Score:                  0,
			Reasoning:              reason,
			IsDisqualified:         true,
			DisqualificationReason: reason,
			Confidence:             confidence,
		}, model.GatingFactor{Multiplier: 0}
	}

	// Soft band: under minimum but within 30%. Multiplier interpolates
	// 0.35 (at the hard floor) to 0.70 (at the minimum); score 25-55.
	if buyer.MinRevenue != nil && rev < *buyer.MinRevenue {
		frac := rev / *buyer.MinRevenue // in [0.7, 1)
		t := (frac - underMinHardFloor) / (1 - underMinHardFloor)
		mult := 0.35 + t*0.35
		score := int(math.Round(25 + t*30))
		return model.CategoryScore{
			Score: score,
			Reasoning: fmt.Sprintf("Revenue $%.1fM is below buyer minimum of $%.1fM but within reach; composite capped accordingly",
				rev, *buyer.MinRevenue),
			Confidence: confidence,
		}, model.GatingFactor{Multiplier: round2(mult)}
	}

	// Hard gate: far above maximum.
	if buyer.MaxRevenue != nil && rev > *buyer.MaxRevenue*overMaxHardCeil {
		reason := fmt.Sprintf("Revenue $%.1fM is more than 50%% above buyer maximum of $%.1fM", rev, *buyer.MaxRevenue)
		return model.CategoryScore{
			Score:                  0,
			Reasoning:              reason,
			IsDisqualified:         true,
			DisqualificationReason: reason,
			Confidence:             confidence,
		}, model.GatingFactor{Multiplier: 0}
	}

	multCap := maxSizeMultiplier
	national := isNationalPlatform(buyer)
	singleLocation := deal.Locations() == 1

	// Single-location deals rarely move the needle for a national
	// platform, and a small one is effectively a pass.
	if singleLocation && national {
		multCap = math.Min(multCap, 0.80)
		if buyer.RevenueSweetSpot != nil && rev < *buyer.RevenueSweetSpot*0.6 {
			reason := fmt.Sprintf("Single-location deal at $%.1fM is well under the $%.1fM sweet spot of a national platform buyer",
				rev, *buyer.RevenueSweetSpot)
			return model.CategoryScore{
				Score:                  20,
				Reasoning:              reason,
				IsDisqualified:         true,
				DisqualificationReason: reason,
				Confidence:             confidence,
			}, model.GatingFactor{Multiplier: 0.45}
		}
		reasons = append(reasons, "Single-location deal against a national platform buyer")
	}

	score := 50
	mult := 1.0

	minRev := 0.0
	if buyer.MinRevenue != nil {
		minRev = *buyer.MinRevenue
	}
	withinMax := buyer.MaxRevenue == nil || rev <= *buyer.MaxRevenue

	switch {
	case withinMax && buyer.RevenueSweetSpot != nil && math.Abs(rev-*buyer.RevenueSweetSpot) <= 0.2**buyer.RevenueSweetSpot:
		score = 95
		mult = maxSizeMultiplier
		reasons = append(reasons, fmt.Sprintf("Revenue $%.1fM hits the buyer's $%.1fM sweet spot", rev, *buyer.RevenueSweetSpot))
	case withinMax && buyer.MinRevenue != nil && rev < minRev*1.3:
		score = 65
		multCap = math.Min(multCap, 0.85)
		reasons = append(reasons, fmt.Sprintf("Revenue $%.1fM is within range but near the buyer's $%.1fM minimum", rev, minRev))
	case withinMax && buyer.RevenueSweetSpot != nil:
		// In range: 70-95 scaled by proximity to the sweet spot.
		dist := math.Abs(rev-*buyer.RevenueSweetSpot) / *buyer.RevenueSweetSpot
		if dist > 1 {
			dist = 1
		}
		score = int(math.Round(95 - dist*25))
		reasons = append(reasons, fmt.Sprintf("Revenue $%.1fM is within the buyer's range", rev))
	case withinMax:
		score = 75
		reasons = append(reasons, fmt.Sprintf("Revenue $%.1fM is within the buyer's range", rev))
	default:
		// Above max but under the hard ceiling: 60 down to 20.
		over := (rev - *buyer.MaxRevenue) / (*buyer.MaxRevenue * (overMaxHardCeil - 1))
		score = int(math.Round(60 - over*40))
		multCap = math.Min(multCap, 0.75)
		reasons = append(reasons, fmt.Sprintf("Revenue $%.1fM exceeds the buyer's $%.1fM maximum", rev, *buyer.MaxRevenue))
	}

	// EBITDA refinement.
	if e := deal.EBITDA(); e != nil {
		switch {
		case buyer.MinEBITDA != nil && *e < *buyer.MinEBITDA:
			score -= 15
			if score < 10 {
				score = 10
			}
			multCap = math.Min(multCap, 0.75)
			reasons = append(reasons, fmt.Sprintf("EBITDA $%.1fM is below the buyer's $%.1fM minimum", *e, *buyer.MinEBITDA))
		case (buyer.MinEBITDA != nil || buyer.MaxEBITDA != nil) &&
			(buyer.MaxEBITDA == nil || *e <= *buyer.MaxEBITDA):
			score += 10
			if score > 100 {
				score = 100
			}
			reasons = append(reasons, fmt.Sprintf("EBITDA $%.1fM is within the buyer's range", *e))
		}
	}

	// Location-count adjustment.
	switch loc := deal.Locations(); {
	case loc == 1 && national:
		score -= 15
	case loc == 1:
		score -= 5
		reasons = append(reasons, "Single-location business")
	case loc >= 3:
		score += 5
		reasons = append(reasons, fmt.Sprintf("%d locations add platform depth", loc))
	}

	score = clampScore(score)
	mult = math.Min(mult, multCap)

	return model.CategoryScore{
		Score:      score,
		Reasoning:  strings.Join(reasons, "; "),
		Confidence: confidence,
	}, model.GatingFactor{Multiplier: round2(mult)}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
