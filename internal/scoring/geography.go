package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/dealfit/internal/geo"
	"github.com/sells-group/dealfit/internal/model"
)

// multiLocationMin is the location count at which the lenient geography
// path applies. Two-location deals deliberately fall on the strict
// single-location path (see DESIGN.md).
const multiLocationMin = 3

// geoOverlap classifies the deal states against the buyer's footprint.
type geoOverlap struct {
	exact    []string
	adjacent []string
	regional []string
}

// ScoreGeography evaluates geographic fit. Deal attractiveness loosens or
// tightens the tiers (an attractive deal travels better), and engagement
// signals can rescue an otherwise disqualifying mismatch — an actively
// engaged buyer may acquire outside their normal footprint.
func ScoreGeography(deal *model.Deal, buyer *model.Buyer, attractiveness int, eng model.EngagementSignals) model.CategoryScore {
	dealStates := dealStateSet(deal)
	buyerStates := buyerStateSet(buyer)
	exclusions := geo.ExtractStatesFromList(buyer.GeographicExclusions)

	// Exclusion list is a hard gate regardless of everything else.
	for _, ds := range dealStates {
		for _, ex := range exclusions {
			if ds == ex {
				reason := fmt.Sprintf("Deal operates in %s, which is on the buyer's exclusion list", ds)
				return model.CategoryScore{
					Score:                  0,
					Reasoning:              reason,
					IsDisqualified:         true,
					DisqualificationReason: reason,
					Confidence:             model.ConfidenceHigh,
				}
			}
		}
	}

	if len(dealStates) == 0 {
		return model.CategoryScore{
			Score:      50,
			Reasoning:  "Deal geography not specified",
			Confidence: model.ConfidenceLow,
		}
	}
	if len(buyerStates) == 0 {
		return model.CategoryScore{
			Score:      50,
			Reasoning:  "Buyer geography not specified",
			Confidence: model.ConfidenceLow,
		}
	}

	ov := classifyOverlap(dealStates, buyerStates)

	attractivenessBonus := 1 + float64(attractiveness-50)/200
	engOverride := eng.ExpressedInterest || eng.SiteVisitRequested || eng.PersonalConnection
	engMult := 1.0
	if engOverride {
		engMult = 1.2
	}

	if deal.Locations() >= multiLocationMin {
		return scoreMultiLocation(ov, attractiveness, attractivenessBonus, engMult, engOverride)
	}
	return scoreSingleLocation(ov, attractiveness, attractivenessBonus, engMult, engOverride)
}

// scoreSingleLocation is the strict path: no overlap means
// disqualification unless engagement or deal quality overrides.
func scoreSingleLocation(ov geoOverlap, attractiveness int, attrBonus, engMult float64, engOverride bool) model.CategoryScore {
	switch {
	case len(ov.exact) > 0:
		return model.CategoryScore{
			Score:      applyGeoMultipliers(95, attrBonus, engMult),
			Reasoning:  fmt.Sprintf("Deal is in the buyer's target geography (%s)", strings.Join(ov.exact, ", ")),
			Confidence: model.ConfidenceHigh,
		}
	case len(ov.adjacent) > 0:
		base := 70.0
		if attractiveness > 70 {
			base = 85
		} else if attractiveness > 50 {
			base = 78
		}
		return model.CategoryScore{
			Score:      applyGeoMultipliers(base, attrBonus, engMult),
			Reasoning:  fmt.Sprintf("Deal borders the buyer's footprint (%s)", strings.Join(ov.adjacent, ", ")),
			Confidence: model.ConfidenceHigh,
		}
	case len(ov.regional) > 0:
		base := 50.0
		if attractiveness > 70 {
			base = 70
		} else if attractiveness > 50 {
			base = 60
		}
		return model.CategoryScore{
			Score:      applyGeoMultipliers(base, attrBonus, engMult),
			Reasoning:  fmt.Sprintf("Deal is in the buyer's region (%s)", strings.Join(ov.regional, ", ")),
			Confidence: model.ConfidenceMedium,
		}
	case engOverride && attractiveness >= 70:
		return model.CategoryScore{
			Score:      60,
			Reasoning:  "Outside the buyer's footprint, but engagement signals suggest willingness to travel for this deal",
			Confidence: model.ConfidenceMedium,
		}
	case attractiveness >= 80:
		return model.CategoryScore{
			Score:      50,
			Reasoning:  "Weak geographic fit, but deal quality may draw interest",
			Confidence: model.ConfidenceLow,
		}
	default:
		reason := "Single-location deal with no geographic overlap with the buyer"
		return model.CategoryScore{
			Score:                  0,
			Reasoning:              reason,
			IsDisqualified:         true,
			DisqualificationReason: reason,
			Confidence:             model.ConfidenceHigh,
		}
	}
}

// scoreMultiLocation is the lenient path: a multi-location platform is
// never geographically disqualified, and every tier carries a flat bonus.
func scoreMultiLocation(ov geoOverlap, attractiveness int, attrBonus, engMult float64, engOverride bool) model.CategoryScore {
	const bonus = 10.0

	switch {
	case len(ov.exact) > 0:
		return model.CategoryScore{
			Score:      applyGeoMultipliers(95+bonus, attrBonus, engMult),
			Reasoning:  fmt.Sprintf("Multi-location deal overlaps the buyer's target geography (%s)", strings.Join(ov.exact, ", ")),
			Confidence: model.ConfidenceHigh,
		}
	case len(ov.adjacent) > 0:
		base := 70.0
		if attractiveness > 70 {
			base = 85
		} else if attractiveness > 50 {
			base = 78
		}
		return model.CategoryScore{
			Score:      applyGeoMultipliers(base+bonus, attrBonus, engMult),
			Reasoning:  fmt.Sprintf("Multi-location deal borders the buyer's footprint (%s)", strings.Join(ov.adjacent, ", ")),
			Confidence: model.ConfidenceHigh,
		}
	case len(ov.regional) > 0:
		base := 50.0
		if attractiveness > 70 {
			base = 70
		} else if attractiveness > 50 {
			base = 60
		}
		return model.CategoryScore{
			Score:      applyGeoMultipliers(base+bonus, attrBonus, engMult),
			Reasoning:  fmt.Sprintf("Multi-location deal is in the buyer's region (%s)", strings.Join(ov.regional, ", ")),
			Confidence: model.ConfidenceMedium,
		}
	case engOverride:
		return model.CategoryScore{
			Score:      int(55 + bonus),
			Reasoning:  "No direct overlap, but engagement signals and a multi-location platform keep this in play",
			Confidence: model.ConfidenceMedium,
		}
	default:
		return model.CategoryScore{
			Score:      applyGeoMultipliers(35+bonus, attrBonus, 1.0),
			Reasoning:  "No geographic overlap; multi-location platform keeps the buyer in consideration",
			Confidence: model.ConfidenceMedium,
		}
	}
}

// applyGeoMultipliers applies the attractiveness and engagement
// multipliers and clamps to [0, 100].
func applyGeoMultipliers(base, attrBonus, engMult float64) int {
	return clampScore(int(math.Round(base * attrBonus * engMult)))
}

// dealStateSet extracts every state the deal operates in.
func dealStateSet(d *model.Deal) []string {
	set := make(map[string]struct{})
	for _, s := range geo.ExtractStatesFromList(d.Geography) {
		set[s] = struct{}{}
	}
	for _, s := range geo.ExtractStates(d.Headquarters) {
		set[s] = struct{}{}
	}
	return sortedKeys(set)
}

// buyerStateSet unions every geographic field the buyer exposes.
func buyerStateSet(b *model.Buyer) []string {
	set := make(map[string]struct{})
	if code := geo.NormalizeState(model.TextOf(b.HQState)); code != "" {
		set[code] = struct{}{}
	}
	for _, s := range geo.ExtractStates(model.TextOf(b.HQCity)) {
		set[s] = struct{}{}
	}
	for _, list := range [][]string{b.TargetGeographies, b.ServiceRegions, b.GeographicFootprint} {
		for _, s := range geo.ExtractStatesFromList(list) {
			set[s] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// classifyOverlap buckets each deal state into exactly one tier:
// exact match, one-hop adjacency, or same macro-region.
func classifyOverlap(dealStates, buyerStates []string) geoOverlap {
	buyerSet := make(map[string]struct{}, len(buyerStates))
	for _, s := range buyerStates {
		buyerSet[s] = struct{}{}
	}
	nearBuyer := geo.Expand(buyerStates, 1)

	var ov geoOverlap
	for _, ds := range dealStates {
		if _, ok := buyerSet[ds]; ok {
			ov.exact = append(ov.exact, ds)
			continue
		}
		if _, ok := nearBuyer[ds]; ok {
			ov.adjacent = append(ov.adjacent, ds)
			continue
		}
		for _, bs := range buyerStates {
			if geo.SameRegion(ds, bs) {
				ov.regional = append(ov.regional, ds)
				break
			}
		}
	}
	return ov
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	// Small sets; insertion sort keeps it dependency-free.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
