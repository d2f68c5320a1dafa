package scoring

import (
	"time"

	"github.com/sells-group/dealfit/internal/model"
)

// thesisBonusCap bounds the additive thesis bonus.
const thesisBonusCap = 30

// ThesisBonus rewards buyers with a real, recently-exercised acquisition
// thesis. Additive and capped; folded into the composite at 30% weight.
func ThesisBonus(b *model.Buyer, now time.Time) int {
	bonus := 0

	if len(model.TextOf(b.ThesisSummary)) > 50 {
		bonus += 10
	}
	if len(model.CleanList(b.KeyQuotes)) > 0 {
		bonus += 10
	}
	if model.HasText(b.AcquisitionAppetite) {
		bonus += 5
	}
	if b.TotalAcquisitions != nil && *b.TotalAcquisitions > 3 {
		bonus += 5
	}
	if b.LastAcquisitionDate != nil {
		age := now.Sub(*b.LastAcquisitionDate)
		switch {
		case age < 12*30*24*time.Hour:
			bonus += 10
		case age < 24*30*24*time.Hour:
			bonus += 5
		}
	}

	if bonus > thesisBonusCap {
		bonus = thesisBonusCap
	}
	return bonus
}

// completenessCheck is one presence check in the data-completeness
// checklist.
type completenessCheck struct {
	weight  int
	present bool
}

// DataCompleteness buckets how much of the scoring-relevant data existed
// for this buyer-deal pair. High >= 70%, Medium >= 40%, else Low.
func DataCompleteness(deal *model.Deal, buyer *model.Buyer) model.Completeness {
	checks := []completenessCheck{
		// Deal side.
		{10, deal.Revenue != nil},
		{5, deal.EBITDA() != nil},
		{5, deal.LocationCount != nil},
		{10, len(model.CleanList(deal.Geography)) > 0 || model.CleanText(deal.Headquarters) != ""},
		{10, model.CleanText(deal.ServiceMix) != ""},
		{5, model.CleanText(deal.OwnerGoals) != ""},
		// Buyer side.
		{10, buyer.MinRevenue != nil || buyer.MaxRevenue != nil},
		{5, buyer.RevenueSweetSpot != nil},
		{5, buyer.MinEBITDA != nil || buyer.MaxEBITDA != nil},
		{10, len(model.CleanList(buyer.TargetGeographies)) > 0 || model.HasText(buyer.HQState)},
		{5, len(model.CleanList(buyer.GeographicFootprint)) > 0},
		{10, model.HasText(buyer.ServicesOffered) || len(model.CleanList(buyer.TargetServices)) > 0},
		{5, model.HasText(buyer.ThesisSummary)},
		{5, model.HasText(buyer.OwnerTransitionGoals) || model.HasText(buyer.OwnerRollRequirement)},
	}

	total, earned := 0, 0
	for _, c := range checks {
		total += c.weight
		if c.present {
			earned += c.weight
		}
	}

	pct := float64(earned) / float64(total) * 100
	switch {
	case pct >= 70:
		return model.CompletenessHigh
	case pct >= 40:
		return model.CompletenessMedium
	default:
		return model.CompletenessLow
	}
}
