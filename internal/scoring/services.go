package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/dealfit/internal/model"
)

// serviceVocabulary is the curated domain-keyword list run as a literal
// substring matcher over both sides. Literal matching (not fuzzy, not
// embeddings) keeps scoring deterministic, which the idempotence
// guarantee depends on.
var serviceVocabulary = []string{
	// Trades and home services.
	"hvac", "heating", "cooling", "air conditioning", "ventilation",
	"refrigeration", "plumbing", "electrical", "roofing", "siding",
	"gutter", "window", "insulation", "garage door", "fencing",
	"landscaping", "irrigation", "tree service", "snow removal",
	"pest control", "lawn care", "pool service", "solar",
	"generator", "fire protection", "security systems", "alarm",
	"restoration", "remediation", "waterproofing", "mold",
	"cleaning", "janitorial", "pressure washing", "painting",
	"flooring", "drywall", "masonry", "concrete", "paving",
	"excavation", "demolition", "septic", "well drilling",
	"elevator", "mechanical contracting",
	// Collision and automotive.
	"collision repair", "auto body", "paintless dent", "auto glass",
	"glass repair", "calibration", "towing", "detailing", "tire",
	"transmission", "oil change", "auto repair", "fleet services",
	"car wash",
	// Professional and business services.
	"accounting", "bookkeeping", "payroll", "tax preparation",
	"legal services", "consulting", "engineering", "architecture",
	"inspection", "appraisal", "staffing", "recruiting", "marketing",
	"it services", "managed services", "software", "logistics",
	"distribution", "manufacturing", "fabrication", "machining",
	// Customer types.
	"b2b", "b2c", "residential", "commercial", "industrial",
	"enterprise", "smb", "government", "municipal", "multifamily",
}

// ScoreServices measures service-mix overlap between the deal and the
// buyer's offered/target services. Industry exclusions are a hard gate.
func ScoreServices(deal *model.Deal, buyer *model.Buyer) model.CategoryScore {
	dealText := strings.ToLower(model.JoinText(deal.ServiceMix, deal.IndustryType))

	// Exclusion gate: any excluded industry appearing in the deal's
	// industry or service mix disqualifies outright.
	for _, excl := range model.CleanList(buyer.IndustryExclusions) {
		if strings.Contains(dealText, strings.ToLower(excl)) {
			reason := fmt.Sprintf("Deal matches buyer industry exclusion %q", excl)
			return model.CategoryScore{
				Score:                  0,
				Reasoning:              reason,
				IsDisqualified:         true,
				DisqualificationReason: reason,
				Confidence:             model.ConfidenceHigh,
			}
		}
	}

	dealMix := strings.ToLower(model.CleanText(deal.ServiceMix))
	dealKeywords := matchVocabulary(dealMix)
	if len(dealKeywords) == 0 {
		return model.CategoryScore{
			Score:      50,
			Reasoning:  "Deal service mix not specified",
			Confidence: model.ConfidenceLow,
		}
	}

	buyerText := strings.ToLower(model.JoinText(
		model.TextOf(buyer.ServicesOffered),
		strings.Join(model.CleanList(buyer.TargetServices), " "),
		model.TextOf(buyer.ServiceMixPrefs),
	))
	if buyerText == "" {
		return model.CategoryScore{
			Score:      50,
			Reasoning:  "Buyer services not specified",
			Confidence: model.ConfidenceLow,
		}
	}

	matches := 0
	var matched []string
	for _, kw := range dealKeywords {
		if strings.Contains(buyerText, kw) {
			matches++
			matched = append(matched, kw)
		}
	}
	overlap := float64(matches) / float64(len(dealKeywords)) * 100

	var score int
	var reasoning string
	switch {
	case overlap >= 70:
		score = int(math.Min(100, 90+math.Round((overlap-70)/3)))
		reasoning = fmt.Sprintf("Strong service overlap (%.0f%%): %s", overlap, strings.Join(matched, ", "))
	case overlap >= 40:
		score = int(math.Min(90, 70+math.Round((overlap-40)/1.5)))
		reasoning = fmt.Sprintf("Good service overlap (%.0f%%): %s", overlap, strings.Join(matched, ", "))
	case overlap >= 20:
		score = int(math.Min(70, 50+math.Round(overlap-20)))
		reasoning = fmt.Sprintf("Partial service overlap (%.0f%%); may be complementary", overlap)
	case overlap > 0:
		score = 40
		reasoning = fmt.Sprintf("Minimal service overlap (%.0f%%); consider as add-on", overlap)
	default:
		score = 25
		reasoning = "No service overlap with the buyer's offerings"
	}

	confidence := model.ConfidenceMedium
	if matches > 0 {
		confidence = model.ConfidenceHigh
	}

	return model.CategoryScore{
		Score:      score,
		Reasoning:  reasoning,
		Confidence: confidence,
	}
}

// matchVocabulary returns the vocabulary terms present in text, in
// vocabulary order.
func matchVocabulary(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, kw := range serviceVocabulary {
		if strings.Contains(text, kw) {
			out = append(out, kw)
		}
	}
	return out
}
