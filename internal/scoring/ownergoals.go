package scoring

import (
	"strings"

	"github.com/sells-group/dealfit/internal/model"
)

// Owner-goals pattern vocabularies. Each test pairs seller-side language
// with buyer-side language; matches contribute signed deltas but this
// category never disqualifies.
var (
	sellerSuccession = []string{
		"succession", "retire", "retirement", "exit plan", "step back",
		"step away", "transition out", "hand off", "next generation",
		"wind down",
	}
	buyerRetention = []string{
		"retain management", "keep management", "management stays",
		"management in place", "leadership continuity", "retain the team",
		"keep the team", "management team stays",
	}

	sellerEmployeeFocus = []string{
		"take care of employees", "employees are", "our people", "our team",
		"staff", "workforce", "team first",
	}
	buyerEmployeeFocus = []string{
		"culture", "employee retention", "people first", "take care of",
		"invest in the team", "retain employees",
	}

	sellerAutonomy = []string{
		"autonomy", "independen", "keep our name", "keep the name",
		"preserve the culture", "preserve culture", "stay local", "legacy",
		"run it the same way",
	}
	buyerAutonomy = []string{
		"autonomy", "decentralized", "independent operation", "keep your brand",
		"founder-led", "light touch", "operate independently",
	}
	buyerIntegration = []string{
		"integration", "integrate", "consolidate", "centralize", "rebrand",
		"fold into",
	}

	sellerStay = []string{
		"stay on", "remain involved", "long-term", "continue running",
		"stay for", "keep working",
	}
	sellerQuickExit = []string{
		"quick exit", "fully exit", "walk away", "move on",
		"immediate exit", "retire immediately", "clean break",
	}
	buyerRequiresStay = []string{
		"stay on", "transition period", "continuity", "remain in place",
		"earn-out period", "require the owner", "owner stays",
	}
	buyerFlexibleExit = []string{
		"flexible", "either way", "open to", "no requirement",
		"case by case",
	}

	sellerRollover = []string{
		"rollover", "roll equity", "second bite", "retain equity",
		"minority stake", "keep a stake",
	}
	buyerRollover = []string{
		"rollover", "roll equity", "co-invest", "retain equity",
		"equity participation",
	}
	sellerAllCash = []string{
		"all cash", "all-cash", "full sale", "100% sale", "clean exit",
	}
	buyerRolloverRequired = []string{
		"require rollover", "rollover required", "must roll", "expect rollover",
	}
	sellerEarnout = []string{"earnout", "earn-out"}
	buyerEarnout  = []string{"earnout", "earn-out"}
)

// ScoreOwnerGoals measures alignment between the seller's stated
// objectives and the buyer's transition preferences. Nudges only; this
// category never gates.
func ScoreOwnerGoals(deal *model.Deal, buyer *model.Buyer) model.CategoryScore {
	dealText := strings.ToLower(model.CleanText(deal.OwnerGoals))
	buyerText := strings.ToLower(model.JoinText(
		model.TextOf(buyer.OwnerTransitionGoals),
		model.TextOf(buyer.OwnerRollRequirement),
		model.TextOf(buyer.ThesisSummary),
		strings.Join(model.CleanList(buyer.KeyQuotes), " "),
	))

	if dealText == "" || buyerText == "" {
		return model.CategoryScore{
			Score:      50,
			Reasoning:  "Owner goals not specified on one or both sides",
			Confidence: model.ConfidenceLow,
		}
	}

	delta := 0
	var alignments, conflicts []string

	// Succession planning vs management retention.
	if containsAny(dealText, sellerSuccession...) {
		if containsAny(buyerText, buyerRetention...) {
			delta += 20
			alignments = append(alignments, "Seller succession plan aligns with buyer's management retention approach")
		} else {
			delta += 10
			alignments = append(alignments, "Seller has a succession objective")
		}
	}

	// Employee and culture focus.
	if containsAny(dealText, sellerEmployeeFocus...) {
		if containsAny(buyerText, buyerEmployeeFocus...) {
			delta += 15
			alignments = append(alignments, "Both sides emphasize taking care of employees")
		} else {
			delta += 5
			alignments = append(alignments, "Seller emphasizes employee welfare")
		}
	}

	// Autonomy vs integration.
	if containsAny(dealText, sellerAutonomy...) {
		if containsAny(buyerText, buyerAutonomy...) {
			delta += 15
			alignments = append(alignments, "Buyer grants the operating autonomy the seller wants")
		}
		if containsAny(buyerText, buyerIntegration...) {
			delta -= 10
			conflicts = append(conflicts, "Seller wants autonomy but buyer's model signals integration")
		}
	}

	// Transition length.
	switch {
	case containsAny(dealText, sellerStay...) && containsAny(buyerText, buyerRequiresStay...):
		delta += 15
		alignments = append(alignments, "Owner wants to stay on and buyer wants continuity")
	case containsAny(dealText, sellerQuickExit...) && containsAny(buyerText, buyerRequiresStay...):
		delta -= 15
		conflicts = append(conflicts, "Owner wants a quick exit but buyer requires a transition period")
	case containsAny(dealText, sellerQuickExit...) && containsAny(buyerText, buyerFlexibleExit...):
		delta += 10
		alignments = append(alignments, "Owner wants a quick exit and buyer is flexible on transition")
	}

	// Deal structure.
	switch {
	case containsAny(dealText, sellerRollover...) && containsAny(buyerText, buyerRollover...):
		delta += 15
		alignments = append(alignments, "Both sides are open to equity rollover")
	case containsAny(dealText, sellerAllCash...) && containsAny(buyerText, buyerRolloverRequired...):
		delta -= 10
		conflicts = append(conflicts, "Seller wants all cash but buyer expects rollover")
	case containsAny(dealText, sellerEarnout...) && containsAny(buyerText, buyerEarnout...):
		delta += 10
		alignments = append(alignments, "Both sides are open to an earnout structure")
	}

	score := 50 + delta
	if score < 20 {
		score = 20
	}
	if score > 100 {
		score = 100
	}

	confidence := model.ConfidenceMedium
	if len(alignments) > 0 || len(conflicts) > 0 {
		confidence = model.ConfidenceHigh
	}

	var parts []string
	parts = append(parts, alignments...)
	for _, c := range conflicts {
		parts = append(parts, "Conflict: "+c)
	}
	reasoning := strings.Join(parts, "; ")
	if reasoning == "" {
		reasoning = "Owner goals stated but no clear alignment or conflict detected"
	}

	return model.CategoryScore{
		Score:      score,
		Reasoning:  reasoning,
		Confidence: confidence,
	}
}
