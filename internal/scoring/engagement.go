package scoring

import (
	"encoding/json"
	"strings"

	"github.com/sells-group/dealfit/internal/model"
)

// signalFamily is one qualitative buyer-interest pattern mined from call
// text. Each family scores at most once per buyer-deal pair no matter how
// many calls match it.
type signalFamily struct {
	label    string
	points   int
	keywords []string
	mark     func(*model.EngagementSignals)
}

var signalFamilies = []signalFamily{
	{
		label:  "Site visit requested",
		points: 25,
		keywords: []string{
			"site visit", "visit the facility", "come see", "tour the",
			"on-site", "onsite visit", "in person", "in-person meeting",
			"fly out", "walk the shop",
		},
		mark: func(s *model.EngagementSignals) { s.SiteVisitRequested = true },
	},
	{
		label:  "Financials requested",
		points: 20,
		keywords: []string{
			"financials", "financial statements", "p&l", "income statement",
			"balance sheet", "quality of earnings", "qoe",
			"ebitda detail", "data room", "diligence request",
		},
		mark: func(s *model.EngagementSignals) { s.FinancialsRequested = true },
	},
	{
		label:  "Executive involvement",
		points: 15,
		keywords: []string{
			"ceo joined", "ceo was on", "founder joined", "managing partner",
			"president joined", "executive team", "senior partner",
			"brought in their ceo", "operating partner",
		},
		mark: func(s *model.EngagementSignals) { s.CEOInvolved = true },
	},
	{
		label:  "Personal connection",
		points: 15,
		keywords: []string{
			"personal connection", "knows the owner", "mutual friend",
			"mutual connection", "relationship with the owner",
			"went to school", "grew up", "family friend", "golfs with",
		},
		mark: func(s *model.EngagementSignals) { s.PersonalConnection = true },
	},
	{
		label:  "Expressed interest",
		points: 20,
		keywords: []string{
			"very interested", "strong interest", "expressed interest",
			"excited about", "move forward", "next steps", "submit an ioi",
			"submit an loi", "letter of intent", "wants to make an offer",
		},
		mark: func(s *model.EngagementSignals) { s.ExpressedInterest = true },
	},
}

// AnalyzeEngagement scans a buyer's call-intelligence records for interest
// signals. Each matched family contributes a fixed bonus exactly once;
// having any calls at all is worth a 10 point base. The score is capped
// at 100.
func AnalyzeEngagement(calls []model.CallIntelligence) model.EngagementSignals {
	var out model.EngagementSignals
	if len(calls) == 0 {
		return out
	}

	out.HasCalls = true
	score := 10

	haystacks := make([]string, 0, len(calls))
	for _, c := range calls {
		haystacks = append(haystacks, callHaystack(c))
	}

	for _, fam := range signalFamilies {
		for _, h := range haystacks {
			if containsAny(h, fam.keywords...) {
				fam.mark(&out)
				out.Signals = append(out.Signals, fam.label)
				score += fam.points
				break
			}
		}
	}

	if score > 100 {
		score = 100
	}
	out.EngagementScore = score
	return out
}

// callHaystack flattens one call record into a lowercased search string:
// summary, takeaways, and the stringified extracted data.
func callHaystack(c model.CallIntelligence) string {
	parts := []string{model.CleanText(c.CallSummary)}
	parts = append(parts, model.CleanList(c.KeyTakeaways)...)
	if len(c.ExtractedData) > 0 {
		if raw, err := json.Marshal(c.ExtractedData); err == nil {
			parts = append(parts, string(raw))
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
