// Package scoring implements the buyer-deal fit engine: a deterministic,
// rule-based pipeline producing one composite 0-100 score per (buyer, deal)
// pair from four weighted category scores, hard disqualification gates, a
// size gating multiplier, and engagement-signal bonuses.
package scoring

import "github.com/sells-group/dealfit/internal/model"

// DealAttractiveness estimates how desirable a deal is on its own merits,
// 0-100. Baseline 50 plus additive bands for revenue, location count, and
// margin. Never persisted; it only modulates geography leniency and the
// engagement interplay.
func DealAttractiveness(d *model.Deal) int {
	score := 50

	if d.Revenue != nil && *d.Revenue > 0 {
		switch r := *d.Revenue; {
		case r >= 20:
			score += 30
		case r >= 10:
			score += 25
		case r >= 5:
			score += 20
		case r >= 2:
			score += 15
		default:
			score += 10
		}
	}

	switch loc := d.Locations(); {
	case loc >= 10:
		score += 20
	case loc >= 5:
		score += 15
	case loc >= 3:
		score += 10
	default:
		score += 5
	}

	if m := d.EBITDAMargin(); m != nil {
		switch {
		case *m >= 25:
			score += 20
		case *m >= 20:
			score += 15
		case *m >= 15:
			score += 10
		default:
			score += 5
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}
