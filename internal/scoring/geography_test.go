package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/dealfit/internal/model"
)

func TestScoreGeography_ExclusionGate(t *testing.T) {
	deal := &model.Deal{Geography: []string{"TX"}, LocationCount: ptrInt(5)}
	buyer := &model.Buyer{
		TargetGeographies:    []string{"TX"},
		GeographicExclusions: []string{"Texas"},
	}
	// Even exact target overlap, maximal attractiveness, and engagement
	// cannot beat the exclusion list.
	eng := model.EngagementSignals{ExpressedInterest: true, SiteVisitRequested: true}
	got := ScoreGeography(deal, buyer, 100, eng)
	assert.True(t, got.IsDisqualified)
	assert.Equal(t, 0, got.Score)
	assert.Contains(t, got.DisqualificationReason, "exclusion")
}

func TestScoreGeography_MissingData(t *testing.T) {
	t.Run("no deal geography", func(t *testing.T) {
		got := ScoreGeography(&model.Deal{}, &model.Buyer{TargetGeographies: []string{"TX"}}, 50, model.EngagementSignals{})
		assert.Equal(t, 50, got.Score)
		assert.Equal(t, model.ConfidenceLow, got.Confidence)
	})

	t.Run("no buyer geography", func(t *testing.T) {
		got := ScoreGeography(&model.Deal{Geography: []string{"TX"}}, &model.Buyer{}, 50, model.EngagementSignals{})
		assert.Equal(t, 50, got.Score)
		assert.Equal(t, model.ConfidenceLow, got.Confidence)
	})
}

func TestScoreGeography_SingleLocation(t *testing.T) {
	noEng := model.EngagementSignals{}

	t.Run("exact match", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"TX"}}
		buyer := &model.Buyer{TargetGeographies: []string{"TX"}}
		got := ScoreGeography(deal, buyer, 50, noEng)
		assert.Equal(t, 95, got.Score)
		assert.Equal(t, model.ConfidenceHigh, got.Confidence)
	})

	t.Run("exact match with high attractiveness clamps at 100", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"TX"}}
		buyer := &model.Buyer{TargetGeographies: []string{"TX"}}
		got := ScoreGeography(deal, buyer, 80, noEng)
		assert.Equal(t, 100, got.Score)
	})

	t.Run("adjacent state", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"OK"}}
		buyer := &model.Buyer{TargetGeographies: []string{"TX"}}
		got := ScoreGeography(deal, buyer, 50, noEng)
		assert.Equal(t, 70, got.Score)
		assert.False(t, got.IsDisqualified)
	})

	t.Run("adjacent state with attractive deal", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"OK"}}
		buyer := &model.Buyer{TargetGeographies: []string{"TX"}}
		got := ScoreGeography(deal, buyer, 72, noEng)
		// Base 85 for attractiveness > 70, times the 1.11 bonus.
		assert.Equal(t, 94, got.Score)
	})

	t.Run("same region only", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"AZ"}}
		buyer := &model.Buyer{TargetGeographies: []string{"TX"}}
		got := ScoreGeography(deal, buyer, 50, noEng)
		assert.Equal(t, 50, got.Score)
		assert.Equal(t, model.ConfidenceMedium, got.Confidence)
	})

	t.Run("no overlap disqualifies", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"CA"}}
		buyer := &model.Buyer{TargetGeographies: []string{"FL"}}
		got := ScoreGeography(deal, buyer, 50, noEng)
		assert.True(t, got.IsDisqualified)
		assert.Equal(t, 0, got.Score)
	})

	t.Run("attractive deal avoids disqualification", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"CA"}}
		buyer := &model.Buyer{TargetGeographies: []string{"FL"}}
		got := ScoreGeography(deal, buyer, 80, noEng)
		assert.False(t, got.IsDisqualified)
		assert.Equal(t, 50, got.Score)
		assert.Equal(t, model.ConfidenceLow, got.Confidence)
	})
}

func TestScoreGeography_EngagementRescue(t *testing.T) {
	deal := &model.Deal{Geography: []string{"CA"}}
	buyer := &model.Buyer{TargetGeographies: []string{"FL"}}

	t.Run("expressed interest with attractive deal rescues", func(t *testing.T) {
		eng := model.EngagementSignals{ExpressedInterest: true}
		got := ScoreGeography(deal, buyer, 70, eng)
		assert.False(t, got.IsDisqualified)
		assert.Equal(t, 60, got.Score)
	})

	t.Run("same scenario without engagement disqualifies", func(t *testing.T) {
		got := ScoreGeography(deal, buyer, 70, model.EngagementSignals{})
		assert.True(t, got.IsDisqualified)
	})

	t.Run("engagement boosts a real match", func(t *testing.T) {
		matchDeal := &model.Deal{Geography: []string{"OK"}}
		matchBuyer := &model.Buyer{TargetGeographies: []string{"TX"}}
		eng := model.EngagementSignals{SiteVisitRequested: true}
		with := ScoreGeography(matchDeal, matchBuyer, 50, eng)
		without := ScoreGeography(matchDeal, matchBuyer, 50, model.EngagementSignals{})
		assert.Greater(t, with.Score, without.Score)
	})
}

func TestScoreGeography_MultiLocationLeniency(t *testing.T) {
	noEng := model.EngagementSignals{}

	t.Run("no overlap floors instead of disqualifying", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"CA"}, LocationCount: ptrInt(3)}
		buyer := &model.Buyer{TargetGeographies: []string{"FL"}}
		got := ScoreGeography(deal, buyer, 50, noEng)
		assert.False(t, got.IsDisqualified)
		assert.Equal(t, 45, got.Score)
	})

	t.Run("identical single-location deal is disqualified", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"CA"}, LocationCount: ptrInt(1)}
		buyer := &model.Buyer{TargetGeographies: []string{"FL"}}
		got := ScoreGeography(deal, buyer, 50, noEng)
		assert.True(t, got.IsDisqualified)
	})

	t.Run("two locations stay on the strict path", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"CA"}, LocationCount: ptrInt(2)}
		buyer := &model.Buyer{TargetGeographies: []string{"FL"}}
		got := ScoreGeography(deal, buyer, 50, noEng)
		assert.True(t, got.IsDisqualified)
	})

	t.Run("exact match carries the bonus", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"TX"}, LocationCount: ptrInt(5)}
		buyer := &model.Buyer{TargetGeographies: []string{"TX"}}
		got := ScoreGeography(deal, buyer, 50, noEng)
		assert.Equal(t, 100, got.Score)
	})

	t.Run("engagement keeps a no-overlap platform in play", func(t *testing.T) {
		deal := &model.Deal{Geography: []string{"CA"}, LocationCount: ptrInt(4)}
		buyer := &model.Buyer{TargetGeographies: []string{"FL"}}
		eng := model.EngagementSignals{PersonalConnection: true}
		got := ScoreGeography(deal, buyer, 50, eng)
		assert.Equal(t, 65, got.Score)
		assert.False(t, got.IsDisqualified)
	})
}

func TestScoreGeography_BuyerFieldsUnioned(t *testing.T) {
	// HQ state, free-text footprint, and service regions all count.
	deal := &model.Deal{Headquarters: "Nashville, TN"}
	buyer := &model.Buyer{
		HQState:             ptrString("Georgia"),
		GeographicFootprint: []string{"operations across Tennessee and Alabama"},
	}
	got := ScoreGeography(deal, buyer, 50, model.EngagementSignals{})
	assert.Equal(t, 95, got.Score, "TN extracted from footprint text is an exact match")
}
