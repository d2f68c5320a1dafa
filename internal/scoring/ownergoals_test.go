package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/dealfit/internal/model"
)

func TestScoreOwnerGoals_MissingData(t *testing.T) {
	t.Run("no deal goals", func(t *testing.T) {
		got := ScoreOwnerGoals(&model.Deal{}, &model.Buyer{OwnerTransitionGoals: ptrString("flexible")})
		assert.Equal(t, 50, got.Score)
		assert.Equal(t, model.ConfidenceLow, got.Confidence)
	})

	t.Run("no buyer preferences", func(t *testing.T) {
		got := ScoreOwnerGoals(&model.Deal{OwnerGoals: "wants to retire"}, &model.Buyer{})
		assert.Equal(t, 50, got.Score)
		assert.Equal(t, model.ConfidenceLow, got.Confidence)
	})
}

func TestScoreOwnerGoals_Alignments(t *testing.T) {
	tests := []struct {
		name      string
		dealGoals string
		buyer     model.Buyer
		wantScore int
	}{
		{
			name:      "succession meets management retention",
			dealGoals: "Owner is looking to retire in two years",
			buyer:     model.Buyer{OwnerTransitionGoals: ptrString("We retain management and invest behind them")},
			wantScore: 70,
		},
		{
			name:      "succession without retention language",
			dealGoals: "Owner planning retirement",
			buyer:     model.Buyer{ThesisSummary: ptrString("Buy-and-build across the southeast")},
			wantScore: 60,
		},
		{
			name:      "owner stays and buyer wants continuity",
			dealGoals: "Owner wants to stay on for several years",
			buyer:     model.Buyer{OwnerTransitionGoals: ptrString("We expect a transition period with the owner")},
			wantScore: 65,
		},
		{
			name:      "rollover on both sides",
			dealGoals: "Open to rollover equity for a second bite",
			buyer:     model.Buyer{OwnerRollRequirement: ptrString("Rollover expected, co-invest alongside us")},
			wantScore: 65,
		},
		{
			name:      "quick exit with flexible buyer",
			dealGoals: "Owner wants a quick exit",
			buyer:     model.Buyer{OwnerTransitionGoals: ptrString("Flexible on owner transition, case by case")},
			wantScore: 60,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreOwnerGoals(&model.Deal{OwnerGoals: tt.dealGoals}, &tt.buyer)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, model.ConfidenceHigh, got.Confidence)
			assert.False(t, got.IsDisqualified, "owner goals never gate")
		})
	}
}

func TestScoreOwnerGoals_Conflicts(t *testing.T) {
	t.Run("autonomy against an integration model", func(t *testing.T) {
		deal := &model.Deal{OwnerGoals: "Wants to keep our name and stay independent"}
		buyer := &model.Buyer{ThesisSummary: ptrString("We integrate and centralize back office operations")}
		got := ScoreOwnerGoals(deal, buyer)
		assert.Equal(t, 40, got.Score)
		assert.Contains(t, got.Reasoning, "Conflict:")
	})

	t.Run("quick exit against a required stay", func(t *testing.T) {
		deal := &model.Deal{OwnerGoals: "Owner wants a clean break and to walk away"}
		buyer := &model.Buyer{OwnerTransitionGoals: ptrString("Owner stays through a transition period")}
		got := ScoreOwnerGoals(deal, buyer)
		assert.Equal(t, 35, got.Score)
		assert.Contains(t, got.Reasoning, "Conflict:")
	})

	t.Run("stacked conflicts floor at 20", func(t *testing.T) {
		deal := &model.Deal{OwnerGoals: "Keep our name, wants a quick exit, all cash only"}
		buyer := &model.Buyer{
			OwnerTransitionGoals: ptrString("Owner stays for a transition period; we integrate operations"),
			OwnerRollRequirement: ptrString("rollover required"),
		}
		got := ScoreOwnerGoals(deal, buyer)
		assert.Equal(t, 20, got.Score)
	})
}

func TestScoreOwnerGoals_NoPatternsDetected(t *testing.T) {
	deal := &model.Deal{OwnerGoals: "Open to conversations"}
	buyer := &model.Buyer{OwnerTransitionGoals: ptrString("Depends on the situation")}
	got := ScoreOwnerGoals(deal, buyer)
	assert.Equal(t, 50, got.Score)
	assert.Equal(t, model.ConfidenceMedium, got.Confidence)
}
