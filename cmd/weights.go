package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sells-group/dealfit/internal/scoring"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show effective category weights",
	Long: `Print the fallback weights and any configured per-industry weight
profiles. Tracker-level weight overrides are not shown here; they apply
per tracker at scoring time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fallback := scoring.Weights{
			Geography:  cfg.Scoring.DefaultWeights.Geography,
			Size:       cfg.Scoring.DefaultWeights.Size,
			ServiceMix: cfg.Scoring.DefaultWeights.ServiceMix,
			OwnerGoals: cfg.Scoring.DefaultWeights.OwnerGoals,
		}

		fmt.Println("Fallback weights:")
		printWeights(fallback)

		if cfg.Scoring.WeightProfiles == "" {
			return nil
		}
		profiles, err := scoring.LoadWeightProfiles(cfg.Scoring.WeightProfiles)
		if err != nil {
			return err
		}

		industries := make([]string, 0, len(profiles))
		for industry := range profiles {
			industries = append(industries, industry)
		}
		sort.Strings(industries)

		for _, industry := range industries {
			fmt.Printf("\nProfile %q:\n", industry)
			printWeights(profiles[industry])
		}
		return nil
	},
}

func printWeights(w scoring.Weights) {
	fmt.Printf("  geography:   %d\n", w.Geography)
	fmt.Printf("  size:        %d\n", w.Size)
	fmt.Printf("  service_mix: %d\n", w.ServiceMix)
	fmt.Printf("  owner_goals: %d\n", w.OwnerGoals)
	if sum := w.Geography + w.Size + w.ServiceMix + w.OwnerGoals; sum != 100 {
		fmt.Printf("  (sum %d; composites scale accordingly)\n", sum)
	}
}

func init() {
	rootCmd.AddCommand(weightsCmd)
}
