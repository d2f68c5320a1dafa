package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/dealfit/internal/model"
	"github.com/sells-group/dealfit/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score buyers against a deal",
	Long: `Score every buyer on a deal's tracker against the deal.

Each buyer gets four category scores (size, geography, service mix,
owner goals), a thesis bonus, an engagement bonus from call
intelligence, and a 0-100 composite. Hard gates (revenue far outside
range, geographic or industry exclusions) disqualify a buyer outright.

Examples:
  # Score all buyers on the deal's tracker and persist
  score --deal 7f3a...

  # Score two specific buyers without writing to the database
  score --deal 7f3a... --buyers b1,b2 --no-persist

  # Export results to CSV
  score --deal 7f3a... --format csv --output scores.csv`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("deal", "", "deal ID to score (required)")
	f.String("buyers", "", "comma-separated buyer IDs (default: all on tracker)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or csv")
	f.Bool("no-persist", false, "skip writing scores to the database")
	_ = scoreCmd.MarkFlagRequired("deal")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dealID, _ := cmd.Flags().GetString("deal")
	buyersFlag, _ := cmd.Flags().GetString("buyers")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	noPersist, _ := cmd.Flags().GetBool("no-persist")

	if format != "table" && format != "csv" {
		return eris.Errorf("score: --format must be table or csv (got %q)", format)
	}

	log := zap.L().With(zap.String("command", "score"))

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	engine, err := newEngine(st, !noPersist)
	if err != nil {
		return err
	}

	log.Info("scoring deal",
		zap.String("deal_id", dealID),
		zap.String("buyers", buyersFlag),
	)

	result, err := engine.Score(ctx, scoring.Request{
		DealID:   dealID,
		BuyerIDs: splitAndTrim(buyersFlag),
	})
	if err != nil {
		return eris.Wrapf(err, "score: deal %s", dealID)
	}

	if err := outputScores(result, format, outputPath); err != nil {
		return err
	}
	printScoreSummary(result)
	reportPersistFailures(result.PersistResults)

	return nil
}

func outputScores(result *scoring.Result, format, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "score: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "csv":
		return writeScoreCSV(w, result.Scores)
	case "table":
		return writeScoreTable(w, result.Scores)
	default:
		return eris.Errorf("score: unsupported format %q", format)
	}
}

func writeScoreCSV(w io.Writer, scores []model.BuyerScore) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"buyer_id", "buyer_name", "composite", "size", "geography",
		"services", "owner_goals", "multiplier", "disqualified", "reasoning",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "score: write CSV header")
	}

	for _, s := range scores {
		row := []string{
			s.BuyerID,
			s.BuyerName,
			fmt.Sprintf("%d", s.CompositeScore),
			fmt.Sprintf("%d", s.Size.Score),
			fmt.Sprintf("%d", s.Geography.Score),
			fmt.Sprintf("%d", s.Services.Score),
			fmt.Sprintf("%d", s.OwnerGoals.Score),
			fmt.Sprintf("%.2f", s.SizeMultiplier),
			fmt.Sprintf("%v", s.IsDisqualified),
			s.OverallReasoning,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "score: write CSV row")
		}
	}
	return nil
}

func writeScoreTable(w io.Writer, scores []model.BuyerScore) error {
	header := fmt.Sprintf("%-40s %5s %5s %5s %5s %5s %5s %4s\n",
		"Buyer", "Comp", "Size", "Geo", "Svc", "Own", "Mult", "DQ")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "score: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 82)); err != nil {
		return eris.Wrap(err, "score: write table separator")
	}

	for _, s := range scores {
		name := s.BuyerName
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		line := fmt.Sprintf("%-40s %5d %5d %5d %5d %5d %5.2f %4v\n",
			name, s.CompositeScore, s.Size.Score, s.Geography.Score,
			s.Services.Score, s.OwnerGoals.Score, s.SizeMultiplier, s.IsDisqualified)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "score: write table row")
		}
	}
	return nil
}

func printScoreSummary(result *scoring.Result) {
	s := result.Summary
	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Deal:            %s (attractiveness %d)\n", result.DealName, result.DealAttractiveness)
	fmt.Printf("Total scored:    %d\n", s.Total)
	fmt.Printf("Strong fit:      %d\n", s.StrongFit)
	fmt.Printf("Moderate fit:    %d\n", s.ModerateFit)
	fmt.Printf("Long shot:       %d\n", s.LongShot)
	fmt.Printf("Disqualified:    %d\n", s.Disqualified)
	fmt.Printf("With engagement: %d\n", s.WithEngagement)
}

func reportPersistFailures(results []scoring.PersistResult) {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("\nWARNING: %d of %d score rows failed to persist (see logs)\n", failed, len(results))
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
