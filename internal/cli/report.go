package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/analysis"
	"github.com/SeamusWaldron/cubesolver/internal/recorder"
)

var (
	reportOutputDir string
	reportMinN      int
	reportMaxN      int
	reportTopK      int
)

var reportCmd = &cobra.Command{
	Use:   "report [solve-id]",
	Short: "Generate an analysis report for a solve",
	Long: `Generate an analysis report for a solve. Without an ID the most recent
solve is used.

Reports include:
  - solve_summary.json: Overview statistics
  - moves.txt / optimized.txt: Move logs as tokens
  - repetition_report.json: Cancellations, triples, undone rotations
  - ngram_report.json: Repeated move sequences in the raw log
  - movement_profile.json: Move kinds and most-used faces
  - phase_moves/: Per-phase move sequences`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOutputDir, "output", "o", "", "Output directory (default: ./reports/<solve_id>)")
	reportCmd.Flags().IntVar(&reportMinN, "min-n", 4, "Shortest n-gram to mine")
	reportCmd.Flags().IntVar(&reportMaxN, "max-n", 12, "Longest n-gram to mine")
	reportCmd.Flags().IntVar(&reportTopK, "top", 5, "N-grams to keep per length")
}

func runReport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var id string
	if len(args) > 0 {
		id = args[0]
	}
	run, err := resolveRun(db, id)
	if err != nil {
		return err
	}

	outputDir := reportOutputDir
	if outputDir == "" {
		outputDir = filepath.Join("reports", run.SolveID)
	}

	if err := writeReport(run, outputDir); err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", outputDir)
	return nil
}

// writeReport writes every report file for run into outputDir.
func writeReport(run *recorder.Run, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := run.Summary()
	repReport := analysis.AnalyzeRepetitions(run.Moves)
	summary.WastedMoves = repReport.TotalWastedMoves

	if err := writeJSON(filepath.Join(outputDir, "solve_summary.json"), summary); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outputDir, "repetition_report.json"), repReport); err != nil {
		return err
	}
	ngramReport := analysis.MineNGrams(run.Moves, reportMinN, reportMaxN, reportTopK)
	if err := writeJSON(filepath.Join(outputDir, "ngram_report.json"), ngramReport); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outputDir, "movement_profile.json"), analysis.AnalyzeMovementProfile(run.Optimized)); err != nil {
		return err
	}

	for name, moves := range map[string]string{
		"moves.txt":     formatMoves(run.Moves, false),
		"optimized.txt": formatMoves(run.Optimized, false),
	} {
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(moves+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if len(summary.PhaseStats) > 0 {
		phaseMoveDir := filepath.Join(outputDir, "phase_moves")
		if err := os.MkdirAll(phaseMoveDir, 0755); err != nil {
			return fmt.Errorf("failed to create phase directory: %w", err)
		}
		for i, p := range summary.PhaseStats {
			moves := run.Moves[p.StartIndex : p.EndIndex+1]
			name := fmt.Sprintf("%d_%s.txt", i+1, p.PhaseKey)
			if err := os.WriteFile(filepath.Join(phaseMoveDir, name), []byte(formatMoves(moves, false)+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
		}
	}

	return nil
}

// writeJSON writes data as formatted JSON to a file.
func writeJSON(path string, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
