package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/internal/recorder"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

var (
	exportFormat   string
	exportOutput   string
	exportLog      string
	exportStandard bool
)

var exportCmd = &cobra.Command{
	Use:   "export [solve-id]",
	Short: "Export the moves of a solve",
	Long: `Export the move log of a solve in text or JSON format. Without an ID the
most recent solve is exported.

Examples:
  cubesolver export
  cubesolver export 3f2a9c1e --format json
  cubesolver export --log raw --standard -o moves.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportLog, "log", storage.LogOptimized, "Move log to export (raw, optimized)")
	exportCmd.Flags().BoolVar(&exportStandard, "standard", false, "Use standard notation in txt output")
}

// MoveJSON is one exported move.
type MoveJSON struct {
	MoveIndex   int    `json:"move_index"`
	Token       string `json:"token"`
	Notation    string `json:"notation"`
	Description string `json:"description"`
}

// ExportJSON is the document written by export --format json.
type ExportJSON struct {
	SolveID    string     `json:"solve_id"`
	Status     string     `json:"status"`
	StartState string     `json:"start_state"`
	Scramble   string     `json:"scramble,omitempty"`
	Log        string     `json:"log"`
	Moves      []MoveJSON `json:"moves"`
}

func exportMoves(run *recorder.Run, logName, format string, standard bool) (string, error) {
	var moves []types.Move
	switch logName {
	case storage.LogRaw:
		moves = run.Moves
	case storage.LogOptimized:
		moves = run.Optimized
	default:
		return "", fmt.Errorf("unknown log: %s (use raw or optimized)", logName)
	}

	switch strings.ToLower(format) {
	case "txt":
		return formatMoves(moves, standard), nil

	case "json":
		doc := ExportJSON{
			SolveID:    run.SolveID,
			Status:     run.Status,
			StartState: run.Start.FlatString(),
			Scramble:   notation.FormatSequence(run.Scramble),
			Log:        logName,
			Moves:      make([]MoveJSON, len(moves)),
		}
		for i, m := range moves {
			doc.Moves[i] = MoveJSON{
				MoveIndex:   i,
				Token:       string(m),
				Notation:    m.Notation(),
				Description: notation.Describe(m),
			}
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
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

	output, err := exportMoves(run, exportLog, exportFormat, exportStandard)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(output)
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Exported %s moves of %s to %s\n", exportLog, shortID(run.SolveID), exportOutput)
	return nil
}
