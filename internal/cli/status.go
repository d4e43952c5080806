package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and database status",
	Long:  `Display the configuration in use, the database location and schema version, and the most recent solve.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("cubesolver status")
	fmt.Println("=================")
	fmt.Println()

	if f := configFileUsed(); f != "" {
		fmt.Printf("Config:   %s\n", f)
	} else {
		fmt.Println("Config:   (defaults)")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Database: %s\n", db.Path())
	v, err := db.CurrentVersion()
	if err != nil {
		return err
	}
	fmt.Printf("Schema:   v%d (latest v%d)\n", v, storage.LatestVersion())
	fmt.Println()

	repo := storage.NewSolveRepository(db)
	st, err := repo.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("Total solves: %d (%d solved, %d stuck)\n", st.Total, st.Solved, st.Stuck)

	last, err := repo.GetLast()
	if err != nil {
		return err
	}
	if last == nil {
		fmt.Println("No solves recorded yet")
		return nil
	}
	fmt.Printf("Last solve:   %s at %s (%s, %d moves)\n",
		shortID(last.SolveID),
		last.StartedAt.Local().Format(time.RFC3339),
		last.Status,
		last.OptimizedMoveCount,
	)
	if last.StuckPhase != nil {
		fmt.Printf("  Stuck in:   %s\n", errorStyle.Render(*last.StuckPhase))
	}

	return nil
}
