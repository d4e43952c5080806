package cli

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/internal/recorder"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

func openDB() (*storage.DB, error) {
	db, err := storage.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	log.WithField("path", db.Path()).Debug("database opened")
	return db, nil
}

// resolveRun loads a run by (abbreviated) ID, or the latest run when id is
// empty.
func resolveRun(db *storage.DB, id string) (*recorder.Run, error) {
	run, err := recorder.Resolve(db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load solve: %w", err)
	}
	if run == nil {
		if id == "" {
			return nil, fmt.Errorf("no solves found")
		}
		return nil, fmt.Errorf("solve not found: %s", id)
	}
	return run, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// formatMoves renders moves as tokens, or in standard notation.
func formatMoves(moves []types.Move, standard bool) string {
	if standard {
		return notation.FormatStandard(moves)
	}
	return notation.FormatSequence(moves)
}

func moveStrings(moves []types.Move, standard bool) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		if standard {
			out[i] = m.Notation()
		} else {
			out[i] = string(m)
		}
	}
	return out
}

func printMoves(moves []types.Move, standard bool, indent string) {
	for _, line := range wrapMoves(moveStrings(moves, standard), 60) {
		fmt.Printf("%s%s\n", indent, line)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func underline(s string) string {
	return s + "\n" + strings.Repeat("-", len(s))
}
