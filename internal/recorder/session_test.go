package recorder

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.OpenAndMigrate(storage.MemoryPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordSolve(t *testing.T) {
	db := openTestDB(t)

	var phases []solver.Phase
	s := NewSession(db, WithAppVersion("test"), WithPhaseCallback(func(p solver.Phase, n int) {
		phases = append(phases, p)
	}))
	if s.State() != StateIdle {
		t.Errorf("state = %s", s.State())
	}

	scramble := cube.Scramble(rand.New(rand.NewSource(1)), 25)
	c := cube.NewSolved()
	c.ApplyMoves(scramble)
	start := c.FlatString()

	run, err := s.Record(c, scramble, "first")
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsSolved() || !run.Solved() {
		t.Fatalf("run status = %s", run.Status)
	}
	if s.State() != StateEnded || s.SolveID() != run.SolveID {
		t.Errorf("session = %s/%s", s.State(), s.SolveID())
	}
	if len(phases) != len(solver.Phases()) {
		t.Errorf("phase callbacks = %v", phases)
	}
	if run.Start.FlatString() != start {
		t.Error("run should keep the unsolved start state")
	}

	total := 0
	for i, seg := range run.Segments {
		if seg.StartIndex != total || seg.EndIndex != total+seg.MoveCount-1 {
			t.Errorf("segment %d = %+v", i, seg)
		}
		total += seg.MoveCount
	}
	if total != len(run.Moves) {
		t.Errorf("segments cover %d of %d moves", total, len(run.Moves))
	}

	loaded, err := Load(db, run.SolveID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Start.FlatString() != start || loaded.Notes != "first" {
		t.Errorf("loaded = %+v", loaded)
	}
	if !equalMoves(loaded.Moves, run.Moves) || !equalMoves(loaded.Optimized, run.Optimized) {
		t.Error("move logs did not survive a round trip")
	}
	if !equalMoves(loaded.Scramble, scramble) {
		t.Errorf("scramble = %v", loaded.Scramble)
	}
	if len(loaded.Segments) != len(run.Segments) {
		t.Errorf("segments = %+v", loaded.Segments)
	}

	// the stored optimized log must still solve the stored start state
	replay := loaded.Start.Clone()
	replay.ApplyMoves(loaded.Optimized)
	if !replay.IsSolved() {
		t.Error("stored optimized log does not solve the start state")
	}

	events, _ := storage.NewEventRepository(db).GetBySolve(run.SolveID)
	if len(events) != len(solver.Phases())+1 || events[len(events)-1].EventType != storage.EventSolved {
		t.Errorf("events = %+v", events)
	}
	var pe PhaseEvent
	if err := events[0].Decode(&pe); err != nil || pe.Phase != "cross" {
		t.Errorf("first event = %+v, %v", pe, err)
	}
}

func TestRecordStuck(t *testing.T) {
	db := openTestDB(t)
	s := NewSession(db)

	flat := []byte(cube.SolvedFlat)
	flat[15], flat[8], flat[14] = 'O', 'W', 'G'
	c := cube.MustNew(string(flat))

	run, err := s.Record(c, nil, "")
	if !errors.Is(err, solver.ErrStuck) {
		t.Fatalf("err = %v", err)
	}
	if run == nil || run.Status != storage.StatusStuck || run.StuckPhase == "" {
		t.Fatalf("run = %+v", run)
	}

	solve, err := storage.NewSolveRepository(db).Get(run.SolveID)
	if err != nil {
		t.Fatal(err)
	}
	if solve.Status != storage.StatusStuck || solve.StuckPhase == nil || *solve.StuckPhase != run.StuckPhase {
		t.Errorf("stored solve = %+v", solve)
	}

	stuck, _ := storage.NewEventRepository(db).GetByType(run.SolveID, storage.EventStuck)
	if len(stuck) != 1 {
		t.Fatalf("stuck events = %+v", stuck)
	}
	var ev StuckEvent
	if err := stuck[0].Decode(&ev); err != nil || ev.Reason == "" || ev.Total != len(run.Moves) {
		t.Errorf("stuck event = %+v, %v", ev, err)
	}

	last := run.Segments[len(run.Segments)-1]
	if last.PhaseKey != run.StuckPhase || last.EndIndex != len(run.Moves)-1 {
		t.Errorf("last segment = %+v", last)
	}
}

func TestRecordStoreFailureMarksSolveFailed(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec("DROP TABLE events"); err != nil {
		t.Fatal(err)
	}

	c := cube.NewSolved()
	c.Sequence("R U")
	run, err := NewSession(db).Record(c, nil, "")
	if err == nil {
		t.Fatal("expected a storage error")
	}
	if run == nil || run.Status != storage.StatusFailed {
		t.Fatalf("run = %+v", run)
	}

	solve, err := storage.NewSolveRepository(db).Get(run.SolveID)
	if err != nil {
		t.Fatal(err)
	}
	if solve.Status != storage.StatusFailed || solve.RawMoveCount != 0 {
		t.Errorf("stored solve = %+v", solve)
	}
}

func TestRecordWithoutOptimize(t *testing.T) {
	db := openTestDB(t)
	c := cube.NewSolved()
	c.Sequence("R U Ri Ui")

	run, err := NewSession(db, WithOptimize(false)).Record(c, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if !equalMoves(run.Moves, run.Optimized) {
		t.Error("optimized log should be a copy of the raw log")
	}
}

func TestResolve(t *testing.T) {
	db := openTestDB(t)
	s := NewSession(db)

	var ids []string
	for i := 0; i < 2; i++ {
		c := cube.NewSolved()
		c.Sequence("F R")
		run, err := s.Record(c, []types.Move{types.F, types.R}, "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, run.SolveID)
	}

	last, err := Resolve(db, "")
	if err != nil || last == nil || last.SolveID != ids[1] {
		t.Fatalf("Resolve(\"\") = %v, %v", last, err)
	}
	first, err := Resolve(db, ids[0][:13])
	if err != nil || first == nil || first.SolveID != ids[0] {
		t.Fatalf("Resolve(prefix) = %v, %v", first, err)
	}
	none, err := Load(db, "missing")
	if err != nil || none != nil {
		t.Errorf("Load(missing) = %v, %v", none, err)
	}
}

func TestRunSummary(t *testing.T) {
	db := openTestDB(t)
	c := cube.NewSolved()
	c.Sequence("R U F")

	run, err := NewSession(db).Record(c, []types.Move{types.R, types.U, types.F}, "note")
	if err != nil {
		t.Fatal(err)
	}
	sum := run.Summary()
	if sum.TotalMoves != len(run.Moves) || sum.OptimizedMoves != len(run.Optimized) {
		t.Errorf("summary = %+v", sum)
	}
	if sum.ScrambleLength != 3 || sum.Notes != "note" {
		t.Errorf("summary = %+v", sum)
	}
	if len(sum.PhaseStats) != len(solver.Phases()) || sum.PhaseStats[0].DisplayName != "Front Cross" {
		t.Errorf("phase stats = %+v", sum.PhaseStats)
	}
}

func equalMoves(a, b []types.Move) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
