package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate(t *testing.T) {
	db := openTestDB(t)

	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != LatestVersion() {
		t.Errorf("version = %d, want %d", v, LatestVersion())
	}

	// running again is a no-op
	if err := db.MigrateUp(); err != nil {
		t.Fatal(err)
	}
	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("schema_version has %d rows", rows)
	}

	ms, err := loadMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) == 0 || ms[0].version != 1 || ms[0].name != "initial" {
		t.Errorf("migrations = %+v", ms)
	}
}

func TestInMemory(t *testing.T) {
	db, err := OpenAndMigrate(MemoryPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	solves := NewSolveRepository(db)
	id, err := solves.Create("start", "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	got, err := solves.Get(id)
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
}

func TestSolveLifecycle(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)

	id, err := solves.Create("state", "R U", "", "dev")
	if err != nil {
		t.Fatal(err)
	}

	s, err := solves.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if s.Status != StatusRunning {
		t.Errorf("status = %s", s.Status)
	}
	if s.ScrambleText == nil || *s.ScrambleText != "R U" {
		t.Errorf("scramble = %v", s.ScrambleText)
	}
	if s.Notes != nil {
		t.Errorf("empty notes should be NULL, got %q", *s.Notes)
	}
	if s.StartedAt.IsZero() {
		t.Error("started_at not parsed")
	}

	if err := solves.Finish(id, StatusSolved, "", 265, 180, 12); err != nil {
		t.Fatal(err)
	}
	s, _ = solves.Get(id)
	if s.Status != StatusSolved || s.RawMoveCount != 265 || s.OptimizedMoveCount != 180 {
		t.Errorf("finished solve = %+v", s)
	}
	if s.DurationMs == nil || *s.DurationMs != 12 {
		t.Errorf("duration = %v", s.DurationMs)
	}
	if s.StuckPhase != nil {
		t.Errorf("stuck phase = %q", *s.StuckPhase)
	}

	if err := solves.Finish("missing", StatusSolved, "", 0, 0, 0); err == nil {
		t.Error("finishing an unknown solve should fail")
	}

	missing, err := solves.Get("missing")
	if err != nil || missing != nil {
		t.Errorf("Get(missing) = %v, %v", missing, err)
	}
}

func TestListAndLast(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := solves.Create("state", "", "", "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	last, err := solves.GetLast()
	if err != nil {
		t.Fatal(err)
	}
	if last.SolveID != ids[2] {
		t.Errorf("last = %s, want %s", last.SolveID, ids[2])
	}

	list, err := solves.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].SolveID != ids[2] || list[1].SolveID != ids[1] {
		t.Errorf("list = %v", list)
	}
}

func TestFindByPrefix(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)

	id, err := solves.Create("state", "", "", "")
	if err != nil {
		t.Fatal(err)
	}

	s, err := solves.FindByPrefix(id[:8])
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.SolveID != id {
		t.Errorf("FindByPrefix = %v", s)
	}

	s, err = solves.FindByPrefix("zzzz")
	if err != nil || s != nil {
		t.Errorf("FindByPrefix(zzzz) = %v, %v", s, err)
	}

	if _, err := solves.Create("state", "", "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := solves.FindByPrefix(""); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("empty prefix err = %v", err)
	}

	// LIKE wildcards in the prefix are plain characters
	for _, p := range []string{"%", "_", id[:4] + "%"} {
		s, err := solves.FindByPrefix(p)
		if err != nil || s != nil {
			t.Errorf("FindByPrefix(%q) = %v, %v", p, s, err)
		}
	}
}

func TestMoveLogs(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSolveRepository(db).Create("state", "", "", "")
	if err != nil {
		t.Fatal(err)
	}

	moves := NewMoveRepository(db)
	raw := []types.Move{types.R, types.Ui, types.X, types.M}
	if err := moves.CreateBatch(id, LogRaw, raw); err != nil {
		t.Fatal(err)
	}
	if err := moves.CreateBatch(id, LogOptimized, raw[:2]); err != nil {
		t.Fatal(err)
	}

	records, err := moves.GetBySolve(id, LogRaw)
	if err != nil {
		t.Fatal(err)
	}
	if records[1].Notation != "U'" {
		t.Errorf("notation = %q", records[1].Notation)
	}
	got, err := ToMoves(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(raw) {
		t.Fatalf("got %v", got)
	}
	for i := range raw {
		if got[i] != raw[i] {
			t.Errorf("move %d = %s, want %s", i, got[i], raw[i])
		}
	}

	n, _ := moves.Count(id, LogOptimized)
	if n != 2 {
		t.Errorf("optimized count = %d", n)
	}

	// storing a log again replaces it
	if err := moves.CreateBatch(id, LogRaw, raw[:1]); err != nil {
		t.Fatal(err)
	}
	n, _ = moves.Count(id, LogRaw)
	if n != 1 {
		t.Errorf("raw count after replace = %d", n)
	}

	if _, err := ToMoves([]MoveRecord{{Token: "Q"}}); err == nil {
		t.Error("bad token should not convert")
	}
}

func TestPhaseDefsMatchSolver(t *testing.T) {
	db := openTestDB(t)
	defs, err := NewPhaseRepository(db).GetAllPhaseDefs()
	if err != nil {
		t.Fatal(err)
	}

	phases := solver.Phases()
	if len(defs) != len(phases) {
		t.Fatalf("%d phase defs, solver has %d phases", len(defs), len(phases))
	}
	for i, p := range phases {
		if defs[i].PhaseKey != p.String() || defs[i].DisplayName != p.DisplayName() {
			t.Errorf("def %d = %s/%s, want %s/%s", i, defs[i].PhaseKey, defs[i].DisplayName, p, p.DisplayName())
		}
	}

	def, err := NewPhaseRepository(db).GetPhaseDef("nope")
	if err != nil || def != nil {
		t.Errorf("GetPhaseDef(nope) = %v, %v", def, err)
	}
}

func TestPhaseSegmentsAndAverages(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)
	phases := NewPhaseRepository(db)

	solved, _ := solves.Create("a", "", "", "")
	stuck, _ := solves.Create("b", "", "", "")
	solves.Finish(solved, StatusSolved, "", 10, 8, 1)
	solves.Finish(stuck, StatusStuck, "second_layer", 4, 4, 1)

	segs := []PhaseSegment{
		{PhaseKey: "cross", StartIndex: 0, EndIndex: 5, MoveCount: 6},
		{PhaseKey: "cross_corners", StartIndex: 6, EndIndex: 5, MoveCount: 0},
		{PhaseKey: "second_layer", StartIndex: 6, EndIndex: 9, MoveCount: 4},
	}
	if err := phases.SaveSegments(solved, segs); err != nil {
		t.Fatal(err)
	}
	if err := phases.SaveSegments(stuck, segs[:1]); err != nil {
		t.Fatal(err)
	}

	got, err := phases.GetPhaseSegments(solved)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].PhaseKey != "cross" || got[2].MoveCount != 4 {
		t.Errorf("segments = %+v", got)
	}

	if err := phases.SaveSegments(solved, []PhaseSegment{{PhaseKey: "bogus"}}); err == nil {
		t.Error("unknown phase key should violate the foreign key")
	}
	got, _ = phases.GetPhaseSegments(solved)
	if len(got) != 3 {
		t.Errorf("failed save should roll back, have %d segments", len(got))
	}

	avgs, err := phases.GetPhaseAverages()
	if err != nil {
		t.Fatal(err)
	}
	if len(avgs) != len(solver.Phases()) {
		t.Fatalf("averages = %+v", avgs)
	}
	if avgs[0].PhaseKey != "cross" || avgs[0].Solves != 1 || avgs[0].AvgMoves != 6 {
		t.Errorf("cross average = %+v", avgs[0])
	}
	if avgs[6].Solves != 0 {
		t.Errorf("last phase average = %+v", avgs[6])
	}
}

func TestEvents(t *testing.T) {
	db := openTestDB(t)
	id, _ := NewSolveRepository(db).Create("state", "", "", "")
	events := NewEventRepository(db)

	type payload struct {
		Phase string `json:"phase"`
		Moves int    `json:"moves"`
	}
	if _, err := events.Create(id, 5, EventPhaseComplete, payload{"cross", 12}); err != nil {
		t.Fatal(err)
	}
	if _, err := events.Create(id, 9, EventStuck, payload{"second_layer", 30}); err != nil {
		t.Fatal(err)
	}

	all, err := events.GetBySolve(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].EventType != EventPhaseComplete {
		t.Fatalf("events = %+v", all)
	}

	var p payload
	if err := all[0].Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Phase != "cross" || p.Moves != 12 {
		t.Errorf("payload = %+v", p)
	}

	stuck, _ := events.GetByType(id, EventStuck)
	if len(stuck) != 1 || stuck[0].TsMs != 9 {
		t.Errorf("stuck events = %+v", stuck)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)
	id, _ := solves.Create("state", "", "", "")

	NewMoveRepository(db).CreateBatch(id, LogRaw, []types.Move{types.R})
	NewPhaseRepository(db).SaveSegments(id, []PhaseSegment{{PhaseKey: "cross", MoveCount: 1}})
	NewEventRepository(db).Create(id, 0, EventSolved, map[string]int{"moves": 1})

	if err := solves.Delete(id); err != nil {
		t.Fatal(err)
	}

	for _, table := range []string{"moves", "phase_segments", "events"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE solve_id = ?", id).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Errorf("%s still has %d rows", table, n)
		}
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)

	a, _ := solves.Create("a", "", "", "")
	b, _ := solves.Create("b", "", "", "")
	solves.Create("c", "", "", "")
	solves.Finish(a, StatusSolved, "", 300, 200, 10)
	solves.Finish(b, StatusStuck, "back_edges", 50, 40, 30)

	st, err := solves.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 2 || st.Solved != 1 || st.Stuck != 1 {
		t.Errorf("counts = %+v", st)
	}
	if st.AvgRawMoves != 300 || st.AvgOptimized != 200 || st.MinOptimized != 200 || st.MaxOptimized != 200 {
		t.Errorf("move stats = %+v", st)
	}
	if st.AvgDurationMs != 20 || st.TotalDurationMs != 40 {
		t.Errorf("duration stats = %+v", st)
	}
}
