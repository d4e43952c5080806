package cli

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/recorder"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"negative scramble", func(c *Config) { c.ScrambleLength = -1 }},
		{"zero replay speed", func(c *Config) { c.ReplaySpeedMs = 0 }},
	}
	for _, tt := range tests {
		c := DefaultConfig()
		tt.modify(c)
		if err := validateConfig(c); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := DefaultConfig()
	want.DBPath = "/tmp/solves.db"
	want.ScrambleLength = 33

	if err := SaveConfig(want, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "scramble_length: 33") {
		t.Errorf("unexpected yaml:\n%s", data)
	}

	var got Config
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != *want {
		t.Errorf("got %+v, want %+v", got, *want)
	}
}

func TestWrapMoves(t *testing.T) {
	lines := wrapMoves([]string{"R", "U", "Ri", "F"}, 4)
	want := []string{"R U", "Ri F"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if wrapMoves(nil, 10) != nil {
		t.Error("no moves should give no lines")
	}
}

func TestRenderNet(t *testing.T) {
	out := renderNet(cube.NewSolved())
	for _, col := range cube.NewSolved().Colors() {
		if !strings.ContainsRune(out, rune(col)) {
			t.Errorf("net is missing %c:\n%s", col, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 9 {
		t.Errorf("net has %d lines, want 9", got)
	}
}

func TestHelpers(t *testing.T) {
	durations := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m30.0s"},
	}
	for _, tt := range durations {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}

	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := shortID("0123456789"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}

	lo, hi, avg := minMaxAvg([]int{3, 1, 2})
	if lo != 1 || hi != 3 || avg != 2 {
		t.Errorf("minMaxAvg = %d %d %v", lo, hi, avg)
	}
	if lo, hi, avg := minMaxAvg(nil); lo != 0 || hi != 0 || avg != 0 {
		t.Error("empty input should give zeros")
	}

	moves := []types.Move{types.R, types.Ui}
	if got := formatMoves(moves, true); got != "R U'" {
		t.Errorf("standard = %q", got)
	}
	if got := formatMoves(moves, false); got != "R Ui" {
		t.Errorf("tokens = %q", got)
	}
}

// testRun is a solved cube after "R U" together with the two moves that
// undo it.
func testRun() *recorder.Run {
	start := cube.NewSolved()
	start.ApplyMoves([]types.Move{types.R, types.U})
	return &recorder.Run{
		SolveID:   "0123456789abcdef",
		Status:    storage.StatusSolved,
		Start:     start,
		Scramble:  []types.Move{types.R, types.U},
		Moves:     []types.Move{types.Ui, types.Ri},
		Optimized: []types.Move{types.Ui, types.Ri},
		Segments: []storage.PhaseSegment{
			{PhaseKey: "cross", StartIndex: 0, EndIndex: 1, MoveCount: 2},
		},
	}
}

func TestExportMoves(t *testing.T) {
	run := testRun()

	txt, err := exportMoves(run, storage.LogOptimized, "txt", true)
	if err != nil {
		t.Fatal(err)
	}
	if txt != "U' R'" {
		t.Errorf("txt = %q", txt)
	}

	out, err := exportMoves(run, storage.LogRaw, "JSON", false)
	if err != nil {
		t.Fatal(err)
	}
	var doc ExportJSON
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.SolveID != run.SolveID || doc.Log != storage.LogRaw || doc.Scramble != "R U" {
		t.Errorf("doc = %+v", doc)
	}
	if len(doc.Moves) != 2 || doc.Moves[1].Token != "Ri" || doc.Moves[1].Notation != "R'" || doc.Moves[1].MoveIndex != 1 {
		t.Errorf("moves = %+v", doc.Moves)
	}
	if doc.StartState != run.Start.FlatString() {
		t.Errorf("start state = %s", doc.StartState)
	}

	if _, err := exportMoves(run, "both", "txt", false); err == nil {
		t.Error("expected error for unknown log")
	}
	if _, err := exportMoves(run, storage.LogRaw, "csv", false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestReplayStepMode(t *testing.T) {
	m, err := newReplayModel(testRun(), storage.LogRaw, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	if m.Init() != nil {
		t.Error("step mode should not schedule ticks")
	}

	m.Update(key('n'))
	if m.index != 1 || m.tracker.IsSolved() {
		t.Fatalf("after one step: index %d", m.index)
	}
	m.Update(key('n'))
	if m.index != 2 || !m.tracker.IsSolved() {
		t.Fatalf("after two steps: index %d solved %v", m.index, m.tracker.IsSolved())
	}
	m.Update(key('n'))
	if m.index != 2 {
		t.Error("stepping past the end should do nothing")
	}

	if p, ok := m.solverPhase(); !ok || p.String() != "cross" {
		t.Errorf("solver phase = %v %v", p, ok)
	}
	if !strings.Contains(m.View(), "SOLVED!") {
		t.Error("view should report the solved cube")
	}

	m.Update(key('r'))
	if m.index != 0 || m.tracker.IsSolved() {
		t.Error("reset should return to the start")
	}

	if _, cmd := m.Update(key('q')); cmd == nil || !m.quitting {
		t.Error("q should quit")
	}
}

func TestReplayTicks(t *testing.T) {
	m, err := newReplayModel(testRun(), storage.LogOptimized, 10, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.speedMs != minReplaySpeedMs {
		t.Errorf("speed = %d, want clamped to %d", m.speedMs, minReplaySpeedMs)
	}
	if m.Init() == nil {
		t.Fatal("playback should schedule a tick")
	}

	m.Update(replayStepMsg{gen: m.gen + 1})
	if m.index != 0 {
		t.Error("a tick from another generation should be ignored")
	}

	if _, cmd := m.Update(replayStepMsg{gen: m.gen}); cmd == nil || m.index != 1 {
		t.Errorf("tick should step and reschedule, index %d", m.index)
	}
	if _, cmd := m.Update(replayStepMsg{gen: m.gen}); cmd != nil || m.index != 2 {
		t.Errorf("last tick should not reschedule, index %d", m.index)
	}

	if _, ok := m.solverPhase(); ok {
		t.Error("optimized log has no phase boundaries")
	}

	m.Update(key('p'))
	if !m.paused {
		t.Error("p should pause")
	}
	m.Update(key('-'))
	if m.speedMs != 2*minReplaySpeedMs {
		t.Errorf("speed = %d", m.speedMs)
	}

	if _, err := newReplayModel(testRun(), "both", 100, false); err == nil {
		t.Error("expected error for unknown log")
	}
}

func TestLoadTrendData(t *testing.T) {
	db, err := storage.OpenAndMigrate(storage.MemoryPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	session := recorder.NewSession(db)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 2; i++ {
		scramble := cube.Scramble(rng, 15)
		c := cube.NewSolved()
		c.ApplyMoves(scramble)
		if _, err := session.Record(c, scramble, ""); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	runs, err := loadTrendData(db, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d", len(runs))
	}
	for _, r := range runs {
		if len(r.PhaseMoves) != 7 {
			t.Errorf("phase moves = %v", r.PhaseMoves)
		}
		if r.OptimizedMoves == 0 || r.OptimizedMoves > r.RawMoves {
			t.Errorf("run = %+v", r)
		}
	}
}

func TestNegativeScrambleLength(t *testing.T) {
	oldBench, oldCount := benchLength, benchCount
	oldSolve, oldRandom, oldScramble := solveLength, solveRandom, solveScramble
	t.Cleanup(func() {
		benchLength, benchCount = oldBench, oldCount
		solveLength, solveRandom, solveScramble = oldSolve, oldRandom, oldScramble
	})

	benchLength, benchCount = -3, 1
	if err := runBench(benchCmd, nil); err == nil {
		t.Error("bench should reject a negative length")
	}

	solveLength, solveRandom, solveScramble = -3, true, ""
	if _, _, err := startingCube(nil); err == nil {
		t.Error("solve --random should reject a negative length")
	}
}
