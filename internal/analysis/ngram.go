package analysis

import (
	"bytes"
	"sort"

	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// NGram is a move sequence that recurs in one or more logs. The solver
// replays fixed algorithms, so the frequent long n-grams are usually those
// algorithms, seen after the optimizer has merged them with their neighbours.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Tokens      []uint8           `json:"-"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence is one place an n-gram was seen.
type NGramOccurrence struct {
	SolveID    string `json:"solve_id,omitempty"`
	StartIndex int    `json:"start_index"`
}

// maxOccurrences caps the sample positions kept per n-gram.
const maxOccurrences = 10

// NGramReport holds the most frequent n-grams keyed by length.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"`
}

const hashBase = 31

// RollingHash is a Rabin-Karp hash over the last n tokens. The window is a
// ring buffer.
type RollingHash struct {
	n      int
	pow    uint64 // hashBase^(n-1)
	hash   uint64
	ring   []uint8
	head   int // index of the oldest token once the ring is full
	filled int
}

// NewRollingHash creates a rolling hash for windows of n tokens.
func NewRollingHash(n int) *RollingHash {
	pow := uint64(1)
	for i := 1; i < n; i++ {
		pow *= hashBase
	}
	return &RollingHash{n: n, pow: pow, ring: make([]uint8, n)}
}

// Add appends a token while the window is still filling. It is a no-op on a
// full window.
func (rh *RollingHash) Add(token uint8) {
	if rh.filled == rh.n {
		return
	}
	rh.ring[rh.filled] = token
	rh.filled++
	rh.hash = rh.hash*hashBase + uint64(token)
}

// Roll pushes a token, evicting the oldest one when the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if rh.filled < rh.n {
		rh.Add(token)
		return
	}
	old := rh.ring[rh.head]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*hashBase + uint64(token)
	rh.ring[rh.head] = token
	rh.head = (rh.head + 1) % rh.n
}

// Hash returns the hash of the current window.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Ready reports whether the window holds n tokens.
func (rh *RollingHash) Ready() bool {
	return rh.filled == rh.n
}

// Window returns a copy of the current window, oldest token first.
func (rh *RollingHash) Window() []uint8 {
	out := make([]uint8, 0, rh.filled)
	if rh.filled < rh.n {
		return append(out, rh.ring[:rh.filled]...)
	}
	out = append(out, rh.ring[rh.head:]...)
	return append(out, rh.ring[:rh.head]...)
}

// tally counts n-grams of one length. Entries sharing a hash are kept in a
// bucket and told apart by their tokens.
type tally struct {
	buckets map[uint64][]*NGram
}

func newTally() *tally {
	return &tally{buckets: make(map[uint64][]*NGram)}
}

func (t *tally) add(hash uint64, tokens []uint8, count int, occs []NGramOccurrence) {
	for _, ng := range t.buckets[hash] {
		if bytes.Equal(ng.Tokens, tokens) {
			ng.Count += count
			ng.Occurrences = appendOccurrences(ng.Occurrences, occs)
			return
		}
	}
	ng := &NGram{
		N:      len(tokens),
		Tokens: tokens,
		Count:  count,
	}
	ng.Occurrences = appendOccurrences(nil, occs)
	t.buckets[hash] = append(t.buckets[hash], ng)
}

func appendOccurrences(dst, src []NGramOccurrence) []NGramOccurrence {
	room := maxOccurrences - len(dst)
	if room <= 0 {
		return dst
	}
	return append(dst, src[:min(room, len(src))]...)
}

// top returns the topK n-grams seen at least minCount times, most frequent
// first with ties broken by token order.
func (t *tally) top(minCount, topK int) []NGram {
	var out []NGram
	for _, bucket := range t.buckets {
		for _, ng := range bucket {
			if ng.Count >= minCount {
				out = append(out, *ng)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return bytes.Compare(out[i].Tokens, out[j].Tokens) < 0
	})
	if len(out) > topK {
		out = out[:topK]
	}

	for i := range out {
		out[i].Sequence = make([]string, len(out[i].Tokens))
		for j, tok := range out[i].Tokens {
			out[i].Sequence[j] = string(types.MoveFromToken(tok))
		}
	}
	return out
}

func hashTokens(tokens []uint8) uint64 {
	rh := NewRollingHash(len(tokens))
	for _, tok := range tokens {
		rh.Add(tok)
	}
	return rh.Hash()
}

// MineNGrams finds the topK most frequent n-grams for each n in [minN, maxN].
// Only sequences that occur at least twice are reported.
func MineNGrams(moves []types.Move, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}

	tokens := make([]uint8, len(moves))
	for i, m := range moves {
		tokens[i] = m.Token()
	}

	for n := max(minN, 1); n <= maxN && n <= len(tokens); n++ {
		t := newTally()
		rh := NewRollingHash(n)
		for i, tok := range tokens {
			rh.Roll(tok)
			if !rh.Ready() {
				continue
			}
			start := i - n + 1
			t.add(rh.Hash(), rh.Window(), 1, []NGramOccurrence{{StartIndex: start}})
		}
		if top := t.top(2, topK); len(top) > 0 {
			report.TopNGrams[n] = top
		}
	}

	return report
}

// MineNGramsAcrossSolves merges per-solve reports, keyed by solve ID, for
// every n in [minN, maxN]. Occurrences are tagged with their solve.
func MineNGramsAcrossSolves(solveNGrams map[string]*NGramReport, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}

	// visit solves in a stable order so the sampled occurrences are too
	ids := make([]string, 0, len(solveNGrams))
	for id := range solveNGrams {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for n := minN; n <= maxN; n++ {
		t := newTally()
		for _, id := range ids {
			for _, ng := range solveNGrams[id].TopNGrams[n] {
				occs := make([]NGramOccurrence, len(ng.Occurrences))
				for i, occ := range ng.Occurrences {
					occ.SolveID = id
					occs[i] = occ
				}
				t.add(hashTokens(ng.Tokens), ng.Tokens, ng.Count, occs)
			}
		}
		if top := t.top(1, topK); len(top) > 0 {
			report.TopNGrams[n] = top
		}
	}

	return report
}
