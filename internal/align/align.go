// Package align matches two independently-timed subtitle tracks by temporal
// overlap, producing one text pair per master cue so that tracks with
// different native line counts regain 1:1 row correspondence.
package align

import (
	"sort"
	"strings"

	"sublint/internal/subtitles"
)

// minOverlapMS is the absolute overlap a pool cue must share with a master
// cue to qualify on its own.
const minOverlapMS = 200

// Pair is the aligned output for one master cue. MatchedText is the
// newline-joined text of every pool cue matched to the master cue, in
// ascending pool order, or "" when nothing qualified.
type Pair struct {
	MasterText  string
	MatchedText string
}

// Pairs aligns pool cues onto master cues. The result always has exactly
// one entry per master cue, in master order.
//
// A pool cue qualifies for a master cue when their windows overlap by at
// least minOverlapMS, or when more than half of the pool cue's own span
// falls inside the master window (which catches very short cues that can
// never reach the absolute threshold). Each pool cue is consumed by the
// first master cue it matches and never considered again, so one line of
// dialogue cannot be attributed to two rows.
//
// The whole remaining pool is scanned for every master cue rather than a
// sliding window; the two timelines are close but not mutually monotonic
// at segment boundaries.
func Pairs(master, pool []subtitles.Cue) []Pair {
	pairs := make([]Pair, len(master))
	consumed := make([]bool, len(pool))

	for mi, m := range master {
		var matched []int
		for pi, p := range pool {
			if consumed[pi] {
				continue
			}
			if !qualifies(m, p) {
				continue
			}
			consumed[pi] = true
			matched = append(matched, pi)
		}

		// Scan order already ascends, but the contract is chronological
		// output regardless of discovery order.
		sort.Ints(matched)

		texts := make([]string, len(matched))
		for i, pi := range matched {
			texts[i] = subtitles.CleanText(pool[pi].Text)
		}
		pairs[mi] = Pair{
			MasterText:  subtitles.CleanText(m.Text),
			MatchedText: strings.Join(texts, "\n"),
		}
	}

	return pairs
}

func qualifies(m, p subtitles.Cue) bool {
	ov := overlapMS(m, p)
	if ov >= minOverlapMS {
		return true
	}
	return float64(ov)/float64(p.DurationMS()) > 0.5
}

func overlapMS(a, b subtitles.Cue) int64 {
	start := a.Start
	if b.Start > start {
		start = b.Start
	}
	end := a.End
	if b.End < end {
		end = b.End
	}
	if end <= start {
		return 0
	}
	return end - start
}
