package match

import "github.com/dsablic/licenseid/internal/normalize"

const startToken = "\x00"

// profile is the precomputed shape of one canonical text.
type profile struct {
	lines  []string
	line   map[string]int // line -> occurrences
	lineW  int            // Σ occurrences·signal
	flow   map[bigram]int
	flowW  int
	weight map[string]int // line -> signal, cached
}

type bigram struct{ a, b string }

func newProfile(lines []string) *profile {
	p := &profile{
		lines:  lines,
		line:   make(map[string]int, len(lines)),
		flow:   make(map[bigram]int),
		weight: make(map[string]int, len(lines)),
	}

	prev := startToken
	for _, l := range lines {
		p.line[l]++
		w, ok := p.weight[l]
		if !ok {
			w = normalize.Signal(l)
			p.weight[l] = w
		}
		p.lineW += w

		for _, word := range normalize.Words(l) {
			p.flow[bigram{prev, word}]++
			p.flowW++
			prev = word
		}
	}
	return p
}

// lineOverlap is Σ min(count)·signal over lines present in both profiles.
func lineOverlap(q, e *profile) int {
	small, large := q, e
	if len(large.line) < len(small.line) {
		small, large = large, small
	}
	common := 0
	for l, n := range small.line {
		m, ok := large.line[l]
		if !ok {
			continue
		}
		common += min(n, m) * small.weight[l]
	}
	return common
}

func flowOverlap(q, e *profile) int {
	small, large := q, e
	if len(large.flow) < len(small.flow) {
		small, large = large, small
	}
	common := 0
	for g, n := range small.flow {
		common += min(n, large.flow[g])
	}
	return common
}

// dice returns 2·common/total, or 0 when total is 0.
func dice(common, totalQ, totalE int) float64 {
	if totalQ+totalE == 0 {
		return 0
	}
	return float64(2*common) / float64(totalQ+totalE)
}

// bound is the largest score q could reach against e.
func bound(q, e *profile) float64 {
	return max(
		dice(min(q.lineW, e.lineW), q.lineW, e.lineW),
		dice(min(q.flowW, e.flowW), q.flowW, e.flowW),
	)
}
