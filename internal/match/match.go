// Package match scores a canonical query against every license in a corpus
// and picks the closest one.
//
// A score combines two weighted Dice coefficients: one over the multiset of
// canonical lines, where each line counts once per word carrying a letter
// or digit, and one over the multiset of word bigrams of the whole text,
// which survives re-wrapped paragraphs. The larger of the two wins. Only
// identical canonical texts score exactly 1.
package match

import (
	"errors"
	"math"
	"slices"

	"github.com/dsablic/licenseid/internal/corpus"
)

// ErrEmptyCorpus is returned when there is nothing to match against.
var ErrEmptyCorpus = errors.New("corpus has no entries")

// Result is the best match for a query.
type Result struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// Index holds precomputed profiles for every entry of a corpus.
type Index struct {
	names    []string
	profiles []*profile
	texts    []string
}

// NewIndex profiles every entry of c. The corpus is not retained.
func NewIndex(c *corpus.Corpus) *Index {
	names := c.Names()
	idx := &Index{
		names:    names,
		profiles: make([]*profile, len(names)),
		texts:    make([]string, len(names)),
	}
	for i, name := range names {
		e, _ := c.Lookup(name)
		idx.profiles[i] = newProfile(e.Lines)
		idx.texts[i] = e.Original
	}
	return idx
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.names)
}

// Best returns the highest scoring entry for query. Entries are visited
// in name order and only a strictly higher score replaces the current
// best, so ties go to the lexicographically first name.
func (idx *Index) Best(query []string) (Result, error) {
	if idx.Len() == 0 {
		return Result{}, ErrEmptyCorpus
	}

	q := newProfile(query)
	best, bestScore := -1, 0.0
	for i, e := range idx.profiles {
		if best >= 0 && !slices.Equal(q.lines, e.lines) && bound(q, e) <= bestScore {
			continue
		}
		s := score(q, e)
		if best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}

	return Result{
		Name:  idx.names[best],
		Score: bestScore,
		Text:  idx.texts[best],
	}, nil
}

// Score returns the score of query against the named entry.
func (idx *Index) Score(query []string, name string) (float64, bool) {
	if idx == nil {
		return 0, false
	}
	i, ok := slices.BinarySearch(idx.names, name)
	if !ok {
		return 0, false
	}
	return score(newProfile(query), idx.profiles[i]), true
}

// BestMatch indexes c and returns the best entry for query.
func BestMatch(query []string, c *corpus.Corpus) (Result, error) {
	return NewIndex(c).Best(query)
}

func score(q, e *profile) float64 {
	if slices.Equal(q.lines, e.lines) {
		return 1
	}
	s := max(
		dice(lineOverlap(q, e), q.lineW, e.lineW),
		dice(flowOverlap(q, e), q.flowW, e.flowW),
	)
	if s >= 1 {
		s = math.Nextafter(1, 0)
	}
	return s
}
