// Package engine is the entry point for license identification. An Engine
// is built around one corpus at startup and is safe for concurrent use.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/dsablic/licenseid/internal/corpus"
	"github.com/dsablic/licenseid/internal/match"
	"github.com/dsablic/licenseid/internal/normalize"
)

// ErrCorpusUnavailable is returned when the reference corpus cannot be loaded.
var ErrCorpusUnavailable = corpus.ErrCorpusUnavailable

// Engine identifies license texts against a fixed corpus. It has no
// methods that modify the corpus. Create one with New, Default, Load or
// Open; the zero Engine behaves as an empty corpus.
type Engine struct {
	corpus *corpus.Corpus
	index  *match.Index
}

// New returns an Engine over c.
func New(c *corpus.Corpus) *Engine {
	return &Engine{corpus: c, index: match.NewIndex(c)}
}

// Default returns an Engine over the licenses embedded in the binary.
func Default() (*Engine, error) {
	c, err := corpus.Build(corpus.Embedded())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	slog.Debug("corpus loaded", "source", "embedded", "licenses", c.Len())
	return New(c), nil
}

// Load reads a corpus snapshot from r.
func Load(r io.Reader) (*Engine, error) {
	c, err := corpus.ReadSnapshot(r)
	if err != nil {
		return nil, err
	}
	slog.Debug("corpus loaded", "source", "snapshot", "licenses", c.Len())
	return New(c), nil
}

// Open reads the corpus snapshot at path.
func Open(path string) (*Engine, error) {
	c, err := corpus.OpenSnapshot(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("corpus loaded", "source", path, "licenses", c.Len())
	return New(c), nil
}

// NormalizeText returns the canonical form of text as a single string.
func NormalizeText(text string) string {
	return normalize.Text(text)
}

// NormalizeText is the method form of the package-level NormalizeText.
func (e *Engine) NormalizeText(text string) string {
	return NormalizeText(text)
}

// Identify returns the corpus entry that best matches text.
func (e *Engine) Identify(text string) (match.Result, error) {
	return e.index.Best(normalize.Lines(text))
}

// Licenses returns the names of all known licenses in lexicographic order.
func (e *Engine) Licenses() []string {
	return e.corpus.Names()
}

// Original returns the unmodified reference text of the named license.
func (e *Engine) Original(name string) (string, bool) {
	entry, ok := e.corpus.Lookup(name)
	if !ok {
		return "", false
	}
	return entry.Original, true
}

// maxSuggestDistance bounds how far a misspelled name may be from a known one.
const maxSuggestDistance = 3

// Suggest returns known names closest to name, nearest first. Matching
// ignores case.
func (e *Engine) Suggest(name string, limit int) []string {
	type candidate struct {
		name string
		dist int
	}

	query := normalize.Text(name)
	var cands []candidate
	for _, n := range e.corpus.Names() {
		d := levenshtein.ComputeDistance(query, normalize.Text(n))
		if d <= maxSuggestDistance {
			cands = append(cands, candidate{name: n, dist: d})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].dist < cands[j].dist
	})
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}

	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.name)
	}
	return out
}
