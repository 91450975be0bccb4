// Package corpus holds the reference licenses that queries are compared
// against. A Corpus is built once and never changes afterwards; every
// accessor returns copies so callers cannot reach its internal state.
package corpus

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dsablic/licenseid/internal/normalize"
)

var (
	// ErrDuplicateName is returned by Build when two entries share a name.
	ErrDuplicateName = errors.New("duplicate license name")
	// ErrCorpusUnavailable is returned when a snapshot is missing or malformed.
	ErrCorpusUnavailable = errors.New("license corpus unavailable")
)

// Source is a named reference text before normalization.
type Source struct {
	Name string
	Text string
}

// Entry is a single reference license.
type Entry struct {
	Name     string
	Lines    []string
	Original string
}

// Corpus maps license names to entries. The zero value is an empty corpus.
type Corpus struct {
	entries map[string]Entry
	names   []string
}

// Build normalizes every source and returns the resulting corpus.
func Build(sources []Source) (*Corpus, error) {
	entries := make([]Entry, 0, len(sources))
	for _, s := range sources {
		entries = append(entries, Entry{
			Name:     s.Name,
			Lines:    normalize.Lines(s.Text),
			Original: s.Text,
		})
	}
	return FromEntries(entries)
}

// FromEntries builds a corpus from entries whose canonical lines were
// computed ahead of time, such as those decoded from a snapshot.
func FromEntries(entries []Entry) (*Corpus, error) {
	c := &Corpus{
		entries: make(map[string]Entry, len(entries)),
		names:   make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if _, ok := c.entries[e.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		c.entries[e.Name] = Entry{
			Name:     e.Name,
			Lines:    clone(e.Lines),
			Original: e.Original,
		}
		c.names = append(c.names, e.Name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Lookup returns the entry registered under name.
func (c *Corpus) Lookup(name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.entries[name]
	if !ok {
		return Entry{}, false
	}
	e.Lines = clone(e.Lines)
	return e, true
}

// Names returns all license names in lexicographic order.
func (c *Corpus) Names() []string {
	if c == nil {
		return []string{}
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

func clone(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
