package corpus

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/dsablic/licenseid/internal/normalize"
)

// SnapshotVersion is the snapshot format written by WriteSnapshot.
const SnapshotVersion = 1

type snapshot struct {
	Version  int             `json:"version"`
	Licenses []snapshotEntry `json:"licenses"`
}

type snapshotEntry struct {
	Name     string   `json:"name"`
	Lines    []string `json:"lines"`
	Original string   `json:"original"`
}

// WriteSnapshot encodes c, including its canonical lines, as a gzip
// compressed JSON document.
func WriteSnapshot(w io.Writer, c *Corpus) error {
	snap := snapshot{Version: SnapshotVersion}
	for _, name := range c.Names() {
		e, _ := c.Lookup(name)
		snap.Licenses = append(snap.Licenses, snapshotEntry{
			Name:     e.Name,
			Lines:    e.Lines,
			Original: e.Original,
		})
	}

	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		zw.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot. Any failure,
// including duplicate names inside the snapshot, is reported as
// ErrCorpusUnavailable.
func ReadSnapshot(r io.Reader) (*Corpus, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	defer zr.Close()

	var snap snapshot
	dec := json.NewDecoder(zr)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCorpusUnavailable, err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", ErrCorpusUnavailable, snap.Version)
	}

	entries := make([]Entry, 0, len(snap.Licenses))
	for i, l := range snap.Licenses {
		if l.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrCorpusUnavailable, i)
		}
		lines := l.Lines
		if lines == nil {
			lines = []string{}
		}
		if err := checkLines(l.Name, lines, l.Original); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: l.Name, Lines: lines, Original: l.Original})
	}

	c, err := FromEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	return c, nil
}

// checkLines rejects entries whose stored lines are not what the current
// normalizer produces for their original text. A snapshot written by an
// older normalizer fails here instead of scoring its own texts below 1.
func checkLines(name string, lines []string, original string) error {
	if !slices.Equal(normalize.Lines(strings.Join(lines, normalize.Separator)), lines) {
		return fmt.Errorf("%w: entry %q has non-canonical lines", ErrCorpusUnavailable, name)
	}
	if !slices.Equal(normalize.Lines(original), lines) {
		return fmt.Errorf("%w: entry %q lines do not match its original text", ErrCorpusUnavailable, name)
	}
	return nil
}

// OpenSnapshot reads the snapshot stored at path.
func OpenSnapshot(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// SaveSnapshot writes c to path, replacing any existing file.
func SaveSnapshot(path string, c *Corpus) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := WriteSnapshot(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
