package corpus_test

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsablic/licenseid/internal/corpus"
)

func TestBuild(t *testing.T) {
	c, err := corpus.Build([]corpus.Source{
		{Name: "MIT", Text: "MIT License\n\nPermission is hereby granted"},
		{Name: "Apache-2.0", Text: "  Apache License\n  Version 2.0\n"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"Apache-2.0", "MIT"}, c.Names())

	e, ok := c.Lookup("MIT")
	require.True(t, ok)
	assert.Equal(t, "MIT", e.Name)
	assert.Equal(t, []string{"mit license", "", "permission is hereby granted"}, e.Lines)
	assert.Equal(t, "MIT License\n\nPermission is hereby granted", e.Original)
}

func TestBuildDuplicateName(t *testing.T) {
	_, err := corpus.Build([]corpus.Source{
		{Name: "MIT", Text: "a"},
		{Name: "MIT", Text: "b"},
	})
	require.ErrorIs(t, err, corpus.ErrDuplicateName)
}

func TestBuildEmpty(t *testing.T) {
	c, err := corpus.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Names())
}

func TestLookupUnknown(t *testing.T) {
	c, err := corpus.Build([]corpus.Source{{Name: "MIT", Text: "x"}})
	require.NoError(t, err)

	e, ok := c.Lookup("Definitely-Not-A-License")
	assert.False(t, ok)
	assert.Equal(t, corpus.Entry{}, e)
}

func TestLookupReturnsCopy(t *testing.T) {
	c, err := corpus.Build([]corpus.Source{{Name: "MIT", Text: "one\ntwo"}})
	require.NoError(t, err)

	e, _ := c.Lookup("MIT")
	e.Lines[0] = "mutated"

	again, _ := c.Lookup("MIT")
	assert.Equal(t, "one", again.Lines[0])

	names := c.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"MIT"}, c.Names())
}

func TestSnapshotRoundTrip(t *testing.T) {
	c, err := corpus.Build(corpus.Embedded())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, corpus.WriteSnapshot(&buf, c))

	loaded, err := corpus.ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Names(), loaded.Names())
	for _, name := range c.Names() {
		want, _ := c.Lookup(name)
		got, ok := loaded.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestReadSnapshotMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not gzip", data: []byte("{\"version\":1}")},
		{name: "bad version", data: gzipped(t, `{"version":99,"licenses":[]}`)},
		{name: "unknown field", data: gzipped(t, `{"version":1,"licenses":[],"extra":true}`)},
		{name: "no name", data: gzipped(t, `{"version":1,"licenses":[{"name":"","lines":["mit license"],"original":"MIT License"}]}`)},
		{name: "duplicate name", data: gzipped(t, `{"version":1,"licenses":[`+
			`{"name":"MIT","lines":["mit license"],"original":"MIT License"},`+
			`{"name":"MIT","lines":["mit license"],"original":"MIT License"}]}`)},
		{name: "outer blank lines", data: gzipped(t, `{"version":1,"licenses":[{"name":"MIT","lines":["","mit license",""],"original":"MIT License"}]}`)},
		{name: "upper case", data: gzipped(t, `{"version":1,"licenses":[{"name":"MIT","lines":["MIT License"],"original":"MIT License"}]}`)},
		{name: "repeated spaces", data: gzipped(t, `{"version":1,"licenses":[{"name":"MIT","lines":["mit  license"],"original":"MIT License"}]}`)},
		{name: "lines differ from original", data: gzipped(t, `{"version":1,"licenses":[{"name":"MIT","lines":["isc license"],"original":"MIT License"}]}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := corpus.ReadSnapshot(bytes.NewReader(tt.data))
			require.ErrorIs(t, err, corpus.ErrCorpusUnavailable)
		})
	}
}

func TestReadSnapshotCanonical(t *testing.T) {
	c, err := corpus.ReadSnapshot(bytes.NewReader(gzipped(t,
		`{"version":1,"licenses":[{"name":"MIT","lines":["mit license","","permission granted"],"original":"  MIT  License\n\nPermission granted\n"}]}`)))
	require.NoError(t, err)

	e, ok := c.Lookup("MIT")
	require.True(t, ok)
	assert.Equal(t, []string{"mit license", "", "permission granted"}, e.Lines)
}

func gzipped(t *testing.T, doc string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestOpenSnapshotMissing(t *testing.T) {
	_, err := corpus.OpenSnapshot(filepath.Join(t.TempDir(), "missing.json.gz"))
	require.ErrorIs(t, err, corpus.ErrCorpusUnavailable)
}

func TestSaveAndOpenSnapshot(t *testing.T) {
	c, err := corpus.Build([]corpus.Source{{Name: "ISC", Text: "ISC License"}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "corpus.json.gz")
	require.NoError(t, corpus.SaveSnapshot(path, c))

	loaded, err := corpus.OpenSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ISC"}, loaded.Names())
}

func TestEmbedded(t *testing.T) {
	sources := corpus.Embedded()
	require.NotEmpty(t, sources)

	var names []string
	for _, s := range sources {
		names = append(names, s.Name)
		assert.NotEmpty(t, s.Text, s.Name)
	}
	assert.Contains(t, names, "MIT")
	assert.Contains(t, names, "Apache-2.0")
	assert.IsIncreasing(t, names)
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "MIT.txt"), []byte("MIT License"), 0644)
	os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0644)
	os.Mkdir(filepath.Join(dir, "nested.txt"), 0755)

	sources, err := corpus.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, corpus.Source{Name: "MIT", Text: "MIT License"}, sources[0])
}
