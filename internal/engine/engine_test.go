package engine_test

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsablic/licenseid/internal/corpus"
	"github.com/dsablic/licenseid/internal/engine"
	"github.com/dsablic/licenseid/internal/match"
)

func embeddedText(t *testing.T, name string) string {
	t.Helper()
	for _, s := range corpus.Embedded() {
		if s.Name == name {
			return s.Text
		}
	}
	t.Fatalf("license %s not embedded", name)
	return ""
}

func twoLicenseEngine(t *testing.T) *engine.Engine {
	t.Helper()
	c, err := corpus.Build([]corpus.Source{
		{Name: "MIT", Text: embeddedText(t, "MIT")},
		{Name: "Apache-2.0", Text: embeddedText(t, "Apache-2.0")},
	})
	require.NoError(t, err)
	return engine.New(c)
}

func TestIdentifyEndToEnd(t *testing.T) {
	e := twoLicenseEngine(t)

	res, err := e.Identify(embeddedText(t, "Apache-2.0"))
	require.NoError(t, err)
	assert.Equal(t, "Apache-2.0", res.Name)
	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, embeddedText(t, "Apache-2.0"), res.Text)

	res, err = e.Identify("some unrelated prose about cooking")
	require.NoError(t, err)
	assert.Less(t, res.Score, 0.3)
	assert.Contains(t, []string{"MIT", "Apache-2.0"}, res.Name)
}

func TestIdentifyDeterministic(t *testing.T) {
	e, err := engine.Default()
	require.NoError(t, err)

	inputs := []string{
		"",
		embeddedText(t, "BSD-3-Clause") + "\nextra",
		"Permission is hereby granted, free of charge",
	}
	for _, in := range inputs {
		first, err := e.Identify(in)
		require.NoError(t, err)
		for range 3 {
			again, err := e.Identify(in)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestIdentifyConcurrent(t *testing.T) {
	e, err := engine.Default()
	require.NoError(t, err)

	names := e.Licenses()
	results := make([]match.Result, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, _ := e.Original(name)
			results[i], _ = e.Identify(text)
		}()
	}
	wg.Wait()

	for i, name := range names {
		assert.Equal(t, name, results[i].Name)
		assert.Equal(t, 1.0, results[i].Score)
	}
}

func TestSelfMatchAllEmbedded(t *testing.T) {
	e, err := engine.Default()
	require.NoError(t, err)

	for _, name := range e.Licenses() {
		text, ok := e.Original(name)
		require.True(t, ok)

		res, err := e.Identify(text)
		require.NoError(t, err)
		assert.Equal(t, name, res.Name)
		assert.Equal(t, 1.0, res.Score)
	}
}

func TestIdentifyEmptyCorpus(t *testing.T) {
	c, err := corpus.Build(nil)
	require.NoError(t, err)

	_, err = engine.New(c).Identify("MIT License")
	require.ErrorIs(t, err, match.ErrEmptyCorpus)
}

func TestZeroEngine(t *testing.T) {
	var e engine.Engine

	_, err := e.Identify("MIT License")
	require.ErrorIs(t, err, match.ErrEmptyCorpus)
	assert.Empty(t, e.Licenses())
	_, ok := e.Original("MIT")
	assert.False(t, ok)
	assert.Empty(t, e.Suggest("MIT", 3))
}

func TestIdentifyNoisyHeader(t *testing.T) {
	e, err := engine.Default()
	require.NoError(t, err)

	text := "Copyright (c) 2019 Jane Doe <jane@example.com>\n\n" +
		strings.ToUpper(embeddedText(t, "ISC"))
	res, err := e.Identify(text)
	require.NoError(t, err)
	assert.Equal(t, "ISC", res.Name)
	assert.Greater(t, res.Score, 0.8)
}

func TestOriginal(t *testing.T) {
	e := twoLicenseEngine(t)

	text, ok := e.Original("MIT")
	assert.True(t, ok)
	assert.Equal(t, embeddedText(t, "MIT"), text)

	text, ok = e.Original("Definitely-Not-A-License")
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestLicensesStable(t *testing.T) {
	e := twoLicenseEngine(t)

	first := e.Licenses()
	assert.Equal(t, []string{"Apache-2.0", "MIT"}, first)

	first[0] = "changed"
	assert.Equal(t, []string{"Apache-2.0", "MIT"}, e.Licenses())
}

func TestNormalizeTextRoundTrip(t *testing.T) {
	text := "\n\n  The   SOFTWARE is provided\n\n\"AS IS\"  \n\n"
	once := engine.NormalizeText(text)
	assert.Equal(t, "the software is provided\n\n\"as is\"", once)
	assert.Equal(t, once, engine.NormalizeText(once))
}

func TestLoadSnapshot(t *testing.T) {
	c, err := corpus.Build(corpus.Embedded())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, corpus.WriteSnapshot(&buf, c))

	e, err := engine.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Names(), e.Licenses())

	res, err := e.Identify(embeddedText(t, "Zlib"))
	require.NoError(t, err)
	assert.Equal(t, "Zlib", res.Name)
}

func TestLoadFailures(t *testing.T) {
	_, err := engine.Load(strings.NewReader("garbage"))
	require.ErrorIs(t, err, engine.ErrCorpusUnavailable)

	_, err = engine.Open(filepath.Join(t.TempDir(), "nope.gz"))
	require.ErrorIs(t, err, engine.ErrCorpusUnavailable)
}

func TestSuggest(t *testing.T) {
	e, err := engine.Default()
	require.NoError(t, err)

	tests := []struct {
		query string
		want  string
	}{
		{query: "mit", want: "MIT"},
		{query: "Apache2.0", want: "Apache-2.0"},
		{query: "BSD-3-Claus", want: "BSD-3-Clause"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := e.Suggest(tt.query, 3)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.want, got[0])
		})
	}

	assert.Empty(t, e.Suggest("Definitely-Not-A-License", 3))
}

func ExampleEngine_Identify() {
	c, _ := corpus.Build([]corpus.Source{
		{Name: "Hello", Text: "Hello, world"},
		{Name: "Goodbye", Text: "Goodbye, world"},
	})
	res, _ := engine.New(c).Identify("HELLO,   WORLD")
	fmt.Println(res.Name, res.Score)
	// Output: Hello 1
}
