// internal/scan/header.go
package scan

import (
	"strings"
	"unicode"

	"github.com/boyter/scc/v3/processor"
)

// Markers are the comment delimiters of one language.
type Markers struct {
	Line  []string
	Block [][2]string
}

// LanguageMarkers returns the comment delimiters scc knows for language.
// Docstring quotes, as in Python, count as block comments. Unknown
// languages have no markers.
func LanguageMarkers(language string) Markers {
	loadLanguages()

	processor.LanguageFeaturesMutex.Lock()
	f, ok := processor.LanguageFeatures[language]
	processor.LanguageFeaturesMutex.Unlock()
	if !ok {
		return Markers{}
	}

	m := Markers{Line: append([]string(nil), f.LineComment...)}
	for _, b := range f.MultiLine {
		if len(b) == 2 {
			m.Block = append(m.Block, [2]string{b[0], b[1]})
		}
	}
	for _, q := range f.Quotes {
		if q.DocString {
			m.Block = append(m.Block, [2]string{q.Start, q.End})
		}
	}
	return m
}

// Header returns the leading comment block of a source file with the
// comment markers removed. At most maxLines lines are inspected. Blank
// lines before the block and a shebang line are skipped. A block comment
// ends the header when it closes.
func Header(content string, maxLines int, m Markers) string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	var out []string
	closer := ""
	started := false
	for i, raw := range lines {
		l := strings.TrimSpace(raw)

		if i == 0 && strings.HasPrefix(l, "#!") {
			continue
		}

		if closer != "" {
			if end := strings.Index(l, closer); end >= 0 {
				out = append(out, stripBlockLine(l[:end]))
				return strings.Join(out, "\n")
			}
			out = append(out, stripBlockLine(l))
			continue
		}

		if l == "" {
			if started {
				out = append(out, "")
			}
			continue
		}

		if opener, blockEnd, ok := m.block(l); ok {
			started = true
			body := l[len(opener):]
			if end := strings.Index(body, blockEnd); end >= 0 {
				out = append(out, stripBlockLine(body[:end]))
				return strings.Join(out, "\n")
			}
			closer = blockEnd
			out = append(out, stripBlockLine(body))
			continue
		}

		body, ok := m.line(l)
		if !ok {
			break
		}
		started = true
		out = append(out, body)
	}
	return strings.Join(out, "\n")
}

// block returns the longest block opener that starts l.
func (m Markers) block(l string) (opener, closer string, ok bool) {
	for _, b := range m.Block {
		if b[0] != "" && b[1] != "" && strings.HasPrefix(l, b[0]) && len(b[0]) > len(opener) {
			opener, closer, ok = b[0], b[1], true
		}
	}
	return opener, closer, ok
}

// line strips the longest line comment marker from l. Word markers such
// as REM match in any case but only as a whole word. Repeats of a
// punctuation marker ("///", "####") and a doc comment "!" are folded
// into the marker.
func (m Markers) line(l string) (string, bool) {
	marker := ""
	for _, p := range m.Line {
		if len(p) <= len(marker) || len(l) < len(p) {
			continue
		}
		if isWord(p) {
			if strings.EqualFold(l[:len(p)], p) && (len(l) == len(p) || l[len(p)] == ' ' || l[len(p)] == '\t') {
				marker = p
			}
			continue
		}
		if strings.HasPrefix(l, p) {
			marker = p
		}
	}
	if marker == "" {
		return "", false
	}

	rest := l[len(marker):]
	if !isWord(marker) {
		rest = strings.TrimLeft(rest, marker[:1]+"!")
	}
	return strings.TrimSpace(rest), true
}

func isWord(marker string) bool {
	return unicode.IsLetter(rune(marker[len(marker)-1]))
}

func stripBlockLine(l string) string {
	l = strings.TrimSpace(l)
	l = strings.TrimPrefix(l, "*")
	return strings.TrimSpace(l)
}
