// Package normalize reduces free-form license text to a canonical line
// sequence that can be compared across formatting differences.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Separator joins canonical lines when they are rendered as a single string.
const Separator = "\n"

// Lines returns the canonical form of text: one entry per input line, each
// trimmed, with internal whitespace collapsed to a single space and letters
// lower-cased. Blank lines at the start and end are dropped; blank lines in
// between are kept as empty entries. Empty input yields an empty slice.
func Lines(text string) []string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, line(l))
	}

	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}
	return lines[start:end:end]
}

// Text returns the canonical lines of text joined with Separator.
func Text(text string) string {
	return strings.Join(Lines(text), Separator)
}

func line(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Words returns the whitespace-separated words of a canonical line.
func Words(line string) []string {
	return strings.Fields(line)
}

// Signal reports how many words of a canonical line carry a letter or a
// digit. Punctuation-only and blank lines have zero signal.
func Signal(line string) int {
	n := 0
	for _, w := range strings.Fields(line) {
		if strings.IndexFunc(w, isAlnum) >= 0 {
			n++
		}
	}
	return n
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
