// Package search implements the substring matching used to filter tasks
// by their text. Matching is case-insensitive by default using full
// Unicode case folding, so "STRASSE" finds "Straße".
package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher finds a fixed query inside task text.
// A Matcher is not safe for concurrent use.
type Matcher struct {
	query   string
	options Options
	caser   cases.Caser
}

// NewMatcher prepares a matcher for query. The query is used as given,
// spaces included.
func NewMatcher(query string, options Options) *Matcher {
	m := &Matcher{
		options: options,
		caser:   cases.Fold(),
	}
	if !options.CaseSensitive {
		query = m.caser.String(query)
	}
	m.query = query
	return m
}

// Empty reports whether the matcher accepts everything
func (m *Matcher) Empty() bool {
	return m.query == ""
}

// Match reports whether text contains the query. An empty query matches
// any text.
func (m *Matcher) Match(text string) bool {
	if m.Empty() {
		return true
	}
	if m.options.CaseSensitive {
		return strings.Contains(text, m.query)
	}
	return strings.Contains(m.caser.String(text), m.query)
}

// Find returns every non-overlapping occurrence of the query in text,
// as byte ranges of the original text
func (m *Matcher) Find(text string) []Span {
	if m.Empty() {
		return nil
	}

	haystack := text
	var offsets []int
	if !m.options.CaseSensitive {
		haystack, offsets = m.fold(text)
	}

	var spans []Span
	pos := 0
	for {
		idx := strings.Index(haystack[pos:], m.query)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(m.query)
		if offsets == nil {
			spans = append(spans, Span{Start: start, End: end})
		} else {
			spans = append(spans, originalSpan(offsets, start, end))
		}
		pos = end
	}
	return spans
}

// fold case-folds text rune by rune, recording for every folded byte the
// byte offset of the original rune it came from. The final entry maps the
// end of the folded text to len(text).
func (m *Matcher) fold(text string) (string, []int) {
	var b strings.Builder
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		f := m.caser.String(string(r))
		for j := 0; j < len(f); j++ {
			offsets = append(offsets, i)
		}
		b.WriteString(f)
	}
	offsets = append(offsets, len(text))
	return b.String(), offsets
}

// originalSpan maps a folded byte range back to whole runes of the
// original text. A range ending inside the expansion of one rune (ß folds
// to ss) is widened to cover that rune.
func originalSpan(offsets []int, start, end int) Span {
	k := end
	for k < len(offsets)-1 && offsets[k] == offsets[end-1] {
		k++
	}
	return Span{Start: offsets[start], End: offsets[k]}
}
