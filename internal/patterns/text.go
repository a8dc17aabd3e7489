// Package patterns holds the per-intent extraction rules.
//
// Every rule is a pure function of its input: it returns the extracted intent
// payload and true, or a zero value and false when the text does not match.
// Matching is case-insensitive and operates on the trimmed utterance; captured
// fields keep the user's original casing.
package patterns

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	trailingPunct = regexp.MustCompile(`[\s.!?]+$`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
)

// Clean trims surrounding whitespace and trailing sentence punctuation.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	text = trailingPunct.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Capitalize upper-cases the first rune and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// collapse squeezes runs of whitespace left behind by token removal.
func collapse(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// cut removes s[start:end] and collapses the surrounding whitespace.
func cut(s string, start, end int) string {
	return collapse(s[:start] + " " + s[end:])
}

// group returns capture group i of m (as produced by FindStringSubmatchIndex), trimmed.
func group(s string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return strings.TrimSpace(s[m[2*i]:m[2*i+1]])
}

// firstSubmatch tries each pattern in order and returns the captures of the first match.
func firstSubmatch(patterns []*regexp.Regexp, text string) []string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			for i := range m {
				m[i] = strings.TrimSpace(m[i])
			}
			return m
		}
	}
	return nil
}
