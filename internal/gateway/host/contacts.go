package host

import (
	"regexp"
	"sort"
	"strings"
)

var nonDialRe = regexp.MustCompile(`[^0-9+]`)

// Contacts maps display names to phone numbers.
type Contacts struct {
	names   []string // sorted for deterministic lookup
	numbers map[string]string
}

// NewContacts creates a directory from name -> number.
func NewContacts(entries map[string]string) *Contacts {
	c := &Contacts{numbers: make(map[string]string, len(entries))}
	for name, number := range entries {
		c.names = append(c.names, name)
		c.numbers[name] = number
	}
	sort.Strings(c.names)
	return c
}

// Lookup finds the number for query. An exact (case-insensitive) name wins
// over a name that starts with query, which wins over one containing it.
func (c *Contacts) Lookup(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	var prefix, contains string
	for _, name := range c.names {
		lower := strings.ToLower(name)
		switch {
		case lower == q:
			return c.numbers[name], true
		case prefix == "" && strings.HasPrefix(lower, q):
			prefix = c.numbers[name]
		case contains == "" && strings.Contains(lower, q):
			contains = c.numbers[name]
		}
	}
	if prefix != "" {
		return prefix, true
	}
	if contains != "" {
		return contains, true
	}
	return "", false
}

// Number resolves target to a number, treating unknown targets as numbers.
func (c *Contacts) Number(target string) string {
	if n, ok := c.Lookup(target); ok {
		return n
	}
	return strings.TrimSpace(target)
}

// dialable strips everything but digits and '+'.
func dialable(number string) string {
	return nonDialRe.ReplaceAllString(number, "")
}
