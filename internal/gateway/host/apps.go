package host

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxAppDistance is the largest edit distance, relative to the longer name,
// at which a spoken app name still resolves.
const maxAppDistance = 0.4

// AppCatalog resolves spoken app names to installed apps.
type AppCatalog struct {
	names []string
}

// NewAppCatalog creates a catalog over names, in preference order.
func NewAppCatalog(names []string) *AppCatalog {
	return &AppCatalog{names: append([]string(nil), names...)}
}

// Names returns the catalog entries.
func (c *AppCatalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Resolve finds the app for name: an exact case-insensitive match first, then
// the closest entry by edit distance. Ties keep catalog order.
func (c *AppCatalog) Resolve(name string) (string, bool) {
	want := strings.ToUpper(strings.TrimSpace(name))
	if want == "" {
		return "", false
	}

	best, bestScore := "", 1.0
	for _, app := range c.names {
		got := strings.ToUpper(app)
		if got == want {
			return app, true
		}
		dist := levenshtein.ComputeDistance(want, got)
		score := float64(dist) / float64(max(len(want), len(got)))
		if score < bestScore {
			best, bestScore = app, score
		}
	}
	if best == "" || bestScore >= maxAppDistance {
		return "", false
	}
	return best, true
}
