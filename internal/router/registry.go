package router

import (
	"fmt"
	"sync"
	"time"

	"jarvis/internal/intent"
)

// MatchFunc extracts an intent from text, or reports false.
type MatchFunc func(text string, now time.Time) (intent.Intent, bool)

// Rule is one entry of the precedence list.
type Rule struct {
	Name  string
	Match MatchFunc
}

// Registry holds rules in evaluation order.
type Registry struct {
	mu    sync.RWMutex
	rules []Rule
	index map[string]int // name -> position in rules
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Register appends a rule at the lowest precedence.
// Returns an error if the name is already registered or the rule has no matcher.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rule.Match == nil {
		return fmt.Errorf("rule has no matcher: %s", rule.Name)
	}
	if _, exists := r.index[rule.Name]; exists {
		return fmt.Errorf("rule already registered: %s", rule.Name)
	}

	r.index[rule.Name] = len(r.rules)
	r.rules = append(r.rules, rule)
	return nil
}

// Find looks up a rule by name.
func (r *Registry) Find(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	if !ok {
		return Rule{}, false
	}
	return r.rules[i], true
}

// All returns the rules in precedence order, highest first.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Names returns the rule names in precedence order.
func (r *Registry) Names() []string {
	rules := r.All()
	names := make([]string, len(rules))
	for i, rule := range rules {
		names[i] = rule.Name
	}
	return names
}

// First evaluates the rules in order and returns the first match.
func (r *Registry) First(text string, now time.Time) (string, intent.Intent, bool) {
	for _, rule := range r.All() {
		if in, ok := rule.Match(text, now); ok {
			return rule.Name, in, true
		}
	}
	return "", nil, false
}

// MustRegister adds rules, panicking on a duplicate name.
func (r *Registry) MustRegister(rules ...Rule) *Registry {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
	return r
}
