package router

import (
	"testing"
	"time"

	"jarvis/internal/intent"
)

func always(in intent.Intent) MatchFunc {
	return func(string, time.Time) (intent.Intent, bool) { return in, true }
}

func never(string, time.Time) (intent.Intent, bool) { return nil, false }

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Rule{Name: "a", Match: never}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := r.Register(Rule{Name: "a", Match: never})
	if err == nil {
		t.Fatal("expected error for duplicate rule")
	}
	if err.Error() != "rule already registered: a" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestRegistry_RegisterNilMatcher(t *testing.T) {
	if err := NewRegistry().Register(Rule{Name: "empty"}); err == nil {
		t.Fatal("expected error for rule without matcher")
	}
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	r := NewRegistry().MustRegister(
		Rule{Name: "miss", Match: never},
		Rule{Name: "first", Match: always(intent.Screenshot{})},
		Rule{Name: "second", Match: always(intent.StopRecording{})},
	)

	name, in, ok := r.First("anything", time.Time{})
	if !ok {
		t.Fatal("expected a match")
	}
	if name != "first" {
		t.Errorf("expected rule 'first', got %q", name)
	}
	if in.Kind() != intent.KindScreenshot {
		t.Errorf("expected screenshot intent, got %s", in.Kind())
	}
}

func TestRegistry_FindAndNames(t *testing.T) {
	r := NewRegistry().MustRegister(
		Rule{Name: "b", Match: never},
		Rule{Name: "a", Match: never},
	)
	if _, ok := r.Find("a"); !ok {
		t.Error("expected to find rule a")
	}
	if _, ok := r.Find("z"); ok {
		t.Error("did not expect to find rule z")
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Errorf("expected registration order [b a], got %v", names)
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	NewRegistry().MustRegister(Rule{Name: "x", Match: never}, Rule{Name: "x", Match: never})
}

func TestWithRegistry_CustomOrder(t *testing.T) {
	reg := NewRegistry().MustRegister(Rule{Name: "only", Match: always(intent.Screenshot{})})
	rt := New(nil, nil, WithRegistry(reg))
	if name, _ := rt.Classify("call mom"); name != "only" {
		t.Errorf("expected custom rule to win, got %q", name)
	}
}
