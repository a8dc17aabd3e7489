package patterns

import (
	"regexp"
	"strings"

	"jarvis/internal/intent"
)

// toggleRule recognises "turn on X" / "disable X" style phrasings for one setting.
type toggleRule struct {
	on, off []*regexp.Regexp
}

// newToggleRule builds the closed set of whole-utterance phrasings for noun,
// a regex alternation of the setting's synonyms.
func newToggleRule(noun string) toggleRule {
	const (
		lead = `(?i)^(?:please\s+|can\s+you\s+|could\s+you\s+)?`
		det  = `(?:the\s+|my\s+)?`
		tail = `(?:\s+please)?$`
	)
	n := `(?:` + noun + `)`
	phrasings := func(state, verbs string) []*regexp.Regexp {
		return []*regexp.Regexp{
			regexp.MustCompile(lead + `(?:turn|switch|put)\s+` + state + `\s+` + det + n + tail),
			regexp.MustCompile(lead + `(?:turn|switch|put)\s+` + det + n + `\s+` + state + tail),
			regexp.MustCompile(lead + `(?:` + verbs + `)\s+` + det + n + tail),
			regexp.MustCompile(lead + n + `\s+` + state + tail),
		}
	}
	return toggleRule{
		on:  phrasings("on", "enable|activate|start"),
		off: phrasings("off", "disable|deactivate|stop"),
	}
}

func (r toggleRule) match(text string) (bool, bool) {
	text = collapse(Clean(text))
	for _, re := range r.on {
		if re.MatchString(text) {
			return true, true
		}
	}
	for _, re := range r.off {
		if re.MatchString(text) {
			return false, true
		}
	}
	return false, false
}

var toggleRules = map[intent.ToggleKind]toggleRule{
	intent.ToggleWifi:       newToggleRule(`wi-?fi|wireless|wlan`),
	intent.ToggleBluetooth:  newToggleRule(`bluetooth|blue\s+tooth`),
	intent.ToggleAirplane:   newToggleRule(`(?:airplane|aeroplane|plane|flight)\s+mode`),
	intent.ToggleDND:        newToggleRule(`do\s+not\s+disturb|dnd|silent\s+mode|focus\s+mode`),
	intent.ToggleMobileData: newToggleRule(`mobile\s+data|cellular\s+data|cellular|data\s+connection`),
}

// ParseToggle reports whether text switches the given setting on or off.
func ParseToggle(kind intent.ToggleKind, text string) (intent.Toggle, bool) {
	rule, ok := toggleRules[kind]
	if !ok {
		return intent.Toggle{}, false
	}
	enable, ok := rule.match(text)
	if !ok {
		return intent.Toggle{}, false
	}
	return intent.Toggle{Setting: kind, Enable: enable}, true
}

var (
	torchRe   = regexp.MustCompile(`(?i)\b(?:torch|flash\s?light)\b`)
	torchOnRe = regexp.MustCompile(`(?i)\bon\b`)
	torchOff  = regexp.MustCompile(`(?i)\boff\b`)
)

// ParseFlashlight matches any utterance naming the torch together with "on" or "off".
func ParseFlashlight(text string) (intent.Flashlight, bool) {
	text = strings.TrimSpace(text)
	if !torchRe.MatchString(text) {
		return intent.Flashlight{}, false
	}
	switch {
	case torchOnRe.MatchString(text):
		return intent.Flashlight{Enable: true}, true
	case torchOff.MatchString(text):
		return intent.Flashlight{Enable: false}, true
	}
	return intent.Flashlight{}, false
}
