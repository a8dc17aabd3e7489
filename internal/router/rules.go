package router

import (
	"time"

	"jarvis/internal/intent"
	"jarvis/internal/patterns"
)

// Rule names, in precedence order.
const (
	RuleScreenshot        = "screenshot"
	RuleStartRecording    = "start-recording"
	RuleStopRecording     = "stop-recording"
	RuleAlarm             = "alarm"
	RuleTimer             = "timer"
	RuleManageAlarms      = "manage-alarms"
	RuleWifi              = "wifi"
	RuleBluetooth         = "bluetooth"
	RuleAirplane          = "airplane"
	RuleDND               = "dnd"
	RuleMobileData        = "mobile-data"
	RulePlayMusic         = "play-music"
	RuleFlashlight        = "flashlight"
	RuleReminder          = "reminder"
	RuleShowNote          = "show-note"
	RuleCreateNote        = "create-note"
	RuleOpenApp           = "open-app"
	RuleWhatsAppVideoCall = "whatsapp-video-call"
	RuleWhatsAppAudioCall = "whatsapp-audio-call"
	RuleEmailDraft        = "email-draft"
	RuleWhatsAppMessage   = "whatsapp-message"
	RuleYoutubeSearch     = "youtube-search"
	RuleSMS               = "sms"
	RuleCall              = "call"

	// RuleChat is reported when no rule matched.
	RuleChat = "chat"
)

// lift adapts a clock-free pattern to a MatchFunc.
func lift[T intent.Intent](parse func(string) (T, bool)) MatchFunc {
	return func(text string, _ time.Time) (intent.Intent, bool) {
		in, ok := parse(text)
		if !ok {
			return nil, false
		}
		return in, true
	}
}

// phrase adapts a boolean classifier for a payload-free intent.
func phrase(is func(string) bool, in intent.Intent) MatchFunc {
	return func(text string, _ time.Time) (intent.Intent, bool) {
		if !is(text) {
			return nil, false
		}
		return in, true
	}
}

func toggle(kind intent.ToggleKind) MatchFunc {
	return lift(func(text string) (intent.Toggle, bool) {
		return patterns.ParseToggle(kind, text)
	})
}

// DefaultRules returns the full precedence list, most specific first.
// Earlier rules win when several patterns could match the same utterance.
func DefaultRules() []Rule {
	return []Rule{
		{RuleScreenshot, phrase(patterns.IsScreenshot, intent.Screenshot{})},
		{RuleStartRecording, phrase(patterns.IsStartRecording, intent.StartRecording{})},
		{RuleStopRecording, phrase(patterns.IsStopRecording, intent.StopRecording{})},
		{RuleAlarm, lift(patterns.ParseAlarm)},
		{RuleTimer, lift(patterns.ParseTimer)},
		{RuleManageAlarms, lift(patterns.ParseManageAlarms)},
		{RuleWifi, toggle(intent.ToggleWifi)},
		{RuleBluetooth, toggle(intent.ToggleBluetooth)},
		{RuleAirplane, toggle(intent.ToggleAirplane)},
		{RuleDND, toggle(intent.ToggleDND)},
		{RuleMobileData, toggle(intent.ToggleMobileData)},
		{RulePlayMusic, lift(patterns.ParsePlayMusic)},
		{RuleFlashlight, lift(patterns.ParseFlashlight)},
		{RuleReminder, func(text string, now time.Time) (intent.Intent, bool) {
			r, ok := patterns.ParseReminder(text, now)
			if !ok {
				return nil, false
			}
			return r, true
		}},
		{RuleShowNote, lift(patterns.ParseShowNote)},
		{RuleCreateNote, lift(patterns.ParseNote)},
		{RuleOpenApp, lift(patterns.ParseOpenApp)},
		{RuleWhatsAppVideoCall, lift(patterns.ParseWhatsAppVideoCall)},
		{RuleWhatsAppAudioCall, lift(patterns.ParseWhatsAppAudioCall)},
		{RuleEmailDraft, lift(patterns.ParseEmailDraft)},
		{RuleWhatsAppMessage, lift(patterns.ParseWhatsAppMessage)},
		{RuleYoutubeSearch, lift(patterns.ParseYoutubeSearch)},
		{RuleSMS, lift(patterns.ParseSMS)},
		{RuleCall, lift(patterns.ParseCall)},
	}
}

// DefaultRegistry returns a registry loaded with DefaultRules.
func DefaultRegistry() *Registry {
	return NewRegistry().MustRegister(DefaultRules()...)
}
