package patterns

import (
	"regexp"
	"strconv"
	"strings"

	"jarvis/internal/intent"
)

const (
	DefaultAlarmLabel = "Alarm"
	DefaultTimerLabel = "Timer"
)

var (
	alarmTriggerRe = regexp.MustCompile(`(?i)^(?:please\s+)?(?:(?:set|create|add|make|schedule)\s+(?:an?\s+|the\s+|my\s+)?alarm|alarm|wake\s+me\s+up)\b`)

	// Alarm times, most specific first.
	alarmTimeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(am|pm)\b`),
		regexp.MustCompile(`(?i)\b(\d{1,2})()\s*(am|pm)\b`),
		regexp.MustCompile(`\b(\d{1,2}):(\d{2})()\b`),
	}

	labelRe = regexp.MustCompile(`(?i)\s+(?:called|named|labell?ed)\s+(.+)$`)

	timerTriggerRe = regexp.MustCompile(`(?i)\btimer\b`)
	timerSpanRe    = regexp.MustCompile(`(?i)\b(\d+)\s*(second|minute|hour)s?\b`)

	manageAlarmRes = []struct {
		re     *regexp.Regexp
		action intent.AlarmAction
	}{
		{regexp.MustCompile(`(?i)^(?:show|list|view|display|check)\s+(?:me\s+)?(?:all\s+)?(?:my\s+|the\s+)?alarms?$|^what\s+alarms\s+do\s+i\s+have$`), intent.AlarmShow},
		{regexp.MustCompile(`(?i)^(?:dismiss|stop|cancel|silence|turn\s+off)\s+(?:the\s+|my\s+|this\s+|all\s+(?:my\s+)?)?alarms?$`), intent.AlarmDismiss},
		{regexp.MustCompile(`(?i)^snooze(?:\s+(?:the\s+|my\s+|this\s+)?alarm)?$`), intent.AlarmSnooze},
	}
)

// ParseAlarm extracts an alarm request. The utterance must start with an
// alarm phrase ("set an alarm", "wake me up") and carry a time.
func ParseAlarm(text string) (intent.Alarm, bool) {
	text = NormalizeMeridiem(Clean(text))
	if !alarmTriggerRe.MatchString(text) {
		return intent.Alarm{}, false
	}

	label := DefaultAlarmLabel
	if m := labelRe.FindStringSubmatchIndex(text); m != nil {
		if l := group(text, m, 1); l != "" {
			label = l
		}
		text = text[:m[0]]
	}

	for _, re := range alarmTimeRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		hour, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		minute := 0
		if m[2] != "" {
			if minute, err = strconv.Atoi(m[2]); err != nil {
				continue
			}
		}
		meridiem := strings.ToLower(m[3])
		if !validClock(hour, minute, meridiem) {
			continue
		}
		return intent.Alarm{Hour: to24Hour(hour, meridiem), Minute: minute, Label: label}, true
	}
	return intent.Alarm{}, false
}

// ParseTimer extracts a countdown. The word "timer" is required so that
// durations in other commands ("call mom in 5 minutes") are left alone.
func ParseTimer(text string) (intent.Timer, bool) {
	text = Clean(text)
	if !timerTriggerRe.MatchString(text) {
		return intent.Timer{}, false
	}

	label := DefaultTimerLabel
	if m := labelRe.FindStringSubmatchIndex(text); m != nil {
		if l := group(text, m, 1); l != "" {
			label = l
		}
		text = text[:m[0]]
	}

	m := timerSpanRe.FindStringSubmatch(text)
	if m == nil {
		return intent.Timer{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return intent.Timer{}, false
	}
	switch strings.ToLower(m[2]) {
	case "hour":
		n *= 3600
	case "minute":
		n *= 60
	}
	return intent.Timer{Seconds: n, Label: label}, true
}

// ParseManageAlarms classifies whole-utterance alarm management phrases.
func ParseManageAlarms(text string) (intent.ManageAlarms, bool) {
	text = collapse(Clean(text))
	for _, p := range manageAlarmRes {
		if p.re.MatchString(text) {
			return intent.ManageAlarms{Action: p.action}, true
		}
	}
	return intent.ManageAlarms{}, false
}
