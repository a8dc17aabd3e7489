package patterns

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"jarvis/internal/intent"
)

// ReminderTriggers are the phrases a reminder utterance must start with.
var ReminderTriggers = []string{
	"remind me to ",
	"add a reminder for ",
	"set a reminder for ",
	"set a reminder to ",
}

const monthAlternation = `january|february|march|april|may|june|july|august|september|sept|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec`

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	dayMonthRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthAlternation + `)\b`)
	monthDayRe = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	relDayRe   = regexp.MustCompile(`(?i)\b(day after tomorrow|today|tonight|tomorrow)\b`)

	meridiemFixRe = regexp.MustCompile(`(?i)(\d\s*|\s)([ap])\.\s?m\b\.?`)

	// Time tokens in order of preference: with am/pm, with a colon, bare hour.
	meridiemTimeRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	clockTimeRe    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	bareTimeRe     = regexp.MustCompile(`\b(\d{1,2})\b`)

	leadingConnectorsRe  = regexp.MustCompile(`(?i)^(?:(?:to|that|for|at)\s+)+`)
	trailingConnectorsRe = regexp.MustCompile(`(?i)(?:\s+(?:to|that|for|at))+$|^(?:to|that|for|at)$`)
)

// NormalizeMeridiem rewrites "a.m." / "p.m" style suffixes to "am" / "pm".
// Dictated times use the dotted form, and its dots would otherwise read as
// sentence breaks.
func NormalizeMeridiem(s string) string {
	return meridiemFixRe.ReplaceAllString(s, "${1}${2}m")
}

type dateToken struct {
	found    bool
	absolute bool
	month    time.Month
	day      int
	offset   int // days from today for relative keywords
	tonight  bool
	text     string
}

type timeToken struct {
	hour, minute int
	meridiem     string
	text         string
}

// ParseReminder extracts a reminder from text, resolving dates against now.
// A reminder without a time token does not match.
func ParseReminder(text string, now time.Time) (intent.Reminder, bool) {
	text = NormalizeMeridiem(Clean(text))
	lower := strings.ToLower(text)

	var rest string
	matched := false
	for _, trigger := range ReminderTriggers {
		if strings.HasPrefix(lower, trigger) {
			rest = text[len(trigger):]
			matched = true
			break
		}
	}
	if !matched {
		return intent.Reminder{}, false
	}

	date, rest := extractDate(rest, now.Year())
	tm, rest, ok := extractTime(rest)
	if !ok {
		return intent.Reminder{}, false
	}

	hour := to24Hour(tm.hour, tm.meridiem)
	if tm.meridiem == "" && date.tonight && hour < 12 {
		hour += 12
	}

	loc := now.Location()
	year, month, day := now.Date()
	var due time.Time
	switch {
	case date.absolute:
		if date.month < month || (date.month == month && date.day < day) {
			year++
		}
		due = time.Date(year, date.month, date.day, hour, tm.minute, 0, 0, loc)
	case date.found:
		due = time.Date(year, month, day+date.offset, hour, tm.minute, 0, 0, loc)
	default:
		due = time.Date(year, month, day, hour, tm.minute, 0, 0, loc)
		if due.Before(now) {
			due = due.AddDate(0, 0, 1)
		}
	}

	title := leadingConnectorsRe.ReplaceAllString(rest, "")
	title = strings.TrimSpace(trailingConnectorsRe.ReplaceAllString(title, ""))
	if title == "" {
		return intent.Reminder{}, false
	}

	return intent.Reminder{
		Title:       title,
		DueAt:       due,
		Description: strings.TrimSpace(date.text + " " + tm.text),
	}, true
}

// extractDate finds an absolute or relative date and returns it with the
// remaining text.
func extractDate(s string, year int) (dateToken, string) {
	for i, re := range []*regexp.Regexp{dayMonthRe, monthDayRe} {
		for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
			dayStr, monStr := group(s, m, 1), group(s, m, 2)
			if i == 1 {
				dayStr, monStr = monStr, dayStr
			}
			day, err := strconv.Atoi(dayStr)
			if err != nil {
				continue
			}
			month := months[strings.ToLower(monStr)[:3]]
			if day < 1 || day > daysIn(month, year) {
				continue
			}
			return dateToken{
				found:    true,
				absolute: true,
				month:    month,
				day:      day,
				text:     s[m[0]:m[1]],
			}, cut(s, m[0], m[1])
		}
	}

	if m := relDayRe.FindStringSubmatchIndex(s); m != nil {
		tok := dateToken{found: true, text: s[m[0]:m[1]]}
		switch strings.ToLower(tok.text) {
		case "tomorrow":
			tok.offset = 1
		case "day after tomorrow":
			tok.offset = 2
		case "tonight":
			tok.tonight = true
		}
		return tok, cut(s, m[0], m[1])
	}
	return dateToken{}, s
}

// extractTime finds the most specific time token in s.
func extractTime(s string) (timeToken, string, bool) {
	if m := meridiemTimeRe.FindStringSubmatchIndex(s); m != nil {
		return buildTime(s, m, group(s, m, 1), group(s, m, 2), strings.ToLower(group(s, m, 3)))
	}
	if m := clockTimeRe.FindStringSubmatchIndex(s); m != nil {
		return buildTime(s, m, group(s, m, 1), group(s, m, 2), "")
	}
	if m := bareTimeRe.FindStringSubmatchIndex(s); m != nil {
		return buildTime(s, m, group(s, m, 1), "", "")
	}
	return timeToken{}, s, false
}

func buildTime(s string, m []int, hourStr, minuteStr, meridiem string) (timeToken, string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return timeToken{}, s, false
	}
	minute := 0
	if minuteStr != "" {
		if minute, err = strconv.Atoi(minuteStr); err != nil {
			return timeToken{}, s, false
		}
	}
	if !validClock(hour, minute, meridiem) {
		return timeToken{}, s, false
	}
	return timeToken{
		hour:     hour,
		minute:   minute,
		meridiem: meridiem,
		text:     strings.TrimSpace(s[m[0]:m[1]]),
	}, cut(s, m[0], m[1]), true
}

// validClock reports whether hour:minute is a real wall-clock time.
// With am/pm the hour must be 1..12; otherwise 0..23.
func validClock(hour, minute int, meridiem string) bool {
	if minute < 0 || minute > 59 {
		return false
	}
	if meridiem != "" {
		return hour >= 1 && hour <= 12
	}
	return hour >= 0 && hour <= 23
}

// to24Hour converts an am/pm hour to 24-hour form.
func to24Hour(hour int, meridiem string) int {
	switch meridiem {
	case "pm":
		if hour < 12 {
			return hour + 12
		}
	case "am":
		if hour == 12 {
			return 0
		}
	}
	return hour
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
