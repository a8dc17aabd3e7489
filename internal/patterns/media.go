package patterns

import (
	"regexp"

	"jarvis/internal/intent"
)

const musicApps = `spotify|youtube\s+music|apple\s+music|amazon\s+music|soundcloud|deezer|gaana|jiosaavn|wynk`

var (
	// Most specific first.
	playMusicRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^play\s+(?:the\s+)?(?:song\s+)?(.+?)\s+(?:by|from)\s+(.+?)(?:\s+on\s+(?:` + musicApps + `))?$`),
		regexp.MustCompile(`(?i)^play\s+(?:the\s+)?(?:song\s+)?(.+?)()\s+on\s+(?:` + musicApps + `)$`),
		regexp.MustCompile(`(?i)^play\s+(?:the\s+)?(?:song\s+)?(.+?)()$`),
	}

	openAppRe = regexp.MustCompile(`(?i)^(?:open|launch)\s+(?:the\s+)?(.+?)(?:\s+app)?$`)

	screenshotRe     = regexp.MustCompile(`(?i)^(?:please\s+)?(?:take|capture|grab)\s+(?:a\s+|the\s+)?screen\s?shot$`)
	startRecordingRe = regexp.MustCompile(`(?i)^(?:please\s+)?(?:(?:start|begin)\s+(?:the\s+|a\s+)?(?:screen\s+)?recording|record(?:ing)?\s+(?:the\s+|my\s+)?screen)$`)
	stopRecordingRe  = regexp.MustCompile(`(?i)^(?:please\s+)?(?:stop|end|finish)\s+(?:the\s+)?(?:screen\s+)?recording$`)
)

// ParsePlayMusic extracts a song and optional artist. Phrasings ending in
// "on youtube" are left for the YouTube search rule.
func ParsePlayMusic(text string) (intent.PlayMusic, bool) {
	text = Clean(text)
	if onYoutubeTail.MatchString(text) {
		return intent.PlayMusic{}, false
	}
	m := firstSubmatch(playMusicRes, text)
	if m == nil || m[1] == "" {
		return intent.PlayMusic{}, false
	}
	return intent.PlayMusic{Song: m[1], Artist: m[2]}, true
}

// ParseOpenApp extracts the name of an app to launch.
func ParseOpenApp(text string) (intent.OpenApp, bool) {
	m := openAppRe.FindStringSubmatch(Clean(text))
	if m == nil || m[1] == "" {
		return intent.OpenApp{}, false
	}
	return intent.OpenApp{Name: m[1]}, true
}

// IsScreenshot reports whether text asks for a screenshot.
func IsScreenshot(text string) bool {
	return screenshotRe.MatchString(collapse(Clean(text)))
}

// IsStartRecording reports whether text asks to start a screen recording.
func IsStartRecording(text string) bool {
	return startRecordingRe.MatchString(collapse(Clean(text)))
}

// IsStopRecording reports whether text asks to stop the screen recording.
func IsStopRecording(text string) bool {
	return stopRecordingRe.MatchString(collapse(Clean(text)))
}
