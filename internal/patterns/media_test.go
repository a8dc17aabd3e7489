package patterns

import (
	"testing"

	"jarvis/internal/intent"
)

func TestParsePlayMusic(t *testing.T) {
	tests := []struct {
		text string
		want intent.PlayMusic
	}{
		{"play shape of you by ed sheeran", intent.PlayMusic{Song: "shape of you", Artist: "ed sheeran"}},
		{"play the song believer from imagine dragons on spotify", intent.PlayMusic{Song: "believer", Artist: "imagine dragons"}},
		{"play bohemian rhapsody on spotify", intent.PlayMusic{Song: "bohemian rhapsody"}},
		{"Play despacito!", intent.PlayMusic{Song: "despacito"}},
		{"play screenshot", intent.PlayMusic{Song: "screenshot"}},
	}
	for _, tt := range tests {
		got, ok := ParsePlayMusic(tt.text)
		if !ok {
			t.Errorf("%q: expected match", tt.text)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.text, tt.want, got)
		}
	}

	for _, text := range []string{"play despacito on youtube", "pause the music", "play"} {
		if _, ok := ParsePlayMusic(text); ok {
			t.Errorf("%q: expected no match", text)
		}
	}
}

func TestParseOpenApp(t *testing.T) {
	tests := []struct{ text, name string }{
		{"open spotify", "spotify"},
		{"Launch the Camera app.", "Camera"},
		{"open google maps", "google maps"},
	}
	for _, tt := range tests {
		got, ok := ParseOpenApp(tt.text)
		if !ok || got.Name != tt.name {
			t.Errorf("%q: expected %q, got %q (ok=%v)", tt.text, tt.name, got.Name, ok)
		}
	}
}

func TestScreenCapturePhrases(t *testing.T) {
	tests := []struct {
		text string
		fn   func(string) bool
		want bool
	}{
		{"take a screenshot", IsScreenshot, true},
		{"Capture screenshot.", IsScreenshot, true},
		{"grab the screen shot", IsScreenshot, true},
		{"play screenshot", IsScreenshot, false},
		{"start screen recording", IsStartRecording, true},
		{"begin recording", IsStartRecording, true},
		{"record my screen", IsStartRecording, true},
		{"stop recording", IsStartRecording, false},
		{"stop the screen recording", IsStopRecording, true},
		{"end recording", IsStopRecording, true},
		{"stop recording my voice", IsStopRecording, false},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.text); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.text, tt.want, got)
		}
	}
}
