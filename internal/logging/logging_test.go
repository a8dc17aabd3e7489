package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		debug, quiet bool
		want         zapcore.Level
	}{
		{false, false, zapcore.WarnLevel},
		{true, false, zapcore.DebugLevel},
		{false, true, zapcore.ErrorLevel},
		{true, true, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		if got := Level(tt.debug, tt.quiet); got != tt.want {
			t.Errorf("Level(%v, %v) = %v, want %v", tt.debug, tt.quiet, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	log, err := New(true, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug logger should enable debug level")
	}
}
