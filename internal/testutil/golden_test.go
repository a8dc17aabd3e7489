package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGoldenString_UpdateThenCompare(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv(UpdateGoldenEnv, "1")
	GoldenString(t, "board", "Tasks\n(no tasks)\n")

	data, err := os.ReadFile(filepath.Join("testdata", "board.golden"))
	if err != nil {
		t.Fatalf("golden file not written: %v", err)
	}
	if string(data) != "Tasks\n(no tasks)\n" {
		t.Errorf("golden file = %q", data)
	}

	t.Setenv(UpdateGoldenEnv, "")
	GoldenString(t, "board", "Tasks\r\n(no tasks)\r\n")
}

func TestGoldenPath(t *testing.T) {
	if got, want := GoldenPath("plan_fallback"), filepath.Join("testdata", "plan_fallback.golden"); got != want {
		t.Errorf("GoldenPath = %q, want %q", got, want)
	}
}
