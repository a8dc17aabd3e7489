package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// UpdateGoldenEnv names the variable that rewrites golden files instead of
// comparing against them.
const UpdateGoldenEnv = "JARVIS_GOLDEN_UPDATE"

var crlf = strings.NewReplacer("\r\n", "\n")

// GoldenPath is where the golden output for name lives, relative to the
// package under test.
func GoldenPath(name string) string {
	return filepath.Join("testdata", name+".golden")
}

// GoldenString compares rendered CLI output against testdata/<name>.golden.
// Line endings are normalised so files checked out on Windows still match.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	path := GoldenPath(name)

	if os.Getenv(UpdateGoldenEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("update golden %s: %v", path, err)
		}
		t.Logf("updated %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v (run with %s=1 to create it)\ngot:\n%s", path, err, UpdateGoldenEnv, got)
	}
	assert.Equal(t, crlf.Replace(string(want)), crlf.Replace(got), "output differs from %s", path)
}
