package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// GoldenDir is where golden files live, relative to the test's package.
const GoldenDir = "testdata"

// Golden compares command output against testdata/<name>.golden.
// With UPDATE_GOLDEN set, it rewrites the file instead.
// On mismatch it reports the first differing line.
func Golden(t *testing.T, name, got string) {
	t.Helper()

	path := filepath.Join(GoldenDir, name+".golden")

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.MkdirAll(GoldenDir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", GoldenDir, err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", path, err, got)
	}
	want := string(data)
	if got == want {
		return
	}

	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	for i := 0; i < len(wantLines) || i < len(gotLines); i++ {
		var w, g string
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if w != g {
			t.Errorf("%s: line %d differs\nwant: %q\ngot:  %q", path, i+1, w, g)
			return
		}
	}
}
