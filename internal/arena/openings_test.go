package arena

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOpenings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openings.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write openings: %v", err)
	}
	return path
}

func TestLoadOpeningsSkipsHeaderAndKeepsBlankLine(t *testing.T) {
	path := writeOpenings(t, "openings for the 2026 run\n\ne2e4 e7e5\nd2d4 d7d5 c2c4\n")

	openings, err := LoadOpenings(path)
	if err != nil {
		t.Fatalf("LoadOpenings: %v", err)
	}
	if len(openings) != 3 {
		t.Fatalf("openings = %d, want 3", len(openings))
	}
	if len(openings[0]) != 0 {
		t.Fatalf("first opening = %v, want the empty opening", openings[0])
	}
	if len(openings[1]) != 2 || openings[1][0] != "e2e4" {
		t.Fatalf("second opening = %v", openings[1])
	}
	if len(openings[2]) != 3 || openings[2][2] != "c2c4" {
		t.Fatalf("third opening = %v", openings[2])
	}
}

func TestLoadOpeningsEmptyPathDefaultsToSingleEmptyOpening(t *testing.T) {
	openings, err := LoadOpenings("")
	if err != nil {
		t.Fatalf("LoadOpenings: %v", err)
	}
	if len(openings) != 1 || len(openings[0]) != 0 {
		t.Fatalf("openings = %v, want one empty opening", openings)
	}
}

func TestLoadOpeningsHeaderOnlyFileFails(t *testing.T) {
	path := writeOpenings(t, "just a header\n")
	if _, err := LoadOpenings(path); err == nil {
		t.Fatalf("expected error for openings file without entries")
	}
}

func TestLoadOpeningsMissingFileFails(t *testing.T) {
	if _, err := LoadOpenings(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
