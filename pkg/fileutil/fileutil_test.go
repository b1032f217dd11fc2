package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindFileCaseInsensitive(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"Save.txt", "UPPER.INI", "lower.dat"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("test"), 0o644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	tests := []struct {
		name       string
		search     string
		shouldFind bool
		want       string
	}{
		{"exact match", "Save.txt", true, "Save.txt"},
		{"lowercase search", "save.txt", true, "Save.txt"},
		{"uppercase search", "LOWER.DAT", true, "lower.dat"},
		{"mixed case search", "Upper.ini", true, "UPPER.INI"},
		{"missing file", "other.txt", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindFileCaseInsensitive(tmpDir, tt.search)
			if !tt.shouldFind {
				if !errors.Is(err, os.ErrNotExist) {
					t.Errorf("expected a not-exist error, got %v (%s)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filepath.Base(got) != tt.want {
				t.Errorf("found %s, want %s", filepath.Base(got), tt.want)
			}
		})
	}

	if _, err := FindFileCaseInsensitive(filepath.Join(tmpDir, "nope"), "x"); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestResolve(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "Data", "Levels"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "Data", "Levels", "One.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"backslashes and case", `data\LEVELS\one.TXT`, filepath.Join(tmpDir, "Data", "Levels", "One.txt")},
		{"new file in existing dir", `DATA\new.txt`, filepath.Join(tmpDir, "Data", "new.txt")},
		{"new directory", `data\Missing\x.txt`, filepath.Join(tmpDir, "Data", "Missing", "x.txt")},
		{"dot components", `.\Data\.\Levels`, filepath.Join(tmpDir, "Data", "Levels")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tmpDir, tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}

	abs := filepath.Join(tmpDir, "DATA", "levels", "ONE.TXT")
	if got := Resolve("/ignored", abs); got != filepath.Join(tmpDir, "Data", "Levels", "One.txt") {
		t.Errorf("absolute path resolved to %s", got)
	}
}
