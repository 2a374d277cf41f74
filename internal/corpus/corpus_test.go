package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadKeepsLineOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte("cat sat\r\n\nthe  mat\n"), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	lines, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	expected := []string{"cat sat", "", "the  mat"}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d: %q", len(expected), len(lines), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Fatalf("expected %q at %d, got %q", expected[i], i, lines[i])
		}
	}
}

func TestLoadMissingFileIsUnavailable(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestReadRejectsBlankCorpus(t *testing.T) {
	_, err := Read(strings.NewReader("\n   \n"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestTokens(t *testing.T) {
	cases := map[string][]string{
		"cat sat":     {"cat", "sat"},
		" a  b ":      {"a", "b"},
		"":            nil,
		"tab\there x": {"tab\there", "x"},
	}
	for line, want := range cases {
		got := Tokens(line)
		if len(got) != len(want) {
			t.Fatalf("Tokens(%q) = %q, want %q", line, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Tokens(%q) = %q, want %q", line, got, want)
			}
		}
	}
}
