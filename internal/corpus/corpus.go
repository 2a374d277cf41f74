// Package corpus loads drill corpora into memory.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnavailable reports a corpus that cannot be read or holds no words.
var ErrUnavailable = errors.New("corpus unavailable")

// Load reads every line of the file at path.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus.
			_ = cerr
		}
	}()
	lines, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// Read consumes r line by line. Lines are kept verbatim apart from a trailing
// carriage return, so a later single-space split sees the author's spacing.
func Read(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := Validate(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Validate rejects corpora that would produce an empty word pool.
func Validate(lines []string) error {
	for _, line := range lines {
		if len(Tokens(line)) > 0 {
			return nil
		}
	}
	return fmt.Errorf("%w: no words found", ErrUnavailable)
}

// Tokens splits a line on single spaces and drops the empty tokens left by
// repeated or edge spaces.
func Tokens(line string) []string {
	parts := strings.Split(line, " ")
	out := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
