// Package stats keeps in-session drill statistics and renders them.
package stats

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/verte-zerg/tuidrill/internal/model"
)

// SessionMetrics computes WPM, CPM, and accuracy for a session.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	if minutes <= 0 {
		return 0, 0, 0
	}
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// RenderSummary prints the session totals.
func RenderSummary(w io.Writer, s model.SessionSummary) error {
	if s.Questions == 0 {
		_, err := fmt.Fprintln(w, "No questions completed.")
		return err
	}
	wpm, cpm, acc := SessionMetrics(s.CorrectNonSpace, s.IncorrectNonSpace, s.Elapsed.Milliseconds())
	lines := []string{
		"Session",
		fmt.Sprintf("Duration: %s", s.Elapsed.Round(time.Second)),
		fmt.Sprintf("Questions: %d", s.Questions),
		fmt.Sprintf("Passes: %d", s.Passes),
		fmt.Sprintf("Punishment tokens: %d", s.PunishTokens),
		fmt.Sprintf("WPM: %.2f", wpm),
		fmt.Sprintf("CPM: %.2f", cpm),
		fmt.Sprintf("Accuracy: %.2f%%", acc*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCharTable prints per-character counts, lowest accuracy first.
func RenderCharTable(w io.Writer, chars []model.CharStats) error {
	if len(chars) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	rows := make([]model.CharStats, len(chars))
	copy(rows, chars)
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := accuracy(rows[i]), accuracy(rows[j])
		if ai == aj {
			return rows[i].Char < rows[j].Char
		}
		return ai < aj
	})

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	headers := []string{"Char", "Accuracy", "Correct", "Mistakes"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Char,
			fmt.Sprintf("%.2f%%", accuracy(r)*100),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
