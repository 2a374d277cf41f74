// Package model defines shared data structures.
package model

import "time"

// Config defines drill settings.
type Config struct {
	Threshold   int
	IdleTimeout time.Duration
	Punish      bool
	// Hesitation re-drills a character the user stalls on mid-question for
	// this long. Zero disables it.
	Hesitation time.Duration
	// PunishCap bounds the characters spliced in during one pass. Zero means
	// no bound.
	PunishCap  int
	CorpusPath string
	CorpusSet  string
}

// LogConfig defines diagnostic logging settings.
type LogConfig struct {
	Level string
	File  string
}

// CharStats stores per-character counts for the running session.
type CharStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// SessionSummary captures the in-memory state of a drill session.
type SessionSummary struct {
	StartedAt         time.Time
	Elapsed           time.Duration
	Questions         int
	Passes            int
	CorrectNonSpace   int
	IncorrectNonSpace int
	PunishTokens      int
	Chars             []CharStats
}

// CorpusInfo describes a corpus stored in the library.
type CorpusInfo struct {
	ID         int64
	Name       string
	SourcePath string
	Lines      int
	ImportedAt time.Time
}
