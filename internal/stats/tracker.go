package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/verte-zerg/tuidrill/internal/drill"
	"github.com/verte-zerg/tuidrill/internal/model"
)

type charCount struct {
	correct   int
	incorrect int
}

// Tracker accumulates in-memory statistics for one drill session. The engine
// writes to it while the UI reads snapshots, so all access is locked.
type Tracker struct {
	mu  sync.Mutex
	now func() time.Time

	startedAt time.Time
	questions int
	passes    int
	punish    int
	correct   int
	incorrect int
	chars     map[rune]*charCount
}

// NewTracker returns a Tracker whose clock starts now.
func NewTracker() *Tracker {
	return newTrackerWithClock(time.Now)
}

func newTrackerWithClock(now func() time.Time) *Tracker {
	return &Tracker{
		now:       now,
		startedAt: now(),
		chars:     map[rune]*charCount{},
	}
}

// PassStarted implements drill.Observer.
func (t *Tracker) PassStarted(int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.passes++
}

// QuestionDone implements drill.Observer. Spaces are not counted.
func (t *Tracker) QuestionDone(_ drill.Question, res drill.Result, inserted int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.questions++
	t.punish += inserted
	for _, pos := range res.Positions {
		if pos.Expected == ' ' {
			continue
		}
		entry, ok := t.chars[pos.Expected]
		if !ok {
			entry = &charCount{}
			t.chars[pos.Expected] = entry
		}
		if pos.Confirmed {
			entry.correct++
			t.correct++
		}
		entry.incorrect += pos.Misses
		t.incorrect += pos.Misses
	}
}

// Summary returns a snapshot of the session so far.
func (t *Tracker) Summary() model.SessionSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	chars := make([]model.CharStats, 0, len(t.chars))
	for ch, entry := range t.chars {
		chars = append(chars, model.CharStats{
			Char:      string(ch),
			Correct:   entry.correct,
			Incorrect: entry.incorrect,
		})
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i].Char < chars[j].Char })
	return model.SessionSummary{
		StartedAt:         t.startedAt,
		Elapsed:           t.now().Sub(t.startedAt),
		Questions:         t.questions,
		Passes:            t.passes,
		CorrectNonSpace:   t.correct,
		IncorrectNonSpace: t.incorrect,
		PunishTokens:      t.punish,
		Chars:             chars,
	}
}
