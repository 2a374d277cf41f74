package drill

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Position records how one expected character was typed.
type Position struct {
	Expected  rune
	Confirmed bool
	Misses    int
	Hesitated bool
}

// Result is the outcome of verifying one question.
type Result struct {
	Positions []Position
	// Mismatches holds the expected character of every wrong keystroke at a
	// non-space position, one entry per mistake. With a hesitation window
	// set, a non-space position the user stalled on adds one more entry.
	Mismatches []rune
}

// Complete reports whether every position was eventually typed correctly.
func (r Result) Complete() bool {
	for _, p := range r.Positions {
		if !p.Confirmed {
			return false
		}
	}
	return true
}

// Verifier scores a question against keystrokes taken from a Mailbox.
type Verifier struct {
	mailbox    *Mailbox
	display    Display
	timeout    time.Duration
	hesitation time.Duration
}

// VerifierOption customizes a Verifier.
type VerifierOption func(*Verifier)

// WithHesitation makes a pause of d after the first confirmed keystroke of a
// question count against the character being waited on. Values that are not
// shorter than the idle timeout disable it.
func WithHesitation(d time.Duration) VerifierOption {
	return func(v *Verifier) { v.hesitation = d }
}

// NewVerifier returns a Verifier that waits at most timeout for each keystroke.
func NewVerifier(mailbox *Mailbox, display Display, timeout time.Duration, opts ...VerifierOption) *Verifier {
	v := &Verifier{mailbox: mailbox, display: display, timeout: timeout}
	for _, opt := range opts {
		opt(v)
	}
	if v.hesitation >= v.timeout {
		v.hesitation = 0
	}
	return v
}

// Verify posts q to the display and consumes keystrokes until every character
// has been typed correctly. A wrong keystroke keeps the position in place.
// On error the partial result is returned alongside it.
func (v *Verifier) Verify(ctx context.Context, q Question) (Result, error) {
	expected := []rune(q.Text)
	res := Result{Positions: make([]Position, len(expected))}
	for i, r := range expected {
		res.Positions[i].Expected = r
	}
	if err := v.display.ShowQuestion(ctx, q.Text); err != nil {
		return res, err
	}

	var confirmed strings.Builder
	for i, want := range expected {
		pos := &res.Positions[i]
		for !pos.Confirmed {
			got, err := v.take(ctx, &res, pos, confirmed.Len() > 0)
			if err != nil {
				return res, err
			}
			if got == want {
				pos.Confirmed = true
				confirmed.WriteRune(got)
				v.display.ShowAnswer(AnswerUpdate{
					Confirmed: confirmed.String(),
					Caret:     caretAt(i + 1),
				})
				continue
			}
			pos.Misses++
			if want != ' ' {
				res.Mismatches = append(res.Mismatches, want)
			}
			v.display.ShowAnswer(AnswerUpdate{
				Confirmed: confirmed.String(),
				Wrong:     got,
				HasWrong:  true,
				Caret:     caretAt(i),
			})
		}
	}
	return res, nil
}

// take waits for the next keystroke. Once the question is under way, a stall
// longer than the hesitation window marks pos and, outside spaces, queues its
// character for punishment. The idle timeout still runs from the last
// keystroke.
func (v *Verifier) take(ctx context.Context, res *Result, pos *Position, started bool) (rune, error) {
	if v.hesitation <= 0 || !started || pos.Hesitated {
		return v.mailbox.Take(ctx, v.timeout)
	}
	got, err := v.mailbox.Take(ctx, v.hesitation)
	if !errors.Is(err, ErrSessionTimedOut) {
		return got, err
	}
	pos.Hesitated = true
	if pos.Expected != ' ' {
		res.Mismatches = append(res.Mismatches, pos.Expected)
	}
	return v.mailbox.Take(ctx, v.timeout-v.hesitation)
}
