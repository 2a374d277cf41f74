package drill

import (
	"context"
	"strings"
)

// CaretMarker points at the next character to type.
const CaretMarker = "^"

// Display renders the engine's state.
type Display interface {
	// ShowQuestion posts a new question and clears the previous answer and
	// caret. It returns only after the update has been applied.
	ShowQuestion(ctx context.Context, text string) error
	// ShowAnswer is a fire-and-forget update sent after every keystroke.
	// Consecutive updates for one question must not be reordered.
	ShowAnswer(update AnswerUpdate)
}

// AnswerUpdate carries the confirmed-so-far text and the latest wrong key.
type AnswerUpdate struct {
	Confirmed string
	Wrong     rune
	HasWrong  bool
	Caret     string
}

func caretAt(confirmed int) string {
	return strings.Repeat(" ", confirmed) + CaretMarker
}
