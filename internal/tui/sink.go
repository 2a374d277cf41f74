package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuidrill/internal/drill"
)

// Sink delivers engine updates to a running Bubble Tea program.
type Sink struct {
	program *tea.Program
}

var _ drill.Display = (*Sink)(nil)

// NewSink returns a drill.Display backed by program.
func NewSink(program *tea.Program) *Sink {
	return &Sink{program: program}
}

// ShowQuestion implements drill.Display.
func (s *Sink) ShowQuestion(ctx context.Context, text string) error {
	applied := make(chan struct{})
	s.program.Send(questionMsg{text: text, applied: applied})
	select {
	case <-applied:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ShowAnswer implements drill.Display. Program.Send hands messages to the
// event loop in call order.
func (s *Sink) ShowAnswer(update drill.AnswerUpdate) {
	s.program.Send(answerMsg{update: update})
}
