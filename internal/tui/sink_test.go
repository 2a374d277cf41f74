package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuidrill/internal/drill"
)

func startProgram(t *testing.T, m *Model) *tea.Program {
	t.Helper()
	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutRenderer())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	t.Cleanup(func() {
		p.Quit()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Errorf("program did not stop")
		}
	})
	return p
}

func TestSinkShowQuestionWaitsForModel(t *testing.T) {
	m, _ := newTestModel()
	p := startProgram(t, m)
	sink := NewSink(p)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sink.ShowQuestion(ctx, "cat "))

	// Answer updates that follow are applied in order.
	sink.ShowAnswer(drill.AnswerUpdate{Confirmed: "c", Caret: " ^"})
	sink.ShowAnswer(drill.AnswerUpdate{Confirmed: "c", Wrong: 'x', HasWrong: true, Caret: " ^"})
	require.NoError(t, sink.ShowQuestion(ctx, "sat "))

	assert.Equal(t, "sat ", string(m.question))
	assert.Empty(t, m.confirmed)
}

func TestSinkShowQuestionHonorsContext(t *testing.T) {
	m, _ := newTestModel()
	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutRenderer())
	sink := NewSink(p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan error, 1)
	go func() { done <- sink.ShowQuestion(ctx, "never shown") }()

	// Send blocks until the program runs; start it so the goroutine can finish.
	go func() { _, _ = p.Run() }()
	select {
	case err := <-done:
		if err != nil {
			assert.ErrorIs(t, err, context.Canceled)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("ShowQuestion did not return")
	}
	p.Quit()
}
