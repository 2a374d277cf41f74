// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuidrill/internal/drill"
	"github.com/verte-zerg/tuidrill/internal/model"
	statsPkg "github.com/verte-zerg/tuidrill/internal/stats"
)

const weakTop = 5

// questionMsg posts a new question; applied is closed once the model holds it.
type questionMsg struct {
	text    string
	applied chan struct{}
}

type answerMsg struct {
	update drill.AnswerUpdate
}

type tickMsg time.Time

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// Model implements the Bubble Tea drill UI. Keystrokes go to the mailbox;
// the engine drives everything shown.
type Model struct {
	config  model.Config
	mailbox *drill.Mailbox
	tracker *statsPkg.Tracker
	keys    keyMap
	help    help.Model

	width  int
	height int

	question  []rune
	confirmed []rune
	wrong     rune
	hasWrong  bool
	caret     string
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Copy().Underline(true)
	caretStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#4D7CFF"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	waitingStyle     = footerStyle.Copy().Italic(true)
)

// NewModel constructs a drill TUI model.
func NewModel(cfg model.Config, mailbox *drill.Mailbox, tracker *statsPkg.Tracker) *Model {
	return &Model{
		config:  cfg,
		mailbox: mailbox,
		tracker: tracker,
		keys:    defaultKeys,
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case questionMsg:
		m.question = []rune(msg.text)
		m.confirmed = nil
		m.wrong = 0
		m.hasWrong = false
		m.caret = drill.CaretMarker
		close(msg.applied)
		return m, nil
	case answerMsg:
		m.confirmed = []rune(msg.update.Confirmed)
		m.wrong = msg.update.Wrong
		m.hasWrong = msg.update.HasWrong
		m.caret = msg.update.Caret
		return m, nil
	case tickMsg:
		return m, tick()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeySpace, tea.KeyEnter:
		m.mailbox.Post(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.mailbox.Post(r)
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.question) == 0 {
		return waitingStyle.Render("preparing drill...")
	}
	r := buildRows(m.question, m.confirmed, m.wrong, m.hasWrong, m.caret)
	if m.width == 0 || m.height == 0 {
		return r.render(0)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(r.render(contentWidth))
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	if m.tracker == nil {
		return ""
	}
	s := m.tracker.Summary()
	wpm, _, acc := statsPkg.SessionMetrics(s.CorrectNonSpace, s.IncorrectNonSpace, s.Elapsed.Milliseconds())
	segments := []string{
		fmt.Sprintf("Q %d", s.Questions),
		fmt.Sprintf("%.1f WPM · %.1f%%", wpm, acc*100),
	}
	if m.config.Punish {
		segments = append(segments, fmt.Sprintf("Punish %d", s.PunishTokens))
	}
	if weak := statsPkg.WeakChars(s.Chars, weakTop); len(weak) > 0 {
		segments = append(segments, "Weak "+strings.Join(weak, " "))
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	return footer + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}
