package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solvik/daybook/internal/ai"
	"github.com/solvik/daybook/internal/service"
	"github.com/solvik/daybook/internal/timeutil"
	"github.com/solvik/daybook/internal/tui/ui"
)

// DiaryModel is the model for the AI diary view
type DiaryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	date    time.Time
	text    string
	loading bool
	err     error
}

// NewDiaryModel creates a new diary view model
func NewDiaryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) DiaryModel {
	return DiaryModel{
		services: services,
		styles:   styles,
		keys:     keys,
		date:     timeutil.Today(),
	}
}

// Init implements tea.Model
func (m DiaryModel) Init() tea.Cmd {
	return nil
}

// diaryResultMsg carries the outcome of a generation request
type diaryResultMsg struct {
	date time.Time
	text string
	err  error
}

// Update implements tea.Model
func (m DiaryModel) Update(msg tea.Msg) (DiaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Select):
			m.loading = true
			m.err = nil
			return m, m.generate(m.date)

		case key.Matches(msg, m.keys.PrevDay):
			m.date = m.date.AddDate(0, 0, -1)
			m.text = ""
			m.err = nil
			return m, nil

		case key.Matches(msg, m.keys.NextDay):
			// Never navigate past today.
			if timeutil.SameDay(m.date, timeutil.Today()) {
				return m, nil
			}
			m.date = m.date.AddDate(0, 0, 1)
			m.text = ""
			m.err = nil
			return m, nil

		case key.Matches(msg, m.keys.Today):
			m.date = timeutil.Today()
			m.text = ""
			m.err = nil
			return m, nil

		case key.Matches(msg, m.keys.Yesterday):
			m.date = timeutil.Yesterday()
			m.text = ""
			m.err = nil
			return m, nil
		}

	case diaryResultMsg:
		// Ignore a stale response for a day we already navigated away from.
		if !timeutil.SameDay(msg.date, m.date) {
			return m, nil
		}
		m.loading = false
		m.text = msg.text
		m.err = msg.err
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m DiaryModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Diary " + timeutil.FormatDay(m.date)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.TimerStopped.Render("Writing your diary entry..."))

	case m.err != nil:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		if errors.Is(m.err, ai.ErrMissingAPIKey) {
			b.WriteString("\n\n")
			b.WriteString(m.styles.StatLabel.Render("Set an API key in Settings (4) first"))
		}

	case m.text != "":
		wrapped := lipgloss.NewStyle().Width(maxContentWidth(m.width)).Render(m.text)
		b.WriteString(m.styles.EntryTitle.Render(wrapped))

	default:
		b.WriteString(m.styles.TimerStopped.Render("No diary generated yet"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press Enter to generate one from this day's entries"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.StatLabel.Render("←/→ change day  t today  y yesterday  Enter generate"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *DiaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// generate creates a command that asks the AI endpoint for a diary
func (m DiaryModel) generate(date time.Time) tea.Cmd {
	return func() tea.Msg {
		text, err := m.services.Diary.Generate(context.Background(), date)
		return diaryResultMsg{date: date, text: text, err: err}
	}
}

func maxContentWidth(width int) int {
	if width <= 0 || width > 80 {
		return 80
	}
	return width
}

// IsInputMode returns true when the view is capturing keyboard input
func (m DiaryModel) IsInputMode() bool {
	return false
}
