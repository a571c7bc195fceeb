package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/service"
	"github.com/solvik/daybook/internal/timeutil"
	"github.com/solvik/daybook/internal/tui/ui"
)

// timerMode tracks which part of the start/stop flow is active
type timerMode int

const (
	timerIdle timerMode = iota
	timerTitleInput
	timerStopTitle
	timerStopMood
)

var moodChoices = []entry.Mood{entry.MoodFocus, entry.MoodNeutral, entry.MoodTired}

// TimerModel is the model for the timer view
type TimerModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width  int
	height int
	status service.TimerStatus
	err    error

	flow        timerMode
	input       textinput.Model
	suggestions []string
	moodCursor  int
}

// NewTimerModel creates a new timer view model
func NewTimerModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) TimerModel {
	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.CharLimit = 200
	ti.Width = 50

	return TimerModel{
		services: services,
		styles:   styles,
		keys:     keys,
		input:    ti,
		status:   services.Timer.Status(),
	}
}

// timerActionMsg is sent after a start or stop attempt
type timerActionMsg struct {
	err error
}

// timerTickMsg is sent every second to update elapsed time
type timerTickMsg time.Time

// Init implements tea.Model
func (m TimerModel) Init() tea.Cmd {
	// An immediate tick refreshes the status through Update, where the
	// model copy is kept, and re-arms the chain when a timer runs.
	return func() tea.Msg {
		return timerTickMsg(time.Now())
	}
}

// Update implements tea.Model
func (m TimerModel) Update(msg tea.Msg) (TimerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.flow {
		case timerTitleInput:
			return m.handleTitleInput(msg)
		case timerStopTitle:
			return m.handleStopTitle(msg)
		case timerStopMood:
			return m.handleStopMood(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Start):
			if !m.status.Running {
				m.flow = timerTitleInput
				m.err = nil
				m.input.SetValue("")
				m.input.Focus()
				m.suggestions = m.services.Entry.Suggestions()
				return m, textinput.Blink
			}
			return m, nil

		case key.Matches(msg, m.keys.Stop):
			if m.status.Running {
				return m.beginStopFlow()
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.status = m.services.Timer.Status()
			return m, nil
		}

	case timerActionMsg:
		m.err = msg.err
		wasRunning := m.status.Running
		m.status = m.services.Timer.Status()
		if m.err == nil {
			m.flow = timerIdle
			m.input.Blur()
		}
		// The store broadcast arms the tick chain for the same start,
		// so only arm on the not-running to running transition.
		if !wasRunning && m.status.Running {
			return m, m.tick()
		}
		return m, nil

	case timerTickMsg:
		m.status = m.services.Timer.Status()
		if m.status.Running {
			return m, m.tick()
		}
		return m, nil

	case ui.EntriesUpdatedMsg:
		wasRunning := m.status.Running
		m.status = m.services.Timer.Status()
		if !wasRunning && m.status.Running {
			return m, m.tick()
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.flow == timerTitleInput || m.flow == timerStopTitle {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleTitleInput handles keys while typing the title for a new timer
func (m TimerModel) handleTitleInput(msg tea.KeyMsg) (TimerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		// An empty title is fine here; it can be filled in on stop.
		title := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		return m, m.startTimer(title)

	case key.Matches(msg, m.keys.Back):
		m.flow = timerIdle
		m.input.Blur()
		m.input.SetValue("")
		return m, nil

	case msg.String() == "tab":
		if match := m.firstSuggestion(); match != "" {
			m.input.SetValue(match)
			m.input.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleStopTitle handles keys while backfilling a title during stop
func (m TimerModel) handleStopTitle(msg tea.KeyMsg) (TimerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		if strings.TrimSpace(m.input.Value()) == "" {
			// An untitled session cannot be recorded.
			return m, nil
		}
		m.flow = timerStopMood
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.flow = timerIdle
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleStopMood handles the mood picker shown while stopping
func (m TimerModel) handleStopMood(msg tea.KeyMsg) (TimerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.moodCursor > 0 {
			m.moodCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.moodCursor < len(moodChoices)-1 {
			m.moodCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		mood := moodChoices[m.moodCursor]
		override := strings.TrimSpace(m.input.Value())
		return m, m.stopTimer(mood, override)

	case key.Matches(msg, m.keys.Back):
		m.flow = timerIdle
		m.input.SetValue("")
		return m, nil
	}

	return m, nil
}

// beginStopFlow routes to the title backfill step when the running
// entry has no title, otherwise straight to the mood picker.
func (m TimerModel) beginStopFlow() (TimerModel, tea.Cmd) {
	m.err = nil
	m.moodCursor = 0
	m.input.SetValue("")

	if m.status.Entry != nil && strings.TrimSpace(m.status.Entry.Title) == "" {
		m.flow = timerStopTitle
		m.input.Focus()
		return m, textinput.Blink
	}

	m.flow = timerStopMood
	return m, nil
}

// firstSuggestion returns the first stored title matching the input
func (m TimerModel) firstSuggestion() string {
	typed := strings.ToLower(strings.TrimSpace(m.input.Value()))
	for _, s := range m.suggestions {
		if typed == "" || strings.Contains(strings.ToLower(s), typed) {
			return s
		}
	}
	return ""
}

// matchingSuggestions returns up to five stored titles matching the input
func (m TimerModel) matchingSuggestions() []string {
	typed := strings.ToLower(strings.TrimSpace(m.input.Value()))
	var out []string
	for _, s := range m.suggestions {
		if typed == "" || strings.Contains(strings.ToLower(s), typed) {
			out = append(out, s)
			if len(out) == 5 {
				break
			}
		}
	}
	return out
}

// View implements tea.Model
func (m TimerModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Timer"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.flow {
	case timerTitleInput:
		b.WriteString(m.styles.StatLabel.Render("Start Timer"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if matches := m.matchingSuggestions(); len(matches) > 0 {
			b.WriteString("\n")
			for _, s := range matches {
				b.WriteString(m.styles.StatusHelp.Render("  " + s))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Enter to start (empty is fine), Tab to complete, Esc to cancel"))
		return b.String()

	case timerStopTitle:
		b.WriteString(m.styles.StatLabel.Render("This session has no title yet. Give it one:"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Enter to continue, Esc to cancel"))
		return b.String()

	case timerStopMood:
		b.WriteString(m.styles.StatLabel.Render("How did it feel?"))
		b.WriteString("\n\n")
		for i, mood := range moodChoices {
			label := moodLabel(mood)
			if i == m.moodCursor {
				b.WriteString(m.styles.EntrySelected.Render("▸ " + label))
			} else {
				b.WriteString("  " + m.styles.StatValue.Render(label))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Enter to stop the timer, Esc to cancel"))
		return b.String()
	}

	if !m.status.Running {
		b.WriteString(m.styles.TimerStopped.Render("No timer running"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 's' to start a new timer"))
		return b.String()
	}

	active := m.status.Entry
	b.WriteString(m.styles.TimerRunning.Render("● Timer Running"))
	b.WriteString("\n\n")

	title := active.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(m.styles.StatLabel.Render("Activity:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render(title))
	b.WriteString("\n")

	b.WriteString(m.styles.StatLabel.Render("Started:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render(formatStartTime(active.StartTime, m.services.Config.Get().TimeFormat)))
	b.WriteString("\n")

	b.WriteString(m.styles.StatLabel.Render("Elapsed:"))
	b.WriteString(" ")
	b.WriteString(m.styles.TimerElapsed.Render(timeutil.FormatClock(m.status.ElapsedTime)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.StatLabel.Render("Press 'x' to stop the timer"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *TimerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// startTimer creates a command to start a timer with the given title
func (m TimerModel) startTimer(title string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Timer.Start(title)
		return timerActionMsg{err: err}
	}
}

// stopTimer creates a command to stop the running timer
func (m TimerModel) stopTimer(mood entry.Mood, overrideTitle string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Timer.Stop(mood, overrideTitle)
		return timerActionMsg{err: err}
	}
}

// tick returns a command that fires one second from now
func (m TimerModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func formatStartTime(t time.Time, timeFormat string) string {
	if timeutil.IsToday(t) {
		return "today at " + formatClockTime(t, timeFormat)
	}
	return t.Format("Mon Jan 2 at ") + formatClockTime(t, timeFormat)
}

// IsInputMode returns true when the view is capturing keyboard input
func (m TimerModel) IsInputMode() bool {
	return m.flow != timerIdle
}
