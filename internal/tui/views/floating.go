package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solvik/daybook/internal/service"
	"github.com/solvik/daybook/internal/timeutil"
	"github.com/solvik/daybook/internal/tui/ui"
)

// FloatingModel is the compact always-visible timer surface. It shows
// the running session at a glance and supports quick-starting a new
// one; stopping needs the mood picker, so it expands the main surface.
type FloatingModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	status    service.TimerStatus
	err       error
	inputMode bool
	input     textinput.Model
}

// NewFloatingModel creates a new compact surface model
func NewFloatingModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) FloatingModel {
	ti := textinput.New()
	ti.Placeholder = "Quick start..."
	ti.CharLimit = 200
	ti.Width = 30

	return FloatingModel{
		services: services,
		styles:   styles,
		keys:     keys,
		input:    ti,
		status:   services.Timer.Status(),
	}
}

// floatingTickMsg drives the elapsed readout
type floatingTickMsg time.Time

// ExpandRequestMsg asks the root model to show the main surface again.
type ExpandRequestMsg struct{}

// Init implements tea.Model
func (m FloatingModel) Init() tea.Cmd {
	if m.services.Timer.Status().Running {
		return m.tick()
	}
	return nil
}

// Update implements tea.Model
func (m FloatingModel) Update(msg tea.Msg) (FloatingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInput(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Start):
			if !m.status.Running {
				m.inputMode = true
				m.err = nil
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}
			return m, nil

		case key.Matches(msg, m.keys.Stop):
			if m.status.Running {
				// The mood picker lives on the main surface.
				return m, func() tea.Msg { return ExpandRequestMsg{} }
			}
			return m, nil
		}

	case timerActionMsg:
		m.err = msg.err
		m.status = m.services.Timer.Status()
		if m.err == nil {
			m.inputMode = false
			m.input.Blur()
		}
		if m.status.Running {
			return m, m.tick()
		}
		return m, nil

	case floatingTickMsg:
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

	if m.inputMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleInput handles keys while the quick-start input is open
func (m FloatingModel) handleInput(msg tea.KeyMsg) (FloatingModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		title := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		return m, func() tea.Msg {
			_, err := m.services.Timer.Start(title)
			return timerActionMsg{err: err}
		}

	case key.Matches(msg, m.keys.Back):
		m.inputMode = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m FloatingModel) View() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if m.inputMode {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.styles.StatusHelp.Render("enter start  esc cancel"))
		return m.styles.Floating.Render(b.String())
	}

	if m.status.Running {
		title := m.status.Entry.Title
		if title == "" {
			title = "(untitled)"
		}
		b.WriteString(m.styles.TimerElapsed.Render(timeutil.FormatClock(m.status.ElapsedTime)))
		b.WriteString("  ")
		b.WriteString(m.styles.EntryTitle.Render(title))
		b.WriteString("\n")
		b.WriteString(m.styles.StatusHelp.Render("x stop  enter expand  q quit"))
	} else {
		b.WriteString(m.styles.TimerStopped.Render("idle"))
		b.WriteString("\n")
		b.WriteString(m.styles.StatusHelp.Render("s start  enter expand  q quit"))
	}

	return m.styles.Floating.Render(b.String())
}

// tick returns a command that fires one second from now
func (m FloatingModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return floatingTickMsg(t)
	})
}

// IsInputMode returns true when the view is capturing keyboard input
func (m FloatingModel) IsInputMode() bool {
	return m.inputMode
}
