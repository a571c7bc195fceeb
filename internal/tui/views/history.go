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

// HistoryModel is the model for the per-day history view
type HistoryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	result  service.DayResult
	cursor  int
	grouped bool
	err     error

	// Delete confirmation
	confirmingDelete bool
	deleteID         string

	// Edit form state
	editing    bool
	editBase   entry.TimeEntry
	editInputs []textinput.Model
	editFocus  int
}

// NewHistoryModel creates a new history view model
func NewHistoryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) HistoryModel {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200
	title.Width = 40

	start := textinput.New()
	start.Placeholder = "HH:MM"
	start.CharLimit = 5
	start.Width = 10

	end := textinput.New()
	end.Placeholder = "HH:MM (empty reopens)"
	end.CharLimit = 5
	end.Width = 10

	return HistoryModel{
		services:   services,
		styles:     styles,
		keys:       keys,
		result:     service.DayResult{Date: timeutil.Today()},
		editInputs: []textinput.Model{title, start, end},
	}
}

// Init implements tea.Model
func (m HistoryModel) Init() tea.Cmd {
	return m.load(m.result.Date)
}

// historyLoadedMsg carries a freshly loaded day
type historyLoadedMsg struct {
	result service.DayResult
}

// entryDeletedMsg is sent after a delete attempt
type entryDeletedMsg struct {
	err error
}

// entryEditedMsg is sent after an edit attempt
type entryEditedMsg struct {
	err error
}

// Update implements tea.Model
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmingDelete {
			return m.handleDeleteConfirm(msg)
		}
		if m.editing {
			return m.handleEditForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.result.Entries)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevDay):
			return m, m.load(m.result.Date.AddDate(0, 0, -1))

		case key.Matches(msg, m.keys.NextDay):
			// Never navigate past today.
			if timeutil.SameDay(m.result.Date, timeutil.Today()) {
				return m, nil
			}
			return m, m.load(m.result.Date.AddDate(0, 0, 1))

		case key.Matches(msg, m.keys.Today):
			return m, m.load(timeutil.Today())

		case key.Matches(msg, m.keys.Yesterday):
			return m, m.load(timeutil.Yesterday())

		case key.Matches(msg, m.keys.Grouped):
			m.grouped = !m.grouped
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if !m.grouped && m.cursor < len(m.result.Entries) {
				m.confirmingDelete = true
				m.deleteID = m.result.Entries[m.cursor].ID
			}
			return m, nil

		case key.Matches(msg, m.keys.Edit):
			if !m.grouped && m.cursor < len(m.result.Entries) {
				return m.openEditForm(m.result.Entries[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.load(m.result.Date)
		}

	case historyLoadedMsg:
		m.result = msg.result
		m.err = nil
		if m.cursor >= len(m.result.Entries) {
			m.cursor = len(m.result.Entries) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case entryDeletedMsg:
		m.err = msg.err
		return m, m.load(m.result.Date)

	case entryEditedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.editing = false
		}
		return m, m.load(m.result.Date)

	case ui.EntriesUpdatedMsg:
		return m, m.load(m.result.Date)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// handleDeleteConfirm handles keys while the delete prompt is open
func (m HistoryModel) handleDeleteConfirm(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.deleteID
		m.confirmingDelete = false
		m.deleteID = ""
		return m, m.deleteEntry(id)
	case "n", "esc":
		m.confirmingDelete = false
		m.deleteID = ""
		return m, nil
	}
	return m, nil
}

// openEditForm switches to the edit form, prefilled from the entry
func (m HistoryModel) openEditForm(e entry.TimeEntry) (HistoryModel, tea.Cmd) {
	m.editing = true
	m.err = nil
	m.editBase = e
	m.editFocus = 0
	m.editInputs[0].SetValue(e.Title)
	m.editInputs[1].SetValue(e.StartTime.Format("15:04"))
	if e.EndTime != nil {
		m.editInputs[2].SetValue(e.EndTime.Format("15:04"))
	} else {
		m.editInputs[2].SetValue("")
	}
	for i := range m.editInputs {
		m.editInputs[i].Blur()
	}
	m.editInputs[0].Focus()
	return m, textinput.Blink
}

// handleEditForm handles keys while the edit form is open
func (m HistoryModel) handleEditForm(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	switch {
	case msg.String() == "tab" || msg.String() == "down" || msg.String() == "shift+tab" || msg.String() == "up":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.editFocus = (m.editFocus - 1 + len(m.editInputs)) % len(m.editInputs)
		} else {
			m.editFocus = (m.editFocus + 1) % len(m.editInputs)
		}
		for i := range m.editInputs {
			if i == m.editFocus {
				m.editInputs[i].Focus()
			} else {
				m.editInputs[i].Blur()
			}
		}
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Select):
		edit, err := m.buildEdit()
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, m.editEntry(m.editBase.ID, edit)

	case key.Matches(msg, m.keys.Back):
		m.editing = false
		m.err = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(msg)
	return m, cmd
}

// buildEdit translates the form fields into an entry edit. Times stay
// on the entry's own day; an emptied end field reopens a closed entry.
func (m HistoryModel) buildEdit() (service.EntryEdit, error) {
	edit := service.EntryEdit{}

	title := strings.TrimSpace(m.editInputs[0].Value())
	edit.Title = &title

	start, err := parseClock(m.editInputs[1].Value(), m.editBase.StartTime)
	if err != nil {
		return edit, err
	}
	edit.Start = &start

	endValue := strings.TrimSpace(m.editInputs[2].Value())
	if endValue == "" {
		edit.ClearEnd = m.editBase.EndTime != nil
	} else {
		end, err := parseClock(endValue, m.editBase.StartTime)
		if err != nil {
			return edit, err
		}
		edit.End = &end
	}

	return edit, nil
}

// parseClock parses an HH:MM value onto the same day as ref
func parseClock(value string, ref time.Time) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM)", strings.TrimSpace(value))
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}

// View implements tea.Model
func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("History " + timeutil.FormatDay(m.result.Date)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.editing {
		return b.String() + m.renderEditForm()
	}

	if len(m.result.Entries) == 0 {
		b.WriteString(m.styles.TimerStopped.Render("No entries for this day"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("←/→ change day  t today  y yesterday"))
		return b.String()
	}

	if m.grouped {
		b.WriteString(m.renderGroups())
	} else {
		cursor := m.cursor
		if m.confirmingDelete {
			cursor = -1
		}
		b.WriteString(RenderEntryList(m.result.Entries, m.styles, EntryRenderOptions{
			Width:      m.width,
			Cursor:     cursor,
			TimeFormat: m.services.Config.Get().TimeFormat,
		}))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("Total:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render(timeutil.FormatDuration(m.result.Total)))
	b.WriteString("  ")
	count := len(m.result.Entries)
	b.WriteString(m.styles.StatusHelp.Render(fmt.Sprintf("%d %s", count, pluralize("entry", count))))
	b.WriteString("\n")

	if m.confirmingDelete {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render("Delete the selected entry? (y/n)"))
	}

	return b.String()
}

// renderEditForm renders the entry edit form
func (m HistoryModel) renderEditForm() string {
	var b strings.Builder

	b.WriteString(m.styles.StatLabel.Render("Editing entry"))
	b.WriteString("\n\n")

	labels := []string{"Title:", "Start:", "End:"}
	for i, input := range m.editInputs {
		b.WriteString(m.styles.StatLabel.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatLabel.Render("Tab next field  Enter save  Esc cancel"))

	return b.String()
}

// renderGroups renders the per-title aggregate table
func (m HistoryModel) renderGroups() string {
	var b strings.Builder

	maxTitleWidth := 0
	for _, g := range m.result.Groups {
		if len(g.Title) > maxTitleWidth {
			maxTitleWidth = len(g.Title)
		}
	}

	for _, g := range m.result.Groups {
		title := g.Title
		if title == "" {
			title = "(untitled)"
		}
		b.WriteString(m.styles.EntryTitle.Render(fmt.Sprintf("%-*s", maxTitleWidth, title)))
		b.WriteString(" ")
		b.WriteString(m.styles.EntryDuration.Render(timeutil.FormatDuration(g.Total)))
		b.WriteString(" ")
		b.WriteString(m.styles.StatusHelp.Render(fmt.Sprintf("×%d", g.Count)))
		if label := moodLabel(g.LatestMood); label != "" {
			b.WriteString("  ")
			b.WriteString(m.styles.EntryMood.Render(label))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Date returns the day currently being shown
func (m HistoryModel) Date() string {
	return m.result.Date.Format("2006-01-02")
}

// load creates a command that loads the given day
func (m HistoryModel) load(date time.Time) tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{result: m.services.Entry.Day(date)}
	}
}

// deleteEntry creates a command that deletes an entry by id
func (m HistoryModel) deleteEntry(id string) tea.Cmd {
	return func() tea.Msg {
		return entryDeletedMsg{err: m.services.Entry.Delete(id)}
	}
}

// editEntry creates a command that applies an edit to an entry
func (m HistoryModel) editEntry(id string, edit service.EntryEdit) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Entry.Edit(id, edit)
		return entryEditedMsg{err: err}
	}
}

// IsInputMode returns true when the view is capturing keyboard input
func (m HistoryModel) IsInputMode() bool {
	return m.confirmingDelete || m.editing
}
