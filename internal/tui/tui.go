// Package tui provides the terminal user interface for the daybook
// application. It renders two surfaces: the full tabbed window and a
// compact timer strip the app shrinks to when the user closes the
// main surface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solvik/daybook/internal/service"
	"github.com/solvik/daybook/internal/tui/ui"
	"github.com/solvik/daybook/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabTimer Tab = iota
	TabHistory
	TabDiary
	TabSettings
)

var tabNames = []string{"Timer", "History", "Diary", "Settings"}

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// Surface routing
	coordinator *Coordinator

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	timerView    views.TimerModel
	historyView  views.HistoryModel
	diaryView    views.DiaryModel
	settingsView views.SettingsModel
	floatingView views.FloatingModel

	// Store change notifications
	updates     <-chan struct{}
	unsubscribe func()

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeName := services.Config.Get().Theme
	themeProvider := ui.NewThemeProvider(themeName)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	updates, unsubscribe := services.Store.Subscribe()

	return Model{
		services:      services,
		coordinator:   NewCoordinator(),
		activeTab:     TabTimer,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		updates:       updates,
		unsubscribe:   unsubscribe,
		timerView:     views.NewTimerModel(services, styles, keys),
		historyView:   views.NewHistoryModel(services, styles, keys),
		diaryView:     views.NewDiaryModel(services, styles, keys),
		settingsView:  views.NewSettingsModel(services, themeProvider, styles, keys),
		floatingView:  views.NewFloatingModel(services, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.historyView.Init(),
		m.settingsView.Init(),
		m.waitForUpdate(),
	)
}

// waitForUpdate blocks on the store's change channel and turns each
// notification into a broadcast message. It is re-armed after every
// receipt.
func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.updates; !ok {
			return nil
		}
		return ui.EntriesUpdatedMsg{}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.coordinator.Surface() == SurfaceCompact {
			return m.updateCompactKeys(msg)
		}

		// Check input modes:
		// - modalInput: blocks ALL global keys (timer flows, AI form)
		// - capturingKeys: blocks character keys
		modalInput := m.isModalInputMode()
		capturingKeys := m.isCapturingKeys()

		// Handle global keys first
		switch {
		case key.Matches(msg, m.keys.Quit) && !capturingKeys:
			m.coordinator.Quit()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Close) && !capturingKeys:
			if m.coordinator.RequestClose() {
				return m, tea.Quit
			}
			// Closing the main surface shrinks to the compact strip.
			return m, m.floatingView.Init()

		case key.Matches(msg, m.keys.Help) && !capturingKeys:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1) && !capturingKeys:
			m.activeTab = TabTimer
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2) && !capturingKeys:
			m.activeTab = TabHistory
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3) && !capturingKeys:
			m.activeTab = TabDiary
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab4) && !capturingKeys:
			m.activeTab = TabSettings
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Update view dimensions
		contentHeight := m.height - 4 // Account for tabs and status bar
		m.timerView.SetSize(m.width, contentHeight)
		m.historyView.SetSize(m.width, contentHeight)
		m.diaryView.SetSize(m.width, contentHeight)
		m.settingsView.SetSize(m.width, contentHeight)
		return m, nil

	case views.ExpandRequestMsg:
		m.coordinator.GoMain()
		return m, m.initCurrentView()

	case ui.EntriesUpdatedMsg:
		// Broadcast to every surface so they all rerender from the
		// same data, then re-arm the subscription.
		m.timerView, cmd = m.timerView.Update(msg)
		cmds = append(cmds, cmd)
		m.historyView, cmd = m.historyView.Update(msg)
		cmds = append(cmds, cmd)
		m.diaryView, cmd = m.diaryView.Update(msg)
		cmds = append(cmds, cmd)
		m.settingsView, cmd = m.settingsView.Update(msg)
		cmds = append(cmds, cmd)
		m.floatingView, cmd = m.floatingView.Update(msg)
		cmds = append(cmds, cmd)
		cmds = append(cmds, m.waitForUpdate())
		return m, tea.Batch(cmds...)

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		// Broadcast theme change to all views
		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.timerView, _ = m.timerView.Update(themeMsg)
		m.historyView, _ = m.historyView.Update(themeMsg)
		m.diaryView, _ = m.diaryView.Update(themeMsg)
		m.settingsView, _ = m.settingsView.Update(themeMsg)
		m.floatingView, _ = m.floatingView.Update(themeMsg)

		return m, m.saveThemeConfig(newTheme)
	}

	// Route everything else to the visible surface.
	if m.coordinator.Surface() == SurfaceCompact {
		m.floatingView, cmd = m.floatingView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch m.activeTab {
	case TabTimer:
		m.timerView, cmd = m.timerView.Update(msg)
	case TabHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	case TabDiary:
		m.diaryView, cmd = m.diaryView.Update(msg)
	case TabSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}

	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// updateCompactKeys handles keyboard input on the compact surface
func (m Model) updateCompactKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if !m.floatingView.IsInputMode() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.coordinator.Quit()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Close):
			// Closing the compact surface really leaves.
			if m.coordinator.RequestClose() {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Expand):
			m.coordinator.GoMain()
			return m, m.initCurrentView()
		}
	}

	m.floatingView, cmd = m.floatingView.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.coordinator.Surface() == SurfaceCompact {
		return m.floatingView.View()
	}

	var b strings.Builder

	// Render tabs
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	// Render active view
	switch m.activeTab {
	case TabTimer:
		b.WriteString(m.timerView.View())
	case TabHistory:
		b.WriteString(m.historyView.View())
	case TabDiary:
		b.WriteString(m.diaryView.View())
	case TabSettings:
		b.WriteString(m.settingsView.View())
	}

	// Render status bar
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	// Help overlay
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isModalInputMode() {
		parts = append(parts, m.renderKeyHelp("Enter", "confirm"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		// View-specific keys
		switch m.activeTab {
		case TabTimer:
			parts = append(parts, m.renderKeyHelp("s", "start"))
			parts = append(parts, m.renderKeyHelp("x", "stop"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabHistory:
			parts = append(parts, m.renderKeyHelp("←/→", "day"))
			parts = append(parts, m.renderKeyHelp("g", "grouped"))
			parts = append(parts, m.renderKeyHelp("e", "edit"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
		case TabDiary:
			parts = append(parts, m.renderKeyHelp("Enter", "generate"))
			parts = append(parts, m.renderKeyHelp("←/→", "day"))
		case TabSettings:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
			parts = append(parts, m.renderKeyHelp("a", "AI settings"))
		}

		// Global keys
		parts = append(parts, m.renderKeyHelp("1-4", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "minimize"))
		parts = append(parts, m.renderKeyHelp("Q", "quit"))
	}

	content := strings.Join(parts, "  ")

	// Fill to width
	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode checks if the visible view is in a modal input mode
// where the user should not be able to switch views
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabTimer:
		return m.timerView.IsInputMode()
	case TabHistory:
		return m.historyView.IsInputMode()
	case TabSettings:
		return m.settingsView.IsInputMode()
	}
	return false
}

// isCapturingKeys checks if the visible view is capturing keyboard input
func (m Model) isCapturingKeys() bool {
	return m.isModalInputMode()
}

// initCurrentView initializes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabTimer:
		return m.timerView.Init()
	case TabHistory:
		return m.historyView.Init()
	case TabDiary:
		return m.diaryView.Init()
	case TabSettings:
		return m.settingsView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		_ = m.services.Config.SetTheme(themeName)
		return nil
	}
}

// renderHelpOverlay renders a help overlay on top of the current view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Minimize to the compact timer\n")
	help.WriteString("  Q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabTimer:
		help.WriteString(m.styles.StatLabel.Render("Timer:"))
		help.WriteString("\n")
		help.WriteString("  s          Start timer\n")
		help.WriteString("  x          Stop timer\n")
		help.WriteString("  r          Refresh\n")
	case TabHistory:
		help.WriteString(m.styles.StatLabel.Render("History:"))
		help.WriteString("\n")
		help.WriteString("  ←/→ h/l    Previous/next day\n")
		help.WriteString("  t          Today\n")
		help.WriteString("  y          Yesterday\n")
		help.WriteString("  j/k        Navigate entries\n")
		help.WriteString("  g          Toggle grouped totals\n")
		help.WriteString("  e          Edit entry\n")
		help.WriteString("  d          Delete entry\n")
		help.WriteString("  r          Refresh\n")
	case TabDiary:
		help.WriteString(m.styles.StatLabel.Render("Diary:"))
		help.WriteString("\n")
		help.WriteString("  Enter      Generate a diary for this day\n")
		help.WriteString("  ←/→        Previous/next day\n")
		help.WriteString("  t          Today\n")
		help.WriteString("  y          Yesterday\n")
	case TabSettings:
		help.WriteString(m.styles.StatLabel.Render("Settings:"))
		help.WriteString("\n")
		help.WriteString("  t          Open theme selector\n")
		help.WriteString("  a/Enter    Edit AI settings\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	helpBox := m.styles.Dialog.Render(help.String())
	return m.styles.App.Render(helpBox)
}

// Run starts the TUI application
func Run(services *service.Services) error {
	model := New(services)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	model.unsubscribe()
	return err
}
