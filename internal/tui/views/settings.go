package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solvik/daybook/internal/config"
	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/service"
	"github.com/solvik/daybook/internal/tui/ui"
)

// SettingsModel is the model for the settings view
type SettingsModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	// UI state
	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	themeName string
	aiConfig  entry.AIConfig
	err       error

	// Theme selector state
	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int // For scrolling

	// AI settings form state
	editingAI bool
	aiInputs  []textinput.Model
	aiFocus   int
}

// NewSettingsModel creates a new settings view model
func NewSettingsModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) SettingsModel {
	themes := themeProvider.AvailableThemes()
	currentTheme := themeProvider.CurrentName()

	// Find cursor position for current theme
	cursor := 0
	for i, t := range themes {
		if t == currentTheme {
			cursor = i
			break
		}
	}

	apiKey := textinput.New()
	apiKey.Placeholder = "sk-..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	baseURL := textinput.New()
	baseURL.Placeholder = entry.DefaultAIConfig().BaseURL
	baseURL.CharLimit = 200
	baseURL.Width = 50

	model := textinput.New()
	model.Placeholder = entry.DefaultAIConfig().Model
	model.CharLimit = 100
	model.Width = 50

	return SettingsModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themes,
		themeCursor:   cursor,
		aiInputs:      []textinput.Model{apiKey, baseURL, model},
	}
}

// Init implements tea.Model
func (m SettingsModel) Init() tea.Cmd {
	return m.loadSettings()
}

// settingsLoadedMsg is sent when settings are loaded
type settingsLoadedMsg struct {
	config   config.Config
	path     string
	exists   bool
	aiConfig entry.AIConfig
}

// aiConfigSavedMsg is sent after saving the AI settings
type aiConfigSavedMsg struct {
	err error
}

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// Update implements tea.Model
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}
		if m.editingAI {
			return m.handleAIForm(msg)
		}

		// Open theme selector with 't'
		if msg.String() == "t" {
			m.selectingTheme = true
			m.updateThemeOffset()
			return m, nil
		}

		// Open AI settings form with 'a' or Enter
		if msg.String() == "a" || key.Matches(msg, m.keys.Select) {
			return m.openAIForm()
		}

	case settingsLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists
		m.aiConfig = msg.aiConfig
		m.themeName = msg.config.Theme
		if m.themeName == "" {
			m.themeName = ui.DefaultTheme
		}
		// Update cursor to match loaded theme
		for i, t := range m.themes {
			if t == m.themeName {
				m.themeCursor = i
				break
			}
		}

	case aiConfigSavedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.editingAI = false
		}
		return m, m.loadSettings()

	case ui.EntriesUpdatedMsg:
		return m, m.loadSettings()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		return m, nil
	}

	return m, nil
}

// handleThemeSelection handles keys when theme selector is open
func (m SettingsModel) handleThemeSelection(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.updateThemeOffset()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.updateThemeOffset()
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		// Select theme and close selector
		selectedTheme := m.themes[m.themeCursor]
		m.selectingTheme = false
		return m, m.requestThemeChange(selectedTheme)

	case key.Matches(msg, m.keys.Back):
		// Close selector without changing
		m.selectingTheme = false
		// Reset cursor to current theme
		for i, t := range m.themes {
			if t == m.themeName {
				m.themeCursor = i
				break
			}
		}
		return m, nil
	}

	return m, nil
}

// openAIForm switches to the AI settings form with current values
func (m SettingsModel) openAIForm() (SettingsModel, tea.Cmd) {
	m.editingAI = true
	m.err = nil
	m.aiFocus = 0
	m.aiInputs[0].SetValue(m.aiConfig.APIKey)
	m.aiInputs[1].SetValue(m.aiConfig.BaseURL)
	m.aiInputs[2].SetValue(m.aiConfig.Model)
	for i := range m.aiInputs {
		m.aiInputs[i].Blur()
	}
	m.aiInputs[0].Focus()
	return m, textinput.Blink
}

// handleAIForm handles keys while editing AI settings
func (m SettingsModel) handleAIForm(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	switch {
	case msg.String() == "tab" || msg.String() == "down" || msg.String() == "shift+tab" || msg.String() == "up":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.aiFocus = (m.aiFocus - 1 + len(m.aiInputs)) % len(m.aiInputs)
		} else {
			m.aiFocus = (m.aiFocus + 1) % len(m.aiInputs)
		}
		for i := range m.aiInputs {
			if i == m.aiFocus {
				m.aiInputs[i].Focus()
			} else {
				m.aiInputs[i].Blur()
			}
		}
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Select):
		cfg := entry.AIConfig{
			APIKey:  strings.TrimSpace(m.aiInputs[0].Value()),
			BaseURL: strings.TrimSpace(m.aiInputs[1].Value()),
			Model:   strings.TrimSpace(m.aiInputs[2].Value()),
		}
		return m, m.saveAIConfig(cfg)

	case key.Matches(msg, m.keys.Back):
		m.editingAI = false
		m.err = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.aiInputs[m.aiFocus], cmd = m.aiInputs[m.aiFocus].Update(msg)
	return m, cmd
}

// updateThemeOffset adjusts scroll offset to keep cursor visible
func (m *SettingsModel) updateThemeOffset() {
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

// requestThemeChange creates a command to request a theme change by name
func (m SettingsModel) requestThemeChange(themeName string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeChangeRequestMsg{ThemeName: themeName}
	}
}

// saveAIConfig creates a command that persists the AI settings
func (m SettingsModel) saveAIConfig(cfg entry.AIConfig) tea.Cmd {
	return func() tea.Msg {
		return aiConfigSavedMsg{err: m.services.Config.UpdateAIConfig(cfg)}
	}
}

// loadSettings creates a command to load the current settings
func (m SettingsModel) loadSettings() tea.Cmd {
	return func() tea.Msg {
		return settingsLoadedMsg{
			config:   m.services.Config.Get(),
			path:     m.services.Config.GetPath(),
			exists:   m.services.Config.Exists(),
			aiConfig: m.services.Config.AIConfig(),
		}
	}
}

// View implements tea.Model
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Settings"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.editingAI {
		return b.String() + m.renderAIForm()
	}

	// Config file path
	b.WriteString(m.styles.StatLabel.Render("Config file:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render(m.path))
	b.WriteString("\n")

	b.WriteString(m.styles.StatLabel.Render("Status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n\n")

	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
		return b.String()
	}

	b.WriteString(m.renderSettingLine("theme", m.themeName))
	b.WriteString(m.renderSettingLine("time_format", m.config.TimeFormat))
	b.WriteString("\n")

	// AI settings summary
	b.WriteString(m.styles.StatLabel.Render("AI diary endpoint"))
	b.WriteString("\n")
	b.WriteString(m.renderSettingLine("api key", maskKey(m.aiConfig.APIKey)))
	b.WriteString(m.renderSettingLine("base url", m.aiConfig.BaseURL))
	b.WriteString(m.renderSettingLine("model", m.aiConfig.Model))
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("Press 't' for themes, 'a' to edit the AI settings"))

	return b.String()
}

// renderAIForm renders the AI settings editing form
func (m SettingsModel) renderAIForm() string {
	var b strings.Builder

	labels := []string{"API key:", "Base URL:", "Model:"}
	for i, input := range m.aiInputs {
		b.WriteString(m.styles.StatLabel.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatLabel.Render("Tab next field  Enter save  Esc cancel"))

	return b.String()
}

// renderThemeSelector renders the theme selection list
func (m SettingsModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(m.styles.StatLabel.Render("theme:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render("Select a theme"))
	b.WriteString("\n\n")

	// Calculate visible range
	endIdx := m.themeOffset + maxVisibleThemes
	if endIdx > len(m.themes) {
		endIdx = len(m.themes)
	}

	if m.themeOffset > 0 {
		b.WriteString(m.styles.StatLabel.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}

	for i := m.themeOffset; i < endIdx; i++ {
		theme := m.themes[i]
		if i == m.themeCursor {
			b.WriteString(m.styles.EntrySelected.Render("▸ " + theme))
			if theme == m.themeName {
				b.WriteString(m.styles.Success.Render(" (current)"))
			}
		} else {
			b.WriteString("  ")
			if theme == m.themeName {
				b.WriteString(m.styles.Success.Render(theme + " (current)"))
			} else {
				b.WriteString(m.styles.StatValue.Render(theme))
			}
		}
		b.WriteString("\n")
	}

	if endIdx < len(m.themes) {
		b.WriteString(m.styles.StatLabel.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("↑/↓ navigate  Enter select  Esc cancel"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m SettingsModel) renderSettingLine(key, value string) string {
	return m.styles.StatLabel.Render(key+":") + " " + m.styles.StatValue.Render(value) + "\n"
}

// maskKey hides all but the tail of a stored API key
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// IsInputMode returns true when the view is capturing keyboard input
func (m SettingsModel) IsInputMode() bool {
	return m.selectingTheme || m.editingAI
}
