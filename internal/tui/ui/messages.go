package ui

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// EntriesUpdatedMsg is broadcast to all views after any successful
// store mutation so every surface rerenders from the same data.
type EntriesUpdatedMsg struct{}
