package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is applied when the config file names no theme.
const DefaultTheme = "dracula"

// ThemeProvider resolves theme names from the config file to
// bubbletint palettes and derives the app's styles from the active
// one.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider builds a provider holding every bundled palette,
// starting on the named theme. An empty or unknown name lands on
// DefaultTheme, so a hand-edited config file cannot leave the app
// without styles.
func NewThemeProvider(name string) *ThemeProvider {
	tints := tint.DefaultTints()

	fallback := tints[0]
	for _, t := range tints {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}

	registry := tint.NewRegistry(fallback, tints...)
	if name != "" {
		registry.SetTintID(name)
	}

	return &ThemeProvider{registry: registry}
}

// SetTheme switches to the named theme, reporting whether it exists.
// The active theme is unchanged on an unknown name.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// CurrentName returns the active theme's name, as stored in the
// config file.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// AvailableThemes lists every theme name, sorted for display in the
// settings selector.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles derives the style set for the active theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
