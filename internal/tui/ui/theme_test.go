package ui

import (
	"sort"
	"testing"
)

func TestNewThemeProvider(t *testing.T) {
	tests := []struct {
		name      string
		theme     string
		wantTheme string
	}{
		{"empty name falls back", "", DefaultTheme},
		{"configured theme", "nord", "nord"},
		{"unknown theme falls back", "no-such-theme", DefaultTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := NewThemeProvider(tt.theme)
			if got := tp.CurrentName(); got != tt.wantTheme {
				t.Errorf("CurrentName() = %q, expected %q", got, tt.wantTheme)
			}
		})
	}
}

func TestThemeProvider_SetTheme(t *testing.T) {
	tp := NewThemeProvider("")

	if !tp.SetTheme("nord") {
		t.Fatal("expected SetTheme to accept a known theme")
	}
	if tp.CurrentName() != "nord" {
		t.Errorf("CurrentName() = %q, expected nord", tp.CurrentName())
	}

	if tp.SetTheme("no-such-theme") {
		t.Error("expected SetTheme to reject an unknown theme")
	}
	if tp.CurrentName() != "nord" {
		t.Errorf("active theme changed on a rejected name, got %q", tp.CurrentName())
	}
}

func TestThemeProvider_AvailableThemes(t *testing.T) {
	themes := NewThemeProvider("").AvailableThemes()

	if !sort.StringsAreSorted(themes) {
		t.Error("expected the theme list to be sorted")
	}

	found := false
	for _, name := range themes {
		if name == DefaultTheme {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected %q among the available themes", DefaultTheme)
	}
}

func TestThemeProvider_Styles(t *testing.T) {
	dracula := NewThemeProvider("dracula").Styles()
	nord := NewThemeProvider("nord").Styles()

	if dracula.ViewTitle.GetForeground() == nord.ViewTitle.GetForeground() {
		t.Error("expected different themes to produce different title colors")
	}
}
