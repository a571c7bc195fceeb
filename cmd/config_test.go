package cmd

import (
	"strings"
	"testing"

	"github.com/solvik/daybook/internal/config"
)

// setConfigFlag sets one of the config command's flags (marking it as
// changed, as parsing would) and restores the default on cleanup
func setConfigFlag(t *testing.T, name, value string) {
	t.Helper()
	if err := configCmd.Flags().Set(name, value); err != nil {
		t.Fatalf("Failed to set flag %q: %v", name, err)
	}
	t.Cleanup(func() {
		f := configCmd.Flags().Lookup(name)
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	})
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"empty key", "", "(not set)"},
		{"short key", "abcd", "****"},
		{"normal key", "sk-proj-1234abcd", "****abcd"},
		{"five chars", "12345", "****2345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.key)
			if result != tt.expected {
				t.Errorf("maskAPIKey(%q) = %q, expected %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestRunConfig_ListThemes(t *testing.T) {
	d, stdout, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()
	setConfigFlag(t, "list-themes", "true")

	runConfig(configCmd)

	output := stdout.String()
	for _, want := range []string{"dracula", "nord"} {
		if !strings.Contains(output, want) {
			t.Errorf("Theme list missing %q\nGot: %s", want, output)
		}
	}
}

func TestRunConfig_Show(t *testing.T) {
	d, stdout, stderr := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	runConfig(configCmd)

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	output := stdout.String()
	for _, want := range []string{
		"Configuration for daybook",
		"not found (using defaults)",
		"theme:         dracula",
		"time_format:   24h",
		"(not set)",
		"https://api.openai.com/v1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q\nGot: %s", want, output)
		}
	}
}

func TestRunConfig_SetTheme(t *testing.T) {
	d, stdout, stderr := testDeps(t)
	SetDeps(d)
	defer ResetDeps()
	setConfigFlag(t, "theme", "nord")

	runConfig(configCmd)

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Configuration updated") {
		t.Errorf("Expected update confirmation, got: %s", stdout.String())
	}

	configPath, _ := d.ConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if cfg.Theme != "nord" {
		t.Errorf("Persisted theme = %q, expected %q", cfg.Theme, "nord")
	}
	if cfg.TimeFormat != "24h" {
		t.Errorf("Time format should keep its default, got %q", cfg.TimeFormat)
	}
}

func TestRunConfig_SetTimeFormat(t *testing.T) {
	d, _, stderr := testDeps(t)
	SetDeps(d)
	defer ResetDeps()
	setConfigFlag(t, "time-format", "12h")

	runConfig(configCmd)

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}

	configPath, _ := d.ConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if cfg.TimeFormat != "12h" {
		t.Errorf("Persisted time format = %q, expected %q", cfg.TimeFormat, "12h")
	}
}

func TestRunConfig_InvalidTheme(t *testing.T) {
	d, _, stderr := testDeps(t)
	exitCode := -1
	d.Exit = func(code int) { exitCode = code }
	SetDeps(d)
	defer ResetDeps()
	setConfigFlag(t, "theme", "no-such-theme")

	runConfig(configCmd)

	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(stderr.String(), "invalid theme") {
		t.Errorf("Expected invalid-theme error, got: %s", stderr.String())
	}
}

func TestRunConfig_InvalidTimeFormat(t *testing.T) {
	d, _, stderr := testDeps(t)
	exitCode := -1
	d.Exit = func(code int) { exitCode = code }
	SetDeps(d)
	defer ResetDeps()
	setConfigFlag(t, "time-format", "25h")

	runConfig(configCmd)

	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(stderr.String(), "invalid time_format") {
		t.Errorf("Expected invalid-format error, got: %s", stderr.String())
	}
}

func TestRunConfig_SetAISettings(t *testing.T) {
	d, stdout, stderr := testDeps(t)
	SetDeps(d)
	defer ResetDeps()
	setConfigFlag(t, "api-key", "sk-new-key")
	setConfigFlag(t, "model", "gpt-4o-mini")

	runConfig(configCmd)

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "AI settings updated") {
		t.Errorf("Expected update confirmation, got: %s", stdout.String())
	}

	store := openTestStore(t, d)
	cfg := store.AIConfig()
	if cfg.APIKey != "sk-new-key" {
		t.Errorf("Persisted api key = %q, expected %q", cfg.APIKey, "sk-new-key")
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Persisted model = %q, expected %q", cfg.Model, "gpt-4o-mini")
	}
	if cfg.BaseURL == "" {
		t.Error("Base URL should fall back to the default, got empty")
	}
}

func TestRunConfig_ClearAPIKey(t *testing.T) {
	d, _, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	seedAIConfig(t, d, "https://api.openai.com/v1", "sk-old")
	setConfigFlag(t, "api-key", "")

	runConfig(configCmd)

	store := openTestStore(t, d)
	if got := store.AIConfig().APIKey; got != "" {
		t.Errorf("Expected cleared api key, got %q", got)
	}
}

func TestRunConfig_Init(t *testing.T) {
	d, stdout, stderr := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	configInitFlag = true
	t.Cleanup(func() { configInitFlag = false })

	runConfig(configCmd)

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Wrote sample config") {
		t.Errorf("Expected init confirmation, got: %s", stdout.String())
	}

	configPath, _ := d.ConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Sample config should be loadable: %v", err)
	}
	if cfg.Theme != "dracula" {
		t.Errorf("Sample config theme = %q, expected the default", cfg.Theme)
	}
}

func TestRunConfig_InitTwice(t *testing.T) {
	d, _, stderr := testDeps(t)
	exitCode := -1
	d.Exit = func(code int) { exitCode = code }
	SetDeps(d)
	defer ResetDeps()

	configInitFlag = true
	t.Cleanup(func() { configInitFlag = false })

	runConfig(configCmd)
	runConfig(configCmd)

	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(stderr.String(), "already exists") {
		t.Errorf("Expected already-exists error, got: %s", stderr.String())
	}
}
