package service

import (
	"os"
	"strings"
	"testing"

	"github.com/solvik/daybook/internal/entry"
)

func TestConfigService_UpdatePersists(t *testing.T) {
	svc, _ := newTestServices(t)

	cfg := svc.Config.Get()
	cfg.Theme = "nord"
	if err := svc.Config.Update(cfg); err != nil {
		t.Fatalf("Update() returned unexpected error: %v", err)
	}

	if svc.Config.Get().Theme != "nord" {
		t.Errorf("Theme = %q, expected %q", svc.Config.Get().Theme, "nord")
	}
	if !svc.Config.Exists() {
		t.Error("config file should exist after Update()")
	}

	// Reload reads the file back.
	if err := svc.Config.Reload(); err != nil {
		t.Fatalf("Reload() returned unexpected error: %v", err)
	}
	if svc.Config.Get().Theme != "nord" {
		t.Errorf("Theme after Reload() = %q, expected %q", svc.Config.Get().Theme, "nord")
	}
}

func TestConfigService_UpdateRejectsInvalid(t *testing.T) {
	svc, _ := newTestServices(t)

	cfg := svc.Config.Get()
	cfg.Theme = "not_a_real_theme"
	err := svc.Config.Update(cfg)
	if err == nil {
		t.Fatal("Update() should reject an unknown theme")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("error should mention invalid configuration, got: %v", err)
	}
}

func TestConfigService_SetTheme(t *testing.T) {
	svc, _ := newTestServices(t)

	if err := svc.Config.SetTheme("nord"); err != nil {
		t.Fatalf("SetTheme() returned unexpected error: %v", err)
	}
	if svc.Config.Get().Theme != "nord" {
		t.Errorf("Theme = %q, expected %q", svc.Config.Get().Theme, "nord")
	}
}

func TestConfigService_Init(t *testing.T) {
	svc, _ := newTestServices(t)

	if err := svc.Config.Init(); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}

	content, err := os.ReadFile(svc.Config.GetPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if !strings.Contains(string(content), "daybook configuration file") {
		t.Error("Init() should write the sample config")
	}

	if err := svc.Config.Init(); err == nil {
		t.Error("Init() should fail when the config file already exists")
	}
}

func TestConfigService_AIConfigDefaults(t *testing.T) {
	svc, _ := newTestServices(t)

	got := svc.Config.AIConfig()
	want := entry.DefaultAIConfig()
	if got != want {
		t.Errorf("AIConfig() = %+v, expected defaults %+v", got, want)
	}
}

func TestConfigService_UpdateAIConfig(t *testing.T) {
	svc, store := newTestServices(t)

	err := svc.Config.UpdateAIConfig(entry.AIConfig{
		APIKey:  "sk-live",
		BaseURL: "https://llm.example.com/v1",
		Model:   "gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("UpdateAIConfig() returned unexpected error: %v", err)
	}

	got := store.AIConfig()
	if got.APIKey != "sk-live" || got.BaseURL != "https://llm.example.com/v1" || got.Model != "gpt-4o-mini" {
		t.Errorf("unexpected stored AI settings: %+v", got)
	}
}

func TestConfigService_UpdateAIConfigFallbacks(t *testing.T) {
	svc, store := newTestServices(t)

	err := svc.Config.UpdateAIConfig(entry.AIConfig{APIKey: "sk-live"})
	if err != nil {
		t.Fatalf("UpdateAIConfig() returned unexpected error: %v", err)
	}

	defaults := entry.DefaultAIConfig()
	got := store.AIConfig()
	if got.BaseURL != defaults.BaseURL {
		t.Errorf("BaseURL = %q, expected default %q", got.BaseURL, defaults.BaseURL)
	}
	if got.Model != defaults.Model {
		t.Errorf("Model = %q, expected default %q", got.Model, defaults.Model)
	}
	if got.APIKey != "sk-live" {
		t.Errorf("APIKey = %q, expected %q", got.APIKey, "sk-live")
	}
}
