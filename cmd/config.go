package cmd

import (
	"fmt"
	"strings"

	tint "github.com/lrstanley/bubbletint"
	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/service"
)

var (
	configAPIKeyFlag     string
	configBaseURLFlag    string
	configModelFlag      string
	configThemeFlag      string
	configTimeFormatFlag string
	configListThemesFlag bool
	configInitFlag       bool
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or change configuration",
	Long: `Display the current effective configuration, or change individual
settings.

App settings (theme, time format) live in a TOML config file; the AI
diary settings (API key, base URL, model) are stored alongside the
entries so the TUI and CLI share them.

Examples:

  Display current configuration:
    daybook config

  Change settings:
    daybook config --theme nord
    daybook config --time-format 12h
    daybook config --api-key sk-... --model gpt-4o-mini

  Other:
    daybook config --list-themes      List available themes
    daybook config --init             Write a sample config file`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runConfig(cmd)
	},
}

func init() {
	configCmd.Flags().StringVar(&configAPIKeyFlag, "api-key", "", "API key for the diary endpoint")
	configCmd.Flags().StringVar(&configBaseURLFlag, "base-url", "", "base URL of the OpenAI-compatible endpoint")
	configCmd.Flags().StringVar(&configModelFlag, "model", "", "model used for diary generation")
	configCmd.Flags().StringVar(&configThemeFlag, "theme", "", "TUI color theme")
	configCmd.Flags().StringVar(&configTimeFormatFlag, "time-format", "", "clock format: 24h or 12h")
	configCmd.Flags().BoolVar(&configListThemesFlag, "list-themes", false, "list available themes")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "write a sample config file")
}

func runConfig(cmd *cobra.Command) {
	if configListThemesFlag {
		listThemes()
		return
	}

	svc := openServices()
	if svc == nil {
		return
	}

	if configInitFlag {
		if err := svc.Config.Init(); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		_, _ = fmt.Fprintf(deps.Stdout, "Wrote sample config to %s\n", svc.Config.GetPath())
		return
	}

	if changeSettings(cmd, svc) {
		return
	}

	showConfig(svc)
}

// changeSettings applies any setting flags. Returns true if at least
// one setting was changed (or failed to change).
func changeSettings(cmd *cobra.Command, svc *service.Services) bool {
	changed := false

	if configThemeFlag != "" || configTimeFormatFlag != "" {
		cfg := svc.Config.Get()
		if configThemeFlag != "" {
			cfg.Theme = configThemeFlag
		}
		if configTimeFormatFlag != "" {
			cfg.TimeFormat = configTimeFormatFlag
		}
		if err := svc.Config.Update(cfg); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return true
		}
		_, _ = fmt.Fprintln(deps.Stdout, "Configuration updated")
		changed = true
	}

	if cmd.Flags().Changed("api-key") || configBaseURLFlag != "" || configModelFlag != "" {
		cfg := svc.Config.AIConfig()
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey = strings.TrimSpace(configAPIKeyFlag)
		}
		if configBaseURLFlag != "" {
			cfg.BaseURL = strings.TrimSpace(configBaseURLFlag)
		}
		if configModelFlag != "" {
			cfg.Model = strings.TrimSpace(configModelFlag)
		}
		if err := svc.Config.UpdateAIConfig(cfg); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return true
		}
		_, _ = fmt.Fprintln(deps.Stdout, "AI settings updated")
		changed = true
	}

	return changed
}

// showConfig displays the current effective configuration
func showConfig(svc *service.Services) {
	cfg := svc.Config.Get()
	aiCfg := svc.Config.AIConfig()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for daybook")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:   %s\n", svc.Config.GetPath())
	if svc.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:        exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:        not found (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "theme:         %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "time_format:   %s\n", cfg.TimeFormat)
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "AI diary endpoint:")
	_, _ = fmt.Fprintf(deps.Stdout, "  api key:     %s\n", maskAPIKey(aiCfg.APIKey))
	_, _ = fmt.Fprintf(deps.Stdout, "  base url:    %s\n", aiCfg.BaseURL)
	_, _ = fmt.Fprintf(deps.Stdout, "  model:       %s\n", aiCfg.Model)
}

// listThemes prints all available theme ids
func listThemes() {
	for _, t := range tint.DefaultTints() {
		_, _ = fmt.Fprintln(deps.Stdout, t.ID())
	}
}

// maskAPIKey hides all but the tail of a stored key
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
