package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
██╗    ██╗██╗███╗   ██╗████████╗██████╗  █████╗  ██████╗███████╗
██║    ██║██║████╗  ██║╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██╔════╝
██║ █╗ ██║██║██╔██╗ ██║   ██║   ██████╔╝███████║██║     █████╗
██║███╗██║██║██║╚██╗██║   ██║   ██╔══██╗██╔══██║██║     ██╔══╝
╚███╔███╔╝██║██║ ╚████║   ██║   ██║  ██║██║  ██║╚██████╗███████╗
 ╚══╝╚══╝ ╚═╝╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚══════╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Backend      string
	SaveInterval time.Duration
}

// WithPromptConfig returns an Option that asks for the main settings when no
// config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure WinTrace for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'wintrace edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should usage history be stored?").
				Options(
					huh.NewOption("JSON file (human readable)", BackendJSON).Selected(true),
					huh.NewOption("Bolt database", BackendBolt),
					huh.NewOption("SQLite database", BackendSQLite),
				).
				Value(&opts.Backend),
		),
		huh.NewGroup(
			huh.NewSelect[time.Duration]().
				Title("How often should the day be saved to disk?").
				Options(
					huh.NewOption("Every 30 seconds", 30*time.Second),
					huh.NewOption("Every minute", time.Minute).Selected(true),
					huh.NewOption("Every 5 minutes", 5*time.Minute),
				).
				Value(&opts.SaveInterval),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Storage.Backend = opts.Backend
	c.Tracking.SaveInterval = opts.SaveInterval
}
