// Package app defines the wintrace command-line interface.
package app

import (
	"github.com/urfave/cli/v2"

	"github.com/slihbo/WinTrace/internal/config"
)

// Get retrieves the wintrace app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "wintrace",
		Usage: `
		WinTrace records which application holds the foreground focus, second by
		second, and reports where your time went by day, week, month or year.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Flags:                globalFlags,
		Before:               beforeAction,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Track the foreground application and serve the local API until interrupted",
				Action: runAction,
			},
			{
				Name:   "stats",
				Usage:  "Show usage for a day, week, month, year or custom period",
				Flags:  []cli.Flag{modeFlag, dateFlag, startFlag, endFlag, topFlag, jsonFlag, yamlFlag},
				Action: statsAction,
			},
			{
				Name:   "recap",
				Usage:  "Summarise a whole year",
				Flags:  []cli.Flag{yearFlag, topFlag, jsonFlag, yamlFlag},
				Action: recapAction,
			},
			{
				Name:      "set-category",
				Usage:     "Assign a category to an application",
				ArgsUsage: "<application> [category]",
				Action:    setCategoryAction,
			},
			{
				Name:   "categories",
				Usage:  "List your category overrides",
				Flags:  []cli.Flag{jsonFlag, yamlFlag},
				Action: categoriesAction,
			},
			{
				Name:   "live",
				Usage:  "Watch today's usage update every second",
				Action: liveAction,
			},
			{
				Name:  "tracking",
				Usage: "Pause or resume the running tracker",
				Subcommands: []*cli.Command{
					{
						Name:   "start",
						Usage:  "Resume tracking",
						Action: trackingAction(true),
					},
					{
						Name:   "stop",
						Usage:  "Pause tracking and save the day",
						Action: trackingAction(false),
					},
				},
			},
			{
				Name:  "autostart",
				Usage: "Manage starting WinTrace at login",
				Subcommands: []*cli.Command{
					{
						Name:   "enable",
						Usage:  "Start tracking at login",
						Action: autostartEnableAction,
					},
					{
						Name:   "disable",
						Usage:  "Stop starting at login",
						Action: autostartDisableAction,
					},
					{
						Name:   "status",
						Usage:  "Report whether WinTrace starts at login",
						Action: autostartStatusAction,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Print the status of the tracker",
				Action: statusAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
	}
}
