package app

import (
	"github.com/urfave/cli/v2"

	"github.com/slihbo/WinTrace/internal/models"
)

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	backendFlag = &cli.StringFlag{
		Name:    "backend",
		Aliases: []string{"b"},
		Usage:   "Storage backend: json, bolt or sqlite (overrides storage.backend)",
	}

	dataDirFlag = &cli.StringFlag{
		Name:  "data-dir",
		Usage: "Directory holding usage history (overrides storage.dir)",
	}

	addrFlag = &cli.StringFlag{
		Name:  "addr",
		Usage: "Address of the local API (overrides server.addr)",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error (overrides log.level)",
	}

	saveIntervalFlag = &cli.StringFlag{
		Name:  "save-interval",
		Usage: "How often the live day is saved, e.g. '30s' (overrides tracking.save_interval)",
	}

	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Also print logs to stderr",
	}

	localFlag = &cli.BoolFlag{
		Name:  "local",
		Usage: "Read the data files directly instead of asking the running tracker",
	}

	modeFlag = &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Usage:   "Report period: daily, weekly, monthly, yearly or custom",
		Value:   string(models.ViewDaily),
	}

	dateFlag = &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "Day inside the reported period, e.g. '2024-01-15' or 'last monday' (default: today)",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "First day of a custom period",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Last day of a custom period",
	}

	yearFlag = &cli.StringFlag{
		Name:    "year",
		Aliases: []string{"y"},
		Usage:   "Year to summarise (default: current year)",
	}

	topFlag = &cli.IntFlag{
		Name:  "top",
		Usage: "Number of applications to list (overrides display.top_apps)",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the result as JSON",
	}

	yamlFlag = &cli.BoolFlag{
		Name:  "yaml",
		Usage: "Print the result as YAML",
	}
)

// globalFlags apply to every command.
var globalFlags = []cli.Flag{
	noColorFlag,
	backendFlag,
	dataDirFlag,
	addrFlag,
	logLevelFlag,
	saveIntervalFlag,
	verboseFlag,
	localFlag,
}
