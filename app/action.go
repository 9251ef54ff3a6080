package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/slihbo/WinTrace/autostart"
	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/logging"
	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/osutil"
	"github.com/slihbo/WinTrace/internal/pathutil"
	"github.com/slihbo/WinTrace/internal/ui"
	"github.com/slihbo/WinTrace/sampler"
	"github.com/slihbo/WinTrace/server"
	"github.com/slihbo/WinTrace/store"
	"github.com/slihbo/WinTrace/tracker"
)

const (
	envNoColor         = "NO_COLOR"
	envWinTraceNoColor = "WINTRACE_NO_COLOR"
)

var (
	errMissingApp = errors.New("missing application: usage is 'wintrace set-category <application> [category]'")

	errCategoryRejected = errors.New("category was not accepted")
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// loadConfig resolves paths and merges the config file with the command-line
// flags. The first-run prompt is only offered when prompt is set.
func loadConfig(ctx *cli.Context, prompt bool) (*config.Config, error) {
	paths, err := pathutil.Resolve()
	if err != nil {
		return nil, err
	}

	var opts []config.Option

	if prompt {
		opts = append(opts, config.WithPromptConfig(paths.ConfigFile))
	}

	opts = append(opts,
		config.WithViperConfig(paths.ConfigFile),
		config.WithCLIConfig(ctx),
		config.WithPaths(paths),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	return cfg, nil
}

// withSource loads the config and hands fn a query source that is closed
// afterwards.
func withSource(ctx *cli.Context, fn func(*config.Config, source) error) (err error) {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	src, err := openSource(ctx.Context, cfg)
	if err != nil {
		return err
	}

	defer func() {
		cerr := src.Close()
		if cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(cfg, src)
}

func topApps(ctx *cli.Context, cfg *config.Config) int {
	if ctx.IsSet(topFlag.Name) {
		return ctx.Int(topFlag.Name)
	}

	return cfg.Display.TopApps
}

// runAction handles the run command. It holds the data lock, samples the
// foreground application and serves the local API until interrupted.
func runAction(ctx *cli.Context) (err error) {
	cfg, err := loadConfig(ctx, true)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(cfg.Paths.DataDir, osutil.DirPermission); err != nil {
		return err
	}

	lock, err := store.AcquireLock(cfg.Paths.LockFile)
	if err != nil {
		return err
	}

	defer lock.Close()

	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}

	defer logger.Close()

	st, err := store.Open(cfg, logger.Logger)
	if err != nil {
		return err
	}

	defer func() {
		cerr := st.Close()
		if cerr != nil && err == nil {
			err = cerr
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr := tracker.New(cfg, sampler.Default(), st, logger.Logger)
	tr.Start(sigCtx)

	logger.Info("wintrace started",
		slog.String("version", config.Version),
		slog.String("backend", cfg.Storage.Backend),
		slog.Int("pid", os.Getpid()),
	)

	pterm.Info.Printfln("Tracking started. API listening on http://%s (Ctrl+C to quit)", cfg.Server.Addr)

	h := server.NewHandler(tr, logger.Logger)

	serveUntilDone(sigCtx, func(ctx context.Context) error {
		return server.Serve(ctx, cfg.Server.Addr, h.Router(), logger.Logger)
	}, logger.Logger)

	if err = tr.Stop(); err != nil {
		logger.Error("final save failed", slog.Any("error", err))
		return err
	}

	logger.Info("wintrace stopped")

	return nil
}

// serveUntilDone runs serve and returns once ctx is done. When the API cannot
// be served the failure is reported and tracking carries on without it; the
// query commands then read the data files directly.
func serveUntilDone(ctx context.Context, serve func(context.Context) error, logger *slog.Logger) {
	if err := serve(ctx); err != nil {
		logger.Error("api unavailable, tracking continues without it", slog.Any("error", err))
		pterm.Warning.Printfln("The API is unavailable (%v). Tracking continues; commands will read the data files.", err)
	}

	<-ctx.Done()
}

// statsAction handles the stats command.
func statsAction(ctx *cli.Context) error {
	return withSource(ctx, func(cfg *config.Config, src source) error {
		stats, err := src.Stats(
			ctx.Context,
			ctx.String(modeFlag.Name),
			ctx.String(dateFlag.Name),
			ctx.String(startFlag.Name),
			ctx.String(endFlag.Name),
		)
		if err != nil {
			return err
		}

		ok, err := encode(config.Stdout, stats, ctx.Bool(jsonFlag.Name), ctx.Bool(yamlFlag.Name))
		if ok || err != nil {
			return err
		}

		printStats(config.Stdout, stats, topApps(ctx, cfg))

		return nil
	})
}

// recapAction handles the recap command.
func recapAction(ctx *cli.Context) error {
	return withSource(ctx, func(cfg *config.Config, src source) error {
		recap, err := src.YearlyRecap(ctx.Context, ctx.String(yearFlag.Name))
		if err != nil {
			return err
		}

		ok, err := encode(config.Stdout, recap, ctx.Bool(jsonFlag.Name), ctx.Bool(yamlFlag.Name))
		if ok || err != nil {
			return err
		}

		printRecap(config.Stdout, recap, topApps(ctx, cfg))

		return nil
	})
}

// setCategoryAction handles the set-category command. The category is asked
// for interactively when it is not given.
func setCategoryAction(ctx *cli.Context) error {
	id := ctx.Args().Get(0)
	if id == "" {
		return errMissingApp
	}

	name := ctx.Args().Get(1)

	if name == "" {
		opts := make([]huh.Option[string], len(models.Categories))
		for i, c := range models.Categories {
			opts[i] = huh.NewOption(string(c), string(c))
		}

		err := huh.NewSelect[string]().
			Title(fmt.Sprintf("Category for %s", id)).
			Options(opts...).
			Value(&name).
			Run()
		if err != nil {
			return err
		}
	}

	return withSource(ctx, func(_ *config.Config, src source) error {
		ok, err := src.SetCategory(ctx.Context, id, name)
		if err != nil {
			return err
		}

		if !ok {
			return errCategoryRejected
		}

		pterm.Success.Printfln("%s is now categorised as %s", id, name)

		return nil
	})
}

// categoriesAction handles the categories command.
func categoriesAction(ctx *cli.Context) error {
	return withSource(ctx, func(_ *config.Config, src source) error {
		overrides, err := src.Overrides(ctx.Context)
		if err != nil {
			return err
		}

		ok, err := encode(config.Stdout, overrides, ctx.Bool(jsonFlag.Name), ctx.Bool(yamlFlag.Name))
		if ok || err != nil {
			return err
		}

		printOverrides(config.Stdout, overrides)

		return nil
	})
}

// trackingAction returns the handler for tracking start and tracking stop.
// Both need a running tracker.
func trackingAction(start bool) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx, false)
		if err != nil {
			return err
		}

		c := server.NewClient(cfg.Server.Addr)

		var tracking bool

		if start {
			tracking, err = c.StartTracking(ctx.Context)
		} else {
			tracking, err = c.StopTracking(ctx.Context)
		}

		if err != nil {
			return err
		}

		if tracking {
			pterm.Success.Println("Tracking is running")
		} else {
			pterm.Success.Println("Tracking is paused and today's usage is saved")
		}

		return nil
	}
}

func autostartEnableAction(_ *cli.Context) error {
	exe, err := autostart.Executable()
	if err != nil {
		return err
	}

	if err := autostart.Enable(exe); err != nil {
		return err
	}

	pterm.Success.Printfln("WinTrace will start at login (%s)", autostart.Path())

	return nil
}

func autostartDisableAction(_ *cli.Context) error {
	if err := autostart.Disable(); err != nil {
		return err
	}

	pterm.Success.Println("WinTrace will no longer start at login")

	return nil
}

func autostartStatusAction(_ *cli.Context) error {
	enabled, err := autostart.Enabled()
	if err != nil {
		return err
	}

	if enabled {
		pterm.Info.Printfln("Autostart is enabled (%s)", autostart.Path())
	} else {
		pterm.Info.Println("Autostart is disabled")
	}

	return nil
}

// statusAction handles the status command. The status file tells what the
// last tracker wrote; the health check tells whether it is still there.
func statusAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	status, err := tracker.ReadStatus(cfg.Paths.StatusFile)
	if err != nil {
		return err
	}

	health, herr := server.NewClient(cfg.Server.Addr).Health(ctx.Context)
	if herr != nil && !errors.Is(herr, server.ErrUnavailable) {
		return herr
	}

	if health == nil {
		pterm.Info.Println("WinTrace is not running")

		if status != nil {
			pterm.Info.Printfln("Last seen %s tracking %s", status.Updated.Local().Format("Jan 02, 2006 03:04 PM"), status.Day)
		}

		return nil
	}

	state := ui.Green("tracking")
	if !health.Tracking {
		state = ui.Yellow("paused")
	}

	fmt.Fprintf(config.Stdout, "%s: %s (%s)\n", ui.Blue("Status"), state, health.Version)

	if status != nil {
		fmt.Fprintf(config.Stdout, "%s: %d\n", ui.Blue("PID"), status.PID)
		fmt.Fprintf(config.Stdout, "%s: %s\n", ui.Blue("Since"), status.Started.Local().Format("Jan 02, 2006 03:04 PM"))

		if status.Current != "" {
			fmt.Fprintf(config.Stdout, "%s: %s\n", ui.Blue("Focused"), ui.Highlight(status.Current))
		}
	}

	return nil
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// editors such as "code --wait" carry their own arguments
	words, err := shellquote.Split(editor)
	if err != nil || len(words) == 0 {
		words = []string{editor}
	}

	cmd := exec.CommandContext(context.WithoutCancel(ctx.Context), words[0], append(words[1:], cfg.Paths.ConfigFile)...)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	_, noColor := os.LookupEnv(envNoColor)
	_, wtNoColor := os.LookupEnv(envWinTraceNoColor)

	if noColor || wtNoColor || ctx.Bool(noColorFlag.Name) {
		ui.DisableStyling()
	}

	return nil
}
