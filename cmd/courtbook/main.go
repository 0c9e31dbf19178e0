package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	cr "github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/julianstephens/courtbook/internal/cli"
	"github.com/julianstephens/courtbook/internal/cli/booking"
	"github.com/julianstephens/courtbook/internal/cli/system"
	"github.com/julianstephens/courtbook/internal/config"
	"github.com/julianstephens/courtbook/internal/constants"
	"github.com/julianstephens/courtbook/internal/errors"
	"github.com/julianstephens/courtbook/internal/keyring"
	"github.com/julianstephens/courtbook/internal/logger"
	"github.com/julianstephens/courtbook/internal/schedule"
)

var CLI struct {
	Version       kong.VersionFlag
	EnvFile       string `help:"Env file with settings and secrets (default: ./.env if present)." type:"path" name:"env-file"`
	DebugLog      bool   `help:"Log debug output to stderr." name:"debug"`
	LogDir        string `help:"Directory for log files (default: <config dir>/courtbook/logs)." type:"path"`
	ScreenshotDir string `help:"Save a screenshot here when a run fails." type:"path"`
	Lockfile      string `help:"Run lock path (default: <config dir>/courtbook/courtbook.lock)." type:"path"`
	Countdown     bool   `help:"Show a countdown while waiting for sign-in." negatable:"" default:"true"`
	SkipGate      bool   `help:"Sign in immediately instead of waiting for the release time."`
	Strategy      string `help:"Slot ordering: row-first or hour-first. Overrides STRATEGY."`
	Hours         string `help:"Acceptable hours, e.g. 18,19,20. Overrides ACCEPTABLE_HOURS."`

	Book    booking.BookCmd `cmd:"" help:"Book and pay for the best available court." default:"1"`
	Scan    booking.ScanCmd `cmd:"" help:"List available courts on the target date without booking."`
	Secrets struct {
		Set    system.SecretsSetCmd    `cmd:"" help:"Store secrets in the OS keyring."`
		Status system.SecretsStatusCmd `cmd:"" help:"Show where each secret comes from." default:"1"`
		Delete system.SecretsDeleteCmd `cmd:"" help:"Remove secrets from the OS keyring."`
	} `cmd:"" help:"Manage booking credentials."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Books a tennis court the moment reservations open"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	logCfg := logger.Config{
		Debug:     CLI.DebugLog,
		LogDir:    CLI.LogDir,
		ConfigDir: filepath.Join(configDir, constants.AppName),
		RunID:     uuid.NewString(),
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	if err := config.LoadEnvFile(CLI.EnvFile); err != nil {
		errors.Fatal(err)
	}
	settings, err := loadSettings()
	if err != nil {
		errors.Fatal(err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Ctx:           runCtx,
		Settings:      settings,
		Keyring:       keyring.Store{},
		EnvFile:       CLI.EnvFile,
		LogDir:        logCfg.Dir(),
		LockPath:      CLI.Lockfile,
		ScreenshotDir: CLI.ScreenshotDir,
		SkipGate:      CLI.SkipGate,
		Countdown:     CLI.Countdown,
		NewBrowser:    cli.NewChrome,
	}

	logger.Info("command", "name", ctx.Command(), "version", constants.Version)
	if err := ctx.Run(appCtx); err != nil {
		stop()
		errors.Fatal(err)
	}
}

// loadSettings reads settings from the environment and applies flag
// overrides.
func loadSettings() (config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return config.Settings{}, err
	}
	if CLI.Hours != "" {
		hours, err := config.ParseHours(CLI.Hours)
		if err != nil {
			return config.Settings{}, cr.Wrap(err, "--hours")
		}
		settings.AcceptableHours = hours
	}
	if CLI.Strategy != "" {
		st, err := schedule.ParseStrategy(CLI.Strategy)
		if err != nil {
			return config.Settings{}, cr.Wrap(err, "--strategy")
		}
		settings.Strategy = st
	}
	return settings, nil
}
