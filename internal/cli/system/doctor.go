package system

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/julianstephens/courtbook/internal/cli"
	"github.com/julianstephens/courtbook/internal/config"
	"github.com/julianstephens/courtbook/internal/constants"
	"github.com/julianstephens/courtbook/internal/lock"
	"github.com/julianstephens/courtbook/internal/utils"
)

var (
	lookPath = exec.LookPath
	nowFunc  = time.Now
)

// chromeNames are the executables chromedp looks for, in its order.
var chromeNames = []string{
	"headless_shell",
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"google-chrome-beta",
	"google-chrome-unstable",
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	fail := func(name string, err error) {
		fmt.Fprintf(out, "❌ %s: FAIL\n", name)
		fmt.Fprintf(out, "   Error: %v\n", err)
		hasError = true
	}

	// Check 1: keyring (warning only, the environment can supply everything)
	if ctx.Keyring != nil && ctx.Keyring.IsAvailable() {
		fmt.Fprintf(out, "✓ OS keyring: OK\n")
	} else {
		fmt.Fprintf(out, "⚠ OS keyring: WARNING\n")
		fmt.Fprintf(out, "   not available, secrets must come from the environment\n")
	}

	// Check 2: secrets complete
	if err := checkSecrets(ctx); err != nil {
		fail("Secrets", err)
	} else {
		fmt.Fprintf(out, "✓ Secrets: OK\n")
	}

	// Check 3: settings valid
	settingsOK := false
	if err := ctx.Settings.Validate(); err != nil {
		fail("Settings", err)
	} else {
		fmt.Fprintf(out, "✓ Settings: OK (hours %v, %s)\n", ctx.Settings.AcceptableHours, ctx.Settings.Strategy)
		settingsOK = true
	}

	// Check 4: timezone and schedule (only if settings are valid)
	if settingsOK {
		if err := checkSchedule(out, ctx.Settings); err != nil {
			fail("Clock/timezone", err)
		}
	} else {
		fmt.Fprintf(out, "⊘ Clock/timezone: SKIPPED (settings invalid)\n")
	}

	// Check 5: browser executable
	if path, err := findChrome(ctx.Settings.ChromePath); err != nil {
		fail("Browser", err)
	} else {
		fmt.Fprintf(out, "✓ Browser: OK (%s)\n", path)
	}

	// Check 6: run lock (warning only)
	if err := checkLock(ctx.LockPath); err != nil {
		fmt.Fprintf(out, "⚠ Run lock: WARNING\n")
		fmt.Fprintf(out, "   %v\n", err)
	} else {
		fmt.Fprintf(out, "✓ Run lock: OK\n")
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Some checks failed. Fix the issues above before booking.")
		return errors.New("diagnostics failed")
	}
	fmt.Fprintln(out, "All checks passed!")
	return nil
}

func checkSecrets(ctx *cli.Context) error {
	secrets, err := ctx.LoadSecrets()
	if err != nil {
		return err
	}
	return secrets.Validate()
}

func checkSchedule(out io.Writer, s config.Settings) error {
	loc, err := s.Location()
	if err != nil {
		return err
	}
	now := nowFunc().In(loc)
	target := utils.TargetDate(now, s.DaysInAdvance)
	gate, err := utils.TimeOnDay(now, s.SignInAt)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Clock/timezone: OK (%s)\n", now.Format("Mon Jan 2 15:04 MST"))
	fmt.Fprintf(out, "   next run books %s, sign-in opens %s\n",
		target.Format("Mon Jan 2"), gate.Format(time.Kitchen))
	return nil
}

func findChrome(configured string) (string, error) {
	if configured != "" {
		path, err := lookPath(configured)
		if err != nil {
			return "", errors.Wrapf(err, "configured browser %q", configured)
		}
		return path, nil
	}
	for _, name := range chromeNames {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.Newf("no Chrome or Chromium executable on PATH (set %s_CHROME_PATH)", constants.EnvPrefix)
}

func checkLock(path string) error {
	if path == "" {
		var err error
		if path, err = lock.DefaultPath(); err != nil {
			return err
		}
	}
	holder, err := lock.Read(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "lockfile %s is unreadable and will be replaced", path)
	}
	return errors.Newf("lockfile %s was left by pid %d at %s; it is replaced automatically if that process is gone",
		path, holder.PID, holder.StartedAt.Format(time.RFC3339))
}
