// Package config loads the run's settings and secrets from the environment,
// an optional .env file and the OS keyring.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/julianstephens/courtbook/internal/constants"
	"github.com/julianstephens/courtbook/internal/schedule"
	"github.com/julianstephens/courtbook/internal/utils"
)

// -----------------------------------------------------------------------------
// Every key is read as COURTBOOK_<NAME> first and <NAME> second, so
// ACCEPTABLE_HOURS=18,19 works as well as COURTBOOK_ACCEPTABLE_HOURS=18,19.
// -----------------------------------------------------------------------------

// Settings tunes one booking run. It carries no credentials.
type Settings struct {
	AcceptableHours []int             `envconfig:"ACCEPTABLE_HOURS" default:"18,19,20"`
	Timezone        string            `envconfig:"TIMEZONE" default:"America/Chicago"`
	DaysInAdvance   int               `envconfig:"DAYS_IN_ADVANCE" default:"6"`
	SignInAt        string            `envconfig:"SIGN_IN_AT" default:"07:00"`
	Timeout         time.Duration     `envconfig:"TIMEOUT" default:"60s"`
	ResourceFilter  string            `envconfig:"RESOURCE_FILTER" default:"Tennis Ct"`
	Strategy        schedule.Strategy `envconfig:"STRATEGY" default:"row-first"`
	Headless        bool              `envconfig:"HEADLESS" default:"true"`
	WindowWidth     int               `envconfig:"WINDOW_WIDTH" default:"1920"`
	WindowHeight    int               `envconfig:"WINDOW_HEIGHT" default:"1080"`
	ChromePath      string            `envconfig:"CHROME_PATH"`
}

// DefaultSettings returns the settings used when the environment is empty.
func DefaultSettings() Settings {
	hours, _ := ParseHours(constants.DefaultHours)
	return Settings{
		AcceptableHours: hours,
		Timezone:        constants.DefaultTimezone,
		DaysInAdvance:   constants.DaysInAdvance,
		SignInAt:        constants.DefaultSignIn,
		Timeout:         constants.DefaultTimeout,
		ResourceFilter:  constants.TennisCourt,
		Strategy:        schedule.RowFirst,
		Headless:        true,
		WindowWidth:     constants.WindowWidth,
		WindowHeight:    constants.WindowHeight,
	}
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. An empty path means ./.env, which may be
// absent; an explicit path must exist.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = constants.DefaultEnvFile
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "env file %s", path)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load env file %s", path)
	}
	return nil
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := envconfig.Process(constants.EnvPrefix, &s); err != nil {
		return Settings{}, errors.Wrap(err, "failed to process env config")
	}
	return s, nil
}

// Validate checks every field and reports the first problem.
func (s Settings) Validate() error {
	if err := schedule.ValidateHours(s.AcceptableHours, schedule.GridRange); err != nil {
		return errors.Wrap(err, "acceptable hours")
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return errors.Newf("unknown timezone %q", s.Timezone)
	}
	if !utils.ValidateTimeFormat(s.SignInAt) {
		return errors.Newf("sign-in time %q is not HH:MM", s.SignInAt)
	}
	if s.DaysInAdvance < 0 {
		return errors.Newf("days in advance must not be negative, got %d", s.DaysInAdvance)
	}
	if s.Timeout <= 0 {
		return errors.Newf("timeout must be positive, got %s", s.Timeout)
	}
	if _, err := schedule.ParseStrategy(string(s.Strategy)); err != nil {
		return err
	}
	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		return errors.Newf("window size %dx%d is invalid", s.WindowWidth, s.WindowHeight)
	}
	return nil
}

// Location returns the timezone the gate and target date are computed in.
func (s Settings) Location() (*time.Location, error) {
	return utils.LoadLocation(s.Timezone)
}

// ParseHours parses a comma-separated list of hours such as "18,19,20".
// Order is kept; range checks are left to Validate.
func ParseHours(s string) ([]int, error) {
	var hours []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Newf("hour %q is not a number", part)
		}
		hours = append(hours, h)
	}
	if len(hours) == 0 {
		return nil, errors.Newf("no hours in %q", s)
	}
	return hours, nil
}
