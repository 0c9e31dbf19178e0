package cli

import (
	"context"
	"io"
	"os"

	"github.com/julianstephens/courtbook/internal/booker"
	"github.com/julianstephens/courtbook/internal/browser"
	"github.com/julianstephens/courtbook/internal/clock"
	"github.com/julianstephens/courtbook/internal/config"
	"github.com/julianstephens/courtbook/internal/logger"
	"github.com/julianstephens/courtbook/internal/lock"
	"github.com/julianstephens/courtbook/internal/tui"
)

// KeyStore is the OS keyring as the commands use it.
type KeyStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	IsAvailable() bool
}

// BrowserFactory starts a browser for one run.
type BrowserFactory func(ctx context.Context, opts browser.Options) (browser.Browser, error)

type Context struct {
	Ctx      context.Context
	Settings config.Settings
	Keyring  KeyStore
	// EnvFile is the optional .env file secrets are also read from.
	EnvFile       string
	LogDir        string
	LockPath      string
	ScreenshotDir string
	SkipGate      bool
	Countdown     bool
	NewBrowser    BrowserFactory
	Clock         clock.Clock
	Out           io.Writer
}

// NewChrome is the production BrowserFactory.
func NewChrome(ctx context.Context, opts browser.Options) (browser.Browser, error) {
	c, err := browser.NewChrome(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Context) Context() context.Context {
	if c.Ctx != nil {
		return c.Ctx
	}
	return context.Background()
}

// Stdout is where command output goes.
func (c *Context) Stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) clock() clock.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return clock.NewRealClock()
}

// LoadSecrets reads secrets from the env file, the environment and the
// keyring, in that order of precedence.
func (c *Context) LoadSecrets() (config.Secrets, error) {
	var store config.SecretStore
	if c.Keyring != nil {
		store = c.Keyring
	}
	return config.LoadSecrets(store, c.EnvFile)
}

// BrowserOptions maps the settings onto browser options.
func (c *Context) BrowserOptions() browser.Options {
	opts := browser.DefaultOptions()
	opts.Headless = c.Settings.Headless
	opts.Width = c.Settings.WindowWidth
	opts.Height = c.Settings.WindowHeight
	opts.Timeout = c.Settings.Timeout
	opts.ExecPath = c.Settings.ChromePath
	return opts
}

// BookerConfig assembles the booker's explicit configuration.
func (c *Context) BookerConfig(secrets config.Secrets) booker.Config {
	return booker.Config{
		Settings:      c.Settings,
		Secrets:       secrets,
		SkipGate:      c.SkipGate,
		ScreenshotDir: c.ScreenshotDir,
	}
}

// NewBooker builds a Booker over br honoring the clock and countdown flags.
func (c *Context) NewBooker(br browser.Browser, secrets config.Secrets) (*booker.Booker, error) {
	opts := []booker.Option{booker.WithClock(c.clock())}
	if c.Countdown && tui.IsTerminal() {
		opts = append(opts, booker.WithWaiter(tui.Countdown))
	}
	return booker.New(br, c.BookerConfig(secrets), opts...)
}

// Session holds everything a browser-driving command must release.
type Session struct {
	Booker  *booker.Booker
	browser browser.Browser
	lock    *lock.Lock
}

// Close shuts the browser down and releases the run lock.
func (s *Session) Close() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			logger.Warn("closing browser", "err", err)
		}
	}
	if err := s.lock.Release(); err != nil {
		logger.Warn("releasing run lock", "err", err)
	}
}

// StartSession validates secrets, takes the run lock and starts a browser.
func (c *Context) StartSession() (*Session, error) {
	secrets, err := c.LoadSecrets()
	if err != nil {
		return nil, err
	}
	if err := secrets.Validate(); err != nil {
		return nil, err
	}
	if err := c.Settings.Validate(); err != nil {
		return nil, err
	}

	lockPath := c.LockPath
	if lockPath == "" {
		if lockPath, err = lock.DefaultPath(); err != nil {
			return nil, err
		}
	}
	lk, err := lock.Acquire(lockPath)
	if err != nil {
		return nil, err
	}
	s := &Session{lock: lk}

	factory := c.NewBrowser
	if factory == nil {
		factory = NewChrome
	}
	br, err := factory(c.Context(), c.BrowserOptions())
	if err != nil {
		s.Close()
		return nil, err
	}
	s.browser = br

	b, err := c.NewBooker(br, secrets)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Booker = b
	return s, nil
}
