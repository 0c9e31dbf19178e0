// Package booker drives the reservation site through a browser.Browser: it
// signs in at the release time, opens the target date, books the best slot
// and pays for it.
package booker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/julianstephens/courtbook/internal/browser"
	"github.com/julianstephens/courtbook/internal/clock"
	"github.com/julianstephens/courtbook/internal/config"
	"github.com/julianstephens/courtbook/internal/constants"
	"github.com/julianstephens/courtbook/internal/logger"
	"github.com/julianstephens/courtbook/internal/schedule"
	"github.com/julianstephens/courtbook/internal/utils"
)

// After the day is picked the old schedule can stay on screen for a moment.
// The grid is re-read every gridPoll until it changes or gridSettle passes.
const (
	gridPoll   = 250 * time.Millisecond
	gridSettle = 3 * time.Second
)

// Config is everything one run needs. It is built by the caller and never
// read from global state.
type Config struct {
	Settings config.Settings
	Secrets  config.Secrets
	// SkipGate clicks sign-in immediately instead of waiting for
	// Settings.SignInAt.
	SkipGate bool
	// ScreenshotDir, when set, receives a PNG of the page if the run fails.
	ScreenshotDir string
}

// Waiter blocks for d, the time left until the sign-in gate opens at at.
type Waiter func(d time.Duration, at time.Time) error

// Result describes a submitted booking.
type Result struct {
	Date time.Time
	Slot schedule.Slot
}

// Option configures a Booker.
type Option func(*Booker)

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return func(b *Booker) { b.clock = c }
}

// WithWaiter replaces the plain sleep used at the sign-in gate.
func WithWaiter(w Waiter) Option {
	return func(b *Booker) { b.wait = w }
}

// Booker runs the booking flow against one browser.
type Booker struct {
	cfg     Config
	browser browser.Browser
	clock   clock.Clock
	wait    Waiter
	loc     *time.Location
}

// New validates cfg and returns a Booker driving br.
func New(br browser.Browser, cfg Config, opts ...Option) (*Booker, error) {
	if err := cfg.Settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}
	loc, err := cfg.Settings.Location()
	if err != nil {
		return nil, err
	}

	b := &Booker{
		cfg:     cfg,
		browser: br,
		clock:   clock.NewRealClock(),
		loc:     loc,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.wait == nil {
		b.wait = func(d time.Duration, _ time.Time) error {
			b.clock.Sleep(d)
			return nil
		}
	}
	return b, nil
}

// Run books and pays for the best available slot on the target date.
func (b *Booker) Run(ctx context.Context) (res Result, err error) {
	defer func() {
		if err != nil {
			b.screenshot(ctx)
		}
	}()

	s := b.cfg.Settings
	if err := b.cfg.Secrets.Validate(); err != nil {
		return Result{}, err
	}

	today, date := b.dates()
	logger.Info("booking", "date", date.Format(constants.DateFormat), "hours", s.AcceptableHours, "strategy", s.Strategy)

	if err := b.signIn(ctx, !b.cfg.SkipGate); err != nil {
		return Result{}, err
	}
	previous, err := b.selectDate(ctx, today, date)
	if err != nil {
		return Result{}, err
	}
	slots, err := b.available(ctx, previous)
	if err != nil {
		return Result{}, err
	}
	slot, err := schedule.Pick(slots, s.AcceptableHours, s.Strategy)
	if err != nil {
		return Result{}, errors.Wrapf(err, "no court on %s at %v", date.Format("Mon Jan 2"), s.AcceptableHours)
	}
	logger.Info("chose slot", "slot", slot.String(), "candidates", len(slots))

	if err := b.reserve(ctx, slot); err != nil {
		return Result{}, err
	}
	if err := b.pay(ctx); err != nil {
		return Result{}, err
	}
	logger.Info("payment submitted", "slot", slot.String())
	return Result{Date: date, Slot: slot}, nil
}

// Scan signs in without waiting for the gate, opens the target date and
// returns its available slots ordered by the configured strategy. It never
// reserves anything.
func (b *Booker) Scan(ctx context.Context) (time.Time, []schedule.Slot, error) {
	if err := b.cfg.Secrets.Validate(); err != nil {
		return time.Time{}, nil, err
	}
	today, date := b.dates()
	if err := b.signIn(ctx, false); err != nil {
		return date, nil, err
	}
	previous, err := b.selectDate(ctx, today, date)
	if err != nil {
		return date, nil, err
	}
	slots, err := b.available(ctx, previous)
	if err != nil {
		return date, nil, err
	}
	return date, b.cfg.Settings.Strategy.Order(slots, b.cfg.Settings.AcceptableHours), nil
}

// TargetDate returns the date a run started now would book.
func (b *Booker) TargetDate() time.Time {
	_, date := b.dates()
	return date
}

func (b *Booker) dates() (today, target time.Time) {
	today = b.clock.Now().In(b.loc)
	return today, utils.TargetDate(today, b.cfg.Settings.DaysInAdvance)
}

func (b *Booker) signIn(ctx context.Context, gate bool) error {
	logger.Debug("step", "step", "sign-in")
	if err := b.browser.Navigate(ctx, b.cfg.Secrets.URL); err != nil {
		return errors.Wrap(err, "open reservation site")
	}
	if err := b.clickWhenReady(ctx, signInLinkXPath); err != nil {
		return errors.Wrap(err, "open sign-in form")
	}
	if err := b.browser.WaitPresent(ctx, emailInputXPath); err != nil {
		return errors.Wrap(err, "sign-in form")
	}
	if err := b.browser.SendKeys(ctx, emailInputXPath, b.cfg.Secrets.Email); err != nil {
		return errors.Wrap(err, "enter email")
	}
	if err := b.browser.SendKeys(ctx, passwordInputXPath, b.cfg.Secrets.Password); err != nil {
		return errors.Wrap(err, "enter password")
	}
	if gate {
		if err := b.gate(); err != nil {
			return err
		}
	}
	if err := b.browser.Click(ctx, signInButtonXPath); err != nil {
		return errors.Wrap(err, "submit sign-in")
	}
	return nil
}

// gate holds the sign-in submit until Settings.SignInAt local time. Once the
// wait has started it runs to completion.
func (b *Booker) gate() error {
	now := b.clock.Now().In(b.loc)
	at, err := utils.TimeOnDay(now, b.cfg.Settings.SignInAt)
	if err != nil {
		return err
	}
	d, err := utils.UntilTime(now, b.cfg.Settings.SignInAt)
	if err != nil {
		return err
	}
	if d <= 0 {
		logger.Debug("sign-in gate already open", "at", at.Format(time.Kitchen))
		return nil
	}
	logger.Info("sleeping until sign-in", "seconds", fmt.Sprintf("%.1f", d.Seconds()), "at", at.Format(time.Kitchen))
	return b.wait(d, at)
}

// selectDate opens date in the calendar. It returns the fingerprint of the
// schedule shown just before the day was clicked.
func (b *Booker) selectDate(ctx context.Context, today, date time.Time) (string, error) {
	logger.Debug("step", "step", "select-date", "date", date.Format(constants.DateFormat))
	months := utils.MonthsBetween(today, date)
	if months < 0 {
		return "", errors.Newf("target date %s is before today", date.Format(constants.DateFormat))
	}
	if err := b.clickWhenReady(ctx, calendarInputXPath); err != nil {
		return "", errors.Wrap(err, "open calendar")
	}
	for i := 0; i < months; i++ {
		if err := b.clickWhenReady(ctx, nextMonthXPath); err != nil {
			return "", errors.Wrap(err, "switch calendar to next month")
		}
	}
	_, previous, err := b.snapshot(ctx)
	if err != nil {
		return "", errors.Wrap(err, "read schedule before picking day")
	}
	if err := b.clickWhenReady(ctx, dayXPath(date.Day())); err != nil {
		return "", errors.Wrapf(err, "pick day %d", date.Day())
	}
	return previous, nil
}

func (b *Booker) snapshot(ctx context.Context) (*schedule.Grid, string, error) {
	html, err := b.browser.HTML(ctx)
	if err != nil {
		return nil, "", err
	}
	grid, err := schedule.ParseHTML(html, schedule.WithResourceFilter(b.cfg.Settings.ResourceFilter))
	if err != nil {
		return nil, "", err
	}
	return grid, grid.Fingerprint(), nil
}

// available waits for the schedule of the picked day and scans it. A grid
// still matching previous is re-read until it changes or gridSettle passes;
// two days with identical availability look the same.
func (b *Booker) available(ctx context.Context, previous string) ([]schedule.Slot, error) {
	logger.Debug("step", "step", "scan")
	if err := b.browser.WaitPresent(ctx, schedule.RowsXPath); err != nil {
		return nil, errors.Wrap(err, "schedule grid")
	}
	deadline := b.clock.Now().Add(gridSettle)
	var grid *schedule.Grid
	for {
		g, fp, err := b.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		grid = g
		if previous == "" || fp != previous {
			break
		}
		if !b.clock.Now().Before(deadline) {
			logger.Warn("schedule unchanged after picking day", "waited", gridSettle)
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.clock.Sleep(gridPoll)
	}
	slots, err := grid.FindAvailable(b.cfg.Settings.AcceptableHours)
	if err != nil {
		return nil, err
	}
	logger.Debug("scanned grid", "courts", len(grid.Courts()), "available", len(slots))
	return slots, nil
}

func (b *Booker) reserve(ctx context.Context, slot schedule.Slot) error {
	logger.Debug("step", "step", "reserve", "slot", slot.String())
	if err := b.browser.Click(ctx, slot.Locator()); err != nil {
		return errors.Wrapf(err, "select %s", slot)
	}
	if err := b.browser.WaitPresent(ctx, eventNameInputXPath); err != nil {
		return errors.Wrap(err, "reservation form")
	}
	if err := b.browser.SendKeys(ctx, eventNameInputXPath, b.cfg.Secrets.EventName); err != nil {
		return errors.Wrap(err, "enter event name")
	}
	if err := b.clickWhenReady(ctx, confirmButtonXPath); err != nil {
		return errors.Wrap(err, "confirm reservation")
	}
	if err := b.clickWhenReady(ctx, reserveButtonXPath); err != nil {
		return errors.Wrap(err, "reserve")
	}
	return nil
}

func (b *Booker) pay(ctx context.Context) error {
	logger.Debug("step", "step", "pay")
	sec := b.cfg.Secrets
	if err := b.browser.WaitPresent(ctx, paymentFrameXPath); err != nil {
		return errors.Wrap(err, "checkout")
	}
	if err := b.browser.EnterFrame(ctx, paymentFrameXPath); err != nil {
		return errors.Wrap(err, "checkout")
	}
	if err := b.fillCard(ctx, sec); err != nil {
		b.browser.ExitFrame()
		return err
	}
	b.browser.ExitFrame()

	if err := b.browser.Click(ctx, billingDropdownXPath); err != nil {
		return errors.Wrap(err, "open billing addresses")
	}
	if err := b.clickWhenReady(ctx, billingOption(sec.BillingAddress)); err != nil {
		return errors.Wrapf(err, "pick billing address %q", sec.BillingAddress)
	}
	if err := b.browser.Click(ctx, payButtonXPath); err != nil {
		return errors.Wrap(err, "pay")
	}
	return nil
}

func (b *Booker) fillCard(ctx context.Context, sec config.Secrets) error {
	if err := b.browser.WaitPresent(ctx, cardHolderCSS); err != nil {
		return errors.Wrap(err, "card form")
	}
	fields := []struct {
		sel, value, name string
	}{
		{cardHolderCSS, sec.CardHolder, "card holder"},
		{cardNumberCSS, sec.CardNumber, "card number"},
		{cvcCSS, sec.CVC, "cvc"},
	}
	for _, f := range fields {
		if err := b.browser.SendKeys(ctx, f.sel, f.value); err != nil {
			return errors.Wrapf(err, "enter %s", f.name)
		}
	}
	if err := b.browser.SelectByLabel(ctx, expirationMonthCSS, sec.ExpirationMonth); err != nil {
		return errors.Wrap(err, "expiration month")
	}
	if err := b.browser.SelectByLabel(ctx, expirationYearCSS, sec.ExpirationYear); err != nil {
		return errors.Wrap(err, "expiration year")
	}
	return nil
}

func (b *Booker) clickWhenReady(ctx context.Context, sel string) error {
	if err := b.browser.WaitClickable(ctx, sel); err != nil {
		return err
	}
	return b.browser.Click(ctx, sel)
}

// screenshot saves the current page for a failed run. Failures are logged
// and otherwise ignored.
func (b *Booker) screenshot(ctx context.Context) {
	if b.cfg.ScreenshotDir == "" {
		return
	}
	png, err := b.browser.Screenshot(context.WithoutCancel(ctx))
	if err != nil {
		logger.Warn("screenshot failed", "err", err)
		return
	}
	if err := os.MkdirAll(b.cfg.ScreenshotDir, 0o755); err != nil {
		logger.Warn("screenshot failed", "err", err)
		return
	}
	name := fmt.Sprintf("courtbook-%s.png", b.clock.Now().Format("20060102-150405"))
	path := filepath.Join(b.cfg.ScreenshotDir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		logger.Warn("screenshot failed", "err", err)
		return
	}
	logger.Info("saved screenshot", "path", path)
}
