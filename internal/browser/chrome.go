package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/cockroachdb/errors"

	"github.com/julianstephens/courtbook/internal/constants"
	"github.com/julianstephens/courtbook/internal/logger"
)

// selectByLabelJS runs with the <select> element as this.
const selectByLabelJS = `function(label) {
	for (const opt of this.options) {
		if (opt.text.trim() === label) {
			this.value = opt.value;
			this.dispatchEvent(new Event('input', { bubbles: true }));
			this.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		}
	}
	return false;
}`

// Options configures the Chrome process.
type Options struct {
	Headless bool
	Width    int
	Height   int
	// Timeout bounds every wait and interaction.
	Timeout time.Duration
	// ExecPath overrides chromedp's executable lookup.
	ExecPath string
}

// DefaultOptions mirrors the settings the booking flow was tuned with.
func DefaultOptions() Options {
	return Options{
		Headless: true,
		Width:    constants.WindowWidth,
		Height:   constants.WindowHeight,
		Timeout:  constants.DefaultTimeout,
	}
}

// chromeFlags returns the command-line switches Chrome is started with.
// Site isolation stays off so a cross-origin iframe (the checkout form) is
// rendered in the page's own process and its document is reachable through
// the iframe node.
func chromeFlags(opts Options) map[string]interface{} {
	return map[string]interface{}{
		"headless":                      opts.Headless,
		"no-sandbox":                    true,
		"disable-gpu":                   true,
		"disable-dev-shm-usage":         true,
		"disable-features":              "site-per-process,Translate,BlinkGenPropertyTrees",
		"disable-site-isolation-trials": true,
	}
}

// Chrome is a Browser backed by a chromedp-controlled Chrome process.
//
// EnterFrame scopes queries with FromNode on the iframe element. That only
// works while the frame lives in the page's renderer, which chromeFlags
// guarantees; out-of-process frames would need their own target.
type Chrome struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	frame   *cdp.Node
}

// NewChrome starts Chrome and opens a blank tab.
func NewChrome(parent context.Context, opts Options) (*Chrome, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	for name, value := range chromeFlags(opts) {
		allocOpts = append(allocOpts, chromedp.Flag(name, value))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, tabCancel := chromedp.NewContext(allocCtx, chromedp.WithErrorf(func(format string, args ...interface{}) {
		logger.Warn("chromedp", "msg", fmt.Sprintf(format, args...))
	}))
	cancel := func() {
		tabCancel()
		allocCancel()
	}

	// An empty run launches the browser, so a missing executable fails here
	// rather than at the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, errors.Wrap(err, "start chrome")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultTimeout
	}
	return &Chrome{ctx: ctx, cancel: cancel, timeout: timeout}, nil
}

func (c *Chrome) query() []chromedp.QueryOption {
	if c.frame != nil {
		return []chromedp.QueryOption{chromedp.ByQuery, chromedp.FromNode(c.frame)}
	}
	return []chromedp.QueryOption{chromedp.BySearch}
}

// run executes actions on the tab, bounded by the timeout and by ctx.
func (c *Chrome) run(ctx context.Context, what string, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return errors.Mark(errors.Wrapf(err, "%s after %s", what, c.timeout), ErrTimeout)
	}
	return errors.Wrap(err, what)
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	logger.Debug("navigate", "url", url)
	return c.run(ctx, "navigate", chromedp.Navigate(url))
}

func (c *Chrome) WaitPresent(ctx context.Context, sel string) error {
	return c.run(ctx, "wait for "+sel, chromedp.WaitReady(sel, c.query()...))
}

func (c *Chrome) WaitClickable(ctx context.Context, sel string) error {
	return c.run(ctx, "wait for clickable "+sel,
		chromedp.WaitVisible(sel, c.query()...),
		chromedp.WaitEnabled(sel, c.query()...),
	)
}

func (c *Chrome) Click(ctx context.Context, sel string) error {
	return c.run(ctx, "click "+sel, chromedp.Click(sel, c.query()...))
}

func (c *Chrome) SendKeys(ctx context.Context, sel, text string) error {
	return c.run(ctx, "type into "+sel, chromedp.SendKeys(sel, text, c.query()...))
}

func (c *Chrome) SelectByLabel(ctx context.Context, sel, label string) error {
	var nodes []*cdp.Node
	return c.run(ctx, "select "+label+" in "+sel,
		chromedp.Nodes(sel, &nodes, c.query()...),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var ok bool
			if err := chromedp.CallFunctionOnNode(ctx, nodes[0], selectByLabelJS, &ok, label); err != nil {
				return err
			}
			if !ok {
				return errors.Newf("no option labelled %q", label)
			}
			return nil
		}),
	)
}

func (c *Chrome) HTML(ctx context.Context) (string, error) {
	opts := []chromedp.QueryOption{chromedp.ByQuery}
	if c.frame != nil {
		opts = append(opts, chromedp.FromNode(c.frame))
	}
	var html string
	if err := c.run(ctx, "read page", chromedp.OuterHTML("html", &html, opts...)); err != nil {
		return "", err
	}
	return html, nil
}

func (c *Chrome) EnterFrame(ctx context.Context, sel string) error {
	var nodes []*cdp.Node
	if err := c.run(ctx, "find frame "+sel, chromedp.Nodes(sel, &nodes, c.query()...)); err != nil {
		return err
	}
	c.frame = nodes[0]
	return nil
}

func (c *Chrome) ExitFrame() {
	c.frame = nil
}

func (c *Chrome) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := c.run(ctx, "capture screenshot", chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close shuts the tab and the Chrome process down.
func (c *Chrome) Close() error {
	c.cancel()
	return nil
}
