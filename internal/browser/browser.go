// Package browser is the narrow set of page operations the booking flow
// needs. Selectors are XPath or CSS on the top-level document; once a frame
// is entered they must be CSS.
package browser

//go:generate mockgen -source=browser.go -destination=mocks/mock_browser.go -package=mocks

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrTimeout is returned when a wait condition is not met within the
// configured timeout.
var ErrTimeout = errors.New("timed out waiting for page")

// Browser drives one live page.
type Browser interface {
	// Navigate loads url in the current tab.
	Navigate(ctx context.Context, url string) error
	// WaitPresent blocks until sel matches an element in the DOM.
	WaitPresent(ctx context.Context, sel string) error
	// WaitClickable blocks until sel matches a visible, enabled element.
	WaitClickable(ctx context.Context, sel string) error
	Click(ctx context.Context, sel string) error
	SendKeys(ctx context.Context, sel, text string) error
	// SelectByLabel picks the option of the native <select> sel whose visible
	// text equals label.
	SelectByLabel(ctx context.Context, sel, label string) error
	// HTML returns the outer HTML of the whole document (or of the current
	// frame's document).
	HTML(ctx context.Context) (string, error)
	// EnterFrame scopes later queries to the document of the iframe sel.
	EnterFrame(ctx context.Context, sel string) error
	// ExitFrame returns to the top-level document.
	ExitFrame()
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}
