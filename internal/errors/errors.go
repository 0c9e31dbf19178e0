// Package errors turns command failures into the process exit status and the
// one-line message printed on stderr.
package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	cr "github.com/cockroachdb/errors"

	"github.com/julianstephens/courtbook/internal/browser"
	"github.com/julianstephens/courtbook/internal/config"
	"github.com/julianstephens/courtbook/internal/lock"
	"github.com/julianstephens/courtbook/internal/logger"
	"github.com/julianstephens/courtbook/internal/schedule"
	"github.com/julianstephens/courtbook/internal/tui"
)

// Exit codes. Scripts wrapping cron runs branch on these.
const (
	ExitFailure        = 1
	ExitNoAvailability = 2
	ExitMissingSecrets = 3
	ExitLocked         = 4
	ExitTimeout        = 5
	ExitAborted        = 130
)

type outcome struct {
	mark error
	code int
	hint string
}

// First match wins.
var outcomes = []outcome{
	{mark: tui.ErrAborted, code: ExitAborted},
	{mark: config.ErrMissingSecrets, code: ExitMissingSecrets, hint: "run 'courtbook secrets set' or export the variables"},
	{mark: lock.ErrLocked, code: ExitLocked, hint: "wait for the other run or remove the stale lockfile"},
	{mark: schedule.ErrNoAvailability, code: ExitNoAvailability},
	{mark: schedule.ErrHourOutOfRange, code: ExitFailure, hint: "acceptable hours must start between 06:00 and 21:00"},
	{mark: browser.ErrTimeout, code: ExitTimeout, hint: "a screenshot of the page was saved when possible"},
}

func classify(err error) outcome {
	for _, o := range outcomes {
		if cr.Is(err, o.mark) {
			return o
		}
	}
	return outcome{code: ExitFailure}
}

// ExitCode maps err to the process exit status. A nil err is 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return classify(err).code
}

// Hint returns a remediation line for err, or "".
func Hint(err error) string {
	if err == nil {
		return ""
	}
	return classify(err).hint
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// StackLines returns at most maxLines lines of the verbose rendering of err.
func StackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// Report logs err and writes the user-facing message to w. It returns the
// exit code for err.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	code := ExitCode(err)
	logger.Error("command failed", "error", err, "exit", code)
	logger.Debug("failure detail", "stack", strings.Join(StackLines(err, 20), "\n"))

	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
	return code
}

// Fatal reports err on stderr and exits with its code. The log file is
// closed first.
func Fatal(err error) {
	if err == nil {
		return
	}
	code := Report(os.Stderr, err)
	logger.Close()
	os.Exit(code)
}
