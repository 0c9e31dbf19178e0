// Package lock keeps two booking runs from driving the site at once.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/courtbook/internal/constants"
	"github.com/julianstephens/courtbook/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
	nowFunc           = time.Now
)

// ErrLocked is returned by Acquire while another live run holds the lock.
var ErrLocked = errors.New("another booking run is in progress")

// Holder is the content of a lockfile: pid|started-at.
type Holder struct {
	PID       int
	StartedAt time.Time
}

func (h Holder) String() string {
	return fmt.Sprintf("%d|%s", h.PID, h.StartedAt.Format(time.RFC3339))
}

// Lock is a held run lock.
type Lock struct {
	path string
}

// DefaultPath returns <user config dir>/courtbook/courtbook.lock.
func DefaultPath() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user config dir")
	}
	return filepath.Join(configDir, constants.AppName, constants.LockfileName), nil
}

// Acquire takes the lock at path. A lockfile left by a process that is no
// longer running is replaced.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create lock directory")
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			holder := Holder{PID: os.Getpid(), StartedAt: nowFunc()}
			_, werr := f.WriteString(holder.String())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, errors.Wrap(errors.CombineErrors(werr, cerr), "write lockfile")
			}
			logger.Debug("acquired run lock", "path", path)
			return &Lock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, errors.Wrap(err, "create lockfile")
		}

		holder, err := Read(path)
		if err == nil && isLive(holder) {
			return nil, errors.Wrapf(ErrLocked, "pid %d since %s", holder.PID, holder.StartedAt.Format(time.Kitchen))
		}
		logger.Warn("removing stale run lock", "path", path, "err", err)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "remove stale lockfile")
		}
	}
	return nil, errors.Wrapf(ErrLocked, "lockfile %s keeps reappearing", path)
}

// Release removes the lockfile. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove lockfile")
	}
	return nil
}

// Read parses the lockfile at path.
func Read(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	started, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return Holder{}, errors.New("invalid start time in lockfile")
	}
	return Holder{PID: pid, StartedAt: started}, nil
}

// isLive reports whether holder names a running courtbook process, or this
// one.
func isLive(holder Holder) bool {
	if holder.PID == os.Getpid() {
		return true
	}
	process, err := findProcessFunc(holder.PID)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
