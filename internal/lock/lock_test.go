package lock

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/courtbook/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func withProcesses(t *testing.T, find func(pid int) (ps.Process, error)) {
	t.Helper()
	old := findProcessFunc
	findProcessFunc = find
	t.Cleanup(func() { findProcessFunc = old })
}

func lockPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), constants.AppName, constants.LockfileName)
}

func TestDefaultPath(t *testing.T) {
	old := userConfigDirFunc
	defer func() { userConfigDirFunc = old }()
	userConfigDirFunc = func() (string, error) { return "/home/pat/.config", nil }

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if want := filepath.Join("/home/pat/.config", "courtbook", "courtbook.lock"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestAcquireAndRelease(t *testing.T) {
	oldNow := nowFunc
	defer func() { nowFunc = oldNow }()
	nowFunc = func() time.Time { return time.Date(2026, 3, 10, 6, 55, 0, 0, time.UTC) }

	path := lockPath(t)
	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	holder, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if holder.PID != os.Getpid() {
		t.Errorf("lock pid = %d, want %d", holder.PID, os.Getpid())
	}
	if !holder.StartedAt.Equal(nowFunc()) {
		t.Errorf("lock start = %v, want %v", holder.StartedAt, nowFunc())
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("lockfile still exists after Release()")
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

func TestAcquireWhileHeld(t *testing.T) {
	withProcesses(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "courtbook"}, nil
	})

	path := lockPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("4242|2026-03-10T06:50:00Z"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Acquire(path)
	if err == nil {
		t.Fatal("Acquire() should fail while a live run holds the lock")
	}
	if !errors.Is(err, ErrLocked) {
		t.Errorf("Acquire() error = %v, want ErrLocked", err)
	}

	holder, err := Read(path)
	if err != nil || holder.PID != 4242 {
		t.Errorf("held lockfile was modified: %+v, %v", holder, err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		find    func(pid int) (ps.Process, error)
	}{
		{
			name:    "process gone",
			content: "4242|2026-03-09T06:50:00Z",
			find:    func(int) (ps.Process, error) { return nil, nil },
		},
		{
			name:    "pid reused by another program",
			content: "4242|2026-03-09T06:50:00Z",
			find: func(pid int) (ps.Process, error) {
				return &mockProcess{pid: pid, executable: "bash"}, nil
			},
		},
		{
			name:    "malformed",
			content: "garbage",
			find:    func(int) (ps.Process, error) { t.Fatal("malformed lock should not be looked up"); return nil, nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcesses(t, tt.find)
			path := lockPath(t)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			l, err := Acquire(path)
			if err != nil {
				t.Fatalf("Acquire() error = %v", err)
			}
			defer l.Release()

			holder, err := Read(path)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if holder.PID != os.Getpid() {
				t.Errorf("lock pid = %d, want %d", holder.PID, os.Getpid())
			}
		})
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "valid", content: "123|2026-03-10T07:00:00-05:00\n"},
		{name: "missing start", content: "123", wantErr: true},
		{name: "bad pid", content: "abc|2026-03-10T07:00:00Z", wantErr: true},
		{name: "zero pid", content: "0|2026-03-10T07:00:00Z", wantErr: true},
		{name: "bad time", content: "123|yesterday", wantErr: true},
		{name: "extra field", content: "123|2026-03-10T07:00:00Z|x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lock")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Read(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Read() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAcquireTwiceInProcess(t *testing.T) {
	withProcesses(t, func(int) (ps.Process, error) { return nil, nil })

	path := lockPath(t)
	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer l.Release()

	if _, err := Acquire(path); !errors.Is(err, ErrLocked) {
		t.Errorf("second Acquire() error = %v, want ErrLocked", err)
	}
}
