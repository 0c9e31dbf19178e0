// Package logger holds the process-wide structured logger. Every booking
// attempt appends to a rotating file so unattended runs can be audited.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/courtbook/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	file *lumberjack.Logger
)

// Config holds logger configuration
type Config struct {
	Debug bool
	// LogDir overrides <ConfigDir>/logs when set.
	LogDir    string
	ConfigDir string
	// RunID tags every line written during one booking attempt.
	RunID string
}

// Dir returns the directory log files are written to.
func (c Config) Dir() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	return filepath.Join(c.ConfigDir, constants.LogDirName)
}

// Path returns the active log file.
func (c Config) Path() string {
	return filepath.Join(c.Dir(), constants.AppName+".log")
}

// Init replaces the global logger. A previous file writer is closed.
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.Dir(), 0755); err != nil {
		return errors.Wrapf(err, "create log directory %s", cfg.Dir())
	}
	Close()

	file = &lumberjack.Logger{
		Filename:   cfg.Path(),
		MaxSize:    5, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	// info stays in the file even without --debug; stderr only gets it with --debug
	var w io.Writer = file
	level := log.InfoLevel
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, file)
		level = log.DebugLevel
	}

	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	if cfg.RunID != "" {
		l = l.With("run", cfg.RunID)
	}
	Logger = l
	return nil
}

// Close flushes and closes the log file. The global logger is dropped.
func Close() {
	if file != nil {
		_ = file.Close()
		file = nil
	}
	Logger = nil
}

// With returns a child of the global logger carrying keyvals, or nil when
// the logger has not been initialized.
func With(keyvals ...interface{}) *log.Logger {
	if Logger == nil {
		return nil
	}
	return Logger.With(keyvals...)
}

func emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Helper()
	Logger.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...interface{}) { emit(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...interface{}) { emit(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }
