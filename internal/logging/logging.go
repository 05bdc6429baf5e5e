// Package logging sets up console logging and per-session JSONL log files.
package logging

import (
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Options holds configuration for a logging session.
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // text, json, logfmt
	Timestamps bool
	Caller     bool
	Prefix     string
	// Output receives console logs. Defaults to os.Stderr.
	Output io.Writer
	// FileDir enables the JSONL session file when non-empty.
	FileDir string
	// WorkDir names the per-project subdirectory of FileDir.
	WorkDir string
}

// Session fans log records out to the console and, when enabled, to a
// JSONL file for the current process run.
type Session struct {
	ID      string
	Dir     string // empty when no file is written
	LogPath string // empty when no file is written
	console *log.Logger
	file    *os.File
	fileLog *log.Logger
}

// NewSession creates the console logger and, if opts.FileDir is set, a
// per-session log file under a project-specific directory.
func NewSession(opts Options) (*Session, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "tasktrack"
	}

	s := &Session{
		ID: newSessionID(time.Now()),
		console: log.NewWithOptions(out, log.Options{
			Level:           ParseLevel(opts.Level),
			Formatter:       ParseFormatter(opts.Format),
			ReportTimestamp: opts.Timestamps,
			ReportCaller:    opts.Caller,
			Prefix:          prefix,
		}),
	}

	if opts.FileDir == "" {
		return s, nil
	}

	dir, err := FindLogDir(opts.FileDir, opts.WorkDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, s.ID+".jsonl")
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	s.Dir = dir
	s.LogPath = path
	s.file = file
	s.fileLog = log.NewWithOptions(file, log.Options{
		Level:           log.DebugLevel,
		Formatter:       log.JSONFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
	s.fileLog.Info("session started", "session", s.ID)
	return s, nil
}

// Discard returns a session that drops everything. Useful in tests.
func Discard() *Session {
	return &Session{
		ID:      "discard",
		console: log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel}),
	}
}

// Logger returns the console logger.
func (s *Session) Logger() *log.Logger {
	return s.console
}

// Debug logs at debug level.
func (s *Session) Debug(msg string, keyvals ...interface{}) {
	s.console.Debug(msg, keyvals...)
	if s.fileLog != nil {
		s.fileLog.Debug(msg, keyvals...)
	}
}

// Info logs at info level.
func (s *Session) Info(msg string, keyvals ...interface{}) {
	s.console.Info(msg, keyvals...)
	if s.fileLog != nil {
		s.fileLog.Info(msg, keyvals...)
	}
}

// Warn logs at warn level.
func (s *Session) Warn(msg string, keyvals ...interface{}) {
	s.console.Warn(msg, keyvals...)
	if s.fileLog != nil {
		s.fileLog.Warn(msg, keyvals...)
	}
}

// Error logs at error level.
func (s *Session) Error(msg string, keyvals ...interface{}) {
	s.console.Error(msg, keyvals...)
	if s.fileLog != nil {
		s.fileLog.Error(msg, keyvals...)
	}
}

// Close ends the session and closes the log file.
func (s *Session) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	s.fileLog.Info("session ended", "session", s.ID)
	err := s.file.Close()
	s.file = nil
	s.fileLog = nil
	return err
}

// ParseLevel parses a string log level. Unknown values map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown values map to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// newSessionID returns "<utc timestamp>-<8 hex chars>", which sorts by
// start time.
func newSessionID(now time.Time) string {
	return fmt.Sprintf("%s-%s", now.UTC().Format("20060102-150405"), uuid.NewString()[:8])
}

// FindLogDir returns the session log directory for a work directory.
func FindLogDir(baseDir, workDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("log base dir is empty")
	}
	if workDir == "" {
		workDir = "."
	}
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(workDir, baseDir)
	}
	return filepath.Join(filepath.Clean(baseDir), projectSlug(workDir)), nil
}

func projectSlug(root string) string {
	return fmt.Sprintf("%s-%s", slugify(filepath.Base(root)), hashPath(root))
}

func slugify(input string) string {
	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" || slug == "." {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

// FindLatestLog returns the newest session log in logDir, or "" if there
// is none.
func FindLatestLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Names start with the UTC start time, so they break mtime ties.
		if latest == "" || info.ModTime().After(latestTime) ||
			(info.ModTime().Equal(latestTime) && entry.Name() > filepath.Base(latest)) {
			latestTime = info.ModTime()
			latest = filepath.Join(logDir, entry.Name())
		}
	}
	return latest, nil
}

// TailLog writes the last n lines of the file at path to w. n <= 0 writes
// the whole file.
func TailLog(w io.Writer, path string, n int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n <= 0 {
		_, err = io.Copy(w, file)
		return err
	}

	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(ring) == n {
			ring = ring[1:]
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	for _, line := range ring {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
