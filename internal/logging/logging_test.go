// Package logging provides tests for session logging and tail output.
package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// TestNewSession tests creating a logging session.
func TestNewSession(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		var buf bytes.Buffer
		s, err := NewSession(Options{Level: "info", Output: &buf})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer s.Close()

		if s.ID == "" {
			t.Error("expected ID to be set")
		}
		if s.LogPath != "" || s.Dir != "" {
			t.Errorf("expected no log file, got %q", s.LogPath)
		}

		s.Debug("hidden")
		s.Info("task created", "id", 1)
		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("debug message printed at info level: %q", out)
		}
		if !strings.Contains(out, "task created") || !strings.Contains(out, "id=1") {
			t.Errorf("expected info message with fields, got %q", out)
		}
		if !strings.Contains(out, "tasktrack") {
			t.Errorf("expected default prefix, got %q", out)
		}
	})

	t.Run("json console format", func(t *testing.T) {
		var buf bytes.Buffer
		s, err := NewSession(Options{Level: "debug", Format: "json", Output: &buf})
		if err != nil {
			t.Fatal(err)
		}
		s.Warn("invalid input", "field", "title")

		var rec map[string]interface{}
		if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
			t.Fatalf("console output is not JSON: %q (%v)", buf.String(), err)
		}
		if rec["msg"] != "invalid input" || rec["field"] != "title" {
			t.Errorf("unexpected record: %v", rec)
		}
	})

	t.Run("with session file", func(t *testing.T) {
		baseDir := t.TempDir()
		workDir := filepath.Join(t.TempDir(), "my project")
		if err := os.Mkdir(workDir, 0755); err != nil {
			t.Fatal(err)
		}

		s, err := NewSession(Options{Level: "error", Output: &bytes.Buffer{}, FileDir: baseDir, WorkDir: workDir})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(s.LogPath, baseDir) {
			t.Errorf("log path %q not under %q", s.LogPath, baseDir)
		}
		if !strings.Contains(s.Dir, "my_project-") {
			t.Errorf("log dir should contain project slug, got %q", s.Dir)
		}

		s.Debug("task toggled", "id", 3, "status", "completed")
		if err := s.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}

		content, err := os.ReadFile(s.LogPath)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected start, record and end lines, got %d: %q", len(lines), content)
		}
		var rec map[string]interface{}
		if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
			t.Fatalf("line is not JSON: %v", err)
		}
		if rec["msg"] != "task toggled" || rec["status"] != "completed" {
			t.Errorf("unexpected record: %v", rec)
		}
	})

	t.Run("empty work dir uses current directory", func(t *testing.T) {
		s, err := NewSession(Options{Output: &bytes.Buffer{}, FileDir: t.TempDir()})
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()
		if s.LogPath == "" {
			t.Error("expected log file")
		}
	})
}

func TestSessionClose(t *testing.T) {
	var nilSession *Session
	if err := nilSession.Close(); err != nil {
		t.Errorf("close nil session: %v", err)
	}
	if err := Discard().Close(); err != nil {
		t.Errorf("close discard session: %v", err)
	}

	s, err := NewSession(Options{Output: &bytes.Buffer{}, FileDir: t.TempDir(), WorkDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"info":    log.InfoLevel,
		"WARN":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"bogus":   log.InfoLevel,
		"":        log.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := map[string]log.Formatter{
		"json":   log.JSONFormatter,
		"logfmt": log.LogfmtFormatter,
		"text":   log.TextFormatter,
		"":       log.TextFormatter,
	}
	for in, want := range tests {
		if got := ParseFormatter(in); got != want {
			t.Errorf("ParseFormatter(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestNewSessionID(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	a := newSessionID(now)
	b := newSessionID(now)

	if !strings.HasPrefix(a, "20240615-103000-") {
		t.Errorf("unexpected prefix: %s", a)
	}
	if len(a) != len("20240615-103000-")+8 {
		t.Errorf("unexpected length: %s", a)
	}
	if a == b {
		t.Errorf("session IDs should differ: %s", a)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", "simple"},
		{"with spaces", "with_spaces"},
		{"a//b", "a_b"},
		{"__x__", "x"},
		{"", "project"},
		{"!!!", "project"},
		{".", "project"},
		{"v1.2-rc", "v1.2-rc"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Errorf("slugify(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashPath(t *testing.T) {
	a := hashPath("/some/path")
	if len(a) != 8 {
		t.Errorf("expected 8 hex chars, got %q", a)
	}
	if a != hashPath("/some/path") {
		t.Error("hash should be stable")
	}
	if a == hashPath("/other/path") {
		t.Error("different paths should hash differently")
	}
}

func TestFindLogDir(t *testing.T) {
	if _, err := FindLogDir("", "."); err == nil {
		t.Error("expected error for empty base dir")
	}

	workDir := t.TempDir()
	dir, err := FindLogDir("logs", workDir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(dir, filepath.Join(workDir, "logs")) {
		t.Errorf("relative base dir should resolve under work dir, got %q", dir)
	}
	if filepath.Base(dir) != projectSlug(workDir) {
		t.Errorf("expected project slug, got %q", filepath.Base(dir))
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		got, err := FindLatestLog(filepath.Join(t.TempDir(), "nope"))
		if err != nil || got != "" {
			t.Errorf("got %q, %v; want empty, nil", got, err)
		}
	})

	t.Run("picks newest jsonl", func(t *testing.T) {
		dir := t.TempDir()
		old := filepath.Join(dir, "20240101-000000-aaaaaaaa.jsonl")
		newer := filepath.Join(dir, "20240102-000000-bbbbbbbb.jsonl")
		other := filepath.Join(dir, "notes.txt")
		for _, p := range []string{old, newer, other} {
			if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		past := time.Now().Add(-time.Hour)
		if err := os.Chtimes(old, past, past); err != nil {
			t.Fatal(err)
		}

		got, err := FindLatestLog(dir)
		if err != nil {
			t.Fatal(err)
		}
		if got != newer {
			t.Errorf("got %q, want %q", got, newer)
		}
	})
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.jsonl")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		n    int
		want string
	}{
		{2, "three\nfour\n"},
		{10, "one\ntwo\nthree\nfour\n"},
		{0, "one\ntwo\nthree\nfour\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := TailLog(&buf, path, tt.n); err != nil {
			t.Fatalf("TailLog(%d): %v", tt.n, err)
		}
		if buf.String() != tt.want {
			t.Errorf("TailLog(%d): got %q, want %q", tt.n, buf.String(), tt.want)
		}
	}

	if err := TailLog(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing"), 1); err == nil {
		t.Error("expected error for missing file")
	}
}
