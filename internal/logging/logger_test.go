package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("no H1 found", "post", "a.md")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "no H1 found") || !strings.Contains(out, "a.md") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestFileAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	for i := 0; i < 2; i++ {
		l, err := New(Options{Output: &bytes.Buffer{}, FileDir: dir})
		if err != nil {
			t.Fatal(err)
		}
		l.Info("updated", "post", "p.md")
		if err := l.Close(); err != nil {
			t.Fatal(err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "blogtools.log"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "updated"); got != 2 {
		t.Fatalf("expected 2 appended lines, got %d in %q", got, data)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}
