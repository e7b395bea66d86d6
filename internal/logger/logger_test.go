package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPrettyHandler_Structural(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelDebug}
	h := NewPrettyHandler(&buf, opts, false)
	l := slog.New(h)

	t.Run("WithAttrs", func(t *testing.T) {
		buf.Reset()
		l2 := l.With("scope", "dot")
		l2.Info("expanded", "entries", 3)

		output := buf.String()
		if !strings.Contains(output, "scope=dot") {
			t.Errorf("output missing persistent attr: %q", output)
		}
		if !strings.Contains(output, "entries=3") {
			t.Errorf("output missing record attr: %q", output)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("window").With("left", 100)
		l2.Info("moved", "top", 200)

		output := buf.String()
		if !strings.Contains(output, "window.left=100") {
			t.Errorf("output missing grouped persistent attr: %q", output)
		}
		if !strings.Contains(output, "window.top=200") {
			t.Errorf("output missing grouped record attr: %q", output)
		}
	})

	t.Run("SingleLine", func(t *testing.T) {
		buf.Reset()
		l.Warn("clipboard failed", "error", "busy")
		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected exactly one line, got %q", buf.String())
		}
	})
}

func TestPrettyHandler_FileTimestamp(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: LevelInfo}, false)
	h.timeFormat = fileTimeFormat

	r := slog.NewRecord(time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.UTC), LevelInfo, "starting", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "[2026-03-04 05:06:07.008] INFO") {
		t.Fatalf("unexpected line: %q", buf.String())
	}
}

func TestPrettyHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: LevelWarn}, false))
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
	l.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("error should pass warn level, got %q", buf.String())
	}
}

func TestInit_WritesToFile(t *testing.T) {
	oldTerminal := isTerminal
	isTerminal = func(int) bool { return false }
	defer func() {
		isTerminal = oldTerminal
		Init(LevelInfo, nil)
	}()

	var buf bytes.Buffer
	Init(LevelDebug, &buf)
	Debug("tick", "n", 7)
	if !strings.Contains(buf.String(), "tick n=7") {
		t.Fatalf("file sink missing record: %q", buf.String())
	}
}

func TestRotatingFile_RotatesPastLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quickpaths.log")

	rf, err := OpenRotatingFile(path, 16)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rf.Close()

	if _, err := rf.Write([]byte("0123456789abcdefXYZ\n")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := rf.Write([]byte("second\n")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	old, err := os.ReadFile(path + ".old")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(old) != "0123456789abcdefXYZ\n" {
		t.Fatalf("unexpected backup content: %q", old)
	}
	cur, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read current: %v", err)
	}
	if string(cur) != "second\n" {
		t.Fatalf("unexpected current content: %q", cur)
	}
}

func TestRotatingFile_KeepsSingleBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quickpaths.log")

	rf, err := OpenRotatingFile(path, 4)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rf.Close()

	for _, line := range []string{"aaaaaa\n", "bbbbbb\n", "cccccc\n"} {
		if _, err := rf.Write([]byte(line)); err != nil {
			t.Fatalf("write %q: %v", line, err)
		}
	}

	old, _ := os.ReadFile(path + ".old")
	if string(old) != "bbbbbb\n" {
		t.Fatalf("backup should hold the previous file only, got %q", old)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "quickpaths.log*"))
	if len(matches) != 2 {
		t.Fatalf("expected log plus one backup, got %v", matches)
	}
}
