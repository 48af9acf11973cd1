package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrettyHandler_Structural(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelDebug}
	h := NewPrettyHandler(&buf, opts, false)
	l := slog.New(h)

	t.Run("WithAttrs", func(t *testing.T) {
		buf.Reset()
		l2 := l.With("request_id", "abc-123")
		l2.Info("test message", "user", "alice")

		output := buf.String()
		if !strings.Contains(output, "request_id=") || !strings.Contains(output, "abc-123") {
			t.Errorf("output missing persistent attr: %q", output)
		}
		if !strings.Contains(output, "user=") || !strings.Contains(output, "alice") {
			t.Errorf("output missing record attr: %q", output)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("billing").With("amount", 100)
		l2.Info("payment processing", "currency", "USD")

		output := buf.String()
		if !strings.Contains(output, "billing.amount=") || !strings.Contains(output, "100") {
			t.Errorf("output missing grouped persistent attr: %q", output)
		}
		if !strings.Contains(output, "billing.currency=") || !strings.Contains(output, "USD") {
			t.Errorf("output missing grouped record attr: %q", output)
		}
	})

	t.Run("NestedGroups", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("outer").WithGroup("inner").With("key", "val")
		l2.Info("msg")

		output := buf.String()
		if !strings.Contains(output, "outer.inner.key=") || !strings.Contains(output, "val") {
			t.Errorf("output missing nested grouped attr: %q", output)
		}
	})
}

func TestRedactAttr(t *testing.T) {
	t.Run("KeyBasedRedaction", func(t *testing.T) {
		attr := slog.String("api_key", "sk-1234567890abcdef")
		got := RedactAttr(nil, attr)
		if got.Value.String() != "[REDACTED]" {
			t.Fatalf("expected redaction, got %q", got.Value.String())
		}
	})

	t.Run("ValuePatternRedaction", func(t *testing.T) {
		attr := slog.String("message", "bearer sk-1234567890abcdef")
		got := RedactAttr(nil, attr)
		if got.Value.String() != "[REDACTED]" {
			t.Fatalf("expected redaction, got %q", got.Value.String())
		}
	})

	t.Run("NonSensitive", func(t *testing.T) {
		attr := slog.String("user", "alice")
		got := RedactAttr(nil, attr)
		if got.Value.String() != "alice" {
			t.Fatalf("unexpected redaction: %q", got.Value.String())
		}
	})
}

func TestRedactAttr_TranslationFields(t *testing.T) {
	for _, key := range []string{"source_text", "translated_text", "glossary", "prompt"} {
		got := RedactAttr(nil, slog.String(key, "互斥锁"))
		if got.Value.String() != "[REDACTED]" {
			t.Errorf("expected %s to be redacted, got %q", key, got.Value.String())
		}
	}
	got := RedactAttr(nil, slog.String("request_id", "3f1c"))
	if got.Value.String() != "3f1c" {
		t.Errorf("request_id should not be redacted, got %q", got.Value.String())
	}
}

func TestForRequest(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: LevelDebug, Console: &buf})
	t.Cleanup(func() { Init(Options{Level: LevelInfo}) })

	id := NewRequestID()
	ForRequest(id).Info("translation started", "provider", "gemini")

	out := buf.String()
	if !strings.Contains(out, "request_id="+id) {
		t.Fatalf("expected request id in output: %q", out)
	}
	if NewRequestID() == id {
		t.Fatalf("expected unique request ids")
	}
}

func TestInit_FileSinkWritesJSON(t *testing.T) {
	var console, file bytes.Buffer
	Init(Options{Level: LevelInfo, Console: &console, File: &file})
	t.Cleanup(func() { Init(Options{Level: LevelInfo}) })

	Info("hello", "api_key", "AIzaSyDUMMYDUMMYDUMMY")
	Debug("hidden")

	line := strings.TrimSpace(file.String())
	if !strings.HasPrefix(line, "{") || !strings.Contains(line, `"msg":"hello"`) {
		t.Fatalf("expected JSON record, got %q", line)
	}
	if strings.Contains(line, "AIza") || strings.Contains(console.String(), "AIza") {
		t.Fatalf("api key leaked: %q / %q", line, console.String())
	}
	if strings.Contains(console.String(), "hidden") {
		t.Fatalf("debug record should be filtered at info level")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tecta.jsonl")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestPrettyHandler_NoColorWhenNotTTY(t *testing.T) {
	prevIsTerminal := isTerminal
	isTerminal = func(_ int) bool { return false }
	defer func() { isTerminal = prevIsTerminal }()

	prevStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = prevStderr }()

	Init(Options{Level: LevelInfo})
	Info("test message", "key", "value")

	_ = w.Close()
	out, _ := io.ReadAll(r)
	if strings.Contains(string(out), "\033[") {
		t.Fatalf("unexpected ANSI codes in output: %q", string(out))
	}
}

func TestPrettyHandler_NoColorWhenLogFileEnabled(t *testing.T) {
	prevIsTerminal := isTerminal
	isTerminal = func(_ int) bool { return true }
	defer func() { isTerminal = prevIsTerminal }()

	prevStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = prevStderr }()

	var logBuf bytes.Buffer
	Init(Options{Level: LevelInfo, File: &logBuf})
	Info("test message", "key", "value")

	_ = w.Close()
	out, _ := io.ReadAll(r)
	if strings.Contains(string(out), "\033[") {
		t.Fatalf("unexpected ANSI codes in output: %q", string(out))
	}
}
