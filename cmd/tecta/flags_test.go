package main

import (
	"strings"
	"testing"

	"github.com/oukeidos/tecta/internal/version"
)

func TestRoot_Version(t *testing.T) {
	out, err := executeCommand(t, "--version")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if strings.TrimSpace(out) != version.Info() {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestRoot_UnknownFlag(t *testing.T) {
	out, err := executeCommand(t, "--chunk-size", "5")
	if err == nil || !strings.Contains(out, "unknown flag: --chunk-size") {
		t.Fatalf("expected unknown flag error, got %v: %s", err, out)
	}
}

func TestModels(t *testing.T) {
	out, err := executeCommand(t, "models", "--provider", "openai")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "openai (default: gpt-4o-mini)") || strings.Contains(out, "gemini-2.5-flash") {
		t.Fatalf("unexpected models output: %s", out)
	}
	if _, err := executeCommand(t, "models", "--provider", "claude"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestAbout(t *testing.T) {
	out, err := executeCommand(t, "about")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "https://github.com/oukeidos/tecta") {
		t.Fatalf("unexpected about output: %s", out)
	}
}
