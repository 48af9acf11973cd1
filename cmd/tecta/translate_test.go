package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oukeidos/tecta/internal/apperrors"
	"github.com/oukeidos/tecta/internal/translation"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

type translatorStub struct {
	mock     *translation.MockTranslator
	provider string
	settings translation.Settings
	builds   int
}

func withTranslatorStub(t *testing.T, mock *translation.MockTranslator) *translatorStub {
	t.Helper()
	stub := &translatorStub{mock: mock}
	prev := newTranslator
	newTranslator = func(_ context.Context, provider string, s translation.Settings) (translation.Translator, func() error, error) {
		stub.builds++
		stub.provider = provider
		stub.settings = s
		return mock, nil, nil
	}
	t.Cleanup(func() { newTranslator = prev })
	return stub
}

func mutexResponse() *translation.Response {
	return &translation.Response{
		TranslatedText: "互斥锁（mutex）保护临界区。",
		TechnicalTerms: []translation.TechnicalTerm{
			{Original: "mutex", Translation: "互斥锁", Explanation: "..."},
		},
	}
}

func TestTranslate_BlankInputMakesNoCall(t *testing.T) {
	stubs := withKeyStubs(t, false, "", "keychain-key", "")
	stub := withTranslatorStub(t, &translation.MockTranslator{Response: mutexResponse()})

	for _, args := range [][]string{{"translate", "   "}, {"   \n"}} {
		_, err := executeCommand(t, args...)
		if !errors.Is(err, errEmptyInput) {
			t.Fatalf("args %q: expected empty input error, got %v", args, err)
		}
	}
	if stub.builds != 0 || len(stub.mock.Calls()) != 0 {
		t.Fatalf("expected no translator use, got builds=%d calls=%d", stub.builds, len(stub.mock.Calls()))
	}
	if stubs.keyCalls != 0 {
		t.Fatalf("key lookup should not happen for blank input")
	}
}

func TestTranslate_Success(t *testing.T) {
	withKeyStubs(t, false, "", "keychain-key", "")
	stub := withTranslatorStub(t, &translation.MockTranslator{Response: mutexResponse()})

	out, err := executeCommand(t, "A", "mutex", "guards", "the", "critical", "section.")
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "互斥锁（mutex）保护临界区。") || !strings.Contains(out, "Terminology Glossary (1)") {
		t.Fatalf("unexpected output: %s", out)
	}
	calls := stub.mock.Calls()
	if len(calls) != 1 || calls[0] != "A mutex guards the critical section." {
		t.Fatalf("unexpected calls %q", calls)
	}
	if stub.provider != "gemini" || stub.settings.APIKey != "keychain-key" || stub.settings.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected translator settings: %s %+v", stub.provider, stub.settings)
	}
	if stub.settings.Temperature < 0.299 || stub.settings.Temperature > 0.301 {
		t.Fatalf("expected temperature 0.3, got %v", stub.settings.Temperature)
	}
}

func TestTranslate_JSONFromFile(t *testing.T) {
	withKeyStubs(t, false, "", "keychain-key", "")
	stub := withTranslatorStub(t, &translation.MockTranslator{Response: mutexResponse()})

	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("A mutex guards the critical section.\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"translate", "--file", path, "--json", "--provider", "openai"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var got translation.Response
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if got.TranslatedText != mutexResponse().TranslatedText || len(got.TechnicalTerms) != 1 {
		t.Fatalf("unexpected JSON payload %+v", got)
	}
	if strings.Contains(stdout.String(), "Usage") {
		t.Fatalf("usage must not be serialized: %s", stdout.String())
	}
	if stub.provider != "openai" || stub.settings.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected provider/model %s/%s", stub.provider, stub.settings.Model)
	}
}

func TestTranslate_Stdin(t *testing.T) {
	withKeyStubs(t, false, "", "keychain-key", "")
	stub := withTranslatorStub(t, &translation.MockTranslator{Response: mutexResponse()})

	if _, err := executeCommandWithInput(t, "piped text\n", "translate"); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if calls := stub.mock.Calls(); len(calls) != 1 || calls[0] != "piped text\n" {
		t.Fatalf("unexpected calls %q", calls)
	}
}

func TestTranslate_ErrorsSurfaceMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"service", apperrors.New(apperrors.KindRateLimit, "quota exceeded", nil), "quota exceeded"},
		{"empty payload", apperrors.EmptyResponse(nil), apperrors.MsgEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withKeyStubs(t, false, "", "keychain-key", "")
			withTranslatorStub(t, &translation.MockTranslator{Error: tt.err})

			_, err := executeCommand(t, "translate", "text")
			if err == nil || err.Error() != tt.want {
				t.Fatalf("expected error %q, got %v", tt.want, err)
			}
		})
	}
}

func TestTranslate_InvalidProvider(t *testing.T) {
	withKeyStubs(t, false, "", "keychain-key", "")
	stub := withTranslatorStub(t, &translation.MockTranslator{Response: mutexResponse()})

	_, err := executeCommand(t, "translate", "--provider", "claude", "text")
	if err == nil || !strings.Contains(err.Error(), "invalid provider") {
		t.Fatalf("expected invalid provider error, got %v", err)
	}
	if stub.builds != 0 {
		t.Fatalf("translator should not be built")
	}
}

func TestTranslate_FileAndArgsConflict(t *testing.T) {
	withKeyStubs(t, false, "", "keychain-key", "")
	withTranslatorStub(t, &translation.MockTranslator{Response: mutexResponse()})

	_, err := executeCommand(t, "translate", "--file", "in.txt", "text")
	if err == nil || !strings.Contains(err.Error(), "not both") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
