package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oukeidos/tecta/internal/apperrors"
	"github.com/oukeidos/tecta/internal/metadata"
	"github.com/oukeidos/tecta/internal/translation"
)

func TestSaveKeysToKeychain(t *testing.T) {
	t.Run("empty_keys_noop", func(t *testing.T) {
		calls := 0
		result, err := saveKeysToKeychain("", " ", func(service, key string) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if result.GeminiSaved || result.OpenAISaved || calls != 0 {
			t.Fatalf("expected no saves, got %+v with %d calls", result, calls)
		}
	})

	t.Run("saves_both_keys", func(t *testing.T) {
		var called []string
		result, err := saveKeysToKeychain("g-key", "o-key", func(service, key string) error {
			called = append(called, service+":"+key)
			return nil
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if !result.GeminiSaved || !result.OpenAISaved {
			t.Fatalf("expected both saved, got %+v", result)
		}
		if len(called) != 2 || called[0] != "gemini:g-key" || called[1] != "openai:o-key" {
			t.Fatalf("unexpected calls: %#v", called)
		}
	})

	t.Run("keeps_trying_after_failure", func(t *testing.T) {
		result, err := saveKeysToKeychain("g-key", "o-key", func(service, key string) error {
			if service == metadata.ProviderGemini {
				return errors.New("keychain unavailable")
			}
			return nil
		})
		if err == nil || !strings.Contains(err.Error(), "failed to save Gemini key") {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.GeminiSaved || !result.OpenAISaved {
			t.Fatalf("unexpected result: %+v", result)
		}
	})
}

func TestResetKeysInKeychain(t *testing.T) {
	var deleted []string
	err := resetKeysInKeychain(func(service string) error {
		deleted = append(deleted, service)
		if service == metadata.ProviderOpenAI {
			return errors.New("denied")
		}
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "failed to delete OpenAI key") {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(err.Error(), "Gemini") {
		t.Fatalf("gemini delete succeeded but was reported: %v", err)
	}
	if len(deleted) != 2 {
		t.Fatalf("expected both deletes attempted, got %#v", deleted)
	}
}

func TestKeychainTranslator(t *testing.T) {
	want := &translation.Response{TranslatedText: "你好"}
	newTranslator := func(provider, key string) (*keychainTranslator, *translation.MockTranslator, *translation.Settings) {
		mock := &translation.MockTranslator{Response: want}
		got := &translation.Settings{}
		return &keychainTranslator{
			settings: func() guiConfig {
				return guiConfig{Provider: provider, Model: metadata.DefaultModel(provider)}
			},
			lookup: func(string) string { return key },
			build: func(_ context.Context, _ string, s translation.Settings) (translation.Translator, func() error, error) {
				*got = s
				return mock, nil, nil
			},
		}, mock, got
	}

	t.Run("missing key", func(t *testing.T) {
		kt, mock, _ := newTranslator(metadata.ProviderOpenAI, "")
		_, err := kt.Translate(context.Background(), "hello")
		if kind, _ := apperrors.KindOf(err); kind != apperrors.KindAuth {
			t.Fatalf("expected auth error, got %v", err)
		}
		if got := apperrors.PublicMessage(err); got != "No OpenAI API key saved. Open Settings to add one." {
			t.Fatalf("unexpected message %q", got)
		}
		if len(mock.Calls()) != 0 {
			t.Fatalf("translator should not be called without a key")
		}
	})

	t.Run("blank input", func(t *testing.T) {
		kt, mock, _ := newTranslator(metadata.ProviderGemini, "k")
		_, err := kt.Translate(context.Background(), "  \n")
		if !apperrors.IsEmptyInput(err) {
			t.Fatalf("expected empty input, got %v", err)
		}
		if len(mock.Calls()) != 0 {
			t.Fatalf("translator should not be called for blank input")
		}
	})

	t.Run("builds with saved key", func(t *testing.T) {
		kt, mock, settings := newTranslator(metadata.ProviderGemini, "g-key")
		resp, err := kt.Translate(context.Background(), "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp != want {
			t.Fatalf("response was not passed through")
		}
		if settings.APIKey != "g-key" || settings.Model != metadata.DefaultModel(metadata.ProviderGemini) {
			t.Fatalf("unexpected settings: %+v", settings)
		}
		if settings.Temperature != translation.Temperature {
			t.Fatalf("temperature = %v, want %v", settings.Temperature, translation.Temperature)
		}
		if calls := mock.Calls(); len(calls) != 1 || calls[0] != "hello" {
			t.Fatalf("unexpected calls: %#v", calls)
		}
	})
}
