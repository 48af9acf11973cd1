package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oukeidos/tecta/internal/apperrors"
	"github.com/oukeidos/tecta/internal/auth"
	"github.com/oukeidos/tecta/internal/gemini"
	"github.com/oukeidos/tecta/internal/metadata"
	"github.com/oukeidos/tecta/internal/openai"
	"github.com/oukeidos/tecta/internal/translation"
)

type keySaveResult struct {
	GeminiSaved bool
	OpenAISaved bool
}

func saveKeysToKeychain(geminiKey, openaiKey string, saveFn func(service, key string) error) (keySaveResult, error) {
	result := keySaveResult{}
	var errs []string
	if strings.TrimSpace(geminiKey) != "" {
		if err := saveFn(metadata.ProviderGemini, geminiKey); err != nil {
			errs = append(errs, fmt.Sprintf("failed to save Gemini key: %v", err))
		} else {
			result.GeminiSaved = true
		}
	}
	if strings.TrimSpace(openaiKey) != "" {
		if err := saveFn(metadata.ProviderOpenAI, openaiKey); err != nil {
			errs = append(errs, fmt.Sprintf("failed to save OpenAI key: %v", err))
		} else {
			result.OpenAISaved = true
		}
	}
	if len(errs) > 0 {
		return result, errors.New(strings.Join(errs, "; "))
	}
	return result, nil
}

func resetKeysInKeychain(deleteFn func(service string) error) error {
	var errs []string
	if err := deleteFn(metadata.ProviderGemini); err != nil {
		errs = append(errs, fmt.Sprintf("failed to delete Gemini key: %v", err))
	}
	if err := deleteFn(metadata.ProviderOpenAI); err != nil {
		errs = append(errs, fmt.Sprintf("failed to delete OpenAI key: %v", err))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// keychainTranslator resolves the key and builds the provider client per
// call, so settings changes apply to the next submit. It never reads the
// environment.
type keychainTranslator struct {
	settings func() guiConfig
	lookup   func(service string) string
	build    func(ctx context.Context, provider string, s translation.Settings) (translation.Translator, func() error, error)
}

func newKeychainTranslator(settings func() guiConfig) *keychainTranslator {
	return &keychainTranslator{
		settings: settings,
		lookup: func(service string) string {
			key, _ := auth.GetKey(service, false)
			return key
		},
		build: buildProvider,
	}
}

func (k *keychainTranslator) Translate(ctx context.Context, text string) (*translation.Response, error) {
	if err := translation.CheckInput(text); err != nil {
		return nil, err
	}
	cfg := k.settings()
	key := k.lookup(cfg.Provider)
	if key == "" {
		return nil, apperrors.New(apperrors.KindAuth,
			fmt.Sprintf("No %s API key saved. Open Settings to add one.", providerLabel(cfg.Provider)), nil)
	}
	tr, closeFn, err := k.build(ctx, cfg.Provider, translation.Settings{
		APIKey:      key,
		Model:       cfg.Model,
		Temperature: translation.Temperature,
	})
	if err != nil {
		return nil, err
	}
	if closeFn != nil {
		defer closeFn()
	}
	return tr.Translate(ctx, text)
}

func buildProvider(ctx context.Context, provider string, s translation.Settings) (translation.Translator, func() error, error) {
	if provider == metadata.ProviderOpenAI {
		c, err := openai.NewClient(s)
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	}
	c, err := gemini.NewClient(ctx, s)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}

func providerLabel(provider string) string {
	if provider == metadata.ProviderOpenAI {
		return "OpenAI"
	}
	return "Gemini"
}
