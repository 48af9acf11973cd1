package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/oukeidos/tecta/internal/auth"
	"github.com/oukeidos/tecta/internal/gemini"
	"github.com/oukeidos/tecta/internal/logger"
	"github.com/oukeidos/tecta/internal/metadata"
	"github.com/oukeidos/tecta/internal/openai"
	"github.com/oukeidos/tecta/internal/translation"
)

var (
	isTerminal   = term.IsTerminal
	getKey       = auth.GetKey
	getEnvKey    = auth.GetEnvKey
	getStatus    = auth.GetStatus
	saveKey      = auth.SaveKey
	deleteKey    = auth.DeleteKey
	promptForKey = func(prompt string) (string, error) {
		return auth.PromptForAPIKey(os.Stderr, prompt)
	}
	newTranslator = buildTranslator
)

func serviceLabel(service string) string {
	if service == metadata.ProviderOpenAI {
		return "OpenAI"
	}
	return "Gemini"
}

// resolveAPIKey handles the logic for finding the API key.
func resolveAPIKey(service string, allowEnv, envOnly bool) (string, auth.Source, error) {
	if envOnly {
		if key, ok := getEnvKey(service); ok {
			return key, auth.SourceEnv, nil
		}
		return "", auth.SourceNone, fmt.Errorf("env-only set but %s is not set", auth.EnvVar(service))
	}

	if key, source := getKey(service, false); key != "" {
		return key, source, nil
	}

	if allowEnv {
		if key, ok := getEnvKey(service); ok {
			return key, auth.SourceEnv, nil
		}
	}

	if !isTerminal(int(os.Stdin.Fd())) {
		return "", auth.SourceNone, fmt.Errorf("no API key available (non-interactive shell); run 'tecta env setup' or use --allow-env")
	}
	key, err := promptForKey(fmt.Sprintf("%s API Key (press Enter to skip): ", serviceLabel(service)))
	if err != nil {
		return "", auth.SourceNone, fmt.Errorf("error reading API key: %w", err)
	}
	if key = strings.TrimSpace(key); key != "" {
		return key, auth.SourcePrompt, nil
	}

	if allowEnv {
		return "", auth.SourceNone, fmt.Errorf("API key is required; not found in keychain or environment")
	}
	return "", auth.SourceNone, fmt.Errorf("API key is required; not found in keychain (environment disabled by default; use --allow-env)")
}

// buildTranslator returns the provider client and an optional close hook.
func buildTranslator(ctx context.Context, provider string, s translation.Settings) (translation.Translator, func() error, error) {
	switch provider {
	case metadata.ProviderOpenAI:
		c, err := openai.NewClient(s)
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case metadata.ProviderGemini:
		c, err := gemini.NewClient(ctx, s)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported provider %q", provider)
	}
}

func printUsageStats(w io.Writer, usage translation.UsageMetadata, duration time.Duration, provider, model string) {
	fmt.Fprintln(w, "\n--- Execution Stats ---")
	fmt.Fprintf(w, "Time: %s\n", duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Model: %s (%s)\n", model, provider)
	if usage.TotalTokenCount <= 0 {
		return
	}
	fmt.Fprintf(w, "Tokens: In=%d, Out=%d, Total=%d\n",
		usage.PromptTokenCount, usage.CandidatesTokenCount, usage.TotalTokenCount)

	// Gemini bills reasoning tokens (total minus prompt and candidates) as output.
	output := usage.CandidatesTokenCount
	if provider == metadata.ProviderGemini {
		if reasoning := usage.TotalTokenCount - usage.PromptTokenCount - usage.CandidatesTokenCount; reasoning > 0 {
			output += reasoning
		}
	}
	pricing, known := metadata.Pricing(provider, model)
	note := ""
	if !known {
		note = " (default pricing)"
	}
	fmt.Fprintf(w, "Estimated Cost: $%.5f%s\n", pricing.EstimateCost(usage.PromptTokenCount, output), note)
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
