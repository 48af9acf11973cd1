package auth

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const serviceName = "tecta"

// Source describes where a key was found.
type Source string

const (
	SourceNone     Source = ""
	SourceKeychain Source = "Keychain"
	SourceEnv      Source = "Environment Variable"
	SourcePrompt   Source = "Prompt"
)

type account struct {
	keychain string
	envVar   string
}

var accounts = map[string]account{
	"gemini": {keychain: "gemini-api-key", envVar: "GEMINI_API_KEY"},
	"openai": {keychain: "openai-api-key", envVar: "OPENAI_API_KEY"},
}

// Services lists the providers that take an API key, in display order.
var Services = []string{"gemini", "openai"}

func lookup(service string) (account, error) {
	acc, ok := accounts[strings.ToLower(strings.TrimSpace(service))]
	if !ok {
		return account{}, fmt.Errorf("unknown service %q (expected gemini or openai)", service)
	}
	return acc, nil
}

// EnvVar returns the environment variable consulted for service.
func EnvVar(service string) string {
	acc, err := lookup(service)
	if err != nil {
		return ""
	}
	return acc.envVar
}

// GetKey retrieves the API key for a specific service.
// If allowEnv is false, environment variables are ignored.
func GetKey(service string, allowEnv bool) (string, Source) {
	acc, err := lookup(service)
	if err != nil {
		return "", SourceNone
	}

	key, err := keyring.Get(serviceName, acc.keychain)
	if err == nil && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key), SourceKeychain
	}

	if allowEnv {
		if key, ok := GetEnvKey(service); ok {
			return key, SourceEnv
		}
	}

	return "", SourceNone
}

// SaveKey saves the key for a specific service to the OS Keychain.
func SaveKey(service, key string) error {
	acc, err := lookup(service)
	if err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	return keyring.Set(serviceName, acc.keychain, key)
}

// DeleteKey removes the key for a specific service from the OS Keychain.
// Deleting a key that does not exist is not an error.
func DeleteKey(service string) error {
	acc, err := lookup(service)
	if err != nil {
		return err
	}
	if err := keyring.Delete(serviceName, acc.keychain); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// GetStatus reports whether a key exists for a specific service in the keychain.
func GetStatus(service string) bool {
	acc, err := lookup(service)
	if err != nil {
		return false
	}
	key, err := keyring.Get(serviceName, acc.keychain)
	return err == nil && strings.TrimSpace(key) != ""
}

// PromptForAPIKey reads a key from the terminal without echo.
func PromptForAPIKey(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// GetEnvKey retrieves the key from environment variables only.
func GetEnvKey(service string) (string, bool) {
	acc, err := lookup(service)
	if err != nil {
		return "", false
	}
	key := strings.TrimSpace(os.Getenv(acc.envVar))
	if key == "" {
		return "", false
	}
	return key, true
}
