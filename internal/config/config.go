package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/oukeidos/tecta/internal/metadata"
	"github.com/oukeidos/tecta/internal/translation"
)

// Keys recognised in the config file, as TECTA_* env vars, and as bound flags.
const (
	KeyProvider    = "provider"
	KeyModel       = "model"
	KeyTemperature = "temperature"
	KeyTimeout     = "timeout"
	KeyAllowEnv    = "allow_env"
	KeyLogFile     = "log_file"
	KeyDebug       = "debug"
)

const (
	EnvPrefix      = "TECTA"
	configName     = ".tecta"
	MaxTemperature = 2.0
)

type Config struct {
	Provider    string
	Model       string
	Temperature float32
	Timeout     time.Duration
	AllowEnv    bool
	LogFile     string
	Debug       bool
	// Source is the config file that was read, if any.
	Source string
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyProvider, metadata.ProviderGemini)
	v.SetDefault(KeyModel, "")
	v.SetDefault(KeyTemperature, translation.Temperature)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyAllowEnv, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyDebug, false)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads cfgFile, or $HOME/.tecta.yaml and ./.tecta.yaml when cfgFile
// is empty, and validates the merged result. A missing default file is fine;
// a missing explicit file is not.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(configName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{
		Provider:    strings.ToLower(strings.TrimSpace(v.GetString(KeyProvider))),
		Model:       strings.TrimSpace(v.GetString(KeyModel)),
		Temperature: float32(v.GetFloat64(KeyTemperature)),
		Timeout:     v.GetDuration(KeyTimeout),
		AllowEnv:    v.GetBool(KeyAllowEnv),
		LogFile:     strings.TrimSpace(v.GetString(KeyLogFile)),
		Debug:       v.GetBool(KeyDebug),
		Source:      v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Model == "" {
		cfg.Model = metadata.DefaultModel(cfg.Provider)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !metadata.IsProvider(c.Provider) {
		return fmt.Errorf("invalid provider %q (expected one of: %s)", c.Provider, strings.Join(metadata.Providers(), ", "))
	}
	if c.Temperature < 0 || c.Temperature > MaxTemperature {
		return fmt.Errorf("temperature must be between 0 and %.0f, got %v", MaxTemperature, c.Temperature)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	return nil
}

// Settings builds provider settings with the resolved API key.
func (c Config) Settings(apiKey string) translation.Settings {
	return translation.Settings{
		APIKey:      apiKey,
		Model:       c.Model,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
}

// LoadDotEnv loads a .env file from dir into the process environment.
// Existing variables win and a missing file is ignored.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
