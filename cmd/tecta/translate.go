package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oukeidos/tecta/internal/cleanup"
	"github.com/oukeidos/tecta/internal/config"
	"github.com/oukeidos/tecta/internal/logger"
	"github.com/oukeidos/tecta/internal/status"
	"github.com/oukeidos/tecta/internal/view"
)

var errEmptyInput = errors.New("input text is empty")

type translateOptions struct {
	configPath string
	file       string
	provider   string
	model      string
	jsonOut    bool
	stats      bool
	allowEnv   bool
	envOnly    bool
	debug      bool
	logFile    string
}

func newTranslateCmd() *cobra.Command {
	opts := translateOptions{}
	cmd := &cobra.Command{
		Use:     "translate [text...]",
		Short:   "Translate technical English text into Chinese",
		Example: translateExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args, &opts)
		},
		SilenceUsage: true,
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addTranslateFlags(cmd, &opts)
	return cmd
}

func addTranslateFlags(cmd *cobra.Command, opts *translateOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default $HOME/.tecta.yaml)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read input text from a file")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Translation provider (gemini or openai)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model name (default depends on provider)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the translation response as JSON")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print token usage and estimated cost")
	cmd.Flags().BoolVar(&opts.allowEnv, "allow-env", false, "Allow reading API key from environment variables")
	cmd.Flags().BoolVar(&opts.envOnly, "env-only", false, "Use only environment variables for API keys")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Path to save machine-readable JSONL logs")
}

func loadConfig(cmd *cobra.Command, opts *translateOptions) (config.Config, error) {
	v := config.New()
	for key, flag := range map[string]string{
		config.KeyProvider: "provider",
		config.KeyModel:    "model",
		config.KeyAllowEnv: "allow-env",
		config.KeyDebug:    "debug",
		config.KeyLogFile:  "log-file",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(v, opts.configPath)
}

func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case file != "":
		if len(args) > 0 {
			return "", fmt.Errorf("use either --file or text arguments, not both")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file %s: %w", file, err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

func runTranslate(cmd *cobra.Command, args []string, opts *translateOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logLevel := logger.LevelInfo
	if cfg.Debug {
		logLevel = logger.LevelDebug
	}
	logOpts := logger.Options{Level: logLevel, Console: cmd.ErrOrStderr()}
	if cfg.LogFile != "" {
		f, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return err
		}
		cleanup.Register("log file", f.Close)
		logOpts.File = f
	}
	logger.Init(logOpts)
	if cfg.Source != "" {
		logger.Debug("Using config file", "path", cfg.Source)
	}

	text, err := readInput(cmd, args, opts.file)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errEmptyInput
	}

	allowEnv := cfg.AllowEnv || opts.envOnly
	if allowEnv {
		if err := config.LoadDotEnv("."); err != nil {
			logger.Warn("Ignoring .env file", "error", err)
		}
	}
	key, source, err := resolveAPIKey(cfg.Provider, allowEnv, opts.envOnly)
	if err != nil {
		return err
	}
	logger.Info("Using API Key", "service", cfg.Provider, "source", string(source))

	ctx, stop := signalContext()
	defer stop()

	tr, closeFn, err := newTranslator(ctx, cfg.Provider, cfg.Settings(key))
	if err != nil {
		return err
	}
	cleanup.Register("translator client", closeFn)

	ctl := status.NewController(tr)
	ctl.SetInput(text)
	startTime := time.Now()
	done, ok := ctl.Submit(ctx)
	if !ok {
		return errEmptyInput
	}
	<-done

	state := ctl.Snapshot().State
	if state.Status == status.Error {
		if ctx.Err() != nil {
			logger.Warn("Translation canceled")
		}
		return errors.New(state.Err)
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state.Data); err != nil {
			return err
		}
	} else if err := view.Render(out, state); err != nil {
		return err
	}

	if opts.stats {
		printUsageStats(cmd.ErrOrStderr(), state.Data.Usage, time.Since(startTime), cfg.Provider, cfg.Model)
	}
	return nil
}
