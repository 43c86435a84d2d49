package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/exec-search/internal/agents"
	"github.com/jonathan/exec-search/internal/config"
	"github.com/jonathan/exec-search/internal/llm"
	"github.com/jonathan/exec-search/internal/logging"
)

// loadConfig reads layered configuration and applies an --offline override when the flag was set
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if offlineOverride(cmd) {
		offline, _ := cmd.Flags().GetBool("offline")
		cfg.Offline = offline
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid config: %w", err)
		}
	}

	logger, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func offlineOverride(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("offline")
	return flag != nil && flag.Changed
}

// buildExecutor returns the base executor for cfg and a function releasing its resources
func buildExecutor(ctx context.Context, cfg *config.Config, logger *slog.Logger) (agents.Executor, func() error, error) {
	if cfg.Offline {
		exec := agents.NewSyntheticExecutor(cfg.Seed,
			agents.WithChattyOutput(true),
			agents.WithSyntheticLogger(logger))
		return exec, func() error { return nil }, nil
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	exec := agents.NewLLMExecutor(client, logger)
	return exec, exec.Close, nil
}

// withResilience wraps exec in retries and, when cacheSize > 0, a response cache
func withResilience(exec agents.Executor, cfg *config.Config, observer agents.AttemptObserver, logger *slog.Logger) (agents.Executor, error) {
	policy := agents.RetryPolicy{
		Attempts:  cfg.RetryAttempts,
		BaseDelay: cfg.RetryBaseDelay(),
	}
	var wrapped agents.Executor = agents.NewRetryingExecutor(exec, policy, observer, logger)
	if cfg.CacheSize == 0 {
		return wrapped, nil
	}
	return agents.NewCachingExecutor(wrapped, cfg.CacheSize)
}

// paceDelay maps the configured pace onto pipeline options, where zero means "default"
func paceDelay(cfg *config.Config) time.Duration {
	if d := cfg.PaceDelay(); d > 0 {
		return d
	}
	return -1
}

// openInput returns stdin for "-" and the named file otherwise
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return f, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// writeOutput writes data to path, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
