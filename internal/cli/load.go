package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/indentfold/internal/configloader"
	"github.com/yaklabco/indentfold/internal/logging"
	"github.com/yaklabco/indentfold/pkg/config"
)

// loadedConfig is the merged configuration plus where it came from.
type loadedConfig struct {
	config  *config.Config
	workDir string
	result  *configloader.LoadResult
}

// loadConfig merges every config source with the flags set on cmd.
// Warnings are logged; errors are returned as config errors.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*loadedConfig, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, &ConfigError{Err: errors.Join(errors.New("failed to load configuration"), err)}
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldTabSize, cfg.TabSize,
		logging.FieldMinimumRangeSize, cfg.EffectiveMinimumRangeSize(),
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.Format,
	)

	return &loadedConfig{config: cfg, workDir: workDir, result: loadResult}, nil
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// colorMode reads the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
