package main

import (
	"context"
	"strings"

	"texture-matcher/config"
	"texture-matcher/internal/core/backend"
	"texture-matcher/internal/core/texture"
	"texture-matcher/pkg/logger"

	"github.com/spf13/cobra"
)

// matcherFactory is swapped out in tests.
var matcherFactory = backend.New

type commandContext struct {
	configFlag  string
	backendFlag string
	catalogFlag string
}

// loadConfig layers the flags over config file, .env and APP_* variables.
func (c *commandContext) loadConfig() (config.Config, error) {
	overrides := map[string]any{}
	if b := strings.TrimSpace(c.backendFlag); b != "" {
		overrides["matcher.backend"] = b
	}
	if src := strings.TrimSpace(c.catalogFlag); src != "" {
		overrides["matcher.catalog"] = src
	}
	cfg, err := config.LoadWithOverrides(strings.TrimSpace(c.configFlag), overrides)
	if err != nil {
		return config.Config{}, err
	}
	logger.Configure(cfg)
	return cfg, nil
}

func (c *commandContext) matcher(ctx context.Context, cfg config.Config) (texture.Matcher, backend.Info, error) {
	return matcherFactory(ctx, cfg)
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "texturematch",
		Short:         "Match food names to texture scores with an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.backendFlag, "backend", "", "Matcher backend (gemini or local)")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newModelsCommand(ctx))

	return rootCmd
}
