package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"texture-matcher/config"
	"texture-matcher/internal/core/catalog"
	"texture-matcher/internal/services/batch"
	"texture-matcher/pkg/logger"

	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var format string
	var stopOnError bool

	cmd := &cobra.Command{
		Use:   "run [query...]",
		Short: "Match queries against the candidate catalog",
		Long:  "Match each query against the catalog's candidates and print one result per query.\nWith no arguments the catalog's own queries are used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(batch.Formats, format) {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(batch.Formats, ", "))
			}
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			m, info, err := ctx.matcher(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			cat, err := catalog.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cat.Queries = args
			}
			logger.ForModule(config.ModuleBatch).WithFields(map[string]interface{}{
				"backend": info.Backend,
				"model":   info.Model,
				"queries": len(cat.Queries),
			}).Info("batch starting")

			items, runErr := batch.Run(cmd.Context(), m, cat, batch.Options{
				StopOnError: stopOnError,
				Timeout:     time.Duration(cfg.Matcher.TimeoutSeconds) * time.Second,
			})
			if err := batch.Print(cmd.OutOrStdout(), items, format); err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}
			if n := batch.Failed(items); n > 0 {
				return fmt.Errorf("%d of %d queries failed", n, len(items))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ctx.catalogFlag, "catalog", "", "Catalog YAML path or s3:// URL")
	cmd.Flags().StringVarP(&format, "format", "f", batch.FormatText, "Output format ("+strings.Join(batch.Formats, ", ")+")")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first failed query")

	return cmd
}
