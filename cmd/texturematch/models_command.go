package main

import (
	"fmt"

	"texture-matcher/config"
	"texture-matcher/internal/core/gemini"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newModelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the hosted models and the configured one",
		RunE: func(cmd *cobra.Command, args []string) error {
			// listing never calls the API, so skip the credential check
			ctx.backendFlag = config.BackendLocal
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			configured := cfg.Gemini.Model
			if configured == "" {
				configured = gemini.Models[0]
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Model", "Default", "Configured"})
			for i, name := range gemini.Models {
				tw.AppendRow(table.Row{name, mark(i == 0), mark(name == configured)})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return err
		},
	}
}

func mark(ok bool) string {
	if ok {
		return "*"
	}
	return ""
}
