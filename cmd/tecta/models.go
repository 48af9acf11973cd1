package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/tecta/internal/metadata"
)

func newModelsCmd() *cobra.Command {
	var provider string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List known models and their list prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			providers := metadata.Providers()
			if provider != "" {
				if !metadata.IsProvider(provider) {
					return fmt.Errorf("invalid provider %q (expected gemini or openai)", provider)
				}
				providers = []string{provider}
			}
			out := cmd.OutOrStdout()
			for _, p := range providers {
				fmt.Fprintf(out, "%s (default: %s)\n", p, metadata.DefaultModel(p))
				for _, m := range metadata.Models(p) {
					fmt.Fprintf(out, "  %-26s %-26s in $%.2f / out $%.2f per 1M tokens\n", m.ID, m.Label, m.InputPerMillion, m.OutputPerMillion)
				}
			}
			return nil
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&provider, "provider", "", "Only list models for this provider")
	return cmd
}
