package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show a short description and link",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "tecta: technical English to professional Chinese, with a terminology glossary")
			fmt.Fprintln(out, "https://github.com/oukeidos/tecta")
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
