package main

import (
	"github.com/dhamidi/llfront/workspace"
	"github.com/spf13/cobra"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	var tablePath string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.loadTable(tablePath)
			if err != nil {
				return err
			}
			server := workspace.NewLSPServer(table, opts.cfg.HasExtension, version, opts.parserOptions()...)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "parse table artifact (.json, .yaml or .toml)")

	return cmd
}
