package main

import (
	"fmt"

	"github.com/dhamidi/llfront/driver"
	"github.com/spf13/cobra"
)

func newParseCmd(opts *globalOptions) *cobra.Command {
	var (
		tablePath string
		outDir    string
		writeJSON bool
		noTokens  bool
	)

	cmd := &cobra.Command{
		Use:   "parse <file-or-dir>...",
		Short: "Parse source files and write their token, derivation and error artifacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.loadTable(tablePath)
			if err != nil {
				return err
			}

			cfg := opts.cfg
			if outDir != "" {
				cfg.Output.Dir = outDir
			}
			if writeJSON {
				cfg.Output.JSON = true
			}
			if noTokens {
				off := false
				cfg.Output.Tokens = &off
			}

			report, err := driver.New(table, cfg, cmd.OutOrStdout()).Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			if len(report.Missing) > 0 {
				return fmt.Errorf("%d path(s) not found", len(report.Missing))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "parse table artifact (.json, .yaml or .toml)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the artifacts (default: next to each input)")
	cmd.Flags().BoolVar(&writeJSON, "json", false, "also write the parse result as JSON")
	cmd.Flags().BoolVar(&noTokens, "no-tokens", false, "do not write the token dump and lexical errors")

	return cmd
}
