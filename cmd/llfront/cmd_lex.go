package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/llfront/format"
	"github.com/dhamidi/llfront/lang/scanner"
	"github.com/spf13/cobra"
)

func newLexCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the tokens and lexical errors of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			tokens := scanner.Tokenize(src)

			out := cmd.OutOrStdout()
			if err := format.NewTokenEncoder(out).Encode(tokens); err != nil {
				return err
			}
			return format.NewLexErrorEncoder(out).Encode(tokens)
		},
	}
}
