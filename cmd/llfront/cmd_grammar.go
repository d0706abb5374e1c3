package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/dhamidi/llfront/grammar"
	"github.com/dhamidi/llfront/lang/ll1"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Parse table and grammar tools",
	}

	cmd.AddCommand(newGrammarCheckCmd(opts))
	cmd.AddCommand(newGrammarExportCmd(opts))

	return cmd
}

func newGrammarCheckCmd(opts *globalOptions) *cobra.Command {
	var (
		tablePath string
		ebnfPath  string
		start     string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the EBNF grammar and cross-check the parse table against it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.loadTable(tablePath)
			if err != nil {
				return err
			}

			g, err := loadEBNF(ebnfPath)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return errors.New("grammar has syntax errors")
			}

			if start == "" {
				start = opts.cfg.Parse.Start
			}
			if err := grammar.Check(table, g, start); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return errors.New("grammar check failed")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d non-terminals, %d terminals\n",
				len(table.NonTerminals()), len(table.Terminals()))
			return nil
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "parse table artifact (default: the embedded class table)")
	cmd.Flags().StringVar(&ebnfPath, "ebnf", "", "EBNF grammar file (default: the embedded class grammar)")
	cmd.Flags().StringVar(&start, "start", "", "start production (default: parse.start from the configuration)")

	return cmd
}

func newGrammarExportCmd(opts *globalOptions) *cobra.Command {
	var (
		tablePath  string
		formatName string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the parse table as JSON, YAML or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.loadTable(tablePath)
			if err != nil {
				return err
			}
			format, err := ll1.FormatFromPath("table." + formatName)
			if err != nil {
				return err
			}
			return ll1.EncodeTable(cmd.OutOrStdout(), table, format)
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "parse table artifact (default: the embedded class table)")
	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "output format: json, yaml or toml")

	return cmd
}

func loadEBNF(path string) (ebnf.Grammar, error) {
	if path == "" {
		return grammar.EBNF()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ebnf.Parse(path, f)
}

// printErrors writes one line per error, expanding joined errors and the
// error lists of the ebnf package. The context a list was wrapped in is
// printed as a header line; an error that wraps no list is printed whole.
func printErrors(w io.Writer, err error) {
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			printErrors(w, e)
		}
		return
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
		return
	}
	inner := errors.Unwrap(err)
	if inner == nil || !wrapsList(inner) {
		fmt.Fprintln(w, err)
		return
	}
	if prefix, ok := strings.CutSuffix(err.Error(), inner.Error()); ok && prefix != "" {
		fmt.Fprintln(w, strings.TrimSuffix(prefix, " "))
	}
	printErrors(w, inner)
}

// wrapsList reports whether err or an error it wraps holds several errors.
func wrapsList(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if _, ok := err.(interface{ Unwrap() []error }); ok {
			return true
		}
		if reflect.ValueOf(err).Kind() == reflect.Slice {
			return true
		}
	}
	return false
}
