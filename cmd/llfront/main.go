package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhamidi/llfront/config"
	"github.com/dhamidi/llfront/grammar"
	"github.com/dhamidi/llfront/lang/ll1"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

type globalOptions struct {
	configPath string
	verbose    int
	logFile    string
	cfg        *config.Config
}

func main() {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "llfront",
		Short:         "Table-driven LL(1) front end for the class language",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default: llfront.toml, llfront.yaml or $"+config.EnvConfig+")")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newLexCmd(opts))
	rootCmd.AddCommand(newGrammarCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func (o *globalOptions) setup() error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.Load(o.configPath)
	} else {
		o.cfg, err = config.Find(".")
	}
	if err != nil {
		return err
	}

	logFile := o.cfg.Log.File
	if o.logFile != "" {
		logFile = o.logFile
	}
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(o.cfg.Log.Verbosity+o.verbose, path)

	if o.cfg.Path != "" {
		commonlog.GetLogger("llfront").Infof("using configuration %s", o.cfg.Path)
	}
	return nil
}

// loadTable picks the parse table from the --table flag, the configuration
// or the embedded class grammar, in that order.
func (o *globalOptions) loadTable(flagPath string) (*ll1.Table, error) {
	path := flagPath
	if path == "" {
		path = o.cfg.Parse.Table
	}
	if path == "" {
		return grammar.Default()
	}
	return ll1.LoadTable(path)
}

// parserOptions returns the parser settings from the configuration. A zero
// step limit keeps the parser default.
func (o *globalOptions) parserOptions() []ll1.Option {
	var opts []ll1.Option
	if o.cfg.Parse.StepLimit > 0 {
		opts = append(opts, ll1.WithStepLimit(o.cfg.Parse.StepLimit))
	}
	return opts
}
