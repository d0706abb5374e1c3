package main

import (
	"time"

	"github.com/dhamidi/llfront/driver"
	"github.com/dhamidi/llfront/workspace"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var (
		tablePath string
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Parse source files again whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			table, err := opts.loadTable(tablePath)
			if err != nil {
				return err
			}

			log := commonlog.GetLogger("llfront.watch")
			drv := driver.New(table, opts.cfg, cmd.OutOrStdout())
			ws := workspace.New(root, table, opts.cfg.HasExtension, opts.parserOptions()...)

			fw := workspace.NewFileWatcher(ws, func(path string, doc *workspace.Document) {
				if doc == nil {
					log.Infof("%s: removed", path)
					return
				}
				if _, err := drv.Record(path, doc.Tokens, doc.Result); err != nil {
					log.Errorf("%s: %s", path, err)
				}
			})
			fw.SetInterval(interval)
			fw.Start()
			defer fw.Stop()

			log.Infof("watching %s", root)
			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "parse table artifact (.json, .yaml or .toml)")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval")

	return cmd
}
