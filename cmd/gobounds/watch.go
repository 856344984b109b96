package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobounds/pkg/config"
	"github.com/philipparndt/gobounds/pkg/pointio"
	"github.com/philipparndt/gobounds/pkg/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Reprint bounds information whenever a file changes",
		Long: `Print the info report for a file and print it again every time the file
changes. For OpenSCAD sources every used or included file is watched too.
Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.watch(ctx, cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().Duration(config.FlagDebounce, config.Default().Debounce, "quiet period before reprinting")

	return cmd
}

// watch prints the report for path and reprints it on every change until
// ctx is done
func (a *app) watch(ctx context.Context, w io.Writer, path string) error {
	report := func() {
		if err := a.info(w, path); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
	}

	var iw *watcher.InputWatcher
	iw, err := watcher.New(a.cfg.Debounce, a.logger, func(changed string) {
		a.logger.Info("input changed", "file", changed)
		fmt.Fprintln(w)
		report()

		// dependencies of OpenSCAD sources may have changed with the edit
		if err := a.rewatch(iw, path); err != nil {
			a.logger.Warn("failed to update watched files", "err", err)
		}
	})
	if err != nil {
		return err
	}
	defer iw.Close()

	report()
	if err := a.rewatch(iw, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nWatching %s for changes (Ctrl+C to stop)\n", path)

	if err := iw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *app) rewatch(iw *watcher.InputWatcher, path string) error {
	files, err := pointio.WatchList(path)
	if err != nil {
		return err
	}
	a.logger.Debug("watching", "files", files)
	return iw.SetFiles(files)
}
