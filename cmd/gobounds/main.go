package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobounds/pkg/config"
	"github.com/philipparndt/gobounds/pkg/pointio"
	"github.com/philipparndt/gobounds/version"
)

// app carries the settings resolved before a subcommand runs
type app struct {
	configPath string
	verbose    bool
	cfg        config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:   "gobounds",
		Short: "Compute bounding boxes of 3D point sets",
		Long: `gobounds computes axis-aligned and oriented bounding boxes of point sets
read from STL meshes, XYZ point files or OpenSCAD sources, and answers
containment queries against them.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "TOML config file")
	flags.String(config.FlagFormat, config.FormatText, "output format: text, json or yaml")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log diagnostics to stderr")

	rootCmd.AddCommand(
		newAABBCmd(a),
		newOBBCmd(a),
		newCropCmd(a),
		newInfoCmd(a),
		newWatchCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Apply(cmd.Flags()); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger.Debug("configuration",
		"format", cfg.Format,
		"parallel", cfg.Parallel,
		"block_size", cfg.BlockSize,
		"workers", cfg.Workers)
	return nil
}

func (a *app) load(path string) (*pointio.Cloud, error) {
	start := time.Now()
	cloud, err := pointio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	a.logger.Debug("loaded points", "file", path, "points", cloud.Len(), "elapsed", time.Since(start))
	return cloud, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
