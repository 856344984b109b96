package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobounds/pkg/analysis"
	"github.com/philipparndt/gobounds/pkg/geometry"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Display bounding volume information about a point set",
		Long:  "Show point count, both bounding boxes and the ratio of the oriented box volume to the axis-aligned one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.info(cmd.OutOrStdout(), args[0])
		},
	}
}

// info loads path and writes the analysis report
func (a *app) info(w io.Writer, path string) error {
	cloud, err := a.load(path)
	if err != nil {
		return err
	}

	result, err := analysis.AnalyzePoints(cloud.Points, geometry.NewFitter())
	if err != nil {
		return err
	}

	return writeReport(w, a.cfg.Format, newInfoReport(path, cloud.Name, result))
}
