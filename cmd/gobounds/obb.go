package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobounds/pkg/geometry"
)

func newOBBCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "obb [file]",
		Short: "Compute the oriented bounding box of a point set",
		Long: `Fit an oriented bounding box by principal component analysis of the
convex hull of the points. Prints center, extent, axes, volume and the
eight corners.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cloud, err := a.load(args[0])
			if err != nil {
				return err
			}

			start := time.Now()
			box, err := geometry.NewFitter().Fit(cloud.Points)
			if err != nil {
				return err
			}
			a.logger.Debug("fitted oriented box", "elapsed", time.Since(start))

			report := newOBBReport(box)
			report.Source = args[0]
			report.Points = cloud.Len()

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, report)
		},
	}
}
