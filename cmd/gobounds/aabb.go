package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/gobounds/pkg/geometry"
)

func newAABBCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "aabb [file]",
		Short: "Compute the axis-aligned bounding box of a point set",
		Long:  "Print the minimum and maximum corners, center, extent and volume of the axis-aligned box enclosing all points.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cloud, err := a.load(args[0])
			if err != nil {
				return err
			}

			report := newAABBReport(geometry.CreateAxisAlignedBoundingBoxFromPoints(cloud.Points))
			report.Source = args[0]
			report.Points = cloud.Len()

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, report)
		},
	}
}
