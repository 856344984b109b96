package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobounds/pkg/config"
	"github.com/philipparndt/gobounds/pkg/geometry"
	"github.com/philipparndt/gobounds/pkg/query"
)

type cropOptions struct {
	min, max []float64
	aabbOf   string
	obbOf    string
}

type queryBox interface {
	query.Container
	fmt.Stringer
}

func newCropCmd(a *app) *cobra.Command {
	opts := &cropOptions{}

	cmd := &cobra.Command{
		Use:   "crop [file]",
		Short: "List the points contained in a box",
		Long: `Print the indices of the points of a file that lie inside a box, boundary
included. The box is given by its corners (--min/--max) or as the
axis-aligned (--aabb-of) or oriented (--obb-of) box of another file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := a.cropBox(opts)
			if err != nil {
				return err
			}

			cloud, err := a.load(args[0])
			if err != nil {
				return err
			}

			start := time.Now()
			var indices []int
			if a.cfg.Parallel {
				indices = query.ParallelCompact(box, cloud.Points, a.cfg.QueryOptions())
			} else {
				indices = query.Sequential(box, cloud.Points)
			}
			a.logger.Debug("containment query",
				"parallel", a.cfg.Parallel,
				"matches", len(indices),
				"elapsed", time.Since(start))

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, cropReport{
				Source:   args[0],
				Points:   cloud.Len(),
				Box:      box.String(),
				Parallel: a.cfg.Parallel,
				Count:    len(indices),
				Indices:  indices,
			})
		},
	}

	defaults := config.Default()
	flags := cmd.Flags()
	flags.Float64SliceVar(&opts.min, "min", nil, "minimum corner x,y,z")
	flags.Float64SliceVar(&opts.max, "max", nil, "maximum corner x,y,z")
	flags.StringVar(&opts.aabbOf, "aabb-of", "", "use the axis-aligned box of this file")
	flags.StringVar(&opts.obbOf, "obb-of", "", "use the oriented box of this file")
	flags.Bool(config.FlagParallel, defaults.Parallel, "scan blocks of points concurrently")
	flags.Int(config.FlagBlockSize, defaults.BlockSize, "points per block in parallel mode")
	flags.Int(config.FlagWorkers, defaults.Workers, "concurrent blocks in parallel mode (0 = GOMAXPROCS)")

	cmd.MarkFlagsRequiredTogether("min", "max")
	cmd.MarkFlagsMutuallyExclusive("min", "aabb-of", "obb-of")
	cmd.MarkFlagsOneRequired("min", "aabb-of", "obb-of")

	return cmd
}

func (a *app) cropBox(opts *cropOptions) (queryBox, error) {
	switch {
	case opts.aabbOf != "":
		cloud, err := a.load(opts.aabbOf)
		if err != nil {
			return nil, err
		}
		box := geometry.CreateAxisAlignedBoundingBoxFromPoints(cloud.Points)
		return &box, nil

	case opts.obbOf != "":
		cloud, err := a.load(opts.obbOf)
		if err != nil {
			return nil, err
		}
		box, err := geometry.NewFitter().Fit(cloud.Points)
		if err != nil {
			return nil, err
		}
		return &box, nil

	default:
		minBound, err := parseCorner("min", opts.min)
		if err != nil {
			return nil, err
		}
		maxBound, err := parseCorner("max", opts.max)
		if err != nil {
			return nil, err
		}
		if minBound.Min(maxBound) != minBound {
			return nil, errors.New("--min must not exceed --max on any axis")
		}
		box := geometry.NewAxisAlignedBoundingBox(minBound, maxBound)
		return &box, nil
	}
}

func parseCorner(name string, values []float64) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("--%s needs 3 comma separated values, got %d", name, len(values))
	}
	return geometry.NewVector3(values[0], values[1], values[2]), nil
}
