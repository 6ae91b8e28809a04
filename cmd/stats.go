package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gekko3d/nucleus/rt/core"
	"github.com/spf13/cobra"
)

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Generate the point cloud and print its distribution without opening a window.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := c.cfg.SphereParams()
			buf := core.NewSphereCache(params, c.cfg.Scene.Seed).Get()
			c.logger.Debugf("generated %d points with seed %d", buf.Len(), c.cfg.Scene.Seed)
			return writeStats(cmd.OutOrStdout(), params, core.Summarize(buf))
		},
	}
}

func writeStats(w io.Writer, params core.SphereParams, s core.BufferStats) error {
	fmt.Fprintf(w, "radius %.3f, core radius %.3f\n\n", params.Radius, params.Radius*params.InnerDensityFactor)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "segment\tcount\tr mean\tr stddev\tr min\tr max\tsize mean\tmean direction")
	for _, row := range []struct {
		name string
		seg  core.SegmentStats
	}{{"shell", s.Outer}, {"core", s.Inner}} {
		d := row.seg.MeanDirection
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t(%.3f, %.3f, %.3f)\n",
			row.name, row.seg.Count, row.seg.RadiusMean, row.seg.RadiusStdDev,
			row.seg.RadiusMin, row.seg.RadiusMax, row.seg.SizeMean, d.X(), d.Y(), d.Z())
	}
	return tw.Flush()
}
