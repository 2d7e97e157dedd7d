package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zeusync/spatial/internal/core/systems/physics"
	"github.com/zeusync/spatial/pkg/spatial"
	"github.com/zeusync/spatial/pkg/spatial/raycast"
)

type castOptions struct {
	origin      []float64
	direction   []float64
	maxDistance float64
	tags        []string
	all         bool
}

func newCastCmd(root *rootOptions) *cobra.Command {
	opts := &castOptions{}

	cmd := &cobra.Command{
		Use:   "cast",
		Short: "Cast a single ray and print what it hits",
		Long: `Cast a ray from --origin along --direction. The direction is normalised, so the
reported t values are distances. Prints the nearest hit, or every hit with --all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCast(cmd, root, opts)
		},
	}

	cmd.Flags().Float64SliceVar(&opts.origin, "origin", []float64{0, 0, 0}, "ray origin x,y,z")
	cmd.Flags().Float64SliceVar(&opts.direction, "direction", nil, "ray direction x,y,z")
	cmd.Flags().Float64Var(&opts.maxDistance, "max", 1000, "maximum entry distance")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "only hit bodies carrying every listed tag")
	cmd.Flags().BoolVar(&opts.all, "all", false, "print every hit ordered by distance")
	_ = cmd.MarkFlagRequired("direction")

	return cmd
}

func runCast(cmd *cobra.Command, root *rootOptions, opts *castOptions) error {
	ray, err := opts.ray()
	if err != nil {
		return err
	}
	world, err := root.loadWorld(cmd)
	if err != nil {
		return err
	}

	var filter physics.Filter
	if len(opts.tags) > 0 {
		filters := make([]physics.Filter, 0, len(opts.tags))
		for _, tag := range opts.tags {
			filters = append(filters, physics.WithTag(tag))
		}
		filter = physics.All(filters...)
	}

	out := cmd.OutOrStdout()
	if opts.all {
		hits := world.CastAll(ray, opts.maxDistance, filter)
		if len(hits) == 0 {
			fmt.Fprintln(out, "no hit")
			return nil
		}
		for _, hit := range hits {
			printHit(out, hit)
		}
		return nil
	}

	hit, ok := world.Cast(ray, opts.maxDistance, filter)
	if !ok {
		fmt.Fprintln(out, "no hit")
		return nil
	}
	printHit(out, hit)
	return nil
}

func (o *castOptions) ray() (spatial.Ray, error) {
	origin, err := vectorFlag("origin", o.origin)
	if err != nil {
		return spatial.Ray{}, err
	}
	direction, err := vectorFlag("direction", o.direction)
	if err != nil {
		return spatial.Ray{}, err
	}
	ray, err := spatial.NewRay(origin, direction).Normalize()
	if err != nil {
		return spatial.Ray{}, fmt.Errorf("--direction: %w", err)
	}
	return ray, nil
}

func vectorFlag(name string, v []float64) (spatial.Vector3, error) {
	if len(v) != 3 {
		return spatial.Vector3{}, fmt.Errorf("--%s needs 3 comma separated values, got %d", name, len(v))
	}
	return spatial.NewVector3(v[0], v[1], v[2]), nil
}

func printHit(w io.Writer, hit raycast.RayCollision[physics.Body]) {
	fmt.Fprintf(w, "%s (%s) id=%s t_in=%g t_out=%g normal=%v pos_in=%v pos_out=%v\n",
		hit.Hit.Name, hit.Hit.Shape.Kind(), hit.Hit.ID,
		hit.TIn, hit.TOut, hit.Normal, hit.PosIn(), hit.PosOut())
}
