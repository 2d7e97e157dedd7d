package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInspectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List the bodies of the scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			world, err := root.loadWorld(cmd)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tTAGS\tTRANSLATION\tROTATION\tID")
			for b := range world.Bodies() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%v\t%s\n",
					b.Name, b.Shape.Kind(), strings.Join(b.Tags, ","),
					b.Transform.Translation, b.Transform.Rotation, b.ID)
			}
			if err = tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d bodies\n", world.Len())
			return nil
		},
	}
}
