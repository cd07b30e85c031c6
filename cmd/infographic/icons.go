package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"infographic/internal/icon"
)

func newIconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "List the icon tags the renderer understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TAG\tSYMBOL")
			for _, tag := range icon.Tags() {
				fmt.Fprintf(tw, "%s\t%s\n", tag, icon.Resolve(tag))
			}
			fmt.Fprintf(tw, "(other)\t%s\n", icon.Default)
			return tw.Flush()
		},
	}
}
