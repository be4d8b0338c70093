package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDepartmentsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "List departments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			departments, err := opts.client().ListDepartments(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, d := range departments {
				fmt.Fprintf(w, "%s\t%s\n", d.ID, d.Name)
			}
			return w.Flush()
		},
	}
}
