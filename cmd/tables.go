package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/gnatsgo/internal/ssurgo"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables to-parquet converts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tables := ssurgo.Tables
		if p, _ := cmd.Flags().GetBool("partitioned"); p {
			tables = ssurgo.PartitionedTables()
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TABLE\tPARTITIONED\tSSURGO ONLY\tGEOMETRY")
		for _, t := range tables {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, yesNo(t.Partition), yesNo(t.SSURGOOnly), yesNo(t.HasGeometry))
		}
		return w.Flush()
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	tablesCmd.Flags().Bool("partitioned", false, "only list tables split by region")
	rootCmd.AddCommand(tablesCmd)
}
