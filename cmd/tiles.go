package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/gnatsgo/internal/raster"
)

var tilesCmd = &cobra.Command{
	Use:   "tiles INDEX",
	Short: "List the tiles recorded in a tile index shapefile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := raster.ReadIndex(args[0])
		if err != nil {
			return eris.Wrap(err, "tiles")
		}
		base, _ := cmd.Flags().GetString("base")

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TILE\tBASE\tLEFT\tBOTTOM\tRIGHT\tTOP\tPATH")
		for _, e := range entries {
			if base != "" && e.Base != base {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%s\n",
				e.ID, e.Base, e.Tile.Left, e.Tile.Bottom, e.Tile.Right, e.Tile.Top, e.Path)
		}
		return w.Flush()
	},
}

func init() {
	tilesCmd.Flags().String("base", "", "only list tiles of this base raster (e.g. ak, conus)")
	rootCmd.AddCommand(tilesCmd)
}
