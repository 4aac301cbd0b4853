package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/gdal"
	"github.com/sells-group/gnatsgo/internal/raster"
)

var tileCmd = &cobra.Command{
	Use:   "tile IN OUT",
	Short: "Cut the mukey rasters into COG tiles",
	Long: `Tiles every non-CONUS mukey raster in IN on its own grid, then mosaics the CONUS
state rasters and tiles the mosaic. Tiles that are entirely nodata are
skipped. Each tile is written to OUT/{id}/mukey_{id}.tif and a shapefile
index of the tile footprints is written to OUT unless --index is empty.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cmd.Flags().Changed("size") {
			cfg.Tile.Size, _ = cmd.Flags().GetFloat64("size")
		}
		if cmd.Flags().Changed("index") {
			cfg.Tile.Index, _ = cmd.Flags().GetString("index")
		}
		if err := cfg.Validate("tile"); err != nil {
			return err
		}

		in, out := args[0], args[1]
		if err := requireLocal(in, "IN"); err != nil {
			return err
		}

		log := zap.L().With(zap.String("command", "tile"))

		store := newStore()
		local, publish, err := stage(store, out)
		if err != nil {
			return err
		}

		tiles, err := raster.NewTiler(gdal.NewDriver(), cfg.Tile.Size).Tile(ctx, in, local)
		if err != nil {
			return eris.Wrap(err, "tile")
		}

		if cfg.Tile.Index != "" {
			index := filepath.Join(local, cfg.Tile.Index+".shp")
			if err := raster.WriteIndex(index, tiles); err != nil {
				return eris.Wrap(err, "tile: write index")
			}
		}

		if err := publish(ctx); err != nil {
			return eris.Wrap(err, "tile: publish")
		}

		for _, t := range tiles {
			fmt.Fprintln(cmd.OutOrStdout(), t.Path)
		}
		log.Info("tiling complete", zap.Int("tiles", len(tiles)), zap.Float64("size", cfg.Tile.Size))
		return nil
	},
}

func init() {
	tileCmd.Flags().Float64("size", 0, "tile edge length in raster units (default from config)")
	tileCmd.Flags().String("index", "", "tile index shapefile name without extension, empty to skip")
	rootCmd.AddCommand(tileCmd)
}
