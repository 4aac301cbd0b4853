package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/derive"
	"github.com/sells-group/gnatsgo/internal/gdal"
	"github.com/sells-group/gnatsgo/internal/storage"
)

var derivedCmd = &cobra.Command{
	Use:     "create-derived-rasters VALU1 MUKEY_FILES...",
	Aliases: []string{"create-value-ad-rasters"},
	Short:   "Create value-added rasters from mukey tiles",
	Long: `Maps each mukey tile through the valu1 table and writes one COG per valu1
column named {column}_{tile}.tif, with underscores in the column name replaced
by hyphens. Columns that would be entirely nodata are skipped. Output goes
beside each mukey file unless --destination is set. A remote VALU1 must name
the data file itself, e.g. s3://bucket/tables/valu1.parquet/part.0.parquet.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("derive"); err != nil {
			return err
		}
		dest, _ := cmd.Flags().GetString("destination")
		if dest == "" {
			dest = cfg.Derive.Destination
		}
		if dest == "" {
			for _, f := range args[1:] {
				if storage.IsRemote(f) {
					return eris.Errorf("--destination is required for remote mukey file %s", f)
				}
			}
		}

		log := zap.L().With(zap.String("command", "create-derived-rasters"))
		store := newStore()

		valu1 := args[0]
		cache, err := stagingDir()
		if err != nil {
			return err
		}
		defer os.RemoveAll(cache) //nolint:errcheck
		if valu1, err = store.Localizer(ctx, cache)(valu1); err != nil {
			return eris.Wrap(err, "create-derived-rasters: fetch valu1")
		}

		lookup, err := derive.LoadLookup(ctx, valu1)
		if err != nil {
			return err
		}

		local, publish, err := stage(store, dest)
		if err != nil {
			return err
		}

		written, err := derive.NewDeriver(gdal.NewDriver(), lookup).Derive(ctx, args[1:], local)
		if err != nil {
			return eris.Wrap(err, "create-derived-rasters")
		}
		if err := publish(ctx); err != nil {
			return eris.Wrap(err, "create-derived-rasters: publish")
		}

		for _, p := range written {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		log.Info("derived rasters written", zap.Int("rasters", len(written)))
		return nil
	},
}

func init() {
	derivedCmd.Flags().String("destination", "", "directory or s3:// prefix for the derived rasters")
	rootCmd.AddCommand(derivedCmd)
}
