package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/convert"
	"github.com/sells-group/gnatsgo/internal/gdal"
)

var toParquetCmd = &cobra.Command{
	Use:   "to-parquet IN OUT [TABLES...]",
	Short: "Convert geodatabase tables to parquet datasets",
	Long: `Reads every regional gNATSGO/gSSURGO geodatabase in IN and writes one parquet
dataset per table to OUT. Tables marked as partitioned are split by region
into OUT/{table}.parquet/region={code}/. With no TABLES the whole catalog is
converted. OUT may be an s3:// prefix.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("parquet"); err != nil {
			return err
		}
		in, out, tables := args[0], args[1], args[2:]
		if err := requireLocal(in, "IN"); err != nil {
			return err
		}

		log := zap.L().With(zap.String("command", "to-parquet"))

		store := newStore()
		local, publish, err := stage(store, out)
		if err != nil {
			return err
		}

		results, err := convert.ToParquet(ctx, gdal.NewOpener(), in, local, tables)
		if err != nil {
			return eris.Wrap(err, "to-parquet")
		}
		if err := publish(ctx); err != nil {
			return eris.Wrap(err, "to-parquet: publish")
		}

		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", r.Dataset, r.Rows)
		}
		log.Info("conversion complete", zap.Int("tables", len(results)), zap.String("out", out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toParquetCmd)
}
