package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "gnatsgo",
	Short: "Convert the gNATSGO soils database to cloud-native formats",
	Long: `Converts the gNATSGO and gSSURGO file geodatabases into parquet datasets,
tiles the mukey rasters into cloud-optimized GeoTIFFs, derives value-added
rasters from the valu1 table, and describes the results as STAC.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
