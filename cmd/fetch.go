package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch OUT",
	Short: "Download and extract the product archives",
	Long: `Downloads {base_url}/{product}_{region}.zip for every archive the selected
regions need and extracts it into OUT, keeping the .gdb directories intact.
Archives already present in OUT are not downloaded again.

By default every region is fetched. Use --regions to restrict to specific
regions (CONUS names the bulk conterminous files).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if u, _ := cmd.Flags().GetString("base-url"); u != "" {
			cfg.Source.BaseURL = u
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Source.Concurrency, _ = cmd.Flags().GetInt("concurrency")
		}
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}

		regions := cfg.Source.Regions
		if s, _ := cmd.Flags().GetString("regions"); s != "" {
			regions = toUpper(splitAndTrim(s))
		}

		log := zap.L().With(zap.String("command", "fetch"))

		paths, err := newStore().FetchProducts(ctx, cfg.Source.BaseURL, args[0], regions, cfg.Source.Concurrency)
		if err != nil {
			return eris.Wrap(err, "fetch")
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		log.Info("fetch complete", zap.Int("archives", len(paths)))
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("regions", "", "comma-separated region codes (default: all)")
	fetchCmd.Flags().String("base-url", "", "archive base URL (default from config)")
	fetchCmd.Flags().Int("concurrency", 0, "parallel downloads (default from config)")
	rootCmd.AddCommand(fetchCmd)
}
