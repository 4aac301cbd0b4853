package main

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/gdal"
	"github.com/sells-group/gnatsgo/internal/parquet"
	"github.com/sells-group/gnatsgo/internal/stac"
	"github.com/sells-group/gnatsgo/internal/storage"
)

var collectionCmd = &cobra.Command{
	Use:   "create-collection DEST PARQUET_DIR",
	Short: "Create the STAC Collection",
	Long: `Writes the gNATSGO STAC Collection JSON to DEST. PARQUET_DIR holds the
to-parquet output; each table's description is read from its
_common_metadata file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("stac"); err != nil {
			return err
		}
		dest, dir := args[0], args[1]
		if err := requireLocal(dir, "PARQUET_DIR"); err != nil {
			return err
		}

		c, err := stac.CreateCollection(dir)
		if err != nil {
			return eris.Wrap(err, "create-collection")
		}
		c.SetSelfHref(dest)
		return save(cmd.Context(), c, dest)
	},
}

var itemCmd = &cobra.Command{
	Use:   "create-item DEST SOURCES...",
	Short: "Create a STAC Item",
	Long: `Writes a STAC Item JSON to DEST. SOURCES is either a single parquet dataset,
which yields a table item, or the rasters of one tile (mukey and derived),
which yield a tile item keyed by the tile id. Sources may be s3:// or https://
hrefs; the hrefs are recorded as given.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("stac"); err != nil {
			return err
		}
		ctx := cmd.Context()
		dest, sources := args[0], args[1:]

		cache, err := stagingDir()
		if err != nil {
			return err
		}
		defer os.RemoveAll(cache) //nolint:errcheck

		it, err := stac.CreateItem(sources, stac.ItemOptions{
			Info:     gdal.NewDriver(),
			Localize: localizeSchema(ctx, newStore(), cache),
		})
		if err != nil {
			return eris.Wrap(err, "create-item")
		}
		it.SetSelfHref(dest)
		return save(ctx, it, dest)
	},
}

// localizeSchema fetches the _common_metadata of remote parquet datasets.
// Rasters are left to GDAL's virtual file systems.
func localizeSchema(ctx context.Context, store *storage.Store, cache string) func(string) (string, error) {
	fetch := store.Localizer(ctx, cache)
	return func(href string) (string, error) {
		if !storage.IsRemote(href) || path.Ext(strings.TrimSuffix(href, "/")) != ".parquet" {
			return href, nil
		}
		return fetch(strings.TrimSuffix(href, "/") + "/" + parquet.CommonMetadata)
	}
}

func save(ctx context.Context, obj any, dest string) error {
	local, publish, err := stageFile(newStore(), dest)
	if err != nil {
		return err
	}
	if err := stac.Save(obj, local); err != nil {
		return err
	}
	if err := publish(ctx); err != nil {
		return eris.Wrapf(err, "publish %s", dest)
	}
	zap.L().Info("stac written", zap.String("dest", dest))
	return nil
}

func init() {
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(itemCmd)
}
