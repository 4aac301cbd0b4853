package raster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/region"
)

// ConusBase is the tile id prefix of the CONUS mosaic.
const ConusBase = "conus"

// Produced is a tile written to disk.
type Produced struct {
	ID   string
	Base string
	Path string
	Tile Tile
}

// Tiler cuts rasters into tiles of a fixed size.
type Tiler struct {
	driver Driver
	size   float64
	log    *zap.Logger
}

// NewTiler returns a Tiler with grid step size.
func NewTiler(driver Driver, size float64) *Tiler {
	return &Tiler{
		driver: driver,
		size:   size,
		log:    zap.L().With(zap.String("component", "raster.tiler")),
	}
}

// TilePath returns the output path of a tile id under outDir.
func TilePath(outDir, id string) string {
	return filepath.Join(outDir, id, fmt.Sprintf("mukey_%s.tif", id))
}

// TileImage grids the raster at path and extracts every tile holding at
// least one pixel that is not nodata.
func (t *Tiler) TileImage(ctx context.Context, path, outDir, base string) ([]Produced, error) {
	if t.size <= 0 {
		return nil, eris.Errorf("raster: tile size must be positive, got %v", t.size)
	}

	src, err := t.driver.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "raster: open %s", path)
	}
	defer src.Close() //nolint:errcheck

	bounds, err := src.Bounds()
	if err != nil {
		return nil, eris.Wrapf(err, "raster: bounds of %s", path)
	}

	log := t.log.With(zap.String("source", path), zap.String("base", base))
	tiles := CreateTiles(bounds, t.size)
	log.Info("tiling raster", zap.Int("tiles", len(tiles)))

	var out []Produced
	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return out, eris.Wrap(err, "raster: tiling cancelled")
		}

		id := tile.ID(base)
		win, err := src.ReadWindow(tile)
		if err != nil {
			return out, eris.Wrapf(err, "raster: read window %s", id)
		}
		if win.Empty() {
			log.Warn("no data, skipping tile", zap.String("tile", id))
			continue
		}

		dst := TilePath(outDir, id)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return out, eris.Wrapf(err, "raster: create %s", filepath.Dir(dst))
		}
		if err := src.Extract(dst, tile); err != nil {
			return out, eris.Wrapf(err, "raster: extract %s", id)
		}
		out = append(out, Produced{ID: id, Base: base, Path: dst, Tile: tile})
	}
	log.Info("raster tiled", zap.Int("written", len(out)))
	return out, nil
}

// Tile grids every region raster under inDir. Non-CONUS rasters are tiled
// one at a time under their lower-case region code; CONUS rasters are
// mosaicked into a temporary virtual raster and tiled as "conus".
func (t *Tiler) Tile(ctx context.Context, inDir, outDir string) ([]Produced, error) {
	set := region.RasterFiles(inDir)

	var out []Produced
	for _, f := range set.NonCONUS {
		t.log.Info("tiling region", zap.String("region", f.Region), zap.String("product", string(f.Product)))
		produced, err := t.TileImage(ctx, f.Path, outDir, strings.ToLower(f.Region))
		out = append(out, produced...)
		if err != nil {
			return out, err
		}
	}

	tmp, err := os.MkdirTemp("", "gnatsgo-vrt-")
	if err != nil {
		return out, eris.Wrap(err, "raster: temp dir")
	}
	defer os.RemoveAll(tmp) //nolint:errcheck

	vrt := filepath.Join(tmp, "mukey.vrt")
	if err := t.driver.Mosaic(vrt, set.CONUS); err != nil {
		return out, eris.Wrap(err, "raster: build CONUS mosaic")
	}
	produced, err := t.TileImage(ctx, vrt, outDir, ConusBase)
	out = append(out, produced...)
	return out, err
}
