// Package raster cuts region mukey rasters into a fixed grid of
// cloud-optimized GeoTIFF tiles.
package raster

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
)

// Tile is one grid cell in the raster's projected coordinates.
type Tile struct {
	Left, Bottom, Right, Top float64
}

// Bounds returns the tile extent.
func (t Tile) Bounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(t.Left, t.Bottom, t.Right, t.Top)
}

// Polygon returns the tile footprint as a closed ring.
func (t Tile) Polygon() *geom.Polygon {
	return t.Bounds().Polygon()
}

// ID names the tile from a base identifier and its corners, each truncated
// toward zero: {base}_{left}_{top}_{right}_{bottom}.
func (t Tile) ID(base string) string {
	return fmt.Sprintf("%s_%d_%d_%d_%d", base, trunc(t.Left), trunc(t.Top), trunc(t.Right), trunc(t.Bottom))
}

func trunc(v float64) int64 { return int64(math.Trunc(v)) }

// CreateTiles walks a grid of step size over b starting at its lower left
// corner: columns from left to right, and within a column cells from bottom
// to top. Cells on the last row and column are clipped to b.
func CreateTiles(b *geom.Bounds, size float64) []Tile {
	if size <= 0 || b.IsEmpty() {
		return nil
	}
	left, bottom := b.Min(0), b.Min(1)
	right, top := b.Max(0), b.Max(1)

	var tiles []Tile
	for x := left; x < right; x += size {
		for y := bottom; y < top; y += size {
			tiles = append(tiles, Tile{
				Left:   x,
				Bottom: y,
				Right:  math.Min(x+size, right),
				Top:    math.Min(y+size, top),
			})
		}
	}
	return tiles
}
