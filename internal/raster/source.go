package raster

import (
	"math"

	"github.com/twpayne/go-geom"
)

// Window holds the band 1 pixels of a tile window.
type Window struct {
	Values    []float64
	NoData    float64
	HasNoData bool
}

// Empty reports whether every pixel equals nodata. A window with no pixels
// is empty; otherwise a raster without nodata never is.
func (w Window) Empty() bool {
	if len(w.Values) == 0 {
		return true
	}
	if !w.HasNoData {
		return false
	}
	nan := math.IsNaN(w.NoData)
	for _, v := range w.Values {
		if nan {
			if !math.IsNaN(v) {
				return false
			}
			continue
		}
		if v != w.NoData {
			return false
		}
	}
	return true
}

// Source is an open raster.
type Source interface {
	// Bounds is the raster extent in its native projection.
	Bounds() (*geom.Bounds, error)
	// ReadWindow reads band 1 inside t.
	ReadWindow(t Tile) (Window, error)
	// Extract writes t as a cloud-optimized GeoTIFF at dst using nearest
	// neighbour resampling.
	Extract(dst string, t Tile) error
	Close() error
}

// Driver opens rasters and builds mosaics.
type Driver interface {
	Open(path string) (Source, error)
	// Mosaic writes a virtual raster at dst covering every path.
	Mosaic(dst string, paths []string) error
}
