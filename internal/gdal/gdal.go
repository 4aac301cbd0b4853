// Package gdal implements the geodatabase, raster and STAC inspection
// contracts on top of GDAL.
package gdal

import (
	"strings"
	"sync"

	"github.com/airbusgeo/godal"
)

var registerOnce sync.Once

func register() {
	registerOnce.Do(godal.RegisterAll)
}

// vsiPath maps remote hrefs onto GDAL virtual file systems.
func vsiPath(href string) string {
	switch {
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return "/vsicurl/" + href
	case strings.HasPrefix(href, "s3://"):
		return "/vsis3/" + strings.TrimPrefix(href, "s3://")
	default:
		return href
	}
}

// nativeBounds returns minx, miny, maxx, maxy of a north-up raster.
func nativeBounds(gt [6]float64, width, height int) [4]float64 {
	x0, y0 := gt[0], gt[3]
	x1 := gt[0] + gt[1]*float64(width) + gt[2]*float64(height)
	y1 := gt[3] + gt[4]*float64(width) + gt[5]*float64(height)
	return [4]float64{min(x0, x1), min(y0, y1), max(x0, x1), max(y0, y1)}
}

var dataTypes = map[godal.DataType]string{
	godal.Byte:    "uint8",
	godal.UInt16:  "uint16",
	godal.Int16:   "int16",
	godal.UInt32:  "uint32",
	godal.Int32:   "int32",
	godal.Float32: "float32",
	godal.Float64: "float64",
}

func dataTypeName(dt godal.DataType) string {
	if s, ok := dataTypes[dt]; ok {
		return s
	}
	return "other"
}
