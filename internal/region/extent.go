package region

import (
	"github.com/twpayne/go-geom"
)

// Extent is a region's bounding box in EPSG:4326 (west, south, east, north).
type Extent struct {
	Region string
	BBox   [4]float64
}

// Extents lists the published extent of every product area. The AK box
// crosses the antimeridian, so its west edge is greater than its east edge.
var Extents = []Extent{
	{"AS", [4]float64{-170.8513, -14.3799, -169.4152, -14.1432}},
	{"FM", [4]float64{138.0315, 5.1160, 163.1902, 10.2773}},
	{"GU", [4]float64{144.6126, 13.2327, 144.9658, 13.6572}},
	{"HI", [4]float64{-159.7909, 18.8994, -154.7815, 22.2464}},
	{"MH", [4]float64{170.9690, 6.0723, 171.9169, 8.71933}},
	{"MP", [4]float64{145.0127, 14.1086, 145.9242, 18.8172}},
	{"PW", [4]float64{130.8048, 2.9268, 134.9834, 8.0947}},
	{"AK", [4]float64{157.3678, 49.0546, -117.2864, 71.4567}},
	{"PRUSVI", [4]float64{-67.9506, 17.0140, -64.3973, 19.3206}},
	{CONUS, [4]float64{-127.8881, 22.8782, -65.2748, 51.6039}},
}

// OverallBBox folds the extents component-wise: the minimum of every west
// and south edge and the maximum of every east and north edge.
func OverallBBox() [4]float64 {
	out := [4]float64{180, 90, -180, -90}
	for _, e := range Extents {
		if e.BBox[0] < out[0] {
			out[0] = e.BBox[0]
		}
		if e.BBox[1] < out[1] {
			out[1] = e.BBox[1]
		}
		if e.BBox[2] > out[2] {
			out[2] = e.BBox[2]
		}
		if e.BBox[3] > out[3] {
			out[3] = e.BBox[3]
		}
	}
	return out
}

// Boxes returns the extent boxes in order, as used by a STAC spatial extent.
func Boxes() [][]float64 {
	out := make([][]float64, 0, len(Extents))
	for _, e := range Extents {
		out = append(out, []float64{e.BBox[0], e.BBox[1], e.BBox[2], e.BBox[3]})
	}
	return out
}

// Bounds converts a bbox to go-geom bounds.
func Bounds(bbox [4]float64) *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(bbox[0], bbox[1], bbox[2], bbox[3])
}
