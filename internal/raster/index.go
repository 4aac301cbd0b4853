package raster

import (
	"os"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// Index attribute columns, in dbf order.
var indexFields = []shp.Field{
	shp.StringField("tile_id", 80),
	shp.StringField("base", 16),
	shp.FloatField("left", 24, 4),
	shp.FloatField("bottom", 24, 4),
	shp.FloatField("right", 24, 4),
	shp.FloatField("top", 24, 4),
	shp.StringField("path", 254),
}

// IndexEntry is one tile index record.
type IndexEntry struct {
	ID        string
	Base      string
	Path      string
	Tile      Tile
	Footprint *geom.Polygon
}

// WriteIndex writes a polygon shapefile with one footprint per produced
// tile. path names the .shp file; the .shx and .dbf sit beside it.
func WriteIndex(path string, tiles []Produced) error {
	base := strings.TrimSuffix(path, ".shp")

	w, err := shp.Create(base+".shp", shp.POLYGON)
	if err != nil {
		return eris.Wrapf(err, "raster: create index %s", path)
	}
	if err := w.SetFields(indexFields); err != nil {
		w.Close()
		return eris.Wrap(err, "raster: index fields")
	}

	for _, p := range tiles {
		row := int(w.Write(footprint(p.Tile)))
		attrs := []any{
			p.ID, p.Base,
			p.Tile.Left, p.Tile.Bottom, p.Tile.Right, p.Tile.Top,
			p.Path,
		}
		for i, v := range attrs {
			if err := w.WriteAttribute(row, i, v); err != nil {
				w.Close()
				return eris.Wrapf(err, "raster: index attribute %s of %s", indexFields[i].String(), p.ID)
			}
		}
	}
	w.Close()

	// go-shp names the attribute file "{base}dbf".
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return eris.Wrap(err, "raster: rename index dbf")
	}
	zap.L().Info("tile index written", zap.String("component", "raster.index"), zap.String("path", base+".shp"), zap.Int("tiles", len(tiles)))
	return nil
}

// footprint converts a tile into a single-ring shapefile polygon. The ring
// is clockwise as the format requires for outer rings.
func footprint(t Tile) *shp.Polygon {
	ring := t.Polygon().LinearRing(0)
	pts := make([]shp.Point, 0, ring.NumCoords())
	for i := 0; i < ring.NumCoords(); i++ {
		c := ring.Coord(i)
		pts = append(pts, shp.Point{X: c.X(), Y: c.Y()})
	}
	poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{pts}))
	return &poly
}

// ReadIndex reads a tile index written by WriteIndex.
func ReadIndex(path string) ([]IndexEntry, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "raster: open index %s", path)
	}
	defer func() { _ = r.Close() }()

	idx := make(map[string]int)
	for i, f := range r.Fields() {
		idx[strings.ToLower(strings.TrimRight(f.String(), "\x00"))] = i
	}
	for _, f := range indexFields {
		if _, ok := idx[f.String()]; !ok {
			return nil, eris.Errorf("raster: index %s lacks field %s", path, f.String())
		}
	}

	attr := func(name string) string {
		return strings.TrimSpace(strings.TrimRight(r.Attribute(idx[name]), "\x00"))
	}
	num := func(name string) (float64, error) {
		v, err := strconv.ParseFloat(attr(name), 64)
		if err != nil {
			return 0, eris.Wrapf(err, "raster: index field %s", name)
		}
		return v, nil
	}

	var out []IndexEntry
	for r.Next() {
		_, shape := r.Shape()
		e := IndexEntry{ID: attr("tile_id"), Base: attr("base"), Path: attr("path")}

		var corners [4]float64
		for i, name := range []string{"left", "bottom", "right", "top"} {
			v, err := num(name)
			if err != nil {
				return nil, err
			}
			corners[i] = v
		}
		e.Tile = Tile{Left: corners[0], Bottom: corners[1], Right: corners[2], Top: corners[3]}

		if p, ok := shape.(*shp.Polygon); ok {
			e.Footprint = polygonFromShape(p)
		}
		out = append(out, e)
	}
	if err := r.Err(); err != nil {
		return nil, eris.Wrapf(err, "raster: read index %s", path)
	}
	return out, nil
}

// polygonFromShape converts the first ring of a shapefile polygon.
func polygonFromShape(p *shp.Polygon) *geom.Polygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}
	end := int32(len(p.Points))
	if p.NumParts > 1 {
		end = p.Parts[1]
	}
	flat := make([]float64, 0, 2*(end-p.Parts[0]))
	for j := p.Parts[0]; j < end; j++ {
		flat = append(flat, p.Points[j].X, p.Points[j].Y)
	}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}
