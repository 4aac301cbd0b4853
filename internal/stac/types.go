// Package stac builds the STAC Collection and Items describing the parquet
// tables and raster tiles.
package stac

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Version is the STAC version written.
const Version = "1.0.0"

// Extension schema URIs.
const (
	TableExtension      = "https://stac-extensions.github.io/table/v1.2.0/schema.json"
	ProjectionExtension = "https://stac-extensions.github.io/projection/v1.0.0/schema.json"
	RasterExtension     = "https://stac-extensions.github.io/raster/v1.1.0/schema.json"
)

// Media types.
const (
	MediaTypeCOG     = "image/tiff; application=geotiff; profile=cloud-optimized"
	MediaTypeParquet = "application/x-parquet"
	MediaTypeJSON    = "application/json"
)

// Link is a STAC link object.
type Link struct {
	Rel         string `json:"rel"`
	Href        string `json:"href"`
	Type        string `json:"type,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Provider is a STAC provider object.
type Provider struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles,omitempty"`
	URL   string   `json:"url,omitempty"`
}

// Extent is a collection extent.
type Extent struct {
	Spatial  SpatialExtent  `json:"spatial"`
	Temporal TemporalExtent `json:"temporal"`
}

// SpatialExtent lists bounding boxes.
type SpatialExtent struct {
	BBox [][]float64 `json:"bbox"`
}

// TemporalExtent lists intervals; nil ends are open.
type TemporalExtent struct {
	Interval [][]*time.Time `json:"interval"`
}

// TableInfo is one table:tables entry.
type TableInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Column is one table:columns entry.
type Column struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Collection is a STAC Collection.
type Collection struct {
	Type        string      `json:"type"`
	StacVersion string      `json:"stac_version"`
	Extensions  []string    `json:"stac_extensions"`
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Keywords    []string    `json:"keywords"`
	License     string      `json:"license"`
	Providers   []Provider  `json:"providers"`
	Extent      Extent      `json:"extent"`
	Tables      []TableInfo `json:"table:tables,omitempty"`
	Links       []Link      `json:"links"`
}

// SetSelfHref replaces the self link.
func (c *Collection) SetSelfHref(href string) { c.Links = setSelf(c.Links, href) }

// RasterBand is a raster:bands entry.
type RasterBand struct {
	NoData            *float64 `json:"nodata,omitempty"`
	DataType          string   `json:"data_type,omitempty"`
	SpatialResolution float64  `json:"spatial_resolution,omitempty"`
}

// Asset is a STAC asset.
type Asset struct {
	Href        string       `json:"href"`
	Type        string       `json:"type,omitempty"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Roles       []string     `json:"roles,omitempty"`
	Bands       []RasterBand `json:"raster:bands,omitempty"`
}

// Item is a STAC Item.
type Item struct {
	Type        string            `json:"type"`
	StacVersion string            `json:"stac_version"`
	Extensions  []string          `json:"stac_extensions"`
	ID          string            `json:"id"`
	Geometry    *geojson.Geometry `json:"geometry"`
	BBox        []float64         `json:"bbox"`
	Properties  map[string]any    `json:"properties"`
	Links       []Link            `json:"links"`
	Assets      map[string]*Asset `json:"assets"`
}

// SetSelfHref replaces the self link.
func (it *Item) SetSelfHref(href string) { it.Links = setSelf(it.Links, href) }

func setSelf(links []Link, href string) []Link {
	out := make([]Link, 0, len(links)+1)
	for _, l := range links {
		if l.Rel != "self" {
			out = append(out, l)
		}
	}
	return append(out, Link{Rel: "self", Href: href, Type: MediaTypeJSON})
}

// Save writes obj as indented JSON at path, creating parent directories.
func Save(obj any, path string) error {
	b, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return eris.Wrap(err, "stac: marshal")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "stac: create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return eris.Wrapf(err, "stac: write %s", path)
	}
	return nil
}

// box returns bbox as a counter-clockwise GeoJSON polygon.
func box(bbox [4]float64) (*geojson.Geometry, error) {
	minx, miny, maxx, maxy := bbox[0], bbox[1], bbox[2], bbox[3]
	p := geom.NewPolygonFlat(geom.XY, []float64{
		maxx, miny,
		maxx, maxy,
		minx, maxy,
		minx, miny,
		maxx, miny,
	}, []int{10})
	g, err := geojson.Encode(p)
	if err != nil {
		return nil, eris.Wrap(err, "stac: encode geometry")
	}
	return g, nil
}
