package stac

import (
	"path"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/parquet"
	"github.com/sells-group/gnatsgo/internal/region"
	"github.com/sells-group/gnatsgo/internal/schema"
	"github.com/sells-group/gnatsgo/internal/ssurgo"
)

// BandInfo describes one raster band.
type BandInfo struct {
	NoData      *float64
	DataType    string
	Description string
}

// RasterMeta is what a tile item needs to know about a raster.
type RasterMeta struct {
	// EPSG is zero when the CRS has no EPSG code.
	EPSG int
	WKT2 string
	// GeoTransform is in GDAL order.
	GeoTransform  [6]float64
	Width, Height int
	// Bounds in the native CRS and in EPSG:4326, as minx, miny, maxx, maxy.
	Bounds     [4]float64
	Bounds4326 [4]float64
	Bands      []BandInfo
}

// RasterInfo inspects rasters.
type RasterInfo interface {
	Inspect(path string) (RasterMeta, error)
}

// ItemOptions configures CreateItem.
type ItemOptions struct {
	Info RasterInfo
	// Localize maps an asset href to a path that can be read. Nil reads
	// hrefs as given.
	Localize func(href string) (string, error)
}

func (o ItemOptions) local(href string) (string, error) {
	if o.Localize == nil {
		return href, nil
	}
	return o.Localize(href)
}

// CreateItem builds an item from a single parquet table or from the rasters
// of one tile. The asset hrefs are recorded as given.
func CreateItem(hrefs []string, opts ItemOptions) (*Item, error) {
	if len(hrefs) == 0 {
		return nil, eris.New("stac: no asset hrefs")
	}

	base := path.Base(strings.TrimSuffix(hrefs[0], "/"))
	ext := path.Ext(base)
	id := strings.TrimSuffix(base, ext)

	var (
		it  *Item
		err error
	)
	if ext == ".parquet" {
		if len(hrefs) > 1 {
			return nil, eris.New("stac: item should contain only one parquet table")
		}
		it, err = parquetItem(id, hrefs[0], opts)
	} else {
		_, tileID, ok := strings.Cut(id, "_")
		if !ok {
			return nil, eris.Errorf("stac: %s does not name a tile", base)
		}
		it, err = tileItem(tileID, hrefs, opts)
	}
	if err != nil {
		return nil, err
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

func parquetItem(id, href string, opts ItemOptions) (*Item, error) {
	local, err := opts.local(href)
	if err != nil {
		return nil, eris.Wrapf(err, "stac: localize %s", href)
	}
	sch, err := parquet.ReadSchema(local)
	if err != nil {
		return nil, eris.Wrapf(err, "stac: schema of %s", href)
	}

	var cols []Column
	for _, f := range sch.Fields() {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		c := Column{Name: f.Name, Type: f.Type.String()}
		if d, ok := f.Metadata.GetValue(schema.MetaDescription); ok {
			c.Description = d
		}
		cols = append(cols, c)
	}

	bbox := region.OverallBBox()
	geometry, err := box(bbox)
	if err != nil {
		return nil, err
	}

	return &Item{
		Type:        "Feature",
		StacVersion: Version,
		Extensions:  []string{TableExtension},
		ID:          id,
		Geometry:    geometry,
		BBox:        bbox[:],
		Properties: map[string]any{
			"datetime":      ssurgo.Datetime,
			"table:columns": cols,
		},
		Links: []Link{},
		Assets: map[string]*Asset{
			"data": {
				Href:  href,
				Type:  MediaTypeParquet,
				Title: "Dataset root",
				Roles: []string{"data"},
			},
		},
	}, nil
}

func tileItem(id string, hrefs []string, opts ItemOptions) (*Item, error) {
	if opts.Info == nil {
		return nil, eris.New("stac: raster inspection is required for tile items")
	}

	metas := make([]RasterMeta, len(hrefs))
	for i, href := range hrefs {
		local, err := opts.local(href)
		if err != nil {
			return nil, eris.Wrapf(err, "stac: localize %s", href)
		}
		if metas[i], err = opts.Info.Inspect(local); err != nil {
			return nil, eris.Wrapf(err, "stac: inspect %s", href)
		}
	}

	first := metas[0]
	geometry, err := box(first.Bounds4326)
	if err != nil {
		return nil, err
	}
	native, err := box(first.Bounds)
	if err != nil {
		return nil, err
	}

	gt := first.GeoTransform
	props := map[string]any{
		"datetime":       ssurgo.Datetime,
		"proj:wkt2":      first.WKT2,
		"proj:transform": []float64{gt[1], gt[2], gt[0], gt[4], gt[5], gt[3]},
		"proj:shape":     []int{first.Height, first.Width},
		"proj:geometry":  native,
		"proj:bbox":      first.Bounds[:],
	}
	if first.EPSG != 0 {
		props["proj:epsg"] = first.EPSG
	} else {
		props["proj:epsg"] = nil
	}

	it := &Item{
		Type:        "Feature",
		StacVersion: Version,
		Extensions:  []string{ProjectionExtension, RasterExtension},
		ID:          id,
		Geometry:    geometry,
		BBox:        first.Bounds4326[:],
		Properties:  props,
		Links:       Links(),
		Assets:      make(map[string]*Asset, len(hrefs)),
	}

	for i, href := range hrefs {
		name := path.Base(href)
		if q := strings.IndexByte(name, '?'); q >= 0 {
			name = name[:q]
		}
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, eris.Errorf("stac: %s has no asset prefix", name)
		}
		key := strings.ReplaceAll(prefix, "-", "_")

		a := &Asset{
			Href:  href,
			Type:  MediaTypeCOG,
			Title: key,
			Roles: []string{"data"},
		}
		var band BandInfo
		if len(metas[i].Bands) > 0 {
			band = metas[i].Bands[0]
		}
		if key == "mukey" {
			a.Description = MukeyDescription
		} else {
			a.Description = band.Description
		}
		a.Bands = []RasterBand{{
			NoData:            band.NoData,
			DataType:          band.DataType,
			SpatialResolution: SpatialResolution,
		}}
		it.Assets[key] = a
	}
	return it, nil
}

// Validate checks the fields STAC requires of an item.
func (it *Item) Validate() error {
	switch {
	case it.ID == "":
		return eris.New("stac: item id is required")
	case it.Geometry == nil:
		return eris.Errorf("stac: item %s has no geometry", it.ID)
	case len(it.BBox) != 4:
		return eris.Errorf("stac: item %s bbox must have 4 values", it.ID)
	case it.Properties["datetime"] == nil:
		return eris.Errorf("stac: item %s has no datetime", it.ID)
	}
	for k, a := range it.Assets {
		if a.Href == "" {
			return eris.Errorf("stac: item %s asset %s has no href", it.ID, k)
		}
	}
	return nil
}
