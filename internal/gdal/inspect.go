package gdal

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/stac"
)

// Inspect implements stac.RasterInfo.
func (d *Driver) Inspect(path string) (stac.RasterMeta, error) {
	ds, err := openRaster(path)
	if err != nil {
		return stac.RasterMeta{}, err
	}
	defer ds.Close() //nolint:errcheck

	gt, err := ds.GeoTransform()
	if err != nil {
		return stac.RasterMeta{}, eris.Wrapf(err, "gdal: geotransform of %s", path)
	}
	st := ds.Structure()
	m := stac.RasterMeta{
		GeoTransform: gt,
		Width:        st.SizeX,
		Height:       st.SizeY,
		Bounds:       nativeBounds(gt, st.SizeX, st.SizeY),
	}

	proj := ds.Projection()
	c, err := describeCRS(proj)
	if err != nil {
		return stac.RasterMeta{}, eris.Wrapf(err, "gdal: CRS of %s", path)
	}
	m.EPSG, m.WKT2 = c.EPSG, c.WKT2
	if m.Bounds4326, err = toWGS84(proj, m.Bounds); err != nil {
		return stac.RasterMeta{}, eris.Wrapf(err, "gdal: bounds of %s", path)
	}

	for _, b := range ds.Bands() {
		info := stac.BandInfo{
			DataType:    dataTypeName(b.Structure().DataType),
			Description: b.Description(),
		}
		if nd, ok := b.NoData(); ok {
			info.NoData = &nd
		}
		m.Bands = append(m.Bands, info)
	}
	return m, nil
}
