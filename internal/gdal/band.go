package gdal

import (
	"math"

	"github.com/airbusgeo/godal"
	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/derive"
	"github.com/sells-group/gnatsgo/internal/schema"
)

// ReadBand implements derive.RasterIO.
func (d *Driver) ReadBand(path string) (derive.Band, error) {
	ds, err := openRaster(path)
	if err != nil {
		return derive.Band{}, err
	}
	defer ds.Close() //nolint:errcheck

	bands := ds.Bands()
	if len(bands) == 0 {
		return derive.Band{}, eris.Errorf("gdal: %s has no bands", path)
	}
	st := ds.Structure()
	b := derive.Band{Width: st.SizeX, Height: st.SizeY, Values: make([]float64, st.SizeX*st.SizeY)}
	if err := bands[0].Read(0, 0, b.Values, st.SizeX, st.SizeY); err != nil {
		return derive.Band{}, eris.Wrapf(err, "gdal: read %s", path)
	}
	b.NoData, b.HasNoData = bands[0].NoData()
	return b, nil
}

// WriteBand implements derive.RasterIO.
func (d *Driver) WriteBand(dst, template string, kind schema.Kind, b derive.Band, description string) error {
	tpl, err := openRaster(template)
	if err != nil {
		return err
	}
	defer tpl.Close() //nolint:errcheck

	gt, err := tpl.GeoTransform()
	if err != nil {
		return eris.Wrapf(err, "gdal: geotransform of %s", template)
	}

	var (
		dt  godal.DataType
		buf any
	)
	switch kind {
	case schema.Int16:
		dt = godal.Int16
		v := make([]int16, len(b.Values))
		for i, x := range b.Values {
			v[i] = int16(x)
		}
		buf = v
	case schema.Float32:
		dt = godal.Float32
		v := make([]float32, len(b.Values))
		for i, x := range b.Values {
			v[i] = float32(x)
		}
		buf = v
	default:
		return eris.Errorf("gdal: cannot write %s band", kind)
	}

	mem, err := godal.Create(godal.DriverName("MEM"), "", 1, dt, b.Width, b.Height)
	if err != nil {
		return eris.Wrap(err, "gdal: create memory raster")
	}
	defer mem.Close() //nolint:errcheck

	if err := mem.SetGeoTransform(gt); err != nil {
		return eris.Wrap(err, "gdal: set geotransform")
	}
	if err := mem.SetProjection(tpl.Projection()); err != nil {
		return eris.Wrap(err, "gdal: set projection")
	}
	band := mem.Bands()[0]
	if b.HasNoData || math.IsNaN(b.NoData) {
		if err := band.SetNoData(b.NoData); err != nil {
			return eris.Wrap(err, "gdal: set nodata")
		}
	}
	if err := band.SetDescription(description); err != nil {
		return eris.Wrap(err, "gdal: set description")
	}
	if err := band.Write(0, 0, buf, b.Width, b.Height); err != nil {
		return eris.Wrap(err, "gdal: write band")
	}

	out, err := mem.Translate(dst, cogOptions)
	if err != nil {
		return eris.Wrapf(err, "gdal: translate %s", dst)
	}
	if err := out.Close(); err != nil {
		return eris.Wrapf(err, "gdal: close %s", dst)
	}
	return nil
}
