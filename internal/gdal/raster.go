package gdal

import (
	"math"
	"strconv"

	"github.com/airbusgeo/godal"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/gnatsgo/internal/raster"
)

// cogOptions are the creation options of every COG written.
var cogOptions = []string{"-of", "COG", "-co", "COMPRESS=DEFLATE", "-co", "RESAMPLING=NEAREST"}

// Driver reads and writes rasters through GDAL. It implements raster.Driver,
// derive.RasterIO and stac.RasterInfo.
type Driver struct{}

// NewDriver returns a Driver.
func NewDriver() *Driver {
	register()
	return &Driver{}
}

func openRaster(path string) (*godal.Dataset, error) {
	ds, err := godal.Open(vsiPath(path), godal.RasterOnly())
	if err != nil {
		return nil, eris.Wrapf(err, "gdal: open %s", path)
	}
	return ds, nil
}

// Open implements raster.Driver.
func (d *Driver) Open(path string) (raster.Source, error) {
	ds, err := openRaster(path)
	if err != nil {
		return nil, err
	}
	gt, err := ds.GeoTransform()
	if err != nil {
		ds.Close() //nolint:errcheck
		return nil, eris.Wrapf(err, "gdal: geotransform of %s", path)
	}
	if gt[2] != 0 || gt[4] != 0 {
		ds.Close() //nolint:errcheck
		return nil, eris.Errorf("gdal: %s is rotated", path)
	}
	return &source{ds: ds, path: path, gt: gt}, nil
}

// Mosaic implements raster.Driver.
func (d *Driver) Mosaic(dst string, paths []string) error {
	srcs := make([]string, len(paths))
	for i, p := range paths {
		srcs[i] = vsiPath(p)
	}
	vrt, err := godal.BuildVRT(dst, srcs, nil)
	if err != nil {
		return eris.Wrapf(err, "gdal: build %s", dst)
	}
	if err := vrt.Close(); err != nil {
		return eris.Wrapf(err, "gdal: close %s", dst)
	}
	return nil
}

type source struct {
	ds   *godal.Dataset
	path string
	gt   [6]float64
}

func (s *source) size() (int, int) {
	st := s.ds.Structure()
	return st.SizeX, st.SizeY
}

// Bounds implements raster.Source.
func (s *source) Bounds() (*geom.Bounds, error) {
	w, h := s.size()
	b := nativeBounds(s.gt, w, h)
	return geom.NewBounds(geom.XY).Set(b[0], b[1], b[2], b[3]), nil
}

// pixelWindow converts t to a pixel window clipped to the raster.
func (s *source) pixelWindow(t raster.Tile) (x, y, w, h int) {
	width, height := s.size()
	const eps = 1e-9
	x0 := int(math.Floor((t.Left-s.gt[0])/s.gt[1] + eps))
	x1 := int(math.Ceil((t.Right-s.gt[0])/s.gt[1] - eps))
	y0 := int(math.Floor((t.Top-s.gt[3])/s.gt[5] + eps))
	y1 := int(math.Ceil((t.Bottom-s.gt[3])/s.gt[5] - eps))
	x0, x1 = max(x0, 0), min(x1, width)
	y0, y1 = max(y0, 0), min(y1, height)
	return x0, y0, max(x1-x0, 0), max(y1-y0, 0)
}

// ReadWindow implements raster.Source.
func (s *source) ReadWindow(t raster.Tile) (raster.Window, error) {
	bands := s.ds.Bands()
	if len(bands) == 0 {
		return raster.Window{}, eris.Errorf("gdal: %s has no bands", s.path)
	}
	nd, ok := bands[0].NoData()
	win := raster.Window{NoData: nd, HasNoData: ok}

	x, y, w, h := s.pixelWindow(t)
	if w == 0 || h == 0 {
		return win, nil
	}
	win.Values = make([]float64, w*h)
	if err := bands[0].Read(x, y, win.Values, w, h); err != nil {
		return raster.Window{}, eris.Wrapf(err, "gdal: read %s", s.path)
	}
	return win, nil
}

// Extract implements raster.Source.
func (s *source) Extract(dst string, t raster.Tile) error {
	args := append(append([]string(nil), cogOptions...), "-projwin",
		ftoa(t.Left), ftoa(t.Top), ftoa(t.Right), ftoa(t.Bottom))
	out, err := s.ds.Translate(dst, args)
	if err != nil {
		return eris.Wrapf(err, "gdal: translate %s", dst)
	}
	if err := out.Close(); err != nil {
		return eris.Wrapf(err, "gdal: close %s", dst)
	}
	return nil
}

// Close implements raster.Source.
func (s *source) Close() error {
	return s.ds.Close()
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
