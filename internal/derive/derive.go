package derive

import (
	"context"
	"math"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/schema"
	"github.com/sells-group/gnatsgo/internal/ssurgo"
)

// Band is a single raster band.
type Band struct {
	Width, Height int
	Values        []float64
	NoData        float64
	HasNoData     bool
}

// RasterIO reads mukey rasters and writes derived bands georeferenced like
// them.
type RasterIO interface {
	// ReadBand reads band 1 of path.
	ReadBand(path string) (Band, error)
	// WriteBand writes b as a single-band COG at dst of the given kind,
	// copying the georeferencing of template.
	WriteBand(dst, template string, kind schema.Kind, b Band, description string) error
}

// Deriver writes value-added rasters.
type Deriver struct {
	io     RasterIO
	lookup *Lookup
	log    *zap.Logger
}

// NewDeriver returns a Deriver over lookup.
func NewDeriver(io RasterIO, lookup *Lookup) *Deriver {
	return &Deriver{
		io:     io,
		lookup: lookup,
		log:    zap.L().With(zap.String("component", "derive.deriver")),
	}
}

// OutputName returns the derived raster name of column for a mukey raster
// named like mukey_{suffix}.
func OutputName(column, mukeyName string) (string, error) {
	_, suffix, ok := strings.Cut(mukeyName, "_")
	if !ok {
		return "", eris.Errorf("derive: %s has no _ separated suffix", mukeyName)
	}
	return strings.ReplaceAll(column, "_", "-") + "_" + suffix, nil
}

// Derive writes one raster per lookup column for every mukey file and
// returns the paths written. Output goes to dest, or beside each input when
// dest is empty. Columns whose band would be entirely nodata are skipped.
func (d *Deriver) Derive(ctx context.Context, mukeyFiles []string, dest string) ([]string, error) {
	var produced []string
	for _, href := range mukeyFiles {
		if err := ctx.Err(); err != nil {
			return produced, eris.Wrap(err, "derive: cancelled")
		}

		path, _, _ := strings.Cut(href, "?")
		inDir, name := filepath.Split(path)
		outDir := dest
		if outDir == "" {
			outDir = filepath.Clean(inDir)
		}
		log := d.log.With(zap.String("mukey_file", name))
		log.Info("processing mukey raster")

		mukeys, err := d.io.ReadBand(href)
		if err != nil {
			return produced, eris.Wrapf(err, "derive: read %s", href)
		}
		keys := make([]int64, len(mukeys.Values))
		unique := make(map[int64]struct{})
		for i, v := range mukeys.Values {
			keys[i] = int64(v)
			unique[keys[i]] = struct{}{}
		}
		log.Info("mukeys read", zap.Int("unique", len(unique)))

		for _, col := range d.lookup.Columns {
			out, err := OutputName(col.Name, name)
			if err != nil {
				return produced, err
			}
			dst := filepath.Join(outDir, out)

			band, ok := d.band(col, keys, mukeys)
			if !ok {
				log.Info("no valid data, skipping", zap.String("column", col.Name))
				continue
			}
			if err := d.io.WriteBand(dst, href, col.Kind, band, ssurgo.Valu1Descriptions[col.Name]); err != nil {
				return produced, eris.Wrapf(err, "derive: write %s", dst)
			}
			log.Info("derived raster written", zap.String("column", col.Name), zap.String("path", dst))
			produced = append(produced, dst)
		}
	}
	return produced, nil
}

// band maps every pixel's key through col. It reports false when every
// pixel is nodata.
func (d *Deriver) band(col *Column, keys []int64, src Band) (Band, bool) {
	out := Band{Width: src.Width, Height: src.Height, Values: make([]float64, len(keys)), HasNoData: true}
	switch col.Kind {
	case schema.Int16:
		out.NoData = Int16NoData
	default:
		out.NoData = src.NoData
		if !src.HasNoData {
			out.NoData = math.NaN()
		}
	}

	valid := false
	for i, k := range keys {
		v, ok := col.Value(k)
		if !ok || math.IsNaN(v) {
			v = out.NoData
		}
		out.Values[i] = v
		if !sameValue(v, out.NoData) {
			valid = true
		}
	}
	return out, valid
}

func sameValue(a, b float64) bool {
	if math.IsNaN(b) {
		return math.IsNaN(a)
	}
	return a == b
}
