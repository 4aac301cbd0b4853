package raster

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/gnatsgo/internal/region"
)

// grid is an in-memory north-up raster.
type grid struct {
	x0, top, res float64
	w, h         int
	vals         []float64
	nodata       float64
	hasNoData    bool
}

func uniform(x0, top, res float64, w, h int, v, nodata float64) *grid {
	g := &grid{x0: x0, top: top, res: res, w: w, h: h, nodata: nodata, hasNoData: true}
	for i := 0; i < w*h; i++ {
		g.vals = append(g.vals, v)
	}
	return g
}

type fakeSource struct {
	g         *grid
	extracted []string
}

func (s *fakeSource) Bounds() (*geom.Bounds, error) {
	g := s.g
	return geom.NewBounds(geom.XY).Set(g.x0, g.top-float64(g.h)*g.res, g.x0+float64(g.w)*g.res, g.top), nil
}

func (s *fakeSource) ReadWindow(t Tile) (Window, error) {
	g := s.g
	c0 := int(math.Floor((t.Left - g.x0) / g.res))
	c1 := int(math.Ceil((t.Right - g.x0) / g.res))
	r0 := int(math.Floor((g.top - t.Top) / g.res))
	r1 := int(math.Ceil((g.top - t.Bottom) / g.res))
	win := Window{NoData: g.nodata, HasNoData: g.hasNoData}
	for r := max(r0, 0); r < min(r1, g.h); r++ {
		for c := max(c0, 0); c < min(c1, g.w); c++ {
			win.Values = append(win.Values, g.vals[r*g.w+c])
		}
	}
	return win, nil
}

func (s *fakeSource) Extract(dst string, t Tile) error {
	win, err := s.ReadWindow(t)
	if err != nil {
		return err
	}
	b, err := json.Marshal(win.Values)
	if err != nil {
		return err
	}
	s.extracted = append(s.extracted, dst)
	return os.WriteFile(dst, b, 0o644)
}

func (s *fakeSource) Close() error { return nil }

type fakeDriver struct {
	rasters map[string]*grid
	mosaics map[string][]string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{rasters: map[string]*grid{}, mosaics: map[string][]string{}}
}

func (d *fakeDriver) Open(path string) (Source, error) {
	g, ok := d.rasters[path]
	if !ok {
		return nil, eris.Errorf("no raster at %s", path)
	}
	return &fakeSource{g: g}, nil
}

// Mosaic keeps the first readable member, skipping missing files.
func (d *fakeDriver) Mosaic(dst string, paths []string) error {
	for _, p := range paths {
		if g, ok := d.rasters[p]; ok {
			d.mosaics[dst] = append(d.mosaics[dst], p)
			if _, set := d.rasters[dst]; !set {
				d.rasters[dst] = g
			}
		}
	}
	if len(d.mosaics[dst]) == 0 {
		return eris.New("no readable mosaic members")
	}
	return nil
}

func TestCreateTiles_SingleTileWhenSizeExceedsExtent(t *testing.T) {
	b := geom.NewBounds(geom.XY).Set(0, 0, 20, 20)
	tiles := CreateTiles(b, 163840)
	require.Len(t, tiles, 1)
	assert.Equal(t, Tile{Left: 0, Bottom: 0, Right: 20, Top: 20}, tiles[0])
}

func TestCreateTiles_Order(t *testing.T) {
	b := geom.NewBounds(geom.XY).Set(0, 0, 20, 20)
	tiles := CreateTiles(b, 10)
	assert.Equal(t, []Tile{
		{0, 0, 10, 10},
		{0, 10, 10, 20},
		{10, 0, 20, 10},
		{10, 10, 20, 20},
	}, tiles)
}

func TestCreateTiles_PartitionOfBounds(t *testing.T) {
	left, bottom, right, top := -10.5, 3.0, 95.0, 47.25
	b := geom.NewBounds(geom.XY).Set(left, bottom, right, top)
	tiles := CreateTiles(b, 20)
	require.Len(t, tiles, 6*3)

	var area float64
	for i, a := range tiles {
		assert.GreaterOrEqual(t, a.Left, left)
		assert.GreaterOrEqual(t, a.Bottom, bottom)
		assert.LessOrEqual(t, a.Right, right)
		assert.LessOrEqual(t, a.Top, top)
		assert.Less(t, a.Left, a.Right)
		assert.Less(t, a.Bottom, a.Top)
		area += (a.Right - a.Left) * (a.Top - a.Bottom)

		for _, o := range tiles[i+1:] {
			overlapX := math.Min(a.Right, o.Right) - math.Max(a.Left, o.Left)
			overlapY := math.Min(a.Top, o.Top) - math.Max(a.Bottom, o.Bottom)
			assert.False(t, overlapX > 0 && overlapY > 0, "%v overlaps %v", a, o)
		}
	}
	assert.InDelta(t, (right-left)*(top-bottom), area, 1e-6)

	// Neighbours in a column share an edge.
	assert.Equal(t, tiles[0].Top, tiles[1].Bottom)
	assert.Equal(t, tiles[0].Right, tiles[3].Left)
}

func TestCreateTiles_Degenerate(t *testing.T) {
	assert.Empty(t, CreateTiles(geom.NewBounds(geom.XY).Set(0, 0, 0, 10), 5))
	assert.Empty(t, CreateTiles(geom.NewBounds(geom.XY).Set(0, 0, 10, 10), 0))
}

func TestTile_ID(t *testing.T) {
	tile := Tile{Left: -1.7, Bottom: -0.5, Right: 3.2, Top: 2.9}
	assert.Equal(t, "ak_-1_2_3_0", tile.ID("ak"))

	tile = Tile{Left: -2356000.25, Bottom: 266000, Right: -2192160, Top: 429840.9}
	assert.Equal(t, "conus_-2356000_429840_-2192160_266000", tile.ID("conus"))
}

func TestWindow_Empty(t *testing.T) {
	assert.True(t, Window{Values: []float64{-1, -1}, NoData: -1, HasNoData: true}.Empty())
	assert.False(t, Window{Values: []float64{-1, 5}, NoData: -1, HasNoData: true}.Empty())
	assert.False(t, Window{Values: []float64{-1}, NoData: 0}.Empty())
	assert.True(t, Window{NoData: -1, HasNoData: true}.Empty())
	assert.True(t, Window{}.Empty())
	assert.True(t, Window{Values: []float64{math.NaN()}, NoData: math.NaN(), HasNoData: true}.Empty())
	assert.False(t, Window{Values: []float64{math.NaN(), 1}, NoData: math.NaN(), HasNoData: true}.Empty())
}

func TestTileImage_SkipsAllNodata(t *testing.T) {
	d := newFakeDriver()
	d.rasters["/in/empty.tif"] = uniform(0, 20, 10, 2, 2, -1, -1)

	out, err := NewTiler(d, 100).TileImage(context.Background(), "/in/empty.tif", t.TempDir(), "x")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTileImage_SkipsEmptyCells(t *testing.T) {
	d := newFakeDriver()
	g := uniform(0, 20, 10, 2, 2, -1, -1)
	g.vals[0] = 5 // top-left pixel only
	d.rasters["/in/a.tif"] = g
	outDir := t.TempDir()

	out, err := NewTiler(d, 10).TileImage(context.Background(), "/in/a.tif", outDir, "a")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a_0_20_10_10", out[0].ID)
	assert.Equal(t, filepath.Join(outDir, "a_0_20_10_10", "mukey_a_0_20_10_10.tif"), out[0].Path)
}

func TestTileImage_BadSize(t *testing.T) {
	_, err := NewTiler(newFakeDriver(), 0).TileImage(context.Background(), "/in/a.tif", t.TempDir(), "a")
	assert.Error(t, err)
}

func TestTiler_Tile_RegionsAndMosaic(t *testing.T) {
	const inDir = "/in"
	d := newFakeDriver()
	set := region.RasterFiles(inDir)
	for _, f := range set.NonCONUS {
		if f.Region == "AK" {
			d.rasters[f.Path] = uniform(0, 20, 10, 2, 2, 5, -1)
			continue
		}
		d.rasters[f.Path] = uniform(0, 20, 10, 2, 2, -1, -1)
	}
	nh := region.TIFPath(inDir, region.GNATSGO, "NH")
	d.rasters[nh] = uniform(100, 220, 10, 2, 2, 5, -1)

	outDir := t.TempDir()
	out, err := NewTiler(d, 163840).Tile(context.Background(), inDir, outDir)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "ak_0_20_20_0", out[0].ID)
	assert.Equal(t, "ak", out[0].Base)
	assert.Equal(t, "conus_100_220_120_200", out[1].ID)
	assert.Equal(t, ConusBase, out[1].Base)

	// Each tile holds the full 2x2 window.
	for _, p := range out {
		b, err := os.ReadFile(p.Path)
		require.NoError(t, err)
		var vals []float64
		require.NoError(t, json.Unmarshal(b, &vals))
		assert.Equal(t, []float64{5, 5, 5, 5}, vals)
	}

	// The mosaic was built from the CONUS list only.
	for _, members := range d.mosaics {
		assert.Equal(t, []string{nh}, members)
	}
}

func TestTiler_Tile_MissingRegionRaster(t *testing.T) {
	_, err := NewTiler(newFakeDriver(), 100).Tile(context.Background(), "/in", t.TempDir())
	assert.Error(t, err)
}

func TestTileImage_Cancelled(t *testing.T) {
	d := newFakeDriver()
	d.rasters["/in/a.tif"] = uniform(0, 20, 10, 2, 2, 5, -1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTiler(d, 10).TileImage(ctx, "/in/a.tif", t.TempDir(), "a")
	assert.Error(t, err)
}

func TestIndex_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	tiles := []Produced{
		{ID: "ak_0_20_20_0", Base: "ak", Path: "/out/ak_0_20_20_0/mukey_ak_0_20_20_0.tif", Tile: Tile{0, 0, 20, 20}},
		{ID: "conus_-100_50_-80_30", Base: "conus", Path: "/out/c.tif", Tile: Tile{-100, 30, -80, 50}},
	}
	path := filepath.Join(dir, "tile_index.shp")
	require.NoError(t, WriteIndex(path, tiles))

	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		_, err := os.Stat(filepath.Join(dir, "tile_index"+ext))
		assert.NoError(t, err, ext)
	}

	got, err := ReadIndex(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "conus_-100_50_-80_30", got[1].ID)
	assert.Equal(t, "conus", got[1].Base)
	assert.Equal(t, "/out/c.tif", got[1].Path)
	assert.Equal(t, Tile{-100, 30, -80, 50}, got[1].Tile)

	require.NotNil(t, got[0].Footprint)
	b := got[0].Footprint.Bounds()
	assert.Equal(t, []float64{0, 0}, []float64{b.Min(0), b.Min(1)})
	assert.Equal(t, []float64{20, 20}, []float64{b.Max(0), b.Max(1)})
}
