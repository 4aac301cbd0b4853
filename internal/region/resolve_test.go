package region

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sorted(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}

func TestResolve_CoversEveryRegionOnce(t *testing.T) {
	tests := []struct {
		name       string
		ssurgoOnly bool
		partition  bool
		want       []string
	}{
		{"bulk", false, false, BulkRegions()},
		{"partitioned", false, true, AllRegions()},
		{"ssurgo bulk", true, false, BulkRegions()},
		{"ssurgo partitioned", true, true, AllRegions()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Resolve("/in", tt.ssurgoOnly, tt.partition)
			require.NoError(t, err)

			regions := m.Regions()
			assert.Equal(t, len(tt.want), m.Len())
			assert.Equal(t, sorted(tt.want), sorted(regions))

			seen := make(map[string]bool)
			for _, r := range regions {
				assert.False(t, seen[r], "duplicate region %s", r)
				seen[r] = true
			}
		})
	}
}

func TestResolve_RegionCounts(t *testing.T) {
	assert.Len(t, AllRegions(), 58)
	assert.Len(t, BulkRegions(), 10)
	assert.Len(t, AllCONUS(), 49)
}

func TestResolve_ProductChoice(t *testing.T) {
	m, err := Resolve("/in", false, true)
	require.NoError(t, err)

	p, ok := m.Path("NH")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/in", "gNATSGO_NH.gdb"), p)

	p, ok = m.Path("IA")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/in", "gSSURGO_IA.gdb"), p)

	p, ok = m.Path("AK")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/in", "gNATSGO_AK.gdb"), p)

	p, ok = m.Path("HI")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/in", "gSSURGO_HI.gdb"), p)
}

func TestResolve_BulkUsesGNATSGOCONUS(t *testing.T) {
	m, err := Resolve("/in", false, false)
	require.NoError(t, err)

	assert.Equal(t, CONUS, m[0].Region)
	assert.Equal(t, GNATSGO, m[0].Product)
	assert.Equal(t, filepath.Join("/in", "gNATSGO_CONUS.gdb"), m[0].Path)
}

func TestResolve_SSURGOOnly(t *testing.T) {
	m, err := Resolve("/in", true, false)
	require.NoError(t, err)
	for _, f := range m {
		assert.Equal(t, GSSURGO, f.Product, f.Region)
	}

	p, ok := m.Path("AK")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/in", "gSSURGO_AK.gdb"), p)

	m, err = Resolve("/in", true, true)
	require.NoError(t, err)
	p, ok = m.Path("NH")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/in", "gSSURGO_NH.gdb"), p)
}

func TestFileMap_PathMissing(t *testing.T) {
	m, err := Resolve("/in", false, false)
	require.NoError(t, err)

	_, ok := m.Path("NH")
	assert.False(t, ok)
}

func TestProductFor(t *testing.T) {
	p, ok := ProductFor("nh")
	require.True(t, ok)
	assert.Equal(t, GNATSGO, p)

	p, ok = ProductFor("GU")
	require.True(t, ok)
	assert.Equal(t, GSSURGO, p)

	_, ok = ProductFor("ZZ")
	assert.False(t, ok)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("CONUS"))
	assert.True(t, Valid("conus"))
	assert.True(t, Valid("PRUSVI"))
	assert.False(t, Valid("XX"))
}

func TestRasterFiles(t *testing.T) {
	rs := RasterFiles("/tif")

	require.Len(t, rs.NonCONUS, 9)
	assert.Equal(t, "AK", rs.NonCONUS[0].Region)
	assert.Equal(t, filepath.Join("/tif", "gNATSGO_AK.tif"), rs.NonCONUS[0].Path)
	assert.Equal(t, filepath.Join("/tif", "gSSURGO_AS.tif"), rs.NonCONUS[2].Path)

	assert.Len(t, rs.CONUS, 49)
	assert.Contains(t, rs.CONUS, filepath.Join("/tif", "gSSURGO_WV.tif"))
}

func TestOverallBBox(t *testing.T) {
	bbox := OverallBBox()
	assert.Equal(t, [4]float64{-170.8513, -14.3799, 171.9169, 71.4567}, bbox)

	b := Bounds(bbox)
	assert.InDelta(t, -170.8513, b.Min(0), 1e-9)
	assert.InDelta(t, 71.4567, b.Max(1), 1e-9)
}

func TestBoxes(t *testing.T) {
	boxes := Boxes()
	require.Len(t, boxes, len(Extents))
	assert.Equal(t, []float64{-127.8881, 22.8782, -65.2748, 51.6039}, boxes[len(boxes)-1])
}
