package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gnatsgo/internal/gdb"
	"github.com/sells-group/gnatsgo/internal/raster"
	"github.com/sells-group/gnatsgo/internal/ssurgo"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{
		"to-parquet", "tile", "create-derived-rasters",
		"create-collection", "create-item", "fetch", "tables",
		"show", "tiles",
	}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "gnatsgo", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestDerivedCommand_Alias(t *testing.T) {
	c, _, err := rootCmd.Find([]string{"create-value-ad-rasters"})
	require.NoError(t, err)
	assert.Equal(t, derivedCmd, c)

	flag := derivedCmd.Flags().Lookup("destination")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestTileCommand_Flags(t *testing.T) {
	require.NotNil(t, tileCmd.Flags().Lookup("size"))
	require.NotNil(t, tileCmd.Flags().Lookup("index"))
}

func TestFetchCommand_Flags(t *testing.T) {
	require.NotNil(t, fetchCmd.Flags().Lookup("regions"))
	require.NotNil(t, fetchCmd.Flags().Lookup("base-url"))
	require.NotNil(t, fetchCmd.Flags().Lookup("concurrency"))
}

func TestTablesCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"tables"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(ssurgo.Tables)+1)
	assert.True(t, strings.HasPrefix(lines[0], "TABLE"))
	assert.Contains(t, out.String(), "valu1")
}

func TestTablesCommand_Partitioned(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"tables", "--partitioned"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)
	defer tablesCmd.Flags().Set("partitioned", "false") //nolint:errcheck

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(ssurgo.PartitionedTables())+1)
	assert.Contains(t, out.String(), "chorizon")
	assert.NotContains(t, out.String(), "valu1")
}

func TestTilesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tile_index.shp")
	require.NoError(t, raster.WriteIndex(path, []raster.Produced{
		{ID: "ak_0_20_20_0", Base: "ak", Path: "/out/ak.tif", Tile: raster.Tile{Left: 0, Bottom: 0, Right: 20, Top: 20}},
		{ID: "conus_-100_50_-80_30", Base: "conus", Path: "/out/c.tif", Tile: raster.Tile{Left: -100, Bottom: 30, Right: -80, Top: 50}},
	}))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"tiles", "--base", "conus", path})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)
	defer tilesCmd.Flags().Set("base", "") //nolint:errcheck

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "TILE"))
	assert.Contains(t, lines[1], "conus_-100_50_-80_30")
	assert.Contains(t, lines[1], "/out/c.tif")
}

func TestPrintFrame(t *testing.T) {
	f := gdb.NewFrame("mukey", "shape")
	require.NoError(t, f.AppendRow(int64(1), []byte{1, 2, 3}))
	require.NoError(t, f.AppendRow(nil, nil))
	require.NoError(t, f.AppendRow(int64(3), nil))

	var out bytes.Buffer
	showCmd.SetOut(&out)
	defer showCmd.SetOut(nil)

	require.NoError(t, printFrame(showCmd, f, 2))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "mukey"))
	assert.Contains(t, lines[1], "<3 bytes>")
	assert.Equal(t, "", strings.TrimSpace(lines[2]))
}

func TestArgs(t *testing.T) {
	assert.Error(t, toParquetCmd.Args(toParquetCmd, []string{"in"}))
	assert.NoError(t, toParquetCmd.Args(toParquetCmd, []string{"in", "out", "mapunit"}))
	assert.Error(t, tileCmd.Args(tileCmd, []string{"in"}))
	assert.Error(t, itemCmd.Args(itemCmd, []string{"dest.json"}))
	assert.Error(t, collectionCmd.Args(collectionCmd, []string{"a", "b", "c"}))
	assert.Error(t, showCmd.Args(showCmd, []string{"in"}))
	assert.Error(t, tilesCmd.Args(tilesCmd, nil))
}

func TestRequireLocal(t *testing.T) {
	assert.NoError(t, requireLocal("/data/in", "IN"))
	assert.Error(t, requireLocal("s3://bucket/in", "IN"))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"AK", "hi"}, splitAndTrim(" AK, ,hi "))
	assert.Equal(t, []string{"AK", "HI"}, toUpper(splitAndTrim("ak,hi")))
}
