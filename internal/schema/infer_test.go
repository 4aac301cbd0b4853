package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gnatsgo/internal/gdb"
	"github.com/sells-group/gnatsgo/internal/gdb/gdbtest"
)

const akPath = "/in/gNATSGO_AK.gdb"

func metadataLayers(op *gdbtest.Opener, path string) {
	op.Add(path, LayerTableColumns, &gdbtest.Layer{
		Fields: []gdb.FieldDef{
			{Name: "tabphyname", Kind: gdb.KindString},
			{Name: "colphyname", Kind: gdb.KindString},
			{Name: "coldesc", Kind: gdb.KindString},
			{Name: "uom", Kind: gdb.KindString},
			{Name: "logicaldatatype", Kind: gdb.KindString},
			{Name: "domainname", Kind: gdb.KindString},
		},
		Rows: [][]any{
			{"chorizon", "hzname", "Horizon name", nil, "String", nil},
			{"chorizon", "hzdept_r", "Top depth", "cm", "Integer", nil},
			{"chorizon", "om_r", "Organic matter", "pct", "Float", nil},
			{"chorizon", "desgnmaster", "Master designation", nil, "Choice", "designation_master"},
			{"chorizon", "texture", "Texture", nil, "Choice", "texture_class"},
			{"chorizon", "aashind", "AASHTO index", nil, "Boolean", nil},
			{"chorizon", "recwlupdated", "Updated", nil, "Date/Time", nil},
			{"chorizon", "notes", "Notes", nil, "Vtext", nil},
			{"component", "hzname", "Wrong table", nil, "Integer", nil},
		},
	})
	op.Add(path, LayerDomainDetail, &gdbtest.Layer{
		Fields: []gdb.FieldDef{
			{Name: "domainname", Kind: gdb.KindString},
			{Name: "choice", Kind: gdb.KindString},
		},
		Rows: [][]any{
			{"designation_master", "A"},
			{"designation_master", "B"},
			{"designation_master", "C"},
			{"other", "x"},
		},
	})
}

func chorizonLayer() *gdbtest.Layer {
	return &gdbtest.Layer{Fields: []gdb.FieldDef{
		{Name: "hzname", Kind: gdb.KindString},
		{Name: "hzdept_r", Kind: gdb.KindInteger, Small: true},
		{Name: "om_r", Kind: gdb.KindReal},
		{Name: "desgnmaster", Kind: gdb.KindString},
		{Name: "texture", Kind: gdb.KindString},
		{Name: "aashind", Kind: gdb.KindString},
		{Name: "recwlupdated", Kind: gdb.KindDate},
		{Name: "notes", Kind: gdb.KindString},
		{Name: "cokey", Kind: gdb.KindInteger},
	}}
}

func openSource(t *testing.T, op *gdbtest.Opener, path string) gdb.Source {
	t.Helper()
	src, err := op.Open(path)
	require.NoError(t, err)
	return src
}

func TestInfer_TypesFromFieldsAndMetadata(t *testing.T) {
	op := gdbtest.NewOpener()
	metadataLayers(op, akPath)
	l := chorizonLayer()
	l.Fields = l.Fields[:len(l.Fields)-1] // cokey has no metadata record
	op.Add(akPath, "chorizon", l)

	in, err := Infer(openSource(t, op, akPath), "chorizon", InferOptions{
		Overrides: TypeMap{"hzname": OpenCategory()},
	})
	require.NoError(t, err)

	assert.Equal(t, OpenCategory(), in.Types["hzname"])
	assert.Equal(t, Of(Int16), in.Types["hzdept_r"])
	assert.Equal(t, Of(Float32), in.Types["om_r"])
	assert.Equal(t, CategoryOf("A", "B", "C"), in.Types["desgnmaster"])
	assert.Equal(t, OpenCategory(), in.Types["texture"])
	assert.Equal(t, Of(Boolean), in.Types["aashind"])
	assert.Equal(t, Of(Timestamp), in.Types["recwlupdated"])
	assert.Equal(t, Of(String), in.Types["notes"])

	assert.Equal(t, FieldMeta{Description: "Top depth", Units: "cm"}, in.Meta["hzdept_r"])
	assert.Equal(t, FieldMeta{Description: "Horizon name"}, in.Meta["hzname"])
	assert.Equal(t, []string{
		"hzname", "hzdept_r", "om_r", "desgnmaster", "texture", "aashind", "recwlupdated", "notes",
	}, in.Columns)
}

func TestInfer_NumericFieldsNeedNoMetadata(t *testing.T) {
	op := gdbtest.NewOpener()
	metadataLayers(op, akPath)
	op.Add(akPath, "chorizon", &gdbtest.Layer{Fields: []gdb.FieldDef{
		{Name: "cokey", Kind: gdb.KindInteger},
		{Name: "big", Kind: gdb.KindInteger64},
	}})

	in, err := Infer(openSource(t, op, akPath), "chorizon", InferOptions{})
	require.NoError(t, err)
	assert.Equal(t, Of(Int32), in.Types["cokey"])
	assert.Equal(t, Of(Int64), in.Types["big"])
	assert.Empty(t, in.Meta)
}

func TestInfer_MissingMetadataRecord(t *testing.T) {
	op := gdbtest.NewOpener()
	metadataLayers(op, akPath)
	op.Add(akPath, "chorizon", &gdbtest.Layer{Fields: []gdb.FieldDef{
		{Name: "mystery", Kind: gdb.KindString},
	}})

	_, err := Infer(openSource(t, op, akPath), "chorizon", InferOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chorizon.mystery")
}

func TestInfer_UnsupportedLogicalType(t *testing.T) {
	op := gdbtest.NewOpener()
	metadataLayers(op, akPath)
	op.Add(akPath, "component", &gdbtest.Layer{Fields: []gdb.FieldDef{
		{Name: "hzname", Kind: gdb.KindString},
	}})

	_, err := Infer(openSource(t, op, akPath), "component", InferOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported logical type")
}

func TestInfer_HardcodedDescriptions(t *testing.T) {
	op := gdbtest.NewOpener()
	// No metadata layers: they must not be read.
	op.Add(akPath, "valu1", &gdbtest.Layer{Fields: []gdb.FieldDef{
		{Name: "aws0_5", Kind: gdb.KindReal},
		{Name: "droughty", Kind: gdb.KindInteger, Small: true},
		{Name: "mukey", Kind: gdb.KindString},
	}})

	in, err := Infer(openSource(t, op, akPath), "valu1", InferOptions{
		Overrides:    TypeMap{"mukey": Of(Int64)},
		Descriptions: map[string]string{"aws0_5": "AWS 0-5", "mukey": "Map unit key"},
	})
	require.NoError(t, err)

	assert.Equal(t, Of(Float32), in.Types["aws0_5"])
	assert.Equal(t, Of(Int16), in.Types["droughty"])
	assert.Equal(t, Of(Int64), in.Types["mukey"])
	assert.Equal(t, "AWS 0-5", in.Meta["aws0_5"].Description)
	assert.Equal(t, "Map unit key", in.Meta["mukey"].Description)
	_, ok := in.Meta["droughty"]
	assert.False(t, ok)
	assert.Empty(t, op.ReadsOf(LayerTableColumns))
}

func TestInfer_HardcodedDescriptionsRejectText(t *testing.T) {
	op := gdbtest.NewOpener()
	op.Add(akPath, "valu1", &gdbtest.Layer{Fields: []gdb.FieldDef{
		{Name: "label", Kind: gdb.KindString},
	}})

	_, err := Infer(openSource(t, op, akPath), "valu1", InferOptions{Descriptions: map[string]string{}})
	assert.Error(t, err)
}

func TestInfer_PartitionAndGeometry(t *testing.T) {
	op := gdbtest.NewOpener()
	metadataLayers(op, akPath)
	op.Add(akPath, "chorizon", &gdbtest.Layer{Fields: []gdb.FieldDef{
		{Name: "cokey", Kind: gdb.KindInteger},
	}})

	in, err := Infer(openSource(t, op, akPath), "chorizon", InferOptions{
		Geometry:        true,
		PartitionColumn: "region",
		PartitionDomain: []string{"AK", "NH"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"cokey", gdb.GeometryColumn, "region"}, in.Columns)
	assert.Equal(t, []string{"cokey", gdb.GeometryColumn}, in.Physical())
	assert.Equal(t, []string{"cokey"}, in.Fields())
	assert.Equal(t, CategoryOf("AK", "NH"), in.Types["region"])
	assert.Equal(t, Of(Binary), in.Types[gdb.GeometryColumn])
}

func TestInfer_OverrideForUnknownField(t *testing.T) {
	op := gdbtest.NewOpener()
	metadataLayers(op, akPath)
	op.Add(akPath, "chorizon", &gdbtest.Layer{Fields: []gdb.FieldDef{
		{Name: "cokey", Kind: gdb.KindInteger},
	}})

	_, err := Infer(openSource(t, op, akPath), "chorizon", InferOptions{
		Overrides: TypeMap{"nope": Of(Int64)},
	})
	assert.Error(t, err)
}

func TestReadTableDescriptions(t *testing.T) {
	op := gdbtest.NewOpener()
	op.Add("/c.gdb", LayerTables, &gdbtest.Layer{
		Fields: []gdb.FieldDef{
			{Name: "tabphyname", Kind: gdb.KindString},
			{Name: "tabdesc", Kind: gdb.KindString},
		},
		Rows: [][]any{
			{"chorizon", "Horizon table"},
			{"legend", nil},
		},
	})

	d, err := ReadTableDescriptions(openSource(t, op, "/c.gdb"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"chorizon": "Horizon table"}, d)
}
