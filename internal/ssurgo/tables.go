// Package ssurgo holds the fixed catalog of SSURGO tables converted to
// parquet and the constants describing the gNATSGO product.
package ssurgo

import (
	"time"

	"github.com/sells-group/gnatsgo/internal/schema"
)

// DefaultTileSize is the raster grid step in projected units (meters).
const DefaultTileSize = 163840

// RepresentativeRegion names the geodatabase whose layout stands in for
// every region during type inference.
const RepresentativeRegion = "AK"

// DescriptionSource is the geodatabase that supplies table descriptions.
const DescriptionSource = "gSSURGO_CONUS.gdb"

// PartitionColumn is the column partitioned tables are split by.
const PartitionColumn = "region"

// Valu1 is the value-added lookup table. It has no metadata records.
const Valu1 = "valu1"

// Datetime is the nominal acquisition time of the product.
var Datetime = time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)

// TableSpec describes how one SSURGO table is converted.
type TableSpec struct {
	Name string
	// SSURGOOnly tables are read exclusively from gSSURGO files.
	SSURGOOnly bool
	// Partition splits the output by region.
	Partition bool
	// Overrides are explicit column types that skip inference.
	Overrides schema.TypeMap
	// HasGeometry includes the layer geometry as WKB.
	HasGeometry bool
}

var (
	categories = schema.OpenCategory()
	mukeyInt   = schema.TypeMap{"mukey": schema.Of(schema.Int64)}
	plants     = schema.TypeMap{"plantsym": categories, "plantsciname": categories, "plantcomname": categories}
	texts      = schema.TypeMap{"textcat": categories, "textsubcat": categories}
)

// Tables is the catalog of converted tables, in processing order.
var Tables = []TableSpec{
	{Name: "chaashto"},
	{Name: "chconsistence"},
	{Name: "chdesgnsuffix"},
	{Name: "chfrags"},
	{Name: "chorizon", Partition: true, Overrides: schema.TypeMap{"hzname": categories}},
	{Name: "chpores"},
	{Name: "chstruct"},
	{Name: "chstructgrp"},
	{Name: "chtext", Overrides: texts},
	{Name: "chtexture"},
	{Name: "chtexturegrp", Overrides: schema.TypeMap{"texture": categories, "texdesc": categories}},
	{Name: "chtexturemod"},
	{Name: "chunified"},
	{Name: "cocanopycover"},
	{Name: "cocropyld"},
	{Name: "codiagfeatures"},
	{Name: "coecoclass", Overrides: schema.TypeMap{"ecoclasstypename": categories, "ecoclassref": categories}},
	{Name: "coeplants", Overrides: plants},
	{Name: "coerosionacc"},
	{Name: "coforprod"},
	{Name: "coforprodo"},
	{Name: "cogeomordesc", Overrides: schema.TypeMap{"geomftname": categories, "geomfname": categories, "geomfmod": categories}},
	{Name: "cohydriccriteria"},
	{Name: "cointerp", Partition: true, Overrides: schema.TypeMap{"mrulename": categories, "rulename": categories, "interphrc": categories}},
	{Name: "comonth", Partition: true},
	{Name: "component", Overrides: schema.TypeMap{"mukey": schema.Of(schema.Int64), "majcompflag": schema.Of(schema.Boolean)}},
	{Name: "copm"},
	{Name: "copmgrp"},
	{Name: "copwindbreak", Overrides: plants},
	{Name: "corestrictions"},
	{Name: "cosoilmoist"},
	{Name: "cosoiltemp"},
	{Name: "cosurffrags"},
	{Name: "cosurfmorphgc"},
	{Name: "cosurfmorphhpp"},
	{Name: "cosurfmorphmr"},
	{Name: "cosurfmorphss"},
	{Name: "cotaxfmmin"},
	{Name: "cotaxmoistcl"},
	{Name: "cotext", Overrides: texts},
	{Name: "cotreestomng", Overrides: plants},
	{Name: "cotxfmother"},
	{Name: "distinterpmd", Partition: true},
	{Name: "distlegendmd"},
	{Name: "distmd"},
	{Name: "laoverlap"},
	{Name: "legend"},
	{Name: "legendtext"},
	{Name: "mapunit", Overrides: mukeyInt},
	{Name: "muaggatt", Overrides: mukeyInt},
	{Name: "muaoverlap", Overrides: mukeyInt},
	{Name: "mucropyld", Overrides: mukeyInt},
	{Name: "mutext", Overrides: mukeyInt},
	{Name: "sacatalog"},
	{Name: "sainterp", Partition: true},
	{Name: Valu1, SSURGOOnly: true, Overrides: mukeyInt},
}

// Lookup returns the spec of a table by name.
func Lookup(name string) (TableSpec, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableSpec{}, false
}

// Names returns every table name in catalog order.
func Names() []string {
	out := make([]string, len(Tables))
	for i, t := range Tables {
		out[i] = t.Name
	}
	return out
}

// PartitionedTables returns the specs with Partition set.
func PartitionedTables() []TableSpec {
	var out []TableSpec
	for _, t := range Tables {
		if t.Partition {
			out = append(out, t)
		}
	}
	return out
}
