package stac

import (
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/parquet"
	"github.com/sells-group/gnatsgo/internal/region"
	"github.com/sells-group/gnatsgo/internal/schema"
	"github.com/sells-group/gnatsgo/internal/ssurgo"
)

// CreateCollection builds the gNATSGO collection. parquetDir holds one
// dataset per catalog table; each dataset's _common_metadata supplies the
// table description.
func CreateCollection(parquetDir string) (*Collection, error) {
	log := zap.L().With(zap.String("component", "stac.collection"))

	start := ssurgo.Datetime

	c := &Collection{
		Type:        "Collection",
		StacVersion: Version,
		Extensions:  []string{TableExtension},
		ID:          CollectionID,
		Title:       "The gNATSGO Soil Database",
		Description: Description,
		Keywords:    []string{"Soils", "SSURGO", "USDA"},
		License:     "proprietary",
		Providers:   Providers(),
		Extent: Extent{
			Spatial:  SpatialExtent{BBox: region.Boxes()},
			Temporal: TemporalExtent{Interval: [][]*time.Time{{&start, nil}}},
		},
		Links: Links(),
	}

	for _, name := range ssurgo.Names() {
		path := filepath.Join(parquetDir, name+".parquet", parquet.CommonMetadata)
		sch, err := parquet.ReadSchema(path)
		if err != nil {
			return nil, eris.Wrapf(err, "stac: schema of %s", name)
		}
		desc, ok := sch.Metadata().GetValue(schema.MetaDescription)
		if !ok {
			return nil, eris.Errorf("stac: %s has no description metadata", name)
		}
		log.Debug("table described", zap.String("table", name))
		c.Tables = append(c.Tables, TableInfo{Name: name, Description: desc})
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the fields STAC requires of a collection.
func (c *Collection) Validate() error {
	switch {
	case c.ID == "":
		return eris.New("stac: collection id is required")
	case c.Description == "":
		return eris.New("stac: collection description is required")
	case c.License == "":
		return eris.New("stac: collection license is required")
	case len(c.Extent.Spatial.BBox) == 0:
		return eris.New("stac: collection spatial extent is required")
	case len(c.Extent.Temporal.Interval) == 0:
		return eris.New("stac: collection temporal extent is required")
	}
	for _, b := range c.Extent.Spatial.BBox {
		if len(b) != 4 {
			return eris.Errorf("stac: bbox %v must have 4 values", b)
		}
	}
	return nil
}
