// Package convert consolidates per-region geodatabase tables into parquet
// datasets.
package convert

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/gdb"
	"github.com/sells-group/gnatsgo/internal/region"
	"github.com/sells-group/gnatsgo/internal/schema"
	"github.com/sells-group/gnatsgo/internal/ssurgo"
)

// Table is a table resolved against an input directory: where it comes from
// and the shape it is written in.
type Table struct {
	Spec        ssurgo.TableSpec
	Files       region.FileMap
	Inference   *schema.Inference
	Description string
}

// NewTable resolves the files of a catalog table and infers its column
// types from the representative region's geodatabase.
func NewTable(opener gdb.Opener, inDir, name, description string) (*Table, error) {
	spec, ok := ssurgo.Lookup(name)
	if !ok {
		return nil, eris.Errorf("convert: unknown table %s", name)
	}

	files, err := region.Resolve(inDir, spec.SSURGOOnly, spec.Partition)
	if err != nil {
		return nil, eris.Wrapf(err, "convert: resolve %s", name)
	}

	rep, ok := files.Path(ssurgo.RepresentativeRegion)
	if !ok {
		return nil, eris.Errorf("convert: %s has no %s geodatabase", name, ssurgo.RepresentativeRegion)
	}

	opts := schema.InferOptions{
		Overrides: spec.Overrides,
		Geometry:  spec.HasGeometry,
	}
	if spec.Name == ssurgo.Valu1 {
		opts.Descriptions = ssurgo.Valu1Descriptions
	}
	if spec.Partition {
		opts.PartitionColumn = ssurgo.PartitionColumn
		opts.PartitionDomain = region.AllRegions()
	}

	src, err := opener.Open(rep)
	if err != nil {
		return nil, eris.Wrapf(err, "convert: open %s", rep)
	}
	defer src.Close() //nolint:errcheck

	in, err := schema.Infer(src, name, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "convert: infer %s", name)
	}

	return &Table{
		Spec:        spec,
		Files:       files,
		Inference:   in,
		Description: description,
	}, nil
}

// DatasetName is the output directory name of the table.
func (t *Table) DatasetName() string { return t.Spec.Name + ".parquet" }

// readOptions projects the layer onto the inferred physical columns.
func (t *Table) readOptions() gdb.ReadOptions {
	return gdb.ReadOptions{
		Columns:  t.Inference.Fields(),
		Geometry: t.Spec.HasGeometry,
	}
}
