package schema

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/gdb"
)

// InferOptions configures Infer.
type InferOptions struct {
	// Overrides are explicit column types that skip inference.
	Overrides TypeMap
	// Descriptions, when non-nil, replaces the metadata layers as the source
	// of column descriptions. Every column must then be numeric.
	Descriptions map[string]string
	// Geometry adds a WKB geometry column.
	Geometry bool
	// PartitionColumn, when set, adds a categorical column over
	// PartitionDomain.
	PartitionColumn string
	PartitionDomain []string
}

// Inference is the resolved output shape of a table.
type Inference struct {
	Table string
	// Columns is the output column order: physical fields, then geometry,
	// then the partition column.
	Columns         []string
	Types           TypeMap
	Meta            ColumnMeta
	PartitionColumn string
}

// Physical returns the output columns read from the geodatabase, excluding
// the partition column.
func (in *Inference) Physical() []string {
	var out []string
	for _, c := range in.Columns {
		if c != in.PartitionColumn {
			out = append(out, c)
		}
	}
	return out
}

// Fields returns the attribute columns, excluding geometry and partition.
func (in *Inference) Fields() []string {
	var out []string
	for _, c := range in.Columns {
		if c != in.PartitionColumn && c != gdb.GeometryColumn {
			out = append(out, c)
		}
	}
	return out
}

var logicalTypes = map[string]Kind{
	"Boolean":   Boolean,
	"Date/Time": Timestamp,
	"String":    String,
	"Vtext":     String,
}

// Infer derives the column types of table from one representative
// geodatabase. Every other region is assumed to share this layout; readers
// reject frames that diverge from it.
//
// Integer fields map to Int16 when declared small and Int32 otherwise, Real
// fields to Float32. Remaining fields take their type from the column's
// mdstattabcols logical type: Choice becomes a categorical over the
// domain's mdstatdomdet choices (open when it has none); Boolean, Date/Time,
// String and Vtext map directly.
func Infer(src gdb.Source, table string, opts InferOptions) (*Inference, error) {
	fields, err := src.Fields(table)
	if err != nil {
		return nil, eris.Wrapf(err, "schema: fields of %s", table)
	}

	in := &Inference{
		Table:           table,
		Types:           make(TypeMap),
		Meta:            make(ColumnMeta),
		PartitionColumn: opts.PartitionColumn,
	}

	physical := make(map[string]bool, len(fields))
	for _, fd := range fields {
		physical[fd.Name] = true
	}
	for col, t := range opts.Overrides {
		if !physical[col] {
			return nil, eris.Errorf("schema: override for %s.%s names no field", table, col)
		}
		in.Types[col] = t
	}

	var records map[string]ColumnRecord
	var domains map[string][]string
	if opts.Descriptions == nil {
		if records, err = ReadColumnRecords(src, table); err != nil {
			return nil, err
		}
		if domains, err = ReadDomains(src); err != nil {
			return nil, err
		}
	}

	for _, fd := range fields {
		in.Columns = append(in.Columns, fd.Name)

		rec, hasRec := records[fd.Name]
		switch {
		case opts.Descriptions != nil:
			if d := opts.Descriptions[fd.Name]; d != "" {
				in.Meta[fd.Name] = FieldMeta{Description: d}
			}
		case hasRec:
			if m := (FieldMeta{Description: rec.Description, Units: rec.Units}); !m.Empty() {
				in.Meta[fd.Name] = m
			}
		}

		if _, ok := in.Types[fd.Name]; ok {
			continue
		}

		switch fd.Kind {
		case gdb.KindInteger:
			if fd.Small {
				in.Types[fd.Name] = Of(Int16)
			} else {
				in.Types[fd.Name] = Of(Int32)
			}
			continue
		case gdb.KindInteger64:
			in.Types[fd.Name] = Of(Int64)
			continue
		case gdb.KindReal:
			in.Types[fd.Name] = Of(Float32)
			continue
		}

		if opts.Descriptions != nil {
			return nil, eris.Errorf("schema: %s.%s is %s and has no metadata record", table, fd.Name, fd.Kind)
		}
		if !hasRec {
			return nil, eris.Errorf("schema: no mdstattabcols record for %s.%s", table, fd.Name)
		}

		if rec.LogicalType == "Choice" {
			if choices := domains[rec.Domain]; len(choices) > 0 {
				in.Types[fd.Name] = CategoryOf(choices...)
			} else {
				in.Types[fd.Name] = OpenCategory()
			}
			continue
		}

		k, ok := logicalTypes[rec.LogicalType]
		if !ok {
			return nil, eris.Errorf("schema: unsupported logical type %q for %s.%s", rec.LogicalType, table, fd.Name)
		}
		in.Types[fd.Name] = Of(k)
	}

	if opts.Geometry {
		in.Columns = append(in.Columns, gdb.GeometryColumn)
		in.Types[gdb.GeometryColumn] = Of(Binary)
	}

	if opts.PartitionColumn != "" {
		if physical[opts.PartitionColumn] {
			return nil, eris.Errorf("schema: partition column %s collides with a field of %s", opts.PartitionColumn, table)
		}
		in.Columns = append(in.Columns, opts.PartitionColumn)
		in.Types[opts.PartitionColumn] = CategoryOf(opts.PartitionDomain...)
	}

	return in, nil
}
