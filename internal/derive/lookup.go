// Package derive joins the valu1 lookup table onto mukey rasters to build
// one value-added raster per lookup column.
package derive

import (
	"context"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/parquet"
	"github.com/sells-group/gnatsgo/internal/schema"
)

// Int16NoData fills int16 bands where a map unit has no value.
const Int16NoData = -9999

// KeyColumn is the map unit key column of the lookup table.
const KeyColumn = "mukey"

// Column is one lookup column indexed by map unit key.
type Column struct {
	Name string
	Kind schema.Kind
	// values holds the first row of each key for Int16 columns (nulls as
	// Int16NoData) and the first non-null, non-NaN value for Float32 columns.
	values map[int64]float64
}

// Value returns the value of key.
func (c *Column) Value(key int64) (float64, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of keys with a value.
func (c *Column) Len() int { return len(c.values) }

// Lookup is the valu1 table keyed by mukey.
type Lookup struct {
	Columns []*Column
}

// Column returns a column by name.
func (l *Lookup) Column(name string) (*Column, bool) {
	for _, c := range l.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// LoadLookup reads the valu1 dataset or file at path. Every column other
// than mukey must be int16 or float32.
func LoadLookup(ctx context.Context, path string) (*Lookup, error) {
	mem := memory.NewGoAllocator()
	tbl, err := parquet.ReadTable(ctx, path, mem)
	if err != nil {
		return nil, eris.Wrap(err, "derive: read lookup table")
	}
	defer tbl.Release()

	sch := tbl.Schema()
	keyIdx := sch.FieldIndices(KeyColumn)
	if len(keyIdx) != 1 {
		return nil, eris.Errorf("derive: lookup table has no %s column", KeyColumn)
	}

	lk := &Lookup{}
	cols := make(map[int]*Column)
	for i, f := range sch.Fields() {
		if i == keyIdx[0] {
			continue
		}
		var kind schema.Kind
		switch f.Type.ID() {
		case arrow.INT16:
			kind = schema.Int16
		case arrow.FLOAT32:
			kind = schema.Float32
		default:
			return nil, eris.Errorf("derive: column %s has unsupported type %s", f.Name, f.Type)
		}
		c := &Column{Name: f.Name, Kind: kind, values: make(map[int64]float64)}
		cols[i] = c
		lk.Columns = append(lk.Columns, c)
	}

	tr := array.NewTableReader(tbl, -1)
	defer tr.Release()
	for tr.Next() {
		rec := tr.Record()
		keys, err := keyValues(rec.Column(keyIdx[0]))
		if err != nil {
			return nil, err
		}
		for i, c := range cols {
			c.add(keys, rec.Column(i))
		}
	}
	return lk, nil
}

func (c *Column) add(keys []int64, arr arrow.Array) {
	switch a := arr.(type) {
	case *array.Int16:
		for row, k := range keys {
			if k < 0 {
				continue
			}
			if _, seen := c.values[k]; seen {
				continue
			}
			if a.IsNull(row) {
				c.values[k] = Int16NoData
			} else {
				c.values[k] = float64(a.Value(row))
			}
		}
	case *array.Float32:
		for row, k := range keys {
			if k < 0 || a.IsNull(row) || math.IsNaN(float64(a.Value(row))) {
				continue
			}
			if _, seen := c.values[k]; !seen {
				c.values[k] = float64(a.Value(row))
			}
		}
	}
}

// keyValues returns the keys of a record; null keys are -1.
func keyValues(arr arrow.Array) ([]int64, error) {
	out := make([]int64, arr.Len())
	for i := range out {
		if arr.IsNull(i) {
			out[i] = -1
			continue
		}
		switch a := arr.(type) {
		case *array.Int64:
			out[i] = a.Value(i)
		case *array.Int32:
			out[i] = int64(a.Value(i))
		default:
			return nil, eris.Errorf("derive: %s column has unsupported type %s", KeyColumn, arr.DataType())
		}
	}
	return out, nil
}
