package schema

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/gdb"
)

// Metadata keys written to the Arrow (and parquet) schema.
const (
	MetaDescription = "description"
	MetaUnits       = "units"
)

// ArrowType returns the Arrow type a column is written as. Categoricals are
// dictionary encoded with int32 indices.
func ArrowType(t ColumnType) (arrow.DataType, error) {
	switch t.Kind {
	case Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case Boolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case Timestamp:
		return &arrow.TimestampType{Unit: arrow.Millisecond}, nil
	case String:
		return arrow.BinaryTypes.String, nil
	case Binary:
		return arrow.BinaryTypes.Binary, nil
	case Categorical:
		if t.Open() {
			return nil, eris.New("schema: categorical domain is not fixed")
		}
		return &arrow.DictionaryType{
			IndexType: arrow.PrimitiveTypes.Int32,
			ValueType: arrow.BinaryTypes.String,
		}, nil
	}
	return nil, eris.Errorf("schema: unsupported column kind %v", t.Kind)
}

// Build returns the Arrow schema of in. types must have every categorical
// fixed. The table description and per-field metadata are attached here.
func Build(in *Inference, types TypeMap, description string) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, len(in.Columns))
	for _, col := range in.Columns {
		t, ok := types[col]
		if !ok {
			return nil, eris.Errorf("schema: no type for column %s", col)
		}
		dt, err := ArrowType(t)
		if err != nil {
			return nil, eris.Wrapf(err, "schema: column %s", col)
		}
		fields = append(fields, arrow.Field{
			Name:     col,
			Type:     dt,
			Nullable: true,
			Metadata: fieldMetadata(in.Meta[col]),
		})
	}

	var md *arrow.Metadata
	if description != "" {
		m := arrow.NewMetadata([]string{MetaDescription}, []string{description})
		md = &m
	}
	return arrow.NewSchema(fields, md), nil
}

func fieldMetadata(m FieldMeta) arrow.Metadata {
	var keys, vals []string
	if m.Description != "" {
		keys = append(keys, MetaDescription)
		vals = append(vals, m.Description)
	}
	if m.Units != "" {
		keys = append(keys, MetaUnits)
		vals = append(vals, m.Units)
	}
	return arrow.NewMetadata(keys, vals)
}

// Convert coerces f into a record shaped by sch. The frame must carry
// exactly the schema's columns; a frame from a region whose layout diverges
// from the inferred one is rejected rather than padded or truncated.
func Convert(mem memory.Allocator, sch *arrow.Schema, types TypeMap, f *gdb.Frame) (arrow.Record, error) {
	if err := checkLayout(sch, f); err != nil {
		return nil, err
	}

	cols := make([]arrow.Array, 0, sch.NumFields())
	release := func() {
		for _, c := range cols {
			c.Release()
		}
	}

	for _, field := range sch.Fields() {
		arr, err := convertColumn(mem, field, types[field.Name], f.Column(field.Name))
		if err != nil {
			release()
			return nil, eris.Wrapf(err, "schema: column %s", field.Name)
		}
		cols = append(cols, arr)
	}

	rec := array.NewRecord(sch, cols, int64(f.Len()))
	release()
	return rec, nil
}

func checkLayout(sch *arrow.Schema, f *gdb.Frame) error {
	var missing, extra []string
	for _, field := range sch.Fields() {
		if !f.Has(field.Name) {
			missing = append(missing, field.Name)
		}
	}
	for _, n := range f.Names() {
		if !sch.HasField(n) {
			extra = append(extra, n)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return eris.Errorf("schema: layout diverges from inferred schema (missing %v, unexpected %v)", missing, extra)
}

func convertColumn(mem memory.Allocator, field arrow.Field, t ColumnType, vals []any) (arrow.Array, error) {
	switch t.Kind {
	case Int16:
		b := array.NewInt16Builder(mem)
		defer b.Release()
		for i, v := range vals {
			n, ok, err := toInt(v, math.MinInt16, math.MaxInt16)
			if err != nil {
				return nil, eris.Wrapf(err, "row %d", i)
			}
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(int16(n))
		}
		return b.NewArray(), nil

	case Int32:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		for i, v := range vals {
			n, ok, err := toInt(v, math.MinInt32, math.MaxInt32)
			if err != nil {
				return nil, eris.Wrapf(err, "row %d", i)
			}
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(int32(n))
		}
		return b.NewArray(), nil

	case Int64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for i, v := range vals {
			n, ok, err := toInt(v, math.MinInt64, math.MaxInt64)
			if err != nil {
				return nil, eris.Wrapf(err, "row %d", i)
			}
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(n)
		}
		return b.NewArray(), nil

	case Float32:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		for i, v := range vals {
			x, ok, err := toFloat(v)
			if err != nil {
				return nil, eris.Wrapf(err, "row %d", i)
			}
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(float32(x))
		}
		return b.NewArray(), nil

	case Boolean:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				b.AppendNull()
			case bool:
				b.Append(x)
			default:
				return nil, eris.Errorf("row %d: cannot convert %T to boolean", i, v)
			}
		}
		return b.NewArray(), nil

	case Timestamp:
		b := array.NewTimestampBuilder(mem, field.Type.(*arrow.TimestampType))
		defer b.Release()
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				b.AppendNull()
			case time.Time:
				ts, err := arrow.TimestampFromTime(x, arrow.Millisecond)
				if err != nil {
					return nil, eris.Wrapf(err, "row %d", i)
				}
				b.Append(ts)
			default:
				return nil, eris.Errorf("row %d: cannot convert %T to timestamp", i, v)
			}
		}
		return b.NewArray(), nil

	case String:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for _, v := range vals {
			s, ok := CategoryValue(v)
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(s)
		}
		return b.NewArray(), nil

	case Binary:
		b := array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
		defer b.Release()
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				b.AppendNull()
			case []byte:
				if x == nil {
					b.AppendNull()
					continue
				}
				b.Append(x)
			default:
				return nil, eris.Errorf("row %d: cannot convert %T to binary", i, v)
			}
		}
		return b.NewArray(), nil

	case Categorical:
		return convertCategorical(mem, field.Type, t, vals)
	}
	return nil, eris.Errorf("unsupported column kind %v", t.Kind)
}

func convertCategorical(mem memory.Allocator, dt arrow.DataType, t ColumnType, vals []any) (arrow.Array, error) {
	if t.Open() {
		return nil, eris.New("categorical domain is not fixed")
	}

	index := make(map[string]int32, len(t.Categories))
	db := array.NewStringBuilder(mem)
	defer db.Release()
	for i, c := range t.Categories {
		if _, dup := index[c]; !dup {
			index[c] = int32(i)
		}
		db.Append(c)
	}
	dict := db.NewArray()
	defer dict.Release()

	ib := array.NewInt32Builder(mem)
	defer ib.Release()
	for i, v := range vals {
		s, ok := CategoryValue(v)
		if !ok {
			ib.AppendNull()
			continue
		}
		idx, ok := index[s]
		if !ok {
			return nil, eris.Errorf("row %d: value %q is not in the categorical domain", i, s)
		}
		ib.Append(idx)
	}
	indices := ib.NewArray()
	defer indices.Release()

	return array.NewDictionaryArray(dt, indices, dict), nil
}

// toInt converts v to an integer within [lo, hi]. ok is false for nulls.
func toInt(v any, lo, hi int64) (n int64, ok bool, err error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case int64:
		n = x
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int16:
		n = int64(x)
	case float64:
		if math.IsNaN(x) {
			return 0, false, nil
		}
		if x != math.Trunc(x) || x < float64(lo) || x > float64(hi) {
			return 0, false, eris.Errorf("cannot convert %v to an integer in [%d, %d]", x, lo, hi)
		}
		n = int64(x)
	case string:
		p, perr := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if perr != nil {
			return 0, false, eris.Wrapf(perr, "cannot convert %q to integer", x)
		}
		n = p
	default:
		return 0, false, eris.Errorf("cannot convert %T to integer", v)
	}
	if n < lo || n > hi {
		return 0, false, eris.Errorf("value %d overflows [%d, %d]", n, lo, hi)
	}
	return n, true, nil
}

// toFloat converts v to a float. NaN is kept; ok is false for nulls.
func toFloat(v any) (x float64, ok bool, err error) {
	switch y := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return y, true, nil
	case float32:
		return float64(y), true, nil
	case int64:
		return float64(y), true, nil
	case int:
		return float64(y), true, nil
	case string:
		p, perr := strconv.ParseFloat(strings.TrimSpace(y), 64)
		if perr != nil {
			return 0, false, eris.Wrapf(perr, "cannot convert %q to float", y)
		}
		return p, true, nil
	}
	return 0, false, eris.Errorf("cannot convert %T to float", v)
}
