package convert

import (
	"context"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/gdb"
	"github.com/sells-group/gnatsgo/internal/parquet"
	"github.com/sells-group/gnatsgo/internal/schema"
)

// Consolidator reads a table from every region and writes one dataset.
type Consolidator struct {
	opener gdb.Opener
	mem    memory.Allocator
	log    *zap.Logger
}

// NewConsolidator returns a Consolidator reading through opener.
func NewConsolidator(opener gdb.Opener, mem memory.Allocator) *Consolidator {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &Consolidator{
		opener: opener,
		mem:    mem,
		log:    zap.L().With(zap.String("component", "convert.consolidator")),
	}
}

// Consolidate writes t to {outDir}/{table}.parquet. Open categoricals are fixed across every region before anything is
// written. Partitioned tables get one region={code} directory per region;
// other tables get one row group per region in a single data file. On
// failure nothing is left at the dataset path.
func (c *Consolidator) Consolidate(ctx context.Context, t *Table, outDir string) (Result, error) {
	log := c.log.With(zap.String("table", t.Spec.Name))

	types, err := schema.UnifyCategoricals(ctx, c.opener, t.Files, t.Spec.Name, t.Inference.Types)
	if err != nil {
		return Result{}, eris.Wrapf(err, "convert: unify categoricals of %s", t.Spec.Name)
	}

	sch, err := schema.Build(t.Inference, types, t.Description)
	if err != nil {
		return Result{}, eris.Wrapf(err, "convert: schema of %s", t.Spec.Name)
	}

	root := filepath.Join(outDir, t.DatasetName())
	opts := parquet.Options{Allocator: c.mem}
	if t.Spec.Partition {
		opts.PartitionBy = t.Inference.PartitionColumn
	}
	w, err := parquet.Create(root, opts)
	if err != nil {
		return Result{}, err
	}

	err = gdb.Scan(ctx, c.opener, t.Files, t.Spec.Name, t.readOptions(), func(reg string, f *gdb.Frame) error {
		schema.RemapBooleans(f, types)

		partition := ""
		if t.Spec.Partition {
			f.SetConst(opts.PartitionBy, reg)
			partition = reg
		}

		rec, err := schema.Convert(c.mem, sch, types, f)
		if err != nil {
			return eris.Wrapf(err, "convert: %s region %s", t.Spec.Name, reg)
		}
		defer rec.Release()

		if err := w.Write(rec, partition); err != nil {
			return eris.Wrapf(err, "convert: write %s region %s", t.Spec.Name, reg)
		}
		log.Info("region converted", zap.String("region", reg), zap.Int64("rows", rec.NumRows()))
		return nil
	})
	if err == nil {
		if cerr := w.Close(); cerr != nil {
			err = eris.Wrapf(cerr, "convert: finish %s", t.Spec.Name)
		}
	}
	if err != nil {
		if aerr := w.Abort(); aerr != nil {
			log.Error("discard partial dataset", zap.Error(aerr))
		}
		return Result{}, err
	}

	log.Info("table written",
		zap.String("path", root),
		zap.Int64("rows", w.Rows()),
		zap.Int("columns", len(w.Schema().Fields())),
	)
	return Result{Table: t.Spec.Name, Dataset: root, Rows: w.Rows()}, nil
}

// Concat reads t from every region into one frame with booleans remapped.
// Columns restricts the read; nil reads every inferred column. Partitioned
// tables carry their region column.
func (c *Consolidator) Concat(ctx context.Context, t *Table, columns []string) (*gdb.Frame, error) {
	opts := t.readOptions()
	if columns != nil {
		opts.Columns = columns
	}

	var out *gdb.Frame
	err := gdb.Scan(ctx, c.opener, t.Files, t.Spec.Name, opts, func(reg string, f *gdb.Frame) error {
		schema.RemapBooleans(f, t.Inference.Types)
		if t.Spec.Partition {
			f.SetConst(t.Inference.PartitionColumn, reg)
		}
		if out == nil {
			out = f
			return nil
		}
		return out.Append(f)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "convert: concat %s", t.Spec.Name)
	}
	return out, nil
}
