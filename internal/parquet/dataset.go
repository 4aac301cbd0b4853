// Package parquet writes and reads the hive-style parquet datasets produced
// for each SSURGO table.
package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	pq "github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// CommonMetadata is the zero-row file holding a dataset's full schema.
const CommonMetadata = "_common_metadata"

// DataFile is the name of the single data file in a dataset directory or
// partition.
const DataFile = "part.0.parquet"

// Options configures a dataset Writer.
type Options struct {
	// PartitionBy names the column the dataset is split by. The column is
	// kept in _common_metadata and dropped from the data files.
	PartitionBy string
	// Allocator defaults to the Go allocator.
	Allocator memory.Allocator
}

// Writer writes one dataset directory. The schema is fixed by the first
// record written; later records must match it.
type Writer struct {
	root string
	opts Options
	mem  memory.Allocator
	log  *zap.Logger

	schema *arrow.Schema
	data   *arrow.Schema
	keep   []int

	stream     *pqarrow.FileWriter
	partitions map[string]bool
	rows       int64
}

// Create prepares root as an empty dataset directory, replacing anything
// already there.
func Create(root string, opts Options) (*Writer, error) {
	if err := os.RemoveAll(root); err != nil {
		return nil, eris.Wrapf(err, "parquet: clear %s", root)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, eris.Wrapf(err, "parquet: create %s", root)
	}
	mem := opts.Allocator
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &Writer{
		root:       root,
		opts:       opts,
		mem:        mem,
		log:        zap.L().With(zap.String("component", "parquet.writer"), zap.String("dataset", root)),
		partitions: make(map[string]bool),
	}, nil
}

// Schema returns the dataset schema, nil before the first write.
func (w *Writer) Schema() *arrow.Schema { return w.schema }

// Rows returns the number of rows written so far.
func (w *Writer) Rows() int64 { return w.rows }

// Write appends rec to the dataset. For a partitioned dataset, partition
// names the directory the record lands in and must not have been written
// before. For an unpartitioned dataset each record becomes a row group of
// the single data file and partition must be empty.
func (w *Writer) Write(rec arrow.Record, partition string) error {
	if err := w.fix(rec.Schema()); err != nil {
		return err
	}

	if w.opts.PartitionBy == "" {
		if partition != "" {
			return eris.Errorf("parquet: %s is not partitioned", w.root)
		}
		if err := w.writeStream(rec); err != nil {
			return err
		}
		w.rows += rec.NumRows()
		return nil
	}

	if err := checkPartition(partition); err != nil {
		return err
	}
	if w.partitions[partition] {
		return eris.Errorf("parquet: partition %s written twice", partition)
	}

	data := w.project(rec)
	defer data.Release()

	dir := filepath.Join(w.root, fmt.Sprintf("%s=%s", w.opts.PartitionBy, partition))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "parquet: create partition %s", dir)
	}
	if err := w.writeFile(filepath.Join(dir, DataFile), w.data, data); err != nil {
		return err
	}
	w.partitions[partition] = true
	w.rows += rec.NumRows()
	w.log.Debug("partition written", zap.String("partition", partition), zap.Int64("rows", rec.NumRows()))
	return nil
}

// Close finishes the data file and writes _common_metadata.
func (w *Writer) Close() error {
	if w.stream != nil {
		err := w.stream.Close()
		w.stream = nil
		if err != nil {
			return eris.Wrap(err, "parquet: close data file")
		}
	}
	if w.schema == nil {
		return eris.Errorf("parquet: nothing written to %s", w.root)
	}

	b := array.NewRecordBuilder(w.mem, w.schema)
	defer b.Release()
	empty := b.NewRecord()
	defer empty.Release()
	if err := w.writeFile(filepath.Join(w.root, CommonMetadata), w.schema, empty); err != nil {
		return err
	}
	w.log.Info("dataset written", zap.Int64("rows", w.rows), zap.Int("partitions", len(w.partitions)))
	return nil
}

// Abort discards the dataset: an open data file is closed without its
// footer and root is removed.
func (w *Writer) Abort() error {
	if w.stream != nil {
		_ = w.stream.Close()
		w.stream = nil
	}
	if err := os.RemoveAll(w.root); err != nil {
		return eris.Wrapf(err, "parquet: remove %s", w.root)
	}
	w.log.Warn("dataset discarded", zap.Int64("rows", w.rows))
	return nil
}

func (w *Writer) fix(sch *arrow.Schema) error {
	if w.schema != nil {
		if !sch.Equal(w.schema) {
			return eris.Errorf("parquet: record schema diverges from dataset schema\nrecord: %s\ndataset: %s", sch, w.schema)
		}
		return nil
	}

	w.schema = sch
	w.data = sch
	if w.opts.PartitionBy == "" {
		return nil
	}

	idx := sch.FieldIndices(w.opts.PartitionBy)
	if len(idx) != 1 {
		return eris.Errorf("parquet: partition column %s not in schema", w.opts.PartitionBy)
	}
	fields := make([]arrow.Field, 0, sch.NumFields()-1)
	for i, f := range sch.Fields() {
		if i == idx[0] {
			continue
		}
		fields = append(fields, f)
		w.keep = append(w.keep, i)
	}
	md := sch.Metadata()
	w.data = arrow.NewSchema(fields, &md)
	return nil
}

func (w *Writer) project(rec arrow.Record) arrow.Record {
	cols := make([]arrow.Array, len(w.keep))
	for i, c := range w.keep {
		cols[i] = rec.Column(c)
	}
	return array.NewRecord(w.data, cols, rec.NumRows())
}

func (w *Writer) writeStream(rec arrow.Record) error {
	if w.stream == nil {
		f, err := os.Create(filepath.Join(w.root, DataFile))
		if err != nil {
			return eris.Wrap(err, "parquet: create data file")
		}
		fw, err := w.newWriter(f, w.schema)
		if err != nil {
			f.Close()
			return err
		}
		w.stream = fw
	}
	if err := w.stream.Write(rec); err != nil {
		return eris.Wrap(err, "parquet: write row group")
	}
	return nil
}

func (w *Writer) writeFile(path string, sch *arrow.Schema, rec arrow.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "parquet: create %s", path)
	}
	fw, err := w.newWriter(f, sch)
	if err != nil {
		f.Close()
		return err
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return eris.Wrapf(err, "parquet: write %s", path)
	}
	// Closing the file writer also closes f.
	if err := fw.Close(); err != nil {
		return eris.Wrapf(err, "parquet: close %s", path)
	}
	return nil
}

func (w *Writer) newWriter(f *os.File, sch *arrow.Schema) (*pqarrow.FileWriter, error) {
	props := pq.NewWriterProperties(
		pq.WithCompression(compress.Codecs.Snappy),
		pq.WithAllocator(w.mem),
	)
	arrProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithStoreSchema(),
		pqarrow.WithAllocator(w.mem),
	)
	fw, err := pqarrow.NewFileWriter(sch, f, props, arrProps)
	if err != nil {
		return nil, eris.Wrapf(err, "parquet: writer for %s", f.Name())
	}
	return fw, nil
}

func checkPartition(p string) error {
	if p == "" || strings.ContainsAny(p, `/\=`) || p == "." || p == ".." {
		return eris.Errorf("parquet: invalid partition value %q", p)
	}
	return nil
}
