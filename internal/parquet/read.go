package parquet

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/rotisserie/eris"
)

// ReadSchema returns the Arrow schema of a parquet file, or of a dataset
// directory through its _common_metadata.
func ReadSchema(path string) (*arrow.Schema, error) {
	target, err := schemaFile(path)
	if err != nil {
		return nil, err
	}

	rdr, err := file.OpenParquetFile(target, false)
	if err != nil {
		return nil, eris.Wrapf(err, "parquet: open %s", target)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, eris.Wrapf(err, "parquet: reader for %s", target)
	}
	sch, err := fr.Schema()
	if err != nil {
		return nil, eris.Wrapf(err, "parquet: schema of %s", target)
	}
	return sch, nil
}

// ReadTable reads a parquet file, or the single data file of an
// unpartitioned dataset directory, into memory.
func ReadTable(ctx context.Context, path string, mem memory.Allocator) (arrow.Table, error) {
	target, err := dataFile(path)
	if err != nil {
		return nil, err
	}

	rdr, err := file.OpenParquetFile(target, false)
	if err != nil {
		return nil, eris.Wrapf(err, "parquet: open %s", target)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{BatchSize: 64 * 1024}, mem)
	if err != nil {
		return nil, eris.Wrapf(err, "parquet: reader for %s", target)
	}
	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, eris.Wrapf(err, "parquet: read %s", target)
	}
	return tbl, nil
}

// RowGroups returns the number of row groups of a file or unpartitioned
// dataset.
func RowGroups(path string) (int, error) {
	target, err := dataFile(path)
	if err != nil {
		return 0, err
	}
	rdr, err := file.OpenParquetFile(target, false)
	if err != nil {
		return 0, eris.Wrapf(err, "parquet: open %s", target)
	}
	defer rdr.Close()
	return rdr.NumRowGroups(), nil
}

// Partitions lists the partition values of a hive-partitioned dataset for
// column key, sorted.
func Partitions(root, key string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, eris.Wrapf(err, "parquet: list %s", root)
	}
	prefix := key + "="
	var out []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			out = append(out, strings.TrimPrefix(e.Name(), prefix))
		}
	}
	sort.Strings(out)
	return out, nil
}

// PartitionFile returns the data file of one partition.
func PartitionFile(root, key, value string) string {
	return filepath.Join(root, key+"="+value, DataFile)
}

// IsDataset reports whether path is a dataset directory.
func IsDataset(path string) bool {
	_, err := os.Stat(filepath.Join(path, CommonMetadata))
	return err == nil
}

func schemaFile(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", eris.Wrapf(err, "parquet: stat %s", path)
	}
	if !fi.IsDir() {
		return path, nil
	}
	return filepath.Join(path, CommonMetadata), nil
}

func dataFile(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", eris.Wrapf(err, "parquet: stat %s", path)
	}
	if !fi.IsDir() {
		return path, nil
	}
	target := filepath.Join(path, DataFile)
	if _, err := os.Stat(target); err != nil {
		return "", eris.Errorf("parquet: %s has no %s; partitioned datasets are read per partition", path, DataFile)
	}
	return target, nil
}
