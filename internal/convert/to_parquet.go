package convert

import (
	"context"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/gdb"
	"github.com/sells-group/gnatsgo/internal/schema"
	"github.com/sells-group/gnatsgo/internal/ssurgo"
)

// Result records one converted table.
type Result struct {
	Table   string
	Dataset string
	Rows    int64
}

// ToParquet converts tables from the geodatabases in inDir to datasets in
// outDir. Empty tables converts the whole catalog. Table descriptions come
// from the gSSURGO CONUS metadata, except valu1 which has its own. Tables
// are processed in order and the first failure stops the run; datasets
// already written are kept.
func ToParquet(ctx context.Context, opener gdb.Opener, inDir, outDir string, tables []string) ([]Result, error) {
	log := zap.L().With(zap.String("component", "convert.to_parquet"))

	if len(tables) == 0 {
		tables = ssurgo.Names()
	}
	for _, name := range tables {
		if _, ok := ssurgo.Lookup(name); !ok {
			return nil, eris.Errorf("convert: unknown table %s", name)
		}
	}

	descriptions, err := tableDescriptions(opener, filepath.Join(inDir, ssurgo.DescriptionSource))
	if err != nil {
		return nil, err
	}

	cons := NewConsolidator(opener, memory.NewGoAllocator())
	var out []Result
	for _, name := range tables {
		if err := ctx.Err(); err != nil {
			return out, eris.Wrap(err, "convert: cancelled")
		}
		log.Info("converting table", zap.String("table", name))

		desc := descriptions[name]
		if name == ssurgo.Valu1 {
			desc = ssurgo.Valu1Descriptions["table"]
		}

		t, err := NewTable(opener, inDir, name, desc)
		if err != nil {
			return out, err
		}
		res, err := cons.Consolidate(ctx, t, outDir)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

func tableDescriptions(opener gdb.Opener, path string) (map[string]string, error) {
	src, err := opener.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "convert: open %s", path)
	}
	defer src.Close() //nolint:errcheck

	desc, err := schema.ReadTableDescriptions(src)
	if err != nil {
		return nil, eris.Wrapf(err, "convert: table descriptions from %s", path)
	}
	return desc, nil
}
