package schema

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/gdb"
	"github.com/sells-group/gnatsgo/internal/region"
)

// UnifyCategoricals fixes the domain of every open categorical in types.
// It reads only those columns from every file and takes the sorted union of
// their non-null values, so all partitions share one dictionary. The input
// map is not modified. With no open categoricals nothing is read.
func UnifyCategoricals(ctx context.Context, opener gdb.Opener, files region.FileMap, layer string, types TypeMap) (TypeMap, error) {
	open := types.OpenCategoricals()
	out := types.Clone()
	if len(open) == 0 {
		return out, nil
	}

	log := zap.L().With(
		zap.String("component", "schema.unify"),
		zap.String("table", layer),
	)
	log.Info("unifying categorical domains", zap.Strings("columns", open))

	seen := make(map[string]map[string]struct{}, len(open))
	for _, c := range open {
		seen[c] = make(map[string]struct{})
	}

	err := gdb.Scan(ctx, opener, files, layer, gdb.ReadOptions{Columns: open}, func(_ string, f *gdb.Frame) error {
		for _, c := range open {
			for _, v := range f.Column(c) {
				if s, ok := CategoryValue(v); ok {
					seen[c][s] = struct{}{}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, c := range open {
		cats := make([]string, 0, len(seen[c]))
		for s := range seen[c] {
			cats = append(cats, s)
		}
		sort.Strings(cats)
		out[c] = CategoryOf(cats...)
		log.Debug("categorical domain fixed", zap.String("column", c), zap.Int("categories", len(cats)))
	}
	return out, nil
}

// CategoryValue renders a raw value as a category label. Nil is not a
// category.
func CategoryValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int:
		return strconv.Itoa(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return fmt.Sprint(x), true
	}
}
