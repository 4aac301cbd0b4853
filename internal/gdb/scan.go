package gdb

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/region"
)

// ScanFunc receives one region's frame.
type ScanFunc func(region string, f *Frame) error

// Scan reads layer from every file in order, one geodatabase open at a time.
// A missing file aborts the scan.
func Scan(ctx context.Context, opener Opener, files region.FileMap, layer string, opts ReadOptions, fn ScanFunc) error {
	log := zap.L().With(
		zap.String("component", "gdb.scan"),
		zap.String("layer", layer),
	)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "gdb: scan cancelled")
		}

		log.Info("reading region", zap.String("region", file.Region), zap.String("path", file.Path))

		f, err := ReadLayer(opener, file.Path, layer, opts)
		if err != nil {
			return eris.Wrapf(err, "gdb: region %s", file.Region)
		}
		if err := fn(file.Region, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadLayer opens path, reads layer and closes the geodatabase.
func ReadLayer(opener Opener, path, layer string, opts ReadOptions) (*Frame, error) {
	src, err := opener.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "gdb: open %s", path)
	}
	defer src.Close() //nolint:errcheck

	f, err := src.Read(layer, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "gdb: read %s from %s", layer, path)
	}
	return f, nil
}
