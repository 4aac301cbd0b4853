package main

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/storage"
)

func newStore() *storage.Store {
	return storage.New(cfg.Storage)
}

// stage returns a local path to write output destined for href. Remote
// hrefs get a temporary directory that publish uploads and removes.
func stage(store *storage.Store, href string) (local string, publish func(context.Context) error, err error) {
	if !storage.IsRemote(href) {
		return href, func(context.Context) error { return nil }, nil
	}
	dir, err := stagingDir()
	if err != nil {
		return "", nil, err
	}
	publish = func(ctx context.Context) error {
		defer os.RemoveAll(dir) //nolint:errcheck
		return store.Publish(ctx, dir, href)
	}
	return dir, publish, nil
}

// stageFile is stage for a single output file.
func stageFile(store *storage.Store, href string) (string, func(context.Context) error, error) {
	if !storage.IsRemote(href) {
		return href, func(context.Context) error { return nil }, nil
	}
	dir, err := stagingDir()
	if err != nil {
		return "", nil, err
	}
	local := filepath.Join(dir, path.Base(href))
	publish := func(ctx context.Context) error {
		defer os.RemoveAll(dir) //nolint:errcheck
		return store.Publish(ctx, local, href)
	}
	return local, publish, nil
}

func stagingDir() (string, error) {
	if cfg.Source.TempDir != "" {
		if err := os.MkdirAll(cfg.Source.TempDir, 0o755); err != nil {
			return "", eris.Wrap(err, "create temp dir")
		}
	}
	dir, err := os.MkdirTemp(cfg.Source.TempDir, "gnatsgo-")
	if err != nil {
		return "", eris.Wrap(err, "create staging dir")
	}
	return dir, nil
}

// requireLocal rejects remote hrefs for inputs GDAL must read as directories.
func requireLocal(href, what string) error {
	if storage.IsRemote(href) {
		return eris.Errorf("%s must be a local directory, got %s", what, href)
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// toUpper uppercases all strings in a slice.
func toUpper(ss []string) []string {
	for i, s := range ss {
		ss[i] = strings.ToUpper(s)
	}
	return ss
}
