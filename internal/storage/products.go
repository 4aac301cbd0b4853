package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/gnatsgo/internal/region"
)

// Archives returns the product archive names ({product}_{region}) needed to
// convert and tile the given regions. Regions CONUS and gNATSGO-published
// regions need both products because SSURGO-only tables always read
// gSSURGO. Nil regions selects every region.
func Archives(regions []string) ([]string, error) {
	if regions == nil {
		regions = append(region.BulkRegions(), region.AllCONUS()...)
	}
	var out []string
	seen := map[string]bool{}
	add := func(p region.Product, r string) {
		name := fmt.Sprintf("%s_%s", p, r)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, r := range regions {
		r = strings.ToUpper(r)
		if !region.Valid(r) {
			return nil, eris.Errorf("storage: unknown region %s", r)
		}
		p, _ := region.ProductFor(r)
		if r == region.CONUS || p == region.GNATSGO {
			add(region.GNATSGO, r)
		}
		add(region.GSSURGO, r)
	}
	return out, nil
}

// FetchProducts downloads and extracts {baseURL}/{archive}.zip into destDir
// for every archive the regions need, at most concurrency at a time, and
// returns the extracted paths in archive order. Archives missing on the
// server are skipped with a warning; processing fails later for regions
// that need them.
func (s *Store) FetchProducts(ctx context.Context, baseURL, destDir string, regions []string, concurrency int) ([]string, error) {
	names, err := Archives(regions)
	if err != nil {
		return nil, err
	}
	if concurrency < 1 {
		concurrency = 1
	}

	paths := make([]string, len(names))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, name := range names {
		href := strings.TrimSuffix(baseURL, "/") + "/" + name + ".zip"
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "storage: cancelled")
			}
			p, err := s.Fetch(gCtx, href, destDir)
			if errors.Is(err, ErrNotFound) {
				s.log.Warn("archive not published", zap.String("href", href))
				return nil
			}
			if err != nil {
				return eris.Wrapf(err, "storage: fetch %s", name)
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var fetched []string
	seen := map[string]bool{}
	for _, p := range paths {
		if p != "" && !seen[p] {
			seen[p] = true
			fetched = append(fetched, p)
		}
	}
	return fetched, nil
}
