package storage

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Publish copies localPath, a file or a directory tree, to href. Directory
// contents keep their relative paths below href. Local hrefs are plain
// copies; publishing a path onto itself is a no-op.
func (s *Store) Publish(ctx context.Context, localPath, href string) error {
	info, err := os.Stat(localPath)
	if err != nil {
		return eris.Wrapf(err, "storage: stat %s", localPath)
	}

	if !info.IsDir() {
		return s.publishFile(ctx, localPath, href)
	}

	n := 0
	err = filepath.WalkDir(localPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(localPath, p)
		if err != nil {
			return err
		}
		n++
		return s.publishFile(ctx, p, joinHref(href, filepath.ToSlash(rel)))
	})
	if err != nil {
		return eris.Wrapf(err, "storage: publish %s", localPath)
	}
	s.log.Info("published", zap.String("href", href), zap.Int("files", n))
	return nil
}

func joinHref(base, rel string) string {
	if IsRemote(base) {
		return strings.TrimSuffix(base, "/") + "/" + rel
	}
	return filepath.Join(base, filepath.FromSlash(rel))
}

func (s *Store) publishFile(ctx context.Context, src, href string) error {
	switch Scheme(href) {
	case SchemeS3:
		return s.putS3(ctx, src, href)
	case SchemeHTTP:
		return eris.Errorf("storage: cannot publish to %s", href)
	default:
		return copyFile(src, href)
	}
}

func (s *Store) putS3(ctx context.Context, src, href string) error {
	client, err := s.s3Client()
	if err != nil {
		return err
	}
	bucket, key, err := splitS3(href)
	if err != nil {
		return err
	}

	f, err := os.Open(src)
	if err != nil {
		return eris.Wrapf(err, "storage: open %s", src)
	}
	defer f.Close() //nolint:errcheck

	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := contentType(key); ct != "" {
		in.ContentType = aws.String(ct)
	}
	if _, err := client.PutObjectWithContext(ctx, in); err != nil {
		return eris.Wrapf(err, "storage: put %s", href)
	}
	s.log.Debug("uploaded", zap.String("href", href))
	return nil
}

var contentTypes = map[string]string{
	".json":    "application/json",
	".tif":     "image/tiff; application=geotiff; profile=cloud-optimized",
	".parquet": "application/x-parquet",
}

func contentType(key string) string {
	return contentTypes[path.Ext(key)]
}

func copyFile(src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return eris.Wrapf(err, "storage: open %s", src)
	}
	defer in.Close() //nolint:errcheck

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return eris.Wrapf(err, "storage: create %s", filepath.Dir(dst))
	}
	return writeFile(dst, in)
}
