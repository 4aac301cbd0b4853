package storage

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a remote object does not exist.
var ErrNotFound = eris.New("storage: object not found")

// Fetch makes href readable locally and returns the local path. Remote
// objects are downloaded into destDir, reusing a previous non-empty
// download. ZIP archives are extracted into destDir; when the archive holds
// a single top-level entry (a .gdb directory, say) its path is returned.
func (s *Store) Fetch(ctx context.Context, href, destDir string) (string, error) {
	log := s.log.With(zap.String("href", href))

	local := href
	if IsRemote(href) {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return "", eris.Wrap(err, "storage: create dest dir")
		}
		local = filepath.Join(destDir, baseName(href))
		if info, err := os.Stat(local); err == nil && info.Size() > 0 {
			log.Debug("already downloaded", zap.String("path", local))
		} else {
			log.Info("downloading")
			if err := s.download(ctx, href, local); err != nil {
				_ = os.Remove(local)
				return "", err
			}
		}
	}

	if !strings.EqualFold(filepath.Ext(local), ".zip") {
		return local, nil
	}
	if destDir == "" {
		destDir = filepath.Dir(local)
	}
	top, err := ExtractZIP(local, destDir)
	if err != nil {
		return "", err
	}
	if len(top) == 1 {
		return filepath.Join(destDir, top[0]), nil
	}
	return destDir, nil
}

// Localizer returns a function mapping hrefs to local paths under destDir.
func (s *Store) Localizer(ctx context.Context, destDir string) func(string) (string, error) {
	return func(href string) (string, error) {
		if !IsRemote(href) {
			return href, nil
		}
		return s.Fetch(ctx, href, destDir)
	}
}

func (s *Store) download(ctx context.Context, href, dest string) error {
	switch Scheme(href) {
	case SchemeHTTP:
		return s.downloadHTTP(ctx, href, dest)
	case SchemeS3:
		return s.downloadS3(ctx, href, dest)
	default:
		return eris.Errorf("storage: cannot download %s", href)
	}
}

func (s *Store) downloadHTTP(ctx context.Context, href, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, href, nil)
	if err != nil {
		return eris.Wrap(err, "storage: build request")
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "storage: download %s", href)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return eris.Wrapf(ErrNotFound, "storage: %s", href)
	case resp.StatusCode != http.StatusOK:
		return eris.Errorf("storage: download %s returned status %d", href, resp.StatusCode)
	}
	return writeFile(dest, resp.Body)
}

func (s *Store) downloadS3(ctx context.Context, href, dest string) error {
	client, err := s.s3Client()
	if err != nil {
		return err
	}
	bucket, key, err := splitS3(href)
	if err != nil {
		return err
	}
	out, err := client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchBucket, s3.ErrCodeNoSuchKey:
				return eris.Wrapf(ErrNotFound, "storage: %s", href)
			}
		}
		return eris.Wrapf(err, "storage: get %s", href)
	}
	defer out.Body.Close() //nolint:errcheck
	return writeFile(dest, out.Body)
}

func writeFile(dest string, r io.Reader) error {
	f, err := os.Create(dest)
	if err != nil {
		return eris.Wrap(err, "storage: create file")
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return eris.Wrap(err, "storage: write file")
	}
	if err := f.Close(); err != nil {
		return eris.Wrap(err, "storage: close file")
	}
	return nil
}

// ExtractZIP extracts an archive into destDir keeping its directory
// structure and returns its top-level entry names in archive order.
func ExtractZIP(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	var top []string
	seen := map[string]bool{}
	for _, f := range r.File {
		if err := extractZIPEntry(f, destDir); err != nil {
			return nil, err
		}
		first, _, _ := strings.Cut(strings.TrimPrefix(filepath.ToSlash(f.Name), "./"), "/")
		if first != "" && !seen[first] {
			seen[first] = true
			top = append(top, first)
		}
	}
	return top, nil
}

func extractZIPEntry(f *zip.File, destDir string) error {
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return eris.Errorf("zip: illegal path %q (zip slip attempt)", f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0o755); err != nil {
			return eris.Wrap(err, "zip: create directory")
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return eris.Wrap(err, "zip: create parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return eris.Wrap(err, "zip: open entry")
	}
	defer rc.Close() //nolint:errcheck
	return writeFile(destPath, rc)
}
