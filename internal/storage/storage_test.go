package storage

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	s3iface.S3API
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMockS3() *mockS3 {
	return &mockS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *mockS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (m *mockS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := *in.Bucket + "/" + *in.Key
	m.objects[k] = b
	if in.ContentType != nil {
		m.types[k] = *in.ContentType
	}
	return &s3.PutObjectOutput{}, nil
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestScheme(t *testing.T) {
	assert.Equal(t, SchemeS3, Scheme("s3://b/k"))
	assert.Equal(t, SchemeHTTP, Scheme("https://h/k"))
	assert.Equal(t, SchemeLocal, Scheme("/data/k"))
	assert.False(t, IsRemote("relative/path"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "a.zip", baseName("https://host/dir/a.zip?sig=xyz"))
	assert.Equal(t, "tables", baseName("s3://bucket/tables/"))
	assert.Equal(t, "x.tif", baseName("/tmp/x.tif"))
}

func TestFetch_HTTPZipKeepsDirectories(t *testing.T) {
	archive := zipBytes(t, map[string]string{
		"gNATSGO_AK.gdb/a00000001.gdbtable": "table",
		"gNATSGO_AK.gdb/gdb":                "marker",
	})
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	s := NewWithClients(nil, srv.Client())
	dest := t.TempDir()
	p, err := s.Fetch(context.Background(), srv.URL+"/gNATSGO_AK.zip", dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "gNATSGO_AK.gdb"), p)

	data, err := os.ReadFile(filepath.Join(p, "a00000001.gdbtable"))
	require.NoError(t, err)
	assert.Equal(t, "table", string(data))

	// The archive is reused.
	_, err = s.Fetch(context.Background(), srv.URL+"/gNATSGO_AK.zip", dest)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestFetch_HTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dest := t.TempDir()
	_, err := NewWithClients(nil, srv.Client()).Fetch(context.Background(), srv.URL+"/missing.zip", dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, statErr := os.Stat(filepath.Join(dest, "missing.zip"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetch_HTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewWithClients(nil, srv.Client()).Fetch(context.Background(), srv.URL+"/x.tif", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetch_S3(t *testing.T) {
	m := newMockS3()
	m.objects["bucket/tiles/mukey_ak.tif"] = []byte("tiff")
	s := NewWithClients(m, nil)

	p, err := s.Fetch(context.Background(), "s3://bucket/tiles/mukey_ak.tif", t.TempDir())
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "tiff", string(data))

	_, err = s.Fetch(context.Background(), "s3://bucket/missing.tif", t.TempDir())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFetch_S3WithoutClient(t *testing.T) {
	_, err := NewWithClients(nil, nil).Fetch(context.Background(), "s3://bucket/k.tif", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing s3 client")
}

func TestFetch_LocalPassthrough(t *testing.T) {
	p, err := NewWithClients(nil, nil).Fetch(context.Background(), "/data/gNATSGO_AK.gdb", "")
	require.NoError(t, err)
	assert.Equal(t, "/data/gNATSGO_AK.gdb", p)
}

func TestExtractZIP_Slip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evil.zip")
	require.NoError(t, os.WriteFile(path, zipBytes(t, map[string]string{"../evil.txt": "x"}), 0o644))
	_, err := ExtractZIP(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zip slip")
}

func TestExtractZIP_MultipleTopLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.zip")
	require.NoError(t, os.WriteFile(path, zipBytes(t, map[string]string{"a.tif": "a", "b/c.txt": "c"}), 0o644))
	dest := t.TempDir()
	top, err := ExtractZIP(path, dest)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.tif", "b"}, top)

	p, err := NewWithClients(nil, nil).Fetch(context.Background(), path, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, p)
}

func TestPublish_S3Tree(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "mapunit.parquet", "region=AK"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "mapunit.parquet", "_common_metadata"), []byte("m"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "mapunit.parquet", "region=AK", "part.0.parquet"), []byte("p"), 0o644))

	m := newMockS3()
	require.NoError(t, NewWithClients(m, nil).Publish(context.Background(), src, "s3://out/tables/"))

	assert.Equal(t, []byte("m"), m.objects["out/tables/mapunit.parquet/_common_metadata"])
	assert.Equal(t, []byte("p"), m.objects["out/tables/mapunit.parquet/region=AK/part.0.parquet"])
	assert.Equal(t, "application/x-parquet", m.types["out/tables/mapunit.parquet/region=AK/part.0.parquet"])
}

func TestPublish_LocalFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "collection.json")
	require.NoError(t, os.WriteFile(src, []byte("{}"), 0o644))

	dst := filepath.Join(t.TempDir(), "stac", "collection.json")
	s := NewWithClients(nil, nil)
	require.NoError(t, s.Publish(context.Background(), src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	require.NoError(t, s.Publish(context.Background(), src, src))
}

func TestPublish_HTTPRejected(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.json")
	require.NoError(t, os.WriteFile(src, []byte("{}"), 0o644))
	assert.Error(t, NewWithClients(nil, nil).Publish(context.Background(), src, "https://host/a.json"))
}

func TestArchives(t *testing.T) {
	names, err := Archives([]string{"ak", "CONUS", "HI", "AL"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"gNATSGO_AK", "gSSURGO_AK",
		"gNATSGO_CONUS", "gSSURGO_CONUS",
		"gSSURGO_HI",
		"gSSURGO_AL",
	}, names)

	_, err = Archives([]string{"XX"})
	assert.Error(t, err)

	all, err := Archives(nil)
	require.NoError(t, err)
	// 58 regions plus CONUS, with gNATSGO regions and CONUS fetched twice.
	assert.Len(t, all, 59+29)
}

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".zip")
		if name == "gSSURGO_AK" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(zipBytes(t, map[string]string{name + ".gdb/gdb": "x", name + ".tif": "t"}))
	}))
	defer srv.Close()

	dest := t.TempDir()
	got, err := NewWithClients(nil, srv.Client()).FetchProducts(context.Background(), srv.URL+"/", dest, []string{"AK"}, 2)
	require.NoError(t, err)
	// Two top-level entries, so the extraction directory is returned.
	assert.Equal(t, []string{dest}, got)
	_, err = os.Stat(filepath.Join(dest, "gNATSGO_AK.gdb", "gdb"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "gNATSGO_AK.tif"))
	assert.NoError(t, err)
}

func TestFetchProducts_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewWithClients(nil, nil).FetchProducts(ctx, "https://host", t.TempDir(), []string{"AK"}, 1)
	assert.Error(t, err)
}
