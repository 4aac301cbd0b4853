// Package storage moves inputs and outputs between the local disk, HTTP
// servers and S3.
package storage

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/config"
)

// Store resolves hrefs for reading and publishes outputs.
type Store struct {
	s3   s3iface.S3API
	http *http.Client
	log  *zap.Logger
}

// New returns a Store. The S3 client is created lazily on first use of an
// s3:// href.
func New(cfg config.StorageConfig) *Store {
	return &Store{
		http: &http.Client{Timeout: 30 * time.Minute},
		log:  zap.L().With(zap.String("component", "storage.store")),
		s3:   lazyS3(cfg.S3Region),
	}
}

// NewWithClients returns a Store using the given clients. A nil S3 client
// makes s3:// hrefs fail.
func NewWithClients(s3c s3iface.S3API, hc *http.Client) *Store {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Store{
		s3:   s3c,
		http: hc,
		log:  zap.L().With(zap.String("component", "storage.store")),
	}
}

func lazyS3(regionName string) s3iface.S3API {
	return &lazyClient{region: regionName}
}

// lazyClient defers session creation so local-only runs need no AWS
// credentials.
type lazyClient struct {
	s3iface.S3API
	region string
}

func (c *lazyClient) client() (s3iface.S3API, error) {
	if c.S3API != nil {
		return c.S3API, nil
	}
	cfg := aws.NewConfig()
	if c.region != "" {
		cfg = cfg.WithRegion(c.region)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *cfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, eris.Wrap(err, "storage: create AWS session")
	}
	c.S3API = s3.New(sess)
	return c.S3API, nil
}

func (s *Store) s3Client() (s3iface.S3API, error) {
	if s.s3 == nil {
		return nil, eris.New("storage: missing s3 client")
	}
	if lc, ok := s.s3.(*lazyClient); ok {
		return lc.client()
	}
	return s.s3, nil
}

// Scheme kinds of an href.
const (
	SchemeLocal = "local"
	SchemeHTTP  = "http"
	SchemeS3    = "s3"
)

// Scheme classifies href.
func Scheme(href string) string {
	switch {
	case strings.HasPrefix(href, "s3://"):
		return SchemeS3
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return SchemeHTTP
	default:
		return SchemeLocal
	}
}

// IsRemote reports whether href is not a local path.
func IsRemote(href string) bool { return Scheme(href) != SchemeLocal }

// splitS3 returns the bucket and key of an s3:// URL.
func splitS3(href string) (string, string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", "", eris.Wrapf(err, "storage: parse S3 URL %s", href)
	}
	if u.Host == "" {
		return "", "", eris.Errorf("storage: %s has no bucket", href)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// baseName returns the last path element of href without any query.
func baseName(href string) string {
	if u, err := url.Parse(href); err == nil && u.Scheme != "" {
		href = u.Path
	}
	href = strings.TrimSuffix(href, "/")
	if i := strings.LastIndexByte(href, '/'); i >= 0 {
		return href[i+1:]
	}
	return href
}
