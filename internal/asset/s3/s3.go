// Package s3 stores assets in an S3-compatible bucket through minio-go.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/erazemk/restock/internal/asset"
)

// Config selects the endpoint, bucket and credentials of the store.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// PublicURL is the origin clients fetch objects from. Defaults to the
	// endpoint with the scheme implied by UseSSL.
	PublicURL string
}

// Storage is an asset.ObjectStore backed by an S3 bucket. References are
// path-style object URLs: {public}/{bucket}/{key}.
type Storage struct {
	cl     *minio.Client
	bucket string
	public string
}

// New creates a Storage for cfg.Bucket. It does not contact the endpoint.
func New(cfg Config) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	cl, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client: %w", err)
	}

	public := strings.TrimRight(cfg.PublicURL, "/")
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = scheme + "://" + cfg.Endpoint
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, public: public}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Storage) EnsureBucket(ctx context.Context, region string) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if ok {
		return nil
	}
	if err := s.cl.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("creating bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Put uploads r under key and returns the object URL.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := asset.ValidKey(key); err != nil {
		return "", err
	}
	_, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return s.refFor(key), nil
}

// Delete removes the object stored under key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// KeyFromRef strips the public origin and bucket from an object URL.
func (s *Storage) KeyFromRef(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing asset ref: %w", err)
	}
	base, err := url.Parse(s.public)
	if err != nil {
		return "", fmt.Errorf("parsing public url: %w", err)
	}
	prefix := strings.TrimRight(base.Path, "/") + "/" + s.bucket + "/"
	if u.Host != base.Host || !strings.HasPrefix(u.Path, prefix) {
		return "", fmt.Errorf("asset ref %q is not in bucket %s", ref, s.bucket)
	}
	key := strings.TrimPrefix(u.Path, prefix)
	if err := asset.ValidKey(key); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Storage) refFor(key string) string {
	segs := strings.Split(key, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return s.public + "/" + url.PathEscape(s.bucket) + "/" + strings.Join(segs, "/")
}
