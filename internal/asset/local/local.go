// Package local stores assets as files under a directory and addresses
// them as URLs served by the API's /assets/ route.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/erazemk/restock/internal/asset"
)

// RoutePrefix is the URL path under which stored files are served.
const RoutePrefix = "/assets/"

// Storage is a filesystem-backed asset.ObjectStore.
type Storage struct {
	root    string
	baseURL string
	// routePath is the URL path refs start with, including any path
	// component of baseURL.
	routePath string
}

// New returns a Storage rooted at dir. baseURL is the externally visible
// origin of the server, e.g. http://localhost:8080.
func New(dir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating asset directory: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving asset directory: %w", err)
	}
	baseURL = strings.TrimRight(baseURL, "/")
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing asset base url: %w", err)
	}
	return &Storage{
		root:      abs,
		baseURL:   baseURL,
		routePath: strings.TrimRight(base.Path, "/") + RoutePrefix,
	}, nil
}

// Root returns the directory files are written to.
func (s *Storage) Root() string {
	return s.root
}

// Put writes r to the file for key and returns its URL. The file is
// written to a temporary name first so readers never see a partial image.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := asset.ValidKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := s.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("creating asset folder: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing asset: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("moving asset into place: %w", err)
	}

	return s.refFor(key), nil
}

// Delete removes the file for key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := asset.ValidKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("asset %s: %w", key, err)
		}
		return fmt.Errorf("removing asset: %w", err)
	}
	return nil
}

// KeyFromRef turns a URL produced by Put back into its storage key.
func (s *Storage) KeyFromRef(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing asset ref: %w", err)
	}
	if !strings.HasPrefix(u.Path, s.routePath) {
		return "", fmt.Errorf("asset ref %q is not under %s", ref, s.routePath)
	}
	key := strings.TrimPrefix(u.Path, s.routePath)
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
	return s.baseURL + RoutePrefix + strings.Join(segs, "/")
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}
