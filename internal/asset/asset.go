// Package asset compresses item photos and stores them in an object store,
// handing back a durable reference (URL) that the item record keeps.
package asset

import (
	"context"
	"io"
)

// Upload is a raw image as received from the client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Compressed is the output of an ImageCompressor.
type Compressed struct {
	Data []byte
	MIME string
}

// ImageCompressor shrinks an image before it is stored.
type ImageCompressor interface {
	Compress(ctx context.Context, data []byte) (Compressed, error)
}

// ObjectStore persists binary objects under storage-relative keys.
// Put returns a fetchable reference; KeyFromRef reverses it.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromRef(ref string) (string, error)
}
