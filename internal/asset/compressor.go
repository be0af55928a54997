package asset

import (
	"context"

	"github.com/erazemk/restock/internal/imaging"
)

// ImagingCompressor is the ImageCompressor backed by the imaging package.
type ImagingCompressor struct {
	Policy imaging.Policy
}

// NewImagingCompressor returns a compressor using the default policy
// (800px, ~0.2 MB).
func NewImagingCompressor() *ImagingCompressor {
	return &ImagingCompressor{Policy: imaging.DefaultPolicy}
}

// Compress implements ImageCompressor.
func (c *ImagingCompressor) Compress(ctx context.Context, data []byte) (Compressed, error) {
	if err := ctx.Err(); err != nil {
		return Compressed{}, err
	}
	res, err := imaging.Compress(data, c.Policy)
	if err != nil {
		return Compressed{}, err
	}
	return Compressed{Data: res.Data, MIME: res.MIME}, nil
}
