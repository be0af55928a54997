package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Default compression policy for item photos.
const (
	MaxDimension = 800
	MaxBytes     = 200 << 10
)

// Quality bounds for the JPEG encoder. Quality steps down from
// StartQuality to MinQuality before dimensions are reduced further.
const (
	StartQuality = 85
	MinQuality   = 40
	qualityStep  = 10
	minDimension = 64
)

// MaxPixels caps the decoded size of an input. Headers are checked before
// decoding, so a small file declaring huge dimensions is rejected cheaply.
const MaxPixels = 40_000_000

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ErrUnsupported is returned for inputs that are not a decodable image.
var ErrUnsupported = errors.New("unsupported image format")

// ErrTooLarge is returned for inputs whose pixel count exceeds MaxPixels.
var ErrTooLarge = errors.New("image dimensions too large")

// Policy bounds the output of Compress.
type Policy struct {
	MaxDimension int
	MaxBytes     int
}

// DefaultPolicy is 800px on the longest side and about 0.2 MB.
var DefaultPolicy = Policy{MaxDimension: MaxDimension, MaxBytes: MaxBytes}

// Result contains the compressed image data.
type Result struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Compress validates the format by sniffing bytes, downscales to the
// policy's maximum dimension and re-encodes as JPEG, lowering quality and
// then dimensions until the output fits MaxBytes. If the floor is reached
// first, the smallest encoding produced is returned.
func Compress(data []byte, p Policy) (*Result, error) {
	if p.MaxDimension <= 0 {
		p.MaxDimension = MaxDimension
	}
	if p.MaxBytes <= 0 {
		p.MaxBytes = MaxBytes
	}

	// Sniff actual MIME type from bytes (not trusting client headers).
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, detected)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, p.MaxDimension)

	var best []byte
	for {
		for q := StartQuality; q >= MinQuality; q -= qualityStep {
			out, err := encodeJPEG(img, q)
			if err != nil {
				return nil, err
			}
			if best == nil || len(out) < len(best) {
				best = out
			}
			if len(out) <= p.MaxBytes {
				return result(out, img), nil
			}
		}

		b := img.Bounds()
		longest := max(b.Dx(), b.Dy())
		if longest <= minDimension {
			break
		}
		img = downscale(img, max(longest*3/4, minDimension))
	}

	return result(best, img), nil
}

func result(data []byte, img image.Image) *Result {
	b := img.Bounds()
	return &Result{Data: data, MIME: "image/jpeg", Width: b.Dx(), Height: b.Dy()}
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes the image so neither dimension exceeds maxDim.
// Uses high-quality Catmull-Rom interpolation.
// Returns the original image if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	// Calculate new dimensions preserving aspect ratio.
	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
