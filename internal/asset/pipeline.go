package asset

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/restock/internal/model"
)

// Pipeline compresses images and stores them, and releases them again
// when the owning item lets go.
type Pipeline struct {
	compressor ImageCompressor
	store      ObjectStore
	log        *slog.Logger
	now        func() time.Time
}

// NewPipeline wires a compressor and an object store together.
func NewPipeline(compressor ImageCompressor, store ObjectStore, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		compressor: compressor,
		store:      store,
		log:        logger.With("component", "asset"),
		now:        time.Now,
	}
}

// SetClock replaces the time source used for key prefixes.
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

type compressResult struct {
	out Compressed
	err error
}

// CompressAndUpload compresses up and writes it under a fresh key in
// owner's image folder, returning the stored reference. A compression
// failure is not fatal: the original bytes are uploaded instead.
// Store failures are returned as *model.AssetError matching model.ErrUpload.
func (p *Pipeline) CompressAndUpload(ctx context.Context, owner model.OwnerID, up Upload) (string, error) {
	if len(up.Data) == 0 {
		return "", &model.ValidationError{Field: "image", Reason: "empty file"}
	}

	data, mime, filename := up.Data, up.ContentType, up.Filename

	// Compression is CPU bound; run it aside and wait for it or for ctx.
	done := make(chan compressResult, 1)
	go func() {
		out, err := p.compressor.Compress(ctx, up.Data)
		done <- compressResult{out: out, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			p.log.Warn("image compression failed, uploading original",
				"owner", owner, "file", up.Filename, "size", len(up.Data), "error", res.err)
		} else {
			data, mime, filename = res.out.Data, res.out.MIME, withJPEGExt(SanitizeFilename(up.Filename))
			p.log.Debug("image compressed", "owner", owner, "from", len(up.Data), "to", len(data))
		}
	case <-ctx.Done():
		return "", &model.AssetError{Op: "upload", Err: ctx.Err()}
	}

	if mime == "" {
		mime = http.DetectContentType(data)
	}

	key := Key(owner, p.now(), filename)
	ref, err := p.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mime)
	if err != nil {
		return "", &model.AssetError{Op: "upload", Key: key, Err: err}
	}

	p.log.Info("asset uploaded", "owner", owner, "key", key, "size", len(data))
	return ref, nil
}

// DeleteAsset removes the object behind ref. Failures are returned as
// *model.AssetError matching model.ErrDelete.
func (p *Pipeline) DeleteAsset(ctx context.Context, ref string) error {
	key, err := p.store.KeyFromRef(ref)
	if err != nil {
		return &model.AssetError{Op: "delete", Err: err}
	}
	if err := p.store.Delete(ctx, key); err != nil {
		return &model.AssetError{Op: "delete", Key: key, Err: err}
	}
	p.log.Info("asset deleted", "key", key)
	return nil
}

// Release deletes ref if set and only logs a failure. Metadata operations
// never wait on storage hygiene.
func (p *Pipeline) Release(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := p.DeleteAsset(ctx, ref); err != nil {
		p.log.Warn("asset cleanup failed", "ref", ref, "error", err)
	}
}
