package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/erazemk/restock/internal/asset"
)

// AssetsHandler serves files written by the local asset backend.
type AssetsHandler struct {
	Root string
}

// Get handles GET /assets/{key...}.
func (h *AssetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := asset.ValidKey(key); err != nil {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.Root, filepath.FromSlash(key))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	// Keys are never reused, so a stored file never changes.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeFile(w, r, path)
}
