package asset

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/erazemk/restock/internal/model"
)

const defaultFilename = "image"

// Key builds the storage key for a new item image:
// owner/{owner}/items/images/{unixMillis}-{filename}.
// The millisecond prefix keeps repeated uploads of the same file apart.
func Key(owner model.OwnerID, at time.Time, filename string) string {
	return fmt.Sprintf("%s%d-%s", OwnerPrefix(owner), at.UnixMilli(), SanitizeFilename(filename))
}

// OwnerPrefix is the key prefix under which all of owner's assets live.
func OwnerPrefix(owner model.OwnerID) string {
	return model.ItemsPath(owner) + "/images/"
}

// SanitizeFilename strips directories and replaces anything outside
// [A-Za-z0-9._-] so the name is safe as a single key segment.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return defaultFilename
	}
	return out
}

// withJPEGExt swaps the extension for .jpg once the data has been
// re-encoded as JPEG.
func withJPEGExt(name string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + ".jpg"
}

// ValidKey rejects keys that could escape the store root.
func ValidKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid asset key %q", key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("invalid asset key %q", key)
		}
	}
	return nil
}
