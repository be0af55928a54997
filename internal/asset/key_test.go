package asset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "owner/o1/items/images/1700000000000-photo.jpg", Key("o1", at, "photo.jpg"))
	assert.Equal(t, "owner/o1/items/images/1700000000000-passwd", Key("o1", at, "../../etc/passwd"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"photo.jpg":         "photo.jpg",
		"my photo (1).png":  "my_photo__1_.png",
		`C:\Users\me\a.jpg`: "a.jpg",
		"..":                "image",
		"":                  "image",
		"čaj.jpg":           "_aj.jpg",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}

func TestValidKey(t *testing.T) {
	assert.NoError(t, ValidKey("owner/o1/items/images/1-a.jpg"))
	for _, bad := range []string{"", "/abs", "a//b", "a/../b", "./a"} {
		assert.Error(t, ValidKey(bad), bad)
	}
}

func TestOwnerPrefix(t *testing.T) {
	assert.Equal(t, "owner/o1/items/images/", OwnerPrefix("o1"))
}
