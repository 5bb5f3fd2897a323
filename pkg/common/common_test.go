package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDint64_Monotonic(t *testing.T) {
	a := UUIDint64()
	b := UUIDint64()
	assert.Greater(t, b, a)
	assert.NotEqual(t, UUIDString(), UUIDString())
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"ring photo (1).jpg": "ringphoto1.jpg",
		"../../etc/passwd":   "....etcpasswd",
		"झुमका.png":          ".png",
		"plain.webp":         "plain.webp",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFileName(in), in)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "gold-rings", Slugify("Gold Rings"))
	assert.Equal(t, "bridal-sets", Slugify("  Bridal   Sets "))
	assert.Equal(t, "", Slugify(""))
}
