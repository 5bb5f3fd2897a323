package common

import (
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	snowNode     *snowflake.Node
	snowNodeOnce sync.Once
)

func node() *snowflake.Node {
	snowNodeOnce.Do(func() {
		n, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		snowNode = n
	})
	return snowNode
}

// UUIDint64 returns a time ordered snowflake id
func UUIDint64() int64 {
	return node().Generate().Int64()
}

// UUIDString returns UUIDint64 in base 10
func UUIDString() string {
	return strconv.FormatInt(UUIDint64(), 10)
}

// SanitizeFileName keeps ASCII letters, digits and dots only
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slugify lower-cases s and replaces runs of whitespace with a hyphen
func Slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// ContainsFold reports whether substr is within s, ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
