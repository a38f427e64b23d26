package redis

import (
	"fmt"
	"strings"
)

const (
	// KeyPrefixPage is the prefix for rendered page keys
	KeyPrefixPage = "ra:page:"
	// KeyRevision holds the content revision last published by any instance
	KeyRevision = "ra:revision"
)

// PageKey returns the Redis key for a rendered page.
// The revision leads so stale revisions can be matched by prefix.
func PageKey(revision, cacheKey string) string {
	return KeyPrefixPage + revision + ":" + cacheKey
}

// RevisionPattern matches every page of one revision.
func RevisionPattern(revision string) string {
	return KeyPrefixPage + revision + ":*"
}

// ExtractRevision extracts the revision from a page key
func ExtractRevision(key string) (string, error) {
	if !strings.HasPrefix(key, KeyPrefixPage) {
		return "", fmt.Errorf("invalid page key: %s", key)
	}
	rest := key[len(KeyPrefixPage):]
	i := strings.IndexByte(rest, ':')
	if i <= 0 {
		return "", fmt.Errorf("invalid page key: %s", key)
	}
	return rest[:i], nil
}
