package storage

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
)

// SeenSet holds the identity hashes of items already published.
// Presence is the only signal; entries never expire.
type SeenSet map[string]struct{}

// NewSeenSet returns a set holding the given hashes.
func NewSeenSet(hashes ...string) SeenSet {
	s := make(SeenSet, len(hashes))
	for _, h := range hashes {
		s.MarkSeen(h)
	}
	return s
}

// IsNew reports whether hash has not been seen yet.
func (s SeenSet) IsNew(hash string) bool {
	_, ok := s[hash]
	return !ok
}

// MarkSeen adds hash to the set. Adding an existing hash is a no-op.
func (s SeenSet) MarkSeen(hash string) {
	if hash == "" {
		return
	}
	s[hash] = struct{}{}
}

// Len returns the number of hashes in the set.
func (s SeenSet) Len() int {
	return len(s)
}

// Hashes returns the set contents in sorted order.
func (s SeenSet) Hashes() []string {
	out := make([]string, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Hash computes the identity of an item: MD5 hex digest of title+link.
func Hash(title, link string) string {
	sum := md5.Sum([]byte(title + link))
	return hex.EncodeToString(sum[:])
}
