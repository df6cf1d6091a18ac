// Package xid computes a fast, non-cryptographic digest for interned
// strings, grounded on the teacher's internal/hash package.
package xid

import "github.com/cespare/xxhash/v2"

// Of computes the xxHash64 digest of s.
//
// The intern table uses this purely as a cheap pre-check before falling
// back to an exact byte comparison; a digest collision is never treated as
// string identity.
func Of(s string) uint64 {
	return xxhash.Sum64String(s)
}
