// Package intern implements the per-call string intern tables used by the
// Probe (encode side) and the Decoder (decode side).
//
// The encode-side table is grounded directly on the teacher's
// internal/collision.Tracker: a digest-keyed map of buckets for fast lookup
// plus a sequential id counter for first-occurrence order, with a Reset that
// clears state but keeps the map's storage for reuse.
package intern

import "github.com/valuewire/vpack/internal/xid"

// slot pairs an interned string with its assigned id, so a single digest
// bucket can hold more than one string if their digests happen to collide.
type slot struct {
	str string
	id  uint32
}

// Encoder tracks which strings have been seen during one Probe traversal
// and assigns sequential ids in first-occurrence order, per spec.md §3.3:
// "IDs are assigned sequentially from 0 in first-encounter order."
//
// An Encoder is scoped to a single Compress call; it is never pooled,
// since pooling a map of arbitrary caller strings across calls would leak
// string references indefinitely (spec.md §3.5).
type Encoder struct {
	buckets map[uint64][]slot
	next    uint32
}

// New creates an empty intern Encoder.
func New() *Encoder {
	return &Encoder{buckets: make(map[uint64][]slot)}
}

// Lookup reports whether s has been seen before and, if so, its assigned
// id. On a miss, the caller is responsible for calling Insert if this
// occurrence should be interned.
func (e *Encoder) Lookup(s string) (id uint32, found bool) {
	digest := xid.Of(s)
	for _, sl := range e.buckets[digest] {
		if sl.str == s {
			return sl.id, true
		}
	}

	return 0, false
}

// Insert assigns the next sequential id to s and records it, returning the
// assigned id. Insert must only be called once per distinct string (after
// a Lookup miss); calling it twice for the same string produces two ids
// for one string, which Lookup would never surface but would still be a
// caller bug.
func (e *Encoder) Insert(s string) uint32 {
	digest := xid.Of(s)
	id := e.next
	e.next++
	e.buckets[digest] = append(e.buckets[digest], slot{str: s, id: id})

	return id
}

// Reset clears all tracked strings, preserving bucket map capacity for
// reuse. Encoders are not pooled (see Encoder), so Reset is
// provided for callers that want to reuse one Encoder across a sequence of
// independent Probe runs without decision-stack pooling semantics.
func (e *Encoder) Reset() {
	for k := range e.buckets {
		delete(e.buckets, k)
	}
	e.next = 0
}
