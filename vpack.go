// Package vpack provides a self-describing binary serializer for a
// dynamically-typed value graph: primitives, strings, opaque byte buffers,
// heterogeneous tables, and a fixed geometry/color/time catalog.
//
// # Core Features
//
//   - Single allocation per Compress call, sized exactly by a first pass
//   - O(1) tag-byte dispatch on Decode
//   - String interning, assigned in first-occurrence order
//   - A fixed catalog of geometry/color/time types alongside the general
//     primitive/string/table value model
//   - An optional outer compression envelope (Zstd, S2, LZ4) that never
//     alters the core wire format
//
// # Basic Usage
//
//	import "github.com/valuewire/vpack"
//	import "github.com/valuewire/vpack/value"
//
//	data, err := vpack.Compress(value.FromTable(value.Array(
//	    value.Number(1),
//	    value.String("hello"),
//	    value.Bool(true),
//	)))
//
//	v, err := vpack.Decompress(data)
//
// # Package Structure
//
// Compress and Decompress are convenience wrappers around the package's
// three-phase pipeline: probe.Run classifies the value graph and computes
// its exact encoded size, codec.Encode replays the resulting decision
// stack into one allocation, and codec.Decode walks the result back with a
// 256-entry tag dispatch table. Advanced callers needing envelope framing
// (outer compression) should use the envelope package directly, or the
// Serializer type below, which bundles Compress/Decompress with a fixed
// set of envelope options.
package vpack

import (
	"github.com/valuewire/vpack/codec"
	"github.com/valuewire/vpack/decision"
	"github.com/valuewire/vpack/envelope"
	"github.com/valuewire/vpack/probe"
	"github.com/valuewire/vpack/value"
	"github.com/valuewire/vpack/wire"
)

// Version is the wire format's version byte. It is bumped whenever the tag
// catalog or wire layout changes in a way that is not backward compatible.
const Version = wire.Version

// Compress classifies v, allocates exactly one buffer, and encodes v into
// it. The returned bytes are a complete, self-describing vpack payload:
// decoding them requires no external schema.
func Compress(v value.Value) ([]byte, error) {
	size, stack, err := probe.Run(v)
	if err != nil {
		return nil, err
	}

	out, err := codec.Encode(size, stack)
	decision.Put(stack)

	return out, err
}

// Decompress parses a complete vpack payload and returns the root value.
func Decompress(data []byte) (value.Value, error) {
	return codec.Decode(data)
}

// Serializer bundles Compress/Decompress with a fixed set of envelope
// options, so a caller that always wants the same outer compression
// doesn't have to repeat it at every call site.
//
// A Serializer holds no mutable state beyond its configured options; it is
// safe for concurrent use.
type Serializer struct {
	envelopeOpts []envelope.Option
}

// NewSerializer creates a Serializer that wraps every Compress call's
// output with envelope.Pack using opts, and unwraps every Decompress call's
// input with envelope.Unpack.
func NewSerializer(opts ...envelope.Option) *Serializer {
	return &Serializer{envelopeOpts: opts}
}

// Compress encodes v and packs the result into this Serializer's envelope.
func (s *Serializer) Compress(v value.Value) ([]byte, error) {
	payload, err := Compress(v)
	if err != nil {
		return nil, err
	}

	return envelope.Pack(payload, s.envelopeOpts...)
}

// Decompress unpacks data's envelope and decodes the vpack payload inside.
func (s *Serializer) Decompress(data []byte) (value.Value, error) {
	payload, err := envelope.Unpack(data)
	if err != nil {
		return value.Value{}, err
	}

	return Decompress(payload)
}

// DefaultSerializer is a ready-to-use Serializer with no outer compression
// (format.CompressionNone). Most callers that want envelope framing purely
// for its length-prefixed shape, without paying a compression cost, should
// use this instead of constructing their own.
var DefaultSerializer = NewSerializer()
