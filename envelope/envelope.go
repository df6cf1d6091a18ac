// Package envelope wraps a complete vpack payload (as produced by
// codec.Encode / vpack.Compress) with an optional outer compression layer.
//
// The envelope is strictly additive: Pack never inspects or alters the
// vpack bytes it wraps, and a caller that never uses this package gets the
// bare wire format with no framing overhead at all. Unpack never needs to
// know anything about vpack's tag catalog — it only needs to know which
// compress.Codec produced its input.
package envelope

import (
	"fmt"

	"github.com/valuewire/vpack/compress"
	"github.com/valuewire/vpack/errs"
	"github.com/valuewire/vpack/format"
	"github.com/valuewire/vpack/internal/options"
	"github.com/valuewire/vpack/internal/pool"
	"github.com/valuewire/vpack/varint"
)

// envelopeVersion is the outer framing format's own version byte, distinct
// from and unrelated to wire.Version (the inner vpack payload's version).
const envelopeVersion = 0x01

// config holds the settings a Pack call is built from.
type config struct {
	compression format.CompressionType
}

func defaultConfig() *config {
	return &config{compression: format.CompressionNone}
}

// Option configures a Pack call.
type Option = options.Option[*config]

// WithCompression selects the outer compression algorithm. The default,
// if this option is omitted, is format.CompressionNone.
func WithCompression(c format.CompressionType) Option {
	return options.NoError(func(cfg *config) {
		cfg.compression = c
	})
}

// Pack compresses payload (a complete vpack-encoded buffer) with the
// algorithm selected by opts and frames it as:
//
//	[envelope version byte][compression type byte][varint original length][compressed bytes]
//
// The original length is recorded so Unpack can validate the decompressed
// size without trusting the codec to get it right.
func Pack(payload []byte, opts ...Option) ([]byte, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedType, err)
	}

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("envelope: compress: %w", err)
	}

	bb := pool.GetEnvelopeBuffer()
	defer pool.PutEnvelopeBuffer(bb)

	bb.MustWrite([]byte{envelopeVersion, byte(cfg.compression)})
	bb.B = varint.Append(bb.B, uint64(len(payload)))
	bb.MustWrite(compressed)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// Unpack reverses Pack, returning the original vpack-encoded payload.
//
// Unpack validates that the decompressed length matches the length Pack
// recorded; a mismatch is ErrTruncated, since it means the framing and the
// compressed body have diverged.
func Unpack(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: envelope header too short", errs.ErrTruncated)
	}

	if data[0] != envelopeVersion {
		return nil, fmt.Errorf("%w: got envelope version 0x%02x, want 0x%02x", errs.ErrVersionMismatch, data[0], envelopeVersion)
	}

	compression := format.CompressionType(data[1])

	origLen, n, ok := varint.Read(data[2:])
	if !ok {
		return nil, fmt.Errorf("%w: malformed envelope length varint", errs.ErrTruncated)
	}

	body := data[2+n:]

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedType, err)
	}

	out, err := codec.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("envelope: decompress: %w", err)
	}

	if uint64(len(out)) != origLen {
		return nil, fmt.Errorf("%w: envelope recorded %d bytes, decompressed to %d", errs.ErrTruncated, origLen, len(out))
	}

	return out, nil
}
