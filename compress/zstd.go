package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor provides Zstandard compression for an already-encoded
// vpack payload, as an outer envelope framing step. It favors compression
// ratio over speed, making it suited to archival storage or bandwidth-
// constrained transmission where decoding happens infrequently relative
// to encoding.
//
// Pack/Unpack calls are rare relative to the per-value work inside
// codec.Encode/Decode, so a fresh encoder/decoder per call is simpler than
// pooling one and is not a bottleneck here.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

func NewZstdCompressor() ZstdCompressor { return ZstdCompressor{} }

func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: new encoder: %w", err)
	}
	defer enc.Close()

	return enc.EncodeAll(data, nil), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: new decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: decode: %w", err)
	}

	return out, nil
}
