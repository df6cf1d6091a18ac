package compress

import "github.com/klauspost/compress/s2"

// S2Compressor trades compression ratio for speed, via klauspost/compress/s2.
type S2Compressor struct{}

var _ Codec = S2Compressor{}

func NewS2Compressor() S2Compressor { return S2Compressor{} }

func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
