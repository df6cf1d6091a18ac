package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor uses pierrec/lz4's frame format rather than its block API.
// A frame is self-describing, so Decompress needs no growing-buffer retry
// loop to recover an unknown output size.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

func NewLZ4Compressor() LZ4Compressor { return LZ4Compressor{} }

func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}

	return buf.Bytes(), nil
}

func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}

	return out, nil
}
