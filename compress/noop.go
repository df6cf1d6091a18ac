package compress

// NoOpCompressor is the identity Codec. CompressionNone selects it so the
// envelope's framing format stays uniform even when no compression runs.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

func NewNoOpCompressor() NoOpCompressor { return NoOpCompressor{} }

// Compress returns data unchanged; the caller must not mutate it afterward.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
