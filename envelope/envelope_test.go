package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valuewire/vpack/format"
)

func TestPackUnpack_NoCompression(t *testing.T) {
	payload := []byte{0x02, 0x91, 0x03, 'f', 'o', 'o'}

	packed, err := Pack(payload)
	require.NoError(t, err)

	out, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestPackUnpack_Zstd(t *testing.T) {
	payload := make([]byte, 0, 256)
	for i := 0; i < 256; i++ {
		payload = append(payload, byte(i%7))
	}

	packed, err := Pack(payload, WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	out, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestPackUnpack_S2(t *testing.T) {
	payload := []byte("hello hello hello hello hello world")

	packed, err := Pack(payload, WithCompression(format.CompressionS2))
	require.NoError(t, err)

	out, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestPackUnpack_LZ4(t *testing.T) {
	payload := []byte("hello hello hello hello hello world")

	packed, err := Pack(payload, WithCompression(format.CompressionLZ4))
	require.NoError(t, err)

	out, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestUnpack_ShortHeader(t *testing.T) {
	_, err := Unpack([]byte{0x01})
	assert.Error(t, err)
}

func TestUnpack_VersionMismatch(t *testing.T) {
	packed, err := Pack([]byte("x"))
	require.NoError(t, err)

	packed[0] = 0xFF

	_, err = Unpack(packed)
	assert.Error(t, err)
}

func TestUnpack_TruncatedBody(t *testing.T) {
	payload := []byte("some payload bytes to compress with zstd for truncation testing")

	packed, err := Pack(payload, WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	_, err = Unpack(packed[:len(packed)-2])
	assert.Error(t, err)
}
