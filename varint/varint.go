// Package varint implements the unsigned LEB128 varint codec and the
// ZigZag signed/unsigned bijection used by the vpack wire format.
//
// The encoding side always emits the shortest form; the decoding side
// accepts any encoding that yields the same integer, per the wire format's
// stated tolerance, but caps width at MaxVarintLen and rejects overflow.
package varint

import "github.com/valuewire/vpack/wire"

// Len returns the number of bytes required to encode v as a uvarint.
//
// This is a fast inline calculation that avoids allocating a scratch
// buffer just to measure it.
func Len(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}

// Put encodes v into dst as an unsigned LEB128 varint and returns the
// number of bytes written. dst must have at least Len(v) bytes available.
func Put(dst []byte, v uint64) int {
	i := 0
	for v >= 0x80 {
		dst[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	dst[i] = byte(v)

	return i + 1
}

// Append encodes v as an unsigned LEB128 varint, appending it to dst.
func Append(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// Read decodes an unsigned LEB128 varint from the start of src.
//
// It returns the decoded value, the number of bytes consumed, and whether
// the decode succeeded. It fails (n == 0) if src is exhausted before a
// terminating byte is found, if the encoding exceeds MaxVarintLen bytes,
// or if the value overflows 64 bits.
func Read(src []byte) (v uint64, n int, ok bool) {
	var shift uint
	for i := 0; i < len(src) && i < wire.MaxVarintLen; i++ {
		b := src[i]
		if b < 0x80 {
			if i == wire.MaxVarintLen-1 && b > 1 {
				return 0, 0, false // would overflow 64 bits
			}

			v |= uint64(b) << shift

			return v, i + 1, true
		}

		v |= uint64(b&0x7F) << shift
		shift += 7
	}

	return 0, 0, false
}

// ZigZag folds a signed integer into an unsigned one such that small
// absolute values map to small unsigned values.
func ZigZag(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// UnZigZag is the inverse of ZigZag.
func UnZigZag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
