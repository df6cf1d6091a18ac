// Package endian provides the little-endian EndianEngine the codec package
// writes and reads every multi-byte numeric field through.
//
// EndianEngine combines encoding/binary's ByteOrder and AppendByteOrder
// into one interface, so one value serves both a caller that writes into a
// pre-sized buffer (as codec.Encode does) and a caller that appends to a
// growing one, without the scratch-allocate-then-append step that
// ByteOrder alone would require for the latter:
//
//	import "github.com/valuewire/vpack/endian"
//
//	engine := endian.GetLittleEndianEngine()
//	engine.PutUint32(buf, bits)
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian and binary.BigEndian both
// satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. The vpack wire
// format is little-endian by definition, so this is the only engine the
// codec package uses.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
