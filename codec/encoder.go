// Package codec implements the linear Encoder and the tag-dispatched
// Decoder: the second and third phases of the vpack pipeline.
//
// Encode allocates exactly one buffer, sized to the Probe's reported byte
// count, and replays a decision.Stack into it without ever branching on
// the original value.Value content — every byte it writes comes from a
// Decision's own payload fields. Decode is the inverse: a 256-entry
// dispatch table keyed by tag byte, with per-read bounds validation.
package codec

import (
	"fmt"
	"math"

	"github.com/valuewire/vpack/decision"
	"github.com/valuewire/vpack/endian"
	"github.com/valuewire/vpack/errs"
	"github.com/valuewire/vpack/varint"
	"github.com/valuewire/vpack/wire"
)

var le = endian.GetLittleEndianEngine()

// Encode writes the version byte followed by every Decision in stack, into
// a single buffer of exactly size bytes.
//
// If the stack is exhausted before size bytes are written, or the write
// overruns size, that is an internal invariant violation: Probe and
// Encoder have diverged on what the input classifies to. Encode never
// returns a partially written buffer in that case.
func Encode(size int, stack *decision.Stack) ([]byte, error) {
	buf := make([]byte, size)
	buf[0] = wire.Version
	offset := 1

	n := stack.Len()
	for i := 0; i < n; i++ {
		written, err := writeDecision(buf, offset, stack.At(i))
		if err != nil {
			return nil, err
		}
		offset += written

		if offset > size {
			return nil, fmt.Errorf("%w: decision %d overran buffer of size %d at offset %d", errs.ErrInternalInvariant, i, size, offset)
		}
	}

	if offset != size {
		return nil, fmt.Errorf("%w: probe reported %d bytes, encoder wrote %d", errs.ErrInternalInvariant, size, offset)
	}

	return buf, nil
}

func writeDecision(buf []byte, offset int, d decision.Decision) (int, error) {
	switch d.Kind {
	case decision.KindNull:
		buf[offset] = wire.TagNull

		return 1, nil
	case decision.KindBoolTrue:
		buf[offset] = wire.TagTrue

		return 1, nil
	case decision.KindBoolFalse:
		buf[offset] = wire.TagFalse

		return 1, nil
	case decision.KindNumberZero:
		buf[offset] = wire.TagZero

		return 1, nil
	case decision.KindIntImmediate:
		buf[offset] = wire.ImmediateIntTag(d.Slot)

		return 1, nil
	case decision.KindU8:
		buf[offset] = wire.TagU8
		buf[offset+1] = d.U8

		return 2, nil
	case decision.KindI16:
		buf[offset] = wire.TagI16
		le.PutUint16(buf[offset+1:], uint16(d.I16))

		return 3, nil
	case decision.KindI32:
		buf[offset] = wire.TagI32
		le.PutUint32(buf[offset+1:], uint32(d.I32))

		return 5, nil
	case decision.KindF64:
		buf[offset] = wire.TagF64
		le.PutUint64(buf[offset+1:], math.Float64bits(d.F64))

		return 9, nil
	case decision.KindStrImmediate:
		buf[offset] = wire.ImmediateStringTag(len(d.Str))
		copy(buf[offset+1:], d.Str)

		return 1 + len(d.Str), nil
	case decision.KindStrVar:
		return writeStrLenPrefixed(buf, offset, wire.TagStrVar, d.Str), nil
	case decision.KindStrNew:
		return writeStrLenPrefixed(buf, offset, wire.TagStrNew, d.Str), nil
	case decision.KindStrRef:
		buf[offset] = wire.TagStrRef
		n := varint.Put(buf[offset+1:], uint64(d.InternID))

		return 1 + n, nil
	case decision.KindRawBuffer:
		return writeLenPrefixed(buf, offset, wire.TagRawBuffer, d.Bytes), nil
	case decision.KindTableArray:
		buf[offset] = wire.TagArray
		n := varint.Put(buf[offset+1:], uint64(d.Count))

		return 1 + n, nil
	case decision.KindTableSparse:
		buf[offset] = wire.TagSparse
		n := varint.Put(buf[offset+1:], uint64(d.Count))

		return 1 + n, nil
	case decision.KindTableMap:
		buf[offset] = wire.TagMap
		n := varint.Put(buf[offset+1:], uint64(d.Count))

		return 1 + n, nil
	case decision.KindVector2:
		buf[offset] = wire.TagVector2
		putF32s(buf[offset+1:], d.F32[:2])

		return 1 + 2*4, nil
	case decision.KindVector3:
		buf[offset] = wire.TagVector3
		putF32s(buf[offset+1:], d.F32[:3])

		return 1 + 3*4, nil
	case decision.KindCFrame:
		buf[offset] = wire.TagCFrame
		putF32s(buf[offset+1:], d.F32[:7])

		return 1 + 7*4, nil
	case decision.KindColor3:
		buf[offset] = wire.TagColor3
		putF32s(buf[offset+1:], d.F32[:3])

		return 1 + 3*4, nil
	case decision.KindBrickColor:
		buf[offset] = wire.TagBrickColor
		le.PutUint16(buf[offset+1:], uint16(d.Slot))

		return 1 + 2, nil
	case decision.KindUDim:
		buf[offset] = wire.TagUDim
		putF32s(buf[offset+1:], d.F32[:1])
		le.PutUint32(buf[offset+5:], uint32(d.I32))

		return 1 + 4 + 4, nil
	case decision.KindUDim2:
		buf[offset] = wire.TagUDim2
		le.PutUint32(buf[offset+1:], math.Float32bits(d.F32[0]))
		le.PutUint32(buf[offset+5:], uint32(d.I32x2[0]))
		le.PutUint32(buf[offset+9:], math.Float32bits(d.F32[1]))
		le.PutUint32(buf[offset+13:], uint32(d.I32x2[1]))

		return 1 + 16, nil
	case decision.KindRect:
		buf[offset] = wire.TagRect
		putF32s(buf[offset+1:], d.F32[:4])

		return 1 + 4*4, nil
	case decision.KindNumberRange:
		buf[offset] = wire.TagNumberRange
		putF32s(buf[offset+1:], d.F32[:2])

		return 1 + 2*4, nil
	case decision.KindNumberSequence:
		buf[offset] = wire.TagNumberSequence
		le.PutUint16(buf[offset+1:], uint16(len(d.NumberKeypoints)))
		o := offset + 3
		for _, kp := range d.NumberKeypoints {
			putF32s(buf[o:], []float32{kp.Time, kp.Value, kp.Envelope})
			o += 3 * 4
		}

		return o - offset, nil
	case decision.KindColorSequence:
		buf[offset] = wire.TagColorSequence
		le.PutUint16(buf[offset+1:], uint16(len(d.ColorKeypoints)))
		o := offset + 3
		for _, kp := range d.ColorKeypoints {
			putF32s(buf[o:], []float32{kp.Time, kp.Color.R, kp.Color.G, kp.Color.B})
			buf[o+16] = byte(kp.Interpolation)
			o += 4*4 + 1
		}

		return o - offset, nil
	case decision.KindDateTime:
		buf[offset] = wire.TagDateTime
		le.PutUint64(buf[offset+1:], uint64(d.I64))

		return 1 + 8, nil
	case decision.KindEnumItem:
		buf[offset] = wire.TagEnumItem

		return 1, nil
	default:
		return 0, fmt.Errorf("%w: decision kind %d", errs.ErrInternalInvariant, d.Kind)
	}
}

func writeLenPrefixed(buf []byte, offset int, tag byte, payload []byte) int {
	buf[offset] = tag
	n := varint.Put(buf[offset+1:], uint64(len(payload)))
	copy(buf[offset+1+n:], payload)

	return 1 + n + len(payload)
}

// writeStrLenPrefixed is writeLenPrefixed's string-payload counterpart.
// copy's string-to-[]byte form writes directly into buf with no
// intermediate []byte conversion of payload.
func writeStrLenPrefixed(buf []byte, offset int, tag byte, payload string) int {
	buf[offset] = tag
	n := varint.Put(buf[offset+1:], uint64(len(payload)))
	copy(buf[offset+1+n:], payload)

	return 1 + n + len(payload)
}

func putF32s(dst []byte, vals []float32) {
	for i, v := range vals {
		le.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
