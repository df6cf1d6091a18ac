package codec

import (
	"fmt"
	"math"

	"github.com/valuewire/vpack/errs"
	"github.com/valuewire/vpack/intern"
	"github.com/valuewire/vpack/value"
	"github.com/valuewire/vpack/varint"
	"github.com/valuewire/vpack/wire"
)

// readFunc decodes the value whose tag byte has already been consumed.
// tag is passed through for the immediate-int and immediate-string ranges,
// where the tag byte itself carries the payload.
type readFunc func(d *decoder, tag byte) (value.Value, error)

// dispatch is the tag-byte lookup table: reading any value is exactly one
// slice index plus one call, regardless of which of the 256 possible tag
// bytes it is (spec.md §1, §4.5 — "O(1) dispatch on decode").
var dispatch [256]readFunc

func init() {
	for tag := wire.IntImmediateBase; tag <= wire.IntImmediateEnd; tag++ {
		dispatch[tag] = readImmediateInt
	}

	for tag := wire.StrImmediateBase; tag <= wire.StrImmediateEnd; tag++ {
		dispatch[tag] = readImmediateString
	}

	dispatch[wire.TagNull] = func(d *decoder, _ byte) (value.Value, error) { return value.Null(), nil }
	dispatch[wire.TagFalse] = func(d *decoder, _ byte) (value.Value, error) { return value.Bool(false), nil }
	dispatch[wire.TagTrue] = func(d *decoder, _ byte) (value.Value, error) { return value.Bool(true), nil }
	dispatch[wire.TagZero] = func(d *decoder, _ byte) (value.Value, error) { return value.Number(0), nil }
	dispatch[wire.TagU8] = readU8
	dispatch[wire.TagI16] = readI16
	dispatch[wire.TagI32] = readI32
	dispatch[wire.TagF64] = readF64
	dispatch[wire.TagStrVar] = readStrVar
	dispatch[wire.TagStrNew] = readStrNew
	dispatch[wire.TagStrRef] = readStrRef
	dispatch[wire.TagRawBuffer] = readRawBuffer
	dispatch[wire.TagArray] = readArray
	dispatch[wire.TagMap] = readMap
	dispatch[wire.TagSparse] = readSparse
	dispatch[wire.TagVector2] = readVector2
	dispatch[wire.TagVector3] = readVector3
	dispatch[wire.TagCFrame] = readCFrame
	dispatch[wire.TagColor3] = readColor3
	dispatch[wire.TagBrickColor] = readBrickColor
	dispatch[wire.TagUDim] = readUDim
	dispatch[wire.TagUDim2] = readUDim2
	dispatch[wire.TagEnumItem] = readEnumItem
	dispatch[wire.TagRect] = readRect
	dispatch[wire.TagNumberRange] = readNumberRange
	dispatch[wire.TagNumberSequence] = readNumberSequence
	dispatch[wire.TagColorSequence] = readColorSequence
	dispatch[wire.TagDateTime] = readDateTime
}

// decoder holds the cursor state for one Decode call. It is never pooled:
// unlike the encode-side decision.Stack, there is no steady-state reuse
// pattern for a one-shot read cursor.
type decoder struct {
	data     []byte
	pos      int
	interner *intern.Decoder
	depth    int
	items    int
}

// Decode parses a complete vpack payload and returns the root value.Value.
//
// Decode requires that every byte of data is consumed: a short payload is
// ErrTruncated, and a payload with unconsumed trailing bytes is also
// ErrTruncated, since a well-formed encoder never produces one (spec.md
// §1's "exact byte-count agreement" is a decode-side invariant too).
func Decode(data []byte) (value.Value, error) {
	if len(data) < 1 {
		return value.Value{}, fmt.Errorf("%w: empty payload", errs.ErrTruncated)
	}

	if data[0] != wire.Version {
		return value.Value{}, fmt.Errorf("%w: got version byte 0x%02x, want 0x%02x", errs.ErrVersionMismatch, data[0], wire.Version)
	}

	d := &decoder{data: data, pos: 1, interner: intern.NewDecoder()}

	v, err := d.readValue()
	if err != nil {
		return value.Value{}, err
	}

	if d.pos != len(d.data) {
		return value.Value{}, fmt.Errorf("%w: %d trailing byte(s) after decoded value", errs.ErrTruncated, len(d.data)-d.pos)
	}

	return v, nil
}

func (d *decoder) readValue() (value.Value, error) {
	if d.depth > wire.MaxDepth {
		return value.Value{}, fmt.Errorf("%w: recursion depth %d exceeds %d", errs.ErrLimitsExceeded, d.depth, wire.MaxDepth)
	}

	d.items++
	if d.items > wire.MaxItems {
		return value.Value{}, fmt.Errorf("%w: item count exceeds %d", errs.ErrLimitsExceeded, wire.MaxItems)
	}

	tag, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}

	fn := dispatch[tag]
	if fn == nil {
		return value.Value{}, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidTag, tag)
	}

	return fn(d, tag)
}

func (d *decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, fmt.Errorf("%w: expected 1 byte at offset %d", errs.ErrTruncated, d.pos)
	}

	b := d.data[d.pos]
	d.pos++

	return b, nil
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.data) {
		return nil, fmt.Errorf("%w: expected %d byte(s) at offset %d", errs.ErrTruncated, n, d.pos)
	}

	b := d.data[d.pos : d.pos+n]
	d.pos += n

	return b, nil
}

func (d *decoder) readVarint() (uint64, error) {
	v, n, ok := varint.Read(d.data[d.pos:])
	if !ok {
		return 0, fmt.Errorf("%w: malformed varint at offset %d", errs.ErrTruncated, d.pos)
	}

	d.pos += n

	return v, nil
}

func (d *decoder) readU16() (uint16, error) {
	b, err := d.readBytes(2)
	if err != nil {
		return 0, err
	}

	return le.Uint16(b), nil
}

func (d *decoder) readU32() (uint32, error) {
	b, err := d.readBytes(4)
	if err != nil {
		return 0, err
	}

	return le.Uint32(b), nil
}

func (d *decoder) readU64() (uint64, error) {
	b, err := d.readBytes(8)
	if err != nil {
		return 0, err
	}

	return le.Uint64(b), nil
}

func (d *decoder) readF32() (float32, error) {
	u, err := d.readU32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(u), nil
}

func (d *decoder) readF32s(n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		f, err := d.readF32()
		if err != nil {
			return nil, err
		}

		out[i] = f
	}

	return out, nil
}

func readImmediateInt(d *decoder, tag byte) (value.Value, error) {
	slot := wire.ImmediateIntSlot(tag)

	return value.Number(float64(varint.UnZigZag(uint64(slot)))), nil
}

func readImmediateString(d *decoder, tag byte) (value.Value, error) {
	n := wire.ImmediateStringLen(tag)

	b, err := d.readBytes(n)
	if err != nil {
		return value.Value{}, err
	}

	return value.String(string(b)), nil
}

func readU8(d *decoder, _ byte) (value.Value, error) {
	b, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}

	return value.Number(float64(b)), nil
}

func readI16(d *decoder, _ byte) (value.Value, error) {
	u, err := d.readU16()
	if err != nil {
		return value.Value{}, err
	}

	return value.Number(float64(int16(u))), nil
}

func readI32(d *decoder, _ byte) (value.Value, error) {
	u, err := d.readU32()
	if err != nil {
		return value.Value{}, err
	}

	return value.Number(float64(int32(u))), nil
}

func readF64(d *decoder, _ byte) (value.Value, error) {
	u, err := d.readU64()
	if err != nil {
		return value.Value{}, err
	}

	return value.Number(math.Float64frombits(u)), nil
}

func (d *decoder) readLenPrefixed() ([]byte, error) {
	n, err := d.readVarint()
	if err != nil {
		return nil, err
	}

	return d.readBytes(int(n))
}

func readStrVar(d *decoder, _ byte) (value.Value, error) {
	b, err := d.readLenPrefixed()
	if err != nil {
		return value.Value{}, err
	}

	return value.String(string(b)), nil
}

func readStrNew(d *decoder, _ byte) (value.Value, error) {
	b, err := d.readLenPrefixed()
	if err != nil {
		return value.Value{}, err
	}

	s := string(b)
	d.interner.Define(s)

	return value.String(s), nil
}

func readStrRef(d *decoder, _ byte) (value.Value, error) {
	id, err := d.readVarint()
	if err != nil {
		return value.Value{}, err
	}

	s, ok := d.interner.Get(uint32(id))
	if !ok {
		return value.Value{}, fmt.Errorf("%w: intern id %d", errs.ErrInvalidReference, id)
	}

	return value.String(s), nil
}

func readRawBuffer(d *decoder, _ byte) (value.Value, error) {
	b, err := d.readLenPrefixed()
	if err != nil {
		return value.Value{}, err
	}

	buf := make([]byte, len(b))
	copy(buf, b)

	return value.Buffer(buf), nil
}

func readArray(d *decoder, _ byte) (value.Value, error) {
	n, err := d.readVarint()
	if err != nil {
		return value.Value{}, err
	}

	d.depth++
	items := make([]value.Value, n)
	for i := range items {
		v, err := d.readValue()
		if err != nil {
			d.depth--

			return value.Value{}, err
		}

		items[i] = v
	}
	d.depth--

	return value.FromTable(value.Array(items...)), nil
}

func readKeyedTable(d *decoder, n uint64) (value.Value, error) {
	d.depth++
	keys := make([]value.Key, n)
	vals := make([]value.Value, n)

	for i := range keys {
		k, err := d.readValue()
		if err != nil {
			d.depth--

			return value.Value{}, err
		}

		key, err := valueToKey(k)
		if err != nil {
			d.depth--

			return value.Value{}, err
		}
		keys[i] = key

		v, err := d.readValue()
		if err != nil {
			d.depth--

			return value.Value{}, err
		}
		vals[i] = v
	}
	d.depth--

	return value.FromTable(value.Map(keys, vals)), nil
}

func valueToKey(v value.Value) (value.Key, error) {
	if n, ok := v.AsNumber(); ok {
		return value.NumberKey(n), nil
	}

	if s, ok := v.AsString(); ok {
		return value.StringKey(s), nil
	}

	return value.Key{}, errs.ErrInvalidKey
}

func readMap(d *decoder, _ byte) (value.Value, error) {
	n, err := d.readVarint()
	if err != nil {
		return value.Value{}, err
	}

	return readKeyedTable(d, n)
}

func readSparse(d *decoder, _ byte) (value.Value, error) {
	n, err := d.readVarint()
	if err != nil {
		return value.Value{}, err
	}

	return readKeyedTable(d, n)
}

func readVector2(d *decoder, _ byte) (value.Value, error) {
	f, err := d.readF32s(2)
	if err != nil {
		return value.Value{}, err
	}

	return value.FromVector2(value.Vector2{X: f[0], Y: f[1]}), nil
}

func readVector3(d *decoder, _ byte) (value.Value, error) {
	f, err := d.readF32s(3)
	if err != nil {
		return value.Value{}, err
	}

	return value.FromVector3(value.Vector3{X: f[0], Y: f[1], Z: f[2]}), nil
}

func readCFrame(d *decoder, _ byte) (value.Value, error) {
	f, err := d.readF32s(7)
	if err != nil {
		return value.Value{}, err
	}

	return value.FromCFrame(value.CFrame{
		Position: value.Vector3{X: f[0], Y: f[1], Z: f[2]},
		Rotation: value.Quaternion{X: f[3], Y: f[4], Z: f[5], W: f[6]},
	}), nil
}

func readColor3(d *decoder, _ byte) (value.Value, error) {
	f, err := d.readF32s(3)
	if err != nil {
		return value.Value{}, err
	}

	return value.FromColor3(value.Color3{R: f[0], G: f[1], B: f[2]}), nil
}

func readBrickColor(d *decoder, _ byte) (value.Value, error) {
	u, err := d.readU16()
	if err != nil {
		return value.Value{}, err
	}

	return value.FromBrickColor(value.BrickColor{Index: u}), nil
}

func readUDim(d *decoder, _ byte) (value.Value, error) {
	scale, err := d.readF32()
	if err != nil {
		return value.Value{}, err
	}

	offset, err := d.readU32()
	if err != nil {
		return value.Value{}, err
	}

	return value.FromUDim(value.UDim{Scale: scale, Offset: int32(offset)}), nil
}

func readUDim2(d *decoder, _ byte) (value.Value, error) {
	xScale, err := d.readF32()
	if err != nil {
		return value.Value{}, err
	}

	xOffset, err := d.readU32()
	if err != nil {
		return value.Value{}, err
	}

	yScale, err := d.readF32()
	if err != nil {
		return value.Value{}, err
	}

	yOffset, err := d.readU32()
	if err != nil {
		return value.Value{}, err
	}

	return value.FromUDim2(value.UDim2{
		X: value.UDim{Scale: xScale, Offset: int32(xOffset)},
		Y: value.UDim{Scale: yScale, Offset: int32(yOffset)},
	}), nil
}

func readEnumItem(d *decoder, _ byte) (value.Value, error) {
	d.depth++

	classVal, err := d.readValue()
	if err != nil {
		d.depth--

		return value.Value{}, err
	}

	class, ok := classVal.AsString()
	if !ok {
		d.depth--

		return value.Value{}, fmt.Errorf("%w: EnumItem class is not a string", errs.ErrInvalidTag)
	}

	nameVal, err := d.readValue()
	if err != nil {
		d.depth--

		return value.Value{}, err
	}

	name, ok := nameVal.AsString()
	if !ok {
		d.depth--

		return value.Value{}, fmt.Errorf("%w: EnumItem name is not a string", errs.ErrInvalidTag)
	}
	d.depth--

	return value.FromEnumItem(value.EnumItem{Class: class, Name: name}), nil
}

func readRect(d *decoder, _ byte) (value.Value, error) {
	f, err := d.readF32s(4)
	if err != nil {
		return value.Value{}, err
	}

	return value.FromRect(value.Rect{
		Min: value.Vector2{X: f[0], Y: f[1]},
		Max: value.Vector2{X: f[2], Y: f[3]},
	}), nil
}

func readNumberRange(d *decoder, _ byte) (value.Value, error) {
	f, err := d.readF32s(2)
	if err != nil {
		return value.Value{}, err
	}

	return value.FromNumberRange(value.NumberRange{Min: f[0], Max: f[1]}), nil
}

func readNumberSequence(d *decoder, _ byte) (value.Value, error) {
	n, err := d.readU16()
	if err != nil {
		return value.Value{}, err
	}

	kps := make([]value.NumberSequenceKeypoint, n)
	for i := range kps {
		f, err := d.readF32s(3)
		if err != nil {
			return value.Value{}, err
		}

		kps[i] = value.NumberSequenceKeypoint{Time: f[0], Value: f[1], Envelope: f[2]}
	}

	return value.FromNumberSequence(value.NumberSequence{Keypoints: kps}), nil
}

func readColorSequence(d *decoder, _ byte) (value.Value, error) {
	n, err := d.readU16()
	if err != nil {
		return value.Value{}, err
	}

	kps := make([]value.ColorSequenceKeypoint, n)
	for i := range kps {
		f, err := d.readF32s(4)
		if err != nil {
			return value.Value{}, err
		}

		interp, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}

		kps[i] = value.ColorSequenceKeypoint{
			Time:          f[0],
			Color:         value.Color3{R: f[1], G: f[2], B: f[3]},
			Interpolation: value.ColorInterpolation(interp),
		}
	}

	return value.FromColorSequence(value.ColorSequence{Keypoints: kps}), nil
}

func readDateTime(d *decoder, _ byte) (value.Value, error) {
	u, err := d.readU64()
	if err != nil {
		return value.Value{}, err
	}

	return value.FromDateTime(value.DateTime{UnixMilli: int64(u)}), nil
}
