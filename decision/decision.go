// Package decision defines the Decision record and the append-only Stack
// the Probe produces and the Encoder replays.
//
// This is the split-brain guard at the center of the design: the Probe is
// the only component that ever classifies a Value, and it writes down
// every classification it makes so the Encoder never has to re-derive one.
// A Decision carries enough payload to write its bytes without consulting
// the original Value again.
package decision

import "github.com/valuewire/vpack/value"

// Kind discriminates which variant a Decision holds. The set matches
// spec.md §3.2 exactly — one Kind per decision variant named there.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolTrue
	KindBoolFalse
	KindIntImmediate
	KindU8
	KindI16
	KindI32
	KindF64
	KindNumberZero
	KindStrImmediate
	KindStrNew
	KindStrRef
	KindStrVar
	KindTableArray
	KindTableSparse
	KindTableMap
	KindVector2
	KindVector3
	KindCFrame
	KindColor3
	KindBrickColor
	KindUDim
	KindUDim2
	KindRect
	KindNumberRange
	KindNumberSequence
	KindColorSequence
	KindDateTime
	KindEnumItem
	KindRawBuffer
)

// Decision is a single classification the Probe made, with every field the
// Encoder needs to write the corresponding bytes. Only the fields relevant
// to Kind are populated; this mirrors the teacher's NumericIndexEntry — one
// fixed-shape record, documented field by field, rather than an interface
// hierarchy per variant.
type Decision struct {
	Kind Kind

	// Str holds the string payload for StrImmediate, StrNew, and StrVar.
	// It is the original Go string, not a []byte copy of it — Encoder
	// writes it with the copy builtin's string-to-[]byte form, so no
	// per-string allocation happens between Probe and Encoder.
	Str string

	// Bytes holds the raw-buffer payload for RawBuffer. It aliases the
	// original Value's bytes; the Probe never copies it.
	Bytes []byte

	// InternID is the assigned or referenced intern table id, for
	// StrNew (assigned) and StrRef (referenced).
	InternID uint32

	// Slot is the ZigZag slot (0..63) for IntImmediate, or the
	// BrickColor palette index.
	Slot int

	// U8/I16/I32/F64/I64 hold the fixed-width numeric payload for the
	// correspondingly named Kind.
	U8  uint8
	I16 int16
	I32 int32
	F64 float64
	I64 int64

	// Count is the element count for TableArray, TableSparse, and
	// TableMap (the wire's varint n). Its Count children (key/value pairs
	// for sparse/map, bare values for arrays) follow in the Stack in the
	// exact traversal order the Encoder must replay; a composite child's
	// own descendants come right after it, before the next child.
	Count int

	// F32 holds the flat float32 payload for geometry/color catalog
	// kinds. Layouts, by Kind:
	//   Vector2:     [X, Y]
	//   Vector3:     [X, Y, Z]
	//   CFrame:      [PosX, PosY, PosZ, QuatX, QuatY, QuatZ, QuatW]
	//   Color3:      [R, G, B]
	//   UDim:        [Scale] (Offset uses I32)
	//   UDim2:       [XScale, YScale] (offsets in I32x2)
	//   Rect:        [MinX, MinY, MaxX, MaxY]
	//   NumberRange: [Min, Max]
	F32 [7]float32

	// I32x2 holds UDim2's two integer offsets (X, Y).
	I32x2 [2]int32

	// Keypoints holds NumberSequence/ColorSequence payloads.
	NumberKeypoints []value.NumberSequenceKeypoint
	ColorKeypoints  []value.ColorSequenceKeypoint
}
