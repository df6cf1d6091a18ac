// Package value defines the dynamically-typed value graph that vpack
// serializes: primitives, strings, opaque byte buffers, heterogeneous
// tables, and the fixed geometry/color/time catalog.
//
// Value is the "opaque Value with a discriminator" that spec.md assumes is
// supplied by the host language. Here it is a concrete Go type: a small
// Kind byte plus one typed payload field per kind, with constructors so callers never
// need to touch the discriminator directly.
package value

// Kind discriminates the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindBuffer
	KindTable
	KindVector2
	KindVector3
	KindCFrame
	KindColor3
	KindBrickColor
	KindUDim
	KindUDim2
	KindEnumItem
	KindRect
	KindNumberRange
	KindNumberSequence
	KindColorSequence
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBuffer:
		return "Buffer"
	case KindTable:
		return "Table"
	case KindVector2:
		return "Vector2"
	case KindVector3:
		return "Vector3"
	case KindCFrame:
		return "CFrame"
	case KindColor3:
		return "Color3"
	case KindBrickColor:
		return "BrickColor"
	case KindUDim:
		return "UDim"
	case KindUDim2:
		return "UDim2"
	case KindEnumItem:
		return "EnumItem"
	case KindRect:
		return "Rect"
	case KindNumberRange:
		return "NumberRange"
	case KindNumberSequence:
		return "NumberSequence"
	case KindColorSequence:
		return "ColorSequence"
	case KindDateTime:
		return "DateTime"
	default:
		return "Unknown"
	}
}

// Value is a tagged union over every kind this module can serialize.
//
// Only one of the payload fields is meaningful for a given Kind; callers
// should use the constructors below rather than building a Value literal.
type Value struct {
	kind   Kind
	b      bool
	num    float64
	str    string
	buf    []byte
	tbl    Table
	vec2   Vector2
	vec3   Vector3
	cframe CFrame
	color  Color3
	brick  BrickColor
	udim   UDim
	udim2  UDim2
	enum   EnumItem
	rect   Rect
	nrange NumberRange
	nseq   NumberSequence
	cseq   ColorSequence
	dt     DateTime
}

// Kind returns the discriminator for v.
func (v Value) Kind() Kind { return v.kind }

func Null() Value                 { return Value{kind: KindNull} }
func Bool(b bool) Value            { return Value{kind: KindBool, b: b} }
func Number(n float64) Value       { return Value{kind: KindNumber, num: n} }
func String(s string) Value        { return Value{kind: KindString, str: s} }
func Buffer(b []byte) Value        { return Value{kind: KindBuffer, buf: b} }
func FromTable(t Table) Value      { return Value{kind: KindTable, tbl: t} }

// Bool, Number, String, Buffer, Table accessors. The second return value is
// false if v does not hold that Kind.

func (v Value) AsBool() (bool, bool)       { return v.b, v.kind == KindBool }
func (v Value) AsNumber() (float64, bool)  { return v.num, v.kind == KindNumber }
func (v Value) AsString() (string, bool)   { return v.str, v.kind == KindString }
func (v Value) AsBuffer() ([]byte, bool)   { return v.buf, v.kind == KindBuffer }
func (v Value) AsTable() (Table, bool)     { return v.tbl, v.kind == KindTable }

func FromVector2(x Vector2) Value        { return Value{kind: KindVector2, vec2: x} }
func FromVector3(x Vector3) Value        { return Value{kind: KindVector3, vec3: x} }
func FromCFrame(x CFrame) Value          { return Value{kind: KindCFrame, cframe: x} }
func FromColor3(x Color3) Value          { return Value{kind: KindColor3, color: x} }
func FromBrickColor(x BrickColor) Value  { return Value{kind: KindBrickColor, brick: x} }
func FromUDim(x UDim) Value              { return Value{kind: KindUDim, udim: x} }
func FromUDim2(x UDim2) Value            { return Value{kind: KindUDim2, udim2: x} }
func FromEnumItem(x EnumItem) Value      { return Value{kind: KindEnumItem, enum: x} }
func FromRect(x Rect) Value              { return Value{kind: KindRect, rect: x} }
func FromNumberRange(x NumberRange) Value       { return Value{kind: KindNumberRange, nrange: x} }
func FromNumberSequence(x NumberSequence) Value { return Value{kind: KindNumberSequence, nseq: x} }
func FromColorSequence(x ColorSequence) Value   { return Value{kind: KindColorSequence, cseq: x} }
func FromDateTime(x DateTime) Value             { return Value{kind: KindDateTime, dt: x} }

func (v Value) AsVector2() (Vector2, bool)             { return v.vec2, v.kind == KindVector2 }
func (v Value) AsVector3() (Vector3, bool)             { return v.vec3, v.kind == KindVector3 }
func (v Value) AsCFrame() (CFrame, bool)               { return v.cframe, v.kind == KindCFrame }
func (v Value) AsColor3() (Color3, bool)               { return v.color, v.kind == KindColor3 }
func (v Value) AsBrickColor() (BrickColor, bool)       { return v.brick, v.kind == KindBrickColor }
func (v Value) AsUDim() (UDim, bool)                   { return v.udim, v.kind == KindUDim }
func (v Value) AsUDim2() (UDim2, bool)                 { return v.udim2, v.kind == KindUDim2 }
func (v Value) AsEnumItem() (EnumItem, bool)           { return v.enum, v.kind == KindEnumItem }
func (v Value) AsRect() (Rect, bool)                   { return v.rect, v.kind == KindRect }
func (v Value) AsNumberRange() (NumberRange, bool)     { return v.nrange, v.kind == KindNumberRange }
func (v Value) AsNumberSequence() (NumberSequence, bool) { return v.nseq, v.kind == KindNumberSequence }
func (v Value) AsColorSequence() (ColorSequence, bool) { return v.cseq, v.kind == KindColorSequence }
func (v Value) AsDateTime() (DateTime, bool)           { return v.dt, v.kind == KindDateTime }
