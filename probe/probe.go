// Package probe implements the depth-first classifier that is the first
// phase of the vpack pipeline.
//
// Run walks a value.Value graph exactly once, computing the exact encoded
// byte count and recording every classification decision it makes onto a
// decision.Stack. The Encoder later replays that stack without
// re-classifying anything — this is the split-brain guard described in
// spec.md §1.
//
// A cheap first-pass string-frequency scan could recover the one byte per
// singleton string this Probe's always-StrNew policy spends (see
// spec.md §4.3 and §9); it is not implemented here because the spec marks
// it strictly optional, and the teacher's own codebase ships the simple
// encoder by default and leaves the fancier one as a documented option
// (compare NumericRawEncoder against NumericGorillaEncoder).
package probe

import (
	"fmt"
	"math"

	"github.com/valuewire/vpack/decision"
	"github.com/valuewire/vpack/errs"
	"github.com/valuewire/vpack/intern"
	"github.com/valuewire/vpack/value"
	"github.com/valuewire/vpack/varint"
	"github.com/valuewire/vpack/wire"
)

// Run classifies v and returns the exact total byte count (including the
// one-byte version prefix) and the decision.Stack the Encoder must replay.
//
// On error, the returned Stack is nil and has already been returned to the
// pool; callers must not use it.
func Run(v value.Value) (int, *decision.Stack, error) {
	st := decision.Get()
	p := &prober{stack: st, interner: intern.New()}

	size, err := p.value(v, 0)
	if err != nil {
		decision.Put(st)

		return 0, nil, err
	}

	return 1 + size, st, nil
}

type prober struct {
	stack    *decision.Stack
	interner *intern.Encoder
	items    int
}

func (p *prober) value(v value.Value, depth int) (int, error) {
	if depth > wire.MaxDepth {
		return 0, fmt.Errorf("%w: recursion depth %d exceeds %d", errs.ErrLimitsExceeded, depth, wire.MaxDepth)
	}

	p.items++
	if p.items > wire.MaxItems {
		return 0, fmt.Errorf("%w: visited item count exceeds %d", errs.ErrLimitsExceeded, wire.MaxItems)
	}

	switch v.Kind() {
	case value.KindNull:
		p.stack.Push(decision.Decision{Kind: decision.KindNull})

		return 1, nil
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			p.stack.Push(decision.Decision{Kind: decision.KindBoolTrue})
		} else {
			p.stack.Push(decision.Decision{Kind: decision.KindBoolFalse})
		}

		return 1, nil
	case value.KindNumber:
		n, _ := v.AsNumber()

		return p.number(n), nil
	case value.KindString:
		s, _ := v.AsString()

		return p.string(s), nil
	case value.KindBuffer:
		b, _ := v.AsBuffer()
		p.stack.Push(decision.Decision{Kind: decision.KindRawBuffer, Bytes: b})

		return 1 + varint.Len(uint64(len(b))) + len(b), nil
	case value.KindTable:
		t, _ := v.AsTable()

		return p.table(t, depth)
	case value.KindVector2, value.KindVector3, value.KindCFrame, value.KindColor3,
		value.KindBrickColor, value.KindUDim, value.KindUDim2, value.KindRect,
		value.KindNumberRange, value.KindNumberSequence, value.KindColorSequence,
		value.KindDateTime:
		return p.catalog(v)
	case value.KindEnumItem:
		return p.enumItem(v, depth)
	default:
		return 0, fmt.Errorf("%w: kind %v", errs.ErrUnsupportedType, v.Kind())
	}
}

// number implements the narrowest-encoding rules of spec.md §4.3.
func (p *prober) number(n float64) int {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		p.stack.Push(decision.Decision{Kind: decision.KindF64, F64: n})

		return 9
	}

	if n == 0 {
		if math.Signbit(n) {
			// -0 is always F64, per spec.md §4.3.
			p.stack.Push(decision.Decision{Kind: decision.KindF64, F64: n})

			return 9
		}

		p.stack.Push(decision.Decision{Kind: decision.KindNumberZero})

		return 1
	}

	const maxSafeInt = 1 << 53
	if n == math.Trunc(n) && n >= -maxSafeInt && n <= maxSafeInt {
		i := int64(n)
		switch {
		case i >= wire.ImmediateIntMin && i <= wire.ImmediateIntMax:
			slot := int(varint.ZigZag(i))
			p.stack.Push(decision.Decision{Kind: decision.KindIntImmediate, Slot: slot})

			return 1
		case i >= 0 && i <= 255:
			p.stack.Push(decision.Decision{Kind: decision.KindU8, U8: uint8(i)})

			return 2
		case i >= -32768 && i <= 32767:
			p.stack.Push(decision.Decision{Kind: decision.KindI16, I16: int16(i)})

			return 3
		case i >= -(1 << 31) && i <= (1<<31)-1:
			p.stack.Push(decision.Decision{Kind: decision.KindI32, I32: int32(i)})

			return 5
		}
	}

	p.stack.Push(decision.Decision{Kind: decision.KindF64, F64: n})

	return 9
}

// string implements the intern policy of spec.md §4.3 / §9: always treat a
// first occurrence as StrNew, with intent to intern, rather than peek
// ahead to see whether the string recurs.
func (p *prober) string(s string) int {
	if id, found := p.interner.Lookup(s); found {
		p.stack.Push(decision.Decision{Kind: decision.KindStrRef, InternID: id})

		return 1 + varint.Len(uint64(id))
	}

	id := p.interner.Insert(s)
	p.stack.Push(decision.Decision{Kind: decision.KindStrNew, Str: s, InternID: id})

	return 1 + varint.Len(uint64(len(s))) + len(s)
}

// table implements the shape classification of spec.md §4.3.
func (p *prober) table(t value.Table, depth int) (int, error) {
	keys, vals := t.Entries()
	n := len(keys)

	if n == 0 {
		p.stack.Push(decision.Decision{Kind: decision.KindTableMap, Count: 0})

		return 1 + varint.Len(0), nil
	}

	kind, err := classifyShape(keys)
	if err != nil {
		return 0, err
	}

	if kind == decision.KindTableArray {
		// The array layout carries no keys, so values go out in index order
		// 1..n whatever order the entries were inserted in.
		vals, _ = t.Items()
	}

	p.stack.Push(decision.Decision{Kind: kind, Count: n})
	total := 1 + varint.Len(uint64(n))

	for i := range keys {
		if kind != decision.KindTableArray {
			ksz, err := p.key(keys[i], depth+1)
			if err != nil {
				return 0, err
			}
			total += ksz
		}

		vsz, err := p.value(vals[i], depth+1)
		if err != nil {
			return 0, err
		}
		total += vsz
	}

	return total, nil
}

// key probes a table key exactly as it would probe a Value of the same
// kind: keys share the number/string narrowing and intern logic, per
// spec.md §4.1 (a number or string key is written with the same tags).
func (p *prober) key(k value.Key, depth int) (int, error) {
	if depth > wire.MaxDepth {
		return 0, fmt.Errorf("%w: recursion depth %d exceeds %d", errs.ErrLimitsExceeded, depth, wire.MaxDepth)
	}

	p.items++
	if p.items > wire.MaxItems {
		return 0, fmt.Errorf("%w: visited item count exceeds %d", errs.ErrLimitsExceeded, wire.MaxItems)
	}

	switch k.Kind() {
	case value.KeyNumber:
		return p.number(k.Number()), nil
	case value.KeyString:
		return p.string(k.String()), nil
	default:
		return 0, errs.ErrInvalidKey
	}
}

// classifyShape picks TableArray, TableSparse, or TableMap for a non-empty
// key set, following spec.md §4.3's density rule exactly.
func classifyShape(keys []value.Key) (decision.Kind, error) {
	n := len(keys)

	integerKeys := 0
	max := 0.0
	seen := make(map[int64]bool, n)
	allDistinctInts := true

	for _, k := range keys {
		if k.Kind() != value.KeyNumber {
			continue
		}

		f := k.Number()
		if f != math.Trunc(f) {
			continue
		}

		integerKeys++
		if f > max {
			max = f
		}

		iv := int64(f)
		if seen[iv] {
			allDistinctInts = false
		}
		seen[iv] = true
	}

	if integerKeys != n {
		return decision.KindTableMap, nil
	}

	if allDistinctInts && max == float64(n) && isContiguous(seen, n) {
		return decision.KindTableArray, nil
	}

	if max > 0 && float64(n)/max < 0.5 {
		return decision.KindTableSparse, nil
	}

	return decision.KindTableMap, nil
}

func isContiguous(seen map[int64]bool, n int) bool {
	for i := int64(1); i <= int64(n); i++ {
		if !seen[i] {
			return false
		}
	}

	return true
}

// catalog handles every fixed-layout geometry/color/time kind: spec.md
// §6.3's payloads are all self-contained (no narrowing, no interning), so
// each one is a single Decision.
func (p *prober) catalog(v value.Value) (int, error) {
	switch v.Kind() {
	case value.KindVector2:
		x, _ := v.AsVector2()
		p.stack.Push(decision.Decision{Kind: decision.KindVector2, F32: [7]float32{x.X, x.Y}})

		return 1 + 2*4, nil
	case value.KindVector3:
		x, _ := v.AsVector3()
		p.stack.Push(decision.Decision{Kind: decision.KindVector3, F32: [7]float32{x.X, x.Y, x.Z}})

		return 1 + 3*4, nil
	case value.KindCFrame:
		c, _ := v.AsCFrame()
		p.stack.Push(decision.Decision{
			Kind: decision.KindCFrame,
			F32: [7]float32{
				c.Position.X, c.Position.Y, c.Position.Z,
				c.Rotation.X, c.Rotation.Y, c.Rotation.Z, c.Rotation.W,
			},
		})

		return 1 + 7*4, nil
	case value.KindColor3:
		c, _ := v.AsColor3()
		p.stack.Push(decision.Decision{Kind: decision.KindColor3, F32: [7]float32{c.R, c.G, c.B}})

		return 1 + 3*4, nil
	case value.KindBrickColor:
		b, _ := v.AsBrickColor()
		p.stack.Push(decision.Decision{Kind: decision.KindBrickColor, Slot: int(b.Index)})

		return 1 + 2, nil
	case value.KindUDim:
		u, _ := v.AsUDim()
		p.stack.Push(decision.Decision{Kind: decision.KindUDim, F32: [7]float32{u.Scale}, I32: u.Offset})

		return 1 + 4 + 4, nil
	case value.KindUDim2:
		u, _ := v.AsUDim2()
		p.stack.Push(decision.Decision{
			Kind:  decision.KindUDim2,
			F32:   [7]float32{u.X.Scale, u.Y.Scale},
			I32x2: [2]int32{u.X.Offset, u.Y.Offset},
		})

		return 1 + 4 + 4 + 4 + 4, nil
	case value.KindRect:
		r, _ := v.AsRect()
		p.stack.Push(decision.Decision{Kind: decision.KindRect, F32: [7]float32{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}})

		return 1 + 4*4, nil
	case value.KindNumberRange:
		r, _ := v.AsNumberRange()
		p.stack.Push(decision.Decision{Kind: decision.KindNumberRange, F32: [7]float32{r.Min, r.Max}})

		return 1 + 2*4, nil
	case value.KindNumberSequence:
		s, _ := v.AsNumberSequence()
		if len(s.Keypoints) > math.MaxUint16 {
			return 0, fmt.Errorf("%w: NumberSequence has %d keypoints, max %d", errs.ErrLimitsExceeded, len(s.Keypoints), math.MaxUint16)
		}
		p.stack.Push(decision.Decision{Kind: decision.KindNumberSequence, NumberKeypoints: s.Keypoints})

		return 1 + 2 + len(s.Keypoints)*(3*4), nil
	case value.KindColorSequence:
		s, _ := v.AsColorSequence()
		if len(s.Keypoints) > math.MaxUint16 {
			return 0, fmt.Errorf("%w: ColorSequence has %d keypoints, max %d", errs.ErrLimitsExceeded, len(s.Keypoints), math.MaxUint16)
		}
		p.stack.Push(decision.Decision{Kind: decision.KindColorSequence, ColorKeypoints: s.Keypoints})

		return 1 + 2 + len(s.Keypoints)*(4*4+1), nil
	case value.KindDateTime:
		d, _ := v.AsDateTime()
		p.stack.Push(decision.Decision{Kind: decision.KindDateTime, I64: d.UnixMilli})

		return 1 + 8, nil
	default:
		return 0, fmt.Errorf("%w: kind %v", errs.ErrUnsupportedType, v.Kind())
	}
}

// enumItem writes its tag and then probes its two strings as ordinary
// string decisions, sharing the intern table, per spec.md §3.2/§6.3.
func (p *prober) enumItem(v value.Value, depth int) (int, error) {
	e, _ := v.AsEnumItem()
	p.stack.Push(decision.Decision{Kind: decision.KindEnumItem})
	total := 1

	classSz, err := p.stringAtDepth(e.Class, depth+1)
	if err != nil {
		return 0, err
	}
	total += classSz

	nameSz, err := p.stringAtDepth(e.Name, depth+1)
	if err != nil {
		return 0, err
	}
	total += nameSz

	return total, nil
}

func (p *prober) stringAtDepth(s string, depth int) (int, error) {
	if depth > wire.MaxDepth {
		return 0, fmt.Errorf("%w: recursion depth %d exceeds %d", errs.ErrLimitsExceeded, depth, wire.MaxDepth)
	}

	p.items++
	if p.items > wire.MaxItems {
		return 0, fmt.Errorf("%w: visited item count exceeds %d", errs.ErrLimitsExceeded, wire.MaxItems)
	}

	return p.string(s), nil
}
