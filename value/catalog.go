package value

import "math"

// The catalog types below mirror spec.md §6.3 exactly: a fixed, versioned
// set of game-engine geometry/color/time kinds beyond the generic
// primitives. All floating fields are float32 on the wire (per §6.2,
// little-endian); Go fields are float32 to make that 1:1 and avoid a
// silent precision round-trip through float64.

type Vector2 struct{ X, Y float32 }

type Vector3 struct{ X, Y, Z float32 }

// Quaternion is the wire's actual rotation payload for CFrame (x,y,z,w).
type Quaternion struct{ X, Y, Z, W float32 }

// CFrame is a position plus rotation, reconstructed from a quaternion on
// decode. Per spec.md §6.3, rotation reconstructed from a quaternion may
// differ from an arbitrary 3x3 input matrix by up to the stated tolerance.
type CFrame struct {
	Position Vector3
	Rotation Quaternion
}

// Matrix3 is a row-major 3x3 rotation matrix, offered as a convenience for
// callers that think in matrices rather than quaternions.
type Matrix3 [3][3]float32

// CFrameFromMatrix builds a CFrame from a position and a 3x3 rotation
// matrix, converting the matrix to its equivalent quaternion.
func CFrameFromMatrix(pos Vector3, m Matrix3) CFrame {
	return CFrame{Position: pos, Rotation: quaternionFromMatrix(m)}
}

// Matrix reconstructs the 3x3 rotation matrix encoded by c's quaternion.
// Per spec.md §6.3, this is accurate to an absolute error of at most 1e-5
// relative to an arbitrary input matrix fed through CFrameFromMatrix.
func (c CFrame) Matrix() Matrix3 {
	return matrixFromQuaternion(c.Rotation)
}

func quaternionFromMatrix(m Matrix3) Quaternion {
	trace := float64(m[0][0] + m[1][1] + m[2][2])

	var x, y, z, w float64
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1.0) * 2
		w = 0.25 * s
		x = (float64(m[2][1]) - float64(m[1][2])) / s
		y = (float64(m[0][2]) - float64(m[2][0])) / s
		z = (float64(m[1][0]) - float64(m[0][1])) / s
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1.0+float64(m[0][0])-float64(m[1][1])-float64(m[2][2])) * 2
		w = (float64(m[2][1]) - float64(m[1][2])) / s
		x = 0.25 * s
		y = (float64(m[0][1]) + float64(m[1][0])) / s
		z = (float64(m[0][2]) + float64(m[2][0])) / s
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1.0+float64(m[1][1])-float64(m[0][0])-float64(m[2][2])) * 2
		w = (float64(m[0][2]) - float64(m[2][0])) / s
		x = (float64(m[0][1]) + float64(m[1][0])) / s
		y = 0.25 * s
		z = (float64(m[1][2]) + float64(m[2][1])) / s
	default:
		s := math.Sqrt(1.0+float64(m[2][2])-float64(m[0][0])-float64(m[1][1])) * 2
		w = (float64(m[1][0]) - float64(m[0][1])) / s
		x = (float64(m[0][2]) + float64(m[2][0])) / s
		y = (float64(m[1][2]) + float64(m[2][1])) / s
		z = 0.25 * s
	}

	return Quaternion{X: float32(x), Y: float32(y), Z: float32(z), W: float32(w)}
}

func matrixFromQuaternion(q Quaternion) Matrix3 {
	x, y, z, w := float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)

	n := x*x + y*y + z*z + w*w
	if n == 0 {
		return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}
	s := 2.0 / n

	xs, ys, zs := x*s, y*s, z*s
	wx, wy, wz := w*xs, w*ys, w*zs
	xx, xy, xz := x*xs, x*ys, x*zs
	yy, yz, zz := y*ys, y*zs, z*zs

	return Matrix3{
		{float32(1 - (yy + zz)), float32(xy - wz), float32(xz + wy)},
		{float32(xy + wz), float32(1 - (xx + zz)), float32(yz - wx)},
		{float32(xz - wy), float32(yz + wx), float32(1 - (xx + yy))},
	}
}

// Color3 holds RGB channels in [0,1].
type Color3 struct{ R, G, B float32 }

// BrickColor is a palette index into an external color table.
type BrickColor struct{ Index uint16 }

// UDim is a scale/offset pair used for UI layout.
type UDim struct {
	Scale  float32
	Offset int32
}

// UDim2 pairs an X and Y UDim.
type UDim2 struct{ X, Y UDim }

// EnumItem names an enum by its class name and item name; both strings are
// subject to the same intern table as ordinary string values.
type EnumItem struct{ Class, Name string }

// Rect is an axis-aligned rectangle given by opposite corners.
type Rect struct{ Min, Max Vector2 }

// NumberRange is a closed [Min, Max] interval of floats.
type NumberRange struct{ Min, Max float32 }

// NumberSequenceKeypoint is one (time, value, envelope) sample.
type NumberSequenceKeypoint struct {
	Time, Value, Envelope float32
}

// NumberSequence is an ordered list of keypoints describing a value curve
// over normalized time [0,1].
type NumberSequence struct{ Keypoints []NumberSequenceKeypoint }

// ColorInterpolation selects how two adjacent ColorSequenceKeypoints blend.
type ColorInterpolation uint8

const (
	InterpolationLinear ColorInterpolation = 0
	InterpolationStep   ColorInterpolation = 1
)

// ColorSequenceKeypoint is one (time, color, interpolation) sample.
type ColorSequenceKeypoint struct {
	Time          float32
	Color         Color3
	Interpolation ColorInterpolation
}

// ColorSequence is an ordered list of keypoints describing a color curve
// over normalized time [0,1].
type ColorSequence struct{ Keypoints []ColorSequenceKeypoint }

// DateTime is a point in time stored as milliseconds since the Unix epoch.
type DateTime struct{ UnixMilli int64 }
