// Package math provides the 2D primitives used by the level compiler.
package math

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrZeroLength is returned when a zero vector is normalized.
var ErrZeroLength = errors.New("zero-length vector")

// Vec2 is a 2D vector.
type Vec2 mgl64.Vec2

// V2 returns the vector (x, y).
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// X returns the x component.
func (v Vec2) X() float64 { return v[0] }

// Y returns the y component.
func (v Vec2) Y() float64 { return v[1] }

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2(mgl64.Vec2(v).Add(mgl64.Vec2(other)))
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2(mgl64.Vec2(v).Sub(mgl64.Vec2(other)))
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(mgl64.Vec2(v).Mul(s))
}

// Mul returns the component-wise product.
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v[0] * other[0], v[1] * other[1]}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return mgl64.Vec2(v).Dot(mgl64.Vec2(other))
}

// Skew rotates v by 90 degrees clockwise: (x, y) -> (y, -x).
func (v Vec2) Skew() Vec2 {
	return Vec2{v[1], -v[0]}
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return mgl64.Vec2(v).Len()
}

// LengthSquared returns the squared magnitude.
func (v Vec2) LengthSquared() float64 {
	return mgl64.Vec2(v).LenSqr()
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v[0] == 0 && v[1] == 0
}

// Normalize returns a unit vector with the direction of v.
func (v Vec2) Normalize() (Vec2, error) {
	if v.IsZero() {
		return Vec2{}, ErrZeroLength
	}
	return Vec2(mgl64.Vec2(v).Normalize()), nil
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vec2) ApproxEqual(other Vec2, eps float64) bool {
	return math.Abs(v[0]-other[0]) <= eps && math.Abs(v[1]-other[1]) <= eps
}

// Abs returns the component-wise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{math.Abs(v[0]), math.Abs(v[1])}
}

// LargestComponentIndex returns 0 if x is greater than y, 1 otherwise.
func (v Vec2) LargestComponentIndex() int {
	if v[0] > v[1] {
		return 0
	}
	return 1
}
