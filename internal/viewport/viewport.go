// Package viewport maps world coordinates to window pixels. World y points
// up, screen y points down.
package viewport

import (
	stdmath "math"

	"github.com/Faultbox/leafbsp/pkg/math"
)

// Viewport centers Center in a Width x Height window at Scale pixels per unit.
type Viewport struct {
	Width  int
	Height int
	Center math.Vec2
	Scale  float64
}

// Fit returns the viewport showing all of world inside the window, keeping
// margin pixels free on every side. An empty box gives a unit scale around
// the origin.
func Fit(world math.Box2, width, height, margin int) Viewport {
	v := Viewport{Width: width, Height: height, Scale: 1}
	if world.IsEmpty() {
		return v
	}

	v.Center = world.Center()
	size := world.Size()
	availW := float64(width - 2*margin)
	availH := float64(height - 2*margin)
	if availW <= 0 || availH <= 0 {
		return v
	}

	sx, sy := stdmath.Inf(1), stdmath.Inf(1)
	if size.X() > 0 {
		sx = availW / size.X()
	}
	if size.Y() > 0 {
		sy = availH / size.Y()
	}
	if s := stdmath.Min(sx, sy); !stdmath.IsInf(s, 1) {
		v.Scale = s
	}
	return v
}

// ToScreen returns the pixel position of p.
func (v Viewport) ToScreen(p math.Vec2) (x, y float32) {
	d := p.Sub(v.Center).Scale(v.Scale)
	return float32(float64(v.Width)/2 + d.X()), float32(float64(v.Height)/2 - d.Y())
}

// ToWorld is the inverse of ToScreen.
func (v Viewport) ToWorld(x, y float32) math.Vec2 {
	dx := (float64(x) - float64(v.Width)/2) / v.Scale
	dy := (float64(v.Height)/2 - float64(y)) / v.Scale
	return v.Center.Add(math.V2(dx, dy))
}

// Zoom scales by factor keeping the world point under pixel (x, y) in place.
func (v Viewport) Zoom(factor float64, x, y float32) Viewport {
	if factor <= 0 {
		return v
	}
	anchor := v.ToWorld(x, y)
	v.Scale *= factor
	// move the center so that anchor maps back to (x, y)
	moved := v.ToWorld(x, y)
	v.Center = v.Center.Add(anchor.Sub(moved))
	return v
}

// Pan moves the view by a screen-space offset in pixels.
func (v Viewport) Pan(dx, dy float32) Viewport {
	v.Center = v.Center.Add(math.V2(-float64(dx)/v.Scale, float64(dy)/v.Scale))
	return v
}

// Resize changes the window size, keeping center and scale.
func (v Viewport) Resize(width, height int) Viewport {
	v.Width = width
	v.Height = height
	return v
}
