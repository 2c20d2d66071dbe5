package viewer

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/leafbsp/internal/dump"
	"github.com/Faultbox/leafbsp/internal/logger"
	"github.com/Faultbox/leafbsp/internal/viewport"
)

// fillAlpha is the opacity of polygon interiors.
const fillAlpha = 72

// Viewer draws a fixed set of shapes until the user quits.
type Viewer struct {
	win    *Window
	shapes []dump.Shape
	view   viewport.Viewport
	fill   bool

	// scratch buffers reused every frame
	points   []sdl.FPoint
	vertices []sdl.Vertex
	events   []Event
	dragging bool
}

// New opens a window for shapes.
func New(cfg Config, shapes []dump.Shape) (*Viewer, error) {
	win, err := NewWindow(cfg)
	if err != nil {
		return nil, err
	}
	v := &Viewer{win: win, shapes: shapes, fill: true}
	v.reset()
	return v, nil
}

// Close releases the window.
func (v *Viewer) Close() {
	v.win.Close()
}

func (v *Viewer) reset() {
	w, h := v.win.Size()
	v.view = viewport.Fit(dump.Bounds(v.shapes), w, h, v.win.config.Margin)
}

// Run processes input and redraws until the window is closed.
func (v *Viewer) Run() error {
	for {
		v.events = pollEvents(v.events, &v.dragging)
		for _, e := range v.events {
			switch e.Action {
			case ActionQuit:
				logger.Debug("viewer closed")
				return nil
			case ActionResize:
				v.view = v.view.Resize(v.win.Size())
			case ActionZoom:
				x, y := e.X, e.Y
				if x == 0 && y == 0 {
					x, y = float32(v.view.Width)/2, float32(v.view.Height)/2
				}
				v.view = v.view.Zoom(e.Factor, x, y)
			case ActionPan:
				v.view = v.view.Pan(e.X, e.Y)
			case ActionReset:
				v.reset()
			case ActionToggleFill:
				v.fill = !v.fill
			}
		}

		if err := v.draw(); err != nil {
			return err
		}
	}
}

func (v *Viewer) draw() error {
	r := v.win.renderer
	r.SetDrawColor(16, 16, 20, 255)
	if err := r.Clear(); err != nil {
		return fmt.Errorf("clearing: %w", err)
	}

	for i := range v.shapes {
		if err := v.drawShape(&v.shapes[i]); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}

	r.Present()
	return nil
}

func rgba(c colorful.Color, alpha float64) sdl.Color {
	r, g, b := c.Clamped().RGB255()
	return sdl.Color{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

func (v *Viewer) drawShape(s *dump.Shape) error {
	r := v.win.renderer
	if len(s.Points) == 0 {
		return nil
	}

	v.points = v.points[:0]
	for _, p := range s.Points {
		x, y := v.view.ToScreen(p)
		v.points = append(v.points, sdl.FPoint{X: x, Y: y})
	}

	col := rgba(s.Color, s.Alpha)

	if s.Kind == dump.KindPolygon && v.fill && len(v.points) >= 3 {
		if err := v.fillConvex(col); err != nil {
			// old SDL without geometry rendering; outlines still work
			logger.Debug("polygon fill disabled", zap.Error(err))
			v.fill = false
		}
	}

	r.SetDrawColor(col.R, col.G, col.B, col.A)
	switch s.Kind {
	case dump.KindLines:
		for i := 0; i+1 < len(v.points); i += 2 {
			a, b := v.points[i], v.points[i+1]
			r.DrawLineF(a.X, a.Y, b.X, b.Y)
		}
		return nil
	default:
		return r.DrawLinesF(v.points)
	}
}

// fillConvex fans the current points into triangles.
func (v *Viewer) fillConvex(col sdl.Color) error {
	col.A = fillAlpha
	v.vertices = v.vertices[:0]
	for i := 1; i+1 < len(v.points); i++ {
		v.vertices = append(v.vertices,
			sdl.Vertex{Position: v.points[0], Color: col},
			sdl.Vertex{Position: v.points[i], Color: col},
			sdl.Vertex{Position: v.points[i+1], Color: col},
		)
	}
	return v.win.renderer.RenderGeometry(nil, v.vertices, nil)
}
