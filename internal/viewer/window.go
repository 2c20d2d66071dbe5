// Package viewer shows dump shapes in an SDL2 window using the 2D renderer.
package viewer

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/leafbsp/internal/logger"
)

func init() {
	// SDL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	Margin int
}

// Window wraps an SDL2 window and its renderer.
type Window struct {
	config   Config
	window   *sdl.Window
	renderer *sdl.Renderer
}

// NewWindow creates a resizable window with an accelerated, vsynced renderer.
func NewWindow(cfg Config) (*Window, error) {
	w := &Window{config: cfg}

	logger.Debug("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	var err error
	w.window, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.renderer, err = sdl.CreateRenderer(w.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		w.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}
	if err := w.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		logger.Warn("blending unavailable", zap.Error(err))
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	return w, nil
}

// Close destroys the renderer and window and shuts SDL2 down.
func (w *Window) Close() {
	logger.Debug("closing window")

	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.window != nil {
		w.window.Destroy()
	}

	sdl.Quit()
}

// Size returns the current drawable size.
func (w *Window) Size() (int, int) {
	width, height, err := w.renderer.GetOutputSize()
	if err != nil {
		ww, wh := w.window.GetSize()
		return int(ww), int(wh)
	}
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}
