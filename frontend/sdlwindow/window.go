// Package sdlwindow is the SDL frontend: a scaled window, a square-wave
// buzzer and the keyboard.
package sdlwindow

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/sarchlab/chip8sim/config"
	"github.com/sarchlab/chip8sim/emu"
	"github.com/sarchlab/chip8sim/host"
)

const title = "CHIP-8"

// Window implements host.Display and host.Input.
type Window struct {
	cfg      *config.Config
	window   *sdl.Window
	renderer *sdl.Renderer
	rects    []sdl.Rect
	logger   logr.Logger
}

// Open initializes SDL video and creates a window sized to the scaled
// display.
func Open(cfg *config.Config, logger logr.Logger) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("init SDL: %w", err)
	}

	scale := int32(cfg.Scale)
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED, emu.DisplayWidth*scale, emu.DisplayHeight*scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	logger.V(1).Info("window opened", "scale", cfg.Scale)

	return &Window{
		cfg:      cfg,
		window:   window,
		renderer: renderer,
		rects:    make([]sdl.Rect, 0, emu.DisplayWidth*emu.DisplayHeight),
		logger:   logger,
	}, nil
}

// Close tears down the window and SDL.
func (w *Window) Close() error {
	var err error
	if e := w.renderer.Destroy(); e != nil {
		err = e
	}
	if e := w.window.Destroy(); e != nil && err == nil {
		err = e
	}
	sdl.Quit()
	return err
}

// Present paints the lit pixels over the background.
func (w *Window) Present(fb *emu.Framebuffer) error {
	bg, fg := w.cfg.Background, w.cfg.Foreground

	if err := w.renderer.SetDrawColor(bg.R, bg.G, bg.B, 0xFF); err != nil {
		return fmt.Errorf("set background: %w", err)
	}
	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("clear renderer: %w", err)
	}

	scale := int32(w.cfg.Scale)
	w.rects = w.rects[:0]
	for y := 0; y < emu.DisplayHeight; y++ {
		for x := 0; x < emu.DisplayWidth; x++ {
			if fb[y][x] == 0 {
				continue
			}
			w.rects = append(w.rects, sdl.Rect{
				X: int32(x) * scale,
				Y: int32(y) * scale,
				W: scale,
				H: scale,
			})
		}
	}

	if len(w.rects) > 0 {
		if err := w.renderer.SetDrawColor(fg.R, fg.G, fg.B, 0xFF); err != nil {
			return fmt.Errorf("set foreground: %w", err)
		}
		if err := w.renderer.FillRects(w.rects); err != nil {
			return fmt.Errorf("fill pixels: %w", err)
		}
	}

	w.renderer.Present()
	return nil
}

// Poll pumps SDL events into the keypad. Closing the window or pressing
// Escape quits.
func (w *Window) Poll(keypad *emu.Keypad) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if t.Keysym.Sym == sdl.K_ESCAPE {
				return true
			}
			name := strings.ToLower(sdl.GetKeyName(t.Keysym.Sym))
			if key, ok := w.cfg.Lookup(name); ok {
				keypad.Set(key, t.Type == sdl.KEYDOWN)
			}
		}
	}
	return false
}

var (
	_ host.Display = (*Window)(nil)
	_ host.Input   = (*Window)(nil)
)
