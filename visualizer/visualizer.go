// Package visualizer implements an optional SDL2 debug window that shows
// the register file and zero page after each Step. It is a read-only
// observer: it holds no reference to the CPU and only draws the
// cpu.Registers snapshot and zero-page copy its caller passes to Draw.
package visualizer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/oldbit-emu/go6502core/cpu"
)

const (
	width  = 520
	height = 420
	rowH   = 16
)

// Window is a single debug window instance. Must be constructed and used
// from the goroutine sdl.Main runs on, same as any other go-sdl2 caller.
type Window struct {
	win     *sdl.Window
	surface *sdl.Surface
	canvas  *image.RGBA
}

// Open creates the window. Call Close when done.
func Open() (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("visualizer: sdl init: %w", err)
	}
	win, err := sdl.CreateWindow("go6502core", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("visualizer: create window: %w", err)
	}
	surface, err := win.GetSurface()
	if err != nil {
		return nil, fmt.Errorf("visualizer: get surface: %w", err)
	}
	return &Window{
		win:     win,
		surface: surface,
		canvas:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Close tears down the window and the SDL subsystem it initialized.
func (w *Window) Close() {
	w.win.Destroy()
	sdl.Quit()
}

// Draw repaints the window with the given register snapshot and the first
// 256 bytes of memory (the zero page), one cpu.Step after another.
func (w *Window) Draw(r cpu.Registers, zeroPage [256]byte) {
	draw.Draw(w.canvas, w.canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  w.canvas,
		Src:  image.NewUniform(color.RGBA{R: 0x30, G: 0xD0, B: 0x30, A: 0xFF}),
		Face: basicfont.Face7x13,
	}

	line := 0
	put := func(format string, args ...any) {
		d.Dot = fixed.P(8, 16+line*rowH)
		d.DrawString(fmt.Sprintf(format, args...))
		line++
	}

	put("A=%.2X X=%.2X Y=%.2X SP=%.2X", r.A, r.X, r.Y, r.SP)
	put("PC=%.4X P=%.8b (NV-BDIZC)", r.PC, r.P)
	line++
	for row := 0; row < 16; row++ {
		put("%.2X: % X", row*16, zeroPage[row*16:row*16+16])
	}

	copy(w.surface.Pixels(), w.canvas.Pix)
	w.win.UpdateSurface()
}
