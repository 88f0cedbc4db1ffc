//go:build ebiten

package view

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"glidelife/src/simulation"
	"glidelife/src/universe"
)

//Window adapts the simulation to the ebiten.Game interface
//the simulation runs in its own loop, the window only draws the snapshots
type Window struct {
	s     *simulation.Simulation
	img   *ebiten.Image
	buf   []byte
	scale int

	onColor  color.Color
	offColor color.Color
}

//RunWindow opens the window and blocks until it is closed
func RunWindow(s *simulation.Simulation, scale int) error {
	o := s.Options()
	w := &Window{
		s:        s,
		img:      ebiten.NewImage(int(o.Width), int(o.Height)),
		buf:      make([]byte, 4*int(o.Width)*int(o.Height)),
		scale:    scale,
		onColor:  color.White,
		offColor: color.Black,
	}
	ebiten.SetWindowTitle("glidelife")
	ebiten.SetWindowSize(int(o.Width)*scale, int(o.Height)*scale)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

//Update handles the keys
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		w.s.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.s.Run()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		w.s.Stop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		w.s.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		w.s.Spaceship()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		w.s.Reset(universe.NewTimeRandSource())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.s.Toggle(uint32(y/w.scale), uint32(x/w.scale))
	}
	return nil
}

//Draw renders the last snapshot
func (w *Window) Draw(screen *ebiten.Image) {
	f := w.s.Snapshot()
	FillRGBA(w.buf, f.Cells, w.onColor, w.offColor)
	w.img.WritePixels(w.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)
}

//Layout returns the logical screen size
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	o := w.s.Options()
	return int(o.Width) * w.scale, int(o.Height) * w.scale
}
