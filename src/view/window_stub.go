//go:build !ebiten

package view

import (
	"errors"

	"glidelife/src/simulation"
)

//ErrNoWindow is returned by RunWindow in the build without the ebiten tag
var ErrNoWindow = errors.New("the window requires building with the 'ebiten' tag")

//RunWindow always fails in the headless build
func RunWindow(*simulation.Simulation, int) error {
	return ErrNoWindow
}
