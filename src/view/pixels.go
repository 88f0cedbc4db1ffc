package view

import (
	"image/color"

	"glidelife/src/universe"
)

//FillRGBA unpacks the packed cells into RGBA pixels in buf
//buf must hold 4*width*height bytes, pixel i is the cell with the linear index i
func FillRGBA(buf []byte, cells universe.CellsView, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	n := int(cells.Width()) * int(cells.Height())
	for i := 0; i < n; i++ {
		base := i * 4
		if cells.Alive(i) {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}
