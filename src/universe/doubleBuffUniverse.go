package universe

/*
	Universe implementation with two buffers
	All cells state is calculated to the spare buffer and then the buffers are swapped,
	the previous generation buffer is reused on the next tick instead of allocating the new one
*/
type DoubleBuffUniverse struct {
	*BaseUniverse
	spare *BitGrid
}

//NewDoubleBuffUniverse creates the universe seeded with random data and one glider
func NewDoubleBuffUniverse(width uint32, height uint32, rnd RandSource) *DoubleBuffUniverse {
	du := DoubleBuffUniverse{BaseUniverse: NewBaseUniverse(width, height, rnd)}
	//redefine the nextGeneration
	du.BaseUniverse.nextGeneration = du.nextGeneration
	du.spare = newBitGrid(du.cells.Len())
	return &du
}

func (du *DoubleBuffUniverse) nextGeneration() {
	next := du.spare
	//spaceship injection and edits replace the current buffer, so the spare never aliases it
	if next == nil || next == du.cells {
		next = newBitGrid(du.cells.Len())
	}
	du.walk(next)
	du.spare = du.cells
	du.cells = next
}
