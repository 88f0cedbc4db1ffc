package universe

import "math/bits"

//WordBits is the number of cells packed into one storage word
const WordBits = 32

//BitGrid is a fixed-size packed set of cells
//cell i is stored in word i/WordBits at bit i%WordBits, least significant bit first
type BitGrid struct {
	n     int
	words []uint32
}

//newBitGrid allocates the grid for n dead cells
func newBitGrid(n int) *BitGrid {
	return &BitGrid{n: n, words: make([]uint32, wordCount(n))}
}

//wordCount returns ceil(n/WordBits)
func wordCount(n int) int {
	return (n + WordBits - 1) / WordBits
}

//Len returns the number of cells
func (g *BitGrid) Len() int {
	return g.n
}

//Get returns the state of the cell i
func (g *BitGrid) Get(i int) bool {
	return g.words[i/WordBits]&(1<<uint(i%WordBits)) != 0
}

//Set changes the state of the cell i
func (g *BitGrid) Set(i int, alive bool) {
	if alive {
		g.words[i/WordBits] |= 1 << uint(i%WordBits)
	} else {
		g.words[i/WordBits] &^= 1 << uint(i%WordBits)
	}
}

//Clone returns the independent copy of the grid
func (g *BitGrid) Clone() *BitGrid {
	c := &BitGrid{n: g.n, words: make([]uint32, len(g.words))}
	copy(c.words, g.words)
	return c
}

//Count returns the number of live cells
func (g *BitGrid) Count() int {
	c := 0
	for _, w := range g.words {
		c += bits.OnesCount32(w)
	}
	return c
}

//Reset kills all cells
func (g *BitGrid) Reset() {
	for i := range g.words {
		g.words[i] = 0
	}
}

//Words exposes the backing words, the slice must not be modified
func (g *BitGrid) Words() []uint32 {
	return g.words
}
