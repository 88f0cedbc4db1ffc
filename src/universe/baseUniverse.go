package universe

import (
	"math"
	"strings"
)

//glyphs used by Render
const (
	DeadGlyph  = '◻'
	AliveGlyph = '◼'
)

//SpaceshipThreshold - a glider is injected on the tick when the random draw exceeds it
const SpaceshipThreshold = 0.9

//spaceship is the smallest glider, written to rows 0..2 and columns 0..2
var spaceship = [3][3]bool{
	{false, true, false},
	{false, false, true},
	{true, true, true},
}

//BaseUniverse is the base universe's engine
//implements Universe interface
//can be used to create different implementations by redefining nextGeneration func
type BaseUniverse struct {
	width          uint32
	height         uint32
	cells          *BitGrid
	rnd            RandSource
	nextGeneration func()
}

//NewBaseUniverse creates the universe seeded with random data and one glider
func NewBaseUniverse(width uint32, height uint32, rnd RandSource) *BaseUniverse {
	u := newBaseUniverse(width, height, rnd)
	u.seed()
	u.CreateSpaceship()
	return u
}

func newBaseUniverse(width uint32, height uint32, rnd RandSource) *BaseUniverse {
	if rnd == nil {
		rnd = NewTimeRandSource()
	}
	u := &BaseUniverse{
		width:  width,
		height: height,
		cells:  newBitGrid(int(width) * int(height)),
		rnd:    rnd,
	}
	//nextGeneration can be implemented by successor
	u.nextGeneration = u._nextGeneration
	return u
}

func (u *BaseUniverse) Width() uint32 {
	return u.width
}

func (u *BaseUniverse) Height() uint32 {
	return u.height
}

//Cells returns the zero-copy view of the packed cells
//the view is valid until the next mutating call
func (u *BaseUniverse) Cells() CellsView {
	return CellsView{width: u.width, height: u.height, words: u.cells.Words()}
}

//LiveCells calculates the count of live cells
func (u *BaseUniverse) LiveCells() int {
	return u.cells.Count()
}

//Tick advances the universe by one generation
//with probability 1-SpaceshipThreshold the glider is injected into the current generation first
func (u *BaseUniverse) Tick() {
	if u.rnd.Float64() > SpaceshipThreshold {
		u.CreateSpaceship()
	}
	u.nextGeneration()
}

//CreateSpaceship overwrites the top left 3x3 block with the glider
func (u *BaseUniverse) CreateSpaceship() {
	next := u.cells.Clone()
	for row := uint32(0); row < 3; row++ {
		for col := uint32(0); col < 3; col++ {
			idx := u.index(row, col)
			//grids smaller than 3x3 alias the cells, writes past the storage are dropped
			if idx >= next.Len() {
				continue
			}
			next.Set(idx, spaceship[row][col])
		}
	}
	u.cells = next
}

//Clear kills all cells
func (u *BaseUniverse) Clear() {
	u.cells = newBitGrid(u.cells.Len())
}

//Toggle inverses the cell state at row, col
func (u *BaseUniverse) Toggle(row uint32, col uint32) {
	if row >= u.height || col >= u.width {
		return
	}
	next := u.cells.Clone()
	idx := u.index(row, col)
	next.Set(idx, !next.Get(idx))
	u.cells = next
}

//Settle makes the cells alive
//coords - array of row, col pairs, the pairs outside the universe are skipped
func (u *BaseUniverse) Settle(coords [][2]uint32) {
	next := u.cells.Clone()
	for _, c := range coords {
		if c[0] >= u.height || c[1] >= u.width {
			continue
		}
		next.Set(u.index(c[0], c[1]), true)
	}
	u.cells = next
}

//Render draws the universe as text, one line per row
func (u *BaseUniverse) Render() string {
	return u.String()
}

func (u *BaseUniverse) String() string {
	var b strings.Builder
	b.Grow(int(u.height) * (int(u.width)*3 + 1))
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			if u.cells.Get(u.index(row, col)) {
				b.WriteRune(AliveGlyph)
			} else {
				b.WriteRune(DeadGlyph)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

//seed populates the universe with random data, each cell is alive with probability 1/2
func (u *BaseUniverse) seed() {
	for i := 0; i < u.cells.Len(); i++ {
		u.cells.Set(i, math.Round(u.rnd.Float64()) == 1)
	}
}

//_nextGeneration calculates the new generation into the fresh buffer
//and replaces the current one with it
func (u *BaseUniverse) _nextGeneration() {
	next := newBitGrid(u.cells.Len())
	u.walk(next)
	u.cells = next
}

//walk calculates the next state of every cell of the current generation into next
//next must not be the current buffer
func (u *BaseUniverse) walk(next *BitGrid) {
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			idx := u.index(row, col)
			next.Set(idx, nextCellState(u.cells.Get(idx), u.liveNeighborCount(row, col)))
		}
	}
}

func (u *BaseUniverse) index(row uint32, col uint32) int {
	return int(row*u.width + col)
}

//liveNeighborCount counts the live cells of the Moore neighbourhood
//the universe is a torus: height-1 and width-1 work as -1 modulo the dimension
func (u *BaseUniverse) liveNeighborCount(row uint32, col uint32) uint8 {
	var count uint8
	for _, dr := range [3]uint32{u.height - 1, 0, 1} {
		for _, dc := range [3]uint32{u.width - 1, 0, 1} {
			//skip my position
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr) % u.height
			c := (col + dc) % u.width
			if u.cells.Get(u.index(r, c)) {
				count++
			}
		}
	}
	return count
}

//nextCellState applies the life rules
func nextCellState(alive bool, liveNeighbors uint8) bool {
	switch {
	case alive && liveNeighbors < 2:
		//underpopulation
		return false
	case alive && (liveNeighbors == 2 || liveNeighbors == 3):
		return true
	case alive && liveNeighbors > 3:
		//overpopulation
		return false
	case !alive && liveNeighbors == 3:
		//reproduction
		return true
	}
	return alive
}
