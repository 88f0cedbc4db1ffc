package universe

//Universe is the toroidal life engine
//the engine is not safe for concurrent use, the owner must serialize the calls
type Universe interface {
	Width() uint32
	Height() uint32
	Cells() CellsView
	Render() string
	LiveCells() int
	Tick()
	CreateSpaceship()
	Clear()
	Toggle(row uint32, col uint32)
	Settle(coords [][2]uint32)
}

//CellsView is the read-only view of the packed cells
//the view is backed by the universe storage and becomes stale after any mutating call
type CellsView struct {
	width  uint32
	height uint32
	words  []uint32
}

//NewCellsView wraps packed words produced elsewhere (for example a copied frame)
func NewCellsView(width uint32, height uint32, words []uint32) CellsView {
	return CellsView{width: width, height: height, words: words}
}

func (v CellsView) Width() uint32 {
	return v.width
}

func (v CellsView) Height() uint32 {
	return v.height
}

//WordCount returns ceil(width*height/WordBits)
func (v CellsView) WordCount() int {
	return len(v.words)
}

//Words returns the packed words without copying, the caller must not modify them
func (v CellsView) Words() []uint32 {
	return v.words
}

//Alive reports the state of the cell with the linear index i
func (v CellsView) Alive(i int) bool {
	return v.words[i/WordBits]&(1<<uint(i%WordBits)) != 0
}

//AliveAt reports the state of the cell at row, col
func (v CellsView) AliveAt(row uint32, col uint32) bool {
	return v.Alive(int(row*v.width + col))
}

//Copy returns the view over the independent copy of the words
func (v CellsView) Copy() CellsView {
	w := make([]uint32, len(v.words))
	copy(w, v.words)
	return CellsView{width: v.width, height: v.height, words: w}
}
