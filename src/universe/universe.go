package universe

import (
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
)

//Options represents the Universe's configurable options
type Options struct {
	Width  uint32
	Height uint32
	Fill   FillMode    //initial fill
	Rand   *rand.Rand  //random source for FillRandom, time seeded if nil
	Logger *log.Logger //diagnostic output, discarded if nil
}

//default options
const (
	DefWidth  = 80
	DefHeight = 64
	DefFill   = FillStripePattern
)

//glyphs used by Render
const (
	DeadGlyph = '◻'
	LiveGlyph = '◼'
)

var DefaultOptions = Options{
	Width:  DefWidth,
	Height: DefHeight,
	Fill:   DefFill,
}

//Universe is the toroidal grid of cells, one bit per cell
//bit i of the cells is the cell at row i/width, column i%width
//
//Every coordinate-taking method wraps the coordinates around the edges,
//so there is no out of range coordinate.
//The Universe is not safe for concurrent use.
type Universe struct {
	width  uint32
	height uint32
	cells  *bitset.BitSet
	rng    *rand.Rand
	logger *log.Logger
}

//New creates the Universe, nil options mean DefaultOptions
//zero Width or Height is replaced with the default one
func New(o *Options) *Universe {
	if o == nil {
		o = &DefaultOptions
	}
	u := Universe{
		width:  o.Width,
		height: o.Height,
		rng:    o.Rand,
		logger: o.Logger,
	}
	if u.width == 0 {
		u.width = DefWidth
	}
	if u.height == 0 {
		u.height = DefHeight
	}
	if u.rng == nil {
		u.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	u.rebuild(o.Fill)
	return &u
}

//NewDefault creates the Universe with DefaultOptions
func NewDefault() *Universe {
	return New(nil)
}

//Width returns the count of columns
func (u *Universe) Width() uint32 {
	return u.width
}

//Height returns the count of rows
func (u *Universe) Height() uint32 {
	return u.height
}

//Dims returns the read-only dimensions view
func (u *Universe) Dims() Dims {
	return Dims{Width: u.width, Height: u.height}
}

//SetWidth resizes the universe, all cells are discarded
func (u *Universe) SetWidth(width uint32) {
	u.width = width
	u.rebuild(FillEmpty)
}

//SetHeight resizes the universe, all cells are discarded
func (u *Universe) SetHeight(height uint32) {
	u.height = height
	u.rebuild(FillEmpty)
}

//Resize sets both dimensions at once, all cells are discarded
func (u *Universe) Resize(width uint32, height uint32) {
	u.width = width
	u.height = height
	u.rebuild(FillEmpty)
}

//ClearCells kills all cells
func (u *Universe) ClearCells() {
	u.rebuild(FillEmpty)
}

//RandomizeCells refills the universe, every cell is alive with probability 0.5
func (u *Universe) RandomizeCells() {
	u.rebuild(FillRandom)
}

//Fill refills the universe with the mode
func (u *Universe) Fill(mode FillMode) {
	u.rebuild(mode)
}

//Cells returns the packed cell storage: bit i%64 of word i/64 is the cell i
//the slice must not be modified and is valid until the next mutating call only
func (u *Universe) Cells() []uint64 {
	return u.cells.Bytes()
}

//Alive returns the cell state at row, col
func (u *Universe) Alive(row uint32, col uint32) bool {
	if u.empty() {
		return false
	}
	c := u.Dims().Wrap(Coord{row, col})
	return u.cells.Test(u.index(c.Row, c.Col))
}

//LiveCells returns the count of live cells
func (u *Universe) LiveCells() int {
	return int(u.cells.Count())
}

//LiveNeighbourCount returns the count of live cells around row, col (0..8)
func (u *Universe) LiveNeighbourCount(row uint32, col uint32) uint8 {
	if u.empty() {
		return 0
	}
	c := u.Dims().Wrap(Coord{row, col})
	return u.liveNeighbourCount(c.Row, c.Col)
}

//Tick does one generation
//the next state is calculated into the scratch copy which replaces the grid after the whole pass
func (u *Universe) Tick() {
	next := u.cells.Clone()
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			idx := u.index(row, col)
			next.SetTo(idx, cellNextState(u.cells.Test(idx), u.liveNeighbourCount(row, col)))
		}
	}
	u.cells = next
}

//ToggleCell inverses the cell state at row, col
func (u *Universe) ToggleCell(row uint32, col uint32) {
	u.SetCells([]Coord{{row, col}})
}

//SetCells inverses the state of every cell in the list
//stamping over live cells kills them
func (u *Universe) SetCells(cells []Coord) {
	if u.empty() {
		return
	}
	d := u.Dims()
	for _, c := range cells {
		c = d.Wrap(c)
		u.cells.Flip(u.index(c.Row, c.Col))
	}
}

//Settle makes every cell in the list alive
func (u *Universe) Settle(cells []Coord) {
	if u.empty() {
		return
	}
	d := u.Dims()
	for _, c := range cells {
		c = d.Wrap(c)
		u.cells.Set(u.index(c.Row, c.Col))
	}
}

//CreateObject stamps the named object (glider, pulsar, spaceship) with the top-left corner at row, col
//an unknown name toggles the single cell
func (u *Universe) CreateObject(name string, row uint32, col uint32) {
	u.Create(ParseObjectKind(name), row, col)
}

//Create stamps the object of the kind with the top-left corner at row, col
func (u *Universe) Create(kind ObjectKind, row uint32, col uint32) {
	if u.empty() {
		return
	}
	u.SetCells(objectStamp(kind, u.Dims(), Coord{row, col}))
}

//Clone returns the independent copy of the universe
func (u *Universe) Clone() *Universe {
	c := *u
	c.cells = u.cells.Clone()
	return &c
}

//Equal reports whether both universes have the same dimensions and cells
func (u *Universe) Equal(o *Universe) bool {
	return u.width == o.width && u.height == o.height && u.cells.Equal(o.cells)
}

//Render returns the text snapshot, one line per row
func (u *Universe) Render() string {
	var b strings.Builder
	b.Grow(int(u.Dims().Size())*3 + int(u.height))
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			if u.cells.Test(u.index(row, col)) {
				b.WriteRune(LiveGlyph)
			} else {
				b.WriteRune(DeadGlyph)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (u *Universe) String() string {
	return u.Render()
}

//index returns the bit index of the cell, row and col must be already wrapped
func (u *Universe) index(row uint32, col uint32) uint {
	return uint(row)*uint(u.width) + uint(col)
}

//liveNeighbourCount walks the 8 neighbours with the deltas {height-1, 0, 1} x {width-1, 0, 1}
func (u *Universe) liveNeighbourCount(row uint32, col uint32) (count uint8) {
	d := u.Dims()
	for _, deltaRow := range [3]uint32{u.height - 1, 0, 1} {
		for _, deltaCol := range [3]uint32{u.width - 1, 0, 1} {
			//skip my position
			if deltaRow == 0 && deltaCol == 0 {
				continue
			}
			n := d.Offset(Coord{row, col}, deltaRow, deltaCol)
			if u.cells.Test(u.index(n.Row, n.Col)) {
				count++
			}
		}
	}
	return
}

//rebuild allocates the new cells buffer for the current dimensions
func (u *Universe) rebuild(mode FillMode) {
	u.cells = buildCells(u.Dims(), mode, u.rng, u.logf)
}

func (u *Universe) empty() bool {
	return u.width == 0 || u.height == 0
}

func (u *Universe) logf(format string, v ...interface{}) {
	if u.logger != nil {
		u.logger.Printf(format, v...)
	}
}

//cellNextState applies B3/S23 rule
func cellNextState(alive bool, liveNeighbours uint8) bool {
	if liveNeighbours < 2 {
		return false
	} else if liveNeighbours > 3 {
		return false
	} else if liveNeighbours == 3 {
		return true
	}
	return alive
}
