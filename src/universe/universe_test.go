package universe

import (
	"bytes"
	"log"
	"math/rand"
	"strings"
	"testing"
)

func newEmpty(width uint32, height uint32) *Universe {
	return New(&Options{Width: width, Height: height, Fill: FillEmpty})
}

func newSeeded(width uint32, height uint32, seed int64) *Universe {
	return New(&Options{Width: width, Height: height, Fill: FillRandom, Rand: rand.New(rand.NewSource(seed))})
}

func Test_New(t *testing.T) {
	u := NewDefault()
	if u.Width() != DefWidth || u.Height() != DefHeight {
		t.Fatalf("unexpected dimensions %vx%v", u.Width(), u.Height())
	}
	expected := New(&Options{Width: DefWidth, Height: DefHeight, Fill: FillStripePattern})
	if !u.Equal(expected) {
		t.Errorf("default universe is not filled with the stripe pattern")
	}

	u = New(&Options{Fill: FillEmpty})
	if u.Width() != DefWidth || u.Height() != DefHeight || u.LiveCells() != 0 {
		t.Errorf("zero options: %vx%v, live cells: %v", u.Width(), u.Height(), u.LiveCells())
	}
}

func Test_Tick_Rules(t *testing.T) {
	tests := []struct {
		name     string
		cells    []Coord
		check    Coord
		expected bool
	}{
		{"alive without neighbours dies", []Coord{{2, 2}}, Coord{2, 2}, false},
		{"alive with 1 neighbour dies", []Coord{{2, 2}, {2, 3}}, Coord{2, 2}, false},
		{"alive with 2 neighbours survives", []Coord{{2, 1}, {2, 2}, {2, 3}}, Coord{2, 2}, true},
		{"alive with 3 neighbours survives", []Coord{{1, 1}, {1, 2}, {2, 1}, {2, 2}}, Coord{2, 2}, true},
		{"alive with 4 neighbours dies", []Coord{{2, 2}, {1, 1}, {1, 3}, {3, 1}, {3, 3}}, Coord{2, 2}, false},
		{"dead with 3 neighbours is born", []Coord{{1, 1}, {1, 2}, {1, 3}}, Coord{2, 2}, true},
		{"dead with 2 neighbours stays dead", []Coord{{1, 1}, {1, 3}}, Coord{2, 2}, false},
		{"dead with 4 neighbours stays dead", []Coord{{1, 1}, {1, 3}, {3, 1}, {3, 3}}, Coord{2, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newEmpty(5, 5)
			u.SetCells(tt.cells)
			u.Tick()
			if got := u.Alive(tt.check.Row, tt.check.Col); got != tt.expected {
				t.Errorf("cell %v: got %v, expected %v\n%v", tt.check, got, tt.expected, u)
			}
		})
	}
}

func Test_Tick_LonelyCellLeavesEmptyGrid(t *testing.T) {
	u := newEmpty(5, 5)
	u.ToggleCell(2, 2)
	u.Tick()
	if u.LiveCells() != 0 {
		t.Errorf("live cells: %v, expected none\n%v", u.LiveCells(), u)
	}
}

func Test_Tick_Block(t *testing.T) {
	u := newEmpty(6, 6)
	u.SetCells([]Coord{{1, 1}, {1, 2}, {2, 1}, {2, 2}})
	before := u.Clone()
	u.Tick()
	if !u.Equal(before) {
		t.Errorf("block is not a still life\n%v", u)
	}
}

func Test_Tick_Blinker(t *testing.T) {
	u := newEmpty(5, 5)
	u.SetCells([]Coord{{2, 1}, {2, 2}, {2, 3}})
	u.Tick()
	expected := newEmpty(5, 5)
	expected.SetCells([]Coord{{1, 2}, {2, 2}, {3, 2}})
	if !u.Equal(expected) {
		t.Errorf("unexpected blinker phase\n%v", u)
	}
	u.Tick()
	expected.Resize(5, 5)
	expected.SetCells([]Coord{{2, 1}, {2, 2}, {2, 3}})
	if !u.Equal(expected) {
		t.Errorf("blinker did not return\n%v", u)
	}
}

func Test_Tick_Determinism(t *testing.T) {
	u := newSeeded(32, 24, 7)
	saved := u.Clone()
	u.Tick()
	u.Tick()
	saved.Tick()
	saved.Tick()
	if !u.Equal(saved) {
		t.Errorf("the same state gave different generations")
	}
}

func Test_LiveNeighbourCount_Wraparound(t *testing.T) {
	u := newEmpty(6, 4)
	u.SetCells([]Coord{{0, 0}, {3, 5}})
	if n := u.LiveNeighbourCount(0, 0); n != 1 {
		t.Errorf("(0,0) neighbours: %v, expected 1", n)
	}
	if n := u.LiveNeighbourCount(3, 5); n != 1 {
		t.Errorf("(3,5) neighbours: %v, expected 1", n)
	}

	u.ClearCells()
	u.SetCells([]Coord{{3, 0}, {0, 5}, {1, 1}, {3, 5}})
	if n := u.LiveNeighbourCount(0, 0); n != 4 {
		t.Errorf("(0,0) neighbours: %v, expected 4", n)
	}
	if n := u.LiveNeighbourCount(4, 6); n != 4 {
		t.Errorf("wrapped (0,0) neighbours: %v, expected 4", n)
	}
}

func Test_Glider(t *testing.T) {
	u := newEmpty(20, 20)
	u.CreateObject("glider", 5, 5)
	if u.LiveCells() != 5 {
		t.Fatalf("glider cells: %v", u.LiveCells())
	}
	for i := 0; i < 4; i++ {
		u.Tick()
	}
	//shifted by one cell on both axes, these offsets travel up-left
	expected := newEmpty(20, 20)
	expected.SetCells(GliderStamp(expected.Dims(), Coord{4, 4}))
	if !u.Equal(expected) {
		t.Errorf("unexpected glider after 4 ticks\n%v", u)
	}
}

func Test_Glider_CrossesEdges(t *testing.T) {
	u := newEmpty(10, 8)
	u.CreateObject("glider", 0, 0)
	for i := 0; i < 4; i++ {
		u.Tick()
	}
	expected := newEmpty(10, 8)
	expected.SetCells(GliderStamp(expected.Dims(), Coord{7, 9}))
	if !u.Equal(expected) {
		t.Errorf("glider did not wrap around\n%v", u)
	}
}

func Test_Pulsar(t *testing.T) {
	u := newEmpty(20, 20)
	u.CreateObject("pulsar", 2, 2)
	if u.LiveCells() != 48 {
		t.Fatalf("pulsar cells: %v", u.LiveCells())
	}
	start := u.Clone()
	u.Tick()
	if u.Equal(start) {
		t.Errorf("pulsar is still after 1 tick")
	}
	u.Tick()
	u.Tick()
	if !u.Equal(start) {
		t.Errorf("pulsar period is not 3\n%v", u)
	}
}

func Test_Spaceship(t *testing.T) {
	u := newEmpty(20, 20)
	u.CreateObject("spaceship", 8, 8)
	if u.LiveCells() != 9 {
		t.Fatalf("spaceship cells: %v", u.LiveCells())
	}
	for i := 0; i < 4; i++ {
		u.Tick()
	}
	expected := newEmpty(20, 20)
	expected.SetCells(SpaceshipStamp(expected.Dims(), Coord{8, 6}))
	if !u.Equal(expected) {
		t.Errorf("spaceship did not move 2 cells left\n%v", u)
	}
}

func Test_CreateObject_Unknown(t *testing.T) {
	u := newEmpty(5, 5)
	u.CreateObject("blinker", 3, 4)
	if u.LiveCells() != 1 || !u.Alive(3, 4) {
		t.Errorf("unknown object must toggle the anchor cell\n%v", u)
	}
	u.CreateObject("", 3, 4)
	if u.LiveCells() != 0 {
		t.Errorf("second toggle must kill the anchor cell\n%v", u)
	}
}

func Test_SetCells_TwiceRestores(t *testing.T) {
	u := newSeeded(16, 16, 42)
	saved := u.Clone()
	coords := append(PulsarStamp(u.Dims(), Coord{1, 1}), Coord{0, 0}, Coord{15, 15})
	u.SetCells(coords)
	if u.Equal(saved) {
		t.Fatalf("toggling changed nothing")
	}
	u.SetCells(coords)
	if !u.Equal(saved) {
		t.Errorf("toggling twice did not restore the grid")
	}
}

func Test_ToggleCell_Wraps(t *testing.T) {
	u := newEmpty(7, 5)
	u.ToggleCell(5+1, 7*2+2)
	if !u.Alive(1, 2) {
		t.Errorf("out of range coordinates are not wrapped\n%v", u)
	}
}

func Test_Settle(t *testing.T) {
	u := newEmpty(5, 5)
	u.Settle([]Coord{{1, 1}, {1, 1}, {2, 2}})
	if u.LiveCells() != 2 || !u.Alive(1, 1) || !u.Alive(2, 2) {
		t.Errorf("settle must set cells alive\n%v", u)
	}
}

func Test_Resize_DiscardsCells(t *testing.T) {
	u := New(&Options{Width: 8, Height: 8, Fill: FillStripePattern})
	u.SetWidth(10)
	if !u.Equal(newEmpty(10, 8)) {
		t.Errorf("SetWidth result is not empty 10x8\n%v", u)
	}
	u.ToggleCell(3, 3)
	u.SetHeight(4)
	if !u.Equal(newEmpty(10, 4)) {
		t.Errorf("SetHeight result is not empty 10x4\n%v", u)
	}
	u.ToggleCell(1, 1)
	u.Resize(3, 3)
	if !u.Equal(newEmpty(3, 3)) {
		t.Errorf("Resize result is not empty 3x3\n%v", u)
	}
}

func Test_Resize_ZeroDimension(t *testing.T) {
	u := newEmpty(5, 5)
	u.SetWidth(0)
	u.ToggleCell(1, 1)
	u.CreateObject("glider", 0, 0)
	u.Tick()
	if u.LiveCells() != 0 || u.Alive(0, 0) || u.LiveNeighbourCount(0, 0) != 0 {
		t.Errorf("empty grid must stay empty")
	}
	if len(u.Cells()) != 0 {
		t.Errorf("empty grid has %v words", len(u.Cells()))
	}
}

func Test_ClearCells(t *testing.T) {
	u := newSeeded(12, 9, 3)
	u.ClearCells()
	if !u.Equal(newEmpty(12, 9)) {
		t.Errorf("cleared universe is not empty")
	}
}

func Test_RandomizeCells(t *testing.T) {
	a := New(&Options{Width: DefWidth, Height: DefHeight, Fill: FillEmpty, Rand: rand.New(rand.NewSource(11))})
	b := New(&Options{Width: DefWidth, Height: DefHeight, Fill: FillEmpty, Rand: rand.New(rand.NewSource(11))})
	a.RandomizeCells()
	b.RandomizeCells()
	if !a.Equal(b) {
		t.Errorf("the same seed gave different grids")
	}
	total := DefWidth * DefHeight
	if live := a.LiveCells(); live < total*35/100 || live > total*65/100 {
		t.Errorf("live cells: %v of %v", live, total)
	}
	a.RandomizeCells()
	if a.Equal(b) {
		t.Errorf("the next draw repeated the grid")
	}
}

func Test_Cells(t *testing.T) {
	u := New(&Options{Width: 8, Height: 8, Fill: FillStripePattern})
	words := u.Cells()
	if len(words) != 1 || words[0] != 0xd557555d557555d5 {
		t.Errorf("unexpected packed cells: %x", words)
	}
}

func Test_Render(t *testing.T) {
	u := newEmpty(3, 2)
	u.ToggleCell(0, 1)
	u.ToggleCell(1, 2)
	expected := "◻◼◻\n◻◻◼\n"
	if r := u.Render(); r != expected {
		t.Errorf("got %q, expected %q", r, expected)
	}
	if u.String() != expected {
		t.Errorf("String differs from Render")
	}
}

func Test_Logger(t *testing.T) {
	var buf bytes.Buffer
	u := New(&Options{Width: 4, Height: 4, Fill: FillEmpty, Logger: log.New(&buf, "", 0)})
	u.RandomizeCells()
	out := buf.String()
	if !strings.Contains(out, "building empty universe 4x4") || !strings.Contains(out, "building random universe 4x4") {
		t.Errorf("unexpected log: %q", out)
	}
}
