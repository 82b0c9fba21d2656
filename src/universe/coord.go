package universe

//Coord is the cell position on the grid
type Coord struct {
	Row uint32
	Col uint32
}

//Dims is the read-only view of the universe dimensions
//stamp helpers receive it instead of the universe itself
type Dims struct {
	Width  uint32
	Height uint32
}

//Offset returns the coordinate shifted by dRow, dCol with wraparound on both axes
func (d Dims) Offset(c Coord, dRow uint32, dCol uint32) Coord {
	return Coord{
		Row: d.rowAdd(c.Row, dRow),
		Col: d.colAdd(c.Col, dCol),
	}
}

//Wrap reduces the coordinate modulo the dimensions
func (d Dims) Wrap(c Coord) Coord {
	return Coord{Row: c.Row % d.Height, Col: c.Col % d.Width}
}

//Size returns the total count of cells
func (d Dims) Size() uint {
	return uint(d.Width) * uint(d.Height)
}

func (d Dims) rowAdd(row uint32, toAdd uint32) uint32 {
	return uint32((uint64(row) + uint64(toAdd)) % uint64(d.Height))
}

func (d Dims) colAdd(col uint32, toAdd uint32) uint32 {
	return uint32((uint64(col) + uint64(toAdd)) % uint64(d.Width))
}

//stamp translates the offsets list to the absolute coordinates around the anchor
func (d Dims) stamp(anchor Coord, offsets [][2]uint32) []Coord {
	anchor = d.Wrap(anchor)
	cells := make([]Coord, 0, len(offsets))
	for _, o := range offsets {
		cells = append(cells, d.Offset(anchor, o[0], o[1]))
	}
	return cells
}
