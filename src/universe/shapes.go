package universe

//ObjectKind is the shape which can be stamped onto the universe
type ObjectKind int

const (
	ObjectNone ObjectKind = iota
	ObjectSpaceship
	ObjectPulsar
	ObjectGlider
)

var objectKinds = map[string]ObjectKind{
	"glider":    ObjectGlider,
	"spaceship": ObjectSpaceship,
	"pulsar":    ObjectPulsar,
}

//ParseObjectKind maps the object name to its kind, unknown names give ObjectNone
func ParseObjectKind(name string) ObjectKind {
	return objectKinds[name]
}

var (
	gliderOffsets = [][2]uint32{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0},
		{2, 1},
	}

	//lightweight spaceship, the same layout as FillSmallSpaceshipPreset
	spaceshipOffsets = [][2]uint32{
		{0, 0}, {0, 1}, {0, 2}, {0, 3},
		{1, 0}, {1, 4},
		{2, 0},
		{3, 1}, {3, 4},
	}

	pulsarHorizontal = []uint32{2, 3, 4, 8, 9, 10}
	pulsarVertical   = []uint32{0, 5, 7, 12}

	//rows 1, 6 and 11 of the pulsar box are empty
	pulsarRows = []struct {
		row  uint32
		cols []uint32
	}{
		{0, pulsarHorizontal},
		{2, pulsarVertical},
		{3, pulsarVertical},
		{4, pulsarVertical},
		{5, pulsarHorizontal},
		{7, pulsarHorizontal},
		{8, pulsarVertical},
		{9, pulsarVertical},
		{10, pulsarVertical},
		{12, pulsarHorizontal},
	}
)

//GliderStamp returns the glider cells anchored at the top-left corner
func GliderStamp(d Dims, anchor Coord) []Coord {
	return d.stamp(anchor, gliderOffsets)
}

//SpaceshipStamp returns the lightweight spaceship cells anchored at the top-left corner
func SpaceshipStamp(d Dims, anchor Coord) []Coord {
	return d.stamp(anchor, spaceshipOffsets)
}

//PulsarStamp returns the pulsar cells anchored at the top-left corner of its 13x13 box
func PulsarStamp(d Dims, anchor Coord) []Coord {
	offsets := make([][2]uint32, 0, 48)
	for _, r := range pulsarRows {
		for _, c := range r.cols {
			offsets = append(offsets, [2]uint32{r.row, c})
		}
	}
	return d.stamp(anchor, offsets)
}

//objectStamp returns the stamp for the kind, ObjectNone gives the anchor cell only
func objectStamp(kind ObjectKind, d Dims, anchor Coord) []Coord {
	switch kind {
	case ObjectGlider:
		return GliderStamp(d, anchor)
	case ObjectPulsar:
		return PulsarStamp(d, anchor)
	case ObjectSpaceship:
		return SpaceshipStamp(d, anchor)
	default:
		return []Coord{d.Wrap(anchor)}
	}
}
