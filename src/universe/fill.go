package universe

import (
	"math/rand"

	"github.com/bits-and-blooms/bitset"
)

//FillMode determines how a freshly sized grid is populated
type FillMode int

const (
	FillEmpty FillMode = iota
	FillRandom
	FillStripePattern
	FillSmallSpaceshipPreset
)

var fillModeNames = map[FillMode]string{
	FillEmpty:                "empty",
	FillRandom:               "random",
	FillStripePattern:        "lines",
	FillSmallSpaceshipPreset: "spaceship",
}

func (m FillMode) String() string {
	if n, ok := fillModeNames[m]; ok {
		return n
	}
	return "unknown"
}

//ParseFillMode returns the fill mode by its name (empty, random, lines, spaceship)
func ParseFillMode(name string) (FillMode, bool) {
	for m, n := range fillModeNames {
		if n == name {
			return m, true
		}
	}
	return FillEmpty, false
}

//FillModeNames returns all known fill mode names in the declaration order
func FillModeNames() []string {
	return []string{
		FillEmpty.String(),
		FillRandom.String(),
		FillStripePattern.String(),
		FillSmallSpaceshipPreset.String(),
	}
}

//buildCells allocates the new bit-set for the given dimensions and populates it according to the mode
//rng is used by FillRandom only
func buildCells(d Dims, mode FillMode, rng *rand.Rand, logf func(format string, v ...interface{})) *bitset.BitSet {
	size := d.Size()
	cells := bitset.New(size)
	w := uint(d.Width)

	switch mode {
	case FillSmallSpaceshipPreset:
		// xxxxo
		// xooox
		// xoooo
		// oxoox
		//meaningful for width >= 5 and height >= 5 only
		logf("building small spaceship universe %vx%v", d.Width, d.Height)
		for _, i := range []uint{w, w + 1, w + 2, w + 3, 2 * w, 2*w + 4, 3 * w, 4*w + 1, 4*w + 4} {
			if i < size {
				cells.Set(i)
			}
		}
	case FillRandom:
		logf("building random universe %vx%v", d.Width, d.Height)
		for i := uint(0); i < size; i++ {
			cells.SetTo(i, rng.Float64() < 0.5)
		}
	case FillStripePattern:
		logf("building i%%2 & i%%7 universe %vx%v", d.Width, d.Height)
		for i := uint(0); i < size; i++ {
			cells.SetTo(i, i%2 == 0 || i%7 == 0)
		}
	default:
		logf("building empty universe %vx%v", d.Width, d.Height)
	}
	return cells
}
