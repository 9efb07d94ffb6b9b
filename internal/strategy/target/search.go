package target

import (
	"math/rand/v2"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

const (
	// Bound on grid steps before grid search gives up and shoots randomly.
	gridAttempts = 100

	// Grid stride used when no ship is left afloat.
	maxStride = 6
)

// Searcher picks a first-contact cell when no ship is wounded.
type Searcher interface {
	Find(shots *field.ShotMap) field.Coord
}

// RandomSearch fires at a uniformly random legal cell.
func RandomSearch(rng *rand.Rand, shots *field.ShotMap) field.Coord {
	if shots.Shots() == field.Cells {
		panic("no legal cell left")
	}

	for {
		c := field.Coord{X: rng.IntN(field.Width), Y: rng.IntN(field.Height)}
		if field.IsLegalShot(shots, c) {
			return c
		}
	}
}

// Stride returns the length of the shortest ship that has not yet been fully
// hit. Probing every stride-th cell is enough to find it.
func Stride(shots *field.ShotMap) int {
	counts := shots.HitCounts()
	stride := maxStride

	for _, boat := range field.Boats {
		if counts[boat] < boat.Length() && boat.Length() < stride {
			stride = boat.Length()
		}
	}

	return stride
}

// GridFind continues a grid scan from the last probed cell. Rows are walked
// stride cells at a time and odd rows are shifted by one, so consecutive rows
// interleave.
//
// The second result reports whether the returned cell should become the new
// last probed cell. It is false for the opening (0, 0) shot and for the random
// fallback taken when the scan runs out of attempts.
func GridFind(rng *rand.Rand, last field.Coord, shots *field.ShotMap) (field.Coord, bool) {
	origin := field.Coord{}
	if field.IsLegalShot(shots, origin) {
		return origin, false
	}

	stride := Stride(shots)
	pos := last

	for attempts := 0; !field.IsLegalShot(shots, pos); attempts++ {
		pos.X += stride

		if pos.X >= field.Width {
			pos.Y++
			pos.X %= field.Width

			if pos.Y%2 == 1 && pos.X == 0 {
				pos.X = 1
			} else if pos.Y%2 == 0 && pos.X == 1 {
				pos.X = 0
			}
		}

		if pos.Y >= field.Height {
			pos = origin
		}

		if attempts > gridAttempts {
			return RandomSearch(rng, shots), false
		}
	}

	return pos, true
}

type randomSearcher struct {
	rng *rand.Rand
}

func (s *randomSearcher) Find(shots *field.ShotMap) field.Coord {
	return RandomSearch(s.rng, shots)
}

// GridSearch is the stateful form of GridFind. It remembers the last probed
// cell between turns. One GridSearch must serve exactly one player of one
// match.
type GridSearch struct {
	rng  *rand.Rand
	last field.Coord
}

func NewGridSearch(rng *rand.Rand) *GridSearch {
	return &GridSearch{rng: rng}
}

func (s *GridSearch) Find(shots *field.ShotMap) field.Coord {
	c, update := GridFind(s.rng, s.last, shots)
	if update {
		s.last = c
	}
	return c
}

// Last returns the last probed cell.
func (s *GridSearch) Last() field.Coord {
	return s.last
}

func (s *GridSearch) Reset() {
	s.last = field.Coord{}
}

type heatmapSearcher struct {
	rng *rand.Rand
}

func (s *heatmapSearcher) Find(shots *field.ShotMap) field.Coord {
	return HeatmapSearch(s.rng, shots)
}
