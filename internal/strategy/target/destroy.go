package target

import (
	"math/rand/v2"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

// Resolver proposes a cell that continues an attack on a wounded ship. It
// reports false when no ship is wounded or the wounded ship has no legal
// continuation, in which case the caller falls back to searching.
type Resolver func(rng *rand.Rand, shots *field.ShotMap) (field.Coord, bool)

var neighbourOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// wounded returns the hits of the first ship, in canonical kind order, that
// has been hit but not sunk. Hits come sorted by x, then y.
func wounded(shots *field.ShotMap) []field.Coord {
	hits := shots.Hits()

	for _, boat := range field.Boats {
		var cells []field.Coord
		for _, hit := range hits {
			if hit.Boat == boat {
				cells = append(cells, hit.Coord)
			}
		}

		if len(cells) > 0 && len(cells) < boat.Length() {
			return cells
		}
	}

	return nil
}

func appendLegal(candidates []field.Coord, shots *field.ShotMap, x, y int) []field.Coord {
	if field.IsLegalShotSigned(shots, x, y) {
		candidates = append(candidates, field.Coord{X: x, Y: y})
	}
	return candidates
}

func neighbours(shots *field.ShotMap, origin field.Coord) []field.Coord {
	candidates := make([]field.Coord, 0, len(neighbourOffsets))
	for _, off := range neighbourOffsets {
		candidates = appendLegal(candidates, shots, origin.X+off[0], origin.Y+off[1])
	}
	return candidates
}

func pick(rng *rand.Rand, candidates []field.Coord) (field.Coord, bool) {
	if len(candidates) == 0 {
		return field.Coord{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}

// Destroy finishes off the first wounded ship.
//
// With a single hit any free neighbour may continue the ship. With two or more
// hits the ship's axis is known, so only the cells just past either end of the
// hit line are candidates.
func Destroy(rng *rand.Rand, shots *field.ShotMap) (field.Coord, bool) {
	hits := wounded(shots)

	switch len(hits) {
	case 0:
		return field.Coord{}, false
	case 1:
		return pick(rng, neighbours(shots, hits[0]))
	}

	first, last := hits[0], hits[len(hits)-1]
	candidates := make([]field.Coord, 0, 2)

	if first.X != last.X {
		candidates = appendLegal(candidates, shots, first.X-1, first.Y)
		candidates = appendLegal(candidates, shots, last.X+1, last.Y)
	} else {
		candidates = appendLegal(candidates, shots, first.X, first.Y-1)
		candidates = appendLegal(candidates, shots, last.X, last.Y+1)
	}

	return pick(rng, candidates)
}

// RandomDestroy is a weaker Destroy that ignores the ship's axis: it fires at
// a free neighbour of one end of the hit line.
func RandomDestroy(rng *rand.Rand, shots *field.ShotMap) (field.Coord, bool) {
	hits := wounded(shots)
	if len(hits) == 0 {
		return field.Coord{}, false
	}

	origin := hits[0]
	if len(hits) > 1 && rng.IntN(2) == 1 {
		origin = hits[len(hits)-1]
	}

	return pick(rng, neighbours(shots, origin))
}
