package place

import (
	"math/rand/v2"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

// Attempts to place a single ship before the whole fleet is started over.
// Clustered fleets can box the carrier out.
const placeAttempts = 1000

type posFunc func(rng *rand.Rand, boat field.Boat) (field.Orientation, field.Coord)

func orientation(rng *rand.Rand) field.Orientation {
	if rng.IntN(2) == 0 {
		return field.Horizontal
	}
	return field.Vertical
}

func placeBoat(rng *rand.Rand, boats *field.BoatMap, boat field.Boat, pos posFunc) bool {
	for range placeAttempts {
		o, origin := pos(rng, boat)
		if field.Fits(boat, o, origin) && !boats.Overlaps(boat, o, origin) {
			if err := boats.Place(boat, o, origin); err != nil {
				panic(err)
			}
			return true
		}
	}
	return false
}

func placeFleet(rng *rand.Rand, pos posFunc) field.BoatMap {
	for {
		var boats field.BoatMap

		placed := true
		for _, boat := range field.Boats {
			if !placeBoat(rng, &boats, boat, pos) {
				placed = false
				break
			}
		}

		if placed {
			return boats
		}
	}
}

func randomPos(rng *rand.Rand, boat field.Boat) (field.Orientation, field.Coord) {
	o := orientation(rng)
	length := boat.Length()

	if o == field.Horizontal {
		return o, field.Coord{X: rng.IntN(field.Width - length), Y: rng.IntN(field.Height)}
	}
	return o, field.Coord{X: rng.IntN(field.Width), Y: rng.IntN(field.Height - length)}
}

// Random places every ship with a random orientation and position.
func Random(rng *rand.Rand) field.BoatMap {
	return placeFleet(rng, randomPos)
}

// edge picks one of the two outermost lines on either side of a dimension.
func edge(rng *rand.Rand, size int) int {
	if rng.IntN(2) == 0 {
		return rng.IntN(2)
	}
	return size - 2 + rng.IntN(2)
}

func sidesPos(rng *rand.Rand, boat field.Boat) (field.Orientation, field.Coord) {
	o := orientation(rng)
	length := boat.Length()

	if o == field.Horizontal {
		return o, field.Coord{X: rng.IntN(field.Width - length), Y: edge(rng, field.Height)}
	}
	return o, field.Coord{X: edge(rng, field.Width), Y: rng.IntN(field.Height - length)}
}

// Sides hugs the board edges: horizontal ships go in the two top or bottom
// rows, vertical ones in the two leftmost or rightmost columns.
func Sides(rng *rand.Rand) field.BoatMap {
	return placeFleet(rng, sidesPos)
}

type quadrant struct {
	minX, maxX, minY, maxY int
}

var quadrants = map[field.Boat]quadrant{
	field.Destroyer:  {0, field.Width / 2, 0, field.Height / 2},
	field.Submarine:  {field.Width/2 + 1, field.Width, 0, field.Height / 2},
	field.Cruiser:    {0, field.Width / 2, field.Height/2 + 1, field.Height},
	field.Battleship: {field.Width / 2, field.Width, field.Height / 2, field.Height},
}

func spreadPos(rng *rand.Rand, boat field.Boat) (field.Orientation, field.Coord) {
	q, ok := quadrants[boat]
	if !ok {
		return randomPos(rng, boat)
	}

	o := orientation(rng)
	if o == field.Horizontal {
		q.maxX -= boat.Length()
	} else {
		q.maxY -= boat.Length()
	}

	return o, field.Coord{
		X: q.minX + rng.IntN(q.maxX-q.minX),
		Y: q.minY + rng.IntN(q.maxY-q.minY),
	}
}

// Spread puts the destroyer top-left, the submarine top-right, the cruiser
// bottom-left, the battleship bottom-right and the carrier anywhere.
func Spread(rng *rand.Rand) field.BoatMap {
	return placeFleet(rng, spreadPos)
}

func clusterPos(rng *rand.Rand, boat field.Boat) (field.Orientation, field.Coord) {
	o := orientation(rng)
	length := boat.Length()

	lo := field.Width / 4
	hi := field.Width*3/4 + 1

	if o == field.Horizontal {
		return o, field.Coord{X: lo + rng.IntN(hi-length-lo), Y: lo + rng.IntN(hi-lo)}
	}
	return o, field.Coord{X: lo + rng.IntN(hi-lo), Y: lo + rng.IntN(hi-length-lo)}
}

// Cluster packs the whole fleet into the middle of the board.
func Cluster(rng *rand.Rand) field.BoatMap {
	return placeFleet(rng, clusterPos)
}
