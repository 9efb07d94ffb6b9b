package field

import (
	"github.com/dolthub/swiss"
)

type packedPos int64

func packPos(c Coord) packedPos {
	return packedPos(c.X*Height + c.Y)
}

// Fleet is the target side of a BoatMap: it resolves incoming shots and keeps
// track of how badly every ship is damaged.
type Fleet struct {
	ships  *swiss.Map[packedPos, Boat]
	damage [Carrier + 1]int
	sunk   int
}

func NewFleet(boats *BoatMap) *Fleet {
	f := &Fleet{
		ships: swiss.NewMap[packedPos, Boat](TotalLength),
	}

	for c := range Coords() {
		if boat := boats.At(c); !boat.IsEmpty() {
			f.ships.Put(packPos(c), boat)
		}
	}

	return f
}

// Shoot returns the outcome of a shot at c. Shots outside the board miss.
//
// Shoot does not remember which cells were already hit; callers must not
// fire at the same cell twice.
func (f *Fleet) Shoot(c Coord) Shot {
	if !c.InBounds() {
		return Miss
	}

	boat, exists := f.ships.Get(packPos(c))
	if !exists {
		return Miss
	}

	f.damage[boat]++
	if f.damage[boat] == boat.Length() {
		f.sunk++
	}

	return Hit(boat)
}

func (f *Fleet) Sunk(boat Boat) bool {
	return f.damage[boat] >= boat.Length()
}

// AllDead reports whether every ship has been sunk.
func (f *Fleet) AllDead() bool {
	return f.sunk == len(Boats)
}

// ResetShots undoes all damage.
func (f *Fleet) ResetShots() {
	f.damage = [Carrier + 1]int{}
	f.sunk = 0
}
