package field

import (
	"fmt"
	"strconv"
)

// Boat is the kind of ship occupying a cell. The zero value is Empty.
type Boat uint8

const (
	Empty Boat = iota
	Destroyer
	Submarine
	Cruiser
	Battleship
	Carrier
)

// Boats lists every ship kind in canonical order. Everything that walks the
// fleet walks it in this order; the destroy resolver relies on it to pick
// which wounded ship to finish first.
var Boats = [...]Boat{Destroyer, Submarine, Cruiser, Battleship, Carrier}

var lengths = [...]int{0, 2, 3, 3, 4, 5}

// TotalLength is the number of cells the whole fleet occupies.
const TotalLength = 2 + 3 + 3 + 4 + 5

func (b Boat) Length() int {
	if int(b) >= len(lengths) {
		panic("invalid boat")
	}
	return lengths[b]
}

func (b Boat) IsEmpty() bool {
	return b == Empty
}

func (b Boat) String() string {
	switch b {
	case Empty:
		return "empty"
	case Destroyer:
		return "destroyer"
	case Submarine:
		return "submarine"
	case Cruiser:
		return "cruiser"
	case Battleship:
		return "battleship"
	case Carrier:
		return "carrier"
	default:
		panic("invalid boat")
	}
}

// FromString accepts either a kind name or its number (1-5).
func (b *Boat) FromString(str string) error {
	if n, err := strconv.Atoi(str); err == nil {
		if n < int(Destroyer) || n > int(Carrier) {
			return fmt.Errorf("invalid boat number %d", n)
		}
		*b = Boat(n)
		return nil
	}

	for _, boat := range Boats {
		if boat.String() == str {
			*b = boat
			return nil
		}
	}

	return fmt.Errorf("invalid boat %q", str)
}
