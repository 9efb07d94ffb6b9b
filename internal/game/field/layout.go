package field

import (
	"bufio"
	"fmt"
	"io"
	"iter"
)

// Ship is a single placement in a fleet layout.
type Ship struct {
	Boat        Boat
	Orientation Orientation
	Origin      Coord
}

// ParseShips reads a fleet layout:
//
//	10 10
//	carrier h 0 0
//	2 v 5 5
//
// The first line holds the board dimensions and is skipped. Every other line
// is `<kind> <h|v> <x> <y>`, kind being a name or a number. Parsing stops at
// the first malformed line.
func ParseShips(src io.Reader) iter.Seq[Ship] {
	return func(yield func(s Ship) bool) {
		lines := bufio.NewScanner(src)

		// Skip first line with field dimensions
		lines.Scan()

		for lines.Scan() {
			var ship Ship
			var kind, direction string

			n, err := fmt.Sscanf(lines.Text(), "%s %s %d %d", &kind, &direction, &ship.Origin.X, &ship.Origin.Y)
			if err != nil || n != 4 {
				return
			}

			if ship.Boat.FromString(kind) != nil || ship.Orientation.FromString(direction) != nil {
				return
			}

			if !yield(ship) {
				return
			}
		}
	}
}

// LoadLayout places the given ships on an empty board and validates the
// resulting fleet.
func LoadLayout(ships iter.Seq[Ship]) (BoatMap, error) {
	var boats BoatMap

	for ship := range ships {
		if len(boats.Cells(ship.Boat)) > 0 {
			return BoatMap{}, fmt.Errorf("%s placed twice", ship.Boat)
		}
		if err := boats.Place(ship.Boat, ship.Orientation, ship.Origin); err != nil {
			return BoatMap{}, fmt.Errorf("failed to place %s at %s: %w", ship.Boat, ship.Origin, err)
		}
	}

	if err := boats.Validate(); err != nil {
		return BoatMap{}, err
	}

	return boats, nil
}
