package field

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidFleet = errors.New("invalid fleet")

	errOutOfBounds = errors.New("ship out of bounds")
	errOverlap     = errors.New("ships overlap")
)

// FleetError describes a ship kind whose cells do not form a single straight
// line of the kind's length.
type FleetError struct {
	Boat  Boat
	Cells int
}

func (e *FleetError) Error() string {
	if e.Cells == e.Boat.Length() {
		return fmt.Sprintf("invalid fleet: %s cells are not a straight line", e.Boat)
	}
	return fmt.Sprintf("invalid fleet: %s occupies %d cells, expected %d", e.Boat, e.Cells, e.Boat.Length())
}

func (e *FleetError) Is(target error) bool {
	return target == ErrInvalidFleet
}

// BoatMap records which ship kind, if any, occupies each cell.
type BoatMap struct {
	cells [Cells]Boat
}

// At returns the boat at c. Cells outside the board are Empty.
func (m *BoatMap) At(c Coord) Boat {
	if !c.InBounds() {
		return Empty
	}
	return m.cells[c.index()]
}

func (m *BoatMap) Set(c Coord, boat Boat) {
	if !c.InBounds() {
		panic(fmt.Sprintf("cell %s out of bounds", c))
	}
	m.cells[c.index()] = boat
}

// Fits reports whether a ship of the given kind starting at origin stays
// inside the board.
func Fits(boat Boat, o Orientation, origin Coord) bool {
	dx, dy := o.Step()
	length := boat.Length()
	end := origin.Offset(dx*(length-1), dy*(length-1))
	return origin.InBounds() && end.InBounds()
}

// Overlaps reports whether placing boat at origin would cover an occupied
// cell. The placement must fit on the board.
func (m *BoatMap) Overlaps(boat Boat, o Orientation, origin Coord) bool {
	dx, dy := o.Step()
	for i := range boat.Length() {
		if !m.At(origin.Offset(dx*i, dy*i)).IsEmpty() {
			return true
		}
	}
	return false
}

func (m *BoatMap) Place(boat Boat, o Orientation, origin Coord) error {
	if !Fits(boat, o, origin) {
		return errOutOfBounds
	}
	if m.Overlaps(boat, o, origin) {
		return errOverlap
	}

	dx, dy := o.Step()
	for i := range boat.Length() {
		m.Set(origin.Offset(dx*i, dy*i), boat)
	}
	return nil
}

// Cells returns the cells occupied by boat in scan order.
func (m *BoatMap) Cells(boat Boat) []Coord {
	var cells []Coord
	for i, b := range m.cells {
		if b == boat {
			cells = append(cells, coordAt(i))
		}
	}
	return cells
}

// Validate checks that every ship kind occupies exactly its length in one
// straight line.
func (m *BoatMap) Validate() error {
	for _, boat := range Boats {
		cells := m.Cells(boat)
		if len(cells) != boat.Length() {
			return &FleetError{Boat: boat, Cells: len(cells)}
		}

		first, last := cells[0], cells[len(cells)-1]
		span := (last.X - first.X) + (last.Y - first.Y)
		if (first.X != last.X && first.Y != last.Y) || span != boat.Length()-1 {
			return &FleetError{Boat: boat, Cells: len(cells)}
		}
	}
	return nil
}

// Encoded as ten columns of kind numbers, 0 for water.
func (m BoatMap) MarshalJSON() ([]byte, error) {
	var columns [Width][Height]uint8
	for i, b := range m.cells {
		c := coordAt(i)
		columns[c.X][c.Y] = uint8(b)
	}
	return json.Marshal(columns)
}

func (m *BoatMap) UnmarshalJSON(data []byte) error {
	var columns [Width][Height]uint8
	if err := json.Unmarshal(data, &columns); err != nil {
		return err
	}

	for x, column := range columns {
		for y, b := range column {
			if b > uint8(Carrier) {
				return fmt.Errorf("invalid boat %d at (%d, %d)", b, x, y)
			}
			m.cells[Coord{x, y}.index()] = Boat(b)
		}
	}
	return nil
}
