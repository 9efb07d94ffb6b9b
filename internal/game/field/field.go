package field

import (
	"fmt"
	"iter"
)

const (
	Width  = 10
	Height = 10
	Cells  = Width * Height
)

// Coord is a zero-based board coordinate. X grows to the right, Y grows down.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) InBounds() bool {
	return c.X >= 0 && c.Y >= 0 && c.X < Width && c.Y < Height
}

func (c Coord) Offset(dx, dy int) Coord {
	return Coord{c.X + dx, c.Y + dy}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Boards are stored column-major, so walking the flat array visits
// cells x outer, y inner.
func (c Coord) index() int {
	return c.X*Height + c.Y
}

func coordAt(idx int) Coord {
	return Coord{idx / Height, idx % Height}
}

// Coords yields every board cell in scan order (x outer, y inner).
func Coords() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i := 0; i < Cells; i++ {
			if !yield(coordAt(i)) {
				return
			}
		}
	}
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Step returns the unit offset a ship of this orientation extends along.
func (o Orientation) Step() (dx, dy int) {
	switch o {
	case Horizontal:
		return 1, 0
	case Vertical:
		return 0, 1
	default:
		panic("invalid orientation")
	}
}

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "h"
	case Vertical:
		return "v"
	default:
		panic("invalid orientation")
	}
}

func (o *Orientation) FromString(str string) error {
	switch str {
	case "h":
		*o = Horizontal
	case "v":
		*o = Vertical
	default:
		return fmt.Errorf("invalid orientation %q", str)
	}
	return nil
}
