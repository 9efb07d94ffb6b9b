package target

import (
	"math/rand/v2"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

// Heatmap counts, for every cell, how many placements of every ship kind
// cover it without touching a cell that was already fired upon.
//
// Hits block placements just like misses do.
type Heatmap struct {
	heat [field.Width][field.Height]int
}

func NewHeatmap(shots *field.ShotMap) *Heatmap {
	h := &Heatmap{}

	for _, boat := range field.Boats {
		length := boat.Length()

		for x := 0; x <= field.Width-length; x++ {
			for y := 0; y < field.Height; y++ {
				h.add(shots, length, field.Horizontal, field.Coord{X: x, Y: y})
			}
		}

		for x := 0; x < field.Width; x++ {
			for y := 0; y <= field.Height-length; y++ {
				h.add(shots, length, field.Vertical, field.Coord{X: x, Y: y})
			}
		}
	}

	return h
}

func (h *Heatmap) add(shots *field.ShotMap, length int, o field.Orientation, origin field.Coord) {
	dx, dy := o.Step()

	for i := range length {
		if !shots.At(origin.Offset(dx*i, dy*i)).IsNone() {
			return
		}
	}

	for i := range length {
		c := origin.Offset(dx*i, dy*i)
		h.heat[c.X][c.Y]++
	}
}

func (h *Heatmap) At(c field.Coord) int {
	if !c.InBounds() {
		return 0
	}
	return h.heat[c.X][c.Y]
}

func (h *Heatmap) Max() int {
	best := 0
	for c := range field.Coords() {
		best = max(best, h.At(c))
	}
	return best
}

// Hottest returns every legal cell carrying the maximum heat, in scan order.
func (h *Heatmap) Hottest(shots *field.ShotMap) []field.Coord {
	best := h.Max()

	var cells []field.Coord
	for c := range field.Coords() {
		if h.At(c) == best && field.IsLegalShot(shots, c) {
			cells = append(cells, c)
		}
	}

	return cells
}

// HeatmapSearch fires at a uniformly chosen hottest cell. When no placement
// fits anywhere, every legal cell ties at zero.
func HeatmapSearch(rng *rand.Rand, shots *field.ShotMap) field.Coord {
	c, ok := pick(rng, NewHeatmap(shots).Hottest(shots))
	if !ok {
		panic("no legal cell left")
	}
	return c
}
