package judge_test

import (
	"math/rand/v2"
	"slices"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
)

// scanTargeter fires at cells in scan order, skipping ones already fired at.
type scanTargeter struct{}

func (scanTargeter) Target(shots *field.ShotMap) field.Coord {
	for c := range field.Coords() {
		if field.IsLegalShot(shots, c) {
			return c
		}
	}
	panic("board is full")
}

// stuckTargeter always fires at the same cell.
type stuckTargeter struct {
	c field.Coord
}

func (t stuckTargeter) Target(*field.ShotMap) field.Coord {
	return t.c
}

func factoryOf(t game.Targeter) game.TargeterFactory {
	return game.TargeterFactoryFunc(func(*rand.Rand) game.Targeter {
		return t
	})
}

func fixedFleet() field.BoatMap {
	boats, err := field.LoadLayout(slices.Values([]field.Ship{
		{Boat: field.Destroyer, Orientation: field.Horizontal, Origin: field.Coord{X: 0, Y: 0}},
		{Boat: field.Submarine, Orientation: field.Vertical, Origin: field.Coord{X: 9, Y: 0}},
		{Boat: field.Cruiser, Orientation: field.Horizontal, Origin: field.Coord{X: 3, Y: 5}},
		{Boat: field.Battleship, Orientation: field.Vertical, Origin: field.Coord{X: 0, Y: 6}},
		{Boat: field.Carrier, Orientation: field.Horizontal, Origin: field.Coord{X: 4, Y: 9}},
	}))
	if err != nil {
		panic(err)
	}
	return boats
}

var fixedPlacer = game.PlacerFunc(func(*rand.Rand) field.BoatMap {
	return fixedFleet()
})

var brokenPlacer = game.PlacerFunc(func(*rand.Rand) field.BoatMap {
	boats := fixedFleet()
	boats.Set(field.Coord{X: 5, Y: 5}, field.Empty)
	return boats
})
