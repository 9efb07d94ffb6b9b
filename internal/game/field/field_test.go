package field_test

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

//go:embed testdata/fleet.txt
var txtFleet []byte

//go:embed testdata/broken.txt
var txtBrokenFleet []byte

func oneBoat(t *testing.T, boat field.Boat, o field.Orientation, origin field.Coord) field.BoatMap {
	var boats field.BoatMap
	require.NoError(t, boats.Place(boat, o, origin))
	return boats
}

func TestBoat(t *testing.T) {
	t.Run("Lengths", func(t *testing.T) {
		var lengths []int
		for _, boat := range field.Boats {
			lengths = append(lengths, boat.Length())
		}
		assert.Equal(t, []int{2, 3, 3, 4, 5}, lengths)
		assert.Equal(t, 17, field.TotalLength)
	})

	t.Run("FromString", func(t *testing.T) {
		var boat field.Boat

		require.NoError(t, boat.FromString("cruiser"))
		assert.Equal(t, field.Cruiser, boat)

		require.NoError(t, boat.FromString("5"))
		assert.Equal(t, field.Carrier, boat)

		assert.Error(t, boat.FromString("0"))
		assert.Error(t, boat.FromString("empty"))
		assert.Error(t, boat.FromString("frigate"))
	})
}

func TestIsLegalShot(t *testing.T) {
	var shots field.ShotMap

	for c := range field.Coords() {
		assert.True(t, field.IsLegalShot(&shots, c), "unfired cell %s should be legal", c)
	}

	assert.False(t, field.IsLegalShot(&shots, field.Coord{X: 10, Y: 0}))
	assert.False(t, field.IsLegalShot(&shots, field.Coord{X: 0, Y: 10}))
	assert.False(t, field.IsLegalShot(&shots, field.Coord{X: 10, Y: 10}))
	assert.False(t, field.IsLegalShotSigned(&shots, -1, 0))
	assert.False(t, field.IsLegalShotSigned(&shots, 0, -1))
	assert.True(t, field.IsLegalShotSigned(&shots, 9, 9))

	rng := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		c := field.Coord{X: rng.IntN(field.Width), Y: rng.IntN(field.Height)}

		if rng.IntN(2) == 0 {
			shots.Record(c, field.Miss)
		} else {
			shots.Record(c, field.Hit(field.Destroyer))
		}

		assert.False(t, field.IsLegalShot(&shots, c))
		assert.False(t, field.IsLegalShotSigned(&shots, c.X, c.Y))
	}
}

func TestShotMap(t *testing.T) {
	t.Run("Record_WriteOnce", func(t *testing.T) {
		var shots field.ShotMap
		c := field.Coord{X: 3, Y: 4}

		assert.True(t, shots.Record(c, field.Hit(field.Cruiser)))
		assert.False(t, shots.Record(c, field.Miss), "recorded cell must not change")
		assert.Equal(t, field.Hit(field.Cruiser), shots.At(c))

		assert.False(t, shots.Record(field.Coord{X: -1, Y: 0}, field.Miss))
		assert.False(t, shots.Record(field.Coord{X: 1, Y: 1}, field.NoShot))

		assert.Equal(t, 1, shots.Shots())
		assert.Equal(t, 1, shots.HitCount())
	})

	t.Run("Hits_ScanOrder", func(t *testing.T) {
		var shots field.ShotMap
		shots.Record(field.Coord{X: 2, Y: 0}, field.Hit(field.Carrier))
		shots.Record(field.Coord{X: 1, Y: 2}, field.Hit(field.Cruiser))
		shots.Record(field.Coord{X: 1, Y: 1}, field.Hit(field.Cruiser))
		shots.Record(field.Coord{X: 0, Y: 9}, field.Miss)

		assert.Equal(t, []field.HitCell{
			{Boat: field.Cruiser, Coord: field.Coord{X: 1, Y: 1}},
			{Boat: field.Cruiser, Coord: field.Coord{X: 1, Y: 2}},
			{Boat: field.Carrier, Coord: field.Coord{X: 2, Y: 0}},
		}, shots.Hits())

		counts := shots.HitCounts()
		assert.Equal(t, 2, counts[field.Cruiser])
		assert.Equal(t, 1, counts[field.Carrier])
		assert.Equal(t, 0, counts[field.Destroyer])
	})

	t.Run("JSON", func(t *testing.T) {
		var shots field.ShotMap
		shots.Record(field.Coord{X: 0, Y: 1}, field.Miss)
		shots.Record(field.Coord{X: 9, Y: 8}, field.Hit(field.Battleship))

		data, err := json.Marshal(shots)
		require.NoError(t, err)

		var columns [][]any
		require.NoError(t, json.Unmarshal(data, &columns))
		assert.Nil(t, columns[0][0])
		assert.Equal(t, "M", columns[0][1])
		assert.Equal(t, float64(4), columns[9][8])

		var decoded field.ShotMap
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, shots, decoded)
	})
}

func TestBoatMap(t *testing.T) {
	t.Run("Overlaps_Horizontal", func(t *testing.T) {
		boats := oneBoat(t, field.Destroyer, field.Vertical, field.Coord{X: 1, Y: 0})

		assert.True(t, boats.Overlaps(field.Destroyer, field.Horizontal, field.Coord{X: 0, Y: 0}))
		assert.False(t, boats.Overlaps(field.Destroyer, field.Vertical, field.Coord{X: 0, Y: 0}))
		assert.True(t, boats.Overlaps(field.Destroyer, field.Horizontal, field.Coord{X: 0, Y: 1}))
		assert.False(t, boats.Overlaps(field.Destroyer, field.Horizontal, field.Coord{X: 0, Y: 2}))

		boats = oneBoat(t, field.Destroyer, field.Vertical, field.Coord{X: 2, Y: 0})

		assert.False(t, boats.Overlaps(field.Destroyer, field.Horizontal, field.Coord{X: 0, Y: 0}))
		for _, boat := range field.Boats[1:] {
			assert.True(t, boats.Overlaps(boat, field.Horizontal, field.Coord{X: 0, Y: 0}), "%s", boat)
			assert.False(t, boats.Overlaps(boat, field.Vertical, field.Coord{X: 0, Y: 0}), "%s", boat)
		}
	})

	t.Run("Overlaps_Vertical", func(t *testing.T) {
		boats := oneBoat(t, field.Destroyer, field.Horizontal, field.Coord{X: 0, Y: 1})

		assert.True(t, boats.Overlaps(field.Destroyer, field.Vertical, field.Coord{X: 0, Y: 0}))
		assert.False(t, boats.Overlaps(field.Destroyer, field.Horizontal, field.Coord{X: 0, Y: 0}))
		assert.True(t, boats.Overlaps(field.Destroyer, field.Vertical, field.Coord{X: 1, Y: 0}))
		assert.False(t, boats.Overlaps(field.Destroyer, field.Vertical, field.Coord{X: 2, Y: 0}))

		boats = oneBoat(t, field.Destroyer, field.Horizontal, field.Coord{X: 0, Y: 2})

		assert.False(t, boats.Overlaps(field.Destroyer, field.Vertical, field.Coord{X: 0, Y: 0}))
		for _, boat := range field.Boats[1:] {
			assert.True(t, boats.Overlaps(boat, field.Vertical, field.Coord{X: 0, Y: 0}), "%s", boat)
			assert.False(t, boats.Overlaps(boat, field.Horizontal, field.Coord{X: 0, Y: 0}), "%s", boat)
		}
	})

	// . . . . . . . . . .
	// . . . . . . . A A A x
	t.Run("Place_OutOfBounds", func(t *testing.T) {
		var boats field.BoatMap

		assert.Error(t, boats.Place(field.Battleship, field.Horizontal, field.Coord{X: 7, Y: 1}))
		assert.Error(t, boats.Place(field.Destroyer, field.Vertical, field.Coord{X: 0, Y: 9}))
		assert.Error(t, boats.Place(field.Destroyer, field.Vertical, field.Coord{X: -1, Y: 0}))
		assert.NoError(t, boats.Place(field.Carrier, field.Horizontal, field.Coord{X: 5, Y: 9}))
	})

	t.Run("Place_Intersecting", func(t *testing.T) {
		boats := oneBoat(t, field.Battleship, field.Horizontal, field.Coord{X: 0, Y: 1})

		err := boats.Place(field.Cruiser, field.Vertical, field.Coord{X: 2, Y: 0})
		assert.Error(t, err)
		assert.Equal(t, field.Empty, boats.At(field.Coord{X: 2, Y: 0}), "failed placement must not touch the board")
	})

	t.Run("Validate_MissingShip", func(t *testing.T) {
		boats := oneBoat(t, field.Destroyer, field.Horizontal, field.Coord{X: 0, Y: 0})

		err := boats.Validate()
		require.ErrorIs(t, err, field.ErrInvalidFleet)

		var fleetErr *field.FleetError
		require.ErrorAs(t, err, &fleetErr)
		assert.Equal(t, field.Submarine, fleetErr.Boat)
		assert.Equal(t, 0, fleetErr.Cells)
	})

	t.Run("Validate_ScatteredShip", func(t *testing.T) {
		boats, err := field.LoadLayout(field.ParseShips(bytes.NewReader(txtFleet)))
		require.NoError(t, err)

		boats.Set(field.Coord{X: 3, Y: 5}, field.Empty)
		boats.Set(field.Coord{X: 6, Y: 5}, field.Cruiser)
		assert.NoError(t, boats.Validate(), "shifted cruiser is still a line")

		boats.Set(field.Coord{X: 1, Y: 0}, field.Empty)
		boats.Set(field.Coord{X: 2, Y: 2}, field.Destroyer)
		err = boats.Validate()
		require.ErrorIs(t, err, field.ErrInvalidFleet)

		var fleetErr *field.FleetError
		require.ErrorAs(t, err, &fleetErr)
		assert.Equal(t, field.Destroyer, fleetErr.Boat)
		assert.Equal(t, 2, fleetErr.Cells)
	})

	t.Run("JSON", func(t *testing.T) {
		boats, err := field.LoadLayout(field.ParseShips(bytes.NewReader(txtFleet)))
		require.NoError(t, err)

		data, err := json.Marshal(boats)
		require.NoError(t, err)

		var decoded field.BoatMap
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, boats, decoded)
	})
}

func TestLayout(t *testing.T) {
	t.Run("Parse", func(t *testing.T) {
		ships := slices.Collect(field.ParseShips(bytes.NewReader(txtFleet)))

		require.Len(t, ships, 5)
		assert.Equal(t, field.Ship{Boat: field.Battleship, Orientation: field.Vertical, Origin: field.Coord{X: 0, Y: 6}}, ships[3])
	})

	t.Run("Load", func(t *testing.T) {
		boats, err := field.LoadLayout(field.ParseShips(bytes.NewReader(txtFleet)))
		require.NoError(t, err)

		assert.Equal(t, field.Carrier, boats.At(field.Coord{X: 8, Y: 9}))
		assert.Equal(t, field.Submarine, boats.At(field.Coord{X: 9, Y: 2}))
		assert.Equal(t, field.Empty, boats.At(field.Coord{X: 9, Y: 3}))
		assert.Equal(t, field.Empty, boats.At(field.Coord{X: 10, Y: 3}))
	})

	t.Run("Load_StopsAtMalformedLine", func(t *testing.T) {
		ships := slices.Collect(field.ParseShips(bytes.NewReader(txtBrokenFleet)))
		assert.Len(t, ships, 2)

		_, err := field.LoadLayout(slices.Values(ships))
		assert.ErrorIs(t, err, field.ErrInvalidFleet)
	})

	t.Run("Load_Duplicate", func(t *testing.T) {
		_, err := field.LoadLayout(slices.Values([]field.Ship{
			{Boat: field.Destroyer, Orientation: field.Horizontal, Origin: field.Coord{X: 0, Y: 0}},
			{Boat: field.Destroyer, Orientation: field.Horizontal, Origin: field.Coord{X: 0, Y: 5}},
		}))
		assert.Error(t, err)
	})
}

func TestFleet(t *testing.T) {
	boats, err := field.LoadLayout(field.ParseShips(bytes.NewReader(txtFleet)))
	require.NoError(t, err)

	t.Run("Shoot_Empty", func(t *testing.T) {
		f := field.NewFleet(&boats)

		assert.Equal(t, field.Miss, f.Shoot(field.Coord{X: 5, Y: 0}))
		assert.Equal(t, field.Miss, f.Shoot(field.Coord{X: 10, Y: 10}))
		assert.False(t, f.AllDead())
	})

	t.Run("Shoot_SinkShip", func(t *testing.T) {
		f := field.NewFleet(&boats)

		assert.Equal(t, field.Hit(field.Destroyer), f.Shoot(field.Coord{X: 0, Y: 0}))
		assert.False(t, f.Sunk(field.Destroyer))
		assert.Equal(t, field.Hit(field.Destroyer), f.Shoot(field.Coord{X: 1, Y: 0}))
		assert.True(t, f.Sunk(field.Destroyer))
		assert.False(t, f.AllDead())
	})

	t.Run("Shoot_Everything", func(t *testing.T) {
		f := field.NewFleet(&boats)

		coords := slices.Collect(field.Coords())
		rand.New(rand.NewPCG(3, 4)).Shuffle(len(coords), func(i, j int) {
			coords[i], coords[j] = coords[j], coords[i]
		})

		var hits int
		for _, c := range coords {
			if f.Shoot(c).IsHit() {
				hits++
			}
		}

		assert.Equal(t, field.TotalLength, hits)
		assert.True(t, f.AllDead())

		f.ResetShots()
		assert.False(t, f.AllDead())
		assert.False(t, f.Sunk(field.Carrier))
	})
}
