package field

import (
	"encoding/json"
	"fmt"
)

// Shot is the recorded outcome of firing at a cell. The zero value means the
// cell has not been fired upon.
type Shot uint8

const (
	NoShot Shot = 0
	Miss   Shot = 0xff
)

func Hit(boat Boat) Shot {
	if boat.IsEmpty() || boat > Carrier {
		panic("hit must name a boat")
	}
	return Shot(boat)
}

func (s Shot) IsNone() bool {
	return s == NoShot
}

func (s Shot) IsMiss() bool {
	return s == Miss
}

func (s Shot) IsHit() bool {
	return s != NoShot && s != Miss
}

// Boat returns the kind that was hit, or Empty for misses and unfired cells.
func (s Shot) Boat() Boat {
	if !s.IsHit() {
		return Empty
	}
	return Boat(s)
}

func (s Shot) String() string {
	switch {
	case s.IsNone():
		return "."
	case s.IsMiss():
		return "M"
	default:
		return fmt.Sprint(uint8(s))
	}
}

func (s Shot) MarshalJSON() ([]byte, error) {
	switch {
	case s.IsNone():
		return []byte("null"), nil
	case s.IsMiss():
		return []byte(`"M"`), nil
	default:
		return json.Marshal(uint8(s))
	}
}

func (s *Shot) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*s = NoShot
		return nil
	case `"M"`:
		*s = Miss
		return nil
	}

	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid shot %s", data)
	}
	if n == 0 || n > uint8(Carrier) {
		return fmt.Errorf("invalid shot %s", data)
	}
	*s = Shot(n)
	return nil
}

// HitCell is a hit together with where it landed.
type HitCell struct {
	Boat Boat
	Coord
}

// ShotMap is one player's firing history. Entries are write-once.
type ShotMap struct {
	cells [Cells]Shot
	shots int
	hits  int
}

// At returns the shot recorded at c. Cells outside the board read as NoShot.
func (m *ShotMap) At(c Coord) Shot {
	if !c.InBounds() {
		return NoShot
	}
	return m.cells[c.index()]
}

// Record stores the outcome of a shot at c. It refuses to overwrite an
// existing entry and reports whether anything was stored.
func (m *ShotMap) Record(c Coord, s Shot) bool {
	if s.IsNone() || !IsLegalShot(m, c) {
		return false
	}

	m.cells[c.index()] = s
	m.shots++
	if s.IsHit() {
		m.hits++
	}
	return true
}

func (m *ShotMap) Clear() {
	*m = ShotMap{}
}

// Shots returns the number of cells fired upon.
func (m *ShotMap) Shots() int {
	return m.shots
}

// HitCount returns the number of hits of any kind.
func (m *ShotMap) HitCount() int {
	return m.hits
}

// Hits returns every hit in scan order (x outer, y inner).
func (m *ShotMap) Hits() []HitCell {
	hits := make([]HitCell, 0, m.hits)
	for i, s := range m.cells {
		if s.IsHit() {
			hits = append(hits, HitCell{Boat: s.Boat(), Coord: coordAt(i)})
		}
	}
	return hits
}

// HitCounts returns the number of hits per kind, indexed by Boat.
func (m *ShotMap) HitCounts() [Carrier + 1]int {
	var counts [Carrier + 1]int
	for _, s := range m.cells {
		if s.IsHit() {
			counts[s.Boat()]++
		}
	}
	return counts
}

// Encoded as ten columns of shots.
func (m ShotMap) MarshalJSON() ([]byte, error) {
	var columns [Width][Height]Shot
	for i, s := range m.cells {
		c := coordAt(i)
		columns[c.X][c.Y] = s
	}
	return json.Marshal(columns)
}

func (m *ShotMap) UnmarshalJSON(data []byte) error {
	var columns [Width][Height]Shot
	if err := json.Unmarshal(data, &columns); err != nil {
		return err
	}

	m.Clear()
	for x, column := range columns {
		for y, s := range column {
			m.Record(Coord{x, y}, s)
		}
	}
	return nil
}

// IsLegalShot reports whether c is on the board and has not been fired upon.
func IsLegalShot(shots *ShotMap, c Coord) bool {
	return c.InBounds() && shots.cells[c.index()].IsNone()
}

// IsLegalShotSigned is IsLegalShot for raw coordinates, so neighbours can be
// probed without a separate bounds check.
func IsLegalShotSigned(shots *ShotMap, x, y int) bool {
	return IsLegalShot(shots, Coord{x, y})
}
