package place

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

// Layout always places the same, pre-validated fleet.
type Layout struct {
	boats field.BoatMap
}

func NewLayout(src io.Reader) (*Layout, error) {
	boats, err := field.LoadLayout(field.ParseShips(src))
	if err != nil {
		return nil, err
	}

	return &Layout{boats}, nil
}

func LoadLayoutFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	layout, err := NewLayout(f)
	if err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return layout, nil
}

func (l *Layout) Place(*rand.Rand) field.BoatMap {
	return l.boats
}
