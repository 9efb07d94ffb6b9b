package place

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mrsobakin/battlesim/internal/game"
)

const (
	NameRandom  = "random"
	NameSides   = "sides"
	NameSpread  = "spread"
	NameCluster = "cluster"

	// Placer names of the form "layout:<path>" load a fixed fleet from a file.
	LayoutPrefix = "layout:"
)

var registry = map[string]game.PlacerFunc{
	NameRandom:  Random,
	NameSides:   Sides,
	NameSpread:  Spread,
	NameCluster: Cluster,
}

// Names returns the registered placement strategies, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func Lookup(name string) (game.Placer, error) {
	if path, ok := strings.CutPrefix(name, LayoutPrefix); ok {
		layout, err := LoadLayoutFile(path)
		if err != nil {
			return nil, err
		}
		return layout, nil
	}

	placer, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: placer %q", game.ErrUnknownStrategy, name)
	}
	return placer, nil
}
