package target

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
)

// Hunter is a targeter that finishes wounded ships with Destroy and otherwise
// asks Search for a new cell. A nil Destroy disables destroy mode.
type Hunter struct {
	rng     *rand.Rand
	Destroy Resolver
	Search  Searcher
}

func NewHunter(rng *rand.Rand, destroy Resolver, search Searcher) *Hunter {
	return &Hunter{
		rng:     rng,
		Destroy: destroy,
		Search:  search,
	}
}

func (h *Hunter) Target(shots *field.ShotMap) field.Coord {
	if h.Destroy != nil {
		if c, ok := h.Destroy(h.rng, shots); ok {
			return c
		}
	}
	return h.Search.Find(shots)
}

func (h *Hunter) Reset() {
	if r, ok := h.Search.(game.Resetter); ok {
		r.Reset()
	}
}

const (
	Random                 = "random"
	RandomAndRandomDestroy = "random_and_random_destroy"
	RandomAndDestroy       = "random_and_destroy"
	GridAndDestroy         = "grid_and_destroy"
	HeatmapAndDestroy      = "heatmap_and_destroy"
)

var registry = map[string]game.TargeterFactoryFunc{
	Random: func(rng *rand.Rand) game.Targeter {
		return NewHunter(rng, nil, &randomSearcher{rng})
	},
	RandomAndRandomDestroy: func(rng *rand.Rand) game.Targeter {
		return NewHunter(rng, RandomDestroy, &randomSearcher{rng})
	},
	RandomAndDestroy: func(rng *rand.Rand) game.Targeter {
		return NewHunter(rng, Destroy, &randomSearcher{rng})
	},
	GridAndDestroy: func(rng *rand.Rand) game.Targeter {
		return NewHunter(rng, Destroy, NewGridSearch(rng))
	},
	HeatmapAndDestroy: func(rng *rand.Rand) game.Targeter {
		return NewHunter(rng, Destroy, &heatmapSearcher{rng})
	},
}

// Names returns the registered targeting strategies, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func Lookup(name string) (game.TargeterFactory, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: targeter %q", game.ErrUnknownStrategy, name)
	}
	return factory, nil
}
