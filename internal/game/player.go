package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Player identifies one of the two sides of a match. P1 always moves first.
type Player int

const (
	P1 Player = iota
	P2
)

// Players lists both sides in turn order.
var Players = [...]Player{P1, P2}

func (p Player) Other() Player {
	if p == P1 {
		return P2
	} else {
		return P1
	}
}

func (p Player) String() string {
	switch p {
	case P1:
		return "p1"
	case P2:
		return "p2"
	default:
		panic("invalid player")
	}
}

func (p *Player) FromString(str string) error {
	switch str {
	case "p1":
		*p = P1
	case "p2":
		*p = P2
	default:
		return fmt.Errorf("invalid player %q", str)
	}
	return nil
}

func (p Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return p.FromString(str)
}

// Placer arranges a fleet.
//
// Every returned board must hold each ship kind exactly once, as a straight
// line of the kind's length. Anything else is a bug in the placer.
type Placer interface {
	Place(rng *rand.Rand) field.BoatMap
}

type PlacerFunc func(rng *rand.Rand) field.BoatMap

func (f PlacerFunc) Place(rng *rand.Rand) field.BoatMap {
	return f(rng)
}

// Targeter picks the next cell to fire at given the shooter's own history.
//
// The returned cell MUST be legal, i.e. inside the board and not fired upon
// before.
type Targeter interface {
	Target(shots *field.ShotMap) field.Coord
}

// Resetter is implemented by targeters carrying state between turns. Reset is
// called before every game.
type Resetter interface {
	Reset()
}

// TargeterFactory creates one targeter per side of a match, so targeter state
// is never shared between sides or between concurrently running matches.
type TargeterFactory interface {
	NewTargeter(rng *rand.Rand) Targeter
}

type TargeterFactoryFunc func(rng *rand.Rand) Targeter

func (f TargeterFactoryFunc) NewTargeter(rng *rand.Rand) Targeter {
	return f(rng)
}
