package judge

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
)

var (
	ErrInvalidRecording = errors.New("invalid recording")
)

// PerPlayer holds one value for each side.
type PerPlayer[T any] struct {
	P1 T `json:"p1"`
	P2 T `json:"p2"`
}

func (pp *PerPlayer[T]) Get(p game.Player) *T {
	if p == game.P1 {
		return &pp.P1
	} else {
		return &pp.P2
	}
}

// Recording is a finished game: both fleets, every shot board a player had
// after each of their turns, and the winner.
type Recording struct {
	ID     string                     `json:"id"`
	Winner game.Player                `json:"winner"`
	Boats  PerPlayer[field.BoatMap]   `json:"boats"`
	Turns  PerPlayer[[]field.ShotMap] `json:"turns"`
}

func newRecording(p1, p2 *field.BoatMap) *Recording {
	return &Recording{
		ID: uuid.NewString(),
		Boats: PerPlayer[field.BoatMap]{
			P1: *p1,
			P2: *p2,
		},
	}
}

func (r *Recording) addTurn(p game.Player, shots *field.ShotMap) {
	turns := r.Turns.Get(p)
	*turns = append(*turns, *shots)
}

// Final returns the last shot board of p, or an empty one if p never fired.
func (r *Recording) Final(p game.Player) field.ShotMap {
	turns := *r.Turns.Get(p)
	if len(turns) == 0 {
		return field.ShotMap{}
	}
	return turns[len(turns)-1]
}

// Validate checks that the recorded game ended the way a game must: the winner
// hit the whole fleet, the loser did not, and turns alternated with P1 first.
func (r *Recording) Validate() error {
	winner := r.Final(r.Winner)
	loser := r.Final(r.Winner.Other())

	if winner.HitCount() != field.TotalLength {
		return fmt.Errorf("%w: winner %s has %d hits", ErrInvalidRecording, r.Winner, winner.HitCount())
	}
	if loser.HitCount() >= field.TotalLength {
		return fmt.Errorf("%w: loser %s has %d hits", ErrInvalidRecording, r.Winner.Other(), loser.HitCount())
	}

	p1, p2 := len(r.Turns.P1), len(r.Turns.P2)
	if p1 != p2 && p1 != p2+1 {
		return fmt.Errorf("%w: turns do not alternate (%d vs %d)", ErrInvalidRecording, p1, p2)
	}

	for _, p := range game.Players {
		for i, shots := range *r.Turns.Get(p) {
			if shots.Shots() != i+1 {
				return fmt.Errorf("%w: %s turn %d holds %d shots", ErrInvalidRecording, p, i, shots.Shots())
			}
		}
	}

	return nil
}
