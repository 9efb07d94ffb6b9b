package judge

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/utils"
)

var (
	ErrBudgetExceeded = errors.New("time budget exceeded")
)

// Tally counts games won by each side.
type Tally struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

func (t *Tally) Add(winner game.Player) {
	switch winner {
	case game.P1:
		t.P1++
	case game.P2:
		t.P2++
	default:
		panic("unknown player")
	}
}

func (t Tally) Games() int {
	return t.P1 + t.P2
}

// WinRate returns the share of games won by p, or 0 if none were played.
func (t Tally) WinRate(p game.Player) float64 {
	if t.Games() == 0 {
		return 0
	}
	if p == game.P1 {
		return float64(t.P1) / float64(t.Games())
	}
	return float64(t.P2) / float64(t.Games())
}

func (t Tally) MarshalJSON() ([]byte, error) {
	type tally Tally
	return json.Marshal(struct {
		tally
		Games int `json:"games"`
	}{tally(t), t.Games()})
}

// Judge plays series of games.
//
// With a non-zero Budget, only time spent inside games counts against it, and
// the series stops with ErrBudgetExceeded once it runs out.
type Judge struct {
	Budget time.Duration
}

// PlayGames plays n games on m. On cancellation or budget exhaustion it
// returns the games finished so far together with the cause.
func (j *Judge) PlayGames(ctx context.Context, m *Match, n int) (Tally, error) {
	var tally Tally

	var budget *utils.ContextBudget
	if j.Budget > 0 {
		ctx, budget = utils.NewBudgetContext(ctx, j.Budget, ErrBudgetExceeded)
		defer budget.Close()
	}

	for range n {
		if ctx.Err() != nil {
			return tally, context.Cause(ctx)
		}

		if budget != nil {
			budget.Resume()
		}
		winner := m.Play()
		if budget != nil {
			budget.Pause()
		}

		tally.Add(winner)
	}

	return tally, nil
}
