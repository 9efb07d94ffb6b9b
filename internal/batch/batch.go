package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/battlesim/internal/config"
	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/judge"
	"github.com/mrsobakin/battlesim/internal/strategy/place"
	"github.com/mrsobakin/battlesim/internal/strategy/target"
)

type resolved struct {
	placer   game.Placer
	targeter game.TargeterFactory
}

func resolve(contenders []Contender) ([]resolved, error) {
	out := make([]resolved, len(contenders))
	placers := map[string]game.Placer{}

	for i, c := range contenders {
		placer, ok := placers[c.Placer]
		if !ok {
			var err error
			if placer, err = place.Lookup(c.Placer); err != nil {
				return nil, err
			}
			if err = judge.CheckPlacer(placer); err != nil {
				return nil, fmt.Errorf("placer %q: %w", c.Placer, err)
			}
			placers[c.Placer] = placer
		}

		targeter, err := target.Lookup(c.Targeter)
		if err != nil {
			return nil, err
		}

		out[i] = resolved{placer, targeter}
	}

	return out, nil
}

// Seed returns seed, or a time based one if seed is zero.
func Seed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}

// Run plays cfg.Games games for every ordered pair of contenders.
//
// Every pair runs on its own Match with a generator derived from the seed and
// the pair index, so results do not depend on scheduling. A pair that runs out
// of budget keeps the games it finished. Any other failure cancels the run and
// the partially filled matrix is returned together with the error.
//
// logger may be nil.
func Run(ctx context.Context, cfg config.Batch, logger *log.Logger) (*Matrix, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	contenders := Contenders(cfg.Placers, cfg.Targeters)
	strategies, err := resolve(contenders)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	seed := Seed(cfg.Seed)
	logger.Info("starting batch", "contenders", len(contenders), "games", cfg.Games, "workers", cfg.Workers, "seed", seed)

	matrix := NewMatrix(contenders)
	var mu sync.Mutex

	jobs := semaphore.NewWeighted(int64(cfg.Workers))
	g, gctx := errgroup.WithContext(ctx)

	n := len(contenders)
	for pair := range n * n {
		row, col := pair/n, pair%n

		if err := jobs.Acquire(gctx, 1); err != nil {
			break
		}

		g.Go(func() error {
			defer jobs.Release(1)

			rng := rand.New(rand.NewPCG(seed, uint64(pair)))
			m := judge.NewMatch(
				rng,
				strategies[row].placer,
				strategies[col].placer,
				strategies[row].targeter,
				strategies[col].targeter,
			)

			j := judge.Judge{Budget: cfg.Budget}

			start := time.Now()
			tally, err := j.PlayGames(gctx, m, cfg.Games)

			mu.Lock()
			matrix.Set(row, col, tally)
			mu.Unlock()

			kv := []any{
				"p1", contenders[row],
				"p2", contenders[col],
				"games", tally.Games(),
				"p1_wins", tally.P1,
				"p2_wins", tally.P2,
				"elapsed", time.Since(start),
			}

			switch {
			case errors.Is(err, judge.ErrBudgetExceeded):
				logger.Warn("pair ran out of budget", kv...)
				return nil
			case err != nil:
				return fmt.Errorf("%s vs %s: %w", contenders[row], contenders[col], err)
			}

			logger.Debug("pair finished", kv...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return matrix, err
	}
	return matrix, context.Cause(ctx)
}
