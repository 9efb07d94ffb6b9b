package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrsobakin/battlesim/internal/batch"
	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
	"github.com/mrsobakin/battlesim/internal/judge"
	"github.com/mrsobakin/battlesim/internal/strategy/place"
	"github.com/mrsobakin/battlesim/internal/strategy/target"
)

var (
	errTooManyGames = fmt.Errorf("at most %d games per request", MaxGames)
	errLayoutPlacer = errors.New("layout placers are not served over http")
)

func replyError(c *gin.Context, code int, kind string, err error) {
	c.JSON(code, map[string]any{
		"error":   kind,
		"details": err.Error(),
	})
}

func tryBindParams(c *gin.Context, obj any) (ok bool) {
	if err := c.ShouldBindJSON(obj); err != nil {
		replyError(c, 422, ErrBadFormat, err)
		return false
	}
	return true
}

func replyStrategyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownStrategy):
		replyError(c, 400, ErrUnknownStrategy, err)
	case errors.Is(err, field.ErrInvalidFleet):
		replyError(c, 400, ErrBadFleet, err)
	default:
		replyError(c, 500, ErrUnknown, err)
	}
}

func (s *server) tryAcquire(c *gin.Context, n int64) (ok bool) {
	if err := s.jobs.Acquire(c.Request.Context(), n); err != nil {
		replyError(c, 503, ErrBusy, err)
		return false
	}
	return true
}

func allowedPlacer(c *gin.Context, name string) (ok bool) {
	if strings.HasPrefix(name, place.LayoutPrefix) {
		replyError(c, 400, ErrUnknownStrategy, errLayoutPlacer)
		return false
	}
	return true
}

func resolveSide(side sideParams) (game.Placer, game.TargeterFactory, error) {
	placer, err := place.Lookup(side.Place)
	if err != nil {
		return nil, nil, err
	}

	targeter, err := target.Lookup(side.Target)
	if err != nil {
		return nil, nil, err
	}

	return placer, targeter, nil
}

func tryNewMatch(c *gin.Context, params *matchParams) (m *judge.Match, ok bool) {
	if !allowedPlacer(c, params.P1.Place) || !allowedPlacer(c, params.P2.Place) {
		return nil, false
	}

	placeP1, targetP1, err := resolveSide(params.P1)
	if err != nil {
		replyStrategyError(c, err)
		return nil, false
	}

	placeP2, targetP2, err := resolveSide(params.P2)
	if err != nil {
		replyStrategyError(c, err)
		return nil, false
	}

	seed := batch.Seed(params.Seed)
	m = judge.NewMatch(rand.New(rand.NewPCG(seed, seed)), placeP1, placeP2, targetP1, targetP2)

	if err := m.Check(); err != nil {
		replyStrategyError(c, err)
		return nil, false
	}

	return m, true
}
