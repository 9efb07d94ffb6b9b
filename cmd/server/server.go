package main

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/battlesim/internal/batch"
	"github.com/mrsobakin/battlesim/internal/config"
	"github.com/mrsobakin/battlesim/internal/judge"
	"github.com/mrsobakin/battlesim/internal/strategy/place"
	"github.com/mrsobakin/battlesim/internal/strategy/target"
)

const (
	MaxGames      int           = 100_000
	DefaultBudget time.Duration = 30 * time.Second
)

const (
	ErrBadFormat       string = "bad_format"
	ErrUnknownStrategy string = "unknown_strategy"
	ErrBadFleet        string = "bad_fleet"
	ErrTimeout         string = "timeout"
	ErrBusy            string = "busy"
	ErrUnknown         string = "unknown"
)

type server struct {
	jobs    *semaphore.Weighted
	workers int
	budget  time.Duration
}

type sideParams struct {
	Place  string `json:"place" binding:"required"`
	Target string `json:"target" binding:"required"`
}

type matchParams struct {
	P1    sideParams `json:"p1" binding:"required"`
	P2    sideParams `json:"p2" binding:"required"`
	Games int        `json:"games" binding:"gte=0"`
	Seed  uint64     `json:"seed"`
}

func (s *server) handlePlay(c *gin.Context) {
	var params matchParams
	if !tryBindParams(c, &params) {
		return
	}

	games := params.Games
	if games == 0 {
		games = 1
	}
	if games > MaxGames {
		replyError(c, 400, ErrBadFormat, errTooManyGames)
		return
	}

	m, ok := tryNewMatch(c, &params)
	if !ok {
		return
	}

	if !s.tryAcquire(c, 1) {
		return
	}
	defer s.jobs.Release(1)

	j := judge.Judge{Budget: s.budget}
	tally, err := j.PlayGames(c.Request.Context(), m, games)

	switch {
	case err == nil:
		c.JSON(200, tally)
	case errors.Is(err, judge.ErrBudgetExceeded):
		c.JSON(408, map[string]any{
			"error":   ErrTimeout,
			"details": err.Error(),
			"tally":   tally,
		})
	default:
		replyError(c, 500, ErrUnknown, err)
	}
}

func (s *server) handleRecord(c *gin.Context) {
	var params matchParams
	if !tryBindParams(c, &params) {
		return
	}

	m, ok := tryNewMatch(c, &params)
	if !ok {
		return
	}

	if !s.tryAcquire(c, 1) {
		return
	}
	defer s.jobs.Release(1)

	c.JSON(200, m.PlayAndRecord())
}

func (s *server) handleBatch(c *gin.Context) {
	var params struct {
		Placers   []string `json:"placers" binding:"required,min=1"`
		Targeters []string `json:"targeters" binding:"required,min=1"`
		Games     int      `json:"games" binding:"gte=0"`
		Seed      uint64   `json:"seed"`
	}

	if !tryBindParams(c, &params) {
		return
	}

	for _, name := range params.Placers {
		if !allowedPlacer(c, name) {
			return
		}
	}

	cfg := config.Default()
	cfg.Placers = params.Placers
	cfg.Targeters = params.Targeters
	cfg.Seed = params.Seed
	cfg.Budget = s.budget
	cfg.Workers = max(s.workers/2, 1)
	if params.Games > 0 {
		cfg.Games = params.Games
	}

	if cfg.Games > MaxGames {
		replyError(c, 400, ErrBadFormat, errTooManyGames)
		return
	}

	if !s.tryAcquire(c, int64(cfg.Workers)) {
		return
	}
	defer s.jobs.Release(int64(cfg.Workers))

	matrix, err := batch.Run(c.Request.Context(), cfg, nil)
	if err != nil {
		replyStrategyError(c, err)
		return
	}

	c.JSON(200, matrix)
}

func (s *server) handleStrategies(c *gin.Context) {
	c.JSON(200, map[string]any{
		"placers":   place.Names(),
		"targeters": target.Names(),
	})
}

func (s *server) RegisterEndpoints(e *gin.Engine) {
	e.POST("/play", s.handlePlay)
	e.POST("/record", s.handleRecord)
	e.POST("/batch", s.handleBatch)
	e.GET("/strategies", s.handleStrategies)
}
