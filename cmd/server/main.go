package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/battlesim/internal/config"
)

func NewServer(env config.Env) *server {
	workers := env.Workers
	if workers == 0 {
		workers = config.DefaultWorkers()
	}

	budget := env.Budget
	if budget == 0 {
		budget = DefaultBudget
	}

	return &server{
		jobs:    semaphore.NewWeighted(int64(workers)),
		workers: workers,
		budget:  budget,
	}
}

func newRouter(s *server) *gin.Engine {
	router := gin.Default()
	s.RegisterEndpoints(router)
	return router
}

func main() {
	env, err := config.LoadEnv(".env")
	if err != nil {
		log.Fatal("bad environment", "err", err)
	}

	if env.Stage == config.StageProd {
		gin.SetMode(gin.ReleaseMode)
	}

	s := NewServer(env)
	router := newRouter(s)

	addr := env.Addr
	if len(os.Args) >= 2 {
		addr = os.Args[1]
	}

	log.Info("listening", "addr", addr, "stage", env.Stage, "workers", s.workers, "budget", s.budget)
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}
