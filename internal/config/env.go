package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StageDev  = "dev"
	StageProd = "prod"

	DefaultAddr = ":8080"
)

// Env is the process configuration shared by both commands.
type Env struct {
	Stage   string
	Addr    string
	Workers int
	Budget  time.Duration
}

// LoadEnv reads BATTLESIM_* variables. Outside of prod, values missing from
// the process environment are taken from the dotenv file at path, if it
// exists.
func LoadEnv(path string) (Env, error) {
	stage := os.Getenv("BATTLESIM_STAGE")
	if stage == "" {
		stage = StageDev
	}
	if stage != StageDev && stage != StageProd {
		return Env{}, fmt.Errorf("%w: stage must be either %s or %s, got %q", ErrInvalidConfig, StageDev, StageProd, stage)
	}

	file := map[string]string{}
	if stage != StageProd {
		var err error
		file, err = godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			file = map[string]string{}
		} else if err != nil {
			return Env{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return file[key]
	}

	env := Env{
		Stage: stage,
		Addr:  DefaultAddr,
	}

	if v := lookup("BATTLESIM_ADDR"); v != "" {
		env.Addr = v
	}

	if v := lookup("BATTLESIM_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Env{}, fmt.Errorf("%w: BATTLESIM_WORKERS=%q", ErrInvalidConfig, v)
		}
		env.Workers = n
	}

	if v := lookup("BATTLESIM_BUDGET"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Env{}, fmt.Errorf("%w: BATTLESIM_BUDGET=%q", ErrInvalidConfig, v)
		}
		env.Budget = d
	}

	return env, nil
}
