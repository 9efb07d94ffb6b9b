package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrsobakin/battlesim/internal/strategy/place"
	"github.com/mrsobakin/battlesim/internal/strategy/target"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Batch describes a win-rate matrix run: every placer paired with every
// targeter forms a contender, and every contender plays every other one.
type Batch struct {
	Games     int           `yaml:"games"`
	Workers   int           `yaml:"workers"`
	Seed      uint64        `yaml:"seed"`
	Placers   []string      `yaml:"placers"`
	Targeters []string      `yaml:"targeters"`
	Budget    time.Duration `yaml:"budget"`
	Out       string        `yaml:"out"`
}

func DefaultWorkers() int {
	return runtime.NumCPU() * 2
}

func Default() Batch {
	return Batch{
		Games:     1000,
		Workers:   DefaultWorkers(),
		Placers:   []string{place.NameRandom},
		Targeters: target.Names(),
	}
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads a batch file on top of the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (Batch, error) {
	cfg := Default()
	if err := loadYAML(path, &cfg); err != nil {
		return Batch{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (b *Batch) Validate() error {
	switch {
	case b.Games <= 0:
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, b.Games)
	case b.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, b.Workers)
	case b.Budget < 0:
		return fmt.Errorf("%w: negative budget %s", ErrInvalidConfig, b.Budget)
	case len(b.Placers) == 0:
		return fmt.Errorf("%w: no placers", ErrInvalidConfig)
	case len(b.Targeters) == 0:
		return fmt.Errorf("%w: no targeters", ErrInvalidConfig)
	}
	return nil
}

// Apply overrides the batch settings the environment sets.
func (b *Batch) Apply(env Env) {
	if env.Workers > 0 {
		b.Workers = env.Workers
	}
	if env.Budget > 0 {
		b.Budget = env.Budget
	}
}
