package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mrsobakin/battlesim/internal/batch"
	"github.com/mrsobakin/battlesim/internal/config"
	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/judge"
	"github.com/mrsobakin/battlesim/internal/strategy/place"
	"github.com/mrsobakin/battlesim/internal/strategy/target"
)

type matchFlags struct {
	p1Place, p1Target string
	p2Place, p2Target string
	seed              uint64
}

func (f *matchFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.p1Place, "p1-place", place.NameRandom, "placement strategy of p1 (or layout:<file>)")
	fs.StringVar(&f.p1Target, "p1-target", target.HeatmapAndDestroy, "targeting strategy of p1")
	fs.StringVar(&f.p2Place, "p2-place", place.NameRandom, "placement strategy of p2 (or layout:<file>)")
	fs.StringVar(&f.p2Target, "p2-target", target.RandomAndDestroy, "targeting strategy of p2")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed, 0 for a time based one")
}

func lookupSide(placeName, targetName string) (game.Placer, game.TargeterFactory, error) {
	placer, err := place.Lookup(placeName)
	if err != nil {
		return nil, nil, err
	}

	targeter, err := target.Lookup(targetName)
	if err != nil {
		return nil, nil, err
	}

	return placer, targeter, nil
}

func (f *matchFlags) newMatch() (*judge.Match, error) {
	placeP1, targetP1, err := lookupSide(f.p1Place, f.p1Target)
	if err != nil {
		return nil, err
	}

	placeP2, targetP2, err := lookupSide(f.p2Place, f.p2Target)
	if err != nil {
		return nil, err
	}

	seed := batch.Seed(f.seed)
	log.Debug("new match", "seed", seed)

	m := judge.NewMatch(rand.New(rand.NewPCG(seed, seed)), placeP1, placeP2, targetP1, targetP2)
	return m, m.Check()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func cmdPlay(args []string, env config.Env, stdout io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	var mf matchFlags
	mf.register(fs)
	games := fs.Int("n", 1000, "number of games")
	budget := fs.Duration("budget", env.Budget, "time budget for all games, 0 for none")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *games <= 0 {
		return fmt.Errorf("%w: -n must be positive", config.ErrInvalidConfig)
	}

	m, err := mf.newMatch()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	j := judge.Judge{Budget: *budget}
	tally, err := j.PlayGames(ctx, m, *games)

	if errors.Is(err, judge.ErrBudgetExceeded) {
		log.Warn("ran out of budget", "played", tally.Games(), "games", *games)
	} else if err != nil {
		return err
	}

	log.Info("done", "games", tally.Games(), "elapsed", time.Since(start))
	_, err = fmt.Fprintf(stdout, "p1: %d; p2: %d\n", tally.P1, tally.P2)
	return err
}

func createOut(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func cmdRecord(args []string, env config.Env, stdout io.Writer) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	var mf matchFlags
	mf.register(fs)
	out := fs.String("out", "-", "output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := mf.newMatch()
	if err != nil {
		return err
	}

	rec := m.PlayAndRecord()
	if err := rec.Validate(); err != nil {
		return err
	}

	w, closeOut, err := createOut(*out, stdout)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		closeOut()
		return err
	}

	log.Info("recorded", "id", rec.ID, "winner", rec.Winner, "out", *out)
	return closeOut()
}

func cmdBatch(args []string, env config.Env, stdout io.Writer) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	configPath := fs.String("config", "", "batch file (yaml)")
	out := fs.String("out", "", "output file, overrides the batch file")
	asJSON := fs.Bool("json", false, "write json instead of csv")
	verbose := fs.Bool("v", false, "log every finished pair")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	cfg.Apply(env)
	if *out != "" {
		cfg.Out = *out
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "batch",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	matrix, err := batch.Run(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("done", "pairs", len(matrix.Contenders)*len(matrix.Contenders), "elapsed", time.Since(start))

	w, closeOut, err := createOut(cfg.Out, stdout)
	if err != nil {
		return err
	}

	if *asJSON {
		err = json.NewEncoder(w).Encode(matrix)
	} else {
		err = matrix.WriteCSV(w)
	}
	if err != nil {
		closeOut()
		return err
	}

	return closeOut()
}

func cmdStrategies(args []string, env config.Env, stdout io.Writer) error {
	fs := flag.NewFlagSet("strategies", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "placers:")
	for _, name := range place.Names() {
		fmt.Fprintln(stdout, "  "+name)
	}
	fmt.Fprintf(stdout, "  %s<file>\n", place.LayoutPrefix)

	fmt.Fprintln(stdout, "targeters:")
	for _, name := range target.Names() {
		fmt.Fprintln(stdout, "  "+name)
	}
	return nil
}
