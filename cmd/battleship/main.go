package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mrsobakin/battlesim/internal/config"
)

type command func(args []string, env config.Env, stdout io.Writer) error

var commands = map[string]command{
	"play":       cmdPlay,
	"record":     cmdRecord,
	"batch":      cmdBatch,
	"strategies": cmdStrategies,
}

func usage() {
	fmt.Fprintln(os.Stderr, `battleship: strategy simulator

Commands:
  play       -p1-place random -p1-target heatmap_and_destroy -p2-place ... -p2-target ... -n 1000 -seed S
  record     (same strategy flags) -out game.json
  batch      -config batch.yaml [-out matrix.csv] [-json] [-v]
  strategies`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		usage()
		os.Exit(2)
	}

	env, err := config.LoadEnv(".env")
	if err != nil {
		log.Fatal("bad environment", "err", err)
	}

	if err := cmd(os.Args[2:], env, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(os.Args[1]+" failed", "err", err)
	}
}
