package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/ScallyBag/fire/pkg/engine"
	"github.com/ScallyBag/fire/pkg/eval"
	"github.com/ScallyBag/fire/pkg/uci"
)

const (
	name   = "Fire"
	author = "ScallyBag"
)

var (
	versionName = "dev"
	flgHash     int
	flgThreads  int
)

func main() {
	flag.IntVar(&flgHash, "hash", 0, "transposition table size in MB")
	flag.IntVar(&flgThreads, "threads", 0, "number of search threads")
	flag.Parse()

	var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

	logger.Println(name,
		"VersionName", versionName,
		"RuntimeVersion", runtime.Version(),
		"GOARCH", runtime.GOARCH,
		"GOOS", runtime.GOOS,
		"NumCPU", runtime.NumCPU(),
	)

	var eng = engine.NewEngine(func() engine.IEvaluator {
		return eval.NewEvaluationService()
	})
	if flgHash > 0 {
		eng.Options.Hash = flgHash
	}
	if flgThreads > 0 {
		eng.Options.Threads = flgThreads
	}

	var protocol = uci.New(name, author, versionName, eng,
		[]uci.Option{
			&uci.IntOption{Name: "Hash", Min: 16, Max: 1 << 20, Value: &eng.Options.Hash},
			&uci.IntOption{Name: "Threads", Min: 1, Max: 128, Value: &eng.Options.Threads},
			&uci.IntOption{Name: "MultiPV", Min: 1, Max: 64, Value: &eng.Options.MultiPV},
			&uci.IntOption{Name: "Contempt", Min: -100, Max: 100, Value: &eng.Options.Contempt},
			&uci.IntOption{Name: "Move Overhead", Min: 0, Max: 10000, Value: &eng.Options.MoveOverhead},
			&uci.BoolOption{Name: "Ponder", Value: &eng.Options.Ponder},
			&uci.BoolOption{Name: "UCI_Chess960", Value: &eng.Options.Chess960},
			&uci.BoolOption{Name: "ExperimentSettings", Value: &eng.Options.ExperimentSettings},
			&uci.ButtonOption{Name: "Clear Hash", Action: eng.Clear},
		},
	)
	if err := protocol.Run(logger); err != nil {
		logger.Println(err)
	}
}
