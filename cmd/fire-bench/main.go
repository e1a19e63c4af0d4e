package main

import (
	"flag"
	"log"
	"time"

	"github.com/ScallyBag/fire/internal/testsuite"
	"github.com/ScallyBag/fire/pkg/engine"
	"github.com/ScallyBag/fire/pkg/eval"
)

func main() {
	var (
		epdPath  string
		mode     string
		depth    int
		moveTime int
		hash     int
		threads  int
	)
	flag.StringVar(&epdPath, "epd", "", "EPD file, built-in suite if empty")
	flag.StringVar(&mode, "mode", "bench", "bench or tactic")
	flag.IntVar(&depth, "depth", 12, "bench search depth")
	flag.IntVar(&moveTime, "movetime", 3, "tactic time per position in seconds")
	flag.IntVar(&hash, "hash", 128, "transposition table size in MB")
	flag.IntVar(&threads, "threads", 1, "number of search threads")
	flag.Parse()

	if err := run(epdPath, mode, depth, moveTime, hash, threads); err != nil {
		log.Fatal(err)
	}
}

func run(epdPath, mode string, depth, moveTime, hash, threads int) error {
	var tests []testsuite.EpdItem
	var err error
	if epdPath == "" {
		tests, err = testsuite.LoadBenchPositions()
	} else {
		tests, err = testsuite.LoadEpd(epdPath)
	}
	if err != nil {
		return err
	}

	var eng = engine.NewEngine(func() engine.IEvaluator {
		return eval.NewEvaluationService()
	})
	eng.Options.Hash = hash
	eng.Options.Threads = threads
	eng.Options.ProgressMinNodes = 0
	eng.Prepare()

	switch mode {
	case "tactic":
		return testsuite.SolveTactic(tests, eng, time.Duration(moveTime)*time.Second)
	default:
		testsuite.Benchmark(tests, eng, depth)
		return nil
	}
}
