package main

import (
	"flag"
	"log"
	"os"

	"github.com/ScallyBag/fire/internal/perfttool"
	"github.com/ScallyBag/fire/pkg/common"
)

func main() {
	var (
		fen   string
		depth int
	)
	flag.StringVar(&fen, "fen", common.InitialPositionFen, "position to expand")
	flag.IntVar(&depth, "depth", 5, "perft depth")
	flag.Parse()

	var err = perfttool.Divide(os.Stdout, fen, depth)
	if err != nil {
		log.Fatal(err)
	}
}
