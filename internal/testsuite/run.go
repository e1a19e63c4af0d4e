package testsuite

import (
	"context"
	"fmt"
	"time"

	"github.com/ScallyBag/fire/pkg/common"
)

type UciEngine interface {
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

// Benchmark searches every position to a fixed depth and reports the
// total node count and speed.
func Benchmark(tests []EpdItem, eng UciEngine, depth int) {
	var ctx = context.Background()
	var start = time.Now()
	var nodes int64
	for i := range tests {
		var test = &tests[i]
		var searchInfo = eng.Search(ctx, common.SearchParams{
			Positions: []common.Position{test.position},
			Limits:    common.LimitsType{Depth: depth},
		})
		nodes += searchInfo.Nodes
	}
	var elapsed = time.Since(start)
	fmt.Println("Time", elapsed)
	fmt.Println("Nodes", nodes)
	fmt.Println("kNPS", nodes/(elapsed.Milliseconds()+1))
}

// SolveTactic gives the engine a fixed time per position and counts how
// often the found move matches one of the expected best moves.
func SolveTactic(tests []EpdItem, eng UciEngine, moveTime time.Duration) error {
	var ctx = context.Background()
	var solved, total = 0, 0
	var start = time.Now()
	for i := range tests {
		var test = &tests[i]
		var searchInfo = eng.Search(ctx, common.SearchParams{
			Positions: []common.Position{test.position},
			Limits:    common.LimitsType{MoveTime: int(moveTime.Milliseconds())},
		})
		total++
		if len(searchInfo.MainLine) != 0 &&
			isBestMove(test, searchInfo.MainLine[0]) {
			solved++
		} else {
			fmt.Println("fail:", test.content)
		}
		fmt.Printf("Solved: %v, Total: %v\n", solved, total)
	}
	fmt.Println("Time", time.Since(start))
	return nil
}

func isBestMove(test *EpdItem, move common.Move) bool {
	for _, bm := range test.bestMoves {
		if move == bm {
			return true
		}
	}
	return false
}

// BenchPositions is the built-in suite used when no EPD file is given.
var BenchPositions = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"1rr3k1/4ppb1/2q1bnp1/1p2B1Q1/6P1/2p2P2/2P1B2R/2K4R w - - 0 1",
	"2rqkb1r/p1pnpppp/3p3n/3B4/2BPP3/1QP5/PP3PPP/RN2K1NR w KQk - 0 1",
	"6k1/Qp1r1pp1/p1rP3p/P3q3/2Bnb1P1/1P3PNP/4p1K1/R1R5 b - - 0 1",
	"3q4/pp3pkp/5npN/2bpr1B1/4r3/2P2Q2/PP3PPP/R4RK1 w - - 0 1",
	"2r3k1/5p1n/6p1/pp3n2/2BPp2P/4P2P/q1rN1PQb/R1BKR3 b - - 0 1",
	"7r/1p2k3/2bpp3/p3np2/P1PR4/2N2PP1/1P4K1/3B4 b - - 0 1",
	"8/K5p1/1P1k1p1p/5P1P/2R3P1/8/8/8 b - - 0 78",
}

// LoadBenchPositions parses the built-in suite.
func LoadBenchPositions() ([]EpdItem, error) {
	var result []EpdItem
	for _, fen := range BenchPositions {
		var p, err = common.NewPositionFromFEN(fen)
		if err != nil {
			return nil, err
		}
		result = append(result, EpdItem{content: fen, position: p})
	}
	return result, nil
}
