package engine

import (
	"context"
	"testing"
	"time"

	. "github.com/ScallyBag/fire/pkg/common"

	"github.com/ScallyBag/fire/pkg/eval"
)

func newTestEngine() *Engine {
	var e = NewEngine(func() IEvaluator {
		return eval.NewEvaluationService()
	})
	e.Options.Hash = 16
	e.Options.Threads = 1
	return e
}

func searchFEN(t *testing.T, e *Engine, fen string, depth int) SearchInfo {
	t.Helper()
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(fen, err)
	}
	return e.Search(context.Background(), SearchParams{
		Positions: []Position{p},
		Limits:    LimitsType{Depth: depth},
	})
}

func TestSearchMate(t *testing.T) {
	var tests = []struct {
		fen      string
		mate     int
		bestMove string
	}{
		{"6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1", 1, "d1d8"},
		{"3k4/6R1/3K4/8/8/8/8/8 w - - 0 1", 1, "g7g8"},
		{"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", 1, "a1a8"},
	}
	for _, test := range tests {
		var e = newTestEngine()
		var si = searchFEN(t, e, test.fen, 5)
		if si.Score.Mate != test.mate {
			t.Error(test.fen, si.Score)
		}
		if len(si.MainLine) == 0 ||
			si.MainLine[0].String() != test.bestMove {
			t.Error(test.fen, si.MainLine)
		}
	}
}

func TestSearchStalemate(t *testing.T) {
	var e = newTestEngine()
	var si = searchFEN(t, e, "k7/8/1Q6/8/8/8/8/K7 b - - 0 1", 3)
	if len(si.MainLine) != 0 {
		t.Error("stalemate has no moves", si.MainLine)
	}
	if si.Score.Mate != 0 || si.Score.Centipawns != 0 {
		t.Error("stalemate score", si.Score)
	}
}

func TestSearchSanity(t *testing.T) {
	var e = newTestEngine()
	var si = searchFEN(t, e, InitialPositionFen, 6)
	if si.Nodes <= 0 {
		t.Error("no nodes searched")
	}
	if si.Depth < 6 {
		t.Error("depth limit not reached", si.Depth)
	}
	if si.Score.Mate != 0 ||
		si.Score.Centipawns < -150 || si.Score.Centipawns > 150 {
		t.Error("initial position score", si.Score)
	}
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	for _, mv := range si.MainLine {
		if !p.MakeMove(mv) {
			t.Fatal("illegal pv move", mv.String())
		}
	}
}

func TestSearchPawnEndgame(t *testing.T) {
	var e = newTestEngine()
	var si = searchFEN(t, e, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", 12)
	if si.Score.Centipawns < 0 || si.Score.Mate < 0 {
		t.Error("extra pawn scored as worse", si.Score)
	}
}

func TestSearchNodesLimit(t *testing.T) {
	var e = newTestEngine()
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var si = e.Search(context.Background(), SearchParams{
		Positions: []Position{p},
		Limits:    LimitsType{Nodes: 50000},
	})
	if si.Nodes > 500000 {
		t.Error("nodes limit overshoot", si.Nodes)
	}
}

func TestSearchCancel(t *testing.T) {
	var e = newTestEngine()
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var ctx, cancel = context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	var start = time.Now()
	e.Search(ctx, SearchParams{
		Positions: []Position{p},
		Limits:    LimitsType{Infinite: true},
	})
	if time.Since(start) > 5*time.Second {
		t.Error("cancel did not stop infinite search")
	}
}

func TestTransTable(t *testing.T) {
	var tt = newTransTable(1)
	var key uint64 = 0x9D39247E33776D41
	var move = MoveEmpty

	var _, _, _, _, _, found = tt.Read(key)
	if found {
		t.Error("empty table hit")
	}

	tt.Update(key, 10, 35, 20, boundExact, move)
	var depth, score, staticEval, bound, _, ok = tt.Read(key)
	if !ok || depth != 10 || score != 35 || staticEval != 20 || bound != boundExact {
		t.Error(depth, score, staticEval, bound, ok)
	}

	// shallower entries do not displace deeper ones of the same generation
	tt.Update(key, 2, -5, 20, boundUpper, move)
	depth, score, staticEval, bound, _, ok = tt.Read(key)
	if !ok || depth != 10 {
		t.Error("deep entry lost after shallow update", depth, ok)
	}

	tt.Migrate(2)
	if tt.Size() != 2 {
		t.Error("size after migrate", tt.Size())
	}
	_, _, _, _, _, ok = tt.Read(key)
	if !ok {
		t.Error("entry lost after migrate")
	}

	tt.Clear()
	_, _, _, _, _, ok = tt.Read(key)
	if ok {
		t.Error("entry survived clear")
	}
}

func TestCalcLimits(t *testing.T) {
	var tests = []struct {
		main     time.Duration
		inc      time.Duration
		moves    int
		overhead time.Duration
	}{
		{time.Minute, 0, 0, 30 * time.Millisecond},
		{time.Minute, time.Second, 0, 30 * time.Millisecond},
		{5 * time.Minute, 0, 40, 300 * time.Millisecond},
		{100 * time.Millisecond, 0, 0, 300 * time.Millisecond},
		{time.Hour, 10 * time.Second, 2, 0},
	}
	for _, test := range tests {
		var soft, hard = calcLimits(test.main, test.inc, test.moves, test.overhead)
		if soft <= 0 || hard <= 0 {
			t.Error(test, soft, hard)
		}
		if soft > hard {
			t.Error(test, "soft above hard", soft, hard)
		}
		var budget = test.main - test.overhead
		if budget < time.Millisecond {
			budget = time.Millisecond
		}
		if hard > budget {
			t.Error(test, "hard above remaining time", hard, budget)
		}
	}
}
