package uci

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ScallyBag/fire/pkg/common"
)

type stubEngine struct {
	searches int
}

func (e *stubEngine) Prepare()   {}
func (e *stubEngine) Clear()     {}
func (e *stubEngine) PonderHit() {}

func (e *stubEngine) Search(ctx context.Context, sp common.SearchParams) common.SearchInfo {
	e.searches++
	var p = sp.Positions[len(sp.Positions)-1]
	var ml = p.GenerateLegalMoves()
	return common.SearchInfo{
		Depth:    1,
		Score:    common.UciScore{Centipawns: 13},
		Nodes:    1,
		MainLine: ml[:1],
	}
}

func testProtocol(engine Engine) *Protocol {
	var hash = 16
	var overhead = 300
	return New("Fire", "test", "dev", engine, []Option{
		&IntOption{Name: "Hash", Min: 16, Max: 1 << 20, Value: &hash},
		&IntOption{Name: "Move Overhead", Min: 0, Max: 10000, Value: &overhead},
	})
}

func TestRunScript(t *testing.T) {
	var engine = &stubEngine{}
	var uci = testProtocol(engine)
	var output bytes.Buffer
	uci.reader = strings.NewReader(
		"uci\nisready\nposition startpos moves e2e4\ngo depth 1\nquit\n")
	uci.output = &output
	if err := uci.Run(nil); err != nil {
		t.Fatal(err)
	}
	var text = output.String()
	for _, want := range []string{
		"id name Fire dev",
		"id author test",
		"option name Hash type spin default 16 min 16 max 1048576",
		"uciok",
		"readyok",
		"info depth 1 score cp 13",
		"bestmove ",
	} {
		if !strings.Contains(text, want) {
			t.Error("missing", want, "in", text)
		}
	}
	if engine.searches != 1 {
		t.Error("searches", engine.searches)
	}
}

func TestPositionCommand(t *testing.T) {
	var uci = testProtocol(&stubEngine{})

	if err := uci.handle("position startpos moves e2e4 e7e5"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uci.position.String(),
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq") {
		t.Error(uci.position.String())
	}
	if uci.position.GamePly() != 2 {
		t.Error("game history lost", uci.position.GamePly())
	}

	var kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	if err := uci.handle("position fen " + kiwipete); err != nil {
		t.Fatal(err)
	}
	if uci.position.String() != kiwipete {
		t.Error(uci.position.String())
	}

	if err := uci.handle("position startpos moves e2e5"); err == nil {
		t.Error("illegal move accepted")
	}
	if err := uci.handle("position foo"); err == nil {
		t.Error("bad token accepted")
	}
}

func TestSetOptionCommand(t *testing.T) {
	var overhead = 300
	var ponder = false
	var cleared = 0
	var uci = testProtocol(&stubEngine{})
	uci.options = []Option{
		&IntOption{Name: "Move Overhead", Min: 0, Max: 10000, Value: &overhead},
		&BoolOption{Name: "Ponder", Value: &ponder},
		&ButtonOption{Name: "Clear Hash", Action: func() { cleared++ }},
	}

	if err := uci.handle("setoption name Move Overhead value 500"); err != nil {
		t.Fatal(err)
	}
	if overhead != 500 {
		t.Error(overhead)
	}
	if err := uci.handle("setoption name move overhead value 70"); err != nil {
		t.Error("option names are case insensitive:", err)
	}
	if err := uci.handle("setoption name Move Overhead value 90000"); err == nil {
		t.Error("out of range accepted")
	}
	if err := uci.handle("setoption name Ponder value true"); err != nil || !ponder {
		t.Error(err, ponder)
	}
	if err := uci.handle("setoption name Clear Hash"); err != nil || cleared != 1 {
		t.Error(err, cleared)
	}
	if err := uci.handle("setoption name No Such Option value 1"); err == nil {
		t.Error("unknown option accepted")
	}
}

func TestParseLimits(t *testing.T) {
	var limits = parseLimits(strings.Fields(
		"wtime 300000 btime 300500 winc 2000 binc 2500 movestogo 40"))
	if limits.WhiteTime != 300000 || limits.BlackTime != 300500 ||
		limits.WhiteIncrement != 2000 || limits.BlackIncrement != 2500 ||
		limits.MovesToGo != 40 {
		t.Errorf("%+v", limits)
	}

	limits = parseLimits(strings.Fields("depth 8 nodes 100000 movetime 1500"))
	if limits.Depth != 8 || limits.Nodes != 100000 || limits.MoveTime != 1500 {
		t.Errorf("%+v", limits)
	}

	limits = parseLimits(strings.Fields("ponder infinite"))
	if !limits.Ponder || !limits.Infinite {
		t.Errorf("%+v", limits)
	}

	// truncated input must not panic
	limits = parseLimits(strings.Fields("wtime"))
	if limits.WhiteTime != 0 {
		t.Errorf("%+v", limits)
	}
}

func TestSearchInfoOutput(t *testing.T) {
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var ml = p.GenerateLegalMoves()
	var si = common.SearchInfo{
		Depth:    10,
		SelDepth: 14,
		Score:    common.UciScore{Centipawns: 25},
		Nodes:    100000,
		MainLine: ml[:1],
	}
	var line = searchInfoToUci(si, &p)
	for _, want := range []string{
		"info depth 10", "seldepth 14", "score cp 25", "nodes 100000", "pv",
	} {
		if !strings.Contains(line, want) {
			t.Error("missing", want, "in", line)
		}
	}

	si.Score = common.UciScore{Mate: 3}
	if !strings.Contains(searchInfoToUci(si, &p), "score mate 3") {
		t.Error(searchInfoToUci(si, &p))
	}
}
