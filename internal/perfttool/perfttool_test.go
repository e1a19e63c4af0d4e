package perfttool

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ScallyBag/fire/pkg/common"
)

var crossCheckFENs = []string{
	common.InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/7p/p5pb/4k3/P1pPn3/8/P5PP/1rB2RK1 b - d3 0 28",
}

func TestPerftAgainstReference(t *testing.T) {
	const depth = 4
	for _, fen := range crossCheckFENs {
		var p, err = common.NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		var nodes = Perft(&p, depth)
		var reference = ReferencePerft(fen, depth)
		if nodes != reference {
			t.Error(fen, nodes, reference)
		}
	}
}

func TestDivide(t *testing.T) {
	for _, fen := range crossCheckFENs {
		var buf bytes.Buffer
		if err := Divide(&buf, fen, 3); err != nil {
			t.Error(fen, err)
			t.Log(buf.String())
		}
		if !strings.Contains(buf.String(), "Nodes searched:") {
			t.Error(fen, "missing total line")
		}
	}
}
