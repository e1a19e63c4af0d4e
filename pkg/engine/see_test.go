package engine

import (
	"testing"

	. "github.com/ScallyBag/fire/pkg/common"
)

func TestSEE(t *testing.T) {
	var buffer [MaxMoves]OrderedMove
	for _, test := range seeTestFENs {
		var p, err = NewPositionFromFEN(test)
		if err != nil {
			t.Error(err)
			continue
		}
		var eval = basicMaterial(&p)
		for _, om := range p.GenerateCaptures(buffer[:], true) {
			var move = om.Move
			if !p.MakeMove(move) {
				continue
			}
			if p.IsDiscoveredCheck() {
				p.UnmakeMove()
				continue
			}
			var directSEE = -searchSEE(&p) - eval
			p.UnmakeMove()
			if !SeeGE(&p, move, directSEE) || SeeGE(&p, move, directSEE+1) {
				t.Error(test, move.String(), directSEE)
			}
		}
	}
}

func basicMaterial(p *Position) int {
	var score = 0
	score += PopCount(p.Pawns&p.White) - PopCount(p.Pawns&p.Black)
	score += 4 * (PopCount(p.Knights&p.White) - PopCount(p.Knights&p.Black))
	score += 4 * (PopCount(p.Bishops&p.White) - PopCount(p.Bishops&p.Black))
	score += 6 * (PopCount(p.Rooks&p.White) - PopCount(p.Rooks&p.Black))
	score += 12 * (PopCount(p.Queens&p.White) - PopCount(p.Queens&p.Black))
	if !p.WhiteMove {
		score = -score
	}
	return score
}

func searchSEE(p *Position) int {
	var alpha = basicMaterial(p)
	var buffer [MaxMoves]OrderedMove
	var ml = p.GenerateCaptures(buffer[:], false)
	var move = lvaRecapture(p, ml, p.LastMove.To())
	if move != MoveEmpty &&
		p.MakeMove(move) {
		var score = -searchSEE(p)
		p.UnmakeMove()
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func lvaRecapture(p *Position, ml []OrderedMove, square int) Move {
	var piece = King + 1
	var bestMove = MoveEmpty
	for _, om := range ml {
		var move = om.Move
		if move.To() == square &&
			move.MovingPiece() < piece &&
			p.MakeMove(move) {
			p.UnmakeMove()
			bestMove = move
			piece = move.MovingPiece()
		}
	}
	return bestMove
}

var seeTestFENs = []string{
	// https://chessprogramming.wikispaces.com/SEE+-+The+Swap+Algorithm
	"1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1",
	"1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1",
	// Kiwipete: https://chessprogramming.wikispaces.com/Perft+Results
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	// http://www.stmintz.com/ccc/index.php?id=60880
	"1rr3k1/4ppb1/2q1bnp1/1p2B1Q1/6P1/2p2P2/2P1B2R/2K4R w - - 0 1",
	// zurichess: many captures
	"6k1/Qp1r1pp1/p1rP3p/P3q3/2Bnb1P1/1P3PNP/4p1K1/R1R5 b - - 0 1",
	"3r2k1/2Q2pb1/2n1r3/1p1p4/pB1PP3/n1N2p2/B1q2P1R/6RK b - - 0 1",
	"2r3k1/5p1n/6p1/pp3n2/2BPp2P/4P2P/q1rN1PQb/R1BKR3 b - - 0 1",
	"r3r3/bpp1Nk1p/p1bq1Bp1/5p2/PPP3n1/R7/3QBPPP/5RK1 w - - 0 1",
	"4r1q1/1p4bk/2pp2np/4N2n/2bp2pP/PR3rP1/2QBNPB1/4K2R b K - 0 1",
	// Enpassant: http://www.10x8.net/chess/PerfT.html
	"8/7p/p5pb/4k3/P1pPn3/8/P5PP/1rB2RK1 b - d3 0 28",
	"rr2r1k1/ppBb1ppp/8/4p1NQ/8/1qB3B1/PP4PP/R5K1 w - - 0 1",
	"3q4/pp3pkp/5npN/2bpr1B1/4r3/2P2Q2/PP3PPP/R4RK1 w - - 0 1",
}
