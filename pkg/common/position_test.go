package common

import (
	"testing"
)

var positionTestFENs = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"8/p1P5/P7/3p4/5p1p/3p1P1P/K2p2pp/3R2nk w - - 0 1",
	"8/7p/p5pb/4k3/P1pPn3/8/P5PP/1rB2RK1 b - d3 0 28",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"Bn1N3R/ppPpNR1r/BnBr1NKR/k3pP2/3PR2R/N7/3P2P1/4Q2R w - e6 0 1",
	"r2qk2r/pppb1ppp/2np4/1Bb5/4n3/5N2/PPP2PPP/RNBQR1K1 b kq - 1 1",
}

type positionSnapshot struct {
	pawns, knights, bishops, rooks, queens, kings uint64
	white, black, checkers                        uint64
	whiteMove                                     bool
	castleRights, rule50, epSquare                int
	key, pawnKey, matKey                          uint64
	lastMove                                      Move
}

func snapshot(p *Position) positionSnapshot {
	return positionSnapshot{
		pawns:        p.Pawns,
		knights:      p.Knights,
		bishops:      p.Bishops,
		rooks:        p.Rooks,
		queens:       p.Queens,
		kings:        p.Kings,
		white:        p.White,
		black:        p.Black,
		checkers:     p.Checkers,
		whiteMove:    p.WhiteMove,
		castleRights: p.CastleRights,
		rule50:       p.Rule50,
		epSquare:     p.EpSquare,
		key:          p.Key,
		pawnKey:      p.PawnKey,
		matKey:       p.MatKey,
		lastMove:     p.LastMove,
	}
}

func TestMakeUnmake(t *testing.T) {
	for _, fen := range positionTestFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		walkMakeUnmake(t, fen, &p, 3)
	}
}

func walkMakeUnmake(t *testing.T, fen string, p *Position, depth int) {
	if depth == 0 {
		return
	}
	var before = snapshot(p)
	var buffer [MaxMoves]OrderedMove
	for _, om := range p.GenerateMoves(buffer[:]) {
		if !p.MakeMove(om.Move) {
			continue
		}
		walkMakeUnmake(t, fen, p, depth-1)
		p.UnmakeMove()
		if after := snapshot(p); after != before {
			t.Fatalf("%v: unmake %v: %+v != %+v",
				fen, om.Move.String(), after, before)
		}
	}
}

func TestNullMove(t *testing.T) {
	for _, fen := range positionTestFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		if p.IsCheck() {
			continue
		}
		var before = snapshot(&p)
		p.MakeNullMove()
		if p.WhiteMove == before.whiteMove {
			t.Error(fen, "null move kept side to move")
		}
		p.UnmakeNullMove()
		if after := snapshot(&p); after != before {
			t.Errorf("%v: unmake null: %+v != %+v", fen, after, before)
		}
	}
}

func TestFenRoundTrip(t *testing.T) {
	for _, fen := range positionTestFENs {
		var p1, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		var p2, err2 = NewPositionFromFEN(p1.String())
		if err2 != nil {
			t.Fatal(p1.String(), err2)
		}
		if p1.Key != p2.Key || p1.String() != p2.String() {
			t.Error(fen, p1.String(), p2.String())
		}
	}
}

func TestZobristIncremental(t *testing.T) {
	for _, fen := range positionTestFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		for _, mv := range p.GenerateLegalMoves() {
			p.MakeMove(mv)
			var fresh, err = NewPositionFromFEN(p.String())
			if err != nil {
				t.Fatal(p.String(), err)
			}
			if p.Key != fresh.Key || p.PawnKey != fresh.PawnKey ||
				p.MatKey != fresh.MatKey {
				t.Error(fen, mv.String(), p.String())
			}
			p.UnmakeMove()
		}
	}
}

func TestIsAttackedBySide(t *testing.T) {
	for _, fen := range positionTestFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		for sq := 0; sq < 64; sq++ {
			for _, side := range []bool{true, false} {
				var want = naiveAttacked(&p, sq, side)
				if got := p.IsAttackedBySide(sq, side); got != want {
					t.Error(fen, SquareName(sq), side, got, want)
				}
			}
		}
	}
}

func naiveAttacked(p *Position, sq int, side bool) bool {
	var occ = p.AllPieces()
	for from := 0; from < 64; from++ {
		var pt, pieceSide = p.GetPieceTypeAndSide(from)
		if pt == Empty || pieceSide != side {
			continue
		}
		var attacks uint64
		switch pt {
		case Pawn:
			attacks = PawnAttacks(from, side)
		case Knight:
			attacks = KnightAttacks[from]
		case Bishop:
			attacks = BishopAttacks(from, occ)
		case Rook:
			attacks = RookAttacks(from, occ)
		case Queen:
			attacks = QueenAttacks(from, occ)
		case King:
			attacks = KingAttacks[from]
		}
		if attacks&SquareMask[sq] != 0 {
			return true
		}
	}
	return false
}

func TestMakeMoveLAN(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	for _, lan := range []string{"e2e4", "e7e5", "g1f3", "b8c6",
		"f1b5", "a7a6", "b5a4", "g8f6"} {
		if !p.MakeMoveLAN(lan) {
			t.Fatal(lan)
		}
	}
	if p.MakeMoveLAN("d2d5") {
		t.Error("illegal move accepted")
	}
	if !p.MakeMoveLAN("e1g1") {
		t.Fatal("castling e1g1 rejected")
	}
	if p.Kings&p.White != SquareMask[SquareG1] {
		t.Error("king not on g1 after castling")
	}
}

func TestRepetition(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	for _, lan := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		if p.IsRepetition() {
			t.Fatal("early repetition before", lan)
		}
		if !p.MakeMoveLAN(lan) {
			t.Fatal(lan)
		}
	}
	if !p.IsRepetition() {
		t.Error("knight shuffle should repeat the initial position")
	}
	if p.RepetitionCount() != 1 {
		t.Error("repetition count", p.RepetitionCount())
	}
}

func TestSanRoundTrip(t *testing.T) {
	for _, fen := range positionTestFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		var ml = p.GenerateLegalMoves()
		for _, mv := range ml {
			var san = moveToSAN(&p, ml, mv)
			if parsed := ParseMoveSAN(&p, san); parsed != mv {
				t.Error(fen, san, mv.String(), parsed.String())
			}
		}
	}
}

func TestMirrorPosition(t *testing.T) {
	for _, fen := range positionTestFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		var m = MirrorPosition(&p)
		if m.WhiteMove == p.WhiteMove {
			t.Error(fen, "mirror kept side to move")
		}
		var back = MirrorPosition(&m)
		if back.Key != p.Key {
			t.Error(fen, "double mirror changed position", back.String())
		}
		if len(m.GenerateLegalMoves()) != len(p.GenerateLegalMoves()) {
			t.Error(fen, "mirror changed mobility")
		}
	}
}
