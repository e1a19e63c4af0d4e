package common

import (
	"math/rand"
)

var castleMask [64]int

func MakePiece(piece int, side bool) int {
	if side {
		return 2 * piece
	}
	return 2*piece + 1
}

func (p *Position) WhatPiece(sq int) int {
	return p.board[sq]
}

func (p *Position) GetPieceTypeAndSide(sq int) (pieceType int, side bool) {
	pieceType = p.board[sq]
	side = (p.White & SquareMask[sq]) != 0
	return
}

func (p *Position) AllPieces() uint64 {
	return p.White | p.Black
}

func (p *Position) PiecesByColor(side bool) uint64 {
	if side {
		return p.White
	}
	return p.Black
}

func (p *Position) Colours(side int) uint64 {
	if side == SideWhite {
		return p.White
	}
	return p.Black
}

func (p *Position) KingSq(side bool) int {
	return FirstOne(p.Kings & p.PiecesByColor(side))
}

func (p *Position) GamePly() int {
	return len(p.undoStack)
}

// Clone copies the position together with its undo stack so the copy
// can make and unmake moves independently.
func (p *Position) Clone() Position {
	var c = *p
	c.undoStack = append([]undoInfo(nil), p.undoStack...)
	return c
}

func (p *Position) addPiece(piece int, side bool, sq int) {
	var b = SquareMask[sq]
	if side {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	switch piece {
	case Pawn:
		p.Pawns ^= b
		p.PawnKey ^= PieceSquareKey(Pawn, side, sq)
	case Knight:
		p.Knights ^= b
	case Bishop:
		p.Bishops ^= b
	case Rook:
		p.Rooks ^= b
	case Queen:
		p.Queens ^= b
	case King:
		p.Kings ^= b
	}
	p.Key ^= PieceSquareKey(piece, side, sq)
	p.MatKey += matKeyUnit(piece, side)
	p.board[sq] = piece
}

func (p *Position) removePiece(piece int, side bool, sq int) {
	var b = SquareMask[sq]
	if side {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	switch piece {
	case Pawn:
		p.Pawns ^= b
		p.PawnKey ^= PieceSquareKey(Pawn, side, sq)
	case Knight:
		p.Knights ^= b
	case Bishop:
		p.Bishops ^= b
	case Rook:
		p.Rooks ^= b
	case Queen:
		p.Queens ^= b
	case King:
		p.Kings ^= b
	}
	p.Key ^= PieceSquareKey(piece, side, sq)
	p.MatKey -= matKeyUnit(piece, side)
	p.board[sq] = Empty
}

func (p *Position) movePiece(piece int, side bool, from, to int) {
	var b = SquareMask[from] ^ SquareMask[to]
	if side {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	switch piece {
	case Pawn:
		p.Pawns ^= b
		p.PawnKey ^= PieceSquareKey(Pawn, side, from) ^ PieceSquareKey(Pawn, side, to)
	case Knight:
		p.Knights ^= b
	case Bishop:
		p.Bishops ^= b
	case Rook:
		p.Rooks ^= b
	case Queen:
		p.Queens ^= b
	case King:
		p.Kings ^= b
	}
	p.Key ^= PieceSquareKey(piece, side, from) ^ PieceSquareKey(piece, side, to)
	p.board[from] = Empty
	p.board[to] = piece
}

// matKeyUnit packs one piece count into 4 bits of the material
// signature so equal signatures mean equal piece counts.
func matKeyUnit(piece int, side bool) uint64 {
	return 1 << uint(4*MakePiece(piece, side))
}

func (p *Position) MatCount(piece int, side bool) int {
	return int((p.MatKey >> uint(4*MakePiece(piece, side))) & 15)
}

// MakeMove mutates p. It returns false and leaves p unchanged when the
// move is illegal (mover's king left in check).
func (p *Position) MakeMove(move Move) bool {
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()
	var stm = p.WhiteMove

	p.undoStack = append(p.undoStack, undoInfo{
		move:         move,
		lastMove:     p.LastMove,
		castleRights: p.CastleRights,
		epSquare:     p.EpSquare,
		rule50:       p.Rule50,
		key:          p.Key,
		pawnKey:      p.PawnKey,
		matKey:       p.MatKey,
		checkers:     p.Checkers,
	})

	p.Key ^= sideKey

	var newCastleRights = p.CastleRights & castleMask[from] & castleMask[to]
	p.Key ^= castlingKey[newCastleRights^p.CastleRights]
	p.CastleRights = newCastleRights

	if movingPiece == Pawn || capturedPiece != Empty {
		p.Rule50 = 0
	} else {
		p.Rule50++
	}

	var oldEp = p.EpSquare
	p.EpSquare = SquareNone
	if oldEp != SquareNone {
		p.Key ^= enpassantKey[File(oldEp)]
	}

	if capturedPiece != Empty {
		if capturedPiece == Pawn && to == oldEp {
			p.removePiece(Pawn, !stm, to+let(stm, -8, 8))
		} else {
			p.removePiece(capturedPiece, !stm, to)
		}
	}

	p.movePiece(movingPiece, stm, from, to)

	if movingPiece == Pawn {
		if stm {
			if to == from+16 {
				p.EpSquare = from + 8
				p.Key ^= enpassantKey[File(from+8)]
			}
			if Rank(to) == Rank8 {
				p.removePiece(Pawn, true, to)
				p.addPiece(move.Promotion(), true, to)
			}
		} else {
			if to == from-16 {
				p.EpSquare = from - 8
				p.Key ^= enpassantKey[File(from-8)]
			}
			if Rank(to) == Rank1 {
				p.removePiece(Pawn, false, to)
				p.addPiece(move.Promotion(), false, to)
			}
		}
	} else if movingPiece == King {
		if stm {
			if from == SquareE1 && to == SquareG1 {
				p.movePiece(Rook, true, SquareH1, SquareF1)
			}
			if from == SquareE1 && to == SquareC1 {
				p.movePiece(Rook, true, SquareA1, SquareD1)
			}
		} else {
			if from == SquareE8 && to == SquareG8 {
				p.movePiece(Rook, false, SquareH8, SquareF8)
			}
			if from == SquareE8 && to == SquareC8 {
				p.movePiece(Rook, false, SquareA8, SquareD8)
			}
		}
	}

	if !stm {
		p.FullMove++
	}
	p.WhiteMove = !stm

	if !p.isLegal() {
		p.UnmakeMove()
		return false
	}
	p.Checkers = p.computeCheckers()
	p.LastMove = move
	return true
}

// UnmakeMove reverses the last MakeMove. Hash keys, checkers and the
// irreversible counters come back from the undo record.
func (p *Position) UnmakeMove() {
	var u = p.undoStack[len(p.undoStack)-1]
	p.undoStack = p.undoStack[:len(p.undoStack)-1]

	var move = u.move
	var stm = !p.WhiteMove
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()

	if move.Promotion() != Empty {
		p.removePiece(move.Promotion(), stm, to)
		p.addPiece(Pawn, stm, from)
	} else {
		p.movePiece(movingPiece, stm, to, from)
	}

	if movingPiece == King && AbsDelta(from, to) == 2 && Rank(from) == Rank(to) {
		if stm {
			if to == SquareG1 {
				p.movePiece(Rook, true, SquareF1, SquareH1)
			} else if to == SquareC1 {
				p.movePiece(Rook, true, SquareD1, SquareA1)
			}
		} else {
			if to == SquareG8 {
				p.movePiece(Rook, false, SquareF8, SquareH8)
			} else if to == SquareC8 {
				p.movePiece(Rook, false, SquareD8, SquareA8)
			}
		}
	}

	if capturedPiece != Empty {
		if capturedPiece == Pawn && to == u.epSquare {
			p.addPiece(Pawn, !stm, to+let(stm, -8, 8))
		} else {
			p.addPiece(capturedPiece, !stm, to)
		}
	}

	if !stm {
		p.FullMove--
	}
	p.WhiteMove = stm
	p.LastMove = u.lastMove
	p.CastleRights = u.castleRights
	p.EpSquare = u.epSquare
	p.Rule50 = u.rule50
	p.Key = u.key
	p.PawnKey = u.pawnKey
	p.MatKey = u.matKey
	p.Checkers = u.checkers
}

func (p *Position) MakeNullMove() {
	p.undoStack = append(p.undoStack, undoInfo{
		move:         MoveEmpty,
		lastMove:     p.LastMove,
		castleRights: p.CastleRights,
		epSquare:     p.EpSquare,
		rule50:       p.Rule50,
		key:          p.Key,
		pawnKey:      p.PawnKey,
		matKey:       p.MatKey,
		checkers:     p.Checkers,
	})
	p.Key ^= sideKey
	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[File(p.EpSquare)]
		p.EpSquare = SquareNone
	}
	p.Rule50++
	p.WhiteMove = !p.WhiteMove
	p.Checkers = 0
	p.LastMove = MoveEmpty
}

func (p *Position) UnmakeNullMove() {
	var u = p.undoStack[len(p.undoStack)-1]
	p.undoStack = p.undoStack[:len(p.undoStack)-1]
	p.WhiteMove = !p.WhiteMove
	p.LastMove = u.lastMove
	p.CastleRights = u.castleRights
	p.EpSquare = u.epSquare
	p.Rule50 = u.rule50
	p.Key = u.key
	p.PawnKey = u.pawnKey
	p.MatKey = u.matKey
	p.Checkers = u.checkers
}

func (p *Position) IsAttackedBySide(sq int, side bool) bool {
	var enemy = p.PiecesByColor(side)
	if (PawnAttacks(sq, !side) & p.Pawns & enemy) != 0 {
		return true
	}
	if (KnightAttacks[sq] & p.Knights & enemy) != 0 {
		return true
	}
	if (KingAttacks[sq] & p.Kings & enemy) != 0 {
		return true
	}
	var allPieces = p.White | p.Black
	if (BishopAttacks(sq, allPieces) & (p.Bishops | p.Queens) & enemy) != 0 {
		return true
	}
	if (RookAttacks(sq, allPieces) & (p.Rooks | p.Queens) & enemy) != 0 {
		return true
	}
	return false
}

func (p *Position) AttackersTo(sq int) uint64 {
	var occ = p.White | p.Black
	return (blackPawnAttacks[sq] & p.Pawns & p.White) |
		(whitePawnAttacks[sq] & p.Pawns & p.Black) |
		(KnightAttacks[sq] & p.Knights) |
		(BishopAttacks(sq, occ) & (p.Bishops | p.Queens)) |
		(RookAttacks(sq, occ) & (p.Rooks | p.Queens)) |
		(KingAttacks[sq] & p.Kings)
}

func (p *Position) computeCheckers() uint64 {
	if p.WhiteMove {
		return p.AttackersTo(p.KingSq(true)) & p.Black
	}
	return p.AttackersTo(p.KingSq(false)) & p.White
}

func (p *Position) isLegal() bool {
	var kingSq = p.KingSq(!p.WhiteMove)
	return !p.IsAttackedBySide(kingSq, p.WhiteMove)
}

func (p *Position) IsCheck() bool {
	return p.Checkers != 0
}

func (p *Position) IsDiscoveredCheck() bool {
	return (p.Checkers & ^SquareMask[p.LastMove.To()]) != 0
}

// GivesCheck reports whether move checks the opponent, without making
// the move. Covers direct, discovered, promotion, en passant and
// castle checks.
func (p *Position) GivesCheck(move Move) bool {
	var stm = p.WhiteMove
	var kingSq = p.KingSq(!stm)
	var kingMask = SquareMask[kingSq]
	var from = move.From()
	var to = move.To()
	var piece = move.MovingPiece()
	if move.Promotion() != Empty {
		piece = move.Promotion()
	}

	var occ = p.AllPieces()&^SquareMask[from] | SquareMask[to]
	if move.MovingPiece() == Pawn && move.CapturedPiece() == Pawn && to == p.EpSquare {
		occ &^= SquareMask[to+let(stm, -8, 8)]
	}

	switch piece {
	case Pawn:
		if PawnAttacks(to, stm)&kingMask != 0 {
			return true
		}
	case Knight:
		if KnightAttacks[to]&kingMask != 0 {
			return true
		}
	case Bishop:
		if BishopAttacks(to, occ)&kingMask != 0 {
			return true
		}
	case Rook:
		if RookAttacks(to, occ)&kingMask != 0 {
			return true
		}
	case Queen:
		if QueenAttacks(to, occ)&kingMask != 0 {
			return true
		}
	case King:
		if AbsDelta(from, to) == 2 && Rank(from) == Rank(to) {
			var rookTo = (from + to) / 2
			if RookAttacks(rookTo, occ)&kingMask != 0 {
				return true
			}
		}
	}

	// Discovered checks through the vacated square.
	var ours = p.PiecesByColor(stm) &^ SquareMask[from]
	if bishopRays[kingSq]&SquareMask[from] != 0 &&
		BishopAttacks(kingSq, occ)&(p.Bishops|p.Queens)&ours != 0 {
		return true
	}
	if rookRays[kingSq]&SquareMask[from] != 0 &&
		RookAttacks(kingSq, occ)&(p.Rooks|p.Queens)&ours != 0 {
		return true
	}
	// En passant opens the captured pawn's square as well.
	if move.MovingPiece() == Pawn && move.CapturedPiece() == Pawn && to == p.EpSquare {
		if BishopAttacks(kingSq, occ)&(p.Bishops|p.Queens)&ours != 0 ||
			RookAttacks(kingSq, occ)&(p.Rooks|p.Queens)&ours != 0 {
			return true
		}
	}
	return false
}

// IsRepetition scans the undo stack for an earlier position with the
// same key. Positions older than the last irreversible move cannot
// repeat, so the scan is bounded by Rule50.
func (p *Position) IsRepetition() bool {
	var n = len(p.undoStack)
	var limit = Max(0, n-p.Rule50)
	for i := n - 2; i >= limit; i-- {
		if p.undoStack[i].key == p.Key {
			return true
		}
	}
	return false
}

// RepetitionCount counts how many earlier stack positions equal the
// current one.
func (p *Position) RepetitionCount() int {
	var n = len(p.undoStack)
	var limit = Max(0, n-p.Rule50)
	var count = 0
	for i := n - 2; i >= limit; i-- {
		if p.undoStack[i].key == p.Key {
			count++
		}
	}
	return count
}

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [PIECE_NB * 2 * 64]uint64
)

func PieceSquareKey(piece int, side bool, square int) uint64 {
	return pieceSquareKey[MakePiece(piece, side)*64+square]
}

func initKeys() {
	var r = rand.New(rand.NewSource(0))
	sideKey = r.Uint64()
	for i := range enpassantKey {
		enpassantKey[i] = r.Uint64()
	}
	for i := range pieceSquareKey {
		pieceSquareKey[i] = r.Uint64()
	}

	var castle [4]uint64
	for i := range castle {
		castle[i] = r.Uint64()
	}

	for i := range castlingKey {
		for j := 0; j < 4; j++ {
			if (i & (1 << uint(j))) != 0 {
				castlingKey[i] ^= castle[j]
			}
		}
	}
}

func MirrorPosition(p *Position) Position {
	var board [64]coloredPiece
	for i := range board {
		var pt, side = p.GetPieceTypeAndSide(i)
		if pt != Empty {
			board[FlipSquare(i)] = coloredPiece{pt, !side}
		}
	}
	var cr = (p.CastleRights >> 2) | ((p.CastleRights & 3) << 2)
	var ep = SquareNone
	if p.EpSquare != SquareNone {
		ep = FlipSquare(p.EpSquare)
	}
	var pos, _ = createPosition(board, !p.WhiteMove, cr, ep, p.Rule50, p.FullMove)
	return pos
}

func init() {
	initKeys()
	for i := range castleMask {
		castleMask[i] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}
