package common

import (
	"bytes"
	"fmt"
	"strconv"
	s "strings"
	"unicode"
)

func createPosition(board [64]coloredPiece, wtm bool,
	castleRights, ep, fifty, fullmove int) (Position, bool) {
	var p = Position{
		WhiteMove:    wtm,
		CastleRights: castleRights,
		EpSquare:     ep,
		Rule50:       fifty,
		FullMove:     fullmove,
		LastMove:     MoveEmpty,
	}

	for sq, piece := range board {
		if piece.Type != Empty {
			p.addPiece(piece.Type, piece.Side, sq)
		}
	}

	if wtm {
		p.Key ^= sideKey
	}
	p.Key ^= castlingKey[castleRights]
	if ep != SquareNone {
		p.Key ^= enpassantKey[File(ep)]
	}
	p.Checkers = p.computeCheckers()

	if !p.isLegal() {
		return Position{}, false
	}
	return p, true
}

func NewPositionFromFEN(fen string) (Position, error) {
	var tokens = s.Fields(fen)
	if len(tokens) <= 3 {
		return Position{}, fmt.Errorf("parse fen %q: not enough fields", fen)
	}

	var board [64]coloredPiece

	var i = 0
	for _, ch := range tokens[0] {
		if unicode.IsDigit(ch) {
			var n, _ = strconv.Atoi(string(ch))
			i += n
		} else if unicode.IsLetter(ch) {
			if i >= 64 {
				return Position{}, fmt.Errorf("parse fen %q: bad placement", fen)
			}
			var pt = parsePiece(ch)
			if pt.Type == Empty {
				return Position{}, fmt.Errorf("parse fen %q: bad piece %q", fen, ch)
			}
			board[FlipSquare(i)] = pt
			i++
		}
	}
	if i != 64 {
		return Position{}, fmt.Errorf("parse fen %q: bad placement", fen)
	}

	var whiteMove bool
	switch tokens[1] {
	case "w":
		whiteMove = true
	case "b":
		whiteMove = false
	default:
		return Position{}, fmt.Errorf("parse fen %q: bad side to move", fen)
	}

	var cr, crErr = parseCastleRights(tokens[2], board)
	if crErr != nil {
		return Position{}, fmt.Errorf("parse fen %q: %w", fen, crErr)
	}

	var epSquare = ParseSquare(tokens[3])
	if tokens[3] != "-" && epSquare == SquareNone {
		return Position{}, fmt.Errorf("parse fen %q: bad en passant square", fen)
	}

	var rule50 = 0
	if len(tokens) > 4 {
		rule50, _ = strconv.Atoi(tokens[4])
	}
	var fullmove = 1
	if len(tokens) > 5 {
		fullmove, _ = strconv.Atoi(tokens[5])
		if fullmove < 1 {
			fullmove = 1
		}
	}

	var pos, isLegal = createPosition(board, whiteMove, cr, epSquare, rule50, fullmove)
	if !isLegal {
		return Position{}, fmt.Errorf("parse fen %q: illegal position", fen)
	}
	return pos, nil
}

// parseCastleRights accepts KQkq, Shredder file letters (AHah style)
// and X-FEN. File letters only map onto the classical rights when the
// corresponding king and rook stand on their home squares.
func parseCastleRights(field string, board [64]coloredPiece) (int, error) {
	if field == "-" {
		return 0, nil
	}
	var cr = 0
	for _, ch := range field {
		switch {
		case ch == 'K':
			cr |= WhiteKingSide
		case ch == 'Q':
			cr |= WhiteQueenSide
		case ch == 'k':
			cr |= BlackKingSide
		case ch == 'q':
			cr |= BlackQueenSide
		case ch >= 'A' && ch <= 'H':
			var right, err = fileLetterRight(int(ch-'A'), true, board)
			if err != nil {
				return 0, err
			}
			cr |= right
		case ch >= 'a' && ch <= 'h':
			var right, err = fileLetterRight(int(ch-'a'), false, board)
			if err != nil {
				return 0, err
			}
			cr |= right
		default:
			return 0, fmt.Errorf("bad castle rights %q", field)
		}
	}
	return cr, nil
}

func fileLetterRight(file int, side bool, board [64]coloredPiece) (int, error) {
	var kingSq = let(side, SquareE1, SquareE8)
	if board[kingSq] != (coloredPiece{King, side}) {
		return 0, fmt.Errorf("castle rights name file %c but the king is displaced", 'a'+file)
	}
	var rookSq = MakeSquare(file, let(side, Rank1, Rank8))
	if board[rookSq] != (coloredPiece{Rook, side}) {
		return 0, fmt.Errorf("castle rights name file %c but no rook stands there", 'a'+file)
	}
	if file == FileH {
		return let(side, WhiteKingSide, BlackKingSide), nil
	}
	if file == FileA {
		return let(side, WhiteQueenSide, BlackQueenSide), nil
	}
	return 0, fmt.Errorf("unsupported castle rook file %c", 'a'+file)
}

func (p *Position) String() string {
	var sb bytes.Buffer

	var emptyCount = 0

	for i := 0; i < 64; i++ {
		var sq = FlipSquare(i)
		var piece = p.WhatPiece(sq)
		if piece == Empty {
			emptyCount++
		} else {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}

			var pieceSide = (p.White & SquareMask[sq]) != 0
			sb.WriteString(pieceToChar(piece, pieceSide))
		}

		if File(sq) == FileH {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			if Rank(sq) != Rank1 {
				sb.WriteString("/")
			}
		}
	}
	sb.WriteString(" ")

	if p.WhiteMove {
		sb.WriteString("w")
	} else {
		sb.WriteString("b")
	}
	sb.WriteString(" ")

	if p.CastleRights == 0 {
		sb.WriteString("-")
	} else {
		if (p.CastleRights & WhiteKingSide) != 0 {
			sb.WriteString("K")
		}
		if (p.CastleRights & WhiteQueenSide) != 0 {
			sb.WriteString("Q")
		}
		if (p.CastleRights & BlackKingSide) != 0 {
			sb.WriteString("k")
		}
		if (p.CastleRights & BlackQueenSide) != 0 {
			sb.WriteString("q")
		}
	}
	sb.WriteString(" ")

	if p.EpSquare == SquareNone {
		sb.WriteString("-")
	} else {
		sb.WriteString(SquareName(p.EpSquare))
	}
	sb.WriteString(" ")

	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteString(" ")

	sb.WriteString(strconv.Itoa(p.FullMove))

	return sb.String()
}

func pieceToChar(pieceType int, side bool) string {
	var result = string("pnbrqk"[pieceType-Pawn])
	if side {
		result = s.ToUpper(result)
	}
	return result
}
