package eval

import (
	. "github.com/ScallyBag/fire/pkg/common"
)

const (
	maxPhase    = 24
	scaleNormal = 16
	scaleDraw   = 0
)

const (
	matKXKWhite = 1 << iota
	matKXKBlack
)

// materialEntry caches conclusions that follow from piece counts alone.
// Scale factors are in sixteenths and shrink the endgame term of the
// side they belong to.
type materialEntry struct {
	key   uint64
	phase int
	scale [SIDE_NB]int
	flags int
}

func (e *EvaluationService) materialEntry(p *Position) *materialEntry {
	var entry = &e.materialTable[p.MatKey&uint64(len(e.materialTable)-1)]
	if entry.key == p.MatKey {
		return entry
	}
	entry.key = p.MatKey
	e.computeMaterial(p, entry)
	return entry
}

func (e *EvaluationService) computeMaterial(p *Position, entry *materialEntry) {
	var minors = e.pieceCount[SideWhite][Knight] + e.pieceCount[SideWhite][Bishop] +
		e.pieceCount[SideBlack][Knight] + e.pieceCount[SideBlack][Bishop]
	var rooks = e.pieceCount[SideWhite][Rook] + e.pieceCount[SideBlack][Rook]
	var queens = e.pieceCount[SideWhite][Queen] + e.pieceCount[SideBlack][Queen]
	entry.phase = Min(maxPhase, minors+2*rooks+4*queens)
	entry.flags = 0

	for side := SideWhite; side < SIDE_NB; side++ {
		entry.scale[side] = scaleNormal

		var pawns = e.pieceCount[side][Pawn]
		var force = e.minorForce(side)
		var theirForce = e.minorForce(side ^ 1)

		if pawns == 0 {
			var advantage = force - theirForce
			if advantage <= 1 {
				entry.scale[side] = 1
			} else if advantage <= 2 {
				entry.scale[side] = 4
			}
			if force == 2 && e.pieceCount[side][Knight] == 2 &&
				e.pieceCount[side][Bishop]+e.pieceCount[side][Rook]+e.pieceCount[side][Queen] == 0 {
				entry.scale[side] = 1
			}
		} else if pawns == 1 && force == 0 && theirForce >= 1 {
			// lone pawn against a piece, the defender gives the piece
			// for the pawn
			entry.scale[side] = 4
		}
	}

	if e.bareKing(SideBlack) && e.minorForce(SideWhite) >= 3 {
		entry.flags |= matKXKWhite
	}
	if e.bareKing(SideWhite) && e.minorForce(SideBlack) >= 3 {
		entry.flags |= matKXKBlack
	}
}

// minorForce measures the non-pawn army in minor-piece units.
func (e *EvaluationService) minorForce(side int) int {
	return e.pieceCount[side][Knight] + e.pieceCount[side][Bishop] +
		3*e.pieceCount[side][Rook] + 6*e.pieceCount[side][Queen]
}

func (e *EvaluationService) bareKing(side int) bool {
	return e.pieceCount[side][Pawn] == 0 && e.minorForce(side) == 0
}

// evalKXK drives the bare king toward a corner and the attacking king
// toward it so that elementary mates convert.
func (e *EvaluationService) evalKXK(strong int) int {
	var weakKing = e.kingSq[strong^1]
	var strongKing = e.kingSq[strong]
	var value = 180 +
		8*centerDistance(weakKing) +
		4*(14-distanceBetween[strongKing][weakKing])
	if strong == SideWhite {
		return value
	}
	return -value
}

func centerDistance(sq int) int {
	var fd = File(sq)
	if fd >= FileE {
		fd = FileH - fd
	}
	var rd = Rank(sq)
	if rd >= Rank5 {
		rd = Rank8 - rd
	}
	return 6 - fd - rd
}
