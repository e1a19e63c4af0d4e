package eval

import (
	. "github.com/ScallyBag/fire/pkg/common"
)

// kingPawnEntry caches everything derivable from the pawn placement and
// the two king squares. Castle rights are mixed into the hash as well;
// the shelter score itself depends on the current king squares only.
type kingPawnEntry struct {
	key       uint64
	score     Score
	passed    uint64
	halfOpen  [SIDE_NB]uint8
	asymmetry int
	pawnCount [SIDE_NB]int
}

func (e *EvaluationService) pawnKingEntry(p *Position) *kingPawnEntry {
	var key = murmurMix(p.PawnKey,
		murmurMix(uint64(e.kingSq[SideWhite])<<8|uint64(e.kingSq[SideBlack]),
			uint64(p.CastleRights)+1))
	var entry = &e.kingpawnTable[key&uint64(len(e.kingpawnTable)-1)]
	if entry.key == key {
		return entry
	}
	entry.key = key
	entry.passed = 0
	entry.score = e.evalPawnsAndKings(p, entry)
	return entry
}

func (e *EvaluationService) evalPawnsAndKings(p *Position, entry *kingPawnEntry) Score {
	var score Score
	for side := SideWhite; side < SIDE_NB; side++ {
		var own = pawnsBB(p, side)
		var their = pawnsBB(p, side^1)
		var fileBits uint8
		var s Score

		for x := own; x != 0; x &= x - 1 {
			var sq = FirstOne(x)
			var f = File(sq)
			var r = relativeRankOf(side, sq)
			fileBits |= 1 << uint(f)

			s += e.PawnPST[relativeSq32(side, sq)]

			var neighbours = adjacentFilesMask[f] & own
			var phalanx = neighbours & RankMask[Rank(sq)]
			var supported = pawnAttacksOf(side^1, sq) & own
			var stoppers = their & pawnPassedMask[side][sq]

			if neighbours == 0 {
				s += e.PawnIsolated
			}
			if own&forwardFileMasks[side][sq]&^SquareMask[sq] != 0 {
				s += e.PawnDoubled
			}
			if phalanx != 0 {
				s += e.PawnPhalanx[r]
			}
			if supported != 0 {
				s += e.PawnChain[r]
				if MoreThanOne(supported) {
					s += e.PawnProtected
				}
			}
			if neighbours != 0 && supported == 0 && phalanx == 0 &&
				pawnAttacksOf(side, forwardSquare(side, sq))&their != 0 &&
				neighbours&^forwardRanksMasks[side][Rank(sq)] == 0 {
				s += e.PawnBackward
			}
			if stoppers == 0 {
				entry.passed |= SquareMask[sq]
			}
		}

		if own != 0 {
			var fb = uint64(fileBits)
			var width = LastOne(fb) - FirstOne(fb)
			s += Score(width) * e.PawnWidthEg
		}

		entry.halfOpen[side] = ^fileBits
		entry.pawnCount[side] = PopCount(own)
		s += e.kingShelter(p, side)

		if side == SideWhite {
			score += s
		} else {
			score -= s
		}
	}

	var whiteFiles = ^entry.halfOpen[SideWhite]
	var blackFiles = ^entry.halfOpen[SideBlack]
	entry.asymmetry = PopCount(uint64(whiteFiles ^ blackFiles))

	return score
}

// kingShelter scores the pawn cover in front of the king together with
// the enemy pawn storm on the same files.
func (e *EvaluationService) kingShelter(p *Position, side int) Score {
	var ksq = e.kingSq[side]
	var own = pawnsBB(p, side)
	var their = pawnsBB(p, side^1)
	var s Score

	var kf = limit(File(ksq), FileB, FileG)
	for f := kf - 1; f <= kf+1; f++ {
		var d = Min(f, FileH-f)
		var front = FileMask[f] & forwardRanksMasks[side][Rank(ksq)] &^ RankMask[Rank(ksq)]

		var shelterRank = 7
		if bb := own & front; bb != 0 {
			shelterRank = relativeRankOf(side, backmost(side, bb))
		}
		s += e.KingShelter[d][shelterRank]

		var stormRank = 7
		if bb := their & front; bb != 0 {
			stormRank = relativeRankOf(side, backmost(side, bb))
		}
		s += e.KingStorm[d][stormRank]
	}

	var kingFile = FileMask[File(ksq)]
	if own&kingFile == 0 {
		s += e.KingSemiOpenOwn
		if their&kingFile == 0 {
			s += e.KingOpenFile
		}
	}
	return s
}

func pawnsBB(p *Position, side int) uint64 {
	return p.Pawns & p.Colours(side)
}

func forwardSquare(side, sq int) int {
	if side == SideWhite {
		return sq + 8
	}
	return sq - 8
}
