package eval

import (
	"math/bits"

	. "github.com/ScallyBag/fire/pkg/common"
)

const (
	darkSquares = uint64(0xAA55AA55AA55AA55)
)

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func onlyOne(bb uint64) bool {
	return bb != 0 && !MoreThanOne(bb)
}

func sameColorSquares(sq int) uint64 {
	if IsDarkSquare(sq) {
		return darkSquares
	}
	return ^darkSquares
}

func relativeSq32(side, sq int) int {
	if side == SideBlack {
		sq = FlipSquare(sq)
	}
	var f = File(sq)
	if f >= FileE {
		f = FileH - f
	}
	return f + 4*Rank(sq)
}

func relativeRankOf(colour, sq int) int {
	if colour == SideWhite {
		return Rank(sq)
	}
	return Rank8 - Rank(sq)
}

func limit(v, min, max int) int {
	if v <= min {
		return min
	}
	if v >= max {
		return max
	}
	return v
}

func backmost(colour int, bb uint64) int {
	if colour == SideWhite {
		return bits.TrailingZeros64(bb)
	}
	return 63 - bits.LeadingZeros64(bb)
}

func murmurMix(k, h uint64) uint64 {
	h ^= k
	h *= uint64(0xc6a4a7935bd1e995)
	return h ^ (h >> uint(51))
}

func pawnAttacksOf(colour, sq int) uint64 {
	return PawnAttacks(sq, colour == SideWhite)
}

var outpostSquares = [SIDE_NB]uint64{
	(Rank4Mask | Rank5Mask | Rank6Mask),
	(Rank5Mask | Rank4Mask | Rank3Mask),
}

var seventhRank = [SIDE_NB]uint64{Rank7Mask, Rank2Mask}
var eighthRank = [SIDE_NB]uint64{Rank8Mask, Rank1Mask}

var rankMasks = [8]uint64{Rank1Mask, Rank2Mask, Rank3Mask, Rank4Mask, Rank5Mask, Rank6Mask, Rank7Mask, Rank8Mask}

var pawnConnectedMask [SIDE_NB][64]uint64
var pawnPassedMask [SIDE_NB][64]uint64
var outpostSquareMasks [SIDE_NB][64]uint64
var kingShieldMasks [SIDE_NB][64]uint64
var forwardFileMasks [SIDE_NB][64]uint64
var kingAreaMasks [SIDE_NB][64]uint64
var adjacentFilesMask [8]uint64
var forwardRanksMasks [SIDE_NB][8]uint64
var distanceBetween [64][64]int

// kingDanger holds the attack-unit to middlegame-penalty curve. The
// working table is eight times finer, filled by linear interpolation
// between curve points.
var kingDanger = [128]int{
	0, 6, 19, 39, 71, 110, 162, 221, 286, 357, 442, 526, 624, 728, 838, 955,
	1079, 1202, 1332, 1475, 1612, 1755, 1904, 2060, 2210, 2366, 2522, 2684, 2847, 3009, 3165, 3328,
	3490, 3653, 3815, 3971, 4134, 4290, 4446, 4602, 4751, 4901, 5050, 5193, 5336, 5473, 5609, 5746,
	5876, 6006, 6129, 6253, 6370, 6487, 6604, 6714, 6818, 6922, 7026, 7124, 7221, 7312, 7403, 7488,
	7572, 7657, 7735, 7806, 7884, 7956, 8021, 8092, 8151, 8216, 8274, 8333, 8391, 8443, 8495, 8541,
	8593, 8638, 8684, 8723, 8768, 8807, 8840, 8879, 8911, 8950, 8983, 9015, 9041, 9074, 9100, 9126,
	9152, 9178, 9197, 9223, 9243, 9262, 9282, 9301, 9321, 9340, 9353, 9373, 9386, 9405, 9418, 9431,
	9444, 9457, 9470, 9483, 9490, 9503, 9516, 9522, 9535, 9542, 9548, 9561, 9568, 9574, 9581, 9587,
}

var safetyTable [1024]Score

func safetyValue(attackUnits int) Score {
	return safetyTable[limit(attackUnits, 0, 1000)]
}

func init() {
	for i := 0; i < 64; i++ {
		for j := 0; j < 64; j++ {
			distanceBetween[i][j] = SquareDistance(i, j)
		}
	}

	for f := FileA; f <= FileH; f++ {
		adjacentFilesMask[f] = Left(FileMask[f]) | Right(FileMask[f])
	}
	for r := Rank1; r <= Rank8; r++ {
		forwardRanksMasks[SideWhite][r] = UpFill(rankMasks[r])
		forwardRanksMasks[SideBlack][r] = DownFill(rankMasks[r])
	}

	for sq := 0; sq < 64; sq++ {
		var x = SquareMask[sq]

		pawnConnectedMask[SideWhite][sq] = Left(x) | Right(x) | Down(Left(x)|Right(x))
		pawnConnectedMask[SideBlack][sq] = Left(x) | Right(x) | Up(Left(x)|Right(x))

		pawnPassedMask[SideWhite][sq] = UpFill(Up(Left(x) | Right(x) | x))
		pawnPassedMask[SideBlack][sq] = DownFill(Down(Left(x) | Right(x) | x))

		outpostSquareMasks[SideWhite][sq] = pawnPassedMask[SideWhite][sq] & ^FileMask[File(sq)]
		outpostSquareMasks[SideBlack][sq] = pawnPassedMask[SideBlack][sq] & ^FileMask[File(sq)]

		kingShieldMasks[SideWhite][sq] = UpFill(Left(x) | Right(x) | x)
		kingShieldMasks[SideBlack][sq] = DownFill(Left(x) | Right(x) | x)

		forwardFileMasks[SideWhite][sq] = UpFill(x)
		forwardFileMasks[SideBlack][sq] = DownFill(x)

		var kingZoneSq = MakeSquare(limit(File(sq), FileB, FileG), limit(Rank(sq), Rank2, Rank7))
		kingAreaMasks[SideWhite][sq] = KingAttacks[kingZoneSq] | SquareMask[kingZoneSq]
		kingAreaMasks[SideBlack][sq] = kingAreaMasks[SideWhite][sq]
	}

	var prev = 0
	for n := 0; n < len(kingDanger); n++ {
		var val = kingDanger[n] / 10
		safetyTable[8*n] = S(val, 0)
		if n > 0 {
			for i := 1; i < 8; i++ {
				safetyTable[8*n-8+i] = S((i*val+(8-i)*prev)/8, 0)
			}
		}
		prev = val
	}
	for i := 8*(len(kingDanger)-1) + 1; i < len(safetyTable); i++ {
		safetyTable[i] = S(prev, 0)
	}
}
