package eval

import (
	. "github.com/ScallyBag/fire/pkg/common"
)

// Weights holds every evaluation term as a packed middlegame/endgame
// score in centipawns.
type Weights struct {
	PawnValue   Score
	KnightValue Score
	BishopValue Score
	RookValue   Score
	QueenValue  Score

	PawnPST   [32]Score
	KnightPST [32]Score
	BishopPST [32]Score
	RookPST   [32]Score
	QueenPST  [32]Score
	KingPST   [32]Score

	KnightMobility [9]Score
	BishopMobility [14]Score
	RookMobility   [15]Score
	QueenMobility  [28]Score

	PawnIsolated       Score
	PawnDoubled        Score
	PawnBackward       Score
	PawnPhalanx        [8]Score
	PawnChain          [8]Score
	PawnProtected      Score
	PawnWidthEg        Score

	PassedPawn         [8]Score
	PassedFriendlyKing [8]Score
	PassedEnemyKing    [8]Score
	PassedFree         Score
	PassedSafeAdvance  Score
	PassedBlocked      Score
	PassedSupported    Score

	KnightOutpost         Score
	KnightOutpostUnsupported Score
	BishopOutpost         Score
	BishopPair            Score
	BishopRammedPawns     Score
	BishopTrapped         Score
	BishopFianchetto      Score
	MinorBehindPawn       Score
	MinorKingProtector    [8]Score

	RookOpen     Score
	RookSemiOpen Score
	RookSeventh  Score
	RookTrapped  Score

	QueenCentral Score
	QueenWeak    Score

	KingShelter [4][8]Score
	KingStorm   [4][8]Score
	KingOpenFile    Score
	KingSemiOpenOwn Score

	SafetyAttackWeight   [PIECE_NB]int
	SafetyWeakSquares    int
	SafetySafeQueenCheck int
	SafetySafeRookCheck  int
	SafetySafeBishopCheck int
	SafetySafeKnightCheck int
	SafetyNoEnemyQueen   int
	SafetyPinned         int

	ThreatMinorAttackedByPawn  Score
	ThreatMinorAttackedByMinor Score
	ThreatMajorAttackedByMinor Score
	ThreatQueenAttackedByOne   Score
	ThreatWeakPiece            Score
	ThreatPawnPush             Score
	ThreatHanging              Score

	StrongSquare Score
	Space        Score

	Tempo int
}

// newWeights returns the hand-tuned default set. Values are visually
// comparable with classical engines: pawn around 100 in the endgame.
func newWeights() *Weights {
	var w = &Weights{
		PawnValue:   S(90, 110),
		KnightValue: S(390, 370),
		BishopValue: S(410, 395),
		RookValue:   S(560, 640),
		QueenValue:  S(1180, 1230),

		PawnPST: [32]Score{
			S(0, 0), S(0, 0), S(0, 0), S(0, 0),
			S(-13, 5), S(2, 3), S(-4, 6), S(-1, 1),
			S(-15, 2), S(-8, 2), S(-2, -4), S(4, -7),
			S(-12, 8), S(-6, 3), S(5, -8), S(16, -13),
			S(-6, 15), S(3, 8), S(4, -3), S(18, -11),
			S(5, 42), S(18, 35), S(35, 18), S(38, 8),
			S(55, 80), S(42, 88), S(63, 66), S(70, 52),
			S(0, 0), S(0, 0), S(0, 0), S(0, 0),
		},
		KnightPST: [32]Score{
			S(-65, -52), S(-18, -35), S(-26, -21), S(-14, -12),
			S(-20, -28), S(-19, -12), S(-9, -17), S(-2, -5),
			S(-15, -22), S(0, -11), S(2, -4), S(8, 9),
			S(-4, -8), S(10, 2), S(12, 15), S(14, 22),
			S(8, -4), S(12, 6), S(25, 18), S(24, 26),
			S(-12, -12), S(18, -2), S(30, 12), S(44, 12),
			S(-30, -20), S(-14, -6), S(30, -12), S(24, 2),
			S(-150, -52), S(-82, -26), S(-48, -10), S(-20, -14),
		},
		BishopPST: [32]Score{
			S(-10, -24), S(4, -12), S(-4, -10), S(-10, -4),
			S(8, -22), S(12, -16), S(10, -8), S(-2, 0),
			S(2, -9), S(10, -3), S(4, 2), S(6, 7),
			S(-4, -4), S(0, 0), S(4, 8), S(16, 9),
			S(-8, 2), S(4, 6), S(10, 6), S(20, 12),
			S(-6, 4), S(12, 6), S(18, 4), S(14, 4),
			S(-26, 2), S(-16, 8), S(-6, 6), S(-14, 8),
			S(-36, -6), S(-30, 0), S(-52, 4), S(-52, 8),
		},
		RookPST: [32]Score{
			S(-14, -8), S(-8, -4), S(-2, -4), S(4, -9),
			S(-28, -6), S(-8, -12), S(-6, -8), S(0, -10),
			S(-22, -4), S(-10, -2), S(-10, -4), S(-6, -6),
			S(-18, 3), S(-8, 5), S(-14, 5), S(-6, 2),
			S(-10, 7), S(-2, 6), S(8, 6), S(10, 4),
			S(-4, 8), S(12, 6), S(14, 6), S(18, 4),
			S(4, 10), S(2, 12), S(22, 10), S(26, 8),
			S(10, 12), S(12, 12), S(2, 14), S(8, 12),
		},
		QueenPST: [32]Score{
			S(4, -40), S(2, -34), S(6, -30), S(12, -26),
			S(2, -28), S(10, -30), S(14, -24), S(12, -10),
			S(2, -16), S(10, -8), S(6, 2), S(4, 2),
			S(4, -4), S(4, 10), S(2, 14), S(-2, 26),
			S(-4, 8), S(-2, 16), S(-4, 22), S(-8, 34),
			S(-10, 4), S(2, 8), S(-4, 24), S(-6, 28),
			S(-8, 2), S(-32, 22), S(-8, 20), S(-18, 34),
			S(-10, -6), S(0, 4), S(6, 8), S(10, 10),
		},
		KingPST: [32]Score{
			S(50, -70), S(66, -44), S(32, -22), S(20, -34),
			S(46, -30), S(48, -14), S(16, 2), S(-8, 8),
			S(10, -18), S(28, 0), S(0, 14), S(-18, 24),
			S(-18, -14), S(6, 6), S(-12, 22), S(-30, 32),
			S(-12, -2), S(14, 16), S(0, 28), S(-18, 34),
			S(4, 4), S(26, 24), S(10, 30), S(-4, 28),
			S(2, -10), S(16, 16), S(10, 18), S(0, 16),
			S(-14, -50), S(12, -18), S(0, -6), S(-8, -8),
		},

		KnightMobility: [9]Score{
			S(-56, -62), S(-26, -42), S(-12, -18), S(-4, -2),
			S(4, 6), S(8, 16), S(16, 18), S(24, 18), S(32, 10),
		},
		BishopMobility: [14]Score{
			S(-42, -66), S(-22, -38), S(-8, -18), S(0, -2), S(8, 8),
			S(14, 18), S(18, 24), S(20, 28), S(22, 32), S(24, 32),
			S(28, 30), S(40, 26), S(44, 30), S(52, 18),
		},
		RookMobility: [15]Score{
			S(-34, -60), S(-20, -30), S(-10, -12), S(-8, 0), S(-6, 10),
			S(-4, 18), S(0, 24), S(6, 26), S(10, 30), S(16, 34),
			S(18, 38), S(20, 42), S(24, 44), S(32, 42), S(38, 38),
		},
		QueenMobility: [28]Score{
			S(-28, -48), S(-20, -40), S(-12, -32), S(-8, -24), S(-4, -16),
			S(0, -8), S(2, 0), S(4, 8), S(6, 14), S(8, 18),
			S(10, 22), S(12, 26), S(12, 30), S(14, 32), S(14, 36),
			S(16, 38), S(16, 42), S(18, 42), S(20, 44), S(24, 44),
			S(28, 42), S(34, 40), S(38, 38), S(42, 36), S(44, 34),
			S(46, 32), S(48, 30), S(50, 28),
		},

		PawnIsolated:  S(-11, -9),
		PawnDoubled:   S(-10, -22),
		PawnBackward:  S(-7, -8),
		PawnPhalanx: [8]Score{
			S(0, 0), S(6, 0), S(14, 6), S(18, 10),
			S(30, 24), S(48, 58), S(100, 100), S(0, 0),
		},
		PawnChain: [8]Score{
			S(0, 0), S(0, 0), S(10, 6), S(12, 8),
			S(14, 12), S(30, 30), S(80, 60), S(0, 0),
		},
		PawnProtected: S(8, 6),
		PawnWidthEg:   S(0, 4),

		PassedPawn: [8]Score{
			S(0, 0), S(-4, 12), S(-8, 16), S(-6, 40),
			S(14, 62), S(40, 120), S(100, 190), S(0, 0),
		},
		PassedFriendlyKing: [8]Score{
			S(0, 0), S(0, -2), S(0, -6), S(0, -10),
			S(0, -14), S(0, -18), S(0, -22), S(0, 0),
		},
		PassedEnemyKing: [8]Score{
			S(0, 0), S(0, 4), S(0, 10), S(0, 18),
			S(0, 26), S(0, 34), S(0, 42), S(0, 0),
		},
		PassedFree:        S(4, 22),
		PassedSafeAdvance: S(8, 18),
		PassedBlocked:     S(-8, -32),
		PassedSupported:   S(12, 14),

		KnightOutpost:         S(28, 16),
		KnightOutpostUnsupported: S(12, 8),
		BishopOutpost:         S(18, 6),
		BishopPair:            S(28, 58),
		BishopRammedPawns:     S(-8, -14),
		BishopTrapped:         S(-60, -80),
		BishopFianchetto:      S(14, 8),
		MinorBehindPawn:       S(6, 14),
		MinorKingProtector: [8]Score{
			S(8, 6), S(6, 4), S(2, 2), S(0, 0),
			S(-4, -2), S(-8, -4), S(-12, -8), S(-16, -12),
		},

		RookOpen:     S(30, 8),
		RookSemiOpen: S(14, 12),
		RookSeventh:  S(2, 22),
		RookTrapped:  S(-30, -12),

		QueenCentral: S(4, 10),
		QueenWeak:    S(-12, -6),

		KingShelter: [4][8]Score{
			{S(-4, 2), S(10, -4), S(8, 0), S(2, 2), S(-8, 4), S(-16, 2), S(-24, 0), S(0, 0)},
			{S(8, 0), S(16, -6), S(6, -2), S(-6, 2), S(-14, 4), S(-22, 2), S(-30, 0), S(0, 0)},
			{S(12, -2), S(20, -6), S(2, -2), S(-10, 0), S(-18, 2), S(-26, 0), S(-34, 0), S(0, 0)},
			{S(6, 0), S(12, -4), S(-2, -2), S(-12, 0), S(-22, 2), S(-30, 0), S(-38, 0), S(0, 0)},
		},
		KingStorm: [4][8]Score{
			{S(-6, 0), S(-14, 2), S(-22, 4), S(-16, 2), S(-8, 0), S(-4, 0), S(-2, 0), S(0, 0)},
			{S(-4, 0), S(-10, 2), S(-26, 4), S(-18, 2), S(-10, 0), S(-4, 0), S(-2, 0), S(0, 0)},
			{S(-2, 0), S(-8, 2), S(-30, 6), S(-22, 2), S(-12, 0), S(-6, 0), S(-2, 0), S(0, 0)},
			{S(-2, 0), S(-6, 2), S(-34, 6), S(-24, 4), S(-14, 2), S(-6, 0), S(-2, 0), S(0, 0)},
		},
		KingOpenFile:    S(-40, -4),
		KingSemiOpenOwn: S(-14, 8),

		SafetyAttackWeight: [PIECE_NB]int{0, 0, 20, 20, 40, 80, 0},
		SafetyWeakSquares:     18,
		SafetySafeQueenCheck:  90,
		SafetySafeRookCheck:   84,
		SafetySafeBishopCheck: 52,
		SafetySafeKnightCheck: 96,
		SafetyNoEnemyQueen:    -240,
		SafetyPinned:          14,

		ThreatMinorAttackedByPawn:  S(-60, -32),
		ThreatMinorAttackedByMinor: S(-26, -34),
		ThreatMajorAttackedByMinor: S(-32, -14),
		ThreatQueenAttackedByOne:   S(-40, -8),
		ThreatWeakPiece:            S(-20, -36),
		ThreatPawnPush:             S(12, 8),
		ThreatHanging:              S(-30, -18),

		StrongSquare: S(14, 8),
		Space:        S(2, 0),

		Tempo: 15,
	}
	return w
}
