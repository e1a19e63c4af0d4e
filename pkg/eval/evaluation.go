package eval

import (
	"fmt"

	. "github.com/ScallyBag/fire/pkg/common"
)

const fiftyMoveDistance = 50

// EvaluationService is a hand-crafted tapered evaluator. Instances are
// not safe for concurrent use, each search thread owns one.
type EvaluationService struct {
	*Weights
	TraceEnabled bool
	trace        evalTrace

	contemptWhite int

	pieceCount         [SIDE_NB][PIECE_NB]int
	kingSq             [SIDE_NB]int
	attacked           [SIDE_NB]uint64
	attackedBy2        [SIDE_NB]uint64
	attackedBy         [SIDE_NB][PIECE_NB]uint64
	pinned             [SIDE_NB]uint64
	mobilityArea       [SIDE_NB]uint64
	kingAttackersCount [SIDE_NB]int
	kingAttackUnits    [SIDE_NB]int

	kingpawnTable []kingPawnEntry
	materialTable []materialEntry
	evalTable     []uint64
}

type evalTrace struct {
	Material   Score
	PawnsKings Score
	Pieces     Score
	KingSafety Score
	Threats    Score
	Passers    Score
	Space      Score
	Initiative int
	Phase      int
	Scale      int
	Total      int
}

func (t *evalTrace) String() string {
	var result = ""
	var line = func(name string, s Score) {
		result += fmt.Sprintf("%-12s %5d %5d\n", name, s.Mg(), s.Eg())
	}
	result += fmt.Sprintf("%-12s %5s %5s\n", "term", "mg", "eg")
	line("material", t.Material)
	line("pawns", t.PawnsKings)
	line("pieces", t.Pieces)
	line("king", t.KingSafety)
	line("threats", t.Threats)
	line("passers", t.Passers)
	line("space", t.Space)
	result += fmt.Sprintf("%-12s %5d\n", "initiative", t.Initiative)
	result += fmt.Sprintf("%-12s %5d\n", "phase", t.Phase)
	result += fmt.Sprintf("%-12s %5d\n", "scale", t.Scale)
	result += fmt.Sprintf("%-12s %5d\n", "total", t.Total)
	return result
}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{
		Weights:       newWeights(),
		kingpawnTable: make([]kingPawnEntry, 1<<15),
		materialTable: make([]materialEntry, 1<<12),
		evalTable:     make([]uint64, 1<<16),
	}
}

// SetContempt biases the evaluation toward the engine's side so that
// equal positions are scored as slightly unpleasant to draw.
func (e *EvaluationService) SetContempt(centipawns int, whitePerspective bool) {
	if whitePerspective {
		e.contemptWhite = centipawns
	} else {
		e.contemptWhite = -centipawns
	}
}

func (e *EvaluationService) Trace(p *Position) string {
	e.TraceEnabled = true
	defer func() { e.TraceEnabled = false }()
	e.trace = evalTrace{}
	e.trace.Total = e.Evaluate(p)
	return e.trace.String()
}

// Evaluate returns the static evaluation in centipawns from the side
// to move's point of view.
func (e *EvaluationService) Evaluate(p *Position) int {
	if p.Checkers != 0 {
		return 0
	}

	var whiteValue int
	if v, found := e.probeCache(p.Key); found && !e.TraceEnabled {
		whiteValue = v
	} else {
		whiteValue = e.evaluateCore(p)
		e.storeCache(p.Key, whiteValue)
	}

	var value = whiteValue
	if !p.WhiteMove {
		value = -value
	}
	value += e.Tempo
	if e.contemptWhite != 0 {
		if p.WhiteMove {
			value += e.contemptWhite
		} else {
			value -= e.contemptWhite
		}
	}
	const maxValue = 10000
	value = limit(value, -maxValue, maxValue)
	if p.Rule50 > fiftyMoveDistance {
		value = value * (5*(2*fiftyMoveDistance-p.Rule50) + 6) / 256
	}
	return value
}

func (e *EvaluationService) evaluateCore(p *Position) int {
	e.init(p)

	var pe = e.pawnKingEntry(p)
	var score = pe.score +
		e.PawnValue*Score(e.pieceCount[SideWhite][Pawn]-e.pieceCount[SideBlack][Pawn])

	var pieces = e.evaluatePieces(p, pe, SideWhite) - e.evaluatePieces(p, pe, SideBlack)
	var kingSafety = e.kingSafety(p, SideBlack) - e.kingSafety(p, SideWhite)
	var threats = e.threats(p, SideWhite) - e.threats(p, SideBlack)
	var passers = e.passers(p, pe, SideWhite) - e.passers(p, pe, SideBlack)
	var space = e.space(p, SideWhite) - e.space(p, SideBlack)
	score += pieces + kingSafety + threats + passers + space

	var me = e.materialEntry(p)
	if me.flags&matKXKWhite != 0 {
		var v = e.evalKXK(SideWhite)
		score += S(v, v)
	}
	if me.flags&matKXKBlack != 0 {
		var v = e.evalKXK(SideBlack)
		score += S(v, v)
	}

	var mg = score.Mg()
	var eg = score.Eg()

	var initiative = e.initiative(pe, eg)
	eg += initiative

	var strong = SideWhite
	if eg < 0 {
		strong = SideBlack
	}
	var scale = e.scaleFactor(p, strong, me.scale[strong])

	var value = (mg*me.phase + eg*(maxPhase-me.phase)*scale/scaleNormal) / maxPhase

	if e.TraceEnabled {
		e.trace.Material = e.materialScore(p)
		e.trace.PawnsKings = pe.score
		e.trace.Pieces = pieces
		e.trace.KingSafety = kingSafety
		e.trace.Threats = threats
		e.trace.Passers = passers
		e.trace.Space = space
		e.trace.Initiative = initiative
		e.trace.Phase = me.phase
		e.trace.Scale = scale
	}

	return value
}

func (e *EvaluationService) init(p *Position) {
	var occ = p.AllPieces()

	for side := SideWhite; side < SIDE_NB; side++ {
		var friendly = p.Colours(side)
		e.kingSq[side] = FirstOne(p.Kings & friendly)
		e.pieceCount[side][Pawn] = PopCount(p.Pawns & friendly)
		e.pieceCount[side][Knight] = PopCount(p.Knights & friendly)
		e.pieceCount[side][Bishop] = PopCount(p.Bishops & friendly)
		e.pieceCount[side][Rook] = PopCount(p.Rooks & friendly)
		e.pieceCount[side][Queen] = PopCount(p.Queens & friendly)
		for pt := Pawn; pt < PIECE_NB; pt++ {
			e.attackedBy[side][pt] = 0
		}
		e.kingAttackersCount[side] = 0
		e.kingAttackUnits[side] = 0
	}

	var whitePawns = p.Pawns & p.White
	var blackPawns = p.Pawns & p.Black
	e.attackedBy[SideWhite][Pawn] = AllWhitePawnAttacks(whitePawns)
	e.attackedBy[SideBlack][Pawn] = AllBlackPawnAttacks(blackPawns)
	var doublePawnAttacks = [SIDE_NB]uint64{
		UpLeft(whitePawns) & UpRight(whitePawns),
		DownLeft(blackPawns) & DownRight(blackPawns),
	}

	for side := SideWhite; side < SIDE_NB; side++ {
		var kingAtk = KingAttacks[e.kingSq[side]]
		e.attackedBy[side][King] = kingAtk
		var pawnAtk = e.attackedBy[side][Pawn]
		e.attackedBy2[side] = (kingAtk & pawnAtk) | doublePawnAttacks[side]
		e.attacked[side] = kingAtk | pawnAtk
		e.pinned[side] = e.computePinned(p, side)
	}

	var blockedWhite = whitePawns & Down(occ)
	var blockedBlack = blackPawns & Up(occ)
	e.mobilityArea[SideWhite] = ^(blockedWhite |
		(p.Kings & p.White) | e.attackedBy[SideBlack][Pawn])
	e.mobilityArea[SideBlack] = ^(blockedBlack |
		(p.Kings & p.Black) | e.attackedBy[SideWhite][Pawn])
}

func (e *EvaluationService) computePinned(p *Position, side int) uint64 {
	var ksq = e.kingSq[side]
	var friendly = p.Colours(side)
	var enemy = p.Colours(side ^ 1)
	var occ = p.AllPieces()
	var pinned = uint64(0)

	var snipers = (RookRays(ksq) & (p.Rooks | p.Queens) & enemy) |
		(BishopRays(ksq) & (p.Bishops | p.Queens) & enemy)
	for x := snipers; x != 0; x &= x - 1 {
		var sniper = FirstOne(x)
		var blockers = Between(ksq, sniper) & occ
		if onlyOne(blockers) && blockers&friendly != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

func (e *EvaluationService) evaluatePieces(p *Position, pe *kingPawnEntry, side int) Score {
	var s Score
	var enemy = side ^ 1
	var friendly = p.Colours(side)
	var occ = p.AllPieces()
	var ownPawns = p.Pawns & friendly
	var allPawns = p.Pawns
	var enemyKingArea = kingAreaMasks[enemy][e.kingSq[enemy]]

	var addAttacks = func(pt int, attacks uint64) {
		e.attackedBy2[side] |= e.attacked[side] & attacks
		e.attacked[side] |= attacks
		e.attackedBy[side][pt] |= attacks
		if attacks&enemyKingArea != 0 {
			e.kingAttackersCount[enemy]++
			e.kingAttackUnits[enemy] += e.SafetyAttackWeight[pt] *
				PopCount(attacks&enemyKingArea)
		}
	}

	var behindPawn uint64
	if side == SideWhite {
		behindPawn = Down(allPawns)
	} else {
		behindPawn = Up(allPawns)
	}

	for x := p.Knights & friendly; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var attacks = KnightAttacks[sq]
		addAttacks(Knight, attacks)

		s += e.KnightValue
		s += e.KnightPST[relativeSq32(side, sq)]
		s += e.KnightMobility[PopCount(attacks&e.mobilityArea[side])]
		s += e.MinorKingProtector[distanceBetween[sq][e.kingSq[side]]]
		if SquareMask[sq]&behindPawn != 0 {
			s += e.MinorBehindPawn
		}
		if SquareMask[sq]&outpostSquares[side] != 0 &&
			outpostSquareMasks[side][sq]&p.Pawns&p.Colours(enemy) == 0 {
			if pawnAttacksOf(enemy, sq)&ownPawns != 0 {
				s += e.KnightOutpost
			} else {
				s += e.KnightOutpostUnsupported
			}
		}
	}

	for x := p.Bishops & friendly; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var attacks = BishopAttacks(sq, occ&^(p.Queens&friendly))
		addAttacks(Bishop, attacks)

		s += e.BishopValue
		s += e.BishopPST[relativeSq32(side, sq)]
		s += e.BishopMobility[PopCount(attacks&e.mobilityArea[side])]
		s += e.MinorKingProtector[distanceBetween[sq][e.kingSq[side]]]
		if SquareMask[sq]&behindPawn != 0 {
			s += e.MinorBehindPawn
		}
		if SquareMask[sq]&outpostSquares[side] != 0 &&
			outpostSquareMasks[side][sq]&p.Pawns&p.Colours(enemy) == 0 &&
			pawnAttacksOf(enemy, sq)&ownPawns != 0 {
			s += e.BishopOutpost
		}

		var rammed uint64
		if side == SideWhite {
			rammed = ownPawns & Down(p.Pawns&p.Colours(enemy))
		} else {
			rammed = ownPawns & Up(p.Pawns&p.Colours(enemy))
		}
		s += e.BishopRammedPawns *
			Score(PopCount(rammed&sameColorSquares(sq)))

		if sq == relSquare(side, FileA, Rank7) &&
			p.Pawns&p.Colours(enemy)&SquareMask[relSquare(side, FileB, Rank6)] != 0 {
			s += e.BishopTrapped
		}
		if sq == relSquare(side, FileH, Rank7) &&
			p.Pawns&p.Colours(enemy)&SquareMask[relSquare(side, FileG, Rank6)] != 0 {
			s += e.BishopTrapped
		}

		if e.isFianchetto(p, side, sq) {
			s += e.BishopFianchetto
		}
	}
	if e.pieceCount[side][Bishop] >= 2 {
		s += e.BishopPair
	}

	for x := p.Rooks & friendly; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var attacks = RookAttacks(sq, occ&^((p.Rooks|p.Queens)&friendly))
		addAttacks(Rook, attacks)

		s += e.RookValue
		s += e.RookPST[relativeSq32(side, sq)]
		var mobility = PopCount(attacks & e.mobilityArea[side])
		s += e.RookMobility[mobility]

		if pe.halfOpen[side]&(1<<uint(File(sq))) != 0 {
			if pe.halfOpen[enemy]&(1<<uint(File(sq))) != 0 {
				s += e.RookOpen
			} else {
				s += e.RookSemiOpen
			}
		}
		if SquareMask[sq]&seventhRank[side] != 0 &&
			(SquareMask[e.kingSq[enemy]]&eighthRank[side] != 0 ||
				p.Pawns&p.Colours(enemy)&seventhRank[side] != 0) {
			s += e.RookSeventh
		}
		if mobility <= 3 &&
			relativeRankOf(side, e.kingSq[side]) == Rank1 &&
			relativeRankOf(side, sq) == Rank1 &&
			(File(e.kingSq[side]) < FileE) == (File(sq) < File(e.kingSq[side])) {
			s += e.RookTrapped
		}
	}

	for x := p.Queens & friendly; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var attacks = QueenAttacks(sq, occ)
		addAttacks(Queen, attacks)

		s += e.QueenValue
		s += e.QueenPST[relativeSq32(side, sq)]
		s += e.QueenMobility[PopCount(attacks&e.mobilityArea[side])]
		if centerDistance(sq) <= 2 {
			s += e.QueenCentral
		}
		if e.queenDiscoveredRisk(p, side, sq) {
			s += e.QueenWeak
		}
	}

	s += e.KingPST[relativeSq32(side, e.kingSq[side])]

	return s
}

func (e *EvaluationService) isFianchetto(p *Position, side, sq int) bool {
	var ksq = e.kingSq[side]
	if relativeRankOf(side, ksq) > Rank2 {
		return false
	}
	if sq == relSquare(side, FileG, Rank2) && File(ksq) >= FileF {
		return true
	}
	if sq == relSquare(side, FileB, Rank2) && File(ksq) <= FileC {
		return true
	}
	return false
}

func (e *EvaluationService) queenDiscoveredRisk(p *Position, side, sq int) bool {
	var enemy = p.Colours(side ^ 1)
	var occ = p.AllPieces()
	var snipers = (RookRays(sq) & p.Rooks & enemy) |
		(BishopRays(sq) & p.Bishops & enemy)
	for x := snipers; x != 0; x &= x - 1 {
		if onlyOne(Between(sq, FirstOne(x)) & occ) {
			return true
		}
	}
	return false
}

// kingSafety returns the penalty against side's own king.
func (e *EvaluationService) kingSafety(p *Position, side int) Score {
	var enemy = side ^ 1
	if e.kingAttackersCount[side]+e.pieceCount[enemy][Queen] < 2 {
		return 0
	}

	var ksq = e.kingSq[side]
	var occ = p.AllPieces()
	var units = e.kingAttackUnits[side]

	var weak = e.attacked[enemy] &^ e.attackedBy2[side] &
		(^e.attacked[side] | e.attackedBy[side][Queen] | e.attackedBy[side][King])
	units += e.SafetyWeakSquares * PopCount(weak&kingAreaMasks[side][ksq])

	var safe = ^p.Colours(enemy) &
		(^e.attacked[side] | (weak & e.attackedBy2[enemy]))
	var rookLines = RookAttacks(ksq, occ)
	var bishopLines = BishopAttacks(ksq, occ)
	units += e.SafetySafeKnightCheck *
		PopCount(KnightAttacks[ksq]&safe&e.attackedBy[enemy][Knight])
	units += e.SafetySafeBishopCheck *
		PopCount(bishopLines&safe&e.attackedBy[enemy][Bishop])
	units += e.SafetySafeRookCheck *
		PopCount(rookLines&safe&e.attackedBy[enemy][Rook])
	units += e.SafetySafeQueenCheck *
		PopCount((rookLines|bishopLines)&safe&e.attackedBy[enemy][Queen])

	units += e.SafetyPinned * PopCount(e.pinned[side])
	if e.pieceCount[enemy][Queen] == 0 {
		units += e.SafetyNoEnemyQueen
	}

	return safetyValue(units)
}

// threats returns penalties for side's pieces standing badly plus its
// own pawn-push pressure.
func (e *EvaluationService) threats(p *Position, side int) Score {
	var enemy = side ^ 1
	var our = p.Colours(side)
	var ourMinors = (p.Knights | p.Bishops) & our
	var ourMajors = (p.Rooks | p.Queens) & our
	var s Score

	s += e.ThreatMinorAttackedByPawn *
		Score(PopCount(ourMinors&e.attackedBy[enemy][Pawn]))
	var minorAttacks = e.attackedBy[enemy][Knight] | e.attackedBy[enemy][Bishop]
	s += e.ThreatMinorAttackedByMinor *
		Score(PopCount(ourMinors&minorAttacks))
	s += e.ThreatMajorAttackedByMinor *
		Score(PopCount(ourMajors&minorAttacks))
	s += e.ThreatQueenAttackedByOne *
		Score(PopCount(p.Queens&our&e.attacked[enemy]))

	var weak = our & e.attacked[enemy] &^ e.attacked[side]
	s += e.ThreatHanging * Score(PopCount(weak&^p.Pawns))
	s += e.ThreatWeakPiece * Score(PopCount(weak&p.Pawns))

	var occ = p.AllPieces()
	var pushes uint64
	if side == SideWhite {
		pushes = Up(p.Pawns&our) &^ occ &^ e.attackedBy[enemy][Pawn]
		s += e.ThreatPawnPush *
			Score(PopCount(AllWhitePawnAttacks(pushes)&p.Colours(enemy)&^p.Pawns))
	} else {
		pushes = Down(p.Pawns&our) &^ occ &^ e.attackedBy[enemy][Pawn]
		s += e.ThreatPawnPush *
			Score(PopCount(AllBlackPawnAttacks(pushes)&p.Colours(enemy)&^p.Pawns))
	}

	return s
}

func (e *EvaluationService) passers(p *Position, pe *kingPawnEntry, side int) Score {
	var enemy = side ^ 1
	var own = pawnsBB(p, side)
	var occ = p.AllPieces()
	var s Score

	for x := pe.passed & own; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var r = relativeRankOf(side, sq)
		s += e.PassedPawn[r]

		if r < Rank4 {
			continue
		}
		var stop = forwardSquare(side, sq)
		s += e.PassedFriendlyKing[distanceBetween[stop][e.kingSq[side]]]
		s += e.PassedEnemyKing[distanceBetween[stop][e.kingSq[enemy]]]

		if occ&SquareMask[stop] != 0 {
			s += e.PassedBlocked
		} else {
			if e.attacked[enemy]&SquareMask[stop] == 0 {
				s += e.PassedSafeAdvance
			}
			var path = forwardFileMasks[side][sq] &^ SquareMask[sq]
			if path&occ == 0 && path&e.attacked[enemy] == 0 {
				s += e.PassedFree
			}
		}
		if own&pawnAttacksOf(enemy, sq) != 0 ||
			p.Rooks&p.Colours(side)&forwardFileMasks[enemy][sq] != 0 {
			s += e.PassedSupported
		}
	}
	return s
}

var spaceArea = [SIDE_NB]uint64{
	(FileCMask | FileDMask | FileEMask | FileFMask) & (Rank2Mask | Rank3Mask | Rank4Mask),
	(FileCMask | FileDMask | FileEMask | FileFMask) & (Rank7Mask | Rank6Mask | Rank5Mask),
}

func (e *EvaluationService) space(p *Position, side int) Score {
	if e.minorForce(side) < 4 {
		return 0
	}
	var enemy = side ^ 1
	var safe = spaceArea[side] &^ pawnsBB(p, side) &^ e.attackedBy[enemy][Pawn]
	var strong = e.attackedBy[side][Pawn] & outpostSquares[side] &
		(p.Knights | p.Bishops) & p.Colours(side)
	return e.Space*Score(PopCount(safe)) + e.StrongSquare*Score(PopCount(strong))
}

// initiative nudges the endgame term toward the side with the more
// dynamic pawn structure and the more active king.
func (e *EvaluationService) initiative(pe *kingPawnEntry, eg int) int {
	if eg == 0 {
		return 0
	}
	var weakSide = SideWhite
	if eg > 0 {
		weakSide = SideBlack
	}
	var kingFileDist = absInt(File(e.kingSq[SideWhite]) - File(e.kingSq[SideBlack]))
	var kingRankDist = absInt(Rank(e.kingSq[SideWhite]) - Rank(e.kingSq[SideBlack]))
	var initiative = (2*pe.asymmetry + kingFileDist - kingRankDist +
		3*pe.pawnCount[weakSide] - 15) * 38
	var bonus = Max(initiative, -absInt(eg)/2)
	if eg > 0 {
		return bonus
	}
	return -bonus
}

func (e *EvaluationService) scaleFactor(p *Position, strong, scale int) int {
	var strongPawns = e.pieceCount[strong][Pawn]

	if e.pieceCount[SideWhite][Bishop] == 1 &&
		e.pieceCount[SideBlack][Bishop] == 1 &&
		onlyOne(p.Bishops&darkSquares) {
		if e.minorForce(SideWhite) == 1 && e.minorForce(SideBlack) == 1 {
			scale = Min(scale, 4)
		} else {
			scale = Min(scale, 12)
		}
	}

	if strongPawns > 0 {
		scale = Min(scale, 8+2*strongPawns)
	}

	if e.minorForce(strong) == 0 && strongPawns > 0 {
		var pawns = pawnsBB(p, strong)
		if pawns&^FileAMask == 0 || pawns&^FileHMask == 0 {
			var f = FileA
			if pawns&FileHMask != 0 {
				f = FileH
			}
			var corner = relSquare(strong, f, Rank8)
			if distanceBetween[e.kingSq[strong^1]][corner] <= 1 {
				scale = scaleDraw
			}
		}
	}

	return scale
}

func (e *EvaluationService) materialScore(p *Position) Score {
	var s Score
	s += e.PawnValue * Score(e.pieceCount[SideWhite][Pawn]-e.pieceCount[SideBlack][Pawn])
	s += e.KnightValue * Score(e.pieceCount[SideWhite][Knight]-e.pieceCount[SideBlack][Knight])
	s += e.BishopValue * Score(e.pieceCount[SideWhite][Bishop]-e.pieceCount[SideBlack][Bishop])
	s += e.RookValue * Score(e.pieceCount[SideWhite][Rook]-e.pieceCount[SideBlack][Rook])
	s += e.QueenValue * Score(e.pieceCount[SideWhite][Queen]-e.pieceCount[SideBlack][Queen])
	return s
}

func (e *EvaluationService) probeCache(key uint64) (int, bool) {
	var item = e.evalTable[key&uint64(len(e.evalTable)-1)]
	if item != 0 && item>>16 == key>>16 {
		return int(int16(uint16(item))), true
	}
	return 0, false
}

func (e *EvaluationService) storeCache(key uint64, value int) {
	e.evalTable[key&uint64(len(e.evalTable)-1)] =
		(key &^ 0xffff) | uint64(uint16(int16(value)))
}

func relSquare(side, file, rank int) int {
	if side == SideWhite {
		return MakeSquare(file, rank)
	}
	return MakeSquare(file, Rank8-rank)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
