package engine

import (
	"sort"
	"time"

	. "github.com/ScallyBag/fire/pkg/common"
)

// searchMultiPV runs iterative deepening on a single thread, searching
// the root again for each requested line with the previous best moves
// excluded.
func (e *Engine) searchMultiPV() {
	var t = &e.threads[0]
	var ml = e.genRootMoves()
	if len(ml) == 0 {
		return
	}
	e.mainLine = mainLine{moves: []Move{ml[0]}}
	var multiPV = Min(e.Options.MultiPV, len(ml))

	var prevScores = make([]int, multiPV)

	defer func() {
		if r := recover(); r != nil {
			if r == errSearchTimeout {
				return
			}
			panic(r)
		}
	}()

	for h := 0; h <= 2; h++ {
		t.stack[h].killer1 = MoveEmpty
		t.stack[h].killer2 = MoveEmpty
	}

	for depth := 1; depth <= maxHeight; depth++ {
		t.excludedRootMoves = t.excludedRootMoves[:0]
		var lines []mainLine
		for pvIndex := 0; pvIndex < multiPV; pvIndex++ {
			t.selDepth = 0
			var score = aspirationWindow(t, ml, depth, prevScores[pvIndex])
			var line = mainLine{
				depth:    depth,
				selDepth: t.selDepth,
				score:    score,
				moves:    t.stack[0].pv.toSlice(),
			}
			if len(line.moves) == 0 {
				break
			}
			lines = append(lines, line)
			t.excludedRootMoves = append(t.excludedRootMoves, line.moves[0])
		}
		if len(lines) == 0 {
			break
		}
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].score > lines[j].score
		})
		for i := range lines {
			prevScores[i] = lines[i].score
		}
		e.mainLine = lines[0]
		e.reportMultiPV(lines)
		e.timeManager.OnIterationComplete(e.mainLine)
		if e.timeManager.IsDone() {
			break
		}
	}
}

func (e *Engine) reportMultiPV(lines []mainLine) {
	if e.progress == nil {
		return
	}
	for i, line := range lines {
		e.progress(SearchInfo{
			Depth:    line.depth,
			SelDepth: line.selDepth,
			MultiPV:  i + 1,
			MainLine: line.moves,
			Score:    newUciScore(line.score),
			Nodes:    e.threads[0].nodes,
			Time:     time.Since(e.start),
		})
	}
}
