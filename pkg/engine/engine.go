package engine

import (
	"context"
	"time"

	. "github.com/ScallyBag/fire/pkg/common"
)

type Engine struct {
	Options     Options
	evalBuilder func() IEvaluator
	timeManager TimeManager
	transTable  TransTable
	threads     []thread
	progress    func(SearchInfo)
	mainLine    mainLine
	start       time.Time
	nodes       int64
}

type thread struct {
	engine            *Engine
	evaluator         IEvaluator
	position          Position
	nodes             int64
	rootDepth         int
	selDepth          int
	excludedRootMoves []Move
	mainHistory       [2 << 12]int16
	continuationHistory [1024][1024]int16
	stack             [stackSize]struct {
		lastMove       Move
		moveList       [MaxMoves]OrderedMove
		quietsSearched [MaxMoves]Move
		pv             pv
		staticEval     int
		killer1        Move
		killer2        Move
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves    []Move
	score    int
	depth    int
	selDepth int
	nodes    int64
}

type TimeManager interface {
	IsDone() bool
	OnNodesChanged(nodes int)
	OnIterationComplete(line mainLine)
	PonderHit()
	Close()
}

type IEvaluator interface {
	Evaluate(p *Position) int
}

// IContempt is implemented by evaluators that can bias the draw score
// toward the engine's point of view.
type IContempt interface {
	SetContempt(centipawns int, whitePerspective bool)
}

type TransTable interface {
	Size() (megabytes int)
	IncDate()
	Clear()
	Migrate(megabytes int)
	Read(key uint64) (depth, score, staticEval, bound int, move Move, found bool)
	Update(key uint64, depth, score, staticEval, bound int, move Move)
}

func NewEngine(evalBuilder func() IEvaluator) *Engine {
	return &Engine{
		Options:     NewOptions(),
		evalBuilder: evalBuilder,
	}
}

func (e *Engine) Prepare() {
	if e.transTable == nil {
		e.transTable = newTransTable(e.Options.Hash)
	} else if e.transTable.Size() != e.Options.Hash {
		e.transTable.Migrate(e.Options.Hash)
	}
	if len(e.threads) != e.Options.Threads {
		e.threads = make([]thread, e.Options.Threads)
		for i := range e.threads {
			var t = &e.threads[i]
			t.engine = e
			t.evaluator = e.evalBuilder()
		}
	}
}

func (e *Engine) Search(ctx context.Context, searchParams SearchParams) SearchInfo {
	e.start = time.Now()
	e.Prepare()
	var p = &searchParams.Positions[len(searchParams.Positions)-1]
	e.timeManager = newTimeManager(ctx, e.start, searchParams.Limits, p, &e.Options)
	defer e.timeManager.Close()
	e.transTable.IncDate()
	e.nodes = 0
	e.mainLine = mainLine{}
	for i := range e.threads {
		var t = &e.threads[i]
		t.nodes = 0
		t.selDepth = 0
		t.excludedRootMoves = t.excludedRootMoves[:0]
		t.position = p.Clone()
		t.stack[0].lastMove = t.position.LastMove
		if c, ok := t.evaluator.(IContempt); ok {
			c.SetContempt(e.Options.Contempt, p.WhiteMove)
		}
	}
	e.progress = searchParams.Progress
	if e.Options.MultiPV > 1 {
		e.searchMultiPV()
	} else {
		lazySmp(e)
	}
	for i := range e.threads {
		var t = &e.threads[i]
		e.nodes += t.nodes
		t.nodes = 0
	}
	return e.currentSearchResult()
}

// PonderHit converts a pondering search into a normal timed one.
func (e *Engine) PonderHit() {
	if e.timeManager != nil {
		e.timeManager.PonderHit()
	}
}

func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	for i := range e.threads {
		var t = &e.threads[i]
		t.clearHistory()
	}
}

func (e *Engine) currentSearchResult() SearchInfo {
	return SearchInfo{
		Depth:    e.mainLine.depth,
		SelDepth: e.mainLine.selDepth,
		MultiPV:  1,
		MainLine: e.mainLine.moves,
		Score:    newUciScore(e.mainLine.score),
		Nodes:    e.nodes,
		Time:     time.Since(e.start),
	}
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}
