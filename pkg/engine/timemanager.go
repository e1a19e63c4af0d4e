package engine

import (
	"context"
	"sync"
	"time"

	. "github.com/ScallyBag/fire/pkg/common"
)

type timeManager struct {
	limits    LimitsType
	cancel    context.CancelFunc
	done      <-chan struct{}
	mu        sync.Mutex
	start     time.Time
	softLimit time.Duration
	hardLimit time.Duration
	timer     *time.Timer
	pondering bool
	lastBest  Move
}

func newTimeManager(ctx context.Context, start time.Time,
	limits LimitsType, p *Position, options *Options) *timeManager {

	var tm = &timeManager{
		start:     start,
		limits:    limits,
		pondering: limits.Ponder,
	}

	var overhead = time.Duration(options.MoveOverhead) * time.Millisecond
	if limits.MoveTime > 0 {
		tm.hardLimit = time.Duration(limits.MoveTime) * time.Millisecond
	} else if limits.WhiteTime > 0 || limits.BlackTime > 0 {
		var main, inc time.Duration
		if p.WhiteMove {
			main = time.Duration(limits.WhiteTime) * time.Millisecond
			inc = time.Duration(limits.WhiteIncrement) * time.Millisecond
		} else {
			main = time.Duration(limits.BlackTime) * time.Millisecond
			inc = time.Duration(limits.BlackIncrement) * time.Millisecond
		}
		tm.softLimit, tm.hardLimit = calcLimits(main, inc, limits.MovesToGo, overhead)
	}

	ctx, cancel := context.WithCancel(ctx)
	tm.cancel = cancel
	tm.done = ctx.Done()

	if tm.hardLimit != 0 && !tm.pondering {
		tm.armTimer()
	}
	return tm
}

func (tm *timeManager) armTimer() {
	var remaining = tm.hardLimit - time.Since(tm.start)
	tm.timer = time.AfterFunc(remaining, tm.cancel)
}

func (tm *timeManager) IsDone() bool {
	select {
	case <-tm.done:
		return true
	default:
		return false
	}
}

// PonderHit restarts the clock from the moment the pondered move was
// actually played.
func (tm *timeManager) PonderHit() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if !tm.pondering {
		return
	}
	tm.pondering = false
	tm.start = time.Now()
	if tm.hardLimit != 0 {
		tm.armTimer()
	}
}

func (tm *timeManager) OnNodesChanged(nodes int) {
	if tm.limits.Nodes > 0 && nodes >= tm.limits.Nodes {
		tm.cancel()
	}
}

func (tm *timeManager) OnIterationComplete(line mainLine) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.pondering || tm.limits.Infinite {
		return
	}
	if tm.limits.Depth != 0 && line.depth >= tm.limits.Depth {
		tm.cancel()
		return
	}
	if line.score >= winIn(line.depth-5) ||
		line.score <= lossIn(line.depth-5) {
		tm.cancel()
		return
	}
	if tm.softLimit != 0 {
		var soft = tm.softLimit
		if len(line.moves) != 0 && line.moves[0] != tm.lastBest && tm.lastBest != MoveEmpty {
			// unstable best move, grant extra time
			soft = limitDuration(2*soft, soft, tm.hardLimit)
		}
		if len(line.moves) != 0 {
			tm.lastBest = line.moves[0]
		}
		if time.Since(tm.start) >= soft {
			tm.cancel()
			return
		}
	}
}

func (tm *timeManager) Close() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.timer != nil {
		tm.timer.Stop()
	}
	tm.cancel()
}

func calcLimits(main, inc time.Duration, moves int, overhead time.Duration) (soft, hard time.Duration) {
	const (
		DefaultMovesToGo = 40
		MinTimeLimit     = 1 * time.Millisecond
	)

	main -= overhead
	if main < MinTimeLimit {
		main = MinTimeLimit
	}

	if moves == 0 {
		var ideal = main/35 + inc/2
		soft = ideal * 7 / 10
		hard = ideal * 21 / 10
	} else {
		moves = Min(moves, DefaultMovesToGo)
		soft = (main/time.Duration(moves+1) + inc) * 7 / 10
		hard = (main/time.Duration(moves+1) + inc) * 21 / 10
	}

	hard = limitDuration(hard, MinTimeLimit, main)
	soft = limitDuration(soft, MinTimeLimit, main)

	return
}

func limitDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
