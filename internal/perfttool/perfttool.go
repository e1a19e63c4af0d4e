package perfttool

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"github.com/ScallyBag/fire/pkg/common"
)

// Perft counts the leaf nodes of the legal move tree.
func Perft(p *common.Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	var result int64
	for _, mv := range p.GenerateLegalMoves() {
		if depth == 1 {
			result++
			continue
		}
		p.MakeMove(mv)
		result += Perft(p, depth-1)
		p.UnmakeMove()
	}
	return result
}

// ReferencePerft computes the same count with an independent move
// generator.
func ReferencePerft(fen string, depth int) int64 {
	var board = dragontoothmg.ParseFen(fen)
	return int64(dragontoothmg.Perft(&board, depth))
}

type divideLine struct {
	move  string
	nodes int64
}

// Divide prints per-move subtree counts next to the reference counts
// and reports the first divergence.
func Divide(w io.Writer, fen string, depth int) error {
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}

	var start = time.Now()
	var lines []divideLine
	var total int64
	for _, mv := range p.GenerateLegalMoves() {
		p.MakeMove(mv)
		var nodes = Perft(&p, depth-1)
		p.UnmakeMove()
		lines = append(lines, divideLine{move: p.FormatMove(mv), nodes: nodes})
		total += nodes
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].move < lines[j].move
	})

	var reference = referenceDivide(fen, depth)
	var diverged = false
	for _, line := range lines {
		var refNodes, found = reference[line.move]
		if found && refNodes == line.nodes {
			fmt.Fprintf(w, "%v: %v\n", line.move, line.nodes)
		} else {
			diverged = true
			fmt.Fprintf(w, "%v: %v reference: %v\n", line.move, line.nodes, refNodes)
		}
		delete(reference, line.move)
	}
	for move, refNodes := range reference {
		diverged = true
		fmt.Fprintf(w, "%v: missing reference: %v\n", move, refNodes)
	}

	fmt.Fprintf(w, "\nNodes searched: %v in %v\n", total, time.Since(start))
	if diverged {
		return fmt.Errorf("perft divergence at depth %v", depth)
	}
	return nil
}

func referenceDivide(fen string, depth int) map[string]int64 {
	var board = dragontoothmg.ParseFen(fen)
	var result = make(map[string]int64)
	for _, mv := range board.GenerateLegalMoves() {
		var unapply = board.Apply(mv)
		var nodes int64 = 1
		if depth > 1 {
			nodes = int64(dragontoothmg.Perft(&board, depth-1))
		}
		unapply()
		result[mv.String()] = nodes
	}
	return result
}
