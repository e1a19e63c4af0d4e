package testsuite

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ScallyBag/fire/pkg/common"
)

type EpdItem struct {
	content   string
	position  common.Position
	bestMoves []common.Move
}

// LoadEpd reads an EPD test file with "bm" opcodes. Lines that fail to
// parse are logged and skipped.
func LoadEpd(filePath string) ([]EpdItem, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var result []EpdItem
	var scanner = bufio.NewScanner(file)
	for scanner.Scan() {
		var line = scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var test, err = parseEpdTest(line)
		if err != nil {
			log.Println(err)
			continue
		}
		result = append(result, test)
	}
	return result, scanner.Err()
}

func parseEpdTest(s string) (EpdItem, error) {
	var bmBegin = strings.Index(s, "bm")
	var bmEnd = strings.Index(s, ";")
	if bmBegin == -1 || bmEnd == -1 || bmEnd < bmBegin {
		return EpdItem{}, fmt.Errorf("bad epd line %v", s)
	}
	var fen = strings.TrimSpace(s[:bmBegin])
	var sBestMoves = strings.Split(s[bmBegin:bmEnd], " ")[1:]

	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return EpdItem{}, err
	}

	var bestMoves []common.Move
	for _, sBestMove := range sBestMoves {
		var move = common.ParseMoveSAN(&p, sBestMove)
		if move == common.MoveEmpty {
			return EpdItem{}, fmt.Errorf("parse move failed %v", s)
		}
		bestMoves = append(bestMoves, move)
	}
	if len(bestMoves) == 0 {
		return EpdItem{}, fmt.Errorf("empty best moves %v", s)
	}

	return EpdItem{
		content:   s,
		position:  p,
		bestMoves: bestMoves,
	}, nil
}
