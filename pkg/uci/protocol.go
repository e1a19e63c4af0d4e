package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ScallyBag/fire/pkg/common"
)

type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
	PonderHit()
}

type Protocol struct {
	name     string
	author   string
	version  string
	options  []Option
	engine   Engine
	position common.Position
	done     chan struct{}
	cancel   context.CancelFunc
	reader   io.Reader
	output   io.Writer
}

func New(name, author, version string, engine Engine, options []Option) *Protocol {
	var initPosition, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	var done = make(chan struct{})
	close(done)
	return &Protocol{
		name:     name,
		author:   author,
		version:  version,
		engine:   engine,
		options:  options,
		position: initPosition,
		done:     done,
		reader:   os.Stdin,
		output:   os.Stdout,
	}
}

// Run reads commands until quit or EOF. Command errors are reported as
// info strings and never terminate the loop.
func (uci *Protocol) Run(logger *log.Logger) error {
	var g, ctx = errgroup.WithContext(context.Background())
	var commands = make(chan string)

	g.Go(func() error {
		defer close(commands)
		var scanner = bufio.NewScanner(uci.reader)
		for scanner.Scan() {
			var commandLine = scanner.Text()
			if strings.TrimSpace(commandLine) == "quit" {
				return nil
			}
			if commandLine != "" {
				select {
				case commands <- commandLine:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return scanner.Err()
	})

	g.Go(func() error {
		for commandLine := range commands {
			if err := uci.handle(commandLine); err != nil {
				uci.debug(err.Error())
				if logger != nil {
					logger.Println(err)
				}
			}
		}
		if uci.cancel != nil {
			uci.cancel()
		}
		<-uci.done
		return nil
	})

	return g.Wait()
}

func (uci *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if uci.thinking() {
		switch commandName {
		case "stop":
			uci.cancel()
			return nil
		case "ponderhit":
			uci.engine.PonderHit()
			return nil
		case "isready":
			fmt.Fprintln(uci.output, "readyok")
			return nil
		}
		return errors.New("search still run")
	}

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = uci.uciCommand
	case "setoption":
		h = uci.setOptionCommand
	case "isready":
		h = uci.isReadyCommand
	case "position":
		h = uci.positionCommand
	case "go":
		h = uci.goCommand
	case "ucinewgame":
		h = uci.uciNewGameCommand
	case "ponderhit":
		h = uci.ponderhitCommand
	case "stop":
		return nil
	}

	if h == nil {
		return errors.New("command not found")
	}

	return h(fields)
}

func (uci *Protocol) thinking() bool {
	select {
	case <-uci.done:
		return false
	default:
		return true
	}
}

func (uci *Protocol) debug(s string) {
	fmt.Fprintln(uci.output, "info string "+s)
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Fprintf(uci.output, "id name %s %s\n", uci.name, uci.version)
	fmt.Fprintf(uci.output, "id author %s\n", uci.author)
	for _, option := range uci.options {
		fmt.Fprintln(uci.output, option.UciString())
	}
	fmt.Fprintln(uci.output, "uciok")
	return nil
}

func (uci *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 2 || fields[0] != "name" {
		return errors.New("invalid setoption arguments")
	}
	var valueIndex = findIndexString(fields, "value")
	var name, value string
	if valueIndex == -1 {
		name = strings.Join(fields[1:], " ")
	} else {
		name = strings.Join(fields[1:valueIndex], " ")
		value = strings.Join(fields[valueIndex+1:], " ")
	}
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			return option.Set(value)
		}
	}
	return errors.New("unhandled option")
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	uci.engine.Prepare()
	fmt.Fprintln(uci.output, "readyok")
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	var args = fields
	if len(args) == 0 {
		return errors.New("invalid position arguments")
	}
	var token = args[0]
	var fen string
	var movesIndex = findIndexString(args, "moves")
	if token == "startpos" {
		fen = common.InitialPositionFen
	} else if token == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	} else {
		return errors.New("unknown position command")
	}
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	for _, option := range uci.options {
		if opt, ok := option.(*BoolOption); ok && opt.Name == "UCI_Chess960" {
			p.Chess960 = *opt.Value
		}
	}
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		for _, smove := range args[movesIndex+1:] {
			if !p.MakeMoveLAN(smove) {
				return errors.New("parse move failed " + smove)
			}
		}
	}
	uci.position = p
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	var limits = parseLimits(fields)
	var ctx, cancel = context.WithCancel(context.Background())
	uci.cancel = cancel
	uci.done = make(chan struct{})
	var searchParams = common.SearchParams{
		Positions: []common.Position{uci.position},
		Limits:    limits,
		Progress:  uci.printSearchInfo,
	}
	go func() {
		defer close(uci.done)
		defer cancel()
		var searchResult = uci.engine.Search(ctx, searchParams)
		uci.printSearchInfo(searchResult)
		uci.printBestMove(searchResult)
	}()
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.engine.Clear()
	return nil
}

func (uci *Protocol) ponderhitCommand(fields []string) error {
	uci.engine.PonderHit()
	return nil
}

func (uci *Protocol) printSearchInfo(si common.SearchInfo) {
	fmt.Fprintln(uci.output, searchInfoToUci(si, &uci.position))
}

func (uci *Protocol) printBestMove(si common.SearchInfo) {
	if len(si.MainLine) == 0 {
		fmt.Fprintln(uci.output, "bestmove 0000")
		return
	}
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "bestmove %v", uci.position.FormatMove(si.MainLine[0]))
	if len(si.MainLine) >= 2 {
		fmt.Fprintf(sb, " ponder %v", uci.position.FormatMove(si.MainLine[1]))
	}
	fmt.Fprintln(uci.output, sb.String())
}

func searchInfoToUci(si common.SearchInfo, p *common.Position) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.SelDepth != 0 {
		fmt.Fprintf(sb, " seldepth %v", si.SelDepth)
	}
	if si.MultiPV > 1 {
		fmt.Fprintf(sb, " multipv %v", si.MultiPV)
	}
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, timeMs, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(p.FormatMove(move))
		}
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType) {
	var intArg = func(i int) int {
		if i < len(args) {
			var v, _ = strconv.Atoi(args[i])
			return v
		}
		return 0
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "ponder":
			result.Ponder = true
		case "wtime":
			result.WhiteTime = intArg(i + 1)
			i++
		case "btime":
			result.BlackTime = intArg(i + 1)
			i++
		case "winc":
			result.WhiteIncrement = intArg(i + 1)
			i++
		case "binc":
			result.BlackIncrement = intArg(i + 1)
			i++
		case "movestogo":
			result.MovesToGo = intArg(i + 1)
			i++
		case "depth":
			result.Depth = intArg(i + 1)
			i++
		case "nodes":
			result.Nodes = intArg(i + 1)
			i++
		case "mate":
			result.Mate = intArg(i + 1)
			i++
		case "movetime":
			result.MoveTime = intArg(i + 1)
			i++
		case "infinite":
			result.Infinite = true
		}
	}
	return
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
