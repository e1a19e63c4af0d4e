package engine

import (
	"sync/atomic"

	. "github.com/ScallyBag/fire/pkg/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

//20 bytes with padding
type transEntry struct {
	gate     int32
	key32    uint32
	moveDate uint32
	score    int16
	eval     int16
	depth    int8
	bound    uint8
}

func (entry *transEntry) Move() Move {
	return Move(entry.moveDate & 0x1fffff)
}

func (entry *transEntry) Date() uint16 {
	return uint16(entry.moveDate >> 21)
}

func (entry *transEntry) SetMoveAndDate(move Move, date uint16) {
	entry.moveDate = uint32(move) + uint32(date)<<21
}

type transTable struct {
	megabytes int
	entries   []transEntry
	date      uint16
	mask      uint32
}

// good test: position fen 8/k7/3p4/p2P1p2/P2P1P2/8/8/K7 w - - 0 1
// good test: position fen 8/pp6/2p5/P1P5/1P3k2/3K4/8/8 w - - 5 47
func newTransTable(megabytes int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 20)
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint32(size - 1),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) IncDate() {
	tt.date = (tt.date + 1) & 0x7ff
}

func (tt *transTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

// Migrate resizes the table, carrying over entries that survive the
// remapping so a Hash change mid-session does not start cold.
func (tt *transTable) Migrate(megabytes int) {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 20)
	var old = tt.entries
	tt.megabytes = megabytes
	tt.entries = make([]transEntry, size)
	tt.mask = uint32(size - 1)
	for i := range old {
		var entry = &old[i]
		if entry.bound == 0 {
			continue
		}
		var dst = &tt.entries[uint32(i)&tt.mask]
		if dst.bound == 0 || entry.Date() == tt.date && int(entry.depth) > int(dst.depth) {
			*dst = *entry
			dst.gate = 0
		}
	}
}

func (tt *transTable) Read(key uint64) (depth, score, staticEval, bound int, move Move, ok bool) {
	var entry = &tt.entries[uint32(key)&tt.mask]
	if atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		if entry.key32 == uint32(key>>32) {
			entry.SetMoveAndDate(entry.Move(), tt.date)
			score = int(entry.score)
			staticEval = int(entry.eval)
			move = entry.Move()
			depth = int(entry.depth)
			bound = int(entry.bound)
			ok = true
		}
		atomic.StoreInt32(&entry.gate, 0)
	}
	return
}

// An entry's replacement priority is its depth minus 8 per generation
// of age. A fresh write has priority equal to its depth.
func (tt *transTable) Update(key uint64, depth, score, staticEval, bound int, move Move) {
	var entry = &tt.entries[uint32(key)&tt.mask]
	if atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		var age = int((tt.date - entry.Date()) & 0x7ff)
		if entry.bound == 0 || depth >= int(entry.depth)-8*age {
			entry.key32 = uint32(key >> 32)
			entry.score = int16(score)
			entry.eval = int16(staticEval)
			entry.depth = int8(depth)
			entry.bound = uint8(bound)
			entry.SetMoveAndDate(move, tt.date)
		}
		atomic.StoreInt32(&entry.gate, 0)
	}
}
