package engine

import (
	"sync/atomic"

	"github.com/lschess/laserchess/internal/board"
)

// TTFlag indicates the type of bound a transposition table entry stores.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// TTEntry is a decoded transposition table slot.
type TTEntry struct {
	Move  board.Move
	Score int16
	Depth int8
	Flag  TTFlag
	Age   uint8
}

// ttSlot is one bucket of the table, readable and writable without a
// lock: Store packs (key ^ data) into check and data into data with two
// independent atomic stores; Probe loads both independently and accepts
// the read only if check^data reproduces the probed key. A writer racing
// a reader can tear the pair, but a torn pair almost never reproduces the
// key by coincidence, so the race degrades to a harmless miss rather
// than a corrupted hit.
type ttSlot struct {
	check atomic.Uint64
	data  atomic.Uint64
}

// TranspositionTable is a fixed-size, power-of-two-bucketed hash table
// shared by every search goroutine without a mutex.
type TranspositionTable struct {
	slots []ttSlot
	mask  uint64
	age   atomic.Uint32

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTranspositionTable allocates a table of roughly sizeMB megabytes.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const bytesPerSlot = 16 // two uint64 words
	numSlots := roundDownToPowerOf2(uint64(sizeMB) * 1024 * 1024 / bytesPerSlot)
	if numSlots == 0 {
		numSlots = 1
	}
	return &TranspositionTable{
		slots: make([]ttSlot, numSlots),
		mask:  numSlots - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up key. The second return is false on a miss or a torn
// read, which the caller treats identically to a miss.
func (t *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	t.probes.Add(1)
	slot := &t.slots[key&t.mask]

	data := slot.data.Load()
	check := slot.check.Load()
	if check^data != key {
		return TTEntry{}, false
	}
	t.hits.Add(1)
	return unpackTTData(data), true
}

// Store records key's result, replacing the current occupant of its
// bucket unless that occupant is from the same search generation and was
// searched strictly deeper — a shallower or stale result is never worth
// keeping over one from the current iteration.
func (t *TranspositionTable) Store(key uint64, depth int, score int16, flag TTFlag, move board.Move) {
	slot := &t.slots[key&t.mask]
	age := uint8(t.age.Load())

	if existing := slot.data.Load(); existing != 0 {
		e := unpackTTData(existing)
		if e.Age == age && int(e.Depth) > depth {
			return
		}
	}

	data := packTTData(move, score, int8(depth), flag, age)
	slot.data.Store(data)
	slot.check.Store(key ^ data)
}

// NewSearch advances the replacement generation. Entries tagged with an
// older age are always eligible for replacement regardless of depth.
func (t *TranspositionTable) NewSearch() {
	t.age.Add(1)
}

// Clear empties the table and resets its statistics.
func (t *TranspositionTable) Clear() {
	for i := range t.slots {
		t.slots[i].data.Store(0)
		t.slots[i].check.Store(0)
	}
	t.age.Store(0)
	t.hits.Store(0)
	t.probes.Store(0)
}

// HitRate returns the cache hit rate as a percentage, for logging.
func (t *TranspositionTable) HitRate() float64 {
	probes := t.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(probes) * 100
}

// Size returns the number of buckets in the table.
func (t *TranspositionTable) Size() uint64 {
	return uint64(len(t.slots))
}

const (
	ttMoveBits  = 20
	ttScoreBits = 16
	ttDepthBits = 8
	ttFlagBits  = 2

	ttMoveShift  = 0
	ttScoreShift = ttMoveShift + ttMoveBits
	ttDepthShift = ttScoreShift + ttScoreBits
	ttFlagShift  = ttDepthShift + ttDepthBits
	ttAgeShift   = ttFlagShift + ttFlagBits

	ttMoveMask  = 1<<ttMoveBits - 1
	ttScoreMask = 1<<ttScoreBits - 1
	ttDepthMask = 1<<ttDepthBits - 1
	ttFlagMask  = 1<<ttFlagBits - 1

	// scoreBias shifts a signed int16 score into an unsigned range so it
	// packs into ttScoreBits without sign-extension games.
	scoreBias = 1 << 15
)

func packTTData(move board.Move, score int16, depth int8, flag TTFlag, age uint8) uint64 {
	biased := uint64(int32(score) + scoreBias)
	return uint64(move)&ttMoveMask<<ttMoveShift |
		biased&ttScoreMask<<ttScoreShift |
		uint64(uint8(depth))&ttDepthMask<<ttDepthShift |
		uint64(flag)&ttFlagMask<<ttFlagShift |
		uint64(age)<<ttAgeShift
}

func unpackTTData(data uint64) TTEntry {
	biased := int32(data >> ttScoreShift & ttScoreMask)
	return TTEntry{
		Move:  board.Move(data >> ttMoveShift & ttMoveMask),
		Score: int16(biased - scoreBias),
		Depth: int8(data >> ttDepthShift & ttDepthMask),
		Flag:  TTFlag(data >> ttFlagShift & ttFlagMask),
		Age:   uint8(data >> ttAgeShift),
	}
}

// AdjustScoreFromTT converts a mate score stored relative to the node it
// was found at back into one relative to the current root, by adding
// back the ply distance it was normalized by on Store.
func AdjustScoreFromTT(score int16, ply int) int16 {
	switch {
	case int(score) > WinScore-MaxPly:
		return score - int16(ply)
	case int(score) < -WinScore+MaxPly:
		return score + int16(ply)
	default:
		return score
	}
}

// AdjustScoreToTT normalizes a mate score to be relative to the node
// rather than the search root, so it remains meaningful if probed again
// from a different ply.
func AdjustScoreToTT(score int16, ply int) int16 {
	switch {
	case int(score) > WinScore-MaxPly:
		return score + int16(ply)
	case int(score) < -WinScore+MaxPly:
		return score - int16(ply)
	default:
		return score
	}
}
