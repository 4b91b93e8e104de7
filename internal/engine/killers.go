package engine

import "github.com/lschess/laserchess/internal/board"

// killerSlots is the number of recently-effective cutoff moves kept per
// ply, shifted LRU-style on update.
const killerSlots = 4

// KillerTable holds, for each ply, the most recent moves that caused a
// beta cutoff, whether or not they zapped anything — a cheap stand-in
// for "this looks good here regardless of which position reaches this
// ply."
type KillerTable struct {
	moves [MaxPly][killerSlots]board.Move
}

// NewKillerTable returns an empty table.
func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

// Clear resets every slot for a new search.
func (k *KillerTable) Clear() {
	for i := range k.moves {
		for j := range k.moves[i] {
			k.moves[i][j] = board.NoMove
		}
	}
}

// At returns the killer slots recorded for ply, in most-recent-first
// order.
func (k *KillerTable) At(ply int) [killerSlots]board.Move {
	if ply < 0 || ply >= MaxPly {
		return [killerSlots]board.Move{}
	}
	return k.moves[ply]
}

// IsKiller reports whether mv occupies any slot at ply.
func (k *KillerTable) IsKiller(ply int, mv board.Move) bool {
	if ply < 0 || ply >= MaxPly {
		return false
	}
	for _, s := range k.moves[ply] {
		if s == mv {
			return true
		}
	}
	return false
}

// Update records mv as the newest killer at ply, shifting the older
// slots down and dropping the stalest one. A move already in slot 0 is
// left alone.
func (k *KillerTable) Update(ply int, mv board.Move) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	slots := &k.moves[ply]
	if slots[0] == mv {
		return
	}
	for i := killerSlots - 1; i > 0; i-- {
		slots[i] = slots[i-1]
	}
	slots[0] = mv
}
