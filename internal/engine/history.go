package engine

import "github.com/lschess/laserchess/internal/board"

// historyDecayThreshold bounds a bucket's magnitude before the whole
// table is scaled down, the same overflow guard a move-ordering history
// array conventionally applies.
const historyDecayThreshold = 400000

// HistoryTable is the best-move-history heuristic: a counter per
// (color, moved piece type, destination, destination orientation)
// raised whenever a quiet move at that bucket causes a cutoff, and
// periodically halved so stale bias fades. It is the sort key for the
// quiet band of move ordering; below the root, moves whose bucket is
// still zero are dropped from search unless TRACE_MOVES is set (see
// search.go).
type HistoryTable struct {
	counts [2][4][board.ArrSize][4]int
}

// NewHistoryTable returns an empty table.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

// Decay halves every bucket, called once per iterative-deepening
// iteration rather than cleared outright so ordering stays informed by
// the previous depth's search.
func (h *HistoryTable) Decay() {
	for c := range h.counts {
		for t := range h.counts[c] {
			for sq := range h.counts[c][t] {
				for o := range h.counts[c][t][sq] {
					h.counts[c][t][sq][o] /= 2
				}
			}
		}
	}
}

func bucket(p *board.Position, mv board.Move) (color, pieceType, sq, orientation int) {
	moved := p.PieceAt(mv.From())
	return int(p.SideToMove()), int(moved.Type()), int(mv.To()), int(moved.Orientation().Rotate(mv.Rotation()))
}

// Score returns mv's current history bucket, used as the quiet-band sort
// key.
func (h *HistoryTable) Score(p *board.Position, mv board.Move) int {
	c, t, sq, o := bucket(p, mv)
	return h.counts[c][t][sq][o]
}

// Update raises or lowers mv's bucket by depth^2. A raised bucket past
// historyDecayThreshold halves the whole table; a lowered one is clamped
// at -historyDecayThreshold.
func (h *HistoryTable) Update(p *board.Position, mv board.Move, depth int, good bool) {
	c, t, sq, o := bucket(p, mv)
	bonus := depth * depth

	if good {
		h.counts[c][t][sq][o] += bonus
		if h.counts[c][t][sq][o] > historyDecayThreshold {
			h.Decay()
		}
		return
	}
	h.counts[c][t][sq][o] -= bonus
	if h.counts[c][t][sq][o] < -historyDecayThreshold {
		h.counts[c][t][sq][o] = -historyDecayThreshold
	}
}
