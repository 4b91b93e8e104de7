package board

// GenerateAll returns every pseudo-legal move for the side to move: each
// of its King's 8 adjacent steps plus all 4 in-place rotations (one of
// which, rot==RotNone with from==to, is the null/pass move), and for
// every non-pinned Pawn, its 8 adjacent steps plus its 3 nontrivial
// in-place rotations. A step onto an occupied square is not a capture —
// it swaps the two pieces (see LowLevelMakeMove) — so only off-board
// destinations are filtered out here. Whether a move actually survives
// resolution (it might zap the mover's own King) is decided by MakeMove,
// not by this function.
func GenerateAll(p *Position) []Move {
	color := p.sideToMove
	moves := make([]Move, 0, 12+7*11)

	kingSq := p.kingLoc[color]
	for _, d := range dir {
		dest := Square(int(kingSq) + d)
		if p.board[dest].Type() == Invalid {
			continue
		}
		moves = append(moves, NewMove(King, kingSq, dest, RotNone))
	}
	for rot := Rotation(0); rot < 4; rot++ {
		moves = append(moves, NewMove(King, kingSq, kingSq, rot))
	}

	pinned := PinnedPawns(p, color.Other())
	for _, sq := range p.Pawns(color) {
		if isPinned(pinned, sq) {
			continue
		}
		for _, d := range dir {
			dest := Square(int(sq) + d)
			if p.board[dest].Type() == Invalid {
				continue
			}
			moves = append(moves, NewMove(Pawn, sq, dest, RotNone))
		}
		for rot := RotRight; rot <= RotLeft; rot++ {
			moves = append(moves, NewMove(Pawn, sq, sq, rot))
		}
	}

	return moves
}
