package board

// Victims lists the pieces a move's laser zapped, in the order the beam
// found them. A single shot can zap more than one piece: once it absorbs
// a Pawn struck on the back, resolution restarts from the King and may
// reach further down the board through the gap that Pawn left behind.
// Resolution stops the instant a King is zapped or the beam exits the
// board without hitting anything.
type Victims struct {
	Zapped []Piece
}

// None reports whether the laser zapped nothing at all.
func (v Victims) None() bool {
	return len(v.Zapped) == 0
}

// KingZapped reports whether the last victim zapped was a King, i.e. the
// move ended the game.
func (v Victims) KingZapped() bool {
	return len(v.Zapped) > 0 && v.Zapped[len(v.Zapped)-1].Type() == King
}
