package board

import "math/bits"

// NextPiece returns the first occupied square strictly beyond from in
// direction dir, or NoSquare if the beam would leave the board without
// striking anything. It is O(1): rather than stepping square by square,
// it masks the relevant rank/file occupancy bitmap and reads off a
// trailing/leading zero count.
func NextPiece(p *Position, from Square, dir Orientation) Square {
	f := from.File()
	r := from.Rank()
	switch dir {
	case NN:
		bm := p.files[f] >> uint(r+1)
		if bm == 0 {
			return NoSquare
		}
		return NewSquare(f, r+1+bits.TrailingZeros8(bm))
	case SS:
		bm := p.files[f] & (1<<uint(r) - 1)
		if bm == 0 {
			return NoSquare
		}
		return NewSquare(f, bits.Len8(bm)-1)
	case EE:
		bm := p.ranks[r] >> uint(f+1)
		if bm == 0 {
			return NoSquare
		}
		return NewSquare(f+1+bits.TrailingZeros8(bm), r)
	case WW:
		bm := p.ranks[r] & (1<<uint(f) - 1)
		if bm == 0 {
			return NoSquare
		}
		return NewSquare(bits.Len8(bm)-1, r)
	default:
		return NoSquare
	}
}

// LaserStep is one leg of a fired laser: the square the beam struck and
// the direction it was traveling when it struck it.
type LaserStep struct {
	Square Square
	Dir    Orientation
}

// FireLaser traces the beam from shooter's King along its current facing
// through any number of Pawn reflections, stopping at the first piece
// that absorbs it: a Pawn struck on the back, or a King (struck from any
// side). It returns the squares of the pieces struck along the way (in
// travel order; empty squares the beam crosses are not listed)
// and reports whether the beam struck a piece at all — a beam that exits
// the board harmlessly returns ok=false.
//
// FireLaser resolves a single shot. MakeMove calls it in a loop: once the
// terminal Pawn is removed from the board, the same King may have a clear
// line further down, so the shot is retraced from scratch until it misses
// or reaches a King.
func FireLaser(p *Position, shooter Color) (path []LaserStep, victim Square, ok bool) {
	cur := p.kingLoc[shooter]
	dir := p.board[cur].Orientation()

	for {
		next := NextPiece(p, cur, dir)
		if next == NoSquare {
			return path, NoSquare, false
		}
		hit := p.board[next]
		path = append(path, LaserStep{Square: next, Dir: dir})

		switch hit.Type() {
		case King:
			return path, next, true
		case Pawn:
			out := reflect[dir][hit.Orientation()]
			if out < 0 {
				return path, next, true
			}
			dir = Orientation(out)
			cur = next
		default:
			// Unreachable: ranks/files only track King and Pawn squares.
			return path, NoSquare, false
		}
	}
}

// Step returns the square one beam-length from sq in direction dir,
// without any bounds checking — callers walk off the sentinel border
// themselves by checking PieceAt(result).Type() == Invalid.
func Step(sq Square, dir Orientation) Square {
	return Square(int(sq) + beam[dir])
}

// ReflectOff returns the outgoing beam direction when a beam traveling
// dir strikes a Pawn facing pawnOri, or a negative value if the Pawn is
// hit on its back and absorbs the beam. Exposed for callers (such as the
// evaluator) that need to walk the beam square by square rather than via
// the O(1) NextPiece jump — the most common case is counting every empty
// square the beam grazes, not just the pieces it stops on.
func ReflectOff(dir, pawnOri Orientation) int {
	return reflect[dir][pawnOri]
}

// PinnedPawns walks kingColor's King's laser and returns the squares of
// every Pawn of the *opposite* color it passes through before being
// absorbed or leaving the board. The move generator calls it with the
// opposing King to find which of the mover's own Pawns currently sit on
// that King's beam (and so are excluded from the mover's move list,
// 4.B.5). The evaluator does not call it: its PAWNPIN count comes from
// its own square-by-square laser survey.
func PinnedPawns(p *Position, kingColor Color) []Square {
	path, _, _ := FireLaser(p, kingColor)
	pinned := make([]Square, 0, len(path))
	for _, step := range path {
		piece := p.board[step.Square]
		if piece.Type() == Pawn && piece.Color() != kingColor {
			pinned = append(pinned, step.Square)
		}
	}
	return pinned
}

func isPinned(pinned []Square, sq Square) bool {
	for _, s := range pinned {
		if s == sq {
			return true
		}
	}
	return false
}
