package board

import "errors"

// ErrKO is returned by MakeMove when the move would recreate a position
// already on the history chain: either the position two plies back (same
// side to move) or the board of the immediately preceding position (the
// same board with the other side to move); these are two separate
// checks, not one written two ways. Rejecting it prevents the two sides from
// shuttling a laser standoff back and forth forever.
var ErrKO = errors.New("board: move rejected by the ko rule")

// LowLevelMakeMove applies m's translation/rotation to np's board. A
// rotation (m.From() == m.To()) just rewrites the piece's orientation in
// place. A translation SWAPS whatever sits on the two squares — moving
// onto an empty square is the common case, but moving onto an occupied
// square is legal too and exchanges the two pieces' positions rather than
// being rejected. It updates occupancy, Zobrist key, and piece-location
// tracking accordingly. It does not fire a laser or touch np.history.
func LowLevelMakeMove(np *Position, m Move) {
	from := m.From()
	to := m.To()
	fromPiece := np.board[from]

	if from == to {
		np.key ^= pieceKey(fromPiece, from)
		rotated := fromPiece.WithOrientation(fromPiece.Orientation().Rotate(m.Rotation()))
		np.board[from] = rotated
		np.key ^= pieceKey(rotated, from)
		return
	}

	toPiece := np.board[to]

	np.key ^= pieceKey(fromPiece, from)
	np.key ^= pieceKey(toPiece, to)
	np.board[to] = fromPiece
	np.board[from] = toPiece
	np.key ^= pieceKey(fromPiece, to)
	np.key ^= pieceKey(toPiece, from)

	if toPiece.Type() == Empty {
		np.occupy(to)
		np.vacate(from)
	}

	switch {
	case fromPiece.Type() == Pawn && toPiece.Type() == Pawn:
		if fromPiece.Color() != toPiece.Color() {
			fc, tc := fromPiece.Color(), toPiece.Color()
			i := np.pawnIndex[fc][from]
			j := np.pawnIndex[tc][to]
			np.pawnLoc[fc][i] = to
			np.pawnLoc[tc][j] = from
			np.pawnIndex[fc][from] = -1
			np.pawnIndex[fc][to] = i
			np.pawnIndex[tc][to] = -1
			np.pawnIndex[tc][from] = j
		}
		// Same-color Pawn swap: the set of squares that color occupies
		// is unchanged by the swap, so the index arrays need no update.
	case fromPiece.Type() == Pawn:
		fc := fromPiece.Color()
		i := np.pawnIndex[fc][from]
		np.pawnLoc[fc][i] = to
		np.pawnIndex[fc][from] = -1
		np.pawnIndex[fc][to] = i
	case toPiece.Type() == Pawn:
		tc := toPiece.Color()
		j := np.pawnIndex[tc][to]
		np.pawnLoc[tc][j] = from
		np.pawnIndex[tc][to] = -1
		np.pawnIndex[tc][from] = j
	}

	if fromPiece.Type() == King {
		np.kingLoc[fromPiece.Color()] = to
	}
	if toPiece.Type() == King {
		np.kingLoc[toPiece.Color()] = from
	}
}

// removeZapped deletes the piece on sq from the board, updating
// occupancy, key, and location tracking, and returns it.
func (p *Position) removeZapped(sq Square) Piece {
	piece := p.board[sq]
	p.key ^= pieceKey(piece, sq)
	p.board[sq] = EmptySquare
	p.vacate(sq)

	if piece.Type() == Pawn {
		c := piece.Color()
		idx := p.pawnIndex[c][sq]
		last := p.pawnCount[c] - 1
		lastSq := p.pawnLoc[c][last]
		p.pawnLoc[c][idx] = lastSq
		p.pawnIndex[c][lastSq] = idx
		p.pawnCount[c] = last
		p.pawnIndex[c][sq] = -1
	}
	return piece
}

// resolveLaser repeatedly fires shooter's laser and removes whatever it
// strikes. Zapping an absorbing Pawn can open a clear line to a piece
// further down the board, so the shot is retraced from the King after
// every removal; resolution stops when a shot misses or strikes a King.
func resolveLaser(np *Position, shooter Color) Victims {
	var v Victims
	for {
		_, sq, hit := FireLaser(np, shooter)
		if !hit {
			return v
		}
		zapped := np.removeZapped(sq)
		v.Zapped = append(v.Zapped, zapped)
		if zapped.Type() == King {
			return v
		}
	}
}

// MakeMove returns the Position resulting from playing m in p: the
// translation/rotation, the mover's laser resolution (which may zap
// several pieces in a chain, see Victims), and the side-to-move flip. It
// enforces the KO rule; use MakeMoveKO(p, m, false) to disable that check
// (a USE_KO=false run). If m is rejected by the KO rule, MakeMove returns
// (nil, Victims{}, ErrKO) and p is left untouched.
func MakeMove(p *Position, m Move) (*Position, Victims, error) {
	return MakeMoveKO(p, m, true)
}

// MakeMoveKO is MakeMove with the KO check made explicit: pass useKO=false
// to let a move stand even if it would revert a prior position, mirroring
// the USE_KO tunable.
func MakeMoveKO(p *Position, m Move, useKO bool) (*Position, Victims, error) {
	np := p.clone()
	LowLevelMakeMove(np, m)

	victims := resolveLaser(np, p.sideToMove)

	np.lastMove = m
	np.victims = victims
	np.ply = p.ply + 1
	np.sideToMove = p.sideToMove.Other()

	if useKO {
		// Ko: the move is rejected if it reverts the key seen one ply ago —
		// np.Key() and p.Key() each fold in side to move for their own
		// (opposite) side, so the two only coincide in the way a genuine
		// revert requires once the side-to-move word is XORed back out of
		// one of them — or two plies ago, the ordinary case of shuttling a
		// laser standoff back and forth.
		if np.Key() == p.Key()^zobristSideToMove {
			return nil, Victims{}, ErrKO
		}
		if p.history != nil && np.Key() == p.history.Key() {
			return nil, Victims{}, ErrKO
		}
	}

	return np, victims, nil
}
