package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// soloKingPosition builds a position with nothing but c's King at sq
// facing o: no Pawn can ever be in the laser's path, so its shot always
// exits the board clean.
func soloKingPosition(c Color, sq Square, o Orientation) *Position {
	p := &Position{sideToMove: c}
	for i := range p.board {
		p.board[i] = Sentinel
	}
	for f := 0; f < BoardWidth; f++ {
		for r := 0; r < BoardWidth; r++ {
			p.board[NewSquare(f, r)] = EmptySquare
		}
	}
	for col := range p.pawnIndex {
		for i := range p.pawnIndex[col] {
			p.pawnIndex[col][i] = -1
		}
	}
	p.placeKing(c, sq, o)
	return p
}

// recomputeKey folds pieceKey over every square from scratch, independent
// of the incremental XOR bookkeeping MakeMove/LowLevelMakeMove perform.
func recomputeKey(p *Position) uint64 {
	var key uint64
	for sq := 0; sq < ArrSize; sq++ {
		key ^= pieceKey(p.board[sq], Square(sq))
	}
	return key
}

func TestMakeMoveRejectsSinglePlyKoRevert(t *testing.T) {
	sq := NewSquare(4, 4)
	p := soloKingPosition(White, sq, EE)

	_, _, err := MakeMove(p, NullMove(sq))
	require.ErrorIs(t, err, ErrKO)
}

func TestMakeMoveRejectsTwoPlyKoRevert(t *testing.T) {
	sq := NewSquare(4, 4)
	p0 := soloKingPosition(White, sq, EE)
	// Black needs a King to fire from; facing SS from rank 0 its shot
	// leaves the board at once.
	p0.placeKing(Black, NewSquare(0, 0), SS)

	p1, _, err := MakeMove(p0, NewMove(King, sq, sq, RotRight))
	require.NoError(t, err)
	require.Equal(t, Black, p1.SideToMove())

	_, _, err = MakeMove(p1, NewMove(King, sq, sq, RotLeft))
	require.ErrorIs(t, err, ErrKO)
}

func TestMakeMoveDoesNotMutateParent(t *testing.T) {
	p := NewStartPosition()
	beforeBoard := p.board
	beforeKey := p.key

	var moved bool
	for _, m := range GenerateAll(p) {
		_, _, err := MakeMove(p, m)
		if err != nil {
			continue
		}
		moved = true
		break
	}
	require.True(t, moved, "expected at least one legal move from the start position")

	require.Equal(t, beforeBoard, p.board)
	require.Equal(t, beforeKey, p.key)
}

func TestKeyMatchesFromScratchZobristRecomputation(t *testing.T) {
	p := NewStartPosition()
	require.Equal(t, recomputeKey(p), p.key)

	var checked bool
	for _, m := range GenerateAll(p) {
		np, _, err := MakeMove(p, m)
		if err != nil {
			continue
		}
		require.Equal(t, recomputeKey(np), np.key)
		checked = true
		break
	}
	require.True(t, checked, "expected at least one legal move from the start position")
}

func TestMakeMoveKODisabledAllowsRevert(t *testing.T) {
	sq := NewSquare(4, 4)
	p := soloKingPosition(White, sq, EE)

	np, _, err := MakeMoveKO(p, NullMove(sq), false)
	require.NoError(t, err)
	require.Equal(t, Black, np.SideToMove())
}
