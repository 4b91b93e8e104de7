package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerftDepthZeroIsOne(t *testing.T) {
	require.EqualValues(t, 1, Perft(NewStartPosition(), 0))
}

func TestPerftDepthOneMatchesMoveCount(t *testing.T) {
	p := NewStartPosition()
	require.EqualValues(t, len(GenerateAll(p)), Perft(p, 1))
}

func TestPerftIsMonotonicForAFewPlies(t *testing.T) {
	p := NewStartPosition()
	var prev uint64 = 1
	for depth := 1; depth <= 3; depth++ {
		n := Perft(p, depth)
		require.GreaterOrEqual(t, n, prev)
		prev = n
	}
}

// TestPerftLoneKingExact hand-counts a trivial position: White's King
// with no Pawns on the board and Black's King never on its line of fire,
// so all 8 steps and 3 real rotations (12-1) survive MakeMove; its 4th "rotation", the null/pass
// move, leaves the board byte-for-byte unchanged (no Pawn anywhere for
// its own laser to zap on the way out), so the KO rule rejects it and
// depth-1 perft is 11, not the full move count of 12.
func TestPerftLoneKingExact(t *testing.T) {
	p := &Position{sideToMove: White}
	for i := range p.board {
		p.board[i] = Sentinel
	}
	for f := 0; f < BoardWidth; f++ {
		for r := 0; r < BoardWidth; r++ {
			p.board[NewSquare(f, r)] = EmptySquare
		}
	}
	for c := range p.pawnIndex {
		for i := range p.pawnIndex[c] {
			p.pawnIndex[c][i] = -1
		}
	}
	p.placeKing(White, NewSquare(3, 3), NN)
	p.placeKing(Black, NewSquare(7, 7), WW)

	require.EqualValues(t, 12, len(GenerateAll(p)))
	require.EqualValues(t, 11, Perft(p, 1))
}
