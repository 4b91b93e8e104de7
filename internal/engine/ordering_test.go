package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lschess/laserchess/internal/board"
)

func TestOrderMovesPutsTTMoveFirst(t *testing.T) {
	p := board.NewStartPosition()
	moves := board.GenerateAll(p)
	require.NotEmpty(t, moves)
	ttMove := moves[len(moves)/2]

	ordered := OrderMoves(p, moves, ttMove, [killerSlots]board.Move{}, NewHistoryTable(), false)
	require.Equal(t, ttMove, ordered.Critical[0])
}

func TestOrderMovesDedupesKillerAlreadyTTMove(t *testing.T) {
	p := board.NewStartPosition()
	moves := board.GenerateAll(p)
	ttMove := moves[0]
	killers := [killerSlots]board.Move{ttMove, moves[1], board.NoMove, board.NoMove}

	ordered := OrderMoves(p, moves, ttMove, killers, NewHistoryTable(), false)
	require.Equal(t, 2, len(ordered.Critical), "ttMove should not be duplicated as a killer")
}

func TestOrderMovesQuietBandSortedDescendingByHistory(t *testing.T) {
	p := board.NewStartPosition()
	moves := board.GenerateAll(p)
	require.GreaterOrEqual(t, len(moves), 3)

	hist := NewHistoryTable()
	hist.Update(p, moves[2], 4, true)
	hist.Update(p, moves[2], 4, true)

	ordered := OrderMoves(p, moves, board.NoMove, [killerSlots]board.Move{}, hist, false)
	require.NotEmpty(t, ordered.Quiet)
	require.Equal(t, moves[2], ordered.Quiet[0])
}

func TestOrderMovesDropsZeroHistoryWhenRequested(t *testing.T) {
	p := board.NewStartPosition()
	moves := board.GenerateAll(p)
	hist := NewHistoryTable()

	ordered := OrderMoves(p, moves, board.NoMove, [killerSlots]board.Move{}, hist, true)
	require.Empty(t, ordered.Quiet, "every bucket is zero, so all quiet moves should be dropped")
}

func TestKillerTableShiftsOnUpdate(t *testing.T) {
	k := NewKillerTable()
	m1 := board.NewMove(board.Pawn, board.NewSquare(1, 1), board.NewSquare(2, 1), board.RotNone)
	m2 := board.NewMove(board.Pawn, board.NewSquare(1, 2), board.NewSquare(2, 2), board.RotNone)

	k.Update(5, m1)
	k.Update(5, m2)

	slots := k.At(5)
	require.Equal(t, m2, slots[0])
	require.Equal(t, m1, slots[1])
	require.True(t, k.IsKiller(5, m1))
	require.True(t, k.IsKiller(5, m2))
}

func TestKillerTableIgnoresRepeatOfTopSlot(t *testing.T) {
	k := NewKillerTable()
	m1 := board.NewMove(board.Pawn, board.NewSquare(1, 1), board.NewSquare(2, 1), board.RotNone)

	k.Update(0, m1)
	k.Update(0, m1)

	slots := k.At(0)
	require.Equal(t, m1, slots[0])
	require.Equal(t, board.NoMove, slots[1])
}

func TestHistoryTableDecayHalvesCounts(t *testing.T) {
	h := NewHistoryTable()
	p := board.NewStartPosition()
	mv := board.GenerateAll(p)[0]

	h.Update(p, mv, 4, true)
	before := h.Score(p, mv)
	h.Decay()
	require.Equal(t, before/2, h.Score(p, mv))
}
