package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lschess/laserchess/internal/board"
)

func TestTranspositionStoreThenProbeRoundTrips(t *testing.T) {
	tt := NewTranspositionTable(1)
	mv := board.NewMove(board.Pawn, board.NewSquare(2, 2), board.NewSquare(3, 2), board.RotNone)

	tt.Store(0xABCDEF, 6, 123, TTExact, mv)

	entry, ok := tt.Probe(0xABCDEF)
	require.True(t, ok)
	require.Equal(t, mv, entry.Move)
	require.EqualValues(t, 123, entry.Score)
	require.EqualValues(t, 6, entry.Depth)
	require.Equal(t, TTExact, entry.Flag)
}

func TestTranspositionProbeMissOnUnstoredKey(t *testing.T) {
	tt := NewTranspositionTable(1)
	_, ok := tt.Probe(0x1234)
	require.False(t, ok)
}

func TestTranspositionNegativeScoreRoundTrips(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(42, 3, -500, TTUpperBound, board.NoMove)

	entry, ok := tt.Probe(42)
	require.True(t, ok)
	require.EqualValues(t, -500, entry.Score)
	require.Equal(t, TTUpperBound, entry.Flag)
}

func TestTranspositionSameAgeShallowerEntryDoesNotReplaceDeeper(t *testing.T) {
	tt := NewTranspositionTable(1)
	mvDeep := board.NewMove(board.King, board.NewSquare(0, 0), board.NewSquare(1, 1), board.RotNone)
	mvShallow := board.NewMove(board.King, board.NewSquare(0, 0), board.NewSquare(1, 0), board.RotNone)

	tt.Store(7, 10, 50, TTExact, mvDeep)
	tt.Store(7, 2, 99, TTExact, mvShallow)

	entry, ok := tt.Probe(7)
	require.True(t, ok)
	require.Equal(t, mvDeep, entry.Move)
}

func TestTranspositionNewSearchAllowsShallowerReplacement(t *testing.T) {
	tt := NewTranspositionTable(1)
	mvDeep := board.NewMove(board.King, board.NewSquare(0, 0), board.NewSquare(1, 1), board.RotNone)
	mvNext := board.NewMove(board.King, board.NewSquare(0, 0), board.NewSquare(1, 0), board.RotNone)

	tt.Store(7, 10, 50, TTExact, mvDeep)
	tt.NewSearch()
	tt.Store(7, 2, 99, TTExact, mvNext)

	entry, ok := tt.Probe(7)
	require.True(t, ok)
	require.Equal(t, mvNext, entry.Move)
}

func TestTranspositionClearRemovesEverything(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(7, 4, 1, TTExact, board.NoMove)
	tt.Clear()

	_, ok := tt.Probe(7)
	require.False(t, ok)
}

func TestAdjustScoreRoundTripsAroundMateWindow(t *testing.T) {
	score := int16(WinScore - 5)
	stored := AdjustScoreToTT(score, 10)
	require.Equal(t, score, AdjustScoreFromTT(stored, 10))
}

func TestAdjustScoreLeavesNonMateScoresAlone(t *testing.T) {
	require.EqualValues(t, 123, AdjustScoreToTT(123, 7))
	require.EqualValues(t, 123, AdjustScoreFromTT(123, 7))
}

func TestRoundDownToPowerOf2(t *testing.T) {
	require.EqualValues(t, 8, roundDownToPowerOf2(15))
	require.EqualValues(t, 16, roundDownToPowerOf2(16))
	require.EqualValues(t, 0, roundDownToPowerOf2(0))
}
