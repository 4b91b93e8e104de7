package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lschess/laserchess/internal/board"
	"github.com/lschess/laserchess/internal/eval"
)

// referenceNegamax is a plain, unoptimized alpha-beta search used only to
// check the production search's correctness at shallow depth: full move
// width, no transposition table, no reductions, no forward pruning. Like
// the production search it bottoms out in referenceQuiescence rather than
// a flat evaluation, since the production search always does the same.
func referenceNegamax(p *board.Position, depth int, alpha, beta int16, ply int) int16 {
	if depth <= 0 {
		return referenceQuiescence(p, alpha, beta, ply)
	}

	best := int16(-InfScore)
	any := false

	for _, mv := range board.GenerateAll(p) {
		child, victims, err := board.MakeMove(p, mv)
		if err != nil {
			continue
		}
		any = true

		var score int16
		switch {
		case victims.KingZapped():
			score = WinScore - int16(ply+1)
			if victims.Zapped[len(victims.Zapped)-1].Color() == p.SideToMove() {
				score = -score
			}
		case board.GameOutcome(child) == board.DrawByRepetition:
			score = -DrawScore
			if (ply+1)%2 != 0 {
				score = DrawScore
			}
		default:
			score = -referenceNegamax(child, depth-1, -beta, -alpha, ply+1)
		}

		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}

	if !any {
		return referenceQuiescence(p, alpha, beta, ply)
	}
	return best
}

// referenceQuiescence mirrors Engine.quiescence: stand pat first, then
// expand only moves that zap at least one enemy piece, matching the
// production search's HMB stand-pat margin exactly so the two agree bit
// for bit.
func referenceQuiescence(p *board.Position, alpha, beta int16, ply int) int16 {
	standPat := eval.Evaluate(p, eval.DefaultWeights(), nil) + int16(DefaultTunables().HMB)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	mover := p.SideToMove()
	for _, mv := range board.GenerateAll(p) {
		child, victims, err := board.MakeMove(p, mv)
		if err != nil {
			continue
		}
		if !hasEnemyVictim(victims, mover) {
			continue
		}

		var score int16
		if victims.KingZapped() {
			score = WinScore - int16(ply+1)
			if victims.Zapped[len(victims.Zapped)-1].Color() == mover {
				score = -score
			}
		} else {
			score = -referenceQuiescence(child, -beta, -alpha, ply+1)
		}

		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	return alpha
}

func noPruningTunables() Tunables {
	t := DefaultTunables()
	t.FutDepth = 0          // disables both scout forward-pruning checks
	t.LMR_R1 = 1000         // effectively disables late move reductions
	t.LMR_R2 = 2000
	t.TraceMoves = true     // keeps zero-history quiet moves in the search
	t.Randomize = 0
	t.TTSizeMB = 1
	return t
}

func TestSearchMatchesReferenceNegamaxSerial(t *testing.T) {
	t.Parallel()
	p := board.NewStartPosition()

	tunables := noPruningTunables()
	tunables.DepthThreshold = 100 // force fully serial expansion

	for depth := 1; depth <= 3; depth++ {
		eng := NewEngine(tunables)
		got, _ := eng.SearchToDepth(p, depth)
		want := referenceNegamax(p, depth, -InfScore, InfScore, 0)
		require.Equal(t, want, got, "depth %d", depth)
	}
}

func TestSearchMatchesReferenceNegamaxParallel(t *testing.T) {
	t.Parallel()
	p := board.NewStartPosition()

	tunables := noPruningTunables()
	tunables.DepthThreshold = 0 // fork every scout node's quiet band

	for depth := 1; depth <= 3; depth++ {
		eng := NewEngine(tunables)
		got, _ := eng.SearchToDepth(p, depth)
		want := referenceNegamax(p, depth, -InfScore, InfScore, 0)
		require.Equal(t, want, got, "depth %d", depth)
	}
}

func TestSearchReturnsALegalMove(t *testing.T) {
	p := board.NewStartPosition()
	eng := NewEngine(noPruningTunables())

	_, mv := eng.SearchToDepth(p, 2)
	require.Contains(t, board.GenerateAll(p), mv)
}

func TestSearchRunsIterativeDeepeningAndEmitsProgress(t *testing.T) {
	p := board.NewStartPosition()
	eng := NewEngine(DefaultTunables())

	var lines []ProgressLine
	best := eng.Search(p, 50, func(pl ProgressLine) {
		lines = append(lines, pl)
	})

	require.NotEmpty(t, lines)
	require.Contains(t, board.GenerateAll(p), best)
	for i := 1; i < len(lines); i++ {
		require.Greater(t, lines[i].Depth, lines[i-1].Depth)
	}
}

func TestProgressLineStringFormat(t *testing.T) {
	pl := ProgressLine{Depth: 3, Score: 42, Nodes: 100}
	s := pl.String()
	require.Contains(t, s, "depth 3")
	require.Contains(t, s, "score 42")
	require.Contains(t, s, "nodes 100")
}

func TestSearchAtDepthOnePicksALegalMoveWithBoundedScore(t *testing.T) {
	p := board.NewStartPosition()
	eng := NewEngine(noPruningTunables())

	score, mv := eng.SearchToDepth(p, 1)
	require.Contains(t, board.GenerateAll(p), mv)
	require.Less(t, score, int16(InfScore))
	require.Greater(t, score, int16(-InfScore))
}
