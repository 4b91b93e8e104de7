package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/lschess/laserchess/internal/board"
	"github.com/lschess/laserchess/internal/eval"
)

// fmarg[depth] is the extended-futility margin: at shallow depth, a leaf
// this far below beta is assumed to stay below it and gets dropped into
// quiescence rather than fully expanded.
var fmarg = [...]int16{0, 1 * eval.PawnValue, 2 * eval.PawnValue, 3 * eval.PawnValue, 5 * eval.PawnValue}

// ProgressLine is one iterative-deepening report, handed to the caller's
// sink after each completed depth.
type ProgressLine struct {
	Depth   int
	Score   int16
	Nodes   uint64
	Elapsed time.Duration
	PV      []board.Move
}

// String renders the progress line in the conventional engine-log shape:
// "info depth D score S nodes N time T pv M1 M2 …".
func (pl ProgressLine) String() string {
	var pv strings.Builder
	for i, m := range pl.PV {
		if i > 0 {
			pv.WriteByte(' ')
		}
		pv.WriteString(m.String())
	}
	return fmt.Sprintf("info depth %d score %d nodes %d time %d pv %s",
		pl.Depth, pl.Score, pl.Nodes, pl.Elapsed.Milliseconds(), pv.String())
}

// Engine owns the process-wide shared search state: the transposition
// table, killer and history tables, and the tunable knobs read once at
// search start. One Engine can run many searches sequentially; tests
// that want isolation construct their own Engine rather than sharing a
// package-level instance.
type Engine struct {
	TT      *TranspositionTable
	Killers *KillerTable
	History *HistoryTable
	Weights eval.Weights
	Config  Tunables

	tm *TimeManager
}

// NewEngine constructs a fresh Engine from t, allocating its own
// transposition table sized per t.TTSizeMB.
func NewEngine(t Tunables) *Engine {
	return &Engine{
		TT:      NewTranspositionTable(t.TTSizeMB),
		Killers: NewKillerTable(),
		History: NewHistoryTable(),
		Weights: t.evalWeights(),
		Config:  t,
	}
}

// Search runs iterative deepening from pos until goalMs elapses (plus
// the hard 3x timeout if a single iteration overruns), emitting one
// ProgressLine per completed depth through sink, and returns the best
// move found by the deepest completed iteration.
func (e *Engine) Search(pos *board.Position, goalMs int, sink func(ProgressLine)) board.Move {
	e.TT.NewSearch()
	e.Killers.Clear()
	e.tm = NewTimeManager(time.Duration(goalMs) * time.Millisecond)

	var best board.Move
	for depth := 1; depth <= MaxPly; depth++ {
		e.History.Decay()

		root := newSearchNode(nil, NodeRoot, pos, depth, 0, -InfScore, InfScore)
		score := e.search(root)
		if e.tm.Aborted() {
			// An aborted iteration is incomplete: keep the previous depth's
			// move and emit no progress line for it.
			break
		}

		_, mv := root.result()
		if mv != board.NoMove {
			best = mv
		}

		if sink != nil {
			sink(ProgressLine{
				Depth:   depth,
				Score:   score,
				Nodes:   e.tm.Nodes(),
				Elapsed: e.tm.Elapsed(),
				PV:      e.collectPV(pos, depth),
			})
		}

		if e.tm.Aborted() || e.tm.PastGoal() {
			break
		}
	}
	return best
}

// SearchToDepth runs one fixed-depth iteration, bypassing the iterative
// -deepening time budget entirely. It exists for deterministic,
// depth-bounded analysis (tests, offline tooling) where a caller wants
// exactly depth rather than "as deep as the clock allows."
func (e *Engine) SearchToDepth(pos *board.Position, depth int) (int16, board.Move) {
	e.TT.NewSearch()
	e.Killers.Clear()
	e.tm = NewTimeManager(time.Hour)

	root := newSearchNode(nil, NodeRoot, pos, depth, 0, -InfScore, InfScore)
	score := e.search(root)
	_, mv := root.result()
	return score, mv
}

// collectPV walks the transposition table's best moves from pos down to
// maxLen plies, for the progress line's pv field. It is a diagnostic
// convenience, not part of the search proper — a TT miss or a cycle
// simply ends the line early.
func (e *Engine) collectPV(pos *board.Position, maxLen int) []board.Move {
	pv := make([]board.Move, 0, maxLen)
	cur := pos
	seen := make(map[uint64]bool, maxLen)
	for i := 0; i < maxLen; i++ {
		entry, ok := e.TT.Probe(cur.Key())
		if !ok || entry.Move == board.NoMove || seen[cur.Key()] {
			break
		}
		seen[cur.Key()] = true
		next, _, err := board.MakeMoveKO(cur, entry.Move, e.Config.UseKO)
		if err != nil {
			break
		}
		pv = append(pv, entry.Move)
		cur = next
	}
	return pv
}

// usable reports whether a probed TT entry may short-circuit a scout
// search at the given depth and beta: its stored depth must be at least
// as deep as the current search, and its bound must actually bracket a
// cutoff for the requested window.
func usable(e TTEntry, depth int, beta int16) bool {
	if int(e.Depth) < depth {
		return false
	}
	switch e.Flag {
	case TTExact:
		return true
	case TTLowerBound:
		return e.Score >= beta
	case TTUpperBound:
		return e.Score < beta
	default:
		return false
	}
}

// search is the shared recursive core for PV, scout, and root nodes; it
// dispatches to quiescence once depth drops to zero or below.
func (e *Engine) search(node *searchNode) int16 {
	if node.parallelParentAborted() {
		return 0
	}
	if e.tm.Tick(e.Config.AbortCheckPeriod) {
		return 0
	}
	if node.depth <= 0 {
		return e.quiescence(node)
	}

	ttKey := node.pos.Key()
	originalAlpha := node.alpha

	var ttMove board.Move = board.NoMove
	if e.Config.EnableTables {
		if entry, ok := e.TT.Probe(ttKey); ok {
			ttMove = entry.Move
			if node.typ == NodeScout && usable(entry, node.depth, node.beta) {
				return AdjustScoreFromTT(entry.Score, node.ply)
			}
		}
	}

	// Both of these are forward-pruning heuristics, not exact alpha-beta:
	// they trade a small risk of missing a deep refutation for pruning a
	// scout node outright. FutDepth == 0 disables both at once, which
	// reference/serial-negamax comparisons in search_test.go rely on.
	if e.Config.FutDepth > 0 && node.typ == NodeScout && node.depth <= 2 {
		standPat := e.evaluate(node.pos)
		margin := int16(3 * eval.PawnValue)
		if node.depth == 2 {
			margin = 5 * eval.PawnValue
		}
		if standPat >= node.beta+margin {
			return node.beta
		}
	}

	if e.Config.FutDepth > 0 && node.typ == NodeScout && node.depth <= e.Config.FutDepth {
		standPat := e.evaluate(node.pos)
		idx := node.depth
		if idx >= len(fmarg) {
			idx = len(fmarg) - 1
		}
		if standPat+fmarg[idx] < node.beta {
			qNode := newSearchNode(node.parent, node.typ, node.pos, 0, node.ply, node.alpha, node.beta)
			return e.quiescence(qNode)
		}
	}

	moves := board.GenerateAll(node.pos)
	killers := e.Killers.At(node.ply)
	// The root never drops zero-history moves: on a fresh history table
	// that would leave it nothing to search and no move to return.
	ordered := OrderMoves(node.pos, moves, ttMove, killers, e.History, !e.Config.TraceMoves && node.typ != NodeRoot)

	for _, mv := range ordered.Critical {
		if node.abort.Load() {
			break
		}
		e.evaluateMove(node, mv)
	}

	if !node.abort.Load() && node.depth > e.Config.DepthThreshold {
		forkJoinMoves(ordered.Quiet, func(mv board.Move) {
			if node.parallelParentAborted() {
				return
			}
			e.evaluateMove(node, mv)
		})
	} else {
		for _, mv := range ordered.Quiet {
			if node.abort.Load() {
				break
			}
			e.evaluateMove(node, mv)
		}
	}

	score, mv := node.result()
	if node.moveCount() == 0 {
		// No move was searched (each was rejected by the ko rule or dropped
		// from the quiet band for zero history): fall back to the static
		// evaluation rather than reporting a phantom mate.
		return e.evaluate(node.pos)
	}

	if e.Config.EnableTables {
		flag := TTExact
		switch {
		case score <= originalAlpha:
			flag = TTUpperBound
		case score >= node.beta:
			flag = TTLowerBound
		}
		e.TT.Store(ttKey, node.depth, AdjustScoreToTT(score, node.ply), flag, mv)
	}
	return score
}

// evaluateMove applies mv to node's position, classifies the result, and
// recurses into the child node, folding the outcome back into node's
// shared best-score/alpha state. It is the unit of work young-brothers
// -wait fans out across workers, so every shared read/write goes through
// node's own synchronized accessors.
func (e *Engine) evaluateMove(node *searchNode, mv board.Move) {
	mover := node.pos.SideToMove()
	child, victims, err := board.MakeMoveKO(node.pos, mv, e.Config.UseKO)
	if err != nil {
		// Ko: illegal, simply not explored.
		return
	}

	alpha := node.enter()

	if node.parallelParentAborted() {
		return
	}

	blunder := !victims.None() && !hasEnemyVictim(victims, mover)
	if victims.KingZapped() {
		// A zapped King ends the game: a win for mover if it was the
		// enemy King, a loss if mover's own laser looped back onto its
		// own King. Either way it is scored as a mate at child's ply.
		mateScore := WinScore - int16(node.ply+1)
		if victims.Zapped[len(victims.Zapped)-1].Color() == mover {
			mateScore = -mateScore
		}
		if _, cutoff := node.tryImprove(mateScore, mv); cutoff {
			e.onCutoff(node, mv)
		}
		return
	}

	if e.Config.DetectDraws && board.GameOutcome(child) == board.DrawByRepetition {
		// Drawn at child's ply: sign it by parity so the score still
		// prefers or avoids the draw once negated into mover's perspective
		// below, rather than pretending the result is always indifferent.
		drawScore := int16(DrawScore)
		if (node.ply+1)&1 != 0 {
			drawScore = -drawScore
		}
		if _, cutoff := node.tryImprove(-drawScore, mv); cutoff {
			e.onCutoff(node, mv)
		}
		return
	}

	capture := hasEnemyVictim(victims, mover)
	childDepth := node.depth - 1
	if capture {
		childDepth++ // capture extension
	}

	var childScore int16
	switch node.typ {
	case NodeScout:
		childScore = -e.searchReduced(node, child, mv, childDepth, alpha, capture, blunder)
	default: // PV, Root
		if node.moveCount() == 1 {
			childScore = -e.searchPV(node, child, childDepth, node.ply+1, -node.beta, -alpha)
		} else {
			s := -e.searchScout(node, child, childDepth, node.ply+1, -alpha)
			if s > alpha && s < node.beta {
				s = -e.searchPV(node, child, childDepth, node.ply+1, -node.beta, -s)
			}
			childScore = s
		}
	}

	improved, cutoff := node.tryImprove(childScore, mv)
	if cutoff {
		e.onCutoff(node, mv)
		return
	}
	if improved {
		e.History.Update(node.pos, mv, node.depth, true)
	}
}

// searchReduced applies late-move reductions for scout children: after
// the first LMR_R1 moves, a non-killer non-capture, non-blunder move is
// searched at reduced depth first, with a full-depth re-search only if
// the reduced result threatens to raise alpha.
func (e *Engine) searchReduced(node *searchNode, child *board.Position, mv board.Move, depth int, alpha int16, capture, blunder bool) int16 {
	count := node.moveCount()
	reduced := depth
	if !capture && !blunder && !e.Killers.IsKiller(node.ply, mv) {
		switch {
		case count > e.Config.LMR_R2:
			reduced = depth - 2
		case count > e.Config.LMR_R1:
			reduced = depth - 1
		}
		if reduced < 0 {
			reduced = 0
		}
	}

	score := e.searchScout(node, child, reduced, node.ply+1, -alpha)
	if reduced < depth && -score >= node.beta {
		score = e.searchScout(node, child, depth, node.ply+1, -alpha)
	}
	return score
}

func (e *Engine) onCutoff(node *searchNode, mv board.Move) {
	if !e.Killers.IsKiller(node.ply, mv) {
		e.Killers.Update(node.ply, mv)
	}
	e.History.Update(node.pos, mv, node.depth, true)
}

func hasEnemyVictim(v board.Victims, mover board.Color) bool {
	for _, p := range v.Zapped {
		if p.Color() != mover {
			return true
		}
	}
	return false
}

// searchPV recurses into a principal-variation child node.
func (e *Engine) searchPV(parent *searchNode, pos *board.Position, depth, ply int, alpha, beta int16) int16 {
	node := newSearchNode(parent, NodePV, pos, depth, ply, alpha, beta)
	return e.search(node)
}

// searchScout recurses into a null-window child node.
func (e *Engine) searchScout(parent *searchNode, pos *board.Position, depth, ply int, beta int16) int16 {
	node := newSearchNode(parent, NodeScout, pos, depth, ply, beta-1, beta)
	return e.search(node)
}

// quiescence stands pat on the static evaluation and, if that is not
// already enough to cut off, expands only capture moves (victims that
// zap at least one enemy piece) — blunders are never explored here,
// since quiescence exists to stabilize a noisy tactical position, not to
// find ways to lose material.
func (e *Engine) quiescence(node *searchNode) int16 {
	if node.parallelParentAborted() {
		return 0
	}
	if e.tm.Tick(e.Config.AbortCheckPeriod) {
		return 0
	}

	standPat := e.evaluate(node.pos) + int16(e.Config.HMB)
	if standPat >= node.beta {
		return node.beta
	}
	node.tryImprove(standPat, board.NoMove)

	mover := node.pos.SideToMove()
	for _, mv := range board.GenerateAll(node.pos) {
		if node.abort.Load() {
			break
		}
		child, victims, err := board.MakeMoveKO(node.pos, mv, e.Config.UseKO)
		if err != nil {
			continue
		}
		if !hasEnemyVictim(victims, mover) {
			continue
		}

		alpha := node.currentAlpha()
		var score int16
		if victims.KingZapped() {
			score = WinScore - int16(node.ply+1)
			if victims.Zapped[len(victims.Zapped)-1].Color() == mover {
				score = -score
			}
		} else {
			qnode := newSearchNode(node, node.typ, child, 0, node.ply+1, -node.beta, -alpha)
			score = -e.search(qnode)
		}
		node.tryImprove(score, mv)
	}

	score, _ := node.result()
	return score
}

// evaluate wraps eval.Evaluate with the engine's configured weights. When
// RANDOMIZE is nonzero, each call draws from a pooled *rand.Rand rather
// than a single shared one, so workers fanned out by forkJoinMoves never
// contend on an rng lock (see DESIGN.md).
func (e *Engine) evaluate(pos *board.Position) int16 {
	rng := acquireRand()
	defer releaseRand(rng)
	return eval.Evaluate(pos, e.Weights, rng)
}
