package engine

import (
	"sync"
	"sync/atomic"

	"github.com/lschess/laserchess/internal/board"
)

// NodeType distinguishes how a searchNode's window behaves.
type NodeType uint8

const (
	NodeRoot  NodeType = iota // alpha < beta, the very first node of an iteration
	NodePV                    // alpha < beta, on the principal variation
	NodeScout                 // beta == alpha+1, a null-window probe
)

// searchNode is one frame of the recursive search. It owns its own copy
// of the position (searches never mutate a parent's board) and the
// mutable fields siblings share when young-brothers-wait fans them out
// in parallel: bestScore, bestMove, alpha, and legalMoveCount are guarded
// by mu, and abort is an atomic.Bool read without it, since more than one
// goroutine may be evaluating a sibling of this node at once. Everything else is set once at
// construction and never written again, so it needs no synchronization.
type searchNode struct {
	parent *searchNode
	typ    NodeType

	pos   *board.Position
	depth int
	ply   int

	beta int16 // fixed for the node's lifetime

	mu             sync.Mutex
	alpha          int16
	bestScore      int16
	bestMove       board.Move
	legalMoveCount int
	abort          atomic.Bool
}

func newSearchNode(parent *searchNode, typ NodeType, pos *board.Position, depth, ply int, alpha, beta int16) *searchNode {
	return &searchNode{
		parent:    parent,
		typ:       typ,
		pos:       pos,
		depth:     depth,
		ply:       ply,
		alpha:     alpha,
		beta:      beta,
		bestScore: -InfScore,
		bestMove:  board.NoMove,
	}
}

// parallelParentAborted walks the parent chain looking for an aborted
// ancestor. A worker observing one returns immediately without mutating
// any shared state, per the cancellation contract: cutoffs propagate up,
// never down.
func (n *searchNode) parallelParentAborted() bool {
	for p := n; p != nil; p = p.parent {
		if p.abort.Load() {
			return true
		}
	}
	return false
}

// tryImprove reports whether score improves this node's best score and,
// if so, records it (and the move that produced it) and, for PV nodes,
// raises alpha. Callers must not hold n.mu.
func (n *searchNode) tryImprove(score int16, mv board.Move) (improved bool, causedCutoff bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if score <= n.bestScore {
		return false, false
	}
	n.bestScore = score
	n.bestMove = mv
	if n.typ != NodeScout && score > n.alpha {
		n.alpha = score
	}
	if score >= n.beta {
		n.abort.Store(true)
		return true, true
	}
	return true, false
}

// enter records that a sibling is about to be evaluated and returns the
// current alpha, so the caller can build the child node's window without
// racing a concurrent improvement.
func (n *searchNode) enter() int16 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.legalMoveCount++
	return n.alpha
}

// currentAlpha reads alpha without recording a sibling entry, for
// quiescence's non-LMR loop where legalMoveCount bookkeeping is unused.
func (n *searchNode) currentAlpha() int16 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.alpha
}

func (n *searchNode) moveCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.legalMoveCount
}

func (n *searchNode) result() (int16, board.Move) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.bestScore, n.bestMove
}
