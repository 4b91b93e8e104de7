package engine

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lschess/laserchess/internal/board"
)

// NumWorkers is one worker per logical CPU, read once at package init.
var NumWorkers = runtime.GOMAXPROCS(0)

// randPool hands out a *rand.Rand per evaluate() call instead of one
// shared generator: forkJoinMoves fans evaluation across many goroutines,
// and math/rand.Rand isn't safe for concurrent use, so a single shared
// instance would need its own lock. Pooling approximates a per-worker
// PRNG without pinning a fixed slot to each of the NumWorkers goroutines
// errgroup happens to spawn, since those goroutines are per-move, not
// long-lived.
var randPool = sync.Pool{
	New: func() any {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	},
}

func acquireRand() *rand.Rand  { return randPool.Get().(*rand.Rand) }
func releaseRand(r *rand.Rand) { randPool.Put(r) }

// workerTokens bounds how many sibling searches may run at once across
// the *entire* tree, not just within one fork point: every scout node
// past DEPTH_THRESHOLD opens its own errgroup, so without a global cap
// a wide, shallow fan-out could oversubscribe far past NumWorkers.
var workerTokens = make(chan struct{}, NumWorkers)

// forkJoinMoves runs fn once per move, bounded by workerTokens, and
// blocks until every call has returned — the join half of young-
// brothers-wait. A move gets its own goroutine only while a token is
// free; otherwise fn runs inline on the calling goroutine, so a nested
// fork never waits on tokens held by its own waiting ancestors. fn
// itself is responsible for checking parallelParentAborted and
// returning early without further work once it observes a cutoff.
func forkJoinMoves(moves []board.Move, fn func(mv board.Move)) {
	var g errgroup.Group
	for _, mv := range moves {
		mv := mv
		select {
		case workerTokens <- struct{}{}:
			g.Go(func() error {
				defer func() { <-workerTokens }()
				fn(mv)
				return nil
			})
		default:
			fn(mv)
		}
	}
	_ = g.Wait()
}
