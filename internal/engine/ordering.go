package engine

import (
	"sort"

	"github.com/lschess/laserchess/internal/board"
)

// OrderedMoves splits a generated move list into the two bands the
// search expands in order: Critical (TT move, then up to four killers,
// duplicates suppressed) always walked serially, and Quiet (everything
// else, sorted descending by history score) eligible for young-brothers
// -wait parallel fan-out once the critical band fails to cut off.
type OrderedMoves struct {
	Critical []board.Move
	Quiet    []board.Move
}

// OrderMoves partitions and sorts moves per the move-order contract.
// dropZeroHistory mirrors the original's release-build behavior of
// pruning buckets that have never scored a cutoff.
func OrderMoves(p *board.Position, moves []board.Move, ttMove board.Move, killers [killerSlots]board.Move, hist *HistoryTable, dropZeroHistory bool) OrderedMoves {
	seen := make(map[board.Move]bool, killerSlots+1)
	var critical []board.Move

	if ttMove != board.NoMove && contains(moves, ttMove) {
		critical = append(critical, ttMove)
		seen[ttMove] = true
	}
	for _, k := range killers {
		if k == board.NoMove || seen[k] || !contains(moves, k) {
			continue
		}
		critical = append(critical, k)
		seen[k] = true
	}

	quiet := make([]board.Move, 0, len(moves))
	scores := make(map[board.Move]int, len(moves))
	for _, mv := range moves {
		if seen[mv] {
			continue
		}
		s := hist.Score(p, mv)
		if s == 0 && dropZeroHistory {
			continue
		}
		quiet = append(quiet, mv)
		scores[mv] = s
	}
	sort.SliceStable(quiet, func(i, j int) bool {
		return scores[quiet[i]] > scores[quiet[j]]
	})

	return OrderedMoves{Critical: critical, Quiet: quiet}
}

func contains(moves []board.Move, mv board.Move) bool {
	for _, m := range moves {
		if m == mv {
			return true
		}
	}
	return false
}
