// Package engine implements components D and E: the shared transposition,
// killer, and history tables, and the parallel iterative-deepening
// search built on top of internal/board and internal/eval.
package engine

import "github.com/lschess/laserchess/internal/board"

// MakeMove is a thin, API-stable re-export of board.MakeMove for callers
// (a command loop) that want to apply a chosen move without importing
// internal/board directly.
func MakeMove(p *board.Position, m board.Move) (*board.Position, board.Victims, error) {
	return board.MakeMove(p, m)
}

// GenerateAll is a thin re-export of board.GenerateAll, exposed here for
// perft and command-loop callers that otherwise only touch this package.
func GenerateAll(p *board.Position) []board.Move {
	return board.GenerateAll(p)
}
