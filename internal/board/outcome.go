package board

// Outcome classifies a position as either still being played or as the
// terminal state of a finished game.
type Outcome uint8

const (
	Live Outcome = iota
	WhiteWins
	BlackWins
	DrawByRepetition
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "White wins"
	case BlackWins:
		return "Black wins"
	case DrawByRepetition:
		return "Draw by repetition"
	default:
		return "Live"
	}
}

// GameOutcome classifies p. A King zapped by the move that produced p
// ends the game immediately: in its own favor if the victim was the
// opponent's King, against it if the mover's laser looped back onto its
// own King. Otherwise the position is live unless it recreates an earlier
// position with nothing captured in between, which is a draw.
func GameOutcome(p *Position) Outcome {
	if p.history == nil {
		return Live
	}
	if !p.victims.None() {
		last := p.victims.Zapped[len(p.victims.Zapped)-1]
		if last.Type() == King {
			mover := p.history.sideToMove
			if last.Color() == mover {
				return winnerOf(mover.Other())
			}
			return winnerOf(mover)
		}
	}
	if hasRepeated(p) {
		return DrawByRepetition
	}
	return Live
}

func winnerOf(c Color) Outcome {
	if c == White {
		return WhiteWins
	}
	return BlackWins
}

// hasRepeated walks the history chain two plies at a time — so each
// position compared had the same side to move as p — looking for an
// earlier position with an identical Zobrist key. It stops as soon as it
// crosses a position whose move zapped something, since a capture can
// never be part of a repeated cycle.
func hasRepeated(p *Position) bool {
	key := p.Key()
	back := p.history
	if back == nil {
		return false
	}
	back = back.history
	for back != nil {
		if !back.victims.None() {
			return false
		}
		if back.Key() == key {
			return true
		}
		if back.history == nil {
			return false
		}
		if !back.history.victims.None() {
			return false
		}
		back = back.history.history
	}
	return false
}
