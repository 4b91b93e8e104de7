package board

import "fmt"

// Rotation is the change in orientation a move applies to the moved piece,
// independent of any translation. A Pawn or King rotates only in place
// (from == to): GenerateAll never gives a step a rotation, and
// LowLevelMakeMove ignores the rotation of a move with from != to.
type Rotation uint8

const (
	RotNone  Rotation = iota // no change in orientation
	RotRight                 // +90 degrees clockwise
	RotUTurn                 // +180 degrees
	RotLeft                  // +270 degrees clockwise (-90)
)

func (r Rotation) String() string {
	switch r {
	case RotNone:
		return "0"
	case RotRight:
		return "R"
	case RotUTurn:
		return "U"
	case RotLeft:
		return "L"
	default:
		return "?"
	}
}

// Move packs a piece type, rotation, origin and destination square into a
// single value:
//
//	bits 0-1:   rotation
//	bits 2-3:   piece type (board.Pawn or board.King)
//	bits 4-11:  from square
//	bits 12-19: to square
type Move uint32

const (
	moveRotShift  = 0
	moveTypeShift = 2
	moveFromShift = 4
	moveToShift   = 12
	moveSqMask    = 0xff
)

// NewMove packs a move. A null move (King rotated NN with from==to) is
// encoded by passing from==to and rot==RotNone.
func NewMove(t Type, from, to Square, rot Rotation) Move {
	return Move(rot)<<moveRotShift |
		Move(t)<<moveTypeShift |
		Move(from&moveSqMask)<<moveFromShift |
		Move(to&moveSqMask)<<moveToShift
}

// NullMove is the pass move: a King "rotating" by zero in place. The move
// generator always offers it; MakeMove's KO check rejects it whenever the
// mover's laser zaps nothing, since the board is then unchanged.
func NullMove(kingSquare Square) Move {
	return NewMove(King, kingSquare, kingSquare, RotNone)
}

// NoMove is the zero Move value. Since every real move's from/to squares
// lie on the board (never NoSquare), no move generator ever produces it,
// making it a safe sentinel for "no move recorded here" in the
// transposition, killer, and history tables.
const NoMove Move = 0

// Rotation returns the rotation packed into m.
func (m Move) Rotation() Rotation {
	return Rotation(m >> moveRotShift & 0x3)
}

// PieceType returns the type of the piece being moved.
func (m Move) PieceType() Type {
	return Type(m >> moveTypeShift & 0x3)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m >> moveFromShift & moveSqMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> moveToShift & moveSqMask)
}

// IsRotation reports whether m rotates the piece in place without moving it.
func (m Move) IsRotation() bool {
	return m.From() == m.To()
}

func (m Move) String() string {
	if m.IsRotation() {
		return fmt.Sprintf("%s%s", m.From(), m.Rotation())
	}
	return fmt.Sprintf("%s%s%s", m.From(), m.To(), m.Rotation())
}
