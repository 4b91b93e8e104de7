package board

// The board is embedded in a 10x10 array; the one-square border is filled
// with Invalid sentinels so laser/step code never needs a boundary check.
const (
	ArrWidth   = 10
	ArrSize    = ArrWidth * ArrWidth
	BoardWidth = 8
	BoardSize  = BoardWidth * BoardWidth
	origin     = (ArrWidth - BoardWidth) / 2 // 1
)

// Square is an index into the 10x10 array.
type Square int

// NoSquare is index 0, a corner of the sentinel border. It is never an
// on-board square (those are all >= origin*ArrWidth+origin), so it can
// stand for "no square" wherever an on-board square is expected.
const NoSquare Square = 0

// NewSquare returns the Square for (file, rank) in [0, BoardWidth).
func NewSquare(file, rank int) Square {
	return Square(ArrWidth*(origin+file) + origin + rank)
}

// File returns the 0-based file of sq.
func (sq Square) File() int {
	return int(sq)/ArrWidth - origin
}

// Rank returns the 0-based rank of sq.
func (sq Square) Rank() int {
	return int(sq)%ArrWidth - origin
}

// onBoard reports whether (file, rank) both lie in [0, BoardWidth).
func onBoard(file, rank int) bool {
	return file >= 0 && file < BoardWidth && rank >= 0 && rank < BoardWidth
}

// String renders sq in "<file><rank>" form, e.g. "a0".
func (sq Square) String() string {
	f := sq.File()
	r := sq.Rank()
	return string(rune('a'+f)) + string(rune('0'+r))
}

// dir holds the eight king-step offsets in index space, ordered
// SW, W, NW, S, N, SE, E, NE (a file step is +-ArrWidth, a rank step +-1).
var dir = [8]int{
	-ArrWidth - 1, -ArrWidth, -ArrWidth + 1,
	-1, 1,
	ArrWidth - 1, ArrWidth, ArrWidth + 1,
}

// beam holds the laser step offset for each Orientation (NN, EE, SS, WW).
var beam = [4]int{1, ArrWidth, -1, -ArrWidth}

// reflect[beamDir][pawnOri] is the outgoing beam orientation when a beam
// traveling beamDir strikes a Pawn facing pawnOri. A negative entry means
// the beam struck the Pawn's back and is absorbed (the Pawn is zapped).
var reflect = [4][4]int{
	// NW  NE       SE       SW
	{-1, -1, int(EE), int(WW)}, // beam NN
	{int(NN), -1, -1, int(SS)}, // beam EE
	{int(WW), int(EE), -1, -1}, // beam SS
	{-1, int(NN), int(SS), -1}, // beam WW
}
