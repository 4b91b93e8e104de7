package board

// Zobrist hashing keys, generated once at package init time from a fixed
// seed so that keys are reproducible across runs and processes (the
// transposition table and perft regression tests depend on this).

// zobristSeed is arbitrary but fixed; changing it invalidates no saved
// state since the engine persists nothing across runs, but would change
// every Key() value, so it is never touched after this point.
const zobristSeed uint64 = 0x9E3779B97F4A7C15

// zobristPiece[color][type][orientation][square] is the XOR key for
// placing that exact piece on that square. Only Pawn and King are ever
// looked up; Empty/Invalid rows exist only to keep the indexing simple.
var zobristPiece [2][4][4][ArrSize]uint64

// zobristSideToMove is XORed into the key whenever it is Black to move.
var zobristSideToMove uint64

func init() {
	rng := newXorshift64Star(zobristSeed)
	for c := 0; c < 2; c++ {
		for t := 0; t < 4; t++ {
			for o := 0; o < 4; o++ {
				for sq := 0; sq < ArrSize; sq++ {
					zobristPiece[c][t][o][sq] = rng.next()
				}
			}
		}
	}
	zobristSideToMove = rng.next()
}

// xorshift64star is Marsaglia's xorshift64* generator: fast, fixed-seed,
// and good enough for hash-key generation (not used anywhere security
// sensitive).
type xorshift64star struct {
	state uint64
}

func newXorshift64Star(seed uint64) *xorshift64star {
	if seed == 0 {
		seed = 1
	}
	return &xorshift64star{state: seed}
}

func (x *xorshift64star) next() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 0x2545F4914F6CDD1D
}

// pieceKey looks up the Zobrist key for placing p on sq. Empty/Invalid
// pieces contribute no key.
func pieceKey(p Piece, sq Square) uint64 {
	if p.Type() != Pawn && p.Type() != King {
		return 0
	}
	return zobristPiece[p.Color()][p.Type()][p.Orientation()][sq]
}
