// Package position implements the bitboard model for a Connect Four board:
// a packed 64-bit representation of both players' stones supporting O(1)
// legality checks, move application, win detection, and threat counting via
// bitwise tricks.
//
// The standard 6x7 Connect Four board is represented unambiguously using 49
// bits in the following layout (column-major, bottom row first):
//
//	 6 13 20 27 34 41 48
//	---------------------
//	| 5 12 19 26 33 40 47 |
//	| 4 11 18 25 32 39 46 |
//	| 3 10 17 24 31 38 45 |
//	| 2  9 16 23 30 37 44 |
//	| 1  8 15 22 29 36 43 |
//	| 0  7 14 21 28 35 42 |
//	---------------------
//
// Each column occupies 7 consecutive bits (Height+1); the extra bit at the
// top of each column is a sentinel that is always zero in pieces and exists
// so that shifts across column boundaries never bleed between columns.
package position

const (
	// Width is the number of columns.
	Width = 7
	// Height is the number of rows.
	Height = 6
	// BoardSize is the total number of cells.
	BoardSize = Width * Height
	// MaxScore bounds the magnitude of any signed score: the fastest
	// possible win is move 7 (ply 7, after the first player's fourth
	// stone at the very earliest), the slowest is a win on the final ply.
	MaxScore = (BoardSize + 1) / 2
)

var centerBonus = [Width]int{0, 1, 2, 3, 2, 1, 0}

// CenterBonus returns the static center-out tiebreak weight for column c,
// used by the solver's move-ordering heuristic.
func CenterBonus(c int) int { return centerBonus[c] }

var (
	bottomRowMask uint64
	boardMask     uint64
)

func init() {
	for c := 0; c < Width; c++ {
		bottomRowMask |= uint64(1) << uint(c*(Height+1))
	}
	boardMask = bottomRowMask * ((uint64(1) << Height) - 1)
}

// topMask returns a bitmask with a single 1 at the topmost legal cell of
// column c.
func topMask(c int) uint64 {
	return (uint64(1) << uint(Height-1)) << uint(c*(Height+1))
}

// bottomMask returns a bitmask with a single 1 at the bottom-most cell of
// column c.
func bottomMask(c int) uint64 {
	return uint64(1) << uint(c*(Height+1))
}

// columnMask returns a bitmask with every cell of column c set.
func columnMask(c int) uint64 {
	return ((uint64(1) << uint(Height)) - 1) << uint(c*(Height+1))
}

// Position is an immutable value carrying the occupied-cell mask, the
// current player's mask, and the number of stones played. Every
// state-changing operation returns a new Position; the receiver is never
// mutated.
type Position struct {
	pieces    uint64
	current   uint64
	moveCount int
}

// Empty returns the Position at the start of a game.
func Empty() Position {
	return Position{}
}

// MoveCount returns the number of stones already on the board.
func (p Position) MoveCount() int {
	return p.moveCount
}

// CanPlay reports whether column c still has room for a stone.
func (p Position) CanPlay(c int) bool {
	return p.pieces&topMask(c) == 0
}

// IsTerminal reports whether the board is completely full. It does not
// account for an earlier win — callers detect a win via Wins before the
// move that fills the board is made.
func (p Position) IsTerminal() bool {
	return p.moveCount == BoardSize
}

// PossibleMoves returns the playable columns, in ascending order.
func (p Position) PossibleMoves() []int {
	moves := make([]int, 0, Width)
	for c := 0; c < Width; c++ {
		if p.CanPlay(c) {
			moves = append(moves, c)
		}
	}
	return moves
}

// Play returns the Position resulting from the current player dropping a
// stone into column c. The caller must ensure CanPlay(c).
func (p Position) Play(c int) Position {
	pieces := p.pieces | (p.pieces + bottomMask(c))
	return Position{
		pieces:    pieces,
		current:   p.current ^ p.pieces,
		moveCount: p.moveCount + 1,
	}
}

// Wins reports whether playing column c would complete a 4-in-a-row for
// the current player. The caller must ensure CanPlay(c).
func (p Position) Wins(c int) bool {
	m := p.current | ((p.pieces + bottomMask(c)) & columnMask(c))
	return hasFour(m)
}

// CanWin reports whether the current player has an immediate winning move
// in any playable column.
func (p Position) CanWin() bool {
	for c := 0; c < Width; c++ {
		if p.CanPlay(c) && p.Wins(c) {
			return true
		}
	}
	return false
}

// alignmentFactors are the bit-distance shifts between adjacent cells
// along each of the four directions a 4-in-a-row can form.
var alignmentFactors = [4]int{
	1,          // vertical
	Height + 1, // horizontal
	Height + 2, // diagonal ascending (/)
	Height,     // diagonal descending (\)
}

// hasFour reports whether bitmask m contains four aligned set bits in any
// of the four directions.
func hasFour(m uint64) bool {
	for _, f := range alignmentFactors {
		x := m & (m >> uint(f))
		if x&(x>>uint(2*f)) != 0 {
			return true
		}
	}
	return false
}

// winningSquares returns the set of empty cells (relative to occupied) that
// would complete a 4-in-a-row for a player owning exactly the cells in
// playerBits. It is a branch-free kernel: for each of the four directions
// it enumerates the three possible positions of a single missing cell in
// an otherwise-complete run of four, then masks the result down to empty
// board cells.
func winningSquares(playerBits, occupied uint64) uint64 {
	var r uint64

	// Vertical.
	v := (playerBits << 1) & (playerBits << 2) & (playerBits << 3)
	r |= v

	// Horizontal.
	h := (playerBits << (Height + 1)) & (playerBits << (2 * (Height + 1)))
	r |= h & (playerBits << (3 * (Height + 1)))
	r |= h & (playerBits >> (Height + 1))
	h >>= 3 * (Height + 1)
	r |= h & (playerBits << (Height + 1))
	r |= h & (playerBits >> (3 * (Height + 1)))

	// Diagonal descending (\).
	d1 := (playerBits << Height) & (playerBits << (2 * Height))
	r |= d1 & (playerBits << (3 * Height))
	r |= d1 & (playerBits >> Height)
	d1 >>= 3 * Height
	r |= d1 & (playerBits << Height)
	r |= d1 & (playerBits >> (3 * Height))

	// Diagonal ascending (/).
	d2 := (playerBits << (Height + 2)) & (playerBits << (2 * (Height + 2)))
	r |= d2 & (playerBits << (3 * (Height + 2)))
	r |= d2 & (playerBits >> (Height + 2))
	d2 >>= 3 * (Height + 2)
	r |= d2 & (playerBits << (Height + 2))
	r |= d2 & (playerBits >> (3 * (Height + 2)))

	return r & (boardMask &^ occupied)
}

// MoveScore returns the number of distinct winning squares the current
// player would hold after playing column c: a threat-count heuristic used
// by the solver to order moves, not a final evaluation. The caller must
// ensure CanPlay(c).
func (p Position) MoveScore(c int) int {
	next := p.Play(c)
	// In next, "current" belongs to the opponent (the turn has flipped),
	// so the player who just moved owns pieces minus current.
	mover := next.pieces ^ next.current
	return popcount(winningSquares(mover, next.pieces))
}

// Key returns the 49-bit identity of the position: pieces+current. Every
// occupied cell in pieces contributes a bit; adding current places a
// second bit directly above each current-player stone, so two distinct
// (pieces, current) pairs can never collide.
func (p Position) Key() uint64 {
	return p.pieces + p.current
}

// Mirror returns the position obtained by reversing the column order. It
// is used to test the solver's mirror-symmetry property: solving a
// position and its mirror must agree on sign and magnitude, with mirrored
// best moves.
func (p Position) Mirror() Position {
	var pieces, current uint64
	for c := 0; c < Width/2; c++ {
		mc := Width - 1 - c
		shift := uint((mc - c) * (Height + 1))
		pieces |= ((p.pieces & columnMask(c)) << shift) | ((p.pieces & columnMask(mc)) >> shift)
		current |= ((p.current & columnMask(c)) << shift) | ((p.current & columnMask(mc)) >> shift)
	}
	if Width%2 == 1 {
		center := Width / 2
		pieces |= p.pieces & columnMask(center)
		current |= p.current & columnMask(center)
	}
	return Position{pieces: pieces, current: current, moveCount: p.moveCount}
}

func popcount(m uint64) int {
	count := 0
	for m != 0 {
		m &= m - 1
		count++
	}
	return count
}

// String renders the board as an ASCII grid, current player's stones as
// 'x', opponent's as 'o', top row first.
func (p Position) String() string {
	opponent := p.pieces ^ p.current
	buf := make([]byte, 0, (Width*2+1)*(Height+1))
	for r := Height - 1; r >= 0; r-- {
		for c := 0; c < Width; c++ {
			bit := uint64(1) << uint(c*(Height+1)+r)
			switch {
			case p.current&bit != 0:
				buf = append(buf, 'x', ' ')
			case opponent&bit != 0:
				buf = append(buf, 'o', ' ')
			default:
				buf = append(buf, '.', ' ')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
