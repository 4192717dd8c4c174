package position

// FromMoveSequence replays a move-sequence string (§6.1): a sequence of
// decimal digits '1'..'7', 1-indexed columns, alternating between the two
// players starting with the first. The empty string is the empty position.
//
// The position after the full sequence is returned even if it is already a
// winning position — it is the caller's responsibility to check Wins/CanWin
// before trusting the result as a non-terminal position.
func FromMoveSequence(s string) (Position, error) {
	p := Empty()
	for i, ch := range s {
		if ch < '0' || ch > '9' {
			return Position{}, ErrNotAPosition{Char: ch, Index: i}
		}
		col := int(ch-'0') - 1
		if col < 0 || col >= Width || !p.CanPlay(col) {
			return Position{}, ErrInvalidMove{Column: col, Index: i}
		}
		p = p.Play(col)
	}
	return p, nil
}
