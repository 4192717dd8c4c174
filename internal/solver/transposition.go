package solver

// entry is a transposition-table value: an upper bound on the score at a
// position, together with a hint at the move that produced it. It is not
// necessarily the exact score (§4.3.5) — negamax uses it only to tighten β.
type entry struct {
	move  int8
	score int8
}

// table maps a position key (§3.4) to its cached entry. One table is owned
// by exactly one Solver for the duration of one Solve call and discarded
// afterward (§5); unlike a long-lived engine transposition table (compare
// the zurichess HashTable, which fixes a power-of-two size and evicts), this
// one has no eviction policy and no fixed capacity — every distinct
// position stored during the call keeps its own entry. Nodes that return
// early (terminal, immediate win, window cutoff, fail-high) store nothing.
type table struct {
	m map[uint64]entry
}

func newTable() *table {
	return &table{m: make(map[uint64]entry)}
}

func (t *table) get(key uint64) (entry, bool) {
	e, ok := t.m[key]
	return e, ok
}

func (t *table) put(key uint64, e entry) {
	t.m[key] = e
}

// Len returns the number of distinct positions currently cached. Exposed
// for diagnostics/logging, not part of the solving algorithm.
func (t *table) Len() int {
	return len(t.m)
}
