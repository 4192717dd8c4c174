package solver

import (
	"testing"

	"github.com/kevinhuang/connect4-solver/internal/outcome"
	"github.com/kevinhuang/connect4-solver/internal/position"
)

// Scenario 1 (§8.4): the empty position is a first-player win, and the
// unique best opening move is the center column. A full strong solve of
// the empty board exhaustively fixes the exact distance and is
// computationally infeasible for this plain alpha-beta, map-backed negamax (and
// 21 is MaxScore, the absolute score-window bound of §3.2, not a distance
// — the fastest reachable win is move 7, giving a maximum score of 18, per
// §4.2), so only the sign is checked here via the cheap null-window weak
// solve; Plies is not contractually meaningful for SolveWeak (§4.3.1).
func TestSolveWeakEmptyPosition(t *testing.T) {
	s := New()
	move, visited, out := s.SolveWeak(position.Empty())
	if move != 3 {
		t.Errorf("best_move = %d, want 3", move)
	}
	if out.Kind != outcome.Win {
		t.Errorf("outcome = %s, want Win", out)
	}
	if visited <= 0 {
		t.Error("positions_visited must be > 0")
	}
}

// Scenario 2 (§8.4): a 38-ply position, four plies short of a full board,
// is a draw.
func TestSolveStrongDraw(t *testing.T) {
	p, err := position.FromMoveSequence("23163416124767223154467471272416755633")
	if err != nil {
		t.Fatalf("FromMoveSequence: %v", err)
	}
	s := New()
	_, _, out := s.SolveStrong(p)
	if out.Kind != outcome.Draw {
		t.Errorf("outcome = %s, want Draw", out)
	}
}

// Scenario 3 (§8.4): a 13-ply position is won by the player to move with
// a score greater than 5.
func TestSolveStrongWinDistance(t *testing.T) {
	p, err := position.FromMoveSequence("4444233333246")
	if err != nil {
		t.Fatalf("FromMoveSequence: %v", err)
	}
	s := New()
	_, _, out := s.SolveStrong(p)
	if out.Kind != outcome.Win {
		t.Fatalf("outcome = %s, want Win(k)", out)
	}
	if out.Plies <= 5 {
		t.Errorf("outcome = %s, want Win(k) with k > 5", out)
	}
}

// Scenario 4 (§8.4): a 24-ply position solves without error, and strong
// and weak solves agree on sign.
func TestSolveScenarioFourSignAgreement(t *testing.T) {
	p, err := position.FromMoveSequence("661444666637315414455515")
	if err != nil {
		t.Fatalf("FromMoveSequence: %v", err)
	}

	strong := New()
	_, _, strongOut := strong.SolveStrong(p)

	weak := New()
	_, _, weakOut := weak.SolveWeak(p)

	if sign(strongOut.Score()) != sign(weakOut.Score()) {
		t.Errorf("strong=%s weak=%s disagree on sign", strongOut, weakOut)
	}
}

func TestFullBoardDrawReturnsNoMove(t *testing.T) {
	p, err := position.FromMoveSequence("123456712345671234567123456712345671234567")
	if err != nil {
		t.Fatalf("FromMoveSequence: %v", err)
	}
	if !p.IsTerminal() {
		t.Skip("constructed sequence did not fill the board; layout assumption invalid")
	}
	s := New()
	move, _, out := s.SolveStrong(p)
	if move != noMove {
		t.Errorf("best_move = %d, want none (%d)", move, noMove)
	}
	if out.Kind != outcome.Draw {
		t.Errorf("outcome = %s, want Draw", out)
	}
}

func TestImmediateWinReturnsWinningColumn(t *testing.T) {
	// "343434": the vertical-four setup used in position tests (scenario 5,
	// §8.4); the current player wins by playing column 2.
	p, err := position.FromMoveSequence("343434")
	if err != nil {
		t.Fatalf("FromMoveSequence: %v", err)
	}
	if !p.Wins(2) {
		t.Fatalf("test setup invalid: position does not win on column 2")
	}
	s := New()
	move, _, out := s.SolveStrong(p)
	if move != 2 {
		t.Errorf("best_move = %d, want 2", move)
	}
	wantPlies := (position.BoardSize + 1 - p.MoveCount()) / 2
	if out.Kind != outcome.Win || out.Plies != wantPlies {
		t.Errorf("outcome = %s, want Win(%d)", out, wantPlies)
	}
}

// Mirror symmetry (§8.1): solving a position and its column-reversed
// mirror must agree on sign and magnitude, with mirrored best moves.
func TestSolveStrongMirrorSymmetry(t *testing.T) {
	p, err := position.FromMoveSequence("4453322")
	if err != nil {
		t.Fatalf("FromMoveSequence: %v", err)
	}

	s1 := New()
	move1, _, out1 := s1.SolveStrong(p)

	s2 := New()
	move2, _, out2 := s2.SolveStrong(p.Mirror())

	if out1 != out2 {
		t.Errorf("outcome = %s, mirror outcome = %s, want equal", out1, out2)
	}
	if move1 != position.Width-1-move2 {
		t.Errorf("best_move = %d, mirror best_move = %d, want mirror symmetric", move1, move2)
	}
}

func TestStrongWeakAgreeOnSign(t *testing.T) {
	p, err := position.FromMoveSequence("4444233333246")
	if err != nil {
		t.Fatalf("FromMoveSequence: %v", err)
	}

	strong := New()
	_, _, strongOut := strong.SolveStrong(p)

	weak := New()
	_, _, weakOut := weak.SolveWeak(p)

	if sign(strongOut.Score()) != sign(weakOut.Score()) {
		t.Errorf("strong=%s weak=%s disagree on sign", strongOut, weakOut)
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func TestReSolveIsDeterministic(t *testing.T) {
	p, err := position.FromMoveSequence("444423")
	if err != nil {
		t.Fatalf("FromMoveSequence: %v", err)
	}

	s1 := New()
	move1, visited1, out1 := s1.SolveStrong(p)

	s2 := New()
	move2, visited2, out2 := s2.SolveStrong(p)

	if move1 != move2 || out1 != out2 || visited1 != visited2 {
		t.Errorf("re-solve not deterministic: (%d,%d,%s) vs (%d,%d,%s)",
			move1, visited1, out1, move2, visited2, out2)
	}
}
