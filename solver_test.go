package ltlfdfa

import "testing"

func TestSolveRealizable(t *testing.T) {
	s := NewSession()
	root := s.bdd.makeNode(0, False, True) // controllable var: the high branch wins
	dfa := &MTDFA{APs: []string{"a"}, States: []NodeRef{root}, ControllableMask: []bool{true}}

	strategy, verdict := s.Solve(dfa)
	if !verdict.Realizable {
		t.Fatalf("Solve() verdict.Realizable = false, want true")
	}
	if len(strategy.States) != 1 || strategy.States[0] != True {
		t.Errorf("strategy.States = %v, want a single state tt (the output player always picks the winning branch)", strategy.States)
	}
}

func TestSolveUnrealizable(t *testing.T) {
	s := NewSession()
	root := s.bdd.makeNode(0, False, True)
	dfa := &MTDFA{APs: []string{"a"}, States: []NodeRef{root}, ControllableMask: []bool{false}}

	strategy, verdict := s.Solve(dfa)
	if verdict.Realizable {
		t.Fatalf("Solve() verdict.Realizable = true, want false")
	}
	if len(strategy.States) != 1 || strategy.States[0] != False {
		t.Errorf("unrealizable strategy = %v, want the 1-state ff automaton", strategy.States)
	}
}

// TestSolveClosesUndeterminedCycleToLoss exercises finalizeUndetermined: two
// states transition only into each other, with no may-stop leaf anywhere,
// so backprop alone never determines either one.
func TestSolveClosesUndeterminedCycleToLoss(t *testing.T) {
	s := NewSession()
	root0 := s.bdd.Terminal(PackPayload(1, false))
	root1 := s.bdd.Terminal(PackPayload(0, false))
	dfa := &MTDFA{States: []NodeRef{root0, root1}}

	_, verdict := s.Solve(dfa)
	if verdict.Realizable {
		t.Errorf("Solve() on an undetermined cycle = realizable, want false")
	}
	if verdict.StatesDetermined != 0 {
		t.Errorf("verdict.StatesDetermined = %d, want 0 before finalizeUndetermined forces the loss", verdict.StatesDetermined)
	}
}

func TestLazyModesAgreeOnRealizable(t *testing.T) {
	s := NewSession()
	p := s.Forms().Atom("p")
	dfa := mustExplore(t, s, s.Forms().G(p))
	idx, ok := s.Dict().Index("p")
	if !ok {
		t.Fatalf("atom p never declared by Explore")
	}
	mask := make([]bool, idx+1)
	mask[idx] = true // p is controllable: always choose it true
	dfa.ControllableMask = mask

	_, solveVerdict := s.Solve(dfa)
	lazyVerdict := s.LazyFixedPoint(dfa)
	ternaryVerdict := s.ThreeValuedLazy(dfa)

	if !solveVerdict.Realizable {
		t.Fatalf("Solve(G p, p controllable).Realizable = false, want true")
	}
	if lazyVerdict.Realizable != solveVerdict.Realizable {
		t.Errorf("LazyFixedPoint.Realizable = %v, want %v", lazyVerdict.Realizable, solveVerdict.Realizable)
	}
	if ternaryVerdict.Realizable != solveVerdict.Realizable {
		t.Errorf("ThreeValuedLazy.Realizable = %v, want %v", ternaryVerdict.Realizable, solveVerdict.Realizable)
	}
}

func TestLazyModesAgreeOnUnrealizable(t *testing.T) {
	s := NewSession()
	p := s.Forms().Atom("p")
	dfa := mustExplore(t, s, s.Forms().G(p))
	idx, ok := s.Dict().Index("p")
	if !ok {
		t.Fatalf("atom p never declared by Explore")
	}
	mask := make([]bool, idx+1) // all false: p is an input the adversary controls
	dfa.ControllableMask = mask

	_, solveVerdict := s.Solve(dfa)
	lazyVerdict := s.LazyFixedPoint(dfa)
	ternaryVerdict := s.ThreeValuedLazy(dfa)

	if solveVerdict.Realizable {
		t.Fatalf("Solve(G p, p uncontrollable).Realizable = true, want false")
	}
	if lazyVerdict.Realizable {
		t.Errorf("LazyFixedPoint.Realizable = true, want false")
	}
	if ternaryVerdict.Realizable {
		t.Errorf("ThreeValuedLazy.Realizable = true, want false")
	}
}
