package ltlfdfa

import "testing"

// TestSynthesizeRealizableRequestGrant is the canonical reactive-synthesis
// example: whenever req holds, grant must hold on the next letter. The
// output player wins by remembering the previous req bit and forcing grant
// accordingly.
func TestSynthesizeRealizableRequestGrant(t *testing.T) {
	dict := NewVariableDictFromPartition([]string{"req"}, []string{"grant"}, false)
	s := NewSession(WithVariableDict(dict))
	forms := s.Forms()
	req := forms.Atom("req")
	grant := forms.Atom("grant")
	f := forms.G(forms.Implies(req, forms.X(grant)))

	strategy, verdict, err := s.Synthesize(f, []bool{false, true})
	if err != nil {
		t.Fatalf("Synthesize(G(req -> X grant)) returned error: %v", err)
	}
	if !verdict.Realizable {
		t.Fatalf("Synthesize(G(req -> X grant)).Realizable = false, want true")
	}
	if len(strategy.States) == 0 {
		t.Errorf("realizable strategy has no states")
	}
}

// TestSynthesizeUnrealizableLivenessOnInput is a liveness objective that
// depends entirely on an uncontrollable input: the adversary can withhold
// grant forever, so F(grant) can never be forced.
func TestSynthesizeUnrealizableLivenessOnInput(t *testing.T) {
	s := NewSession()
	grant := s.Forms().Atom("grant")
	f := s.Forms().F(grant)

	strategy, verdict, err := s.Synthesize(f, []bool{false})
	if err != nil {
		t.Fatalf("Synthesize(F grant) returned error: %v", err)
	}
	if verdict.Realizable {
		t.Fatalf("Synthesize(F grant, grant uncontrollable).Realizable = true, want false")
	}
	if len(strategy.States) != 1 || strategy.States[0] != False {
		t.Errorf("unrealizable strategy = %v, want the 1-state ff automaton", strategy.States)
	}
}

func TestSynthesizeExplorationModesAgree(t *testing.T) {
	run := func(mode explorationMode) Verdict {
		dict := NewVariableDictFromPartition([]string{"req"}, []string{"grant"}, false)
		s := NewSession(WithVariableDict(dict), WithExploration(mode))
		forms := s.Forms()
		req := forms.Atom("req")
		grant := forms.Atom("grant")
		f := forms.G(forms.Implies(req, forms.X(grant)))
		_, verdict, err := s.Synthesize(f, []bool{false, true})
		if err != nil {
			t.Fatalf("Synthesize returned error: %v", err)
		}
		return verdict
	}

	bfs := run(ExploreBFS)
	dfs := run(ExploreDFS)
	strict := run(ExploreDFSStrict)

	if dfs.Realizable != bfs.Realizable {
		t.Errorf("DFS Realizable = %v, want %v (BFS)", dfs.Realizable, bfs.Realizable)
	}
	if strict.Realizable != bfs.Realizable {
		t.Errorf("DFS-strict Realizable = %v, want %v (BFS)", strict.Realizable, bfs.Realizable)
	}
}
